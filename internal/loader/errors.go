package loader

import "errors"

// ErrLoadFailed reports any failure on the dynamic load path: the image
// could not be opened, a mandatory symbol is missing or has the wrong
// signature, or the factory produced no instance.
var ErrLoadFailed = errors.New("not able to load module")
