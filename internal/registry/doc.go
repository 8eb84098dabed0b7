// Package registry owns the table of loaded modules and their lifetimes.
//
// Each registered module is tracked by a record keyed on the module's
// self-reported name, carrying a reference count that gates destruction:
// registration creates the record with one reference, Acquire and Release
// move the count, and the release that brings it to zero removes the record
// and runs its destructor. Registration also notifies every other module
// that a peer appeared.
//
// Nothing in this package is synchronized. The registry is a
// single-goroutine structure; callers that need concurrent access must
// serialize every operation behind one external lock.
package registry
