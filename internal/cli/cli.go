package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/modhost/internal/app"
)

// ExitError is an error carrying the process exit code it should produce.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating the program should exit cleanly (help or
// nothing to do), or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("modhost", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
modhost - a runtime module host: loads capability modules, tracks their
lifetimes, and notifies loaded modules when peers appear.

Usage:
  modhost [options] [CONFIG_PATH]

Arguments:
  CONFIG_PATH
    Path to an HCL host configuration file (same as -config).

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the HCL host configuration file.")
	cFlag := flagSet.String("c", "", "Path to the HCL host configuration file (shorthand).")
	loadFlag := flagSet.String("load", "", "Path to a line-oriented module list file.")
	dumpFlag := flagSet.String("dump", "", "Write a module report to this path before teardown.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "", "Logging level: 'debug', 'info', 'warn', or 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	configPath := ""
	if *configFlag != "" {
		configPath = *configFlag
	} else if *cFlag != "" {
		configPath = *cFlag
	} else if flagSet.NArg() > 0 {
		configPath = flagSet.Arg(0)
	}

	if configPath == "" && *loadFlag == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(app.Config{
		HostConfigPath: configPath,
		ModuleListPath: *loadFlag,
		ReportPath:     *dumpFlag,
		LogFormat:      strings.ToLower(*logFormatFlag),
		LogLevel:       strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
