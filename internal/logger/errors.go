package logger

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrAppNameIsEmpty means [Log] AppName is missing from main.toml.
	ErrAppNameIsEmpty = errors.New("config Log.AppName can not be empty")

	// ErrServiceNameIsEmpty means [Log] ServiceName is missing from main.toml.
	ErrServiceNameIsEmpty = errors.New("config Log.ServiceName can not be empty")
)

// ErrorHandler is installed as zerolog.ErrorHandler, write failures of the
// log outputs end up on stderr.
func ErrorHandler(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "piratelibrary: dropped log event: %v\n", err)
}
