package satisimg

import (
	"errors"
	"fmt"
)

// ErrUsage is returned when the command line is missing the input path or
// carries flags that cannot be parsed.
var ErrUsage = errors.New("usage error")

// IOError wraps a failure to read the input or write the output.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
