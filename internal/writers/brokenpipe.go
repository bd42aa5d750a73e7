// internal/writers/brokenpipe.go
package writers

import (
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Downstream consumers (like `head` or `bcftools view` stopping early)
// closing stdout is a normal way for a run to end, not a failure.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
