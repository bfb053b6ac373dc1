package cli

import (
	"fmt"
	"io"

	"github.com/mrz1836/syncstatus/internal/errors"
	"github.com/mrz1836/syncstatus/internal/tui"
)

// outputError writes err as a JSON error message in JSON mode and returns
// an error that also matches ErrJSONErrorOutput, so it is not printed twice.
// Text mode returns err unchanged for Execute to print.
func outputError(w io.Writer, format string, err error) error {
	if err == nil || format != OutputJSON {
		return err
	}
	tui.NewJSONOutput(w).Error(err)
	return fmt.Errorf("%w: %w", errors.ErrJSONErrorOutput, err)
}
