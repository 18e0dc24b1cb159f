package cli

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/grovetools/atlas/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to out.
func NewErrorHandler(out io.Writer, verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     out,
	}
}

// Handle prints a friendly message for err and returns it unchanged.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}

	var atlasErr *errors.AtlasError
	stderrors.As(err, &atlasErr)

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(h.Out, "❌ Configuration not found: %s\n", detail(atlasErr, "path"))
		fmt.Fprintf(h.Out, "Run 'atlas config show' to see the effective defaults.\n")

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		fmt.Fprintf(h.Out, "❌ Invalid configuration: %s\n", message(err))
		if atlasErr != nil && atlasErr.Cause != nil {
			fmt.Fprintf(h.Out, "   %s\n", message(atlasErr.Cause))
		}
		fmt.Fprintf(h.Out, "Run 'atlas config schema' for the accepted format.\n")

	case errors.ErrCodeInvalidInput:
		fmt.Fprintf(h.Out, "❌ %s\n", message(err))
		if atlasErr != nil && atlasErr.Details["region"] != nil {
			fmt.Fprintf(h.Out, "Run 'atlas regions' to see the known regions.\n")
		}

	case errors.ErrCodeLoadFailed, errors.ErrCodeFetchFailed, errors.ErrCodeSourceUnavailable:
		fmt.Fprintf(h.Out, "❌ Could not load countries: %s\n", message(err))

	default:
		fmt.Fprintf(h.Out, "❌ Error: %s\n", message(err))
	}

	if h.Verbose {
		fmt.Fprintf(h.Out, "\nCause chain: %v\n", err)
		if atlasErr != nil {
			fmt.Fprintf(h.Out, "\nError details:\n%s\n", atlasErr.ToJSON())
		}
	}
	return err
}

// message is the top-level text of err without its cause chain.
func message(err error) string {
	if atlasErr, ok := err.(*errors.AtlasError); ok {
		return atlasErr.Message
	}
	return err.Error()
}

func detail(err *errors.AtlasError, key string) any {
	if err == nil || err.Details == nil {
		return "unknown"
	}
	if v, ok := err.Details[key]; ok {
		return v
	}
	return "unknown"
}
