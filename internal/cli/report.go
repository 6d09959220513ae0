package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/JonMunkholm/orderlookup/internal/core"
)

// Exit codes returned by Report.
const (
	ExitError       = 1
	ExitMissingData = 2
)

// Report writes err for the user to w and returns the process exit code.
// Errors without a known user message are followed by their raw text.
func Report(w io.Writer, err error) int {
	var missing *core.MissingDatasetError
	if errors.As(err, &missing) {
		fmt.Fprintln(w, "Data files not found!")
		fmt.Fprintln(w, missing.Instructions())
		return ExitMissingData
	}

	fmt.Fprintln(w, core.FormatUserError(err))
	if !core.IsUserFacing(err) {
		fmt.Fprintln(w, "Details:", err)
	}
	return ExitError
}
