package tui

import (
	"errors"
	"fmt"

	"github.com/pders01/cinemaddict/internal/api"
	"github.com/pders01/cinemaddict/internal/model"
)

// wrapErr tags a details-rendering failure with the stage that failed.
func wrapErr(stage string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("details %s: %w", stage, err)
}

// errorLine is the status-bar text for err. Known failures get a short
// hint in front of the full chain, which also goes to the log.
func errorLine(err error) string {
	var status *api.StatusError
	switch {
	case errors.As(err, &status) && status.Code == 401:
		return "✗ server refused the authorization token: " + err.Error()
	case errors.Is(err, model.ErrLoadFailure):
		return "✗ could not load: " + err.Error()
	case errors.Is(err, model.ErrMutationRejected):
		return "✗ change not saved: " + err.Error()
	default:
		return "✗ " + err.Error()
	}
}
