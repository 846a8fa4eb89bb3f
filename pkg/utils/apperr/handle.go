package apperr

import (
	"context"
	"errors"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
)

// userErrors are caused by input data or the message form and are fixed by
// the user, not by an operator
var userErrors = []error{
	model.ErrSchema,
	model.ErrCapacity,
	model.ErrEmptyRecipients,
	model.ErrValidation,
}

// IsUserError reports whether err was caused by user input
func IsUserError(err error) bool {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Handle logs err with the context logger. User errors are logged as warnings.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}
	logger := ctxlog.From(ctx)
	if IsUserError(err) {
		logger.Warn("invalid input", "error", err)
		return
	}
	logger.Error("application error", "error", err)
}
