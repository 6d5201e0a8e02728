package form

import (
	"errors"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ValidationError lists the local reasons a draft cannot be submitted.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Reasons, "; ")
}

// First returns the reason surfaced to the user.
func (e *ValidationError) First() string {
	if len(e.Reasons) == 0 {
		return ""
	}
	return e.Reasons[0]
}

// IsValidation reports whether err came from local validation.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

func validationError(err error) *ValidationError {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		reasons := make([]string, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			reasons = append(reasons, e.Error())
		}
		return &ValidationError{Reasons: reasons}
	}
	return &ValidationError{Reasons: []string{err.Error()}}
}
