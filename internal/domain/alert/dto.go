package alert

import (
	"fmt"

	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/validator"
)

type AlertFilter struct {
	UnreadOnly bool
	Kinds      []Kind
}

// Matches reports whether a passes the filter.
func (f AlertFilter) Matches(a Alert) bool {
	if f.UnreadOnly && a.IsRead {
		return false
	}
	if len(f.Kinds) == 0 {
		return true
	}
	for _, k := range f.Kinds {
		if a.Kind == k {
			return true
		}
	}
	return false
}

func (f AlertFilter) Validate() error {
	for _, k := range f.Kinds {
		if !k.IsValid() {
			return validator.ValidationErrors{{
				Field:   "type",
				Message: fmt.Sprintf("type must be one of %s, %s, %s", KindOvertime, KindMissingPoint, KindDelay),
			}}
		}
	}
	return nil
}

type CheckResult struct {
	Inserted []Alert `json:"inserted"`
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
