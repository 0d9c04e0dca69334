package storefront

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotFound reports an unknown section or item id.
var ErrNotFound = errors.New("storefront: not found")

// ValidationError reports a client-supplied value that failed shape checks.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("storefront: invalid %s: %s", e.Field, e.Reason)
}
