package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates the requested product has no matching row. Callers
// surface it as an empty result, never as a hard failure.
var ErrNotFound = errors.New("product not found")

// IntegrityError reports SKU codes referenced by a variant or group that
// are missing from the fetched SKU batch. This is a data-modeling bug:
// graph construction aborts loudly instead of letting schedule math run on
// a silently incomplete catalog.
type IntegrityError struct {
	ProductID    string
	MissingCodes []string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("product %s references unknown sku codes: %s",
		e.ProductID, strings.Join(e.MissingCodes, ", "))
}

// IsIntegrityError reports whether err is (or wraps) an IntegrityError.
func IsIntegrityError(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}
