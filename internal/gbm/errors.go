package gbm

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter marks every precondition violation raised at
// construction or call time. Callers match it with errors.Is to separate
// client-input failures from anything unexpected.
var ErrInvalidParameter = errors.New("invalid parameter")

func invalidParameter(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, reason)
}
