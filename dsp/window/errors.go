package window

import (
	"errors"
	"fmt"
)

var (
	errMismatchedLength = errors.New("window: samples and coefficients must have same length")
	errZeroWeight       = errors.New("window: smoothing kernel has zero weight")
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window: size must be > 0: %d", size)
	}
	return nil
}
