package scorecard

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrScoreCardNotFound   = errors.New("score card not found")
	ErrLayoutNotFound      = errors.New("layout not found")
	ErrUnknownHole         = errors.New("unknown hole")
	ErrDuplicateHoleNumber = errors.New("hole numbers must be unique within a score card")
)

// UnknownHoleError reports a score whose hole number is not part of the
// score card's layout.
type UnknownHoleError struct {
	Number int
}

func (e *UnknownHoleError) Error() string {
	return fmt.Sprintf("hole %d does not exist in the target layout", e.Number)
}

func (e *UnknownHoleError) Is(target error) bool {
	return target == ErrUnknownHole
}
