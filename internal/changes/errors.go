package changes

import (
	"errors"
	"fmt"
)

// ErrNothingStaged is wrapped when the status listing is empty
var ErrNothingStaged = errors.New("nothing staged")

// ClassificationError reports VCS output the classifier does not understand
type ClassificationError struct {
	Entry  string // offending status entry, if any
	Reason string
	Err    error
}

func (e *ClassificationError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("cannot classify %q: %s", e.Entry, e.Reason)
	}
	return fmt.Sprintf("cannot classify staged changes: %s", e.Reason)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}
