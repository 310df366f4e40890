package shared

import (
	"errors"
	"fmt"
)

var ErrNotEnoughSpace = errors.New("not enough disk space")

type DigestMismatchError struct {
	Source      string
	Destination string
	Expected    string
	Found       string
}

func (err DigestMismatchError) Error() string {
	return fmt.Sprintf("digest mismatch; %v: %v, %v: %v",
		err.Source, err.Expected, err.Destination, err.Found)
}
