package graphbuilder

import (
	"errors"
	"fmt"
)

var ErrGraphIntegrity = errors.New("graph integrity violation")

// GraphIntegrityError. curated adjacency rejected at construction time. To is empty when the problem is the node itself.
type GraphIntegrityError struct {
	From   string
	To     string
	Reason string
}

func (e *GraphIntegrityError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("%s: node %q: %s", ErrGraphIntegrity, e.From, e.Reason)
	}
	return fmt.Sprintf("%s: edge %q -> %q: %s", ErrGraphIntegrity, e.From, e.To, e.Reason)
}

func (e *GraphIntegrityError) Is(target error) bool {
	return target == ErrGraphIntegrity
}

func newIntegrityError(from, to, format string, a ...interface{}) *GraphIntegrityError {
	return &GraphIntegrityError{From: from, To: to, Reason: fmt.Sprintf(format, a...)}
}
