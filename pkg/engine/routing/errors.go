package routing

import (
	"errors"
	"fmt"
)

var ErrUnknownNode = errors.New("unknown node")

// UnknownNodeError. source or target of a query is not a vertex of the graph.
type UnknownNodeError struct {
	Name string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownNode, e.Name)
}

func (e *UnknownNodeError) Is(target error) bool {
	return target == ErrUnknownNode
}
