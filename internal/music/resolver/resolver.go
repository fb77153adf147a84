// Package resolver turns a free-text query or URL into a playable track
// descriptor. Failures are classified so the command layer can word its
// reply: not found, upstream/network trouble, or an input we do not handle.
package resolver

import "fmt"

type Kind int

const (
	KindNotFound Kind = iota
	KindNetwork
	KindUnsupported
)

// Error is the resolver's failure type.
type Error struct {
	Kind  Kind
	Query string
	Err   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNetwork:
		return fmt.Sprintf("resolve %q: upstream failure: %v", e.Query, e.Err)
	case KindUnsupported:
		return fmt.Sprintf("resolve %q: unsupported input: %v", e.Query, e.Err)
	default:
		return fmt.Sprintf("resolve %q: nothing found", e.Query)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func notFound(query string, err error) *Error {
	return &Error{Kind: KindNotFound, Query: query, Err: err}
}

func network(query string, err error) *Error {
	return &Error{Kind: KindNetwork, Query: query, Err: err}
}

func unsupported(query string, err error) *Error {
	return &Error{Kind: KindUnsupported, Query: query, Err: err}
}
