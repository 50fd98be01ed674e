package lastfm

import (
	"context"
	"reflect"
)

// Params are the query parameters of one web-service call.
// The "method" key names the Last.fm method, e.g. "tag.getsimilar".
type Params map[string]string

// Method returns the method parameter.
func (p Params) Method() string {
	return p["method"]
}

// Node is a read-only view of one element of a parsed response.
//
// Paths are slash separated element names relative to the node, e.g.
// "artist/name"; "." selects the node itself. A present but empty element
// yields ("", true).
type Node interface {
	// FindChildText returns the text of the first element matching path.
	FindChildText(path string) (string, bool)

	// FindChild returns the first element matching path.
	FindChild(path string) (Node, bool)

	// FindAll returns the direct children named tag, in document order.
	FindAll(tag string) []Node

	// Attr returns the value of the named attribute of this node.
	Attr(name string) (string, bool)
}

// Fetcher executes a web-service method and returns the response root.
//
// Implementations own transport concerns such as timeouts, retries and
// authentication. Failures must satisfy errors.Is(err, ErrRemote) or
// errors.Is(err, ErrMalformedResponse).
type Fetcher interface {
	Fetch(ctx context.Context, params Params) (Node, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, params Params) (Node, error)

// Fetch calls f(ctx, params).
func (f FetcherFunc) Fetch(ctx context.Context, params Params) (Node, error) {
	return f(ctx, params)
}

// CheckFetcher returns ErrInvalidReference if f cannot serve requests:
// a nil interface, or an interface holding a nil pointer or func.
func CheckFetcher(f Fetcher) error {
	if f == nil {
		return ErrInvalidReference
	}
	v := reflect.ValueOf(f)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Interface:
		if v.IsNil() {
			return ErrInvalidReference
		}
	}
	return nil
}
