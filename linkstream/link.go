package linkstream

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/nptlab/portento/interval"
)

// checkHashable reports whether v is safe to use as a map key and to
// compare with ==, the Go analog of Python's Hashable check (C11): Go
// has no runtime Hashable protocol, so comparability is the closest
// equivalent — anything stored as a map key or compared with == must
// satisfy it.
func checkHashable(v any) error {
	if v == nil {
		return ErrNilNode
	}
	if !reflect.TypeOf(v).Comparable() {
		return fmt.Errorf("%w: %T", ErrNonHashableNode, v)
	}
	return nil
}

// sortNodes orders u, v by their %v string representation, the Go
// analog of sorting by Python's repr(), so an undirected Link always
// canonicalizes its endpoints the same way regardless of call order.
func sortNodes(u, v any) (any, any) {
	pair := []any{u, v}
	sort.SliceStable(pair, func(i, j int) bool {
		return fmt.Sprintf("%v", pair[i]) < fmt.Sprintf("%v", pair[j])
	})
	return pair[0], pair[1]
}

// Link is an undirected contact between two nodes over an interval of
// time. NewLink canonicalizes its endpoints so that NewLink(iv, a, b)
// and NewLink(iv, b, a) return equal Links; a Link built as a struct
// literal keeps the order it was given.
type Link struct {
	Interval interval.Interval
	U, V     any
}

// NewLink constructs a Link, validating both endpoints are non-nil and
// comparable, and canonicalizing their order.
func NewLink(iv interval.Interval, u, v any) (Link, error) {
	if err := checkHashable(u); err != nil {
		return Link{}, err
	}
	if err := checkHashable(v); err != nil {
		return Link{}, err
	}
	u, v = sortNodes(u, v)
	return Link{Interval: iv, U: u, V: v}, nil
}

// DiLink is a directed contact from U to V over an interval of time. It
// does not canonicalize endpoint order.
type DiLink struct {
	Interval interval.Interval
	U, V     any
}

// NewDiLink constructs a DiLink, validating both endpoints are non-nil
// and comparable.
func NewDiLink(iv interval.Interval, u, v any) (DiLink, error) {
	if err := checkHashable(u); err != nil {
		return DiLink{}, err
	}
	if err := checkHashable(v); err != nil {
		return DiLink{}, err
	}
	return DiLink{Interval: iv, U: u, V: v}, nil
}
