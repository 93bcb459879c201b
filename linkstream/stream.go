package linkstream

import (
	"fmt"
	"sync"

	"github.com/nptlab/portento/airbt"
	"github.com/nptlab/portento/interval"
)

// LinkValue is the payload the link-tagged augmented tree (C3) stores:
// an interval plus the (u, v) pair it belongs to. Two LinkValues only
// merge on insert when they carry the same pair, unlike the plain
// presence tree where every overlap merges regardless of tag.
type LinkValue struct {
	Span_ interval.Interval
	U, V  any
}

func (v LinkValue) Span() interval.Interval { return v.Span_ }

func (v LinkValue) WithSpan(span interval.Interval) LinkValue {
	v.Span_ = span
	return v
}

func (v LinkValue) SameSeries(other LinkValue) bool {
	return v.U == other.U && v.V == other.V
}

func (v LinkValue) Less(other LinkValue) bool {
	a, b := v.Span_, other.Span_
	if a.Lo != b.Lo {
		return a.Lo < b.Lo
	}
	if a.ClosedLo != b.ClosedLo {
		return a.ClosedLo
	}
	ku := fmt.Sprintf("%v", v.U)
	ou := fmt.Sprintf("%v", other.U)
	if ku != ou {
		return ku < ou
	}
	return fmt.Sprintf("%v", v.V) < fmt.Sprintf("%v", other.V)
}

// StreamOption configures a Stream at construction.
type StreamOption func(*Stream)

// WithInstantDuration sets the granularity at which zero-length
// contacts and SplitInInstants enumerate instants. The default is 1.
func WithInstantDuration(d float64) StreamOption {
	return func(s *Stream) { s.instantDuration = d }
}

// Stream is the Link Stream façade (C6): it owns the stream dictionary
// (C5), the link-tagged tree over every contact (C3), and a plain
// presence tree over the union of all contacts regardless of tag,
// keeping all three synchronized on every Add.
//
// Stream is single-writer, single-reader, and non-re-entrant (§5): it
// is safe to use from one goroutine at a time, guarded by a single
// mutex, and callers must not mutate a Stream while iterating over it.
// version is bumped on every successful Add so a live iterator can
// detect such a mutation if it chooses to check.
type Stream struct {
	mu sync.Mutex

	directed        bool
	instantDuration float64

	dict     *dict
	tree     *airbt.Tree[LinkValue]
	presence *airbt.Tree[airbt.PlainValue]

	version uint64
}

// New creates an empty Stream. directed selects whether links added to
// it must be DiLinks (directed=true) or Links (directed=false).
func New(directed bool, opts ...StreamOption) *Stream {
	s := &Stream{directed: directed, instantDuration: 1}
	for _, opt := range opts {
		opt(s)
	}
	s.dict = newDict(s.instantDuration, directed)
	s.tree = airbt.New[LinkValue](s.instantDuration)
	s.presence = airbt.New[airbt.PlainValue](s.instantDuration)
	return s
}

// Directed reports whether this Stream holds directed links.
func (s *Stream) Directed() bool { return s.directed }

// InstantDuration returns the granularity this Stream enumerates
// instants at.
func (s *Stream) InstantDuration() float64 { return s.instantDuration }

// Version returns the current mutation count, incremented on every
// successful Add.
func (s *Stream) Version() uint64 { return s.version }

// AddLink inserts an undirected contact. It fails with ErrWrongVariant
// if the Stream is directed.
func (s *Stream) AddLink(l Link) error {
	if s.directed {
		return fmt.Errorf("%w: AddLink on a directed stream", ErrWrongVariant)
	}
	return s.commit(l, l.U, l.V)
}

// AddDiLink inserts a directed contact. It fails with ErrWrongVariant if
// the Stream is undirected.
func (s *Stream) AddDiLink(l DiLink) error {
	if !s.directed {
		return fmt.Errorf("%w: AddDiLink on an undirected stream", ErrWrongVariant)
	}
	return s.commit(l, l.U, l.V)
}

// Add is a convenience wrapper that builds the right link type
// (Link or DiLink) for this Stream's variant and inserts it.
func (s *Stream) Add(u, v any, iv interval.Interval) error {
	if s.directed {
		l, err := NewDiLink(iv, u, v)
		if err != nil {
			return err
		}
		return s.AddDiLink(l)
	}
	l, err := NewLink(iv, u, v)
	if err != nil {
		return err
	}
	return s.AddLink(l)
}

// commit validates u and v are usable node identifiers, then updates
// the dictionary, the link-tagged tree, and the presence tree together.
// Validation runs entirely before any mutation, so a failing commit
// never partially updates the Stream (the all-or-nothing contract of
// §7).
func (s *Stream) commit(link any, u, v any) error {
	if err := checkHashable(u); err != nil {
		return err
	}
	if err := checkHashable(v); err != nil {
		return err
	}
	iv, _, _ := endpoints(link)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.dict.add(link)
	s.tree.Add(LinkValue{Span_: iv, U: u, V: v})
	s.presence.Add(airbt.NewPlainValue(iv))
	s.version++
	return nil
}

// StreamFullSpan returns the bounding envelope of every contact ever
// added to the Stream, or false if the Stream is empty.
func (s *Stream) StreamFullSpan() (interval.Interval, bool) {
	return s.presence.FullSpan()
}

// StreamPresenceLen returns the total duration during which the Stream
// has at least one active link.
func (s *Stream) StreamPresenceLen() float64 {
	return s.presence.TotalPresence()
}

// NodePresenceLen returns the total duration during which node has at
// least one active link.
func (s *Stream) NodePresenceLen(node any) (float64, error) {
	c, err := s.dict.nodePresence(node)
	if err != nil {
		return 0, err
	}
	return c.Length(), nil
}

// LinkPresenceLen returns the total duration during which the edge
// (u, v) is active. It returns (0, nil) if both nodes are known to the
// stream but share no link.
func (s *Stream) LinkPresenceLen(u, v any) (float64, error) {
	c, err := s.dict.edgePresence(u, v)
	if err != nil {
		return 0, err
	}
	if c == nil {
		return 0, nil
	}
	return c.Length(), nil
}

// HasNode reports whether node has appeared in the Stream.
func (s *Stream) HasNode(node any) bool { return s.dict.hasNode(node) }

// Nodes returns every node that has appeared in the Stream, in no
// particular order.
func (s *Stream) Nodes() []any {
	out := make([]any, 0, len(s.dict.nodes))
	for n := range s.dict.nodes {
		out = append(out, n)
	}
	return out
}

// LinksOf returns every link touching node, sorted by interval start.
func (s *Stream) LinksOf(node any) ([]Link, error) {
	return s.dict.linksOf(node)
}

// LinksBetween returns every link between u and v, sorted by interval
// start.
func (s *Stream) LinksBetween(u, v any) ([]Link, error) {
	return s.dict.linksBetween(u, v)
}

// Neighborhood builds a new Stream containing only the links that touch
// node, preserving this Stream's directedness and instant duration.
func (s *Stream) Neighborhood(node any) (*Stream, error) {
	links, err := s.LinksOf(node)
	if err != nil {
		return nil, err
	}
	out := New(s.directed, WithInstantDuration(s.instantDuration))
	for _, l := range links {
		if err := out.Add(l.U, l.V, l.Interval); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EdgeEntry is one (u, v) pair's presence container, exposed read-only
// for consumers (such as linkstream/filter) that need to iterate edges
// without reaching into the dictionary directly.
type EdgeEntry struct {
	U, V      any
	Intervals func(yield func(interval.Interval) bool)
}

// AllEdges lazily yields every (u, v) pair that has ever shared a link,
// each paired with its presence container's intervals.
func (s *Stream) AllEdges() func(yield func(EdgeEntry) bool) {
	return func(yield func(EdgeEntry) bool) {
		for u, adj := range s.dict.edges {
			for v, c := range adj {
				if !yield(EdgeEntry{U: u, V: v, Intervals: c.Intervals()}) {
					return
				}
			}
		}
	}
}

// AllLinks lazily yields every link in the Stream in the tagged tree's
// in-order traversal order (by interval start).
func (s *Stream) AllLinks() func(yield func(Link) bool) {
	return func(yield func(Link) bool) {
		for v := range s.tree.All() {
			if !yield(Link{Interval: v.Span(), U: v.U, V: v.V}) {
				return
			}
		}
	}
}
