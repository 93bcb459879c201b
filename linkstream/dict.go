package linkstream

import (
	"fmt"
	"sort"
)

// dict is the stream dictionary (C5): a map of node presence
// containers, a directed adjacency of edge presence containers, and a
// reverse adjacency that aliases the same containers rather than
// copying them, so that edges[u][v] and reverseEdges[v][u] are always
// the identical container and never drift apart.
type dict struct {
	instantDuration float64
	directed        bool

	nodes        map[any]*container
	edges        map[any]map[any]*container
	reverseEdges map[any]map[any]*container
}

func newDict(instantDuration float64, directed bool) *dict {
	return &dict{
		instantDuration: instantDuration,
		directed:        directed,
		nodes:           make(map[any]*container),
		edges:           make(map[any]map[any]*container),
		reverseEdges:    make(map[any]map[any]*container),
	}
}

func (d *dict) hasNode(n any) bool {
	_, ok := d.nodes[n]
	return ok
}

// add inserts link into the node and edge containers it belongs to. It
// is the caller's (Stream.Add's) responsibility to have already
// validated the link's endpoints.
func (d *dict) add(link any) {
	iv, u, v := endpoints(link)
	_ = iv

	if _, ok := d.nodes[u]; !ok {
		d.nodes[u] = newContainer(d.instantDuration, d.directed, u)
	}
	if _, ok := d.nodes[v]; !ok {
		d.nodes[v] = newContainer(d.instantDuration, d.directed, v)
	}

	if _, ok := d.edges[u]; !ok {
		d.edges[u] = make(map[any]*container)
	}
	if _, ok := d.edges[u][v]; !ok {
		d.edges[u][v] = newContainer(d.instantDuration, d.directed, u, v)
	}

	if _, ok := d.reverseEdges[v]; !ok {
		d.reverseEdges[v] = make(map[any]*container)
	}
	if _, ok := d.reverseEdges[v][u]; !ok {
		// Alias: the same *container as edges[u][v], not a copy.
		d.reverseEdges[v][u] = d.edges[u][v]
	}

	d.nodes[u].add(link)
	d.nodes[v].add(link)
	d.edges[u][v].add(link)
}

// NodePresence returns the presence container for node, or
// ErrUnknownNode if it is not in the stream.
func (d *dict) nodePresence(node any) (*container, error) {
	c, ok := d.nodes[node]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownNode, node)
	}
	return c, nil
}

// edgePresence returns the presence container for the edge (u, v),
// sorted for undirected streams, or nil if the two nodes share no edge
// (matching the distinction spec §4.5 draws between "unknown node" and
// "known nodes, no shared link").
func (d *dict) edgePresence(u, v any) (*container, error) {
	if !d.directed {
		u, v = sortNodes(u, v)
	}
	if !d.hasNode(u) || !d.hasNode(v) {
		return nil, fmt.Errorf("%w: %v or %v", ErrUnknownNode, u, v)
	}
	adj, ok := d.edges[u]
	if !ok {
		return nil, nil
	}
	c, ok := adj[v]
	if !ok {
		return nil, nil
	}
	return c, nil
}

// linksOf returns every link touching node, sorted by interval start,
// merging across every neighbor's presence container the way the
// reference implementation's heapq.merge-based __getitem__ does.
func (d *dict) linksOf(node any) ([]Link, error) {
	if !d.hasNode(node) {
		return nil, fmt.Errorf("%w: %v", ErrUnknownNode, node)
	}
	var out []Link
	if adj, ok := d.edges[node]; ok {
		for other, c := range adj {
			u, v := node, other
			if !d.directed {
				u, v = sortNodes(u, v)
			}
			for iv := range c.Intervals() {
				out = append(out, Link{Interval: iv, U: u, V: v})
			}
		}
	}
	if adj, ok := d.reverseEdges[node]; ok {
		for other, c := range adj {
			u, v := other, node
			if !d.directed {
				u, v = sortNodes(u, v)
			}
			for iv := range c.Intervals() {
				out = append(out, Link{Interval: iv, U: u, V: v})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Interval.Lo < out[j].Interval.Lo
	})
	return out, nil
}

// linksBetween returns every link between u and v, sorted by interval
// start, or an error if either node is unknown to the stream.
func (d *dict) linksBetween(u, v any) ([]Link, error) {
	c, err := d.edgePresence(u, v)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	var out []Link
	for iv := range c.Intervals() {
		out = append(out, Link{Interval: iv, U: u, V: v})
	}
	return out, nil
}
