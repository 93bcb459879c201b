// Package portento implements the core of a link streams (temporal
// graph) library: an augmented interval red-black tree with
// merge-on-insert semantics (package airbt), a stream dictionary and
// Link Stream façade built on it (package linkstream), time/node
// filters (package linkstream/filter), an ordered contact-event stream
// (package linkstream/contact), and the minimum-temporal-path
// algorithms — earliest arrival, latest departure, shortest path, and
// fastest path (package linkstream/path).
package portento
