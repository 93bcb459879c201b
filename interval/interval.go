// Package interval implements the closed/open interval algebra that
// underlies the augmented interval tree: construction, merge, cut,
// containment, and lazy enumeration of the instants an interval covers.
//
// Closure is tracked explicitly per bound (ClosedLo, ClosedHi)
// rather than assumed, because merge-on-insert and cut must combine the
// closure of two different intervals, not just their numeric bounds.
package interval

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"strconv"
	"strings"
)

// Sentinel errors for interval operations.
var (
	// ErrEmptyInterval indicates a zero-length interval with an open
	// bound, which contains no points at all.
	ErrEmptyInterval = errors.New("interval: empty interval")

	// ErrNonOverlapping indicates Merge was called on intervals that do
	// not overlap and do not touch, so no single interval can represent
	// their union.
	ErrNonOverlapping = errors.New("interval: cannot merge non-overlapping intervals")

	// ErrDisjoint indicates Cut was called with a cutting interval that
	// shares no points with the interval being cut.
	ErrDisjoint = errors.New("interval: cutting interval is disjoint")

	// ErrParse indicates a malformed bracket-format interval literal.
	ErrParse = errors.New("interval: malformed interval literal")
)

// Interval is a one-dimensional interval over float64 with independently
// closed or open bounds, e.g. [2, 5), (0, 1], [3, 3].
type Interval struct {
	Lo, Hi           float64
	ClosedLo, ClosedHi bool
}

// New constructs an Interval, validating Lo <= Hi and rejecting the
// degenerate empty case of an equal-bound interval with an open side.
func New(lo, hi float64, closedLo, closedHi bool) (Interval, error) {
	iv := Interval{Lo: lo, Hi: hi, ClosedLo: closedLo, ClosedHi: closedHi}
	if lo > hi {
		return Interval{}, fmt.Errorf("%w: lo %v > hi %v", ErrEmptyInterval, lo, hi)
	}
	if lo == hi && !(closedLo && closedHi) {
		return Interval{}, fmt.Errorf("%w: degenerate bound %v is not doubly closed", ErrEmptyInterval, lo)
	}
	return iv, nil
}

// Length returns Hi - Lo, the interval's numeric span. A doubly closed
// instant interval ([3,3]) has length 0.
func (iv Interval) Length() float64 { return iv.Hi - iv.Lo }

// leftKey orders left endpoints: a closed left bound sorts before an
// open one at the same value, mirroring _left_tuple.
func leftKey(iv Interval) (float64, int) {
	if iv.ClosedLo {
		return iv.Lo, 0
	}
	return iv.Lo, 1
}

// rightKey orders right endpoints: an open right bound sorts before a
// closed one at the same value, mirroring _right_tuple.
func rightKey(iv Interval) (float64, int) {
	if iv.ClosedHi {
		return iv.Hi, 1
	}
	return iv.Hi, 0
}

func lessKey(a, b [2]float64) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

func leftKeyLess(a, b Interval) bool {
	ka1, ka2 := leftKey(a)
	kb1, kb2 := leftKey(b)
	return lessKey([2]float64{ka1, float64(ka2)}, [2]float64{kb1, float64(kb2)})
}

func rightKeyLess(a, b Interval) bool {
	ka1, ka2 := rightKey(a)
	kb1, kb2 := rightKey(b)
	return lessKey([2]float64{ka1, float64(ka2)}, [2]float64{kb1, float64(kb2)})
}

// closure returns the left and right closure flags unchanged. Callers
// pass the closure of the interval that supplied each extreme bound;
// leftKey and rightKey already rank a closed bound as the more extreme
// one at equal values, so the more permissive closure is chosen there.
func closure(closedLeft, closedRight bool) (bool, bool) {
	return closedLeft, closedRight
}

// Overlaps reports whether iv and other share at least one point.
func (iv Interval) Overlaps(other Interval) bool {
	// Not overlapping iff one entirely precedes the other, accounting
	// for closure at the touching point.
	if iv.Hi < other.Lo || (iv.Hi == other.Lo && !(iv.ClosedHi && other.ClosedLo)) {
		return false
	}
	if other.Hi < iv.Lo || (other.Hi == iv.Lo && !(other.ClosedHi && iv.ClosedLo)) {
		return false
	}
	return true
}

// Touches reports whether iv and other overlap or abut (their union is
// a single contiguous interval with no gap).
func (iv Interval) Touches(other Interval) bool {
	if iv.Overlaps(other) {
		return true
	}
	if iv.Hi == other.Lo && (iv.ClosedHi || other.ClosedLo) {
		return true
	}
	if other.Hi == iv.Lo && (other.ClosedHi || iv.ClosedLo) {
		return true
	}
	return false
}

// Contains reports whether iv entirely contains other.
func (iv Interval) Contains(other Interval) bool {
	l1a, l1b := leftKey(iv)
	l2a, l2b := leftKey(other)
	leftOK := lessKey([2]float64{l1a, float64(l1b)}, [2]float64{l2a, float64(l2b)}) || (l1a == l2a && l1b == l2b)

	r1a, r1b := rightKey(iv)
	r2a, r2b := rightKey(other)
	rightOK := lessKey([2]float64{r2a, float64(r2b)}, [2]float64{r1a, float64(r1b)}) || (r1a == r2a && r1b == r2b)

	return leftOK && rightOK
}

// Merge computes the smallest interval containing the union of all
// provided intervals, with closure taken from whichever extreme bound
// supplied the winning endpoint. Merge requires at least one interval,
// and every provided interval must pairwise touch or overlap the merged
// run — callers merging genuinely disjoint sets get ErrNonOverlapping.
func Merge(ivs ...Interval) (Interval, error) {
	if len(ivs) == 0 {
		return Interval{}, fmt.Errorf("%w: no intervals to merge", ErrNonOverlapping)
	}
	minIv, maxIv := ivs[0], ivs[0]
	for _, iv := range ivs[1:] {
		if leftKeyLess(iv, minIv) {
			minIv = iv
		}
		if rightKeyLess(maxIv, iv) {
			maxIv = iv
		}
	}
	merged := Interval{Lo: minIv.Lo, Hi: maxIv.Hi}
	merged.ClosedLo, merged.ClosedHi = closure(minIv.ClosedLo, maxIv.ClosedHi)

	// Verify the merged run is actually contiguous: every interval must
	// touch the running union, not just the extremes.
	union := ivs[0]
	for _, iv := range ivs[1:] {
		if !union.Touches(iv) {
			return Interval{}, fmt.Errorf("%w: %v and running union %v", ErrNonOverlapping, iv, union)
		}
		lo, hi := union.Lo, union.Hi
		cl, ch := union.ClosedLo, union.ClosedHi
		if leftKeyLess(iv, union) {
			lo, cl = iv.Lo, iv.ClosedLo
		}
		if rightKeyLess(union, iv) {
			hi, ch = iv.Hi, iv.ClosedHi
		}
		union = Interval{Lo: lo, Hi: hi, ClosedLo: cl, ClosedHi: ch}
	}
	return merged, nil
}

// Cut intersects iv with cutting, taking the more restrictive (less
// permissive, i.e. more closed-to-open) closure whenever bounds coincide.
// Cut fails with ErrDisjoint when the two intervals share no points.
func Cut(iv, cutting Interval) (Interval, error) {
	if !iv.Overlaps(cutting) {
		return Interval{}, fmt.Errorf("%w: %v does not overlap %v", ErrDisjoint, cutting, iv)
	}
	newLo, closedLo := iv.Lo, iv.ClosedLo
	newHi, closedHi := iv.Hi, iv.ClosedHi

	if cutting.Lo > iv.Lo {
		newLo, closedLo = cutting.Lo, cutting.ClosedLo
	} else if cutting.Lo == iv.Lo {
		closedLo = cutting.ClosedLo && closedLo
	}
	if cutting.Hi < iv.Hi {
		newHi, closedHi = cutting.Hi, cutting.ClosedHi
	} else if cutting.Hi == iv.Hi {
		closedHi = cutting.ClosedHi && closedHi
	}
	return Interval{Lo: newLo, Hi: newHi, ClosedLo: closedLo, ClosedHi: closedHi}, nil
}

// decimalDigits returns the number of digits after the decimal point in
// delta's shortest round-trip decimal representation, mirroring
// len((str(instant_duration)+".").split(".")[1]).
func decimalDigits(delta float64) int {
	s := strconv.FormatFloat(delta, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// SplitInInstants lazily yields every instant in iv spaced delta apart,
// starting at iv.Lo (or iv.Lo+delta if the left bound is open) and
// stopping at or before iv.Hi (or iv.Hi-delta if the right bound is
// open). The sequence is pull-driven and may be restarted by calling
// SplitInInstants again; it performs no allocation beyond the closure.
func SplitInInstants(iv Interval, delta float64) iter.Seq[float64] {
	digits := decimalDigits(delta)
	return func(yield func(float64) bool) {
		left := iv.Lo
		if !iv.ClosedLo {
			left += delta
		}
		right := iv.Hi
		if !iv.ClosedHi {
			right -= delta
		}
		counter := left
		for counter <= right {
			if !yield(counter) {
				return
			}
			scale := math.Pow(10, float64(digits))
			counter = math.Round((counter+delta)*scale) / scale
		}
	}
}

// GetStartEnd returns the first and last instant (inclusive) that
// SplitInInstants would yield for iv at the given delta.
func GetStartEnd(iv Interval, delta float64) (start, end float64, ok bool) {
	first := true
	for v := range SplitInInstants(iv, delta) {
		if first {
			start = v
			first = false
		}
		end = v
	}
	if first {
		return 0, 0, false
	}
	return start, end, true
}

// ComputePresence sums the lengths of ivs, flooring each interval's
// contribution at zero; callers needing the merge-on-insert
// instant-duration floor should use the airbt package's aggregate
// instead, which applies that floor per node.
func ComputePresence(ivs ...Interval) float64 {
	var total float64
	for _, iv := range ivs {
		total += iv.Length()
	}
	return total
}

// Envelope returns the smallest interval whose bounds span every
// provided interval, without requiring them to touch or overlap — it is
// a bounding-box union, not a set union. Unlike Merge, Envelope never
// fails: it is the aggregate used internally by the augmented tree to
// bound a subtree that may contain several disjoint intervals, mirroring
// merge_interval's unchecked use inside _compute_full_interval.
// Envelope panics if ivs is empty; callers always supply at least the
// interval being bounded.
func Envelope(ivs ...Interval) Interval {
	if len(ivs) == 0 {
		panic("interval: Envelope called with no intervals")
	}
	minIv, maxIv := ivs[0], ivs[0]
	for _, iv := range ivs[1:] {
		if leftKeyLess(iv, minIv) {
			minIv = iv
		}
		if rightKeyLess(maxIv, iv) {
			maxIv = iv
		}
	}
	closedLo, closedHi := closure(minIv.ClosedLo, maxIv.ClosedHi)
	return Interval{Lo: minIv.Lo, Hi: maxIv.Hi, ClosedLo: closedLo, ClosedHi: closedHi}
}

// String renders iv in bracket notation, e.g. "[2, 5)".
func (iv Interval) String() string {
	lb, rb := "(", ")"
	if iv.ClosedLo {
		lb = "["
	}
	if iv.ClosedHi {
		rb = "]"
	}
	return fmt.Sprintf("%s%v, %v%s", lb, iv.Lo, iv.Hi, rb)
}

// Parse reads an interval literal in bracket notation, e.g. "[2, 5)" or
// "(0, 1]". Whitespace around the numbers is ignored.
func Parse(s string) (Interval, error) {
	s = strings.TrimSpace(s)
	if len(s) < 3 {
		return Interval{}, fmt.Errorf("%w: %q", ErrParse, s)
	}
	closedLo := s[0] == '['
	if !closedLo && s[0] != '(' {
		return Interval{}, fmt.Errorf("%w: %q must start with [ or (", ErrParse, s)
	}
	closedHi := s[len(s)-1] == ']'
	if !closedHi && s[len(s)-1] != ')' {
		return Interval{}, fmt.Errorf("%w: %q must end with ] or )", ErrParse, s)
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	parts := strings.SplitN(body, ",", 2)
	if len(parts) != 2 {
		return Interval{}, fmt.Errorf("%w: %q missing comma", ErrParse, s)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q: %v", ErrParse, s, err)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q: %v", ErrParse, s, err)
	}
	return New(lo, hi, closedLo, closedHi)
}
