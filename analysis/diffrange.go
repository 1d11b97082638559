// Package analysis answers compile-time questions about the numeric
// difference between IR values: whether a value tracks a loop induction
// variable by a bounded offset, and whether two values differ by a known
// constant.
package analysis

import "fmt"

// DiffRange is an affine range fact about one IR value: the value equals
// Coeff * x + c, where x is the tracked induction variable and the constant
// term c lies in the half-open range [Low, High). A plain constant is
// Coeff = 0 with the singleton range [c, c+1).
//
// The zero value means "no provable affine relationship"; all fields of an
// unrelated fact are zero. A bare tracked-induction reference is
// ExactDiff(1, 0): its [0, 1) singleton pins the constant term to 0 and
// carries no separate upper-bound information for x itself.
type DiffRange struct {
	related bool
	Coeff   int
	Low     int
	High    int
}

func newDiffRange(related bool, coeff, low, high int) DiffRange {
	if !related {
		return DiffRange{}
	}
	return DiffRange{related: true, Coeff: coeff, Low: low, High: high}
}

// ExactDiff builds the singleton fact coeff*x + low, i.e. the constant term
// is exactly low.
func ExactDiff(coeff, low int) DiffRange {
	return newDiffRange(true, coeff, low, low+1)
}

// BoundedDiff builds a related fact whose constant term lies in [low, high).
func BoundedDiff(coeff, low, high int) DiffRange {
	if low > high {
		panic(fmt.Sprintf("BoundedDiff: empty range [%d, %d)", low, high))
	}
	return newDiffRange(true, coeff, low, high)
}

func (d DiffRange) Related() bool {
	return d.related
}

// LinearRelated reports whether the value tracks the induction variable
// one-to-one.
func (d DiffRange) LinearRelated() bool {
	return d.related && d.Coeff == 1
}

// Certain reports whether the constant term is pinned to a single value.
// Calling it on an unrelated fact is a caller bug.
func (d DiffRange) Certain() bool {
	if !d.related {
		panic("DiffRange.Certain: fact is unrelated")
	}
	return d.High == d.Low+1
}

// Add composes two facts additively. The result is related only when both
// sides are; bounds follow the half-open sum [l1+l2, h1+h2-1). The exact
// formula is load bearing for downstream range checks.
func (d DiffRange) Add(o DiffRange) DiffRange {
	return newDiffRange(d.related && o.related, d.Coeff+o.Coeff, d.Low+o.Low, d.High+o.High-1)
}

// Sub composes two facts subtractively: [l1-h2+1, h1-l2).
func (d DiffRange) Sub(o DiffRange) DiffRange {
	return newDiffRange(d.related && o.related, d.Coeff-o.Coeff, d.Low-o.High+1, d.High-o.Low)
}

func (d DiffRange) String() string {
	if !d.related {
		return "unrelated"
	}
	return fmt.Sprintf("%d*x + [%d, %d)", d.Coeff, d.Low, d.High)
}

// DiffPtrResult is the answer to comparing two values: either their
// difference is a known constant, or nothing is provable.
type DiffPtrResult struct {
	IsCertain bool
	Diff      int
}

func CertainDiff(diff int) DiffPtrResult {
	return DiffPtrResult{IsCertain: true, Diff: diff}
}

func UncertainDiff() DiffPtrResult {
	return DiffPtrResult{}
}

func (r DiffPtrResult) String() string {
	if !r.IsCertain {
		return "uncertain"
	}
	return fmt.Sprintf("certain(%d)", r.Diff)
}
