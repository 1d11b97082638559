package analysis

import (
	"fmt"

	"github.com/thiremani/loom/ir"
)

// loopIndexDiff computes, for each visited node, its affine relationship to
// one induction variable of one loop. Results are memoized per node id so
// shared subexpressions are analyzed once; the visitor is built fresh per
// query and discarded afterwards.
type loopIndexDiff struct {
	loop    ir.Stmt
	index   int
	results map[visitKey]DiffRange
}

// visitKey includes the lane: a multi-lane node reached through two
// shuffles selecting different lanes holds a different value per lane, so
// facts must not be shared across lanes.
type visitKey struct {
	id   int
	lane int
}

func (v *loopIndexDiff) visit(stmt ir.Stmt, lane int) DiffRange {
	key := visitKey{id: stmt.ID(), lane: lane}
	if r, ok := v.results[key]; ok {
		return r
	}
	r := v.compute(stmt, lane)
	v.results[key] = r
	return r
}

func (v *loopIndexDiff) compute(stmt ir.Stmt, lane int) DiffRange {
	switch s := stmt.(type) {
	case *ir.LoopIndexStmt:
		if s.Loop == v.loop && s.Index == v.index {
			return ExactDiff(1, 0)
		}
		// An index of some other loop resolves to an unknown constant
		// within that loop's static bounds, if they are known.
		if rangeFor, ok := s.Loop.(*ir.RangeForStmt); ok {
			begin, beginOK := intConstValue(rangeFor.Begin)
			end, endOK := intConstValue(rangeFor.End)
			if beginOK && endOK {
				// Begin <= End even when the loop is reversed: a reversed
				// loop iterates from End-1 down to Begin.
				return BoundedDiff(0, begin, end)
			}
		}
		return DiffRange{}

	case *ir.ShuffleStmt:
		if s.Width() != 1 {
			panic(fmt.Sprintf("loopIndexDiff: shuffle %s has width %d, want 1", s, s.Width()))
		}
		elem := s.Elements[lane]
		return v.visit(elem.Src, elem.Index)

	case *ir.ConstStmt:
		if val := s.Values[lane]; val.IsI32() {
			return ExactDiff(0, int(val.Int))
		}
		return DiffRange{}

	case *ir.RangeAssumeStmt:
		return v.visit(s.Base, lane).Add(BoundedDiff(0, s.Low, s.High))

	case *ir.BinaryStmt:
		if s.Op == ir.Add || s.Op == ir.Sub {
			lhs := v.visit(s.LHS, lane)
			rhs := v.visit(s.RHS, lane)
			if lhs.Related() && rhs.Related() {
				if s.Op == ir.Add {
					return lhs.Add(rhs)
				}
				return lhs.Sub(rhs)
			}
		}
		return DiffRange{}

	default:
		// Loads and every node kind not listed above are opaque.
		return DiffRange{}
	}
}

// intConstValue extracts a single-lane integer constant, of any width.
// Loop bounds are not restricted to i32 the way value constants are.
func intConstValue(stmt ir.Stmt) (int, bool) {
	c, ok := stmt.(*ir.ConstStmt)
	if !ok || c.Width() != 1 || c.Values[0].Type.Kind() != ir.IntKind {
		return 0, false
	}
	return int(c.Values[0].Int), true
}

// ValueDiffLoopIndex describes value's affine relationship to induction
// variable indexID of loop. The loop must be a range-bounded or structured
// parallel for, or a dispatch wrapper running a structured for, and value
// must be single-lane at the query root; both are caller contracts and
// violations panic. An unrelated result means no relationship could be
// proved, which is an answer, not an error.
func ValueDiffLoopIndex(value, loop ir.Stmt, indexID int) DiffRange {
	switch l := loop.(type) {
	case *ir.RangeForStmt, *ir.StructForStmt:
	case *ir.DispatchStmt:
		if l.Task != ir.TaskStructFor {
			panic(fmt.Sprintf("ValueDiffLoopIndex: dispatch %s runs %s, want %s", l, l.Task, ir.TaskStructFor))
		}
	default:
		panic(fmt.Sprintf("ValueDiffLoopIndex: unsupported loop kind %T", loop))
	}
	if li, ok := value.(*ir.LoopIndexStmt); ok && li.Loop == loop && li.Index == indexID {
		return ExactDiff(1, 0)
	}
	if value.Width() != 1 {
		panic(fmt.Sprintf("ValueDiffLoopIndex: %s has width %d, want 1", value, value.Width()))
	}
	v := &loopIndexDiff{
		loop:    loop,
		index:   indexID,
		results: make(map[visitKey]DiffRange),
	}
	return v.visit(value, 0)
}

// baseOffset is the outcome of the shallow base+offset peel: the value
// equals base + offset. A nil base with found set means the value is the
// bare constant offset.
type baseOffset struct {
	found  bool
	base   ir.Stmt
	offset int
}

// findBaseOffset peels exactly one additive layer: the right operand must
// reduce to a bare i32 constant and the left operand is kept opaque even
// when it is itself decomposable, so (x+1)+2 keeps base (x+1). Callers
// rely on this narrower guarantee; do not recurse into the left side.
func findBaseOffset(value ir.Stmt) baseOffset {
	switch s := value.(type) {
	case *ir.ConstStmt:
		if s.Width() != 1 {
			panic(fmt.Sprintf("findBaseOffset: const %s has width %d, want 1", s, s.Width()))
		}
		if s.Values[0].IsI32() {
			return baseOffset{found: true, offset: int(s.Values[0].Int)}
		}
	case *ir.BinaryStmt:
		rhs, ok := s.RHS.(*ir.ConstStmt)
		if !ok {
			break
		}
		r := findBaseOffset(rhs)
		if !r.found || r.base != nil || (s.Op != ir.Add && s.Op != ir.Sub) {
			break
		}
		if s.Op == ir.Sub {
			r.offset = -r.offset
		}
		r.base = s.LHS
		return r
	}
	return baseOffset{}
}

// ValueDiffPtrIndex compares two values for a provable constant difference,
// val1 minus val2. Identical nodes are certain zero; otherwise both values
// must decompose to the same base node for the offsets to be comparable.
func ValueDiffPtrIndex(val1, val2 ir.Stmt) DiffPtrResult {
	if val1 == val2 {
		return CertainDiff(0)
	}
	v1 := findBaseOffset(val1)
	v2 := findBaseOffset(val2)
	if !v1.found || !v2.found || v1.base != v2.base {
		return UncertainDiff()
	}
	return CertainDiff(v1.offset - v2.offset)
}
