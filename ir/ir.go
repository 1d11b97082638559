package ir

import (
	"fmt"
	"strings"
)

// Stmt is the base interface for all IR nodes. Nodes live in a Graph arena
// and carry a stable instance id; analyses key their memo tables on it.
type Stmt interface {
	ID() int
	Width() int
	String() string
	stmtNode()
}

type base struct {
	id int
}

func (b *base) ID() int    { return b.id }
func (b *base) Width() int { return 1 }
func (b *base) stmtNode()  {}

func name(s Stmt) string {
	return fmt.Sprintf("$%d", s.ID())
}

// BinOp enumerates binary operators. The difference analysis models only
// Add and Sub; everything else is opaque to it.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Mod
	Min
	Max
)

var binOps = [...]string{
	Add: "add",
	Sub: "sub",
	Mul: "mul",
	Div: "div",
	Mod: "mod",
	Min: "min",
	Max: "max",
}

func (op BinOp) String() string {
	if 0 <= int(op) && int(op) < len(binOps) {
		return binOps[op]
	}
	return fmt.Sprintf("binop(%d)", int(op))
}

type UnOp int

const (
	Neg UnOp = iota
	Not
)

var unOps = [...]string{
	Neg: "neg",
	Not: "not",
}

func (op UnOp) String() string {
	if 0 <= int(op) && int(op) < len(unOps) {
		return unOps[op]
	}
	return fmt.Sprintf("unop(%d)", int(op))
}

// TaskType labels what a DispatchStmt wrapper runs.
type TaskType int

const (
	TaskSerial TaskType = iota
	TaskRangeFor
	TaskStructFor
)

var taskTypes = [...]string{
	TaskSerial:    "serial",
	TaskRangeFor:  "range_for",
	TaskStructFor: "struct_for",
}

func (t TaskType) String() string {
	if 0 <= int(t) && int(t) < len(taskTypes) {
		return taskTypes[t]
	}
	return fmt.Sprintf("task(%d)", int(t))
}

// ConstStmt holds one TypedValue per lane.
type ConstStmt struct {
	base
	Values []TypedValue
}

func (c *ConstStmt) Width() int { return len(c.Values) }

func (c *ConstStmt) String() string {
	vals := make([]string, len(c.Values))
	for i, v := range c.Values {
		vals[i] = v.String()
	}
	return fmt.Sprintf("%s = const [%s]", name(c), strings.Join(vals, ", "))
}

// LoopIndexStmt references induction variable Index of Loop.
type LoopIndexStmt struct {
	base
	Loop  Stmt
	Index int
}

func (l *LoopIndexStmt) String() string {
	return fmt.Sprintf("%s = loop_index %s[%d]", name(l), name(l.Loop), l.Index)
}

// RangeForStmt is a range-bounded parallel loop over [Begin, End).
// Begin <= End holds even when Reversed; a reversed loop iterates from
// End-1 down to Begin.
type RangeForStmt struct {
	base
	Begin    Stmt
	End      Stmt
	Reversed bool
	Body     []Stmt
}

func (r *RangeForStmt) String() string {
	return fmt.Sprintf("%s = range_for %s..%s", name(r), name(r.Begin), name(r.End))
}

// StructForStmt is a structured parallel loop over a container with Dims
// induction variables.
type StructForStmt struct {
	base
	Dims int
	Body []Stmt
}

func (s *StructForStmt) String() string {
	return fmt.Sprintf("%s = struct_for dims=%d", name(s), s.Dims)
}

// DispatchStmt wraps a task body for offloaded execution.
type DispatchStmt struct {
	base
	Task TaskType
	Body []Stmt
}

func (d *DispatchStmt) String() string {
	return fmt.Sprintf("%s = dispatch %s", name(d), d.Task)
}

// LaneRef names lane Index of the multi-lane value Src.
type LaneRef struct {
	Src   Stmt
	Index int
}

// ShuffleStmt selects lanes out of multi-lane sources, one LaneRef per
// output lane.
type ShuffleStmt struct {
	base
	Elements []LaneRef
}

func (s *ShuffleStmt) Width() int { return len(s.Elements) }

func (s *ShuffleStmt) String() string {
	elems := make([]string, len(s.Elements))
	for i, e := range s.Elements {
		elems[i] = fmt.Sprintf("%s[%d]", name(e.Src), e.Index)
	}
	return fmt.Sprintf("%s = shuffle %s", name(s), strings.Join(elems, ", "))
}

// RangeAssumeStmt wraps Base with an asserted bound: Base + c for some
// c in [Low, High).
type RangeAssumeStmt struct {
	base
	Base Stmt
	Low  int
	High int
}

func (r *RangeAssumeStmt) String() string {
	return fmt.Sprintf("%s = assume %s + [%d, %d)", name(r), name(r.Base), r.Low, r.High)
}

type BinaryStmt struct {
	base
	Op  BinOp
	LHS Stmt
	RHS Stmt
}

func (b *BinaryStmt) String() string {
	return fmt.Sprintf("%s = %s %s %s", name(b), b.Op, name(b.LHS), name(b.RHS))
}

type UnaryStmt struct {
	base
	Op      UnOp
	Operand Stmt
}

func (u *UnaryStmt) String() string {
	return fmt.Sprintf("%s = %s %s", name(u), u.Op, name(u.Operand))
}

// LoadStmt reads memory through Src. Loads are opaque to the difference
// analysis.
type LoadStmt struct {
	base
	Src Stmt
}

func (l *LoadStmt) String() string {
	return fmt.Sprintf("%s = load %s", name(l), name(l.Src))
}

// AllocStmt is an opaque storage node; it commonly serves as the symbolic
// base of address arithmetic.
type AllocStmt struct {
	base
	Type Type
}

func (a *AllocStmt) String() string {
	return fmt.Sprintf("%s = alloc %s", name(a), a.Type)
}

// Graph is the arena all nodes of one IR module live in. Ids are assigned
// in allocation order and never reused; node identity is pointer identity,
// but the stable id is what analyses key memo tables on.
type Graph struct {
	stmts []Stmt
}

func NewGraph() *Graph {
	return &Graph{}
}

// Size returns the number of nodes allocated in the graph.
func (g *Graph) Size() int {
	return len(g.stmts)
}

func (g *Graph) register(s Stmt, b *base) {
	b.id = len(g.stmts)
	g.stmts = append(g.stmts, s)
}

func (g *Graph) Const(vals ...TypedValue) *ConstStmt {
	if len(vals) == 0 {
		panic("Const: at least one lane required")
	}
	s := &ConstStmt{Values: vals}
	g.register(s, &s.base)
	return s
}

// IntConst builds a single-lane i32 constant.
func (g *Graph) IntConst(v int32) *ConstStmt {
	return g.Const(NewInt(I32, int64(v)))
}

func (g *Graph) LoopIndex(loop Stmt, index int) *LoopIndexStmt {
	s := &LoopIndexStmt{Loop: loop, Index: index}
	g.register(s, &s.base)
	return s
}

func (g *Graph) RangeFor(begin, end Stmt) *RangeForStmt {
	s := &RangeForStmt{Begin: begin, End: end}
	g.register(s, &s.base)
	return s
}

func (g *Graph) StructFor(dims int) *StructForStmt {
	s := &StructForStmt{Dims: dims}
	g.register(s, &s.base)
	return s
}

func (g *Graph) Dispatch(task TaskType) *DispatchStmt {
	s := &DispatchStmt{Task: task}
	g.register(s, &s.base)
	return s
}

func (g *Graph) Shuffle(elems ...LaneRef) *ShuffleStmt {
	if len(elems) == 0 {
		panic("Shuffle: at least one lane required")
	}
	s := &ShuffleStmt{Elements: elems}
	g.register(s, &s.base)
	return s
}

func (g *Graph) RangeAssume(stmtBase Stmt, low, high int) *RangeAssumeStmt {
	if low > high {
		panic(fmt.Sprintf("RangeAssume: empty bound [%d, %d)", low, high))
	}
	s := &RangeAssumeStmt{Base: stmtBase, Low: low, High: high}
	g.register(s, &s.base)
	return s
}

func (g *Graph) Binary(op BinOp, lhs, rhs Stmt) *BinaryStmt {
	s := &BinaryStmt{Op: op, LHS: lhs, RHS: rhs}
	g.register(s, &s.base)
	return s
}

func (g *Graph) Unary(op UnOp, operand Stmt) *UnaryStmt {
	s := &UnaryStmt{Op: op, Operand: operand}
	g.register(s, &s.base)
	return s
}

func (g *Graph) Load(src Stmt) *LoadStmt {
	s := &LoadStmt{Src: src}
	g.register(s, &s.base)
	return s
}

func (g *Graph) Alloc(t Type) *AllocStmt {
	s := &AllocStmt{Type: t}
	g.register(s, &s.base)
	return s
}
