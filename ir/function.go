// Copyright (c) 2026 the bitprobe authors
//
// MIT License

package ir

import "fmt"

// NodeID is the stable identity of a node inside one Function: its index in
// the arena, assigned in creation order.
type NodeID int32

// NoNode is the null node identity, used for optional operands such as the
// default case of a select.
const NoNode NodeID = -1

// Node is one operation in a function body. Nodes are immutable once
// created; all fields are reached through accessors so that consumers
// cannot mutate the arena.
type Node struct {
	id       NodeID
	op       Op
	width    int32
	operands []NodeID
	value    Bits   // OpLiteral payload
	start    int32  // OpBitSlice low bit
	name     string // OpParam name
}

// ID returns the identity of the node.
func (n *Node) ID() NodeID { return n.id }

// Op returns the operation kind of the node.
func (n *Node) Op() Op { return n.op }

// Width returns the bit width of the node's output.
func (n *Node) Width() int { return int(n.width) }

// Operands returns the ordered operand list of the node. The slice is owned
// by the arena and must not be modified.
func (n *Node) Operands() []NodeID { return n.operands }

// Value returns the payload of an OpLiteral node.
func (n *Node) Value() Bits { return n.value }

// SliceStart returns the low bit index of an OpBitSlice node.
func (n *Node) SliceStart() int { return int(n.start) }

// Name returns the name of an OpParam node.
func (n *Node) Name() string { return n.name }

// Function is an arena of nodes making up one function or process body.
// Nodes are stored in creation order, which is also a topological order
// since builder methods can only reference already-created nodes.
type Function struct {
	name  string
	nodes []Node
}

// NewFunction returns an empty function body.
func NewFunction(name string) *Function {
	return &Function{name: name}
}

// Name returns the name given to the function at creation.
func (f *Function) Name() string { return f.name }

// NumNodes returns the number of nodes in the arena.
func (f *Function) NumNodes() int { return len(f.nodes) }

// Node returns the node with the given identity.
func (f *Function) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(f.nodes) {
		panic(fmt.Sprintf("ir: unknown node id %d in function %q", id, f.name))
	}
	return &f.nodes[id]
}

// Nodes calls fn for every node of the arena in topological order.
func (f *Function) Nodes(fn func(*Node)) {
	for i := range f.nodes {
		fn(&f.nodes[i])
	}
}

func (f *Function) add(n Node) NodeID {
	n.id = NodeID(len(f.nodes))
	f.nodes = append(f.nodes, n)
	return n.id
}

func (f *Function) checkid(id NodeID) error {
	if id < 0 || int(id) >= len(f.nodes) {
		return fmt.Errorf("ir: unknown node id %d in function %q", id, f.name)
	}
	return nil
}

func (f *Function) checkids(ids []NodeID) error {
	for _, id := range ids {
		if err := f.checkid(id); err != nil {
			return err
		}
	}
	return nil
}

// sameWidth checks that all the identified nodes share one bit width and
// returns it.
func (f *Function) sameWidth(ids []NodeID) (int32, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("ir: operation needs at least one operand")
	}
	if err := f.checkids(ids); err != nil {
		return 0, err
	}
	w := f.nodes[ids[0]].width
	for _, id := range ids[1:] {
		if f.nodes[id].width != w {
			return 0, fmt.Errorf("ir: operand width mismatch: %d vs %d", w, f.nodes[id].width)
		}
	}
	return w, nil
}

// Param creates an external input of the given width.
func (f *Function) Param(name string, width int) NodeID {
	if width < 1 {
		panic(fmt.Sprintf("ir: invalid param width %d", width))
	}
	return f.add(Node{op: OpParam, width: int32(width), name: name})
}

// Literal creates a constant node holding the given value.
func (f *Function) Literal(v Bits) NodeID {
	if v.Width() < 1 {
		panic(fmt.Sprintf("ir: invalid literal width %d", v.Width()))
	}
	return f.add(Node{op: OpLiteral, width: int32(v.Width()), value: v.Clone()})
}

// Not creates the bitwise negation of a.
func (f *Function) Not(a NodeID) (NodeID, error) {
	if err := f.checkid(a); err != nil {
		return NoNode, err
	}
	return f.add(Node{op: OpNot, width: f.nodes[a].width, operands: []NodeID{a}}), nil
}

func (f *Function) naryBitwise(op Op, operands []NodeID) (NodeID, error) {
	w, err := f.sameWidth(operands)
	if err != nil {
		return NoNode, err
	}
	ops := make([]NodeID, len(operands))
	copy(ops, operands)
	return f.add(Node{op: op, width: w, operands: ops}), nil
}

// And creates the n-ary bitwise conjunction of the operands.
func (f *Function) And(operands ...NodeID) (NodeID, error) {
	return f.naryBitwise(OpAnd, operands)
}

// Or creates the n-ary bitwise disjunction of the operands.
func (f *Function) Or(operands ...NodeID) (NodeID, error) {
	return f.naryBitwise(OpOr, operands)
}

// Xor creates the n-ary bitwise exclusive or of the operands.
func (f *Function) Xor(operands ...NodeID) (NodeID, error) {
	return f.naryBitwise(OpXor, operands)
}

// Nand creates the negation of the n-ary conjunction of the operands.
func (f *Function) Nand(operands ...NodeID) (NodeID, error) {
	return f.naryBitwise(OpNand, operands)
}

// Nor creates the negation of the n-ary disjunction of the operands.
func (f *Function) Nor(operands ...NodeID) (NodeID, error) {
	return f.naryBitwise(OpNor, operands)
}

func (f *Function) reduce(op Op, a NodeID) (NodeID, error) {
	if err := f.checkid(a); err != nil {
		return NoNode, err
	}
	return f.add(Node{op: op, width: 1, operands: []NodeID{a}}), nil
}

// AndReduce creates the 1-bit conjunction of all the bits of a.
func (f *Function) AndReduce(a NodeID) (NodeID, error) { return f.reduce(OpAndReduce, a) }

// OrReduce creates the 1-bit disjunction of all the bits of a.
func (f *Function) OrReduce(a NodeID) (NodeID, error) { return f.reduce(OpOrReduce, a) }

// XorReduce creates the 1-bit parity of all the bits of a.
func (f *Function) XorReduce(a NodeID) (NodeID, error) { return f.reduce(OpXorReduce, a) }

// Concat creates the concatenation of the operands, first operand in the
// most significant position.
func (f *Function) Concat(operands ...NodeID) (NodeID, error) {
	if len(operands) == 0 {
		return NoNode, fmt.Errorf("ir: concat needs at least one operand")
	}
	if err := f.checkids(operands); err != nil {
		return NoNode, err
	}
	var w int32
	for _, id := range operands {
		w += f.nodes[id].width
	}
	ops := make([]NodeID, len(operands))
	copy(ops, operands)
	return f.add(Node{op: OpConcat, width: w, operands: ops}), nil
}

// BitSlice creates the extraction of width bits of a starting at bit start.
func (f *Function) BitSlice(a NodeID, start, width int) (NodeID, error) {
	if err := f.checkid(a); err != nil {
		return NoNode, err
	}
	if start < 0 || width < 1 || start+width > int(f.nodes[a].width) {
		return NoNode, fmt.Errorf("ir: slice [%d:%d) out of range for width %d", start, start+width, f.nodes[a].width)
	}
	return f.add(Node{op: OpBitSlice, width: int32(width), operands: []NodeID{a}, start: int32(start)}), nil
}

func (f *Function) extend(op Op, a NodeID, width int) (NodeID, error) {
	if err := f.checkid(a); err != nil {
		return NoNode, err
	}
	if width < int(f.nodes[a].width) {
		return NoNode, fmt.Errorf("ir: cannot extend width %d to %d", f.nodes[a].width, width)
	}
	return f.add(Node{op: op, width: int32(width), operands: []NodeID{a}}), nil
}

// ZeroExt creates the zero extension of a to the given width.
func (f *Function) ZeroExt(a NodeID, width int) (NodeID, error) { return f.extend(OpZeroExt, a, width) }

// SignExt creates the sign extension of a to the given width.
func (f *Function) SignExt(a NodeID, width int) (NodeID, error) { return f.extend(OpSignExt, a, width) }

func (f *Function) compare(op Op, a, b NodeID) (NodeID, error) {
	if _, err := f.sameWidth([]NodeID{a, b}); err != nil {
		return NoNode, err
	}
	return f.add(Node{op: op, width: 1, operands: []NodeID{a, b}}), nil
}

// Eq creates the 1-bit equality comparison of a and b.
func (f *Function) Eq(a, b NodeID) (NodeID, error) { return f.compare(OpEq, a, b) }

// Ne creates the 1-bit disequality comparison of a and b.
func (f *Function) Ne(a, b NodeID) (NodeID, error) { return f.compare(OpNe, a, b) }

// Sel creates a case select: the output is cases[v] where v is the value of
// the selector, or def when v is past the last case. The default may be
// NoNode only when the cases exactly cover the selector range.
func (f *Function) Sel(selector NodeID, cases []NodeID, def NodeID) (NodeID, error) {
	if err := f.checkid(selector); err != nil {
		return NoNode, err
	}
	w, err := f.sameWidth(cases)
	if err != nil {
		return NoNode, err
	}
	selw := int(f.nodes[selector].width)
	span := 0
	if selw < 31 {
		span = 1 << selw
	}
	if span > 0 && len(cases) > span {
		return NoNode, fmt.Errorf("ir: %d cases for a %d-bit selector", len(cases), selw)
	}
	if def == NoNode {
		if span == 0 || len(cases) != span {
			return NoNode, fmt.Errorf("ir: select with %d cases for a %d-bit selector needs a default", len(cases), selw)
		}
	} else {
		if err := f.checkid(def); err != nil {
			return NoNode, err
		}
		if f.nodes[def].width != w {
			return NoNode, fmt.Errorf("ir: default width %d does not match case width %d", f.nodes[def].width, w)
		}
	}
	ops := make([]NodeID, 0, len(cases)+2)
	ops = append(ops, selector)
	ops = append(ops, cases...)
	if def != NoNode {
		ops = append(ops, def)
	}
	n := Node{op: OpSel, width: w, operands: ops}
	if def != NoNode {
		n.start = 1 // marks the presence of a default operand
	}
	return f.add(n), nil
}

// OneHotSel creates the disjunction of the cases gated by the bits of the
// selector: case i contributes when selector bit i is set. The selector
// width must equal the number of cases.
func (f *Function) OneHotSel(selector NodeID, cases []NodeID) (NodeID, error) {
	if err := f.checkid(selector); err != nil {
		return NoNode, err
	}
	w, err := f.sameWidth(cases)
	if err != nil {
		return NoNode, err
	}
	if int(f.nodes[selector].width) != len(cases) {
		return NoNode, fmt.Errorf("ir: one_hot_sel selector width %d for %d cases", f.nodes[selector].width, len(cases))
	}
	ops := make([]NodeID, 0, len(cases)+1)
	ops = append(ops, selector)
	ops = append(ops, cases...)
	return f.add(Node{op: OpOneHotSel, width: w, operands: ops}), nil
}

func (f *Function) arith(op Op, a, b NodeID) (NodeID, error) {
	w, err := f.sameWidth([]NodeID{a, b})
	if err != nil {
		return NoNode, err
	}
	return f.add(Node{op: op, width: w, operands: []NodeID{a, b}}), nil
}

// Add creates the addition of a and b.
func (f *Function) Add(a, b NodeID) (NodeID, error) { return f.arith(OpAdd, a, b) }

// Sub creates the subtraction of b from a.
func (f *Function) Sub(a, b NodeID) (NodeID, error) { return f.arith(OpSub, a, b) }

// UMul creates the unsigned multiplication of a and b.
func (f *Function) UMul(a, b NodeID) (NodeID, error) { return f.arith(OpUMul, a, b) }

// UDiv creates the unsigned division of a by b.
func (f *Function) UDiv(a, b NodeID) (NodeID, error) { return f.arith(OpUDiv, a, b) }

// UMod creates the unsigned remainder of a by b.
func (f *Function) UMod(a, b NodeID) (NodeID, error) { return f.arith(OpUMod, a, b) }

// ULt creates the 1-bit unsigned less-than comparison of a and b.
func (f *Function) ULt(a, b NodeID) (NodeID, error) { return f.compare(OpULt, a, b) }

// ULe creates the 1-bit unsigned less-or-equal comparison of a and b.
func (f *Function) ULe(a, b NodeID) (NodeID, error) { return f.compare(OpULe, a, b) }

// UGt creates the 1-bit unsigned greater-than comparison of a and b.
func (f *Function) UGt(a, b NodeID) (NodeID, error) { return f.compare(OpUGt, a, b) }

// UGe creates the 1-bit unsigned greater-or-equal comparison of a and b.
func (f *Function) UGe(a, b NodeID) (NodeID, error) { return f.compare(OpUGe, a, b) }

// Shll creates the left shift of a by the amount b.
func (f *Function) Shll(a, b NodeID) (NodeID, error) { return f.shift(OpShll, a, b) }

// Shrl creates the logical right shift of a by the amount b.
func (f *Function) Shrl(a, b NodeID) (NodeID, error) { return f.shift(OpShrl, a, b) }

func (f *Function) shift(op Op, a, b NodeID) (NodeID, error) {
	if err := f.checkids([]NodeID{a, b}); err != nil {
		return NoNode, err
	}
	return f.add(Node{op: op, width: f.nodes[a].width, operands: []NodeID{a, b}}), nil
}

// SelHasDefault reports whether an OpSel node carries a trailing default
// operand.
func (n *Node) SelHasDefault() bool {
	return n.op == OpSel && n.start == 1
}
