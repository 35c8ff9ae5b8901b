// Copyright (c) 2026 the bitprobe authors
//
// MIT License

package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hdl-tools/bitprobe/engine"
	"github.com/hdl-tools/bitprobe/ir"
)

// populated builds an engine over f and fails the test when Populate does.
func populated(t *testing.T, f *ir.Function, options ...engine.Option) *engine.BDDEngine {
	t.Helper()
	e := engine.New(options...)
	_, err := e.Populate(f)
	require.NoError(t, err)
	return e
}

// must unwraps a builder result inside test setup.
func must(t *testing.T) func(ir.NodeID, error) ir.NodeID {
	return func(id ir.NodeID, err error) ir.NodeID {
		t.Helper()
		require.NoError(t, err)
		return id
	}
}

func TestLiteralIsFullyKnown(t *testing.T) {
	f := ir.NewFunction("literal")
	lit := f.Literal(ir.BitsFromUint64(4, 0b1010))
	e := populated(t, f)

	require.True(t, engine.IsFullyKnown(e, lit))
	v, ok := e.KnownBits(lit).Value()
	require.True(t, ok)
	require.Equal(t, uint64(0b1010), v.Uint64())
}

func TestParamIsUnknownButTracked(t *testing.T) {
	f := ir.NewFunction("param")
	x := f.Param("x", 3)
	e := populated(t, f)

	require.True(t, e.IsTracked(x))
	require.False(t, engine.IsKnown(e, engine.BitLocation(x, 0)))
	require.False(t, engine.IsFullyKnown(e, x))
}

func TestConstantFolding(t *testing.T) {
	f := ir.NewFunction("fold")
	x := f.Param("x", 4)
	zero := f.Literal(ir.NewBits(4))
	masked := must(t)(f.And(x, zero))
	tauto := must(t)(f.Or(x, must(t)(f.Not(x))))
	contra := must(t)(f.Xor(x, x))
	e := populated(t, f)

	require.True(t, engine.IsAllZeros(e, masked))
	require.True(t, engine.IsAllOnes(e, tauto))
	require.True(t, engine.IsAllZeros(e, contra))
	require.False(t, engine.IsAllZeros(e, x))
	require.False(t, engine.IsAllOnes(e, x))
}

func TestSelfEqualityIsKnown(t *testing.T) {
	f := ir.NewFunction("selfeq")
	x := f.Param("x", 2)
	y := f.Param("y", 2)
	same := must(t)(f.Eq(x, x))
	other := must(t)(f.Eq(x, y))
	e := populated(t, f)

	v, known := engine.KnownValue(e, engine.BitLocation(same, 0))
	require.True(t, known)
	require.True(t, v)
	require.False(t, engine.IsKnown(e, engine.BitLocation(other, 0)))
}

func TestPartialKnownBits(t *testing.T) {
	f := ir.NewFunction("partial")
	x := f.Param("x", 2)
	one := f.Literal(ir.BitsFromUint64(1, 1))
	mixed := must(t)(f.Concat(one, x))
	e := populated(t, f)

	require.Equal(t, "0b1XX", e.KnownBits(mixed).String())
}

func TestImplies(t *testing.T) {
	f := ir.NewFunction("implies")
	x := f.Param("x", 1)
	y := f.Param("y", 1)
	both := must(t)(f.And(x, y))
	either := must(t)(f.Or(x, y))
	e := populated(t, f)

	bx := engine.BitLocation(x, 0)
	bboth := engine.BitLocation(both, 0)
	beither := engine.BitLocation(either, 0)

	require.True(t, e.Implies(bboth, bx))
	require.True(t, e.Implies(bx, beither))
	require.True(t, e.Implies(bboth, beither))
	require.True(t, e.Implies(bx, bx))
	require.False(t, e.Implies(bx, bboth))
	require.False(t, e.Implies(beither, bx))
}

func TestImpliesTransitivity(t *testing.T) {
	f := ir.NewFunction("transitivity")
	x := f.Param("x", 1)
	y := f.Param("y", 1)
	z := f.Param("z", 1)
	a := must(t)(f.And(x, y, z))
	b := must(t)(f.And(x, y))
	c := must(t)(f.Or(x, z))
	e := populated(t, f)

	ba := engine.BitLocation(a, 0)
	bb := engine.BitLocation(b, 0)
	bc := engine.BitLocation(c, 0)

	require.True(t, e.Implies(ba, bb))
	require.True(t, e.Implies(bb, bc))
	require.True(t, e.Implies(ba, bc))
}

func TestSpecializationPreservesImplications(t *testing.T) {
	f := ir.NewFunction("monotone")
	x := f.Param("x", 1)
	y := f.Param("y", 1)
	both := must(t)(f.And(x, y))
	e := populated(t, f)

	bboth := engine.BitLocation(both, 0)
	bx := engine.BitLocation(x, 0)
	by := engine.BitLocation(y, 0)

	require.True(t, e.Implies(bboth, bx))
	require.False(t, e.Implies(bx, by))

	sp := e.SpecializeGiven(map[ir.NodeID]engine.Ternary{
		y: engine.FromValue(ir.BitsFromUint64(1, 1)),
	})
	// assumptions can add implications but never remove them
	require.True(t, sp.Implies(bboth, bx))
	require.True(t, sp.Implies(bx, by))
}

func TestKnownEquals(t *testing.T) {
	f := ir.NewFunction("equals")
	x := f.Param("x", 1)
	y := f.Param("y", 1)
	notnot := must(t)(f.Not(must(t)(f.Not(x))))
	inv := must(t)(f.Not(x))
	e := populated(t, f)

	bx := engine.BitLocation(x, 0)
	by := engine.BitLocation(y, 0)
	bnotnot := engine.BitLocation(notnot, 0)
	binv := engine.BitLocation(inv, 0)

	require.True(t, e.KnownEquals(bx, bnotnot))
	require.True(t, e.KnownNotEquals(bx, binv))
	require.False(t, e.KnownEquals(bx, by))
	require.False(t, e.KnownNotEquals(bx, by))
	require.False(t, e.KnownEquals(bx, binv))
	require.False(t, e.KnownNotEquals(bx, bnotnot))
}

func TestAtMostOneTrue(t *testing.T) {
	f := ir.NewFunction("amot")
	x := f.Param("x", 1)
	y := f.Param("y", 1)
	notx := must(t)(f.Not(x))
	noty := must(t)(f.Not(y))
	a := must(t)(f.And(x, y))
	b := must(t)(f.And(x, noty))
	c := must(t)(f.And(notx, y))
	e := populated(t, f)

	ba := engine.BitLocation(a, 0)
	bb := engine.BitLocation(b, 0)
	bc := engine.BitLocation(c, 0)
	bx := engine.BitLocation(x, 0)
	by := engine.BitLocation(y, 0)

	// the three products are pairwise disjoint
	require.True(t, e.AtMostOneTrue(ba, bb, bc))
	require.True(t, e.AtMostOneTrue(bb, ba, bc))
	// free bits are not
	require.False(t, e.AtMostOneTrue(bx, by))
	// empty and singleton sets hold vacuously
	require.True(t, e.AtMostOneTrue())
	require.True(t, e.AtMostOneTrue(bx))
}

func TestAtLeastOneTrue(t *testing.T) {
	f := ir.NewFunction("alot")
	x := f.Param("x", 1)
	y := f.Param("y", 1)
	notx := must(t)(f.Not(x))
	e := populated(t, f)

	bx := engine.BitLocation(x, 0)
	by := engine.BitLocation(y, 0)
	bnotx := engine.BitLocation(notx, 0)

	require.True(t, e.AtLeastOneTrue(bx, bnotx))
	require.True(t, e.AtLeastOneTrue(bx, bnotx, by))
	require.False(t, e.AtLeastOneTrue(bx, by))
	// the empty disjunction is false
	require.False(t, e.AtLeastOneTrue())
}

func TestImpliedNodeValue(t *testing.T) {
	f := ir.NewFunction("implied")
	x := f.Param("x", 1)
	inv := must(t)(f.Not(x))
	pair := must(t)(f.Concat(inv, x))
	e := populated(t, f)

	// assuming x == 0 forces both bits of {!x, x}
	preds := []engine.BitPredicate{{Loc: engine.BitLocation(x, 0), Value: false}}
	v, ok := e.ImpliedNodeValue(preds, pair)
	require.True(t, ok)
	require.Equal(t, uint64(0b10), v.Uint64())

	// with no predicates nothing is forced
	_, ok = e.ImpliedNodeValue(nil, pair)
	require.False(t, ok)
}

func TestImpliedNodeTernary(t *testing.T) {
	f := ir.NewFunction("impliedternary")
	x := f.Param("x", 1)
	y := f.Param("y", 1)
	pair := must(t)(f.Concat(y, x))
	e := populated(t, f)

	preds := []engine.BitPredicate{{Loc: engine.BitLocation(x, 0), Value: true}}
	tr := e.ImpliedNodeTernary(preds, pair)
	require.Equal(t, "0bX1", tr.String())
}

func TestImpliedNodeValueThroughStructure(t *testing.T) {
	f := ir.NewFunction("structure")
	x := f.Param("x", 1)
	y := f.Param("y", 1)
	implic := must(t)(f.Or(must(t)(f.Not(x)), y))
	e := populated(t, f)

	// assuming x and (x implies y) forces y
	preds := []engine.BitPredicate{
		{Loc: engine.BitLocation(x, 0), Value: true},
		{Loc: engine.BitLocation(implic, 0), Value: true},
	}
	v, ok := e.ImpliedNodeValue(preds, y)
	require.True(t, ok)
	require.Equal(t, uint64(1), v.Uint64())
}

func TestContradictoryPredicatesForceEverything(t *testing.T) {
	f := ir.NewFunction("contradiction")
	x := f.Param("x", 1)
	y := f.Param("y", 2)
	e := populated(t, f)

	preds := []engine.BitPredicate{
		{Loc: engine.BitLocation(x, 0), Value: true},
		{Loc: engine.BitLocation(x, 0), Value: false},
	}
	tr := e.ImpliedNodeTernary(preds, y)
	require.True(t, tr.IsFullyKnown())
}

func TestSpecializeGiven(t *testing.T) {
	f := ir.NewFunction("specialize")
	x := f.Param("x", 1)
	y := f.Param("y", 1)
	implic := must(t)(f.Or(must(t)(f.Not(x)), y))
	e := populated(t, f)

	// assume x == 1 and (x implies y) == 1
	sp := e.SpecializeGiven(map[ir.NodeID]engine.Ternary{
		x:      engine.FromValue(ir.BitsFromUint64(1, 1)),
		implic: engine.FromValue(ir.BitsFromUint64(1, 1)),
	})
	require.True(t, engine.IsAllOnes(sp, y))
	v, ok := sp.ImpliedNodeValue(nil, y)
	require.True(t, ok)
	require.Equal(t, uint64(1), v.Uint64())

	// the base engine is untouched
	require.False(t, engine.IsKnown(e, engine.BitLocation(y, 0)))
}

func TestSpecializeGivenPartialTernary(t *testing.T) {
	f := ir.NewFunction("specializepartial")
	x := f.Param("x", 2)
	e := populated(t, f)

	given := engine.NewTernary(2)
	given.Set(1, true)
	sp := e.SpecializeGiven(map[ir.NodeID]engine.Ternary{x: given})

	require.True(t, engine.IsKnown(sp, engine.BitLocation(x, 1)))
	require.False(t, engine.IsKnown(sp, engine.BitLocation(x, 0)))
}

func TestSpecializeGivenPredicateSel(t *testing.T) {
	f := ir.NewFunction("specializesel")
	s := f.Param("s", 1)
	a := f.Param("a", 4)
	b := f.Param("b", 4)
	sel := must(t)(f.Sel(s, []ir.NodeID{a, b}, ir.NoNode))
	e := populated(t, f)

	sp := e.SpecializeGivenPredicate([]engine.PredicateState{{Sel: sel, Arm: 1}})

	// assuming arm 1 is taken pins the selector and forwards case b
	require.True(t, engine.IsAllOnes(sp, s))
	for i := 0; i < 4; i++ {
		require.True(t, sp.KnownEquals(engine.BitLocation(sel, i), engine.BitLocation(b, i)))
	}
	require.False(t, e.KnownEquals(engine.BitLocation(sel, 0), engine.BitLocation(b, 0)))
}

func TestSpecializeGivenPredicateOneHotSel(t *testing.T) {
	f := ir.NewFunction("specializeohs")
	s := f.Param("s", 2)
	a := f.Param("a", 1)
	b := f.Param("b", 1)
	ohs := must(t)(f.OneHotSel(s, []ir.NodeID{a, b}))
	e := populated(t, f)

	sp := e.SpecializeGivenPredicate([]engine.PredicateState{{Sel: ohs, Arm: 0}})
	v, known := engine.KnownValue(sp, engine.BitLocation(s, 0))
	require.True(t, known)
	require.True(t, v)
	// selector bit 1 stays free, so the output is still unknown
	require.False(t, engine.IsKnown(sp, engine.BitLocation(ohs, 0)))
}

func TestSpecializeNested(t *testing.T) {
	f := ir.NewFunction("nested")
	x := f.Param("x", 1)
	y := f.Param("y", 1)
	both := must(t)(f.And(x, y))
	e := populated(t, f)

	sp := e.SpecializeGiven(map[ir.NodeID]engine.Ternary{
		x: engine.FromValue(ir.BitsFromUint64(1, 1)),
	})
	require.False(t, engine.IsKnown(sp, engine.BitLocation(both, 0)))

	sp2 := sp.SpecializeGiven(map[ir.NodeID]engine.Ternary{
		y: engine.FromValue(ir.BitsFromUint64(1, 1)),
	})
	require.True(t, engine.IsAllOnes(sp2, both))
	// the intermediate engine keeps only its own assumption
	require.False(t, engine.IsKnown(sp, engine.BitLocation(both, 0)))
}

func TestSpecializedPopulateFails(t *testing.T) {
	f := ir.NewFunction("nopopulate")
	f.Param("x", 1)
	e := populated(t, f)

	sp := e.SpecializeGiven(nil)
	_, err := sp.Populate(f)
	require.Error(t, err)
}

func TestContradictorySpecializationIsVacuous(t *testing.T) {
	f := ir.NewFunction("vacuous")
	x := f.Param("x", 1)
	y := f.Param("y", 1)
	e := populated(t, f)

	given := map[ir.NodeID]engine.Ternary{x: engine.FromValue(ir.BitsFromUint64(1, 1))}
	sp := e.SpecializeGiven(given).SpecializeGiven(map[ir.NodeID]engine.Ternary{
		x: engine.FromValue(ir.BitsFromUint64(1, 0)),
	})

	// under an unsatisfiable assumption every query holds
	require.True(t, sp.KnownEquals(engine.BitLocation(x, 0), engine.BitLocation(y, 0)))
	require.True(t, sp.KnownNotEquals(engine.BitLocation(x, 0), engine.BitLocation(y, 0)))
	require.True(t, sp.AtLeastOneTrue(engine.BitLocation(y, 0)))
	require.True(t, sp.KnownBits(y).IsFullyKnown())
}

func TestPathLimitTruncates(t *testing.T) {
	f := ir.NewFunction("pathlimit")
	x := f.Param("x", 1)
	y := f.Param("y", 1)
	parity := must(t)(f.Xor(x, y))
	folded := must(t)(f.And(x, must(t)(f.Not(x))))
	e := populated(t, f, engine.PathLimit(3))

	// the parity expression has four paths and is dropped
	require.False(t, engine.IsKnown(e, engine.BitLocation(parity, 0)))
	// expressions under the limit keep their precision
	require.True(t, engine.IsAllZeros(e, folded))
}

func TestNodeFilter(t *testing.T) {
	f := ir.NewFunction("filter")
	x := f.Param("x", 1)
	excluded := must(t)(f.And(x, must(t)(f.Not(x))))
	kept := must(t)(f.Or(x, must(t)(f.Not(x))))
	e := populated(t, f, engine.NodeFilter(func(id ir.NodeID) bool {
		return id != excluded
	}))

	require.False(t, e.IsTracked(excluded))
	require.False(t, engine.IsKnown(e, engine.BitLocation(excluded, 0)))
	require.True(t, engine.IsAllOnes(e, kept))
}

func TestExpensiveOperationsAreNotModeled(t *testing.T) {
	f := ir.NewFunction("expensive")
	x := f.Param("x", 4)
	y := f.Param("y", 4)
	sum := must(t)(f.Add(x, y))
	// a cheap consumer of an unmodeled node stays sound
	same := must(t)(f.Eq(sum, sum))
	e := populated(t, f)

	require.False(t, e.IsTracked(sum))
	require.True(t, engine.IsAllOnes(e, same))
}

func TestPopulateFixpoint(t *testing.T) {
	f := ir.NewFunction("fixpoint")
	x := f.Param("x", 1)
	must(t)(f.Not(x))

	e := engine.New()
	changed, err := e.Populate(f)
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = e.Populate(f)
	require.NoError(t, err)
	require.False(t, changed)

	g := ir.NewFunction("fixpoint2")
	g.Literal(ir.BitsFromUint64(1, 1))
	changed, err = e.Populate(g)
	require.NoError(t, err)
	require.True(t, changed)
}

func TestPopulateNil(t *testing.T) {
	e := engine.New()
	_, err := e.Populate(nil)
	require.Error(t, err)
}

func TestQueryPanics(t *testing.T) {
	f := ir.NewFunction("panics")
	x := f.Param("x", 2)

	unpopulated := engine.New()
	require.Panics(t, func() { unpopulated.KnownBits(x) })

	e := populated(t, f)
	require.Panics(t, func() { e.KnownBits(ir.NodeID(42)) })
	require.Panics(t, func() {
		e.Implies(engine.BitLocation(x, 2), engine.BitLocation(x, 0))
	})
	require.Panics(t, func() {
		loc := engine.TreeBitLocation{Node: x, Path: []int{0}, Bit: 0}
		e.Implies(loc, engine.BitLocation(x, 0))
	})
	require.Panics(t, func() {
		e.SpecializeGiven(map[ir.NodeID]engine.Ternary{x: engine.NewTernary(1)})
	})
}
