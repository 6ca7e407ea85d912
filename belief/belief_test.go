package belief_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/loopy/backend"
	"github.com/katalvlaran/loopy/belief"
	"github.com/katalvlaran/loopy/bp"
	"github.com/katalvlaran/loopy/core"
	"github.com/katalvlaran/loopy/kernel"
	"github.com/katalvlaran/loopy/wiring"
)

// fixture: x(3) - pairwise - y(2), plus an isolated z(2).
func fixture(t *testing.T) (*core.Graph, *wiring.Wiring) {
	t.Helper()
	g := core.NewGraph()
	x, err := g.AddVariable(3, core.WithName("x"))
	require.NoError(t, err)
	y, err := g.AddVariable(2, core.WithName("y"))
	require.NoError(t, err)
	_, err = g.AddVariable(2)
	require.NoError(t, err)
	_, err = g.AddFactor(core.KindPairwise, []core.VariableRef{x, y}, core.Params{Table: []float64{1, 2, 3, 4, 5, 6}})
	require.NoError(t, err)
	w, err := wiring.Compile(g)
	require.NoError(t, err)

	return g, w
}

func TestLogBeliefs(t *testing.T) {
	t.Parallel()

	_, w := fixture(t)
	msgs := bp.NewMessages(w)
	copy(msgs.Slot(w, wiring.SlotF2V(0)), []float64{0, 1, 2})
	copy(msgs.Slot(w, wiring.SlotF2V(1)), []float64{-1, 0})
	msgs.Slot(w, wiring.SlotV2F(0))[0] = 99 // never read

	ev := bp.NewEvidence(w)
	require.NoError(t, ev.Set(2, []float64{0.5, 0}))

	got, err := belief.LogBeliefs(w, msgs, ev)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 1, 2}, {-1, 0}, {0.5, 0}}, got)

	got, err = belief.LogBeliefs(w, msgs, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, got[2])

	// the result does not alias the messages
	got[0][0] = 42
	assert.Equal(t, 0.0, msgs.F2V[0])
}

func TestMarginals(t *testing.T) {
	t.Parallel()

	_, w := fixture(t)
	msgs := bp.NewMessages(w)
	copy(msgs.Slot(w, wiring.SlotF2V(0)), []float64{0, math.Log(2), math.Log(5)})
	ev := bp.NewEvidence(w)
	require.NoError(t, ev.Clamp(1, 1))

	d, err := belief.Marginals(w, msgs, ev)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())
	assert.InDeltaSlice(t, []float64{0.125, 0.25, 0.625}, d.Of(0), 1e-12)
	assert.Equal(t, []float64{0, 1}, d.Of(1))
	assert.Equal(t, []float64{0.5, 0.5}, d.Of(2))
	assert.Nil(t, d.Of(3))
	assert.Nil(t, d.Of(-1))

	for _, m := range d.All() {
		sum := 0.0
		for _, p := range m {
			sum += p
		}
		assert.InDelta(t, 1, sum, 1e-12)
	}

	byName, err := d.ByLabel("x")
	require.NoError(t, err)
	assert.Equal(t, d.Of(0), byName)
	unnamed, err := d.ByLabel("v2")
	require.NoError(t, err)
	assert.Equal(t, d.Of(2), unnamed)
	_, err = d.ByLabel("nope")
	assert.ErrorIs(t, err, core.ErrUnknownVariable)
}

func TestMAP(t *testing.T) {
	t.Parallel()

	_, w := fixture(t)
	msgs := bp.NewMessages(w)
	copy(msgs.Slot(w, wiring.SlotF2V(0)), []float64{1, 3, 3})

	a, err := belief.MAP(w, msgs, nil)
	require.NoError(t, err)
	// ties resolve to the lowest state
	assert.Equal(t, belief.Assignment{1, 0, 0}, a)
	assert.Equal(t, map[string]int{"x": 1, "y": 0, "v2": 0}, a.Labeled(w))

	ev := bp.NewEvidence(w)
	require.NoError(t, ev.Set(0, []float64{0, 0, 0.1}))
	require.NoError(t, ev.Set(1, []float64{0, 1}))
	a, err = belief.MAP(w, msgs, ev)
	require.NoError(t, err)
	assert.Equal(t, belief.Assignment{2, 1, 0}, a)
}

func TestReadout_Errors(t *testing.T) {
	t.Parallel()

	_, w := fixture(t)
	other := core.NewGraph()
	_, _ = other.AddVariable(4)
	ow, err := wiring.Compile(other)
	require.NoError(t, err)

	_, err = belief.Marginals(nil, bp.NewMessages(w), nil)
	assert.ErrorIs(t, err, bp.ErrNilWiring)
	_, err = belief.MAP(w, bp.NewMessages(ow), nil)
	assert.ErrorIs(t, err, bp.ErrShapeMismatch)
	_, err = belief.LogBeliefs(w, nil, nil)
	assert.ErrorIs(t, err, bp.ErrShapeMismatch)
	_, err = belief.Marginals(w, bp.NewMessages(w), bp.NewEvidence(ow))
	assert.ErrorIs(t, err, bp.ErrShapeMismatch)
}

func TestScore(t *testing.T) {
	t.Parallel()

	g, w := fixture(t)
	s, err := belief.Score(g, belief.Assignment{2, 1, 0}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 6.0, s)

	ev := bp.NewEvidence(w)
	require.NoError(t, ev.Set(2, []float64{0, -1.5}))
	s, err = belief.Score(g, belief.Assignment{1, 0, 1}, ev, nil)
	require.NoError(t, err)
	assert.Equal(t, 3-1.5, s)

	_, err = belief.Score(g, belief.Assignment{0, 0}, nil, nil)
	assert.ErrorIs(t, err, core.ErrShapeMismatch)
	_, err = belief.Score(g, belief.Assignment{3, 0, 0}, nil, nil)
	assert.ErrorIs(t, err, core.ErrShapeMismatch)
}

func TestScore_LogicalAndEnumeration(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	for i := 0; i < 3; i++ {
		_, err := g.AddVariable(2)
		require.NoError(t, err)
	}
	scope := []core.VariableRef{0, 1, 2}
	_, err := g.AddFactor(core.KindOR, scope, core.Params{})
	require.NoError(t, err)

	cases := []struct {
		a    belief.Assignment
		want float64
	}{
		{belief.Assignment{0, 0, 0}, 0},
		{belief.Assignment{0, 0, 1}, math.Inf(-1)},
		{belief.Assignment{1, 0, 1}, 0},
		{belief.Assignment{0, 1, 0}, math.Inf(-1)},
	}
	for _, tc := range cases {
		s, err := belief.Score(g, tc.a, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, tc.want, s, "OR %v", tc.a)
	}

	and := core.NewGraph()
	for i := 0; i < 3; i++ {
		_, _ = and.AddVariable(2)
	}
	_, err = and.AddFactor(core.KindAND, scope, core.Params{})
	require.NoError(t, err)
	s, _ := belief.Score(and, belief.Assignment{1, 1, 1}, nil, nil)
	assert.Equal(t, 0.0, s)
	s, _ = belief.Score(and, belief.Assignment{1, 0, 1}, nil, nil)
	assert.Equal(t, math.Inf(-1), s)
	s, _ = belief.Score(and, belief.Assignment{0, 1, 0}, nil, nil)
	assert.Equal(t, 0.0, s)

	enum := core.NewGraph()
	_, _ = enum.AddVariable(3)
	_, _ = enum.AddVariable(3)
	_, err = enum.AddFactor(core.KindEnumeration, []core.VariableRef{0, 1},
		core.Params{Configs: [][]int{{0, 1}, {2, 2}}, Table: []float64{0.5, -2}})
	require.NoError(t, err)
	s, _ = belief.Score(enum, belief.Assignment{2, 2}, nil, kernel.DefaultRegistry())
	assert.Equal(t, -2.0, s)
	s, _ = belief.Score(enum, belief.Assignment{1, 1}, nil, nil)
	assert.Equal(t, math.Inf(-1), s)
}

// countingBackend is the CPU backend with call counts on the readout primitives.
type countingBackend struct {
	backend.CPU
	calls map[string]int
}

func (c countingBackend) SegmentSum(dst, src []float64, seg []int) {
	c.calls["SegmentSum"]++
	c.CPU.SegmentSum(dst, src, seg)
}

func (c countingBackend) SoftmaxRanges(dst, src []float64, off []int) {
	c.calls["SoftmaxRanges"]++
	c.CPU.SoftmaxRanges(dst, src, off)
}

func (c countingBackend) ArgmaxRanges(dst []int, src []float64, off []int) {
	c.calls["ArgmaxRanges"]++
	c.CPU.ArgmaxRanges(dst, src, off)
}

func TestReadout_WithBackend(t *testing.T) {
	t.Parallel()

	_, w := fixture(t)
	msgs := bp.NewMessages(w)
	copy(msgs.Slot(w, wiring.SlotF2V(0)), []float64{0, 1, 2})
	be := countingBackend{calls: make(map[string]int)}
	opt := belief.WithBackend(be)

	wantLog, err := belief.LogBeliefs(w, msgs, nil)
	require.NoError(t, err)
	gotLog, err := belief.LogBeliefs(w, msgs, nil, opt)
	require.NoError(t, err)
	assert.Equal(t, wantLog, gotLog)

	wantMarg, err := belief.Marginals(w, msgs, nil)
	require.NoError(t, err)
	gotMarg, err := belief.Marginals(w, msgs, nil, opt)
	require.NoError(t, err)
	assert.Equal(t, wantMarg.All(), gotMarg.All())

	wantMAP, err := belief.MAP(w, msgs, nil)
	require.NoError(t, err)
	gotMAP, err := belief.MAP(w, msgs, nil, opt)
	require.NoError(t, err)
	assert.Equal(t, wantMAP, gotMAP)

	assert.Equal(t, map[string]int{"SegmentSum": 3, "SoftmaxRanges": 1, "ArgmaxRanges": 1}, be.calls)
	assert.Panics(t, func() { belief.WithBackend(nil) })
}
