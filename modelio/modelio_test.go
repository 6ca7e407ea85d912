// SPDX-License-Identifier: MIT
package modelio_test

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/loopy/bp"
	"github.com/katalvlaran/loopy/core"
	"github.com/katalvlaran/loopy/modelio"
	"github.com/katalvlaran/loopy/wiring"
)

const sprinkler = `
variables:
  - {name: rain, card: 2}
  - {name: sprinkler, card: 2}
  - {name: wet, card: 2}
  - {card: 3}
factors:
  - kind: or
    scope: [rain, sprinkler, wet]
  - name: prior
    kind: dense
    scope: [rain]
    table: [0, -1.5]
  - kind: enumeration
    scope: [v3, wet]
    configs: [[0, 0], [2, 1]]
    table: [0, -.inf]
evidence:
  sprinkler: [0, -0.5]
clamp:
  wet: 1
options:
  mode: max
  damping: 0.25
  max_iterations: 40
`

func TestDecodeBuild(t *testing.T) {
	doc, err := modelio.Decode(strings.NewReader(sprinkler))
	require.NoError(t, err)

	g, err := doc.Build()
	require.NoError(t, err)
	assert.Equal(t, 4, g.NumVariables())
	assert.Equal(t, 3, g.NumFactors())

	f, err := g.Factor(2)
	require.NoError(t, err)
	assert.Equal(t, core.KindEnumeration, f.Kind)
	assert.True(t, math.IsInf(f.Params.Table[1], -1))
	assert.Equal(t, []core.VariableRef{3, 2}, f.Scope)
	prior, _ := g.Factor(1)
	assert.Equal(t, "prior", prior.Name)

	w, err := wiring.Compile(g)
	require.NoError(t, err)
	ev, err := doc.BuildEvidence(w)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, -0.5}, ev.Of(1))
	wet := ev.Of(2)
	assert.True(t, math.IsInf(wet[0], -1))
	assert.Equal(t, 0.0, wet[1])

	opts := bp.DefaultOptions()
	require.NoError(t, doc.ApplyOptions(&opts))
	assert.Equal(t, bp.MaxProduct, opts.Mode)
	assert.Equal(t, 0.25, opts.Damping)
	assert.Equal(t, 40, opts.MaxIterations)
	assert.Equal(t, bp.DefaultTolerance, opts.Tolerance, "absent fields keep defaults")
}

func TestRoundTrip(t *testing.T) {
	g := core.NewGraph()
	x, _ := g.AddVariable(2, core.WithName("x"))
	y, _ := g.AddVariable(3)
	_, err := g.AddFactor(core.KindPairwise, []core.VariableRef{x, y}, core.Params{Table: []float64{0, 1, 2, 3, 4, math.Inf(-1)}}, core.WithFactorName("xy"))
	require.NoError(t, err)
	_, err = g.AddFactor(core.KindCustom+2, []core.VariableRef{y}, core.Params{Table: []float64{0, 0, 1}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, modelio.Encode(&buf, modelio.FromGraph(g)))
	assert.Contains(t, buf.String(), "-.inf")

	doc, err := modelio.Decode(&buf)
	require.NoError(t, err)
	back, err := doc.Build()
	require.NoError(t, err)

	wantV, wantF := g.Snapshot()
	gotV, gotF := back.Snapshot()
	assert.Equal(t, wantV, gotV)
	assert.Equal(t, wantF, gotF)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sprinkler), 0o600))

	doc, err := modelio.Load(path)
	require.NoError(t, err)
	assert.Len(t, doc.Variables, 4)

	_, err = modelio.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"empty", "", modelio.ErrInvalidDocument},
		{"unknown field", "variables: []\nweights: 1\n", modelio.ErrInvalidDocument},
		{"bad yaml", "variables: [", modelio.ErrInvalidDocument},
		{"label clash", "variables: [{name: v1, card: 2}, {card: 2}]\n", modelio.ErrInvalidDocument},
		{"unknown scope", "variables: [{name: a, card: 2}]\nfactors: [{kind: dense, scope: [b], table: [0, 0]}]\n", modelio.ErrInvalidDocument},
		{"unknown kind", "variables: [{name: a, card: 2}]\nfactors: [{kind: xor, scope: [a]}]\n", modelio.ErrInvalidDocument},
		{"builtin range kind", "variables: [{name: a, card: 2}]\nfactors: [{kind: \"12\", scope: [a]}]\n", modelio.ErrInvalidDocument},
		{"bad domain", "variables: [{name: a, card: 0}]\n", core.ErrBadDomain},
		{"bad shape", "variables: [{name: a, card: 2}]\nfactors: [{kind: dense, scope: [a], table: [0]}]\n", core.ErrShapeMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := modelio.Decode(strings.NewReader(tc.src))
			if err == nil {
				_, err = doc.Build()
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestEvidenceAndOptionErrors(t *testing.T) {
	doc, err := modelio.Decode(strings.NewReader("variables: [{name: a, card: 2}]\n"))
	require.NoError(t, err)
	g, err := doc.Build()
	require.NoError(t, err)
	w, err := wiring.Compile(g)
	require.NoError(t, err)

	ev, err := doc.BuildEvidence(w)
	require.NoError(t, err)
	assert.Nil(t, ev, "no evidence block")

	doc.Clamp = map[string]int{"b": 0}
	_, err = doc.BuildEvidence(w)
	assert.ErrorIs(t, err, core.ErrUnknownVariable)
	doc.Clamp = map[string]int{"a": 2}
	_, err = doc.BuildEvidence(w)
	assert.ErrorIs(t, err, bp.ErrShapeMismatch)
	doc.Clamp = nil
	doc.Evidence = map[string][]float64{"a": {0}}
	_, err = doc.BuildEvidence(w)
	assert.ErrorIs(t, err, bp.ErrShapeMismatch)

	doc.Options = &modelio.OptionsSpec{Mode: "median"}
	opts := bp.DefaultOptions()
	assert.Error(t, doc.ApplyOptions(&opts))
	assert.Equal(t, bp.SumProduct, opts.Mode)
}
