// SPDX-License-Identifier: MIT
// Package: modelio
//
// document.go - the YAML model document and its mapping to core graphs.
//
// A document names variables by label (their name, or "v<index>" when the
// name is empty) and lets factors and evidence refer to them by that label.
// Log-potentials may use YAML's .inf / -.inf for infinities.
//
//	variables:
//	  - {name: rain, card: 2}
//	  - {name: wet, card: 2}
//	factors:
//	  - kind: pairwise
//	    scope: [rain, wet]
//	    table: [1.5, -.inf, 0, 1.5]
//	evidence:
//	  rain: [0, -0.5]
//	clamp:
//	  wet: 1
//	options:
//	  mode: sum
//	  damping: 0.3

package modelio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/loopy/bp"
	"github.com/katalvlaran/loopy/core"
	"github.com/katalvlaran/loopy/wiring"
)

// Document is one model file.
type Document struct {
	Variables []VariableSpec       `yaml:"variables"`
	Factors   []FactorSpec         `yaml:"factors"`
	Evidence  map[string][]float64 `yaml:"evidence,omitempty"`
	Clamp     map[string]int       `yaml:"clamp,omitempty"`
	Options   *OptionsSpec         `yaml:"options,omitempty"`
}

// VariableSpec declares one variable.
type VariableSpec struct {
	Name string `yaml:"name,omitempty"`
	Card int    `yaml:"card"`
}

// FactorSpec declares one factor. Kind is a built-in kind name ("dense",
// "enumeration", "pairwise", "or", "and") or a custom kind number ≥ 64.
type FactorSpec struct {
	Name    string    `yaml:"name,omitempty"`
	Kind    string    `yaml:"kind"`
	Scope   []string  `yaml:"scope"`
	Table   []float64 `yaml:"table,omitempty,flow"`
	Configs [][]int   `yaml:"configs,omitempty,flow"`
}

// OptionsSpec overrides engine options; absent fields keep their defaults.
type OptionsSpec struct {
	MaxIterations *int     `yaml:"max_iterations,omitempty"`
	Tolerance     *float64 `yaml:"tolerance,omitempty"`
	Damping       *float64 `yaml:"damping,omitempty"`
	Mode          string   `yaml:"mode,omitempty"`
	Temperature   *float64 `yaml:"temperature,omitempty"`
}

// labels returns the label of every declared variable and rejects clashes.
func (d *Document) labels() (map[string]core.VariableRef, error) {
	out := make(map[string]core.VariableRef, len(d.Variables))
	for i, v := range d.Variables {
		label := v.Name
		if label == "" {
			label = "v" + strconv.Itoa(i)
		}
		if _, dup := out[label]; dup {
			return nil, fmt.Errorf("variables[%d]: label %q used twice: %w", i, label, ErrInvalidDocument)
		}
		out[label] = core.VariableRef(i)
	}

	return out, nil
}

// Build creates the graph the document describes. Variables are added in
// document order, so variable i has VariableRef i.
//
// Errors:
//   - ErrInvalidDocument: label clash, unknown scope label or kind.
//   - core sentinels (ErrBadDomain, ErrShapeMismatch, ...) from graph authoring.
func (d *Document) Build(opts ...core.GraphOption) (*core.Graph, error) {
	labels, err := d.labels()
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}

	g := core.NewGraph(opts...)
	for i, v := range d.Variables {
		var vopts []core.VariableOption
		if v.Name != "" {
			vopts = append(vopts, core.WithName(v.Name))
		}
		if _, err = g.AddVariable(v.Card, vopts...); err != nil {
			return nil, fmt.Errorf("Build: variables[%d]: %w", i, err)
		}
	}

	for i, f := range d.Factors {
		kind, err := parseKind(f.Kind)
		if err != nil {
			return nil, fmt.Errorf("Build: factors[%d]: %w", i, err)
		}
		scope := make([]core.VariableRef, len(f.Scope))
		for p, label := range f.Scope {
			ref, ok := labels[label]
			if !ok {
				return nil, fmt.Errorf("Build: factors[%d].scope[%d]=%q: %w", i, p, label, ErrInvalidDocument)
			}
			scope[p] = ref
		}
		var fopts []core.FactorOption
		if f.Name != "" {
			fopts = append(fopts, core.WithFactorName(f.Name))
		}
		if _, err = g.AddFactor(kind, scope, core.Params{Table: f.Table, Configs: f.Configs}, fopts...); err != nil {
			return nil, fmt.Errorf("Build: factors[%d]: %w", i, err)
		}
	}

	return g, nil
}

// BuildEvidence returns the document's evidence for w: soft weights first,
// then clamps. It returns nil when the document has neither.
func (d *Document) BuildEvidence(w *wiring.Wiring) (*bp.Evidence, error) {
	if len(d.Evidence) == 0 && len(d.Clamp) == 0 {
		return nil, nil
	}
	ev, err := bp.EvidenceFromMap(w, d.Evidence)
	if err != nil {
		return nil, fmt.Errorf("BuildEvidence: %w", err)
	}
	byLabel := make(map[string]core.VariableRef, len(w.Variables))
	for _, v := range w.Variables {
		byLabel[v.Label()] = v.Ref
	}
	for label, state := range d.Clamp {
		ref, ok := byLabel[label]
		if !ok {
			return nil, fmt.Errorf("BuildEvidence: clamp %q: %w", label, core.ErrUnknownVariable)
		}
		if err = ev.Clamp(ref, state); err != nil {
			return nil, fmt.Errorf("BuildEvidence: %w", err)
		}
	}

	return ev, nil
}

// ApplyOptions overlays the document's options block on o.
func (d *Document) ApplyOptions(o *bp.Options) error {
	s := d.Options
	if s == nil {
		return nil
	}
	if s.MaxIterations != nil {
		o.MaxIterations = *s.MaxIterations
	}
	if s.Tolerance != nil {
		o.Tolerance = *s.Tolerance
	}
	if s.Damping != nil {
		o.Damping = *s.Damping
	}
	if s.Temperature != nil {
		o.Temperature = *s.Temperature
	}
	if s.Mode != "" {
		m, err := bp.ParseMode(s.Mode)
		if err != nil {
			return fmt.Errorf("ApplyOptions: %w", err)
		}
		o.Mode = m
	}

	return nil
}

// FromGraph returns a document describing g. Evidence and options are left
// empty.
func FromGraph(g *core.Graph) *Document {
	vars, facs := g.Snapshot()
	d := &Document{
		Variables: make([]VariableSpec, len(vars)),
		Factors:   make([]FactorSpec, len(facs)),
	}
	for i, v := range vars {
		d.Variables[i] = VariableSpec{Name: v.Name, Card: v.Card}
	}
	for i, f := range facs {
		scope := make([]string, len(f.Scope))
		for p, ref := range f.Scope {
			scope[p] = vars[ref].Label()
		}
		d.Factors[i] = FactorSpec{
			Name:    f.Name,
			Kind:    kindName(f.Kind),
			Scope:   scope,
			Table:   f.Params.Table,
			Configs: f.Params.Configs,
		}
	}

	return d
}

// parseKind accepts built-in names and decimal custom kinds.
func parseKind(s string) (core.Kind, error) {
	if k, err := core.ParseKind(s); err == nil {
		return k, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < int(core.KindCustom) || n > 255 {
		return 0, fmt.Errorf("kind %q: %w", s, ErrInvalidDocument)
	}

	return core.Kind(n), nil
}

// kindName is the inverse of parseKind.
func kindName(k core.Kind) string {
	if k.IsBuiltin() {
		return k.String()
	}

	return strconv.Itoa(int(k))
}
