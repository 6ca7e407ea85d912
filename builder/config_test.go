// Package builder contains unit tests for the configuration primitives
// (builderConfig and BuilderOption) to ensure correct application and override behavior.
package builder

import (
	"math/rand"
	"testing"
)

// TestDefaults verifies the documented deterministic defaults.
func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := newBuilderConfig()
	if cfg.nameFn != nil {
		t.Errorf("default nameFn: expected nil")
	}
	if cfg.rng != nil {
		t.Errorf("default rng: expected nil")
	}
	if cfg.card != defaultCard {
		t.Errorf("default card: expected %d, got %d", defaultCard, cfg.card)
	}
	if got := cfg.coupling(); got != DefaultCoupling {
		t.Errorf("default coupling: expected %g, got %g", DefaultCoupling, got)
	}
	if cfg.leftPrefix != "L" || cfg.rightPrefix != "R" {
		t.Errorf("default prefixes: got %q/%q", cfg.leftPrefix, cfg.rightPrefix)
	}
}

// TestNameSchemeOptions verifies that naming options apply in order.
func TestNameSchemeOptions(t *testing.T) {
	t.Parallel()

	if got := newBuilderConfig(WithSymbolNames()).nameFn(0); got != "A" {
		t.Errorf("WithSymbolNames: expected \"A\", got %q", got)
	}
	if got := newBuilderConfig(WithExcelColumnNames()).nameFn(27); got != "AB" {
		t.Errorf("WithExcelColumnNames: expected \"AB\", got %q", got)
	}
	if got := newBuilderConfig(WithSymbolNames(), WithPrefixNames("x")).nameFn(3); got != "x3" {
		t.Errorf("last option wins: expected \"x3\", got %q", got)
	}
	if got := DecimalNameFn(12); got != "12" {
		t.Errorf("DecimalNameFn: expected \"12\", got %q", got)
	}
}

// TestRNGOptions verifies reproducibility of WithSeed and identity of WithRand.
func TestRNGOptions(t *testing.T) {
	t.Parallel()

	a := newBuilderConfig(WithSeed(42)).rng.Int63()
	b := newBuilderConfig(WithSeed(42)).rng.Int63()
	if a != b {
		t.Errorf("WithSeed(42) not reproducible: %d != %d", a, b)
	}
	zero := newBuilderConfig(WithSeed(0)).rng.Int63()
	one := newBuilderConfig(WithSeed(defaultRNGSeed)).rng.Int63()
	if zero != one {
		t.Errorf("WithSeed(0) must use the default stream")
	}

	r := rand.New(rand.NewSource(7))
	if got := newBuilderConfig(WithRand(r)).rng; got != r {
		t.Errorf("WithRand: rng not attached")
	}
}

// TestOptionPanics verifies that meaningless option values fail fast.
func TestOptionPanics(t *testing.T) {
	t.Parallel()

	cases := map[string]func(){
		"WithNameScheme(nil)":    func() { WithNameScheme(nil) },
		"WithRand(nil)":          func() { WithRand(nil) },
		"WithCouplingFn(nil)":    func() { WithCouplingFn(nil) },
		"WithCardinality(1)":     func() { WithCardinality(1) },
		"WithAmplitude(0)":       func() { WithAmplitude(0) },
		"UniformCouplingFn(2,1)": func() { UniformCouplingFn(2, 1) },
		"NormalCouplingFn(0,-1)": func() { NormalCouplingFn(0, -1) },
		"SymbolNameFn(26)":       func() { SymbolNameFn(26) },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", name)
				}
			}()
			fn()
		})
	}
}

// TestCouplingFns checks each generator's range and nil-RNG fallback.
func TestCouplingFns(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(3))
	u := UniformCouplingFn(-0.5, 0.5)
	for i := 0; i < 100; i++ {
		if j := u(rng); j < -0.5 || j >= 0.5 {
			t.Fatalf("UniformCouplingFn: %g outside [-0.5,0.5)", j)
		}
	}
	if got := u(nil); got != DefaultCoupling {
		t.Errorf("UniformCouplingFn(nil rng): expected %g, got %g", DefaultCoupling, got)
	}
	if got := NormalCouplingFn(2, 0)(rng); got != 2 {
		t.Errorf("NormalCouplingFn(2,0): expected 2, got %g", got)
	}
	if got := ConstantCouplingFn(-1.5)(nil); got != -1.5 {
		t.Errorf("ConstantCouplingFn: expected -1.5, got %g", got)
	}
}

// TestDeriveSeed verifies distinct streams for distinct ids.
func TestDeriveSeed(t *testing.T) {
	t.Parallel()

	seen := make(map[int64]uint64)
	for s := uint64(0); s < 64; s++ {
		v := deriveSeed(1, s)
		if prev, dup := seen[v]; dup {
			t.Fatalf("streams %d and %d collide", prev, s)
		}
		seen[v] = s
	}
	if deriveSeed(5, 9) != deriveSeed(5, 9) {
		t.Errorf("deriveSeed is not a pure function")
	}
}
