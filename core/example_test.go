package core_test

import (
	"fmt"

	"github.com/katalvlaran/loopy/core"
)

// ExampleGraph builds a small graph with a table factor and a logical factor.
func ExampleGraph() {
	g := core.NewGraph()

	rain, _ := g.AddVariable(2, core.WithName("rain"))
	sprinkler, _ := g.AddVariable(2, core.WithName("sprinkler"))
	wet, _ := g.AddVariable(2, core.WithName("wet"))

	// wet = rain OR sprinkler
	_, _ = g.AddFactor(core.KindOR, []core.VariableRef{rain, sprinkler, wet}, core.Params{})
	// rain and sprinkler rarely happen together
	_, _ = g.AddFactor(core.KindPairwise, []core.VariableRef{rain, sprinkler},
		core.Params{Table: []float64{0, 0, 0, -2}})

	s := g.Stats()
	fmt.Println("variables:", s.Variables, "factors:", s.Factors, "edges:", s.Edges)
	fmt.Println("edge states:", s.EdgeStates)
	fs, _ := g.FactorsOf(rain)
	fmt.Println("factors of rain:", fs)

	_, err := g.AddFactor(core.KindOR, []core.VariableRef{rain, rain}, core.Params{})
	fmt.Println(err)

	// Output:
	// variables: 3 factors: 2 edges: 5
	// edge states: 10
	// factors of rain: [0 1]
	// AddFactor(or): scope[1]=scope[0]=0: core: invalid factor scope
}
