// Package modelio reads and writes factor-graph models as YAML documents:
// variables, factors, optional evidence and clamps, and an optional block of
// engine options.
//
//	doc, err := modelio.Load("model.yaml")
//	g, err := doc.Build()
//	w, err := wiring.Compile(g)
//	ev, err := doc.BuildEvidence(w)
//	opts := bp.DefaultOptions()
//	err = doc.ApplyOptions(&opts)
//
// FromGraph and Encode go the other way, so a graph built in code (for
// example by the builder package) can be saved and replayed with the lbp CLI.
package modelio
