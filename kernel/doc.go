// Package kernel implements the per-kind factor update rules of loopy belief
// propagation.
//
// Every factor kind is served by a Kernel. At wiring time the kernel receives
// all factors of its kind at once (as Instances) and compiles them into a
// single Plan: flat index and potential arrays whose Update call produces the
// factor-to-variable messages of the whole group through a few batched
// backend primitives. There is no per-factor dispatch in the iteration loop.
//
// Built-in kernels:
//
//	Dense        full joint table; enumeration plan over every configuration
//	Enumeration  listed configurations only; same plan
//	Pairwise     two variables; direct reduce without the score pass
//	OR / AND     closed-form O(arity) messages for binary logical factors
//
// Every kernel can also Flatten a factor into a Table (configurations with
// potentials); the belief package uses this to score assignments and the
// tests use it as a brute-force reference.
//
// Custom kinds (core.KindCustom and above) are added with Registry.Register.
// A custom kernel that can flatten its factors may compile them with
// NewTablePlan.
//
// Temperature: Update receives T ≥ 0. T = 0 is max-product; T > 0 replaces
// max by the smooth maximum T·log Σ exp(x/T), T = 1 being sum-product.
package kernel
