// Package task defines the unit of work processed by the worker pool: a
// tagged variant over six integer computations, plus the functions that
// evaluate them and render their results.
//
// The set of kinds is closed. [Execute] dispatches with a switch over
// [Kind], so adding a kind means adding a case there and in [Kind.String].
//
// All computations are total. Factorial and Fibonacci work in uint64 and
// wrap silently on overflow (Factorial above 20, Fibonacci above 93); this
// is a numeric-domain boundary rather than an error.
//
// Usage:
//
//	for _, t := range task.DefaultBatch() {
//	    res := task.Execute(t)
//	    fmt.Println(res.Text)
//	}
package task
