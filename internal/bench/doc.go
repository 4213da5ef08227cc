// Package bench compares the counter strategies under concurrent load.
//
// A trial pre-generates one slice of random deltas per worker, resets the
// counter, releases every worker through a shared start gate and measures
// the wall-clock time until all of them have applied their deltas. Because
// the deltas are generated up front from a seeded PCG source, every
// strategy at a given thread count sees the same multiset of deltas, and
// [Sum] gives the exact value the synchronized strategies must reach.
package bench
