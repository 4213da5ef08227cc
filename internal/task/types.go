package task

import (
	"fmt"
	"strings"
)

// Kind identifies which computation a Task performs.
type Kind int

const (
	// KindFactorial computes N!.
	KindFactorial Kind = iota

	// KindFibonacci computes the Nth Fibonacci number.
	KindFibonacci

	// KindSumOfDigits sums the decimal digits of N.
	KindSumOfDigits

	// KindIsPrime reports whether N is prime.
	KindIsPrime

	// KindGCD computes the greatest common divisor of N and M.
	KindGCD

	// KindReverseNumber reverses the decimal digits of N.
	KindReverseNumber
)

var kindNames = [...]string{
	KindFactorial:     "factorial",
	KindFibonacci:     "fibonacci",
	KindSumOfDigits:   "sum_of_digits",
	KindIsPrime:       "is_prime",
	KindGCD:           "gcd",
	KindReverseNumber: "reverse_number",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid returns true if k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

// ParseKind converts a kind name back into a Kind. Matching is
// case-insensitive and accepts hyphens in place of underscores.
func ParseKind(s string) (Kind, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, name := range kindNames {
		if name == norm {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown task kind %q", s)
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Task is one immutable unit of work. M is only read by KindGCD.
type Task struct {
	Kind Kind
	N    int
	M    int
}

// New creates a single-operand task.
func New(kind Kind, n int) Task {
	return Task{Kind: kind, N: n}
}

// NewGCD creates a GCD task over a and b.
func NewGCD(a, b int) Task {
	return Task{Kind: KindGCD, N: a, M: b}
}

// String returns a short description such as "gcd(56,98)".
func (t Task) String() string {
	if t.Kind == KindGCD {
		return fmt.Sprintf("%s(%d,%d)", t.Kind, t.N, t.M)
	}
	return fmt.Sprintf("%s(%d)", t.Kind, t.N)
}

// Result is the rendered outcome of executing a Task.
type Result struct {
	Task Task
	// Text is the human-readable result line, without a trailing newline.
	Text string
}

// DefaultBatch returns the fixed task list processed by the tasks command.
func DefaultBatch() []Task {
	return []Task{
		New(KindFactorial, 10),
		New(KindFibonacci, 20),
		New(KindSumOfDigits, 12345),
		New(KindIsPrime, 29),
		NewGCD(56, 98),
		New(KindReverseNumber, 123456),
	}
}
