package task

import "fmt"

// Factorial returns n! computed in uint64. Values of n <= 0 yield 1 (the
// empty product). Results for n > 20 wrap around.
func Factorial(n int) uint64 {
	result := uint64(1)
	for i := 2; i <= n; i++ {
		result *= uint64(i)
	}
	return result
}

// Fibonacci returns the nth Fibonacci number with F(0)=0 and F(1)=1.
// Values of n <= 0 yield 0. Results for n > 93 wrap around.
func Fibonacci(n int) uint64 {
	if n <= 0 {
		return 0
	}
	var a, b uint64 = 0, 1
	for i := 2; i <= n; i++ {
		a, b = b, a+b
	}
	return b
}

// SumOfDigits returns the sum of the decimal digits of |n|.
func SumOfDigits(n int) int {
	sum := 0
	for n != 0 {
		d := n % 10
		if d < 0 {
			d = -d
		}
		sum += d
		n /= 10
	}
	return sum
}

// IsPrime reports whether n is prime. Values of n <= 1 are not prime.
func IsPrime(n int) bool {
	if n <= 1 {
		return false
	}
	if n < 4 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	for i := 3; i <= n/i; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// GCD returns the greatest common divisor of a and b. GCD(0, 0) is 0. The
// result is non-negative except when an operand is math.MinInt, whose
// negation overflows; GCD(math.MinInt, 0) returns math.MinInt.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ReverseNumber reverses the decimal digits of n, keeping its sign.
// Trailing zeros of n become leading zeros and are dropped.
func ReverseNumber(n int) int {
	reversed := 0
	for n != 0 {
		reversed = reversed*10 + n%10
		n /= 10
	}
	return reversed
}

// Execute evaluates t and renders its result line.
func Execute(t Task) Result {
	var text string
	switch t.Kind {
	case KindFactorial:
		text = fmt.Sprintf("Factorial of %d is %d", t.N, Factorial(t.N))
	case KindFibonacci:
		text = fmt.Sprintf("Fibonacci number at position %d is %d", t.N, Fibonacci(t.N))
	case KindSumOfDigits:
		text = fmt.Sprintf("Sum of digits of %d is %d", t.N, SumOfDigits(t.N))
	case KindIsPrime:
		verdict := "not prime"
		if IsPrime(t.N) {
			verdict = "prime"
		}
		text = fmt.Sprintf("%d is %s", t.N, verdict)
	case KindGCD:
		text = fmt.Sprintf("GCD of %d and %d is %d", t.N, t.M, GCD(t.N, t.M))
	case KindReverseNumber:
		text = fmt.Sprintf("Reverse of %d is %d", t.N, ReverseNumber(t.N))
	default:
		text = fmt.Sprintf("Unknown task %s", t)
	}
	return Result{Task: t, Text: text}
}
