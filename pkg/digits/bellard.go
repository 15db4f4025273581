// Package digits provides concrete digit computers for pi.
//
// Two independent extraction methods are implemented: Decimal produces one
// decimal digit per index (Bellard's O(n^2) variant of Plouffe's method) and
// Hexadecimal produces one 14-hex-digit chunk per index (the
// Bailey-Borwein-Plouffe formula). Both are pure functions of the index,
// use constant memory, and are safe to call concurrently without
// synchronization.
package digits

import (
	"math"

	"github.com/jzx17/digitpool/pkg/types"
)

// Decimal extracts single decimal digits of pi without computing the
// preceding ones. Runtime grows roughly quadratically with the index.
type Decimal struct{}

// NewDecimal creates a decimal digit computer
func NewDecimal() *Decimal {
	return &Decimal{}
}

// Compute returns the decimal digit (0-9) at the 1-based position index of
// the fractional part of pi.
func (*Decimal) Compute(index int) (uint64, error) {
	if index < 1 {
		return 0, types.ErrInvalidIndex
	}

	// Working precision: enough series terms for the requested position
	// plus a 20-digit guard.
	n := index
	terms := int(float64(n+20) * math.Ln10 / math.Ln2)

	sum := 0.0
	for a := 3; a <= 2*terms; a = nextPrime(a) {
		vmax := int(math.Log(float64(2*terms)) / math.Log(float64(a)))
		av := 1
		for i := 0; i < vmax; i++ {
			av *= a
		}

		s := 0
		num := 1
		den := 1
		v := 0
		kq := 1
		kq2 := 1

		for k := 1; k <= terms; k++ {
			t := k
			if kq >= a {
				for {
					t /= a
					v--
					if t%a != 0 {
						break
					}
				}
				kq = 0
			}
			kq++
			num = mulMod(num, t, av)

			t = 2*k - 1
			if kq2 >= a {
				if kq2 == a {
					for {
						t /= a
						v++
						if t%a != 0 {
							break
						}
					}
				}
				kq2 -= a
			}
			den = mulMod(den, t, av)
			kq2 += 2

			if v > 0 {
				t = invMod(den, av)
				t = mulMod(t, num, av)
				t = mulMod(t, k, av)
				for i := v; i < vmax; i++ {
					t = mulMod(t, a, av)
				}
				s += t
				if s >= av {
					s -= av
				}
			}
		}

		s = mulMod(s, powMod(10, n-1, av), av)
		sum = math.Mod(sum+float64(s)/float64(av), 1.0)
	}

	return uint64(sum * 1e9 / 1e8), nil
}

// mulMod returns (a*b) mod m using 64-bit intermediate arithmetic
func mulMod(a, b, m int) int {
	return int(int64(a) * int64(b) % int64(m))
}

// invMod returns the inverse of x mod y
func invMod(x, y int) int {
	u := x
	v := y
	c := 1
	a := 0
	for {
		q := v / u

		t := c
		c = a - q*c
		a = t

		t = u
		u = v - q*u
		v = t

		if u == 0 {
			break
		}
	}
	a %= y
	if a < 0 {
		a += y
	}
	return a
}

// powMod returns (a^b) mod m
func powMod(a, b, m int) int {
	r := 1
	aa := a
	for {
		if b&1 != 0 {
			r = mulMod(r, aa, m)
		}
		b >>= 1
		if b == 0 {
			break
		}
		aa = mulMod(aa, aa, m)
	}
	return r
}

func isPrime(n int) bool {
	if n%2 == 0 {
		return false
	}
	r := int(math.Sqrt(float64(n)))
	for i := 3; i <= r; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// nextPrime returns the first prime strictly greater than n
func nextPrime(n int) int {
	for {
		n++
		if isPrime(n) {
			return n
		}
	}
}
