package digits

import (
	"math"

	"github.com/jzx17/digitpool/pkg/types"
)

const (
	// hexChunkDigits is the number of hex digits produced per index
	hexChunkDigits = 14

	hexShift   = 4 * hexChunkDigits
	hexModulus = uint64(1) << hexShift
	hexMask    = hexModulus - 1
)

// Hexadecimal extracts hexadecimal digits of pi with the
// Bailey-Borwein-Plouffe formula. Each index yields a chunk of 14 hex
// digits of the fractional part starting at that 1-based position; chunks
// at consecutive indexes overlap by 13 digits. Accuracy of the trailing
// digits degrades for large indexes because the tail sum is evaluated in
// floating point.
type Hexadecimal struct{}

// NewHexadecimal creates a hexadecimal digit computer
func NewHexadecimal() *Hexadecimal {
	return &Hexadecimal{}
}

// ChunkDigits returns the number of hex digits in each computed chunk
func (*Hexadecimal) ChunkDigits() int {
	return hexChunkDigits
}

// Compute returns the 14-hex-digit chunk starting at the 1-based position
// index of the fractional part of pi.
func (*Hexadecimal) Compute(index int) (uint64, error) {
	if index < 1 {
		return 0, types.ErrInvalidIndex
	}

	n := uint64(index - 1)
	x := (4*bbpSum(1, n) - 2*bbpSum(4, n) - bbpSum(5, n) - bbpSum(6, n)) & hexMask
	return x, nil
}

// bbpSum evaluates the scaled partial sum of 16^n * sum(1/(16^k*(8k+j)))
// keeping only the fractional hex digits. The head terms use modular
// integer arithmetic; the tail converges after a handful of terms.
func bbpSum(j, n uint64) uint64 {
	var s uint64
	for k := uint64(0); k <= n; k++ {
		r := 8*k + j
		v := uint64(math.Pow(16, float64(n-k))) % r
		s = (s + (v<<hexShift)/r) & hexMask
	}

	var t uint64
	for k := n + 1; ; k++ {
		xp := uint64(math.Pow(16, float64(n)-float64(k)) * float64(hexModulus))
		next := t + xp/(8*k+j)
		if next == t {
			break
		}
		t = next
	}

	return s + t
}
