package huffman

import (
	mathbits "math/bits"
	"strconv"
)

func octal3(x uint32) string {
	s := strconv.FormatUint(uint64(x), 8)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}

// saturatingAdd returns a+b, clamped to math.MaxUint64 on overflow.
func saturatingAdd(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		return ^uint64(0)
	}
	return sum
}

func log2uint32(x uint32) uint32 {
	if x == 0 {
		x = 1
	}
	return uint32(32 - mathbits.LeadingZeros32(x))
}
