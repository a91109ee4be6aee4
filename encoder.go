package huffman

import (
	"bytes"
	"fmt"
	"io"
)

// Encoder maps each Symbol to the Code assigned to it by a Huffman tree.
type Encoder struct {
	codes   []Code
	present []bool
	minSize byte
	maxSize byte
}

// NewEncoder walks every leaf of t and records its Code.  Symbols without a
// leaf are left unassigned.  It fails with ErrCodeTooLong if any leaf is more
// than MaxBitsPerCode edges from the root.
//
func NewEncoder(t *Tree) (*Encoder, error) {
	e := &Encoder{
		codes:   make([]Code, NumSymbols),
		present: make([]bool, NumSymbols),
	}

	var hasMinMax bool
	for symbol := Symbol(0); symbol <= MaxSymbol; symbol++ {
		if t.Leaf(symbol) == nil {
			continue
		}

		hc, err := t.Code(symbol)
		if err != nil {
			return nil, err
		}
		e.codes[symbol] = hc
		e.present[symbol] = true

		size := hc.Size
		if !hasMinMax {
			hasMinMax = true
			e.minSize = size
			e.maxSize = size
		} else if e.minSize > size {
			e.minSize = size
		} else if e.maxSize < size {
			e.maxSize = size
		}
	}
	return e, nil
}

// Encode encodes a Symbol into a Huffman-coded bit string.  The second
// result is false if the symbol has no code.
func (e Encoder) Encode(symbol Symbol) (Code, bool) {
	if symbol < 0 || int(symbol) >= len(e.codes) {
		return Code{}, false
	}
	return e.codes[symbol], e.present[symbol]
}

// Codes returns the code of every symbol that has one.
func (e Encoder) Codes() map[Symbol]Code {
	out := make(map[Symbol]Code, len(e.codes))
	for symbol, hc := range e.codes {
		if e.present[symbol] {
			out[Symbol(symbol)] = hc
		}
	}
	return out
}

// MinSize is the bit length of the shortest legal code.
func (e Encoder) MinSize() byte {
	return e.minSize
}

// MaxSize is the bit length of the longest legal code.
func (e Encoder) MaxSize() byte {
	return e.maxSize
}

// MaxSymbol is the last Symbol in the code's alphabet.
//
// (The first Symbol in the code's alphabet is always 0.)
//
func (e Encoder) MaxSymbol() Symbol {
	return Symbol(len(e.codes)) - 1
}

// SizeBySymbol returns an array containing the bit length for each Symbol in
// the alphabet.
func (e Encoder) SizeBySymbol() []byte {
	numSymbols := Symbol(len(e.codes))
	out := make([]byte, numSymbols)
	for symbol := Symbol(0); symbol < numSymbols; symbol++ {
		out[symbol] = e.codes[symbol].Size
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.
func (e Encoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", e.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.maxSize)
	numSymbols := Symbol(len(e.codes))
	for symbol := Symbol(0); symbol < numSymbols; symbol++ {
		if !e.present[symbol] {
			continue
		}
		fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, e.codes[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// DebugString returns the output of Dump as a string.
func (e Encoder) DebugString() string {
	var buf bytes.Buffer
	_, _ = e.Dump(&buf)
	return buf.String()
}

// String returns a brief description of this Encoder.
func (e Encoder) String() string {
	var count int
	for _, ok := range e.present {
		if ok {
			count++
		}
	}
	return fmt.Sprintf("(Huffman encoder with %d symbols, with coded lengths of %d .. %d bits)", count, e.minSize, e.maxSize)
}

var _ fmt.Stringer = Encoder{}
