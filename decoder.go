package huffman

import (
	"bytes"
	"fmt"
	"io"
	"sort"
)

// Decoder implements a decoder for prefix codes, such as the ones produced by
// a Huffman Tree.
type Decoder struct {
	table   map[Code]decoderData
	sizes   []byte
	minSize byte
	maxSize byte
}

// Init initializes this Decoder from a table of codes, one for each symbol in
// the code's alphabet.  Symbols missing from the table are omitted from the
// code entirely.
//
// The codes must form a prefix code: no two symbols may share a code and no
// code may be a prefix of another.  A lone symbol with a code of 0 bits is
// permitted, since that is what a tree with a single leaf produces.  Codes
// are not required to be complete.
//
func (d *Decoder) Init(codes map[Symbol]Code) error {
	symbols := make(bySymbol, 0, len(codes))
	maxSymbol := InvalidSymbol
	for symbol, hc := range codes {
		if symbol < 0 {
			return fmt.Errorf("invalid symbol while constructing Huffman decoder: %d", symbol)
		}

		// forbid codes with sizes greater than MaxBitsPerCode
		if hc.Size > MaxBitsPerCode {
			return fmt.Errorf("invalid bit length while constructing Huffman decoder: got %d, max %d", hc.Size, MaxBitsPerCode)
		}

		symbols = append(symbols, symbol)
		if symbol > maxSymbol {
			maxSymbol = symbol
		}
	}
	symbols.Sort()

	// permit degenerate code with 0 symbols
	if len(symbols) == 0 {
		*d = Decoder{}
		return nil
	}

	numSymbols := uint32(len(symbols))

	// len(table) is approximately n×log2(n) when filled.
	numTableSlots := numSymbols * log2uint32(numSymbols)

	table := make(map[Code]decoderData, numTableSlots)
	sizes := make([]byte, maxSymbol+1)

	var minSize, maxSize byte
	for i, symbol := range symbols {
		hc := codes[symbol]
		if err := fillTable(table, symbol, hc); err != nil {
			return err
		}
		sizes[symbol] = hc.Size

		if i == 0 {
			minSize = hc.Size
			maxSize = hc.Size
		} else if minSize > hc.Size {
			minSize = hc.Size
		} else if maxSize < hc.Size {
			maxSize = hc.Size
		}
	}

	*d = Decoder{
		table:   table,
		sizes:   sizes,
		minSize: minSize,
		maxSize: maxSize,
	}
	return nil
}

// Decode attempts to decode a Huffman code into a Symbol.
//
// If the Decode is completely successful, symbol >= 0 and minSize == maxSize.
//
// If the Decode fails due to insufficient bits, symbol == InvalidSymbol and at
// least (minSize - hc.Size) additional bits are required to decode this
// symbol.  No more than (maxSize - hc.Size) additional bits will be required.
//
// If the Decode fails due to unreasonable input, symbol == InvalidSymbol and
// minSize == maxSize == 0.
//
func (d Decoder) Decode(hc Code) (symbol Symbol, minSize byte, maxSize byte) {
	dd, found := d.table[hc]
	if !found {
		return InvalidSymbol, 0, 0
	}
	return dd.symbol, dd.minSize, dd.maxSize
}

// MinSize is the bit length of the shortest legal code.
func (d Decoder) MinSize() byte {
	return d.minSize
}

// MaxSize is the bit length of the longest legal code.
func (d Decoder) MaxSize() byte {
	return d.maxSize
}

// MaxSymbol is the last Symbol in the code's alphabet.
//
// (The first Symbol in the code's alphabet is always 0.)
//
func (d Decoder) MaxSymbol() Symbol {
	return Symbol(len(d.sizes)) - 1
}

// SizeBySymbol returns the bit length of each symbol's code, or 0 for symbols
// that have none.
func (d Decoder) SizeBySymbol() []byte {
	return d.sizes
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)
	keys := make(byCode, 0, len(d.table))
	for hc := range d.table {
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		dd := d.table[hc]
		fmt.Fprintf(&buf, "\tDecode(%s) = {%d, %d, %d}\n", hc, dd.symbol, dd.minSize, dd.maxSize)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// DebugString returns the output of Dump as a string.
func (d Decoder) DebugString() string {
	var buf bytes.Buffer
	_, _ = d.Dump(&buf)
	return buf.String()
}

// String returns a brief description of this Decoder.
func (d Decoder) String() string {
	var count int
	for _, dd := range d.table {
		if dd.symbol != InvalidSymbol {
			count++
		}
	}
	return fmt.Sprintf("(Huffman decoder with %d symbols, with coded lengths of %d .. %d bits)", count, d.minSize, d.maxSize)
}

var _ fmt.Stringer = Decoder{}

type decoderData struct {
	symbol  Symbol
	minSize byte
	maxSize byte
}

func fillTable(table map[Code]decoderData, symbol Symbol, hc Code) error {
	if ddOld, found := table[hc]; found {
		if ddOld.symbol != InvalidSymbol {
			return fmt.Errorf("duplicate Huffman code %s for symbols %d and %d", hc, ddOld.symbol, symbol)
		}
		return fmt.Errorf("Huffman code %s for symbol %d is a prefix of another code", hc, symbol)
	}

	dd := decoderData{symbol, hc.Size, hc.Size}
	table[hc] = dd
	full := hc

	for hc.Size != 0 {
		// For each hc "...xxxa", compute "...xxxA" where A = NOT a.

		bit := uint64(1) << (hc.Size - 1)
		hc.Bits ^= bit

		// Merge the dd's from "...xxxa" (dd) and "...xxxA" (ddSibling)
		// into ddNew (the new parent for dd and ddSibling).

		ddNew := decoderData{InvalidSymbol, dd.minSize, dd.maxSize}
		if ddSibling, found := table[hc]; found {
			if ddNew.minSize > ddSibling.minSize {
				ddNew.minSize = ddSibling.minSize
			}
			if ddNew.maxSize < ddSibling.maxSize {
				ddNew.maxSize = ddSibling.maxSize
			}
		}

		// Mutate hc from "...xxxA" to "...xxx".

		hc.Size--
		hc.Bits &^= bit

		// A prefix that already decodes to a symbol means the code is
		// not prefix-free.  If table[hc] already equals ddNew, we can
		// stop recursing.

		ddOld, found := table[hc]
		if found && ddOld.symbol != InvalidSymbol {
			return fmt.Errorf("Huffman code %s for symbol %d is a prefix of code %s for symbol %d", hc, ddOld.symbol, full, symbol)
		}
		if found && ddOld == ddNew {
			break
		}

		// Update table[hc] with ddNew and continue recursing.

		table[hc] = ddNew
		dd = ddNew
	}
	return nil
}

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	as, ab := a.Size, a.Bits
	bs, bb := b.Size, b.Bits
	if as != bs {
		return as < bs
	}
	return ab < bb
}

var _ sort.Interface = byCode(nil)

// }}}

// type bySymbol {{{

type bySymbol []Symbol

func (list bySymbol) Sort() {
	sort.Sort(list)
}

func (list bySymbol) Len() int {
	return len(list)
}

func (list bySymbol) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list bySymbol) Less(i, j int) bool {
	return list[i] < list[j]
}

var _ sort.Interface = bySymbol(nil)

// }}}
