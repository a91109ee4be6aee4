package huffman

// Symbol represents a symbol in the compressor's alphabet: a byte value 0..255
// or the EOF sentinel.  Negative symbols are not valid.
type Symbol int32

const (
	// EOF is the synthetic end-of-stream symbol.  It always has a leaf in
	// the tree, with frequency 0, so that the packed bitstream has an
	// explicit terminator code.
	EOF = Symbol(256)

	// NumSymbols is the size of the alphabet, including EOF.
	NumSymbols = int(EOF) + 1

	// MaxSymbol is the maximum valid symbol.
	MaxSymbol = EOF
)

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.  It is also the Symbol of every internal node.
const InvalidSymbol = Symbol(-1)

// Frequencies holds one occurrence count per symbol.  Frequencies[EOF] is
// always 0 when produced by this package.
type Frequencies [NumSymbols]uint64

// IsPrintable reports whether the symbol is a printable ASCII character.
func (sym Symbol) IsPrintable() bool {
	return sym >= 0x20 && sym < 0x7f
}

// Label renders the symbol the way the diagnostic report does: printable
// characters are quoted, everything else is shown as 3-digit octal.
func (sym Symbol) Label() string {
	if sym.IsPrintable() {
		return "'" + string(rune(sym)) + "'"
	}
	return octal3(uint32(sym))
}
