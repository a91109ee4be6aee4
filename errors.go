package huffman

import (
	"errors"
)

var (
	// ErrNoSuchSymbol is returned when a symbol has no leaf in the tree.
	ErrNoSuchSymbol = errors.New("symbol is not present in the Huffman tree")

	// ErrCodeTooLong is returned when a leaf is deeper than MaxBitsPerCode.
	ErrCodeTooLong = errors.New("Huffman code exceeds maximum length")

	// ErrSymbolNotInTree is returned by the packer when the input contains
	// a byte that was not counted when the tree was built.
	ErrSymbolNotInTree = errors.New("input byte has no Huffman code; input changed since it was counted")

	// ErrBadMagic is returned when a packed stream does not start with the
	// expected signature.
	ErrBadMagic = errors.New("not a packed Huffman stream")

	// ErrCorrupt is returned when a packed stream is malformed.
	ErrCorrupt = errors.New("corrupt packed Huffman stream")
)
