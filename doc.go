// Package huffman builds Huffman codes for byte streams and packs streams
// with them.
//
// A Tree is built from the byte frequencies of an input plus an EOF symbol
// that is always present with a frequency of 0, so that every packed stream
// ends with an explicit terminator code.  The nodes of a Tree only link to
// their parents; code lengths and code bits are both found by walking from a
// leaf up to the root.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
