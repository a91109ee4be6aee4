// Command huff compresses a file with a Huffman code built from its byte
// frequencies.
//
// Usage:
//
//     huff [--quiet] [--log-level LEVEL] <inputFile> <outputFile>
//
// For every symbol present in the input, including the EOF sentinel, a line
// of the form "<symbol>: <count> x <length> bits = <total> bits" is written to
// standard output before the packed file is written.
//
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
