package huffman

import (
	"bufio"
	"fmt"
	"io"
)

// ReportLine describes the cost of one symbol under a Huffman code.
type ReportLine struct {
	Symbol     Symbol
	Frequency  uint64
	CodeLength int
	TotalBits  uint64
}

// String formats the line as "<symbol>: <count> x <len> bits = <total> bits".
func (line ReportLine) String() string {
	return fmt.Sprintf("%s: %d x %d bits = %d bits", line.Symbol.Label(), line.Frequency, line.CodeLength, line.TotalBits)
}

// Report returns one line per leaf of the tree, in symbol order.
func Report(t *Tree) []ReportLine {
	lines := make([]ReportLine, 0, NumSymbols)
	for symbol := Symbol(0); symbol <= MaxSymbol; symbol++ {
		leaf := t.Leaf(symbol)
		if leaf == nil {
			continue
		}
		length := CodeLength(leaf)
		lines = append(lines, ReportLine{
			Symbol:     symbol,
			Frequency:  leaf.freq,
			CodeLength: length,
			TotalBits:  leaf.freq * uint64(length),
		})
	}
	return lines
}

// WriteReport writes Report(t) to w, one line each.
func WriteReport(w io.Writer, t *Tree) error {
	bw := bufio.NewWriter(w)
	for _, line := range Report(t) {
		bw.WriteString(line.String())
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
