package huffman

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/icza/bitio"
)

// Magic is the signature at the start of every packed stream.
const Magic = "HUF1"

// Packed stream layout:
//
//     magic   "HUF1"
//     counts  256 uvarints, the frequencies of symbols 0..255
//     body    the code of each input byte, then the code of EOF, most
//             significant bit first, zero-padded to a byte boundary
//
// The frequency of EOF is always 0 and is not stored.  The tree itself is not
// stored either: BuildTree is deterministic, so the reader rebuilds it from
// the counts.

// Pack compresses the file at inputPath into a new file at outputPath, using
// the codes of t.  t must have been built from the contents of inputPath.
//
// If the input cannot be opened, the output file is not created.  If packing
// fails after the output has been created, the output is removed.
//
func Pack(inputPath, outputPath string, t *Tree) (err error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(outputPath)
		}
	}()

	return PackStream(out, in, t)
}

// PackStream is the io form of Pack.
func PackStream(w io.Writer, r io.Reader, t *Tree) error {
	e, err := NewEncoder(t)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, t.Frequencies()); err != nil {
		return err
	}

	bits := bitio.NewWriter(bw)
	writeCode := func(hc Code) error {
		if hc.Size == 0 {
			return nil
		}
		return bits.WriteBits(hc.Reversed().Bits, hc.Size)
	}

	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		hc, ok := e.Encode(Symbol(b))
		if !ok {
			return fmt.Errorf("%w: %s", ErrSymbolNotInTree, Symbol(b).Label())
		}
		if err := writeCode(hc); err != nil {
			return fmt.Errorf("failed to write packed body: %w", err)
		}
	}

	hc, _ := e.Encode(EOF)
	if err := writeCode(hc); err != nil {
		return fmt.Errorf("failed to write packed body: %w", err)
	}
	if err := bits.Close(); err != nil {
		return fmt.Errorf("failed to write packed body: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write packed body: %w", err)
	}
	return nil
}

// Unpack reverses Pack, decompressing the file at inputPath into a new file
// at outputPath.
func Unpack(inputPath, outputPath string) (err error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(outputPath)
		}
	}()

	return UnpackStream(out, in)
}

// UnpackStream is the io form of Unpack.
func UnpackStream(w io.Writer, r io.Reader) error {
	br := bufio.NewReader(r)
	freq, err := readHeader(br)
	if err != nil {
		return err
	}

	t := BuildTree(freq)
	defer t.Release()

	e, err := NewEncoder(t)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var d Decoder
	if err := d.Init(e.Codes()); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	bits := bitio.NewReader(br)

	var hc Code
	for {
		symbol, _, maxSize := d.Decode(hc)
		switch {
		case symbol == EOF:
			if err := bw.Flush(); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil

		case symbol != InvalidSymbol:
			if err := bw.WriteByte(byte(symbol)); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			hc = Code{}
			continue

		case maxSize == 0:
			return fmt.Errorf("%w: no symbol has code %s", ErrCorrupt, hc)
		}

		bit, err := bits.ReadBool()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: body ends before EOF code", ErrCorrupt)
		}
		if err != nil {
			return fmt.Errorf("failed to read packed body: %w", err)
		}
		hc = hc.Append(bit)
	}
}

func writeHeader(w *bufio.Writer, freq Frequencies) error {
	if _, err := w.WriteString(Magic); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	var tmp [binary.MaxVarintLen64]byte
	for symbol := Symbol(0); symbol < EOF; symbol++ {
		n := binary.PutUvarint(tmp[:], freq[symbol])
		if _, err := w.Write(tmp[:n]); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	return nil
}

func readHeader(r *bufio.Reader) (Frequencies, error) {
	var freq Frequencies

	var magic [len(Magic)]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return freq, ErrBadMagic
		}
		return freq, fmt.Errorf("failed to read header: %w", err)
	}
	if string(magic[:]) != Magic {
		return freq, ErrBadMagic
	}

	for symbol := Symbol(0); symbol < EOF; symbol++ {
		count, err := binary.ReadUvarint(r)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return freq, fmt.Errorf("%w: header truncated at symbol %d", ErrCorrupt, symbol)
		}
		if err != nil {
			return freq, fmt.Errorf("%w: bad count for symbol %d: %v", ErrCorrupt, symbol, err)
		}
		freq[symbol] = count
	}
	return freq, nil
}
