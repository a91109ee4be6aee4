package huffman

import (
	"bytes"
	"strings"
	"testing"
)

func makeTestDecoder() Decoder {
	var d Decoder
	err := d.Init(map[Symbol]Code{
		0: parseCode("1110"),
		1: parseCode("1111"),
		2: parseCode("100"),
		3: parseCode("101"),
		4: parseCode("110"),
		5: parseCode("0"),
	})
	if err != nil {
		panic(err)
	}
	return d
}

func TestDecoder_SizeBySymbol(t *testing.T) {
	d := makeTestDecoder()

	expectSizes := []byte{4, 4, 3, 3, 3, 1}
	actualSizes := d.SizeBySymbol()
	if !bytes.Equal(expectSizes, actualSizes) {
		t.Errorf("wrong sizes:\n\texpect: %#v\n\tactual: %#v", expectSizes, actualSizes)
	}
	if actual := d.MaxSymbol(); actual != 5 {
		t.Errorf("expected MaxSymbol 5, got %d", actual)
	}
}

func TestDecoder_Decode(t *testing.T) {
	d := makeTestDecoder()

	type testRow struct {
		code string
		min  byte
		max  byte
		sym  Symbol
	}

	testData := [...]testRow{
		{code: "", min: 1, max: 4, sym: InvalidSymbol},
		{code: "0", min: 1, max: 1, sym: 5},
		{code: "1", min: 3, max: 4, sym: InvalidSymbol},
		{code: "10", min: 3, max: 3, sym: InvalidSymbol},
		{code: "11", min: 3, max: 4, sym: InvalidSymbol},
		{code: "100", min: 3, max: 3, sym: 2},
		{code: "101", min: 3, max: 3, sym: 3},
		{code: "110", min: 3, max: 3, sym: 4},
		{code: "111", min: 4, max: 4, sym: InvalidSymbol},
		{code: "1110", min: 4, max: 4, sym: 0},
		{code: "1111", min: 4, max: 4, sym: 1},
		{code: "01", min: 0, max: 0, sym: InvalidSymbol},
	}
	for _, row := range testData {
		hc := parseCode(row.code)
		t.Run(hc.String(), func(t *testing.T) {
			sym, min, max := d.Decode(hc)
			if sym != row.sym {
				t.Errorf("expected symbol %d, got %d", row.sym, sym)
			}
			if min != row.min {
				t.Errorf("expected minimum size %d, got %d", row.min, min)
			}
			if max != row.max {
				t.Errorf("expected maximum size %d, got %d", row.max, max)
			}
		})
	}
}

func TestDecoder_DebugString(t *testing.T) {
	d := makeTestDecoder()

	expectDebug := strings.Join([]string{
		"Decoder{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 4\n",
		"\tDecode(\"\") = {-1, 1, 4}\n",
		"\tDecode(\"0\") = {5, 1, 1}\n",
		"\tDecode(\"1\") = {-1, 3, 4}\n",
		"\tDecode(\"10\") = {-1, 3, 3}\n",
		"\tDecode(\"11\") = {-1, 3, 4}\n",
		"\tDecode(\"100\") = {2, 3, 3}\n",
		"\tDecode(\"110\") = {4, 3, 3}\n",
		"\tDecode(\"101\") = {3, 3, 3}\n",
		"\tDecode(\"111\") = {-1, 4, 4}\n",
		"\tDecode(\"1110\") = {0, 4, 4}\n",
		"\tDecode(\"1111\") = {1, 4, 4}\n",
		"}\n",
	}, "")
	actualDebug := d.DebugString()
	if expectDebug != actualDebug {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDebug, actualDebug)
	}
}

func TestDecoder_String(t *testing.T) {
	d := makeTestDecoder()

	expectString := "(Huffman decoder with 6 symbols, with coded lengths of 1 .. 4 bits)"
	actualString := d.String()
	if expectString != actualString {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectString, actualString)
	}
}

func TestDecoder_SingleEmptyCode(t *testing.T) {
	var d Decoder
	if err := d.Init(map[Symbol]Code{EOF: {}}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	sym, min, max := d.Decode(Code{})
	if sym != EOF || min != 0 || max != 0 {
		t.Errorf("expected {%d, 0, 0}, got {%d, %d, %d}", EOF, sym, min, max)
	}
}

func TestDecoder_Empty(t *testing.T) {
	var d Decoder
	if err := d.Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if sym, _, _ := d.Decode(Code{}); sym != InvalidSymbol {
		t.Errorf("expected InvalidSymbol, got %d", sym)
	}
}

func TestDecoder_InitErrors(t *testing.T) {
	testData := map[string]map[Symbol]Code{
		"duplicate":      {0: parseCode("01"), 1: parseCode("01"), 2: parseCode("1")},
		"prefix-first":   {0: parseCode("0"), 1: parseCode("01")},
		"prefix-second":  {0: parseCode("01"), 1: parseCode("0")},
		"empty-and-more": {0: parseCode(""), 1: parseCode("1")},
		"too-long":       {0: MakeCode(MaxBitsPerCode+1, 0)},
		"negative":       {-2: parseCode("1")},
	}
	for name, codes := range testData {
		codes := codes
		t.Run(name, func(t *testing.T) {
			var d Decoder
			if err := d.Init(codes); err == nil {
				t.Errorf("expected Init to fail")
			}
		})
	}
}
