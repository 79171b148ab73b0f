package txscript

import (
	"bytes"
	"testing"
)

func TestParseStatements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		script []byte
	}{
		{
			name:   "pay to pubkey hash",
			text:   "OP_DUP HASH160 0x14 0x89abcdefabbaabbaabbaabbaabbaabbaabbaabba EQUALVERIFY OP_CHECKSIG",
			script: hexToBytes("76a91489abcdefabbaabbaabbaabbaabbaabbaabbaabba88ac"),
		},
		{
			name:   "bracketed data is pushed minimally",
			text:   "[89abcdefabbaabbaabbaabbaabbaabbaabbaabba] [05] []",
			script: hexToBytes("1489abcdefabbaabbaabbaabbaabbaabbaabbaabba5500"),
		},
		{
			name:   "numbers",
			text:   "0 -1 16 17 1000",
			script: []byte{Op0, Op1Negate, Op16, OpData1, 0x11, OpData2, 0xe8, 0x03},
		},
		{
			name:   "quoted string",
			text:   "'Az' OP_SIZE",
			script: []byte{OpData2, 'A', 'z', OpSize},
		},
		{
			name:   "aliases and whitespace",
			text:   "\tOP_TRUE\nFALSE  NOP2 ",
			script: []byte{Op1, Op0, OpCheckLockTimeVerify},
		},
	}

	for _, test := range tests {
		statements, err := ParseStatements(test.text)
		if err != nil {
			t.Errorf("%s: ParseStatements error %v", test.name, err)
			continue
		}
		script, err := Compile(statements)
		if err != nil {
			t.Errorf("%s: Compile error %v", test.name, err)
			continue
		}
		if !bytes.Equal(script, test.script) {
			t.Errorf("%s: got %x want %x", test.name, []byte(script), test.script)
		}
	}
}

func TestParseStatementsErrors(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"OP_BOGUS",
		"0xzz",
		"[abc]",
		"1 DUP 'unterminated",
		"OP_UNKNOWN186",
	} {
		_, err := ParseStatements(text)
		if err == nil {
			t.Errorf("ParseStatements(%q): expected error", text)
		}
	}
}

// TestStatementStringRoundTrip ensures the text form of statements parses back
// into statements compiling to the same bytecode.
func TestStatementStringRoundTrip(t *testing.T) {
	t.Parallel()

	statements := []Statement{
		ValueStatement(-1), ValueStatement(1 << 40), DataStatement([]byte{0xde, 0xad}),
		DataStatement(nil), OpStatement(OpDup), OpStatement(OpData20), OpStatement(Op16),
	}

	var text []byte
	for i, s := range statements {
		if i > 0 {
			text = append(text, ' ')
		}
		text = append(text, s.String()...)
	}
	if string(text) != "-1 1099511627776 [dead] [] OP_DUP OP_DATA_20 OP_16" {
		t.Fatalf("String: got %q", text)
	}

	parsed, err := ParseStatements(string(text))
	if err != nil {
		t.Fatalf("ParseStatements: %v", err)
	}
	want, err := Compile(statements)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	got, err := Compile(parsed)
	if err != nil {
		t.Fatalf("Compile parsed: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("round trip: got %x want %x", []byte(got), []byte(want))
	}
}
