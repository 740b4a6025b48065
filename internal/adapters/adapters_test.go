package adapters

import (
	"bytes"
	"reflect"
	"testing"
)

func TestBytesRoundTrip(t *testing.T) {
	in := []byte("hello, tokseq")
	tokens := BytesToTokens(in)
	out, err := TokensToBytes(tokens)
	if err != nil {
		t.Fatalf("TokensToBytes: %v", err)
	}
	if !bytes.Equal(in, out) {
		t.Fatalf("round trip mismatch: got %q, want %q", out, in)
	}
}

func TestTokensToBytesRejectsOutOfRange(t *testing.T) {
	if _, err := TokensToBytes([]int{1, 2, 300}); err == nil {
		t.Fatal("expected error for token above byte range")
	}
	if _, err := TokensToBytes([]int{1, -1}); err == nil {
		t.Fatal("expected error for negative token")
	}
}

func TestIntLinesRoundTrip(t *testing.T) {
	tokens := []int{5, 12, 0, 7, 7, 3}

	var buf bytes.Buffer
	if err := WriteIntLines(&buf, tokens); err != nil {
		t.Fatalf("WriteIntLines: %v", err)
	}

	got, err := ReadIntLines(&buf)
	if err != nil {
		t.Fatalf("ReadIntLines: %v", err)
	}
	if !reflect.DeepEqual(got, tokens) {
		t.Fatalf("got %v, want %v", got, tokens)
	}
}

func TestReadIntLinesSkipsBlankLines(t *testing.T) {
	got, err := ReadIntLines(bytes.NewBufferString("1\n\n2\n\n\n3\n"))
	if err != nil {
		t.Fatalf("ReadIntLines: %v", err)
	}
	if !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("got %v", got)
	}
}

func TestReadIntLinesRejectsMalformed(t *testing.T) {
	if _, err := ReadIntLines(bytes.NewBufferString("1\nabc\n3\n")); err == nil {
		t.Fatal("expected parse error")
	}
}
