package lz

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tokseq/tokseq/errs"
)

func TestEmptyCoderEncodesByteAtATime(t *testing.T) {
	c, err := New(-1, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	encoded, err := c.Encode([]int{1, 2, 3}, true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) != 3 {
		t.Fatalf("expected one id per unseen symbol, got %v", encoded)
	}

	decoded, err := c.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, []int{1, 2, 3}) {
		t.Fatalf("round trip mismatch: got %v", decoded)
	}
}

// TestLearnGrowsLongerMatches is spec's concrete scenario #2: repeated
// exposure to the same substring should let the coder match it in one
// step on a later pass.
func TestLearnGrowsLongerMatches(t *testing.T) {
	c, err := New(-1, []int{'a', 'b', 'c'})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	seq := asciiTokens("abcabcabc")

	first, err := c.Encode(seq, true)
	if err != nil {
		t.Fatalf("Encode (pass 1): %v", err)
	}
	second, err := c.Encode(seq, true)
	if err != nil {
		t.Fatalf("Encode (pass 2): %v", err)
	}

	if len(second) >= len(first) {
		t.Fatalf("expected pass 2 to compress better than pass 1: %d vs %d", len(second), len(first))
	}

	decoded, err := c.Decode(second)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, seq) {
		t.Fatalf("round trip mismatch: got %v, want %v", decoded, seq)
	}
}

func TestLearningDisabledRejectsUnknownSymbol(t *testing.T) {
	c, err := New(-1, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = c.Encode([]int{42}, false)
	if !errors.Is(err, errs.ErrLearningDisabled) {
		t.Fatalf("expected ErrLearningDisabled, got %v", err)
	}
}

func TestDecodeUnknownTokenErrors(t *testing.T) {
	c, _ := New(-1, nil)
	if _, err := c.Decode([]int{999}); !errors.Is(err, errs.ErrUnknownToken) {
		t.Fatalf("expected ErrUnknownToken, got %v", err)
	}
}

func TestSmallestUnusedTokenIsDeterministic(t *testing.T) {
	c, err := New(10, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	seq := asciiTokens("ababab")
	encoded, err := c.Encode(seq, true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// ids are handed out in ascending, gap-filling order: the first two
	// new symbols get 0 and 1 (the empty token keeps -1 for itself).
	seen := map[int]bool{}
	for _, id := range encoded {
		seen[id] = true
	}
	if !seen[0] || !seen[1] {
		t.Fatalf("expected ids 0 and 1 to be assigned, got %v", encoded)
	}
}

func TestVocabFullStopsNewAllocations(t *testing.T) {
	c, err := New(2, nil) // room for exactly 2 symbols + the empty token
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.Encode(asciiTokens("ab"), true); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if _, err := c.Encode(asciiTokens("c"), true); !errors.Is(err, errs.ErrVocabFull) {
		t.Fatalf("expected ErrVocabFull, got %v", err)
	}
}

func TestProposeNextTokenHasNoSideEffects(t *testing.T) {
	c, err := New(-1, []int{'a'})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	sizeBefore := c.TrieSize()
	_, _ = c.ProposeNextToken(asciiTokens("aaa"), true)
	if c.TrieSize() != sizeBefore {
		t.Fatalf("ProposeNextToken mutated the trie: %d -> %d", sizeBefore, c.TrieSize())
	}
}

func asciiTokens(s string) []int {
	out := make([]int, len(s))
	for i, b := range []byte(s) {
		out[i] = int(b)
	}
	return out
}
