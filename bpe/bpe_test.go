package bpe

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/tokseq/tokseq/errs"
)

func TestNewRequiresABound(t *testing.T) {
	if _, err := New(0, 0); err == nil {
		t.Fatalf("expected ConfigError when neither bound is set")
	} else if !errors.Is(err, errs.ErrConfig) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func asciiTokens(s string) []int {
	out := make([]int, len(s))
	for i, b := range []byte(s) {
		out[i] = int(b)
	}
	return out
}

func TestLearnScenarioAaabdaaabac(t *testing.T) {
	tok, err := New(10, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tokens := asciiTokens("aaabdaaabac")
	if err := tok.Learn(tokens, nil); err != nil {
		t.Fatalf("Learn: %v", err)
	}

	// the first real merge should be (a,a) since "aa" is the most frequent pair
	a := int('a')
	seedA := tok.valueToSeed[a]
	firstRealMerge := tok.merges[len(tok.inputVocab)]
	if firstRealMerge.A != seedA || firstRealMerge.B != seedA {
		t.Fatalf("expected first merge to be (a,a) in seed space, got %v (seedA=%d)", firstRealMerge, seedA)
	}

	encoded := tok.Encode(tokens)
	decoded := tok.Decode(encoded)
	if !reflect.DeepEqual(decoded, tokens) {
		t.Fatalf("round trip mismatch: got %v, want %v", decoded, tokens)
	}

	if len(tok.merges) > 10 {
		t.Fatalf("len(merges) = %d, want <= 10", len(tok.merges))
	}
}

func TestEncodeLengthNonIncreasing(t *testing.T) {
	tok, err := New(50, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tokens := asciiTokens("the quick brown fox the quick brown fox the quick")
	if err := tok.Learn(tokens, nil); err != nil {
		t.Fatalf("Learn: %v", err)
	}

	encoded := tok.Encode(tokens)
	if len(encoded) > len(tokens) {
		t.Fatalf("encode grew input: %d > %d", len(encoded), len(tokens))
	}
}

func TestOutputVocabContainsEveryEncodedID(t *testing.T) {
	tok, err := New(30, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tokens := asciiTokens("mississippi river mississippi delta mississippi")
	if err := tok.Learn(tokens, nil); err != nil {
		t.Fatalf("Learn: %v", err)
	}

	outVocab := map[int]bool{}
	for _, id := range tok.OutputVocab() {
		outVocab[id] = true
	}

	for _, id := range tok.Encode(tokens) {
		if !outVocab[id] {
			t.Fatalf("encoded id %d not in output vocab", id)
		}
	}
}

func TestUntrainedModelIsIdentity(t *testing.T) {
	tok, err := New(10, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tokens := []int{1, 2, 3}
	if got := tok.Encode(tokens); !reflect.DeepEqual(got, tokens) {
		t.Fatalf("Encode on untrained model = %v, want %v", got, tokens)
	}
	if got := tok.Decode([]int{7, 8}); !reflect.DeepEqual(got, []int{7, 8}) {
		t.Fatalf("Decode on untrained model = %v, want unchanged", got)
	}
}

func TestLearnIsDeterministic(t *testing.T) {
	tokens := asciiTokens("abababab cdcdcdcd abababab")
	tok1, _ := New(20, 0)
	tok2, _ := New(20, 0)
	_ = tok1.Learn(tokens, nil)
	_ = tok2.Learn(tokens, nil)

	if !reflect.DeepEqual(tok1.merges, tok2.merges) {
		t.Fatalf("Learn is not deterministic: %v != %v", tok1.merges, tok2.merges)
	}
}

func TestRoundTripRandomized(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		n := 5 + r.Intn(200)
		tokens := make([]int, n)
		for i := range tokens {
			tokens[i] = r.Intn(6)
		}

		tok, err := New(40, 0)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if err := tok.Learn(tokens, nil); err != nil {
			t.Fatalf("Learn: %v", err)
		}

		encoded := tok.Encode(tokens)
		decoded := tok.Decode(encoded)
		if !reflect.DeepEqual(decoded, tokens) {
			t.Fatalf("trial %d: round trip mismatch\ntokens:  %v\nencoded: %v\ndecoded: %v", trial, tokens, encoded, decoded)
		}
	}
}

func TestShortInputSkipsMergeLoop(t *testing.T) {
	tok, err := New(10, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tok.Learn([]int{5}, nil); err != nil {
		t.Fatalf("Learn: %v", err)
	}
	if len(tok.merges) != 1 {
		t.Fatalf("len(merges) = %d, want 1 (seed only)", len(tok.merges))
	}

	encoded := tok.Encode([]int{5})
	decoded := tok.Decode(encoded)
	if !reflect.DeepEqual(decoded, []int{5}) {
		t.Fatalf("round trip mismatch for single-token input: %v", decoded)
	}
}

func TestMaxMergesDerivesMaxOutputVocab(t *testing.T) {
	tok, err := New(0, 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tokens := asciiTokens("aaaaaaaaaaaa")
	if err := tok.Learn(tokens, nil); err != nil {
		t.Fatalf("Learn: %v", err)
	}
	// input vocab is just {'a'}, so max_output_vocab = 3 + 1 = 4
	if len(tok.merges) > 4 {
		t.Fatalf("len(merges) = %d, want <= 4", len(tok.merges))
	}
}

func TestEncodeIsDeterministicAcrossCalls(t *testing.T) {
	tok, _ := New(25, 0)
	tokens := asciiTokens("abcabcabcabcxyzxyzabcxyz")
	_ = tok.Learn(tokens, nil)

	a := tok.Encode(tokens)
	b := tok.Encode(tokens)
	if fmt.Sprint(a) != fmt.Sprint(b) {
		t.Fatalf("Encode is not deterministic across calls")
	}
}
