package contextual

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tokseq/tokseq/errs"
)

// TestScenarioOneTwoOneThree is spec's concrete scenario #4.
func TestScenarioOneTwoOneThree(t *testing.T) {
	tok := New()
	tokens := []int{1, 2, 1, 3, 1, 2, 1, 3}
	tok.Learn(tokens, nil)

	encoded, err := tok.Encode(tokens)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := tok.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, tokens) {
		t.Fatalf("round trip mismatch: got %v, want %v", decoded, tokens)
	}

	want1, want2 := []int{2, 1, 3}, []int{3}
	got := tok.contextMap[1][3]
	if !reflect.DeepEqual(got, want1) && !reflect.DeepEqual(got, want2) {
		t.Fatalf("context_map[1][3] = %v, want %v or %v", got, want1, want2)
	}
}

func TestUntrainedTokenizerRejectsRatherThanHangs(t *testing.T) {
	tok := New()
	// no learned vocabulary: the very first symbol can't match anything
	// under the empty context, so this must fail rather than loop forever.
	if _, err := tok.Encode([]int{5}); !errors.Is(err, errs.ErrUnknownToken) {
		t.Fatalf("expected ErrUnknownToken, got %v", err)
	}
}

func TestEncodeUnknownSymbolErrors(t *testing.T) {
	tok := New()
	tok.Learn([]int{1, 2, 1, 2}, nil)

	if _, err := tok.Encode([]int{9}); !errors.Is(err, errs.ErrUnknownToken) {
		t.Fatalf("expected ErrUnknownToken, got %v", err)
	}
}

func TestDecodeUnknownTokenErrors(t *testing.T) {
	tok := New()
	tok.Learn([]int{1, 2, 1, 2}, nil)

	if _, err := tok.Decode([]int{999}); !errors.Is(err, errs.ErrUnknownToken) {
		t.Fatalf("expected ErrUnknownToken, got %v", err)
	}
}

func TestRoundTripExplicitVocab(t *testing.T) {
	tokens := []int{1, 2, 3, 1, 2, 4, 1, 3, 4, 1, 2, 3, 4, 1, 2, 1, 3}
	tok := New()
	tok.Learn(tokens, []int{1, 2, 3, 4})

	encoded, err := tok.Encode(tokens)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := tok.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, tokens) {
		t.Fatalf("round trip mismatch: got %v, want %v", decoded, tokens)
	}
}

func TestLearnIsDeterministic(t *testing.T) {
	tokens := []int{1, 2, 1, 3, 1, 2, 1, 3, 1, 2}
	a, b := New(), New()
	a.Learn(tokens, nil)
	b.Learn(tokens, nil)

	if !reflect.DeepEqual(a.contextMap, b.contextMap) {
		t.Fatalf("Learn is not deterministic: %v != %v", a.contextMap, b.contextMap)
	}
}
