// Package pipeline implements sequential composition of tokenizer stages
// (spec §4.7): learn folds left-to-right with each stage training against
// the previous stage's output vocabulary, encode folds left-to-right,
// decode folds right-to-left. Grounded on spec.md §4.7 directly; the
// Stage interface and adapter types below exist because each concrete
// tokenizer (bpe, lz, hlz, contextual) has a slightly different Learn/
// Encode/Decode shape, matching each package's own grounding.
package pipeline

import (
	"github.com/tokseq/tokseq/bpe"
	"github.com/tokseq/tokseq/contextual"
	"github.com/tokseq/tokseq/hlz"
	"github.com/tokseq/tokseq/lz"
)

// Stage is the capability every pipeline element exposes: train against a
// token stream and an optional input vocabulary, then encode/decode as a
// pure function of the trained state.
type Stage interface {
	Learn(tokens []int, inputVocab []int) error
	Encode(tokens []int) ([]int, error)
	Decode(tokens []int) ([]int, error)
	InputVocab() []int
	OutputVocab() []int
}

type bpeStage struct {
	maxOutputVocab, maxMerges int
	tok                       *bpe.Tokenizer
}

// NewBPEStage wraps a BPE tokenizer as a pipeline Stage.
func NewBPEStage(maxOutputVocab, maxMerges int) (Stage, error) {
	tok, err := bpe.New(maxOutputVocab, maxMerges)
	if err != nil {
		return nil, err
	}
	return &bpeStage{maxOutputVocab: maxOutputVocab, maxMerges: maxMerges, tok: tok}, nil
}

func (s *bpeStage) Learn(tokens, inputVocab []int) error { return s.tok.Learn(tokens, inputVocab) }
func (s *bpeStage) Encode(tokens []int) ([]int, error)   { return s.tok.Encode(tokens), nil }
func (s *bpeStage) Decode(tokens []int) ([]int, error)   { return s.tok.Decode(tokens), nil }
func (s *bpeStage) InputVocab() []int                    { return s.tok.InputVocab() }
func (s *bpeStage) OutputVocab() []int                   { return s.tok.OutputVocab() }

type lzStage struct {
	vocabSize int
	coder     *lz.Coder
}

// NewLZStage wraps an LZ coder as a pipeline Stage. The coder itself is
// built lazily inside Learn, since its input vocabulary is only known at
// train time (typically the previous stage's output vocabulary).
func NewLZStage(vocabSize int) Stage {
	return &lzStage{vocabSize: vocabSize}
}

func (s *lzStage) Learn(tokens, inputVocab []int) error {
	c, err := lz.New(s.vocabSize, inputVocab)
	if err != nil {
		return err
	}
	s.coder = c
	// run the online learner once over tokens to populate the dictionary;
	// the resulting segmentation is discarded — Pipeline.Learn re-encodes
	// read-only right after this returns.
	if _, err := s.coder.Encode(tokens, true); err != nil {
		return err
	}
	return nil
}

func (s *lzStage) Encode(tokens []int) ([]int, error) { return s.coder.Encode(tokens, false) }
func (s *lzStage) Decode(tokens []int) ([]int, error) { return s.coder.Decode(tokens) }
func (s *lzStage) InputVocab() []int                  { return s.coder.InputVocab() }
func (s *lzStage) OutputVocab() []int                 { return s.coder.AssignedTokens() }

type hlzStage struct {
	vocabSize int
	coder     *hlz.Coder
}

// NewHLZStage wraps a Hierarchical LZ coder as a pipeline Stage.
func NewHLZStage(vocabSize int) Stage {
	return &hlzStage{vocabSize: vocabSize}
}

func (s *hlzStage) Learn(tokens, inputVocab []int) error {
	c, err := hlz.New(s.vocabSize, inputVocab)
	if err != nil {
		return err
	}
	s.coder = c
	if _, err := s.coder.Encode(tokens, true); err != nil {
		return err
	}
	return nil
}

func (s *hlzStage) Encode(tokens []int) ([]int, error) { return s.coder.Encode(tokens, false) }
func (s *hlzStage) Decode(tokens []int) ([]int, error) { return s.coder.Decode(tokens) }
func (s *hlzStage) InputVocab() []int                  { return s.coder.InputVocab() }
func (s *hlzStage) OutputVocab() []int                 { return s.coder.AssignedTokens() }

type contextualStage struct {
	tok *contextual.Tokenizer
}

// NewContextualStage wraps a contextual encoder as a pipeline Stage.
func NewContextualStage() Stage {
	return &contextualStage{tok: contextual.New()}
}

func (s *contextualStage) Learn(tokens, inputVocab []int) error {
	s.tok.Learn(tokens, inputVocab)
	return nil
}

func (s *contextualStage) Encode(tokens []int) ([]int, error) { return s.tok.Encode(tokens) }
func (s *contextualStage) Decode(tokens []int) ([]int, error) { return s.tok.Decode(tokens) }
func (s *contextualStage) InputVocab() []int                  { return s.tok.InputVocab() }
func (s *contextualStage) OutputVocab() []int                 { return s.tok.OutputVocab() }
