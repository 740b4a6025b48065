// Package bpe implements the iterative most-frequent-pair merge learner,
// merge-replay encoder, and expansion decoder described in spec §4.3.
// The learner follows the reference implementation
// (original_source/src/bpe.py) exactly where spec.md's distillation is
// ambiguous about id numbering: seed entries get contiguous ids 1..|V| in
// vocabulary-iteration order (not the raw input symbol values), and every
// merge learned thereafter gets the next contiguous id. This is what
// makes spec §4.3 step 6's "output_vocab := {1..|merges|}" hold exactly.
//
// The encoder's hot loop — a doubly linked list over the working sequence
// with a id-bucketed priority queue of merge candidates — is adapted from
// the teacher's internal/tokenizer/core/encoder.go: processing merges in
// ascending id order with a leftmost position tie-break is equivalent to
// replaying merges one-at-a-time in learned order, because the queue
// never pops a higher-id candidate while a lower-id one remains pending.
package bpe

import (
	"fmt"
	"sync"

	"github.com/tokseq/tokseq/errs"
	"github.com/tokseq/tokseq/logutil"
	"github.com/tokseq/tokseq/primitives"
)

// Tokenizer is a byte-pair-encoding tokenizer. The zero value is not
// usable; construct with New.
type Tokenizer struct {
	maxOutputVocabCfg int
	maxMergesCfg      int

	inputVocab  []int
	valueToSeed map[int]int

	merges      []primitives.Pair // 1-indexed conceptually: merges[i-1] is id i
	tokenValues map[int][]int     // id -> flattened input-vocab expansion

	outputVocabSize int

	lookup      *pairLookup
	scratchPool sync.Pool
}

// New constructs a BPE tokenizer bounded by maxOutputVocab and/or
// maxMerges. At least one bound is required; passing both 0 is a config
// error. maxOutputVocab <= 0 means "unbounded except by maxMerges".
func New(maxOutputVocab, maxMerges int) (*Tokenizer, error) {
	if maxOutputVocab <= 0 && maxMerges <= 0 {
		return nil, fmt.Errorf("bpe: new: %w: need max_output_vocab or max_merges", errs.ErrConfig)
	}

	return &Tokenizer{
		maxOutputVocabCfg: maxOutputVocab,
		maxMergesCfg:      maxMerges,
	}, nil
}

// InputVocab returns the vocabulary Learn trained against, in learned
// iteration order.
func (t *Tokenizer) InputVocab() []int {
	return append([]int(nil), t.inputVocab...)
}

// OutputVocab returns the trained output id range [1, len(merges)]; it is
// empty before Learn is called.
func (t *Tokenizer) OutputVocab() []int {
	out := make([]int, t.outputVocabSize)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Learn trains merges from tokens. If inputVocab is nil, the vocabulary
// is the unique values of tokens in first-occurrence order. Learn clears
// and replaces all prior state.
func (t *Tokenizer) Learn(tokens []int, inputVocab []int) error {
	v := inputVocab
	if v == nil {
		v = primitives.UniqueInOrder(tokens)
	}

	t.inputVocab = append([]int(nil), v...)
	t.valueToSeed = make(map[int]int, len(v))
	t.merges = make([]primitives.Pair, 0, len(v))
	t.tokenValues = make(map[int][]int, len(v))

	for i, sym := range v {
		seedID := i + 1
		t.valueToSeed[sym] = seedID
		t.merges = append(t.merges, primitives.Pair{A: 0, B: sym})
		t.tokenValues[seedID] = []int{sym}
	}

	maxOutputVocab := t.maxOutputVocabCfg
	if maxOutputVocab <= 0 {
		maxOutputVocab = t.maxMergesCfg + len(v)
	}

	working := make([]int, len(tokens))
	for i, tok := range tokens {
		seed, ok := t.valueToSeed[tok]
		if !ok {
			seed = tok // unseen symbol: pass through, matches decode's defensive stance
		}
		working[i] = seed
	}

	if len(working) >= 2 {
		for len(t.merges) < maxOutputVocab {
			stats := primitives.PairStats(working)
			if len(stats) == 0 {
				break
			}

			best, bestCount := bestPair(stats, working)
			if bestCount == 1 {
				break
			}

			newID := len(t.merges) + 1
			working = primitives.MergePairs(working, best, newID)
			t.merges = append(t.merges, best)
			t.tokenValues[newID] = append(
				append([]int(nil), t.tokenValues[best.A]...),
				t.tokenValues[best.B]...,
			)

			logutil.Trace("bpe: learned merge", "id", newID, "pair", best, "count", bestCount)
		}
	}

	t.outputVocabSize = len(t.merges)
	t.rebuildLookup()
	return nil
}

// bestPair picks the highest-count pair in stats, breaking ties by first
// occurrence in working (spec §4.3 step 4b).
func bestPair(stats map[primitives.Pair]int, working []int) (primitives.Pair, int) {
	var best primitives.Pair
	bestCount := -1
	bestFirst := len(working)

	for pair, count := range stats {
		first := primitives.FirstOccurrence(working, pair)
		switch {
		case count > bestCount:
			best, bestCount, bestFirst = pair, count, first
		case count == bestCount && first < bestFirst:
			best, bestFirst = pair, first
		}
	}

	return best, bestCount
}

func (t *Tokenizer) rebuildLookup() {
	pairs := make(map[[2]int]int, len(t.merges))
	for i, pair := range t.merges {
		if pair.A == 0 {
			continue // seeding merge, never fires at encode time
		}
		pairs[[2]int{pair.A, pair.B}] = i + 1
	}
	t.lookup = newPairLookup(pairs, len(t.merges)+1)
}
