// Package contextual implements the contextual encoder from spec §4.6: a
// per-(previous-token, next-token) dictionary of the most frequent bounded
// substring between two occurrences of a vocabulary symbol, encoded by
// greedy longest-match. Grounded on original_source/src/bpe.py's
// get_context_stats/learn_contextual_tokenizer/contextual_encode/
// contextual_decode, which this is a direct but idiomatic-Go port of —
// the spec's own ContextualBPE supplement composes this stage after BPE.
package contextual

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tokseq/tokseq/errs"
	"github.com/tokseq/tokseq/logutil"
	"github.com/tokseq/tokseq/primitives"
)

// EmptyToken is the distinguished root context/terminator, 0 in the
// reference implementation.
const EmptyToken = 0

// Tokenizer maps (context, next) pairs to the substring context_map
// learned between consecutive occurrences of vocabulary symbols.
type Tokenizer struct {
	contextMap map[int]map[int][]int
	inputVocab []int
}

// New returns an untrained Tokenizer. An untrained tokenizer has an empty
// context map, so Encode/Decode of any non-empty input fail with
// ErrUnknownToken.
func New() *Tokenizer {
	return &Tokenizer{contextMap: map[int]map[int][]int{}}
}

// substrBucket tracks, for one (context, end token) pair, every distinct
// substring seen between them: its count and the order it was first
// encountered, so ties can resolve to "first encountered" per spec.
type substrBucket struct {
	order []string
	seq   map[string][]int
	count map[string]int
}

func (b *substrBucket) add(sub []int) {
	key := seqKey(sub)
	if _, ok := b.count[key]; !ok {
		b.order = append(b.order, key)
		b.seq[key] = sub
	}
	b.count[key]++
}

func (b *substrBucket) best() []int {
	bestKey := b.order[0]
	bestCount := b.count[bestKey]
	for _, key := range b.order[1:] {
		if b.count[key] > bestCount {
			bestKey, bestCount = key, b.count[key]
		}
	}
	return b.seq[bestKey]
}

func seqKey(seq []int) string {
	parts := make([]string, len(seq))
	for i, v := range seq {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// contextStats computes, for every context v and next token t in vocab,
// the count of every substring that starts right after an occurrence of
// v and ends at an occurrence of t with no intervening v.
func contextStats(tokens []int, vocab []int) map[int]map[int]*substrBucket {
	stats := make(map[int]map[int]*substrBucket, len(vocab))
	lastIdx := make(map[int]int, len(vocab))
	for _, v := range vocab {
		stats[v] = make(map[int]*substrBucket, len(vocab))
		for _, t := range vocab {
			stats[v][t] = &substrBucket{seq: map[string][]int{}, count: map[string]int{}}
		}
		lastIdx[v] = -1
	}

	for idx, t := range tokens {
		for _, v := range vocab {
			start, ok := lastIdx[v]
			if !ok || start < 0 {
				continue
			}
			sub := append([]int(nil), tokens[start+1:idx+1]...)
			stats[v][t].add(sub)
		}
		lastIdx[t] = idx
	}

	return stats
}

// Learn builds the context map from tokens. vocab defaults to the unique
// symbols of tokens, in first-occurrence order, when nil.
func (tok *Tokenizer) Learn(tokens []int, vocab []int) {
	if vocab == nil {
		vocab = primitives.UniqueInOrder(tokens)
	}
	tok.inputVocab = append([]int(nil), vocab...)

	stats := contextStats(tokens, vocab)

	contextMap := make(map[int]map[int][]int, len(vocab)+1)
	for _, v := range vocab {
		contextMap[v] = map[int][]int{EmptyToken: {}}
	}

	for _, v := range vocab {
		for _, t := range vocab {
			if t == EmptyToken {
				continue
			}
			bucket := stats[v][t]
			if len(bucket.order) == 0 {
				continue
			}
			contextMap[v][t] = bucket.best()
		}
	}

	contextMap[EmptyToken] = make(map[int][]int, len(vocab))
	for _, v := range vocab {
		contextMap[EmptyToken][v] = []int{v}
	}

	tok.contextMap = contextMap
	logutil.Trace("learned contextual tokenizer", "vocab_size", len(vocab))
}

// Encode greedily matches the longest contextMap[ctx] value that
// prefixes the remainder of tokens, preferring the smaller token id on
// ties, then advances by that value's length.
func (tok *Tokenizer) Encode(tokens []int) ([]int, error) {
	ctx := EmptyToken
	out := make([]int, 0, len(tokens))
	i := 0

	for i < len(tokens) {
		candidates := tok.contextMap[ctx]

		bestT, bestLen := -1, -1
		ts := make([]int, 0, len(candidates))
		for t := range candidates {
			ts = append(ts, t)
		}
		sort.Ints(ts)

		for _, t := range ts {
			value := candidates[t]
			if primitives.IsPrefix(tokens[i:], value) && len(value) > bestLen {
				bestT, bestLen = t, len(value)
			}
		}

		if bestT == -1 {
			// every real context carries a length-0 EmptyToken fallback
			// (see Learn), so this only happens at ctx == EmptyToken: the
			// current symbol isn't in the trained vocabulary at all.
			return nil, fmt.Errorf("contextual: encode: %w", errs.ErrUnknownToken)
		}

		out = append(out, bestT)
		ctx = bestT
		i += bestLen
	}

	return out, nil
}

// Decode expands each token under the context set by the token before
// it, starting from EmptyToken.
func (tok *Tokenizer) Decode(tokens []int) ([]int, error) {
	ctx := EmptyToken
	out := make([]int, 0, len(tokens))

	for _, t := range tokens {
		ctxMap, ok := tok.contextMap[ctx]
		if !ok {
			return nil, fmt.Errorf("contextual: decode: %w", errs.ErrUnknownToken)
		}
		value, ok := ctxMap[t]
		if !ok {
			return nil, fmt.Errorf("contextual: decode: %w", errs.ErrUnknownToken)
		}
		out = append(out, value...)
		ctx = t
	}

	return out, nil
}

// InputVocab returns the vocabulary Learn was trained against.
func (tok *Tokenizer) InputVocab() []int {
	return append([]int(nil), tok.inputVocab...)
}

// OutputVocab returns every token id this tokenizer can emit: EmptyToken
// plus the learned vocabulary.
func (tok *Tokenizer) OutputVocab() []int {
	out := make([]int, 0, len(tok.inputVocab)+1)
	out = append(out, EmptyToken)
	out = append(out, tok.inputVocab...)
	return out
}
