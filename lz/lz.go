// Package lz implements the trie-backed dictionary coder from spec §4.4:
// a learner that grows a trie of substrings on demand, allocating each new
// substring the smallest currently-unused output id. Grounded on
// original_source/src/lz.py (the LZCoder class) and original_source/src/lz.hpp,
// which is the exact source spec §4.4 was distilled from.
//
// The "smallest unused token" rule is implemented with an ordered integer
// set (github.com/emirpasic/gods/v2/sets/treeset) rather than a hash set,
// per spec §9's design note: hash iteration order must never leak into
// which id gets assigned.
package lz

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/v2/sets/treeset"

	"github.com/tokseq/tokseq/errs"
	"github.com/tokseq/tokseq/trie"
)

// EmptyToken is the sentinel context/id denoting the empty-prefix match.
const EmptyToken = trie.NoToken

// Coder is a trie-backed dictionary coder over integer symbols.
type Coder struct {
	vocabSize    int // <=0 means unbounded
	inputVocab   map[int]bool
	trie         *trie.Trie
	encodedVocab map[int][]int
	unused       *treeset.Set[int]
	nextID       int // next fresh id to mint when vocabSize <= 0 (unbounded)
}

// New constructs a Coder. vocabSize <= 0 means unbounded (unused tokens
// are never pre-populated and update_vocab/encode_one never hit
// VocabFull/DictionaryFull from exhausting a bound). If vocabSize > 0,
// inputVocab must not exceed it.
func New(vocabSize int, inputVocab []int) (*Coder, error) {
	c := &Coder{
		vocabSize:    vocabSize,
		inputVocab:   make(map[int]bool, len(inputVocab)),
		trie:         trie.New(),
		encodedVocab: map[int][]int{EmptyToken: {}},
		unused:       treeset.New[int](),
	}
	c.trie.Insert([]int{}, EmptyToken)

	if vocabSize > 0 {
		if len(inputVocab) > vocabSize {
			return nil, fmt.Errorf("lz: new: %w: input vocab larger than vocab_size", errs.ErrConfig)
		}
		for i := 0; i < vocabSize; i++ {
			c.unused.Add(i)
		}
	}

	for _, sym := range inputVocab {
		id, ok := c.smallestUnused()
		if !ok {
			return nil, fmt.Errorf("lz: new: %w", errs.ErrVocabFull)
		}
		c.addNewToken([]int{sym}, id)
		c.inputVocab[sym] = true
	}

	if vocabSize > 0 {
		c.vocabSize = vocabSize + 1 // account for the empty token
	}

	return c, nil
}

// smallestUnused peeks at the next id this coder would hand out without
// consuming it. In bounded mode that's the smallest member of the unused
// set; in unbounded mode (vocabSize <= 0) there is no finite unused set
// to draw from, so it peeks at a monotonically increasing counter instead.
// Either way this is read-only: callers decide whether to actually commit
// the id via addNewToken.
func (c *Coder) smallestUnused() (int, bool) {
	if c.vocabSize > 0 {
		if c.unused.Empty() {
			return 0, false
		}
		// treeset.Values() returns elements in ascending order.
		return c.unused.Values()[0], true
	}
	return c.nextID, true
}

func (c *Coder) addNewToken(key []int, id int) {
	c.encodedVocab[id] = append([]int(nil), key...)
	c.trie.Insert(key, id)
	c.unused.Remove(id)
	if c.vocabSize <= 0 && id >= c.nextID {
		c.nextID = id + 1
	}
}

// UpdateVocab registers any symbol in seq not already in the input
// vocabulary, allocating it the smallest unused id.
func (c *Coder) UpdateVocab(seq []int) error {
	for _, sym := range seq {
		if c.inputVocab[sym] {
			continue
		}

		if c.vocabSize > 0 && c.trie.Size() >= c.vocabSize {
			return fmt.Errorf("lz: update_vocab: %w", errs.ErrVocabFull)
		}
		id, ok := c.smallestUnused()
		if !ok {
			return fmt.Errorf("lz: update_vocab: %w", errs.ErrVocabFull)
		}
		c.addNewToken([]int{sym}, id)
		c.inputVocab[sym] = true
	}
	return nil
}

// ProposeNextToken walks seq against the trie and, if learn is set and the
// bound allows it, extends the match by one symbol using an unused id.
// The proposal is not committed: it may name an id the trie has never
// seen. This must have no observable side effects — Hierarchical LZ
// relies on calling it read-only on every other context during its vote.
func (c *Coder) ProposeNextToken(seq []int, learn bool) ([]int, int) {
	prefix, id := c.trie.LongestPrefix(seq)

	if learn && len(prefix) < len(seq) && (c.vocabSize <= 0 || c.trie.Size() < c.vocabSize) {
		prefix = append([]int(nil), seq[:len(prefix)+1]...)
		if next, ok := c.smallestUnused(); ok {
			id = next
		}
	}

	return prefix, id
}

// EncodeOne proposes and, if necessary and permitted, commits a new
// token, returning the matched prefix and its id.
func (c *Coder) EncodeOne(seq []int, learn bool) ([]int, int, error) {
	prefix, id := c.ProposeNextToken(seq, learn)

	if _, known := c.encodedVocab[id]; known {
		return prefix, id, nil
	}
	if !learn {
		return nil, 0, fmt.Errorf("lz: encode_one: %w", errs.ErrLearningDisabled)
	}
	if c.vocabSize > 0 && c.trie.Size() >= c.vocabSize {
		return nil, 0, fmt.Errorf("lz: encode_one: %w", errs.ErrDictionaryFull)
	}

	c.addNewToken(prefix, id)
	return prefix, id, nil
}

// Encode repeatedly calls EncodeOne on the remaining suffix of seq.
func (c *Coder) Encode(seq []int, learn bool) ([]int, error) {
	out := make([]int, 0, len(seq))
	rem := seq

	for len(rem) > 0 {
		prefix, id, err := c.EncodeOne(rem, learn)
		if err != nil {
			return nil, err
		}
		if len(prefix) == 0 {
			if learn {
				return nil, fmt.Errorf("lz: encode: %w", errs.ErrDictionaryFull)
			}
			return nil, fmt.Errorf("lz: encode: %w", errs.ErrLearningDisabled)
		}
		out = append(out, id)
		rem = rem[len(prefix):]
	}

	return out, nil
}

// DecodeOne returns the symbols id was assigned to.
func (c *Coder) DecodeOne(id int) ([]int, error) {
	seq, ok := c.encodedVocab[id]
	if !ok {
		return nil, fmt.Errorf("lz: decode_one: %w", errs.ErrUnknownToken)
	}
	return seq, nil
}

// Decode expands every id in seq and concatenates the results.
func (c *Coder) Decode(seq []int) ([]int, error) {
	out := make([]int, 0, len(seq))
	for _, id := range seq {
		part, err := c.DecodeOne(id)
		if err != nil {
			return nil, err
		}
		out = append(out, part...)
	}
	return out, nil
}

// TrieSize exposes the trie's terminal-key count, including the empty key.
func (c *Coder) TrieSize() int { return c.trie.Size() }

// Commit registers prefix under id, as chosen by Hierarchical LZ's vote
// rather than this coder's own native proposal. id must be currently
// unused; callers are expected to have checked that via UnusedTokens
// before voting concludes.
func (c *Coder) Commit(prefix []int, id int) {
	c.addNewToken(prefix, id)
}

// IsKnown reports whether id already has an entry in the encoded
// vocabulary — used by Hierarchical LZ's vote to filter proposals down to
// ids each context coder actually recognizes.
func (c *Coder) IsKnown(id int) bool {
	_, ok := c.encodedVocab[id]
	return ok
}

// UnusedTokens returns the coder's currently unassigned ids, ascending.
// Only a bounded coder (vocabSize > 0) keeps an unused set; in unbounded
// mode this returns an empty slice.
func (c *Coder) UnusedTokens() []int {
	return c.unused.Values()
}

// AssignedTokens returns every id the coder has committed — including
// EmptyToken — ascending. This is the coder's output vocabulary.
func (c *Coder) AssignedTokens() []int {
	ids := make([]int, 0, len(c.encodedVocab))
	for id := range c.encodedVocab {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// InputVocab returns the coder's input vocabulary as an unordered slice.
func (c *Coder) InputVocab() []int {
	out := make([]int, 0, len(c.inputVocab))
	for sym := range c.inputVocab {
		out = append(out, sym)
	}
	return out
}
