// Package hlz implements Hierarchical LZ (spec §4.5): a family of LZCoder
// instances, one per context, where the context is the previously emitted
// token id. New tokens are assigned by a cross-context vote rather than
// each coder's own unused-id pick, so independent contexts converge on
// the same id for the same substring. Grounded on
// original_source/src/lz.py's HierachicalLZCoder.
package hlz

import (
	"fmt"
	"sort"

	"github.com/tokseq/tokseq/errs"
	"github.com/tokseq/tokseq/logutil"
	"github.com/tokseq/tokseq/lz"
)

// EmptyToken is the distinguished root context, matching lz.EmptyToken.
const EmptyToken = lz.EmptyToken

// Coder is a hierarchy of LZ coders keyed by context (the id of the
// previously emitted token, or EmptyToken at the start of a sequence).
type Coder struct {
	vocabSize int
	coders    map[int]*lz.Coder
	order     []int // context keys in creation order, for vote tie-breaking
}

// New constructs a Coder with a root coder for the empty context,
// pre-seeded with inputVocab.
func New(vocabSize int, inputVocab []int) (*Coder, error) {
	root, err := lz.New(vocabSize, inputVocab)
	if err != nil {
		return nil, fmt.Errorf("hlz: new: %w", err)
	}
	return &Coder{
		vocabSize: vocabSize,
		coders:    map[int]*lz.Coder{EmptyToken: root},
		order:     []int{EmptyToken},
	}, nil
}

// UpdateVocab grows the root context's input vocabulary. Non-root
// contexts pick up new single-symbol tokens lazily, the same way the
// root does, the first time they see them inside EncodeOne.
func (c *Coder) UpdateVocab(seq []int) error {
	if err := c.coders[EmptyToken].UpdateVocab(seq); err != nil {
		return fmt.Errorf("hlz: update_vocab: %w", err)
	}
	return nil
}

// EncodeOne encodes the next token out of rem under context ctx,
// returning the matched prefix and the chosen id.
func (c *Coder) EncodeOne(rem []int, ctx int, learn bool) ([]int, int, error) {
	coder, ok := c.coders[ctx]
	if !ok {
		if !learn {
			return nil, 0, fmt.Errorf("hlz: encode_one: %w", errs.ErrUnknownContext)
		}
		// A new context's coder starts with an empty input vocabulary; a
		// symbol it has not seen is learned in this context as a new token.
		nc, err := lz.New(c.vocabSize, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("hlz: encode_one: %w", err)
		}
		c.coders[ctx] = nc
		c.order = append(c.order, ctx)
		coder = nc
	}

	prefix, id := coder.ProposeNextToken(rem, learn)
	if coder.IsKnown(id) {
		return prefix, id, nil
	}
	if !learn {
		return nil, 0, fmt.Errorf("hlz: encode_one: %w", errs.ErrLearningDisabled)
	}

	chosen := c.vote(rem, ctx, coder, id, learn)
	coder.Commit(prefix, chosen)
	logutil.Trace("hlz vote resolved", "context", ctx, "native", id, "chosen", chosen)

	return prefix, chosen, nil
}

// vote asks every other context what it would have proposed for rem,
// tallies the ones each of those contexts already knows, and returns the
// id — among the active coder's unused ids — with the highest tally.
// Ties resolve to native, the active coder's own proposal. An unbounded
// active coder reports no unused ids, so there the result is always native.
func (c *Coder) vote(rem []int, ctx int, active *lz.Coder, native int, learn bool) int {
	counts := map[int]int{native: 0}
	candidates := []int{native}

	for _, octx := range c.order {
		if octx == ctx {
			continue
		}
		other := c.coders[octx]
		_, oid := other.ProposeNextToken(rem, learn)
		if !other.IsKnown(oid) {
			continue
		}
		if _, seen := counts[oid]; !seen {
			candidates = append(candidates, oid)
		}
		counts[oid]++
	}

	unused := make(map[int]bool, len(active.UnusedTokens()))
	for _, u := range active.UnusedTokens() {
		unused[u] = true
	}

	best, bestCount := native, -1
	for _, cand := range candidates {
		if !unused[cand] {
			continue
		}
		if counts[cand] > bestCount {
			best, bestCount = cand, counts[cand]
		}
	}
	return best
}

// Encode repeatedly calls EncodeOne, threading the previous token's id
// through as the next call's context.
func (c *Coder) Encode(seq []int, learn bool) ([]int, error) {
	ctx := EmptyToken
	out := make([]int, 0, len(seq))
	rem := seq

	for len(rem) > 0 {
		prefix, id, err := c.EncodeOne(rem, ctx, learn)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
		ctx = id
		rem = rem[len(prefix):]
	}

	return out, nil
}

// Decode walks seq, expanding each id under the context set by the id
// that preceded it.
func (c *Coder) Decode(seq []int) ([]int, error) {
	ctx := EmptyToken
	out := make([]int, 0, len(seq))

	for _, id := range seq {
		coder, ok := c.coders[ctx]
		if !ok {
			return nil, fmt.Errorf("hlz: decode: %w", errs.ErrUnknownContext)
		}
		part, err := coder.DecodeOne(id)
		if err != nil {
			return nil, fmt.Errorf("hlz: decode: %w", err)
		}
		out = append(out, part...)
		ctx = id
	}

	return out, nil
}

// ContextCount reports how many per-context coders have been created,
// including the root.
func (c *Coder) ContextCount() int {
	return len(c.coders)
}

// InputVocab returns the root context's input vocabulary.
func (c *Coder) InputVocab() []int {
	return c.coders[EmptyToken].InputVocab()
}

// AssignedTokens returns every id assigned by any context coder,
// deduplicated and ascending. This is the coder's output vocabulary: the
// vote mechanism means the same id is usually assigned in several
// contexts, but never to two different substrings within one context.
func (c *Coder) AssignedTokens() []int {
	seen := map[int]bool{}
	for _, coder := range c.coders {
		for _, id := range coder.AssignedTokens() {
			seen[id] = true
		}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
