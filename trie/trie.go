// Package trie implements the ordered integer-sequence trie shared by the
// LZ and Hierarchical LZ coders: insert, exact lookup, and longest-prefix
// match against a query sequence. Grounded on the reference
// implementation's C++ Trie (original_source/src/lz.hpp), which models
// children as an ordered map from symbol to child node; here that ordered
// map is github.com/emirpasic/gods/v2/maps/treemap, so that downstream
// tie-breaking on "smallest unused token" can lean on the same
// deterministic-ordering guarantee the reference gives pygtrie.Trie.
package trie

import (
	"github.com/emirpasic/gods/v2/maps/treemap"
)

// NoToken is the sentinel value returned for a key that has no mapped
// value (an empty or unvisited trie, or an internal, non-terminal node).
const NoToken = -1

type node struct {
	value    int
	terminal bool
	children *treemap.Map[int, *node]
}

func newNode() *node {
	return &node{value: NoToken, children: treemap.New[int, *node]()}
}

// Trie is an ordered map from integer-sequence keys to integer values.
type Trie struct {
	root *node
	size int
}

// New returns an empty trie.
func New() *Trie {
	return &Trie{root: newNode()}
}

// Insert sets key's value, overwriting any prior mapping and marking key
// terminal. Insert is O(len(key)).
func (t *Trie) Insert(key []int, value int) {
	n := t.root
	for _, sym := range key {
		child, ok := n.children.Get(sym)
		if !ok {
			child = newNode()
			n.children.Put(sym, child)
		}
		n = child
	}

	if !n.terminal {
		t.size++
	}
	n.value = value
	n.terminal = true
}

// Get returns key's value and true, or (0, false) if key is not terminal.
func (t *Trie) Get(key []int) (int, bool) {
	n := t.walk(key)
	if n == nil || !n.terminal {
		return 0, false
	}
	return n.value, true
}

// Contains reports whether key is a terminal key in the trie.
func (t *Trie) Contains(key []int) bool {
	_, ok := t.Get(key)
	return ok
}

// LongestPrefix walks seq through the trie and returns the deepest
// terminal key visited along with its value. If no terminal is visited —
// not even the empty key — it returns (nil, NoToken).
func (t *Trie) LongestPrefix(seq []int) ([]int, int) {
	n := t.root
	matchLen := -1
	matchValue := NoToken
	if n.terminal {
		matchLen = 0
		matchValue = n.value
	}

	for i, sym := range seq {
		child, ok := n.children.Get(sym)
		if !ok {
			break
		}
		n = child
		if n.terminal {
			matchLen = i + 1
			matchValue = n.value
		}
	}

	if matchLen < 0 {
		return nil, NoToken
	}
	return append([]int(nil), seq[:matchLen]...), matchValue
}

// Size returns the number of terminal keys in the trie.
func (t *Trie) Size() int {
	return t.size
}

func (t *Trie) walk(key []int) *node {
	n := t.root
	for _, sym := range key {
		child, ok := n.children.Get(sym)
		if !ok {
			return nil
		}
		n = child
	}
	return n
}
