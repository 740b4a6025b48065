package bpe

// Encode applies every learned merge in learned order via the priority
// queue described in the package doc. Untrained tokenizers (no merges)
// return the input unchanged. Encode never grows the model: it is a pure
// function of the learned state, matching spec §4.3's read-only encode.
func (t *Tokenizer) Encode(tokens []int) []int {
	n := len(tokens)
	if n == 0 {
		return nil
	}

	working := t.seedRemap(tokens)

	if t.lookup == nil || len(t.merges) == 0 {
		return working
	}

	sc := t.acquireScratch(n)
	defer t.releaseScratch(sc)

	ids := sc.tokens
	copy(ids, working)

	prev, next, live := sc.prev, sc.next, sc.live
	for i := 0; i < n; i++ {
		prev[i] = i - 1
		next[i] = i + 1
		live[i] = 0
	}
	prev[0] = -1
	next[n-1] = -1

	q := newBucketQueue(len(t.merges) + 1)

	pushIfMergeable := func(i int) {
		j := next[i]
		if i == -1 || j == -1 {
			return
		}

		a, b := ids[i], ids[j]
		if id, ok := t.lookup.Lookup(a, b); ok {
			q.Push(mergeCand{
				id:         id,
				pos:        i,
				leftToken:  a,
				rightToken: b,
				verL:       live[i],
				verR:       live[j],
			})
		}
	}

	for i := 0; i != -1 && next[i] != -1; i = next[i] {
		pushIfMergeable(i)
	}

	head := 0
	for {
		c, ok := q.Pop()
		if !ok {
			break
		}

		i := c.pos
		if i == -1 {
			continue
		}
		j := next[i]
		if j == -1 {
			continue
		}
		if live[i] != c.verL || live[j] != c.verR {
			continue
		}

		a, b := ids[i], ids[j]
		id, ok := t.lookup.Lookup(a, b)
		if !ok || id != c.id || a != c.leftToken || b != c.rightToken {
			continue
		}

		ids[i] = id

		nj := next[j]
		next[i] = nj
		if nj != -1 {
			prev[nj] = i
		}
		prev[j], next[j] = -1, -1

		live[i]++
		live[j]++

		if pi := prev[i]; pi != -1 {
			pushIfMergeable(pi)
		}
		pushIfMergeable(i)
	}

	out := make([]int, 0, n)
	for i := head; i != -1; i = next[i] {
		out = append(out, ids[i])
	}
	return out
}

// seedRemap maps raw input-vocab values to their learned seed ids. Values
// Learn never saw pass through unchanged — they cannot merge with
// anything, so they surface verbatim in the output, same as an untrained
// model.
func (t *Tokenizer) seedRemap(tokens []int) []int {
	out := make([]int, len(tokens))
	for i, tok := range tokens {
		if seed, ok := t.valueToSeed[tok]; ok {
			out[i] = seed
		} else {
			out[i] = tok
		}
	}
	return out
}

type encodeScratch struct {
	tokens []int
	prev   []int
	next   []int
	live   []int
}

func (t *Tokenizer) acquireScratch(n int) *encodeScratch {
	v := t.scratchPool.Get()
	sc, ok := v.(*encodeScratch)
	if !ok {
		sc = &encodeScratch{}
	}
	sc.tokens = ensureCap(sc.tokens, n)
	sc.prev = ensureCap(sc.prev, n)
	sc.next = ensureCap(sc.next, n)
	sc.live = ensureCap(sc.live, n)
	return sc
}

func (t *Tokenizer) releaseScratch(sc *encodeScratch) {
	t.scratchPool.Put(sc)
}

func ensureCap(buf []int, n int) []int {
	if cap(buf) < n {
		return make([]int, n)
	}
	return buf[:n]
}
