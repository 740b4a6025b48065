package bpe

// pairLookup provides fast (a,b) -> mergeID lookup for the encoder hot
// loop: a dense 2D table for pairs whose tokens are both below
// fastSize, with a map fallback for everything else — adapted from
// the teacher's internal/tokenizer/pair_lookup.go, simplified because
// here a merge's priority and its output id are the same integer (merges
// are applied strictly in learned order), so there is no separate rank to
// pack alongside the id.
type pairLookup struct {
	fast     [][]int32
	fastSize int
	fallback map[int64]int32
}

const noMergeID = -1

func newPairLookup(pairs map[[2]int]int, vocabSize int) *pairLookup {
	fastSize := 2048
	if vocabSize < fastSize {
		fastSize = vocabSize
	}
	if fastSize < 0 {
		fastSize = 0
	}

	fast := make([][]int32, fastSize)
	for i := range fast {
		row := make([]int32, fastSize)
		for j := range row {
			row[j] = noMergeID
		}
		fast[i] = row
	}

	fallback := make(map[int64]int32, len(pairs)/4+1)

	for pair, id := range pairs {
		a, b := pair[0], pair[1]
		if a >= 0 && a < fastSize && b >= 0 && b < fastSize {
			fast[a][b] = int32(id)
		} else {
			fallback[packPair(a, b)] = int32(id)
		}
	}

	return &pairLookup{fast: fast, fastSize: fastSize, fallback: fallback}
}

func (pl *pairLookup) Lookup(a, b int) (int, bool) {
	if a >= 0 && a < pl.fastSize && b >= 0 && b < pl.fastSize {
		id := pl.fast[a][b]
		if id == noMergeID {
			return 0, false
		}
		return int(id), true
	}

	id, ok := pl.fallback[packPair(a, b)]
	return int(id), ok
}

func packPair(a, b int) int64 {
	return int64(a)<<32 | int64(uint32(b))
}
