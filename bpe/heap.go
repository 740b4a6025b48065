package bpe

// mergeCand is a candidate merge sitting at a given position in the
// working sequence, tagged with the merge id it would collapse into and
// the live-version stamps its neighbors held when it was queued. Adapted
// from the teacher's internal/utils heap types: rank and id coincide here
// because BPE assigns merge ids sequentially in learn order, so a single
// field does the job of the teacher's separate Rank/token fields.
type mergeCand struct {
	id         int // lower wins: earlier-learned merges apply first
	pos        int // left index; lower wins on tie, enforcing leftmost preference
	leftToken  int
	rightToken int
	verL, verR int
}

// bucketQueue is a priority queue of mergeCand bucketed by id, each bucket
// kept sorted by position: Pop takes the head of the lowest non-empty
// bucket, and Push inserts in position order, linear in the size of its
// bucket — adapted from the
// teacher's internal/utils/bucket_queue.go, generalized to the merge-id
// space learned by BPE.Learn instead of a fixed pretrained rank table.
type bucketQueue struct {
	buckets    [][]mergeCand
	current    int
	totalCount int
}

func newBucketQueue(maxID int) *bucketQueue {
	return &bucketQueue{
		buckets: make([][]mergeCand, maxID+1),
	}
}

func (bq *bucketQueue) Len() int { return bq.totalCount }

func (bq *bucketQueue) Push(c mergeCand) {
	id := c.id
	if id >= len(bq.buckets) {
		grown := make([][]mergeCand, id+1)
		copy(grown, bq.buckets)
		bq.buckets = grown
	}

	bucket := bq.buckets[id]
	insertPos := len(bucket)
	for i := range bucket {
		if bucket[i].pos >= c.pos {
			insertPos = i
			break
		}
	}

	if insertPos == len(bucket) {
		bucket = append(bucket, c)
	} else {
		bucket = append(bucket, mergeCand{})
		copy(bucket[insertPos+1:], bucket[insertPos:])
		bucket[insertPos] = c
	}
	bq.buckets[id] = bucket
	bq.totalCount++

	if id < bq.current {
		bq.current = id
	}
}

func (bq *bucketQueue) Pop() (mergeCand, bool) {
	for bq.current < len(bq.buckets) && len(bq.buckets[bq.current]) == 0 {
		bq.current++
	}

	if bq.current >= len(bq.buckets) {
		return mergeCand{}, false
	}

	bucket := bq.buckets[bq.current]
	c := bucket[0]
	bq.buckets[bq.current] = bucket[1:]
	bq.totalCount--

	return c, true
}
