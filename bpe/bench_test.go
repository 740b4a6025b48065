package bpe

import (
	"strings"
	"testing"
)

func benchCorpus() []int {
	s := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 400)
	out := make([]int, len(s))
	for i, b := range []byte(s) {
		out[i] = int(b)
	}
	return out
}

func BenchmarkLearn(b *testing.B) {
	corpus := benchCorpus()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tok, _ := New(300, 0)
		_ = tok.Learn(corpus, nil)
	}
}

func BenchmarkEncode(b *testing.B) {
	corpus := benchCorpus()
	tok, _ := New(300, 0)
	if err := tok.Learn(corpus, nil); err != nil {
		b.Fatalf("Learn: %v", err)
	}

	b.SetBytes(int64(len(corpus)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tok.Encode(corpus)
	}
}
