package pipeline

// NewBPEContextual builds the BPE -> contextual-encoder composition from
// original_source/src/bpe.py's ContextualBPE: bpe-encode followed by
// contextual-encode; contextual-decode followed by bpe-decode. maxMerges
// mirrors ContextualBPE.learn's max_output_vocab argument.
func NewBPEContextual(maxOutputVocab, maxMerges int) (*Pipeline, error) {
	bpeStage, err := NewBPEStage(maxOutputVocab, maxMerges)
	if err != nil {
		return nil, err
	}
	return New(bpeStage, NewContextualStage()), nil
}
