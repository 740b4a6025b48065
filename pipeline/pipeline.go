package pipeline

import "fmt"

// Pipeline is an ordered list of Stages, composed per spec §4.7: learn
// trains each stage against the previous stage's output and transforms
// tokens forward through it; encode folds left-to-right; decode folds
// right-to-left. An empty Pipeline is the identity on all three.
type Pipeline struct {
	stages []Stage
}

// New composes stages, in order, into a Pipeline.
func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Learn trains stage 0 on (tokens, inputVocab), transforms tokens through
// it, then trains each subsequent stage on the previous stage's output
// vocabulary before transforming again.
func (p *Pipeline) Learn(tokens []int, inputVocab []int) error {
	cur := tokens
	vocab := inputVocab

	for i, stage := range p.stages {
		if i > 0 {
			vocab = p.stages[i-1].OutputVocab()
		}
		if err := stage.Learn(cur, vocab); err != nil {
			return fmt.Errorf("pipeline: learn: stage %d: %w", i, err)
		}
		next, err := stage.Encode(cur)
		if err != nil {
			return fmt.Errorf("pipeline: learn: stage %d encode: %w", i, err)
		}
		cur = next
	}

	return nil
}

// Encode folds Stage.Encode left-to-right over seq.
func (p *Pipeline) Encode(seq []int) ([]int, error) {
	cur := seq
	for i, stage := range p.stages {
		next, err := stage.Encode(cur)
		if err != nil {
			return nil, fmt.Errorf("pipeline: encode: stage %d: %w", i, err)
		}
		cur = next
	}
	return cur, nil
}

// Decode folds Stage.Decode right-to-left over seq.
func (p *Pipeline) Decode(seq []int) ([]int, error) {
	cur := seq
	for i := len(p.stages) - 1; i >= 0; i-- {
		next, err := p.stages[i].Decode(cur)
		if err != nil {
			return nil, fmt.Errorf("pipeline: decode: stage %d: %w", i, err)
		}
		cur = next
	}
	return cur, nil
}

// InputVocab is stage 0's input vocabulary, or nil for an empty pipeline.
func (p *Pipeline) InputVocab() []int {
	if len(p.stages) == 0 {
		return nil
	}
	return p.stages[0].InputVocab()
}

// OutputVocab is the last stage's output vocabulary, or nil for an empty
// pipeline.
func (p *Pipeline) OutputVocab() []int {
	if len(p.stages) == 0 {
		return nil
	}
	return p.stages[len(p.stages)-1].OutputVocab()
}

// Stages exposes the pipeline's stages in order, mainly for diagnostics
// and for the CLI to report per-stage vocabulary sizes.
func (p *Pipeline) Stages() []Stage {
	return append([]Stage(nil), p.stages...)
}
