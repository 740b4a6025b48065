package cli

import (
	"fmt"

	"github.com/tokseq/tokseq/config"
	"github.com/tokseq/tokseq/pipeline"
)

// buildPipeline translates a config.Config into a pipeline.Pipeline. It
// lives in internal/cli, not config, so that config stays free of a
// pipeline import — config is consumed only by the CLI, never by core
// packages.
func buildPipeline(cfg config.Config) (*pipeline.Pipeline, error) {
	stages := make([]pipeline.Stage, 0, len(cfg.Stages))

	for i, sc := range cfg.Stages {
		stage, err := buildStage(sc)
		if err != nil {
			return nil, fmt.Errorf("cli: build pipeline: stage %d (%s): %w", i, sc.Kind, err)
		}
		stages = append(stages, stage)
	}

	return pipeline.New(stages...), nil
}

func buildStage(sc config.StageConfig) (pipeline.Stage, error) {
	switch sc.Kind {
	case "bpe":
		return pipeline.NewBPEStage(sc.MaxOutputVocab, sc.MaxMerges)
	case "lz":
		return pipeline.NewLZStage(sc.VocabSize), nil
	case "hlz":
		return pipeline.NewHLZStage(sc.VocabSize), nil
	case "contextual":
		return pipeline.NewContextualStage(), nil
	default:
		return nil, fmt.Errorf("unknown stage kind %q", sc.Kind)
	}
}
