package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tokseq/tokseq/config"
)

// There is no model serialization format (spec's Non-goals), so encode and
// decode each take a --train file and retrain the pipeline in-process
// before applying it to the input file.

func newEncodeCmd() *cobra.Command {
	var (
		configPath string
		trainPath  string
		outPath    string
		bytesIn    bool
		bytesOut   bool
	)

	cmd := &cobra.Command{
		Use:   "encode <input-file>",
		Short: "Train a pipeline on --train and encode an input file through it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			trainTokens, err := readTokens(trainPath, bytesIn)
			if err != nil {
				return fmt.Errorf("cli: encode: reading training data: %w", err)
			}

			p, err := buildPipeline(cfg)
			if err != nil {
				return err
			}
			if err := p.Learn(trainTokens, nil); err != nil {
				return fmt.Errorf("cli: encode: training pipeline: %w", err)
			}

			inputTokens, err := readTokens(args[0], bytesIn)
			if err != nil {
				return err
			}

			encoded, err := p.Encode(inputTokens)
			if err != nil {
				return fmt.Errorf("cli: encode: %w", err)
			}

			if outPath == "" {
				return adapterWriteStdout(cmd, encoded)
			}
			return writeTokens(outPath, encoded, bytesOut)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "pipeline config TOML (default: single bounded BPE stage)")
	cmd.Flags().StringVar(&trainPath, "train", "", "file to train the pipeline on (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout, as newline-separated integers)")
	cmd.Flags().BoolVar(&bytesIn, "bytes", false, "treat --train and the input file as raw bytes")
	cmd.Flags().BoolVar(&bytesOut, "bytes-out", false, "write --out as raw bytes instead of newline-separated integers")
	cmd.MarkFlagRequired("train")

	return cmd
}
