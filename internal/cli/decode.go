package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tokseq/tokseq/config"
)

func newDecodeCmd() *cobra.Command {
	var (
		configPath string
		trainPath  string
		outPath    string
		bytesTrain bool
		bytesOut   bool
	)

	cmd := &cobra.Command{
		Use:   "decode <input-file>",
		Short: "Train a pipeline on --train and decode an input file of ids through it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			trainTokens, err := readTokens(trainPath, bytesTrain)
			if err != nil {
				return fmt.Errorf("cli: decode: reading training data: %w", err)
			}

			p, err := buildPipeline(cfg)
			if err != nil {
				return err
			}
			if err := p.Learn(trainTokens, nil); err != nil {
				return fmt.Errorf("cli: decode: training pipeline: %w", err)
			}

			// the input file to decode is always ids, never raw bytes.
			encoded, err := readTokens(args[0], false)
			if err != nil {
				return err
			}

			decoded, err := p.Decode(encoded)
			if err != nil {
				return fmt.Errorf("cli: decode: %w", err)
			}

			if outPath == "" {
				if bytesOut {
					return fmt.Errorf("cli: decode: --bytes-out requires --out")
				}
				return adapterWriteStdout(cmd, decoded)
			}
			return writeTokens(outPath, decoded, bytesOut)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "pipeline config TOML (default: single bounded BPE stage)")
	cmd.Flags().StringVar(&trainPath, "train", "", "file to train the pipeline on (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout, as newline-separated integers)")
	cmd.Flags().BoolVar(&bytesTrain, "bytes", false, "treat --train as raw bytes")
	cmd.Flags().BoolVar(&bytesOut, "bytes-out", false, "write --out as raw bytes instead of newline-separated integers")
	cmd.MarkFlagRequired("train")

	return cmd
}
