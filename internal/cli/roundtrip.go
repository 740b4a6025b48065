package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tokseq/tokseq/config"
)

func newRoundtripCmd() *cobra.Command {
	var (
		configPath string
		bytesMode  bool
	)

	cmd := &cobra.Command{
		Use:   "roundtrip <input-file>",
		Short: "Train a pipeline on the input file, encode then decode it, and diff against the original",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			tokens, err := readTokens(args[0], bytesMode)
			if err != nil {
				return err
			}

			p, err := buildPipeline(cfg)
			if err != nil {
				return err
			}
			if err := p.Learn(tokens, nil); err != nil {
				return fmt.Errorf("cli: roundtrip: training pipeline: %w", err)
			}

			encoded, err := p.Encode(tokens)
			if err != nil {
				return fmt.Errorf("cli: roundtrip: encode: %w", err)
			}
			decoded, err := p.Decode(encoded)
			if err != nil {
				return fmt.Errorf("cli: roundtrip: decode: %w", err)
			}

			mismatches := diff(tokens, decoded)
			fmt.Fprintf(cmd.OutOrStdout(), "input length %d, encoded length %d, decoded length %d, mismatches %d\n",
				len(tokens), len(encoded), len(decoded), mismatches)
			if mismatches > 0 {
				return fmt.Errorf("cli: roundtrip: decode did not reproduce the input (%d mismatched positions)", mismatches)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "pipeline config TOML (default: single bounded BPE stage)")
	cmd.Flags().BoolVar(&bytesMode, "bytes", false, "treat the input file as raw bytes instead of newline-separated integers")

	return cmd
}

func diff(a, b []int) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	count := 0
	for i := 0; i < n; i++ {
		var av, bv int = -1, -1
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			count++
		}
	}
	return count
}
