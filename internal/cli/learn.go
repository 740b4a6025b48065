package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/tokseq/tokseq/config"
)

func newLearnCmd() *cobra.Command {
	var (
		configPath string
		bytesMode  bool
	)

	cmd := &cobra.Command{
		Use:   "learn <input-file>",
		Short: "Train a pipeline from a config file and report learned vocabulary sizes",
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

			bar := progressbar.NewOptions(len(cfg.Stages),
				progressbar.OptionSetDescription("training pipeline"),
				progressbar.OptionSpinnerType(14),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionClearOnFinish(),
			)

			cur := tokens
			var vocab []int
			for i, stage := range p.Stages() {
				if i > 0 {
					vocab = p.Stages()[i-1].OutputVocab()
				}
				if err := stage.Learn(cur, vocab); err != nil {
					return fmt.Errorf("cli: learn: stage %d (%s): %w", i, cfg.Stages[i].Kind, err)
				}
				next, err := stage.Encode(cur)
				if err != nil {
					return fmt.Errorf("cli: learn: stage %d encode: %w", i, err)
				}
				cur = next
				bar.Add(1)
				fmt.Fprintf(cmd.OutOrStdout(), "stage %d (%s): output vocab size %d\n", i, cfg.Stages[i].Kind, len(stage.OutputVocab()))
			}
			bar.Finish()

			fmt.Fprintf(cmd.OutOrStdout(), "input tokens: %d, final encoded length: %d\n", len(tokens), len(cur))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "pipeline config TOML (default: single bounded BPE stage)")
	cmd.Flags().BoolVar(&bytesMode, "bytes", false, "treat the input file as raw bytes instead of newline-separated integers")

	return cmd
}
