package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tokseq/tokseq/internal/adapters"
)

// readTokens loads a token sequence from path, either as raw bytes (one
// token per byte, when asBytes is set) or as newline-separated integers.
func readTokens(path string, asBytes bool) ([]int, error) {
	if asBytes {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cli: read %s: %w", path, err)
		}
		return adapters.BytesToTokens(data), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cli: read %s: %w", path, err)
	}
	defer f.Close()

	return adapters.ReadIntLines(f)
}

// writeTokens writes a token sequence to path, either as raw bytes (when
// asBytes is set) or as newline-separated integers.
func writeTokens(path string, tokens []int, asBytes bool) error {
	if asBytes {
		data, err := adapters.TokensToBytes(tokens)
		if err != nil {
			return fmt.Errorf("cli: encode output bytes: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("cli: write %s: %w", path, err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cli: write %s: %w", path, err)
	}
	defer f.Close()

	return adapters.WriteIntLines(f, tokens)
}

// adapterWriteStdout writes tokens as newline-separated integers to cmd's
// configured stdout, used by encode/decode when --out is not given.
func adapterWriteStdout(cmd *cobra.Command, tokens []int) error {
	return adapters.WriteIntLines(cmd.OutOrStdout(), tokens)
}
