// Package adapters lifts raw files (bytes or newline-separated integers)
// into the []int token sequences every core package operates on, and
// lowers them back. This is the "external collaborator" boundary spec §1
// and §6 place outside core scope: nothing under bpe, lz, hlz, contextual,
// or pipeline ever imports this package, only internal/cli does.
package adapters

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// BytesToTokens lifts raw bytes into a token sequence, one token per byte.
func BytesToTokens(b []byte) []int {
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out
}

// TokensToBytes lowers a token sequence back to bytes. Every token must
// fit in a byte; this fails if an upstream pipeline stage left behind ids
// above 255 (it shouldn't, for a well-formed decode back to raw input).
func TokensToBytes(tokens []int) ([]byte, error) {
	out := make([]byte, len(tokens))
	for i, v := range tokens {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("adapters: token %d at position %d does not fit in a byte", v, i)
		}
		out[i] = byte(v)
	}
	return out, nil
}

// ReadIntLines parses a newline-separated-integers file into a token
// sequence. Blank lines are skipped; this is the CLI's default input
// format when --bytes is not given.
func ReadIntLines(r io.Reader) ([]int, error) {
	var out []int
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("adapters: parse int line %q: %w", line, err)
		}
		out = append(out, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("adapters: read int lines: %w", err)
	}
	return out, nil
}

// WriteIntLines writes a token sequence as newline-separated integers.
func WriteIntLines(w io.Writer, tokens []int) error {
	bw := bufio.NewWriter(w)
	for _, v := range tokens {
		if _, err := fmt.Fprintln(bw, v); err != nil {
			return fmt.Errorf("adapters: write int lines: %w", err)
		}
	}
	return bw.Flush()
}
