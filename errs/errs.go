// Package errs defines the sentinel error kinds shared by every tokenizer
// in this module. Callers compare against these with errors.Is; each
// component wraps them with fmt.Errorf("<component>: <action>: %w", ...)
// at the call site rather than constructing bespoke error types.
package errs

import "errors"

var (
	// ErrConfig is returned when a tokenizer is constructed without the
	// bounds it needs to learn (e.g. BPE with neither max_output_vocab
	// nor max_merges set), or when a Hierarchical LZ input vocabulary
	// exceeds its output vocab size.
	ErrConfig = errors.New("config error")

	// ErrVocabFull is returned when an LZ coder cannot allocate an id for
	// a new input symbol because its unused-token set is exhausted.
	ErrVocabFull = errors.New("vocab full")

	// ErrDictionaryFull is returned when an LZ coder cannot grow its trie
	// past its configured vocab_size.
	ErrDictionaryFull = errors.New("dictionary full")

	// ErrLearningDisabled is returned when encoding needs to grow the
	// model but learn=false.
	ErrLearningDisabled = errors.New("learning disabled")

	// ErrUnknownContext is returned when Hierarchical LZ is asked to
	// encode or decode under a context absent from its coder table.
	ErrUnknownContext = errors.New("unknown context")

	// ErrUnknownToken is returned when decoding an id absent from a
	// coder's encoded vocabulary or a contextual encoder's context map.
	ErrUnknownToken = errors.New("unknown token")

	// ErrEmptySet is returned by helpers asked for an element of an
	// empty set.
	ErrEmptySet = errors.New("empty set")
)
