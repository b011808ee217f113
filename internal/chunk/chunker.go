// Package chunk splits log text into bounded, overlapping pieces for embedding.
package chunk

import (
	"strings"
	"unicode/utf8"
)

// Config defines chunking parameters.
type Config struct {
	// MaxSize: maximum chunk length in characters.
	MaxSize int
	// Overlap: trailing characters of a chunk carried into the next one.
	Overlap int
}

// DefaultConfig returns the parameters used for log indexing.
func DefaultConfig() Config {
	return Config{
		MaxSize: 1000,
		Overlap: 150,
	}
}

// Split breaks text into chunks of at most cfg.MaxSize characters.
// Newlines are the preferred boundary; lines are packed greedily and a
// line longer than the maximum is hard-split. Consecutive chunks share
// cfg.Overlap characters of context. The result is deterministic for a
// given input, and empty input yields no chunks.
func Split(text string, cfg Config) []string {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultConfig().MaxSize
	}
	if cfg.Overlap < 0 {
		cfg.Overlap = 0
	}
	if cfg.Overlap >= cfg.MaxSize {
		cfg.Overlap = cfg.MaxSize / 2
	}

	if strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
	}

	// seed starts the next chunk with the tail of the previous one.
	seed := func() {
		if cfg.Overlap == 0 || len(chunks) == 0 {
			return
		}
		prev := chunks[len(chunks)-1]
		if len(prev) > cfg.Overlap {
			prev = prev[backToRuneStart(prev, len(prev)-cfg.Overlap):]
		}
		current.WriteString(prev)
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Oversized line: emit current, then slide a window across the line.
		// Cut points back up to rune boundaries so no chunk holds a torn rune.
		if len(line) > cfg.MaxSize {
			flush()
			step := cfg.MaxSize - cfg.Overlap
			for start := 0; start < len(line); {
				end := start + cfg.MaxSize
				if end >= len(line) {
					chunks = append(chunks, line[start:])
					break
				}
				end = backToRuneStart(line, end)
				if end <= start {
					// Degenerate config smaller than one rune; emit the rune whole.
					_, size := utf8.DecodeRuneInString(line[start:])
					end = start + size
				}
				chunks = append(chunks, line[start:end])

				next := backToRuneStart(line, start+step)
				if next <= start {
					_, size := utf8.DecodeRuneInString(line[start:])
					next = start + size
				}
				start = next
			}
			continue
		}

		if current.Len() > 0 && current.Len()+1+len(line) > cfg.MaxSize {
			flush()
			seed()
			if current.Len() > 0 && current.Len()+1+len(line) > cfg.MaxSize {
				// Overlap seed plus this line would overflow; drop the seed.
				current.Reset()
			}
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}

	flush()
	return chunks
}

// backToRuneStart moves i left until it lands on the start of a rune,
// so a character-count cut never slices a multibyte rune in half.
func backToRuneStart(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
