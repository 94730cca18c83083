package chunker

import (
	"strings"
	"unicode"
)

// Chunker splits text into bounded, ordered, possibly overlapping chunks.
type Chunker struct {
	opts Options
}

// New creates a Chunker from DefaultOptions with optFns applied on top.
func New(optFns ...Option) *Chunker {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Chunker{opts: opts}
}

func isSentenceTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// Split walks text with a cursor, proposing end = min(cursor+chunkSize, len)
// at each step. When PreserveSentences is set and the proposed end falls
// short of the input, it scans forward for the next sentence terminator and
// skips trailing whitespace, accepting that boundary only if doing so would
// not grow the chunk past 1.5x chunkSize. The cursor then advances by at
// least one character, retaining up to OverlapSize characters of the
// emitted chunk's tail for the next one.
func (c *Chunker) Split(text string) []Chunk {
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil
	}

	chunkSize := c.opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 1
	}
	overlap := c.opts.OverlapSize
	if overlap < 0 {
		overlap = 0
	}
	hardCap := int(1.5 * float64(chunkSize))

	var chunks []Chunk
	seq := 0
	cursor := 0

	for cursor < n {
		end := cursor + chunkSize
		if end > n {
			end = n
		}

		if c.opts.PreserveSentences && end < n {
			term := -1
			for i := end; i < n; i++ {
				if isSentenceTerminator(runes[i]) {
					term = i
					break
				}
			}
			if term >= 0 {
				candidate := term + 1
				for candidate < n && unicode.IsSpace(runes[candidate]) {
					candidate++
				}
				if candidate-cursor < hardCap {
					end = candidate
				}
			}
		}

		content := strings.TrimSpace(string(runes[cursor:end]))
		if content != "" {
			chunks = append(chunks, Chunk{
				Content:        content,
				StartOffset:    cursor,
				EndOffset:      end,
				SequenceNumber: seq,
			})
			seq++
		}

		if end >= n {
			break
		}

		next := cursor + 1
		if end-overlap > next {
			next = end - overlap
		}
		cursor = next
	}

	return chunks
}
