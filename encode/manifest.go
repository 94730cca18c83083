package encode

import (
	"os"

	"github.com/arvok-systems/framevault/chunker"
	"github.com/arvok-systems/framevault/codec"
	"github.com/arvok-systems/framevault/persistence"
)

// Manifest captures the buffered chunks' metadata — sequence number,
// parent message index, character offsets, and any caller-attached metadata —
// so a caller can map a frame number back to its source without decoding
// the container at all. Chunk.Content is included too since re-deriving it
// would otherwise require a full decode round trip just to inspect it.
type Manifest struct {
	Chunks []chunker.Chunk `json:"chunks"`
}

// SaveManifest encodes the coordinator's current buffer with c
// (codec.Default if c is nil) and writes it atomically to path, independent
// of BuildVideo. It does not require a build to have completed, and it
// does not consume or clear the buffer.
func (co *Coordinator) SaveManifest(path string, c codec.Codec) error {
	if c == nil {
		c = codec.Default
	}
	data, err := c.Marshal(Manifest{Chunks: co.buffer})
	if err != nil {
		return err
	}
	return persistence.AtomicWriteFile(path, func(f *os.File) error {
		_, err := f.Write(data)
		return err
	})
}

// LoadManifest reads and decodes a manifest previously written by
// SaveManifest, using c (codec.Default if c is nil).
func LoadManifest(path string, c codec.Codec) (Manifest, error) {
	if c == nil {
		c = codec.Default
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := c.Unmarshal(data, &m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}
