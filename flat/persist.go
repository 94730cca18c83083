package flat

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/arvok-systems/framevault/index"
	"github.com/arvok-systems/framevault/persistence"
)

// Save writes the Flat index v1 text format to path via
// write-to-temp-then-rename. A trailing CRC32 line guards against silent
// storage corruption; it is not part of the reference line format and is
// ignored by loaders that don't look for it.
func (idx *Index) Save(path string) error {
	ids := make([]uint64, 0, len(idx.vectors))
	for id := range idx.vectors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var body bytes.Buffer
	writeLine := func(s string) {
		body.WriteString(s)
		body.WriteByte('\n')
	}

	writeLine(strconv.Itoa(idx.dimension))
	writeLine(strconv.Itoa(len(ids)))

	for _, id := range ids {
		var sb strings.Builder
		sb.WriteString(strconv.FormatUint(id, 10))
		for _, f := range idx.vectors[id] {
			sb.WriteByte(',')
			sb.WriteString(strconv.FormatFloat(float64(f), 'g', -1, 32))
		}
		writeLine(sb.String())
	}

	checksum := persistence.CalculateChecksum(body.Bytes())

	return persistence.AtomicWriteFile(path, func(f *os.File) error {
		if _, err := f.Write(body.Bytes()); err != nil {
			return err
		}
		_, err := fmt.Fprintf(f, "#CRC32:%08x\n", checksum)
		return err
	})
}

// Load replaces the index's in-memory state wholesale with the image at
// path. On any error the index is left exactly as it was before the call.
func (idx *Index) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("flat: read %s: %w", path, err)
	}

	content := string(data)
	if i := strings.LastIndex(content, "\n#CRC32:"); i >= 0 {
		body := content[:i+1]
		var checksum uint32
		if _, err := fmt.Sscanf(strings.TrimSpace(content[i+1:]), "#CRC32:%08x", &checksum); err == nil {
			if persistence.CalculateChecksum([]byte(body)) != checksum {
				return &index.ErrCorrupt{Path: path, Reason: "checksum mismatch"}
			}
		}
		content = body
	}

	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	pos := 0
	next := func() (string, bool) {
		if pos >= len(lines) {
			return "", false
		}
		l := lines[pos]
		pos++
		return l, true
	}
	corrupt := func(reason string) error { return &index.ErrCorrupt{Path: path, Reason: reason} }

	dimLine, ok := next()
	if !ok {
		return corrupt("missing dimension line")
	}
	dimension, err := strconv.Atoi(dimLine)
	if err != nil {
		return corrupt("malformed dimension")
	}
	if dimension != idx.dimension {
		return corrupt(fmt.Sprintf("dimension mismatch: index has %d, file has %d", idx.dimension, dimension))
	}

	countLine, ok := next()
	if !ok {
		return corrupt("missing vector count")
	}
	count, err := strconv.Atoi(countLine)
	if err != nil || count < 0 {
		return corrupt("malformed vector count")
	}

	newVectors := make(map[uint64][]float32, count)
	for i := 0; i < count; i++ {
		line, ok := next()
		if !ok {
			return corrupt("truncated vector section")
		}
		fields := strings.Split(line, ",")
		if len(fields) != dimension+1 {
			return corrupt("vector field count mismatch")
		}
		id, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return corrupt("malformed vector id")
		}
		vec := make([]float32, dimension)
		for j := 0; j < dimension; j++ {
			f, err := strconv.ParseFloat(fields[j+1], 32)
			if err != nil {
				return corrupt("malformed vector component")
			}
			vec[j] = float32(f)
		}
		newVectors[id] = vec
	}

	idx.vectors = newVectors
	return nil
}
