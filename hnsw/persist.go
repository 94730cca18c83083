package hnsw

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/arvok-systems/framevault/core"
	"github.com/arvok-systems/framevault/index"
	"github.com/arvok-systems/framevault/persistence"
)

const magicV2 = "HNSW_v2"
const graphHeader = "---GRAPH---"

// Save writes the HNSW v2 text format to path via
// write-to-temp-then-rename, so a reader never observes a partial file
// and a failed write never clobbers a prior good one. A trailing CRC32
// line guards against silent storage corruption; it is not part of the
// reference line format and is ignored by loaders that don't look for it.
func (idx *Index) Save(path string) error {
	var body bytes.Buffer
	writeLine := func(s string) {
		body.WriteString(s)
		body.WriteByte('\n')
	}

	writeLine(magicV2)
	writeLine(fmt.Sprintf("%d,%d,%s,%d", idx.m, idx.efConstruction, strconv.FormatFloat(idx.mL, 'g', -1, 64), idx.dimension))
	writeLine(strconv.Itoa(len(idx.nodes)))

	if idx.hasEntry {
		writeLine(strconv.FormatUint(idx.nodes[idx.entry].id, 10))
	} else {
		writeLine("null")
	}

	for _, n := range idx.nodes {
		var sb strings.Builder
		sb.WriteString(strconv.FormatUint(n.id, 10))
		sb.WriteByte('|')
		sb.WriteString(strconv.Itoa(n.maxLayer))
		for _, f := range n.vector {
			sb.WriteByte(',')
			sb.WriteString(strconv.FormatFloat(float64(f), 'g', -1, 32))
		}
		writeLine(sb.String())
	}

	writeLine(graphHeader)

	for _, n := range idx.nodes {
		for l, neighbors := range n.neighbors {
			if len(neighbors) == 0 {
				continue
			}
			var sb strings.Builder
			sb.WriteString(strconv.FormatUint(n.id, 10))
			sb.WriteByte('|')
			sb.WriteString(strconv.Itoa(l))
			sb.WriteByte(':')
			for i, nb := range neighbors {
				if i > 0 {
					sb.WriteByte(';')
				}
				sb.WriteString(strconv.FormatUint(idx.nodes[nb].id, 10))
			}
			writeLine(sb.String())
		}
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
// path. On any error the index is left exactly as it was before the call:
// state is staged locally and only swapped in once the whole file parses.
func (idx *Index) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("hnsw: read %s: %w", path, err)
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
	corrupt := func(reason string) error {
		return &index.ErrCorrupt{Path: path, Reason: reason}
	}

	magic, ok := next()
	if !ok || magic != magicV2 {
		return corrupt("bad magic")
	}

	paramsLine, ok := next()
	if !ok {
		return corrupt("missing parameter line")
	}
	params := strings.Split(paramsLine, ",")
	if len(params) != 4 {
		return corrupt("malformed parameter line")
	}
	m, err1 := strconv.Atoi(params[0])
	efConstruction, err2 := strconv.Atoi(params[1])
	mL, err3 := strconv.ParseFloat(params[2], 64)
	dimension, err4 := strconv.Atoi(params[3])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return corrupt("malformed parameter line")
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

	entryLine, ok := next()
	if !ok {
		return corrupt("missing entry point line")
	}

	newNodes := make([]*node, 0, count)
	newIDs := make(map[uint64]core.LocalID, count)

	for i := 0; i < count; i++ {
		line, ok := next()
		if !ok {
			return corrupt("truncated vector section")
		}
		idPart, rest, found := strings.Cut(line, "|")
		if !found {
			return corrupt("malformed vector line")
		}
		id, err := strconv.ParseUint(idPart, 10, 64)
		if err != nil {
			return corrupt("malformed vector id")
		}
		fields := strings.Split(rest, ",")
		if len(fields) != dimension+1 {
			return corrupt("vector field count mismatch")
		}
		maxLayer, err := strconv.Atoi(fields[0])
		if err != nil || maxLayer < 0 {
			return corrupt("malformed maxLayer")
		}
		vec := make([]float32, dimension)
		for j := 0; j < dimension; j++ {
			f, err := strconv.ParseFloat(fields[j+1], 32)
			if err != nil {
				return corrupt("malformed vector component")
			}
			vec[j] = float32(f)
		}

		local := core.LocalID(len(newNodes))
		newNodes = append(newNodes, &node{
			id:        id,
			vector:    vec,
			maxLayer:  maxLayer,
			neighbors: make([][]core.LocalID, maxLayer+1),
		})
		newIDs[id] = local
	}

	header, ok := next()
	if !ok || header != graphHeader {
		return corrupt("missing graph section header")
	}

	for {
		line, ok := next()
		if !ok {
			break
		}
		if line == "" {
			continue
		}
		idPart, rest, found := strings.Cut(line, "|")
		if !found {
			continue // unknown trailing line, ignored
		}
		id, err := strconv.ParseUint(idPart, 10, 64)
		if err != nil {
			continue
		}
		layerPart, neighborPart, found := strings.Cut(rest, ":")
		if !found {
			continue
		}
		layer, err := strconv.Atoi(layerPart)
		if err != nil {
			continue
		}
		local, ok := newIDs[id]
		if !ok || layer < 0 || layer >= len(newNodes[local].neighbors) {
			continue
		}

		var neighbors []core.LocalID
		if neighborPart != "" {
			for _, nidStr := range strings.Split(neighborPart, ";") {
				nid, err := strconv.ParseUint(nidStr, 10, 64)
				if err != nil {
					continue
				}
				nlocal, ok := newIDs[nid]
				if !ok {
					continue // references an ID that was not restored; drop
				}
				neighbors = append(neighbors, nlocal)
			}
		}
		newNodes[local].neighbors[layer] = neighbors
	}

	var newEntry core.LocalID
	hasEntry := false
	if entryLine != "null" {
		eid, err := strconv.ParseUint(entryLine, 10, 64)
		if err != nil {
			return corrupt("malformed entry point")
		}
		local, ok := newIDs[eid]
		if !ok {
			return corrupt("entry point references unknown id")
		}
		newEntry = local
		hasEntry = true
	}

	newMaxLayer := 0
	if hasEntry {
		newMaxLayer = newNodes[newEntry].maxLayer
	}

	idx.m = m
	idx.m0 = 2 * m
	idx.efConstruction = efConstruction
	if idx.efSearch <= 0 {
		idx.efSearch = efConstruction
	}
	idx.mL = mL
	idx.nodes = newNodes
	idx.ids = newIDs
	idx.entry = newEntry
	idx.hasEntry = hasEntry
	idx.maxLayer = newMaxLayer

	return nil
}
