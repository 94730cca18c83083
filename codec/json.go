package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Notes:
// - For chunk metadata (map-like structures), JSON is stable and portable.
// - For manifest payloads, JSON works for typical structs/maps/slices.
// - Time, complex numbers, funcs, channels, etc may not be supported.
//
// If you need custom encoding (e.g. protobuf/msgpack), implement Codec and
// pass it to SaveManifest/LoadManifest. Index Save/Load take no codec.
//
// Performance note:
//   - If you need the most portable/lowest-dependency option, use JSON.
//   - The default codec may change over time; persisted manifests do not
//     record the codec name, so nothing validates it on load.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the default codec used by the library.
//
// NOTE: Manifests do not store the codec name, so a manifest written with
// one codec must be loaded with that same codec. Index images do not use a
// codec.
var Default Codec = GoJSON{}
