package encode

import (
	"time"

	"github.com/arvok-systems/framevault/video"
)

// Stats annotates a completed build's encoder statistics with the build's
// identity and total wall-clock time of the frame loop (QR rendering,
// scaling, AddFrame and Finalize). Chunking happens earlier, in
// AddMessage, and is not included.
type Stats struct {
	BuildID       string
	Encoder       video.Stats
	TotalWallTime time.Duration
}
