package encode

import "github.com/arvok-systems/framevault/qr"

// BuildParams configures one BuildVideo call.
type BuildParams struct {
	Width   int
	Height  int
	FPS     int
	Version int
	ECC     qr.EccLevel
	// Codec and HWAccel are forwarded to the video.Encoder's Init params
	// verbatim; the encode coordinator does not interpret them.
	Codec   string
	HWAccel bool
}
