// Package decode implements the decode coordinator: it reads a container,
// extracts the requested frames, decodes each frame's QR payload, and
// returns the successfully decoded chunk contents in decode order,
// dropping individual frame failures rather than aborting the whole read.
package decode
