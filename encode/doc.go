// Package encode implements the encode coordinator: a buffer-then-build
// state machine that chunks text, drives a QR generator and a video
// encoder, and produces a container whose frames map 1:1 to chunks.
package encode
