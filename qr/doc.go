// Package qr defines the QR generator/decoder contracts consumed by the
// encode and decode coordinators, plus a dependency-free reference codec
// that implements both without real ISO/IEC 18004 symbology.
package qr
