// Package chunker splits source text into ordered, sentence-aware,
// overlapping chunks bounded by a configured size.
package chunker
