/*
NAME
  parse.go

DESCRIPTION
  parse.go provides the fieldReader used to parse sequences of syntax
  elements of different descriptors specified in 7.2 of ITU-T H.265.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package h265dec

import (
	"github.com/ausocean/hevc/h265dec/bits"
)

// fieldReader provides methods for reading flag and integer fields from a
// bits.Reader with a sticky error that may be checked after a series of
// parsing read calls. Labels name the syntax element being read and are
// carried into any resulting error.
type fieldReader struct {
	e  error
	br *bits.Reader
}

// newFieldReader returns a new fieldReader.
func newFieldReader(br *bits.Reader) *fieldReader {
	return &fieldReader{br: br}
}

// readBits returns the result of reading n bits from the reader. The read
// does not happen if the fieldReader already has a non-nil error.
func (r *fieldReader) readBits(n uint, label string) uint64 {
	if r.e != nil {
		return 0
	}
	var b uint64
	b, r.e = r.br.ReadBits(n, label)
	return b
}

// readFlag returns the result of reading a single bit as a flag. The read
// does not happen if the fieldReader already has a non-nil error.
func (r *fieldReader) readFlag(label string) bool {
	return r.readBits(1, label) == 1
}

// readUe parses a syntax element of ue(v) descriptor, i.e. an unsigned
// integer Exp-Golomb-coded element as specified in section 9.2 of ITU-T
// H.265. The read does not happen if the fieldReader has a non-nil error.
func (r *fieldReader) readUe(label string) uint32 {
	if r.e != nil {
		return 0
	}
	var i uint32
	i, r.e = r.br.ReadUe(label)
	return i
}

// readSe parses a syntax element of se(v) descriptor, i.e. a signed integer
// Exp-Golomb-coded element as specified in sections 9.2 and 9.2.2. The read
// does not happen if the fieldReader has a non-nil error.
func (r *fieldReader) readSe(label string) int32 {
	if r.e != nil {
		return 0
	}
	var i int32
	i, r.e = r.br.ReadSe(label)
	return i
}

// err returns the fieldReader's sticky error.
func (r *fieldReader) err() error {
	return r.e
}
