/*
DESCRIPTION
  bitreader.go provides a bit reader implementation for reading bit-packed
  syntax elements from an RBSP byte buffer.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bits provides a forward-only big-endian bit reader over a raw byte
// sequence payload (RBSP), i.e. a NAL unit payload with emulation-prevention
// bytes already removed.
package bits

import "fmt"

// OutOfBitsError is returned when a read runs past the end of the buffer,
// indicating a truncated or corrupt payload. Label names the syntax element
// whose read failed.
type OutOfBitsError struct {
	Label string
}

func (e OutOfBitsError) Error() string {
	return fmt.Sprintf("no bits left to read %s", e.Label)
}

// ExpGolombOverflowError is returned when an Exp-Golomb code decodes to a
// value too wide for the 32-bit result type.
type ExpGolombOverflowError struct {
	Label string
}

func (e ExpGolombOverflowError) Error() string {
	return fmt.Sprintf("exp-golomb code for %s overflows 32 bits", e.Label)
}

// TrailingDataError is returned by Finish when bits other than the RBSP
// stop bit and zero padding remain after a structure's syntax has been
// fully consumed.
type TrailingDataError struct {
	Label string
}

func (e TrailingDataError) Error() string {
	return fmt.Sprintf("unexpected data after %s", e.Label)
}

// Reader is a forward-only bit reader over a borrowed byte slice. Bits are
// consumed most-significant first. The buffer is never copied or modified.
type Reader struct {
	buf []byte
	off int  // Byte offset into buf.
	bit uint // Bit offset within the current byte, 0 is the MSB.
}

// NewReader returns a Reader positioned at bit 0 of byte 0 of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// ReadBits reads n bits, 1 <= n <= 64, and returns them in the
// least-significant part of a uint64. For example, with a buffer of
// []byte{0x8f,0xe3} (1000 1111, 1110 0011) consecutive reads give:
// n = 4, res = 0x8 (1000)
// n = 2, res = 0x3 (0011)
// n = 4, res = 0xf (1111)
// n = 6, res = 0x23 (0010 0011)
// The label names the syntax element being read and appears in any error.
func (r *Reader) ReadBits(n uint, label string) (uint64, error) {
	var v uint64
	for i := uint(0); i < n; i++ {
		if r.off >= len(r.buf) {
			return 0, OutOfBitsError{Label: label}
		}
		v = v<<1 | uint64(r.buf[r.off]>>(7-r.bit)&1)
		r.bit++
		if r.bit == 8 {
			r.bit = 0
			r.off++
		}
	}
	return v, nil
}

// ReadBool reads a single bit as a flag.
func (r *Reader) ReadBool(label string) (bool, error) {
	b, err := r.ReadBits(1, label)
	return b == 1, err
}

// ReadUe reads an unsigned Exp-Golomb coded syntax element, descriptor ue(v)
// in Rec. ITU-T H.265 section 9.2: leading zero bits are counted up to the
// first 1 bit, then that many suffix bits follow, giving
// 2^leadingZeros - 1 + suffix.
func (r *Reader) ReadUe(label string) (uint32, error) {
	var nZeros uint
	for {
		b, err := r.ReadBits(1, label)
		if err != nil {
			return 0, err
		}
		if b == 1 {
			break
		}
		nZeros++
		if nZeros > 31 {
			return 0, ExpGolombOverflowError{Label: label}
		}
	}
	suffix, err := r.ReadBits(nZeros, label)
	if err != nil {
		return 0, err
	}
	return uint32(uint64(1)<<nZeros - 1 + suffix), nil
}

// ReadSe reads a signed Exp-Golomb coded syntax element, descriptor se(v),
// mapping the unsigned code k to (-1)^(k+1) * ceil(k/2) per section 9.2.2.
func (r *Reader) ReadSe(label string) (int32, error) {
	k, err := r.ReadUe(label)
	if err != nil {
		return 0, err
	}
	if k&1 == 1 {
		return int32(k/2 + 1), nil
	}
	return -int32(k / 2), nil
}

// HasMoreData reports whether meaningful bits remain before the RBSP stop
// bit. The stop bit is the final 1 bit in the buffer; everything after it is
// alignment padding. No bits are consumed.
func (r *Reader) HasMoreData() bool {
	i := len(r.buf) - 1
	for i >= 0 && r.buf[i] == 0 {
		i--
	}
	if i < 0 {
		return false
	}

	// Find the position of the last set bit in byte i, counted from the MSB.
	last := uint(7)
	for r.buf[i]>>(7-last)&1 == 0 {
		last--
	}

	return r.off*8+int(r.bit) < i*8+int(last)
}

// Finish validates that only the rbsp_trailing_bits remain: a single 1 bit
// (rbsp_stop_one_bit) followed by nothing but zero padding. Any other
// remaining content yields a TrailingDataError.
func (r *Reader) Finish(label string) error {
	stop, err := r.ReadBits(1, label)
	if err != nil {
		return err
	}
	if stop != 1 {
		return TrailingDataError{Label: label}
	}
	if r.off < len(r.buf) && r.buf[r.off]&(0xff>>r.bit) != 0 {
		return TrailingDataError{Label: label}
	}
	for i := r.off + 1; i < len(r.buf); i++ {
		if r.buf[i] != 0 {
			return TrailingDataError{Label: label}
		}
	}
	return nil
}
