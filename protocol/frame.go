package protocol

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrBadPrefix   = errors.New("token missing ILLO prefix")
	ErrFieldCount  = errors.New("wrong token field count")
	ErrFieldSyntax = errors.New("non-numeric token field")
	ErrSeqRange    = errors.New("sequence field out of range")
)

// ColorType is the coarse palette class of one pixel. The wire carries a
// palette index instead of raw RGB to keep tokens short.
type ColorType uint8

const (
	ColorRed     ColorType = 0
	ColorGreen   ColorType = 1
	ColorBlueish ColorType = 2
)

// Triple addresses one highlighted pixel: where, how bright, which
// palette. The zero value is a dark pixel.
type Triple struct {
	Position  uint8
	Intensity uint8
	Color     ColorType
}

// VisualFrame is the unit of synchronization: a wrapping sequence number
// for duplicate detection plus the three brightest pixels of the ring.
// Frames with fewer than three lit pixels are padded with dark triples.
type VisualFrame struct {
	Seq     uint8
	Triples [FrameTriples]Triple
}

// Encode renders f as an advertisement token. Triples with an
// out-of-range position or color class are darkened the same way a
// decoder would darken them, so the token never exceeds MaxTokenLen and
// in-range frames survive the round trip field for field.
func Encode(f VisualFrame) string {
	buf := make([]byte, 0, MaxTokenLen)
	buf = append(buf, Prefix...)
	buf = appendField(buf, uint32(f.Seq))
	for _, t := range f.Triples {
		if t.Position >= NumPixels || t.Color > MaxColorType {
			t = Triple{}
		}
		buf = appendField(buf, uint32(t.Position))
		buf = appendField(buf, uint32(t.Intensity))
		buf = appendField(buf, uint32(t.Color))
	}
	return string(buf)
}

func appendField(buf []byte, v uint32) []byte {
	buf = append(buf, Separator)
	return strconv.AppendUint(buf, uint64(v), 10)
}

// IsFrameName reports whether name starts like a sync token. Receivers
// use it as a cheap filter so foreign advertisements are skipped without
// touching decode statistics.
func IsFrameName(name string) bool {
	return len(name) > len(Prefix) &&
		name[:len(Prefix)] == Prefix &&
		name[len(Prefix)] == Separator
}

// Decode parses an advertisement token into a frame.
//
// Structural faults fail the whole token: a field count other than
// eleven, a mismatched prefix, a non-numeric field, or a sequence
// outside 0-255. A triple whose values are out of range is replaced
// with a dark triple without failing the frame, so partial corruption
// of one pixel does not void an otherwise usable frame.
func Decode(token string) (VisualFrame, error) {
	parts := strings.Split(token, string(Separator))
	if len(parts) != FieldCount {
		return VisualFrame{}, ErrFieldCount
	}
	if parts[0] != Prefix {
		return VisualFrame{}, ErrBadPrefix
	}

	seq, err := strconv.Atoi(parts[1])
	if err != nil {
		return VisualFrame{}, ErrFieldSyntax
	}
	if seq < 0 || seq >= SeqModulus {
		return VisualFrame{}, ErrSeqRange
	}

	var f VisualFrame
	f.Seq = uint8(seq)
	for i := 0; i < FrameTriples; i++ {
		base := 2 + i*3
		pos, err1 := strconv.Atoi(parts[base])
		inten, err2 := strconv.Atoi(parts[base+1])
		col, err3 := strconv.Atoi(parts[base+2])
		if err1 != nil || err2 != nil || err3 != nil {
			return VisualFrame{}, ErrFieldSyntax
		}
		if pos < 0 || pos >= NumPixels ||
			inten < 0 || inten > MaxIntensity ||
			col < 0 || col > MaxColorType {
			continue // darken this triple, keep the frame
		}
		f.Triples[i] = Triple{
			Position:  uint8(pos),
			Intensity: uint8(inten),
			Color:     ColorType(col),
		}
	}
	return f, nil
}
