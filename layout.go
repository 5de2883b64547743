package labeltree

import (
	"encoding/binary"

	lterrors "github.com/labeltree/labeltree/errors"
	"github.com/labeltree/labeltree/internal/align"
)

const (
	// pathHeaderSize is the exact size of a serialized LabelPath header.
	pathHeaderSize = 8

	// pathLevelHeaderSize is the per-label prefix inside a LabelPath
	// record: the uint16 byte length of the label.
	pathLevelHeaderSize = 2

	// patternHeaderSize is the exact size of a serialized LabelPattern
	// header.
	patternHeaderSize = 16

	// patternLevelHeaderSize is the fixed prefix of every pattern level
	// record.
	patternLevelHeaderSize = 16

	// variantHeaderSize is the fixed prefix of every variant record.
	variantHeaderSize = 8
)

// Format limits. Each is checked against the pre-scanned counts before the
// corresponding table or record is allocated.
const (
	// MaxLevels is the maximum number of levels in a LabelPath or
	// LabelPattern; the record's level count field is a uint16.
	MaxLevels = 65535

	// MaxVariants is the maximum total number of OR-alternatives in a
	// LabelPattern; a level's variant count field is a uint16.
	MaxVariants = 65535

	// MaxLabelChars is the maximum length of a single label or pattern
	// alternative, counted in characters rather than bytes.
	MaxLabelChars = 255

	// quantifierMax is the upper bound of an open quantifier range,
	// *{n,} and bare *.
	quantifierMax = 0xffff
)

// Variant flag bits.
const (
	variantAnyEnd  uint8 = 0x01 // '*' suffix: allow trailing extension
	variantInCase  uint8 = 0x02 // '@' suffix: case-insensitive match
	variantSubLex  uint8 = 0x04 // '%' suffix: match as a lexeme prefix
	variantFlagAll       = variantAnyEnd | variantInCase | variantSubLex
)

// Level and pattern flag bits.
const (
	levelNegate        uint8 = 0x10 // '!' prefix on the level
	patternHasNegation uint8 = 0x01 // some level negates
)

// pathHeader is the 8-byte LabelPath record header.
//
// Layout:
//
//	Offset  Size  Field      Type
//	0       4     TotalSize  uint32_le (whole record, header included)
//	4       2     NumLevel   uint16_le
//	6       2     Reserved   zero
//
// The header is followed by NumLevel label records, each
// {Len: uint16_le, Bytes...} padded to the alignment boundary.
type pathHeader struct {
	TotalSize uint32
	NumLevel  uint16
}

func (h *pathHeader) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], h.TotalSize)
	binary.LittleEndian.PutUint16(buf[4:6], h.NumLevel)
	buf[6] = 0
	buf[7] = 0
}

func decodePathHeader(buf []byte) (pathHeader, error) {
	if len(buf) < pathHeaderSize {
		return pathHeader{}, lterrors.ErrTruncatedRecord
	}
	return pathHeader{
		TotalSize: binary.LittleEndian.Uint32(buf[0:4]),
		NumLevel:  binary.LittleEndian.Uint16(buf[4:6]),
	}, nil
}

// patternHeader is the 16-byte LabelPattern record header.
//
// Layout:
//
//	Offset  Size  Field      Type
//	0       4     TotalSize  uint32_le (whole record, header included)
//	4       2     NumLevel   uint16_le
//	6       2     FirstGood  uint16_le (leading exact-equality levels)
//	8       1     Flag       uint8 (0x01 = has negation)
//	9       7     Reserved   zero
type patternHeader struct {
	TotalSize uint32
	NumLevel  uint16
	FirstGood uint16
	Flag      uint8
}

func (h *patternHeader) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], h.TotalSize)
	binary.LittleEndian.PutUint16(buf[4:6], h.NumLevel)
	binary.LittleEndian.PutUint16(buf[6:8], h.FirstGood)
	buf[8] = h.Flag
	for i := 9; i < patternHeaderSize; i++ {
		buf[i] = 0
	}
}

func decodePatternHeader(buf []byte) (patternHeader, error) {
	if len(buf) < patternHeaderSize {
		return patternHeader{}, lterrors.ErrTruncatedRecord
	}
	h := patternHeader{
		TotalSize: binary.LittleEndian.Uint32(buf[0:4]),
		NumLevel:  binary.LittleEndian.Uint16(buf[4:6]),
		FirstGood: binary.LittleEndian.Uint16(buf[6:8]),
		Flag:      buf[8],
	}
	if int(h.FirstGood) > int(h.NumLevel) {
		return patternHeader{}, lterrors.ErrCorruptedRecord
	}
	if h.Flag&^patternHasNegation != 0 {
		return patternHeader{}, lterrors.ErrCorruptedRecord
	}
	return h, nil
}

// patternLevel is the 16-byte prefix of every pattern level record.
//
// Layout:
//
//	Offset  Size  Field     Type
//	0       4     TotalLen  uint32_le (level record size, variants included)
//	4       2     NumVar    uint16_le (0 = quantifier form)
//	6       1     Flag      uint8 (OR of variant flags, 0x10 = negate)
//	7       1     Reserved  zero
//	8       2     Low       uint16_le
//	10      2     High      uint16_le
//	12      4     Reserved  zero
//
// A level is exactly one of two forms. With NumVar > 0 the prefix is
// followed by NumVar variant records and (Low, High) is (0, 0); with
// NumVar == 0 the level matches Low..High arbitrary labels and carries no
// variants and no flags.
type patternLevel struct {
	TotalLen uint32
	NumVar   uint16
	Flag     uint8
	Low      uint16
	High     uint16
}

func (l *patternLevel) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], l.TotalLen)
	binary.LittleEndian.PutUint16(buf[4:6], l.NumVar)
	buf[6] = l.Flag
	buf[7] = 0
	binary.LittleEndian.PutUint16(buf[8:10], l.Low)
	binary.LittleEndian.PutUint16(buf[10:12], l.High)
	for i := 12; i < patternLevelHeaderSize; i++ {
		buf[i] = 0
	}
}

func decodePatternLevel(buf []byte) (patternLevel, error) {
	if len(buf) < patternLevelHeaderSize {
		return patternLevel{}, lterrors.ErrTruncatedRecord
	}
	l := patternLevel{
		TotalLen: binary.LittleEndian.Uint32(buf[0:4]),
		NumVar:   binary.LittleEndian.Uint16(buf[4:6]),
		Flag:     buf[6],
		Low:      binary.LittleEndian.Uint16(buf[8:10]),
		High:     binary.LittleEndian.Uint16(buf[10:12]),
	}
	if l.Flag&^(variantFlagAll|levelNegate) != 0 {
		return patternLevel{}, lterrors.ErrCorruptedRecord
	}
	if l.NumVar == 0 {
		// Quantifier form: no flags, ordered bounds.
		if l.Flag != 0 || l.Low > l.High {
			return patternLevel{}, lterrors.ErrCorruptedRecord
		}
	} else if l.Low != 0 || l.High != 0 {
		// Alternatives form carries no bounds.
		return patternLevel{}, lterrors.ErrCorruptedRecord
	}
	return l, nil
}

// variantHeader is the 8-byte prefix of every variant record.
//
// Layout:
//
//	Offset  Size  Field     Type
//	0       2     Len       uint16_le (unescaped byte length)
//	2       1     Flag      uint8
//	3       1     Reserved  zero
//	4       4     Hash      uint32_le (content hash of the bytes)
//
// The prefix is followed by Len unescaped label bytes, padded to the
// alignment boundary.
type variantHeader struct {
	Len  uint16
	Flag uint8
	Hash uint32
}

func (v *variantHeader) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint16(buf[0:2], v.Len)
	buf[2] = v.Flag
	buf[3] = 0
	binary.LittleEndian.PutUint32(buf[4:8], v.Hash)
}

func decodeVariantHeader(buf []byte) (variantHeader, error) {
	if len(buf) < variantHeaderSize {
		return variantHeader{}, lterrors.ErrTruncatedRecord
	}
	v := variantHeader{
		Len:  binary.LittleEndian.Uint16(buf[0:2]),
		Flag: buf[2],
		Hash: binary.LittleEndian.Uint32(buf[4:8]),
	}
	if v.Flag&^variantFlagAll != 0 {
		return variantHeader{}, lterrors.ErrCorruptedRecord
	}
	return v, nil
}

// pathLevelSize returns the padded storage for one label of n bytes.
func pathLevelSize(n int) int {
	return align.Up(pathLevelHeaderSize + n)
}

// variantSize returns the padded storage for one variant of n bytes.
func variantSize(n int) int {
	return align.Up(variantHeaderSize + n)
}
