package labeltree

import (
	"bytes"
	"encoding/binary"
	"iter"
	"unicode/utf8"

	lterrors "github.com/labeltree/labeltree/errors"
)

// LabelPath is an immutable parsed label-path, backed by its flat binary
// record. It is produced by ParseLabelPath or DecodeLabelPath and never
// mutated afterwards, so a LabelPath may be shared freely between
// goroutines.
type LabelPath struct {
	data []byte
}

// Label is a read-only view of one hierarchy component. The bytes are
// stored unescaped; delimiters that were escaped in the textual form
// appear literally.
type Label struct {
	b []byte
}

// Bytes returns the label's unescaped bytes. The slice aliases the
// record; callers must not modify it.
func (l Label) Bytes() []byte { return l.b }

// String returns the label's unescaped bytes as a string.
func (l Label) String() string { return string(l.b) }

// Len returns the label's byte length.
func (l Label) Len() int { return len(l.b) }

// NumLevels returns the number of labels in the path.
func (p *LabelPath) NumLevels() int {
	return int(binary.LittleEndian.Uint16(p.data[4:6]))
}

// Record returns the path's binary record. The slice aliases the path's
// backing storage; callers must not modify it.
func (p *LabelPath) Record() []byte { return p.data }

// Equal reports whether p and o hold identical levels. Records are
// canonical, so structural equality is record equality.
func (p *LabelPath) Equal(o *LabelPath) bool {
	return bytes.Equal(p.data, o.data)
}

// Levels iterates the path's labels in order.
func (p *LabelPath) Levels() iter.Seq[Label] {
	return func(yield func(Label) bool) {
		off := pathHeaderSize
		for range p.NumLevels() {
			n := int(binary.LittleEndian.Uint16(p.data[off : off+2]))
			start := off + pathLevelHeaderSize
			if !yield(Label{b: p.data[start : start+n]}) {
				return
			}
			off += pathLevelSize(n)
		}
	}
}

// Labels returns the path's labels as strings, mostly a convenience for
// tests and tooling.
func (p *LabelPath) Labels() []string {
	out := make([]string, 0, p.NumLevels())
	for l := range p.Levels() {
		out = append(out, l.String())
	}
	return out
}

// DecodeLabelPath validates a LabelPath record obtained from external
// storage and wraps it without copying. The walk checks that the header's
// total size matches the buffer, that every level stays in bounds, and
// that the padded level sizes sum exactly to the record size. Returns
// ErrTruncatedRecord or ErrCorruptedRecord on failure.
func DecodeLabelPath(b []byte) (*LabelPath, error) {
	h, err := decodePathHeader(b)
	if err != nil {
		return nil, err
	}
	if int(h.TotalSize) > len(b) {
		return nil, lterrors.ErrTruncatedRecord
	}
	if int(h.TotalSize) < len(b) {
		return nil, lterrors.ErrCorruptedRecord
	}
	off := pathHeaderSize
	for range h.NumLevel {
		if off+pathLevelHeaderSize > len(b) {
			return nil, lterrors.ErrTruncatedRecord
		}
		n := int(binary.LittleEndian.Uint16(b[off : off+2]))
		if off+pathLevelSize(n) > len(b) {
			return nil, lterrors.ErrTruncatedRecord
		}
		name := b[off+pathLevelHeaderSize : off+pathLevelHeaderSize+n]
		if utf8.RuneCount(name) > MaxLabelChars {
			return nil, lterrors.ErrCorruptedRecord
		}
		off += pathLevelSize(n)
	}
	if off != int(h.TotalSize) {
		return nil, lterrors.ErrCorruptedRecord
	}
	return &LabelPath{data: b}, nil
}
