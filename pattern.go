package labeltree

import (
	"bytes"
	"encoding/binary"
	"iter"
	"unicode/utf8"

	lterrors "github.com/labeltree/labeltree/errors"
)

// LabelPattern is an immutable parsed label-pattern, backed by its flat
// binary record. It is matched against LabelPaths by an external
// comparator; this package only guarantees the record's fields (variant
// content hashes, FirstGood, HasNegation) are populated correctly.
type LabelPattern struct {
	data []byte
}

// PatternLevel is a read-only view of one pattern level record. A level
// is exactly one of two forms: alternatives (NumVariants > 0) or
// quantifier (NumVariants == 0, matching Low..High arbitrary labels).
type PatternLevel struct {
	data []byte // the level record, header plus variants
}

// Variant is a read-only view of one alternative inside an
// alternatives-form level.
type Variant struct {
	data []byte // the variant record, header plus label bytes
}

// NumLevels returns the number of levels in the pattern.
func (q *LabelPattern) NumLevels() int {
	return int(binary.LittleEndian.Uint16(q.data[4:6]))
}

// FirstGood returns the number of leading levels that behave as exact,
// unambiguous label equality: single-variant, flag-free, non-negated.
// External indexes use it to bound how many leading labels admit a direct
// equality lookup.
func (q *LabelPattern) FirstGood() int {
	return int(binary.LittleEndian.Uint16(q.data[6:8]))
}

// HasNegation reports whether any level of the pattern negates.
func (q *LabelPattern) HasNegation() bool {
	return q.data[8]&patternHasNegation != 0
}

// Record returns the pattern's binary record. The slice aliases the
// pattern's backing storage; callers must not modify it.
func (q *LabelPattern) Record() []byte { return q.data }

// Equal reports whether q and o hold identical records. Parsing
// normalizes modifier order, so patterns that differ only in written
// modifier order compare equal.
func (q *LabelPattern) Equal(o *LabelPattern) bool {
	return bytes.Equal(q.data, o.data)
}

// Levels iterates the pattern's levels in order.
func (q *LabelPattern) Levels() iter.Seq[PatternLevel] {
	return func(yield func(PatternLevel) bool) {
		off := patternHeaderSize
		for range q.NumLevels() {
			n := int(binary.LittleEndian.Uint32(q.data[off : off+4]))
			if !yield(PatternLevel{data: q.data[off : off+n]}) {
				return
			}
			off += n
		}
	}
}

// NumVariants returns the number of alternatives; 0 for quantifier form.
func (l PatternLevel) NumVariants() int {
	return int(binary.LittleEndian.Uint16(l.data[4:6]))
}

// IsQuantifier reports whether the level matches a span of arbitrary
// labels instead of alternatives.
func (l PatternLevel) IsQuantifier() bool { return l.NumVariants() == 0 }

// Negated reports whether the level carries the '!' prefix.
func (l PatternLevel) Negated() bool { return l.data[6]&levelNegate != 0 }

// Bounds returns the quantifier bounds. For alternatives-form levels both
// are zero.
func (l PatternLevel) Bounds() (low, high uint16) {
	return binary.LittleEndian.Uint16(l.data[8:10]),
		binary.LittleEndian.Uint16(l.data[10:12])
}

// Variants iterates the level's alternatives in order.
func (l PatternLevel) Variants() iter.Seq[Variant] {
	return func(yield func(Variant) bool) {
		off := patternLevelHeaderSize
		for range l.NumVariants() {
			n := int(binary.LittleEndian.Uint16(l.data[off : off+2]))
			if !yield(Variant{data: l.data[off : off+variantHeaderSize+n]}) {
				return
			}
			off += variantSize(n)
		}
	}
}

// Bytes returns the variant's unescaped label bytes. The slice aliases
// the record; callers must not modify it.
func (v Variant) Bytes() []byte {
	n := int(binary.LittleEndian.Uint16(v.data[0:2]))
	return v.data[variantHeaderSize : variantHeaderSize+n]
}

// String returns the variant's unescaped label bytes as a string.
func (v Variant) String() string { return string(v.Bytes()) }

// Hash returns the 32-bit content hash computed over the variant's
// unescaped bytes during parsing. External matchers use it for cheap
// inequality rejection.
func (v Variant) Hash() uint32 {
	return binary.LittleEndian.Uint32(v.data[4:8])
}

// AnyEnd reports the '*' modifier: the variant allows a trailing
// extension.
func (v Variant) AnyEnd() bool { return v.data[2]&variantAnyEnd != 0 }

// CaseInsensitive reports the '@' modifier.
func (v Variant) CaseInsensitive() bool { return v.data[2]&variantInCase != 0 }

// PrefixClass reports the '%' modifier: the variant matches as a lexeme
// prefix.
func (v Variant) PrefixClass() bool { return v.data[2]&variantSubLex != 0 }

// DecodeLabelPattern validates a LabelPattern record obtained from
// external storage and wraps it without copying. Structure is fully
// walked: header totals, level bounds, per-level variant walks, padding
// arithmetic, the one-form-per-level invariant, and ordered quantifier
// bounds. FirstGood and the negation flag are trusted but must be
// consistent with the level count.
func DecodeLabelPattern(b []byte) (*LabelPattern, error) {
	h, err := decodePatternHeader(b)
	if err != nil {
		return nil, err
	}
	if int(h.TotalSize) > len(b) {
		return nil, lterrors.ErrTruncatedRecord
	}
	if int(h.TotalSize) < len(b) {
		return nil, lterrors.ErrCorruptedRecord
	}
	off := patternHeaderSize
	for range h.NumLevel {
		if off+patternLevelHeaderSize > len(b) {
			return nil, lterrors.ErrTruncatedRecord
		}
		l, err := decodePatternLevel(b[off:])
		if err != nil {
			return nil, err
		}
		if off+int(l.TotalLen) > len(b) {
			return nil, lterrors.ErrTruncatedRecord
		}
		voff := off + patternLevelHeaderSize
		for range l.NumVar {
			if voff+variantHeaderSize > off+int(l.TotalLen) {
				return nil, lterrors.ErrCorruptedRecord
			}
			v, err := decodeVariantHeader(b[voff:])
			if err != nil {
				return nil, err
			}
			if voff+variantSize(int(v.Len)) > off+int(l.TotalLen) {
				return nil, lterrors.ErrCorruptedRecord
			}
			name := b[voff+variantHeaderSize : voff+variantHeaderSize+int(v.Len)]
			if utf8.RuneCount(name) > MaxLabelChars {
				return nil, lterrors.ErrCorruptedRecord
			}
			voff += variantSize(int(v.Len))
		}
		if voff != off+int(l.TotalLen) {
			return nil, lterrors.ErrCorruptedRecord
		}
		off += int(l.TotalLen)
	}
	if off != int(h.TotalSize) {
		return nil, lterrors.ErrCorruptedRecord
	}
	return &LabelPattern{data: b}, nil
}
