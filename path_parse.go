package labeltree

import (
	"encoding/binary"
	"fmt"

	lterrors "github.com/labeltree/labeltree/errors"
)

// Label-path tokenizer states.
const (
	ltprsWaitName = iota
	ltprsWaitDelim
	ltprsWaitEscaped
)

// pathItem is the per-label descriptor filled during tokenization. The
// label bytes are not copied yet; start/len locate them in the input.
type pathItem struct {
	start int // byte offset of the label's first raw byte
	len   int // length in bytes, escape backslashes excluded
	wlen  int // length in characters
}

func syntaxAt(pos int) error {
	return fmt.Errorf("%w at position %d", lterrors.ErrSyntax, pos)
}

func unexpectedEnd() error {
	return fmt.Errorf("%w: unexpected end of line", lterrors.ErrSyntax)
}

func nameTooLong(wlen, pos int) error {
	return fmt.Errorf("%w: name length is %d, must be <= %d, at position %d",
		lterrors.ErrNameTooLong, wlen, MaxLabelChars, pos)
}

func levelLimit(count, max int) error {
	return fmt.Errorf("%w: number of levels (%d) exceeds the maximum allowed (%d)",
		lterrors.ErrProgramLimit, count, max)
}

// ParseLabelPath parses the textual form of a label-path:
//
//	path  := label ('.' label)*
//	label := (escaped-char | plain-char)*
//
// A backslash makes the following character literal, so escaped '.' bytes
// never split a label. The empty string parses to a zero-level path.
// Positions in errors are counted in characters, not bytes.
func ParseLabelPath(s string) (*LabelPath, error) {
	levels, _ := countUnits(s)
	if levels > MaxLevels {
		return nil, levelLimit(levels, MaxLevels)
	}
	list := make([]pathItem, 0, levels)

	var cur pathItem
	state := ltprsWaitName
	escaped := 0 // escape backslashes seen inside the current label
	pos := 0     // position in characters
	totallen := 0

	closeLabel := func(end int) error {
		cur.len = end - cur.start - escaped
		if cur.wlen > MaxLabelChars {
			return nameTooLong(cur.wlen, pos)
		}
		totallen += pathLevelSize(cur.len)
		list = append(list, cur)
		return nil
	}

	for i := 0; i < len(s); {
		n := charLen(s, i)
		switch state {
		case ltprsWaitName:
			state = ltprsWaitDelim
			cur = pathItem{start: i}
			escaped = 0
			if n == 1 {
				switch s[i] {
				case '.':
					return nil, syntaxAt(pos)
				case '\\':
					state = ltprsWaitEscaped
				}
			}
		case ltprsWaitEscaped:
			state = ltprsWaitDelim
			escaped++
		case ltprsWaitDelim:
			if n == 1 && s[i] == '.' {
				if err := closeLabel(i); err != nil {
					return nil, err
				}
				state = ltprsWaitName
			} else if n == 1 && s[i] == '\\' {
				state = ltprsWaitEscaped
			}
		default:
			return nil, fmt.Errorf("%w: label-path state %d", lterrors.ErrInternalParser, state)
		}
		i += n
		if state == ltprsWaitDelim {
			cur.wlen++
		}
		pos++
	}

	switch {
	case state == ltprsWaitDelim:
		if err := closeLabel(len(s)); err != nil {
			return nil, err
		}
	case state == ltprsWaitName && len(list) == 0:
		// Empty input: a zero-level path is valid.
	default:
		// Trailing delimiter or unterminated escape.
		return nil, unexpectedEnd()
	}

	data := make([]byte, pathHeaderSize+totallen)
	h := pathHeader{
		TotalSize: uint32(len(data)),
		NumLevel:  uint16(len(list)),
	}
	h.encodeTo(data)
	off := pathHeaderSize
	for _, it := range list {
		binary.LittleEndian.PutUint16(data[off:off+2], uint16(it.len))
		if it.len > 0 {
			dst := data[off+pathLevelHeaderSize : off+pathLevelHeaderSize+it.len]
			if err := copyUnescaped(s[it.start:], dst, it.len); err != nil {
				return nil, err
			}
		}
		off += pathLevelSize(it.len)
	}
	return &LabelPath{data: data}, nil
}
