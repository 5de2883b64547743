package labeltree

import (
	"fmt"
	"math/bits"

	lterrors "github.com/labeltree/labeltree/errors"
)

// Label-pattern tokenizer states.
const (
	lqprsWaitLevel   = iota // at the start of a level
	lqprsWaitDelim          // inside an alternative's name
	lqprsWaitOpen           // after '*', expecting '{' or a delimiter
	lqprsWaitFNum           // after '{', expecting the first bound or ','
	lqprsWaitSNum           // after ',', expecting the second bound or '}'
	lqprsWaitND             // inside the first bound's digits
	lqprsWaitClose          // inside the second bound's digits
	lqprsWaitEnd            // after '}', expecting a level delimiter
	lqprsWaitVar            // after '|', at the start of an alternative
	lqprsWaitEscaped        // after '\', the next character is literal
)

// varItem is the per-alternative descriptor filled during tokenization.
type varItem struct {
	start int   // byte offset of the alternative's first raw byte
	len   int   // length in bytes, escapes and modifiers excluded
	wlen  int   // length in characters, modifiers included
	flag  uint8 // variant flag bits
}

// levelItem is the per-level descriptor. Bounds are kept as ints during
// digit accumulation; they are range-checked before the record is built.
type levelItem struct {
	vars      []varItem
	flag      uint8
	low, high int
}

func variantLimit(count, max int) error {
	return fmt.Errorf("%w: number of alternatives (%d) exceeds the maximum allowed (%d)",
		lterrors.ErrProgramLimit, count, max)
}

func boundsInverted(low, high int) error {
	return fmt.Errorf("%w: low limit (%d) is greater than upper (%d)",
		lterrors.ErrSyntax, low, high)
}

// ParseLabelPattern parses the textual form of a label-pattern. Per
// level:
//
//	level    := '!'? variant ('|' variant)*  |  '*' ('{' range '}')?
//	variant  := labelchars modifier*
//	modifier := '%' | '@' | '*'
//	range    := n? (',' n?)?
//
// Bare '*' matches zero or more arbitrary labels; '*{n}', '*{n,}',
// '*{,m}' and '*{n,m}' bound the span. '%' matches as a lexeme prefix,
// '@' matches case-insensitively, '*' as a suffix allows a trailing
// extension. A leading '!' negates the whole level. Positions in errors
// are counted in characters, not bytes.
func ParseLabelPattern(s string) (*LabelPattern, error) {
	numLevels, numORs := countUnits(s)
	if numLevels > MaxLevels {
		return nil, levelLimit(numLevels, MaxLevels)
	}
	if numORs > MaxVariants {
		return nil, variantLimit(numORs, MaxVariants)
	}
	qlevels := make([]levelItem, numLevels)

	li := 0
	cur := &qlevels[0]
	var lv *varItem
	hasNot := false
	state := lqprsWaitLevel
	escaped := 0
	pos := 0 // position in characters

	// numORs bounds the alternatives of the densest level, so the append
	// below never outgrows the capacity and lv stays a valid pointer
	// into the backing array.
	newVariant := func(start int) {
		if cur.vars == nil {
			cur.vars = make([]varItem, 0, numORs)
		}
		cur.vars = append(cur.vars, varItem{start: start})
		lv = &cur.vars[len(cur.vars)-1]
	}

	closeVariant := func(end int) error {
		lv.len = end - lv.start - escaped - bits.OnesCount8(lv.flag&variantFlagAll)
		if lv.wlen > MaxLabelChars {
			return nameTooLong(lv.wlen, pos)
		}
		return nil
	}

	for i := 0; i < len(s); {
		n := charLen(s, i)
		switch state {
		case lqprsWaitLevel:
			escaped = 0
			if n > 1 {
				newVariant(i)
				state = lqprsWaitDelim
				break
			}
			switch s[i] {
			case '!':
				newVariant(i + 1)
				cur.flag |= levelNegate
				hasNot = true
				state = lqprsWaitDelim
			case '*':
				state = lqprsWaitOpen
			case '\\':
				newVariant(i)
				state = lqprsWaitEscaped
			case '.', '|', '@', '%':
				// Delimiters start nothing; modifiers have nothing
				// to modify yet.
				return nil, syntaxAt(pos)
			default:
				newVariant(i)
				state = lqprsWaitDelim
			}

		case lqprsWaitVar:
			escaped = 0
			if n == 1 {
				switch s[i] {
				case '.', '|', '@', '*', '%':
					return nil, syntaxAt(pos)
				}
			}
			newVariant(i)
			if n == 1 && s[i] == '\\' {
				state = lqprsWaitEscaped
			} else {
				state = lqprsWaitDelim
			}

		case lqprsWaitDelim:
			switch {
			case n == 1 && s[i] == '@':
				if lv.start == i {
					return nil, syntaxAt(pos)
				}
				lv.flag |= variantInCase
				cur.flag |= variantInCase
			case n == 1 && s[i] == '*':
				if lv.start == i {
					return nil, syntaxAt(pos)
				}
				lv.flag |= variantAnyEnd
				cur.flag |= variantAnyEnd
			case n == 1 && s[i] == '%':
				if lv.start == i {
					return nil, syntaxAt(pos)
				}
				lv.flag |= variantSubLex
				cur.flag |= variantSubLex
			case n == 1 && s[i] == '|':
				if err := closeVariant(i); err != nil {
					return nil, err
				}
				state = lqprsWaitVar
			case n == 1 && s[i] == '.':
				if err := closeVariant(i); err != nil {
					return nil, err
				}
				state = lqprsWaitLevel
				li++
				cur = &qlevels[li]
			case n == 1 && s[i] == '\\':
				if lv.flag != 0 {
					return nil, syntaxAt(pos)
				}
				state = lqprsWaitEscaped
			default:
				// Ordinary characters may not follow a modifier.
				if lv.flag != 0 {
					return nil, syntaxAt(pos)
				}
			}

		case lqprsWaitOpen:
			switch {
			case n == 1 && s[i] == '{':
				state = lqprsWaitFNum
			case n == 1 && s[i] == '.':
				cur.low, cur.high = 0, quantifierMax
				li++
				cur = &qlevels[li]
				state = lqprsWaitLevel
			default:
				return nil, syntaxAt(pos)
			}

		case lqprsWaitFNum:
			switch {
			case n == 1 && s[i] == ',':
				state = lqprsWaitSNum
			case n == 1 && isDigit(s[i]):
				cur.low = int(s[i] - '0')
				state = lqprsWaitND
			default:
				return nil, syntaxAt(pos)
			}

		case lqprsWaitND:
			switch {
			case n == 1 && s[i] == '}':
				cur.high = cur.low
				state = lqprsWaitEnd
			case n == 1 && s[i] == ',':
				state = lqprsWaitSNum
			case n == 1 && isDigit(s[i]):
				cur.low = cur.low*10 + int(s[i]-'0')
				if cur.low > quantifierMax {
					return nil, syntaxAt(pos)
				}
			default:
				return nil, syntaxAt(pos)
			}

		case lqprsWaitSNum:
			switch {
			case n == 1 && isDigit(s[i]):
				cur.high = int(s[i] - '0')
				state = lqprsWaitClose
			case n == 1 && s[i] == '}':
				cur.high = quantifierMax
				state = lqprsWaitEnd
			default:
				return nil, syntaxAt(pos)
			}

		case lqprsWaitClose:
			switch {
			case n == 1 && s[i] == '}':
				state = lqprsWaitEnd
			case n == 1 && isDigit(s[i]):
				cur.high = cur.high*10 + int(s[i]-'0')
				if cur.high > quantifierMax {
					return nil, syntaxAt(pos)
				}
			default:
				return nil, syntaxAt(pos)
			}

		case lqprsWaitEnd:
			// Only '.' terminates a quantifier level: the pre-scan
			// sizes the level table from '.' counts alone.
			if n == 1 && s[i] == '.' {
				li++
				cur = &qlevels[li]
				state = lqprsWaitLevel
			} else {
				return nil, syntaxAt(pos)
			}

		case lqprsWaitEscaped:
			state = lqprsWaitDelim
			escaped++

		default:
			return nil, fmt.Errorf("%w: label-pattern state %d", lterrors.ErrInternalParser, state)
		}

		i += n
		if state == lqprsWaitDelim {
			lv.wlen++
		}
		pos++
	}

	switch state {
	case lqprsWaitDelim:
		if lv.start == len(s) {
			// A '!' with nothing after it.
			return nil, unexpectedEnd()
		}
		if err := closeVariant(len(s)); err != nil {
			return nil, err
		}
		if lv.len == 0 {
			return nil, unexpectedEnd()
		}
	case lqprsWaitOpen:
		// Bare '*' at end of input.
		cur.low, cur.high = 0, quantifierMax
	case lqprsWaitEnd:
		// Quantifier closed at end of input.
	default:
		// Trailing delimiter, unterminated escape, unfinished
		// quantifier, or empty input.
		return nil, unexpectedEnd()
	}

	return buildPattern(s, qlevels, hasNot)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
