package labeltree

import "strconv"

// String emits the canonical text of the pattern. Alternatives-form
// levels re-escape '\', space, '.' and '|', keep a leading operator
// byte escaped, and re-emit modifiers in the fixed '%', '@', '*' order
// regardless of how they were written.
// Quantifier levels emit the shortest equivalent form: '*', '*{n}',
// '*{,n}', '*{n,}' or '*{n,m}'.
func (q *LabelPattern) String() string {
	numLevel := q.NumLevels()
	if numLevel == 0 {
		return ""
	}

	// Sizing pass; quantifier forms are bounded by "*{65535,65535}".
	total := numLevel - 1
	for l := range q.Levels() {
		if l.IsQuantifier() {
			total += 2*5 + 4
			continue
		}
		if l.Negated() {
			total++
		}
		j := 0
		for v := range l.Variants() {
			if j != 0 {
				total++
			}
			total += escapedLen(v.Bytes(), patternEscape) + 3
			if leadingOperator(v.Bytes()) {
				total++
			}
			j++
		}
	}

	buf := make([]byte, 0, total)
	i := 0
	for l := range q.Levels() {
		if i != 0 {
			buf = append(buf, '.')
		}
		i++
		if l.IsQuantifier() {
			buf = appendQuantifier(buf, l)
			continue
		}
		if l.Negated() {
			buf = append(buf, '!')
		}
		j := 0
		for v := range l.Variants() {
			if j != 0 {
				buf = append(buf, '|')
			}
			j++
			// An alternative may hold an operator character as its
			// first byte (written escaped); it must stay escaped or
			// the parser would read it as negation, quantifier, or a
			// dangling modifier.
			if leadingOperator(v.Bytes()) {
				buf = append(buf, '\\')
			}
			buf = appendEscaped(buf, v.Bytes(), patternEscape)
			if v.PrefixClass() {
				buf = append(buf, '%')
			}
			if v.CaseInsensitive() {
				buf = append(buf, '@')
			}
			if v.AnyEnd() {
				buf = append(buf, '*')
			}
		}
	}
	return string(buf)
}

// leadingOperator reports whether b starts with a byte that carries
// operator meaning at the start of an alternative.
func leadingOperator(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	switch b[0] {
	case '!', '*', '@', '%':
		return true
	}
	return false
}

func appendQuantifier(buf []byte, l PatternLevel) []byte {
	low, high := l.Bounds()
	switch {
	case low == high:
		buf = append(buf, "*{"...)
		buf = strconv.AppendUint(buf, uint64(low), 10)
		buf = append(buf, '}')
	case low == 0 && high == quantifierMax:
		buf = append(buf, '*')
	case low == 0:
		buf = append(buf, "*{,"...)
		buf = strconv.AppendUint(buf, uint64(high), 10)
		buf = append(buf, '}')
	case high == quantifierMax:
		buf = append(buf, "*{"...)
		buf = strconv.AppendUint(buf, uint64(low), 10)
		buf = append(buf, ",}"...)
	default:
		buf = append(buf, "*{"...)
		buf = strconv.AppendUint(buf, uint64(low), 10)
		buf = append(buf, ',')
		buf = strconv.AppendUint(buf, uint64(high), 10)
		buf = append(buf, '}')
	}
	return buf
}
