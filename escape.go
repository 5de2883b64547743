package labeltree

import (
	"fmt"
	"strings"
	"unicode/utf8"

	lterrors "github.com/labeltree/labeltree/errors"
)

// pathEscape and patternEscape are the byte sets the serializers protect
// with a leading backslash. Plain label-paths have no alternative syntax,
// so '|' is only significant inside patterns.
const (
	pathEscape    = "\\ ."
	patternEscape = "\\ .|"
)

// charLen returns the byte length of the character starting at s[i].
// Invalid UTF-8 is treated as a run of single-byte characters.
func charLen(s string, i int) int {
	if s[i] < utf8.RuneSelf {
		return 1
	}
	_, n := utf8.DecodeRuneInString(s[i:])
	return n
}

// countUnits is the pre-scan shared by both parsers. It counts the
// '.'-separated levels of s and, for patterns, the '|'-separated
// alternatives across the whole input, honoring backslash escapes. The
// counts are exact upper bounds, so the descriptor tables sized from them
// never reallocate. An empty input still counts as one (empty) unit.
func countUnits(s string) (levels, ors int) {
	escape := false
	for i := 0; i < len(s); {
		n := charLen(s, i)
		if escape {
			escape = false
		} else if n == 1 {
			switch s[i] {
			case '\\':
				escape = true
			case '.':
				levels++
			case '|':
				ors++
			}
		}
		i += n
	}
	return levels + 1, ors + 1
}

// copyUnescaped copies up to maxLen payload bytes of src into dst,
// stripping the backslash of every escape sequence. src is the raw slice
// of the input that produced a descriptor; maxLen is the descriptor's byte
// length with escapes already subtracted, so running out of src before
// maxLen is reached can only mean the descriptor table is inconsistent.
func copyUnescaped(src string, dst []byte, maxLen int) error {
	copied := 0
	escaping := false
	for i := 0; i < len(src) && copied < maxLen; {
		n := charLen(src, i)
		if n == 1 && src[i] == '\\' && !escaping {
			escaping = true
			i++
			continue
		}
		if copied+n > maxLen {
			return fmt.Errorf("%w: overflow while splitting levels", lterrors.ErrInternalParser)
		}
		copy(dst[copied:copied+n], src[i:i+n])
		i += n
		copied += n
		escaping = false
	}
	return nil
}

// appendEscaped appends src to dst, inserting a backslash before every
// byte listed in toEscape. All escapable bytes are ASCII and UTF-8
// continuation bytes are >= 0x80, so a byte-wise scan cannot split a
// multi-byte character.
func appendEscaped(dst, src []byte, toEscape string) []byte {
	for _, b := range src {
		if strings.IndexByte(toEscape, b) >= 0 {
			dst = append(dst, '\\')
		}
		dst = append(dst, b)
	}
	return dst
}

// escapedLen returns the serialized length of src under toEscape.
func escapedLen(src []byte, toEscape string) int {
	n := len(src)
	for _, b := range src {
		if strings.IndexByte(toEscape, b) >= 0 {
			n++
		}
	}
	return n
}
