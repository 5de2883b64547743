// path_test.go tests the label-path codec: parsing, canonical
// serialization, round-trips, escaping, length limits, and record
// decoding.
package labeltree

import (
	"errors"
	"strings"
	"testing"

	lterrors "github.com/labeltree/labeltree/errors"
)

// =============================================================================
// ParseLabelPath
// =============================================================================

func TestParseLabelPathLevels(t *testing.T) {
	cases := []struct {
		in     string
		labels []string
	}{
		{"", nil},
		{"Top", []string{"Top"}},
		{"Top.Countries.Europe", []string{"Top", "Countries", "Europe"}},
		{"a.b.c.d", []string{"a", "b", "c", "d"}},
		// Escaped delimiter stays inside the label.
		{`Countries.Europe\.Russia`, []string{"Countries", "Europe.Russia"}},
		// Escaped backslash and space.
		{`a\\b. c`, []string{`a\b`, " c"}},
		// An escape may protect any character, delimiter or not.
		{`\T\o\p`, []string{"Top"}},
		// A label may be a single escaped dot.
		{`\..a`, []string{".", "a"}},
		// Unescaped space is an ordinary byte.
		{"a b.c", []string{"a b", "c"}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			p, err := ParseLabelPath(tc.in)
			if err != nil {
				t.Fatalf("ParseLabelPath(%q): %v", tc.in, err)
			}
			if p.NumLevels() != len(tc.labels) {
				t.Fatalf("NumLevels = %d, want %d", p.NumLevels(), len(tc.labels))
			}
			got := p.Labels()
			for i, want := range tc.labels {
				if got[i] != want {
					t.Errorf("label %d = %q, want %q", i, got[i], want)
				}
			}
		})
	}
}

func TestParseLabelPathEscapedDotByteLength(t *testing.T) {
	p, err := ParseLabelPath(`Countries.Europe\.Russia`)
	if err != nil {
		t.Fatal(err)
	}
	if p.NumLevels() != 2 {
		t.Fatalf("NumLevels = %d, want 2", p.NumLevels())
	}
	var second Label
	i := 0
	for l := range p.Levels() {
		if i == 1 {
			second = l
		}
		i++
	}
	if second.Len() != 13 || second.String() != "Europe.Russia" {
		t.Errorf("second label = %q (%d bytes), want %q (13 bytes)",
			second.String(), second.Len(), "Europe.Russia")
	}
}

func TestParseLabelPathSyntaxErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		pos  string // expected fragment of the error text
	}{
		{"LeadingDot", ".a", "position 0"},
		{"DoubleDot", "a..b", "position 2"},
		{"TrailingDot", "a.", "unexpected end of line"},
		{"OnlyDot", ".", "position 0"},
		{"TrailingEscape", `a\`, "unexpected end of line"},
		{"OnlyEscape", `\`, "unexpected end of line"},
		// Positions are counted in characters, not bytes.
		{"MultibytePosition", "щж..", "position 3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseLabelPath(tc.in)
			if !errors.Is(err, lterrors.ErrSyntax) {
				t.Fatalf("ParseLabelPath(%q) = %v, want ErrSyntax", tc.in, err)
			}
			if !strings.Contains(err.Error(), tc.pos) {
				t.Errorf("error %q does not mention %q", err.Error(), tc.pos)
			}
		})
	}
}

func TestParseLabelPathNameTooLong(t *testing.T) {
	ok := strings.Repeat("a", 255)
	if _, err := ParseLabelPath(ok); err != nil {
		t.Errorf("255-character label should parse: %v", err)
	}
	if _, err := ParseLabelPath(ok + ".b"); err != nil {
		t.Errorf("255-character label mid-path should parse: %v", err)
	}

	long := strings.Repeat("a", 256)
	_, err := ParseLabelPath(long)
	if !errors.Is(err, lterrors.ErrNameTooLong) {
		t.Errorf("256-character label = %v, want ErrNameTooLong", err)
	}
	_, err = ParseLabelPath(long + ".b")
	if !errors.Is(err, lterrors.ErrNameTooLong) {
		t.Errorf("256-character label mid-path = %v, want ErrNameTooLong", err)
	}
}

// The 255 cap is on characters, not bytes: 255 two-byte characters are
// 510 bytes and must still parse.
func TestParseLabelPathMultibyteLength(t *testing.T) {
	ok := strings.Repeat("ы", 255)
	p, err := ParseLabelPath(ok)
	if err != nil {
		t.Fatalf("255 multibyte characters should parse: %v", err)
	}
	for l := range p.Levels() {
		if l.Len() != 510 {
			t.Errorf("label byte length = %d, want 510", l.Len())
		}
	}

	_, err = ParseLabelPath(strings.Repeat("ы", 256))
	if !errors.Is(err, lterrors.ErrNameTooLong) {
		t.Errorf("256 multibyte characters = %v, want ErrNameTooLong", err)
	}

	// Escaped characters count once; their backslashes do not.
	if _, err := ParseLabelPath(strings.Repeat(`\.`, 255)); err != nil {
		t.Errorf("255 escaped dots should parse: %v", err)
	}
	_, err = ParseLabelPath(strings.Repeat(`\.`, 256))
	if !errors.Is(err, lterrors.ErrNameTooLong) {
		t.Errorf("256 escaped dots = %v, want ErrNameTooLong", err)
	}
}

func TestParseLabelPathEmpty(t *testing.T) {
	p, err := ParseLabelPath("")
	if err != nil {
		t.Fatalf("empty input should parse to a zero-level path: %v", err)
	}
	if p.NumLevels() != 0 {
		t.Errorf("NumLevels = %d, want 0", p.NumLevels())
	}
	if p.String() != "" {
		t.Errorf("String() = %q, want empty", p.String())
	}
	if len(p.Record()) != pathHeaderSize {
		t.Errorf("record size = %d, want bare header %d", len(p.Record()), pathHeaderSize)
	}
}

// =============================================================================
// Serialization and round-trips
// =============================================================================

func TestLabelPathRoundTrip(t *testing.T) {
	// All inputs are already canonical, so text survives unchanged.
	inputs := []string{
		"",
		"Top",
		"Top.Countries.Europe",
		`Countries.Europe\.Russia`,
		`back\\slash.dot\..sp\ ace`,
		"Топ.Страны.Европа",
		"mixed.Ёлки.ascii",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			p, err := ParseLabelPath(in)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			out := p.String()
			if out != in {
				t.Errorf("String() = %q, want %q", out, in)
			}
			p2, err := ParseLabelPath(out)
			if err != nil {
				t.Fatalf("reparse: %v", err)
			}
			if !p.Equal(p2) {
				t.Errorf("round-trip changed the record")
			}
		})
	}
}

func TestLabelPathEscapeFidelity(t *testing.T) {
	// A label holding '\', space and '.' serializes with each escaped
	// and reparses to byte-identical content.
	in := `a\\\ \.z`
	p, err := ParseLabelPath(in)
	if err != nil {
		t.Fatal(err)
	}
	want := `a\ .z`
	for l := range p.Levels() {
		if l.String() != want {
			t.Errorf("unescaped label = %q, want %q", l.String(), want)
		}
	}
	if got := p.String(); got != in {
		t.Errorf("String() = %q, want %q", got, in)
	}
}

// =============================================================================
// Record decoding
// =============================================================================

func TestDecodeLabelPath(t *testing.T) {
	p, err := ParseLabelPath("Top.Countries.Europe")
	if err != nil {
		t.Fatal(err)
	}
	rec := p.Record()

	p2, err := DecodeLabelPath(rec)
	if err != nil {
		t.Fatalf("DecodeLabelPath of a fresh record: %v", err)
	}
	if !p.Equal(p2) || p2.String() != "Top.Countries.Europe" {
		t.Errorf("decoded path differs from original")
	}
}

func TestDecodeLabelPathErrors(t *testing.T) {
	p, err := ParseLabelPath("Top.Countries.Europe")
	if err != nil {
		t.Fatal(err)
	}
	rec := p.Record()

	t.Run("Empty", func(t *testing.T) {
		_, err := DecodeLabelPath(nil)
		if !errors.Is(err, lterrors.ErrTruncatedRecord) {
			t.Errorf("got %v, want ErrTruncatedRecord", err)
		}
	})
	t.Run("Truncated", func(t *testing.T) {
		_, err := DecodeLabelPath(rec[:len(rec)-4])
		if !errors.Is(err, lterrors.ErrTruncatedRecord) {
			t.Errorf("got %v, want ErrTruncatedRecord", err)
		}
	})
	t.Run("TrailingGarbage", func(t *testing.T) {
		grown := append(append([]byte(nil), rec...), 0, 0, 0, 0)
		_, err := DecodeLabelPath(grown)
		if !errors.Is(err, lterrors.ErrCorruptedRecord) {
			t.Errorf("got %v, want ErrCorruptedRecord", err)
		}
	})
	t.Run("OverlongLevel", func(t *testing.T) {
		bad := append([]byte(nil), rec...)
		// First level's length field, inflated past the buffer.
		bad[pathHeaderSize] = 0xff
		bad[pathHeaderSize+1] = 0xff
		_, err := DecodeLabelPath(bad)
		if !errors.Is(err, lterrors.ErrTruncatedRecord) {
			t.Errorf("got %v, want ErrTruncatedRecord", err)
		}
	})
}
