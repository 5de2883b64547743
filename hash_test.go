// hash_test.go tests the path-level hashing helpers exposed to external
// matchers and indexes.
package labeltree

import (
	"bytes"
	"testing"
)

func TestFingerprintEquality(t *testing.T) {
	a1, err := ParseLabelPath("Top.Countries.Europe")
	if err != nil {
		t.Fatal(err)
	}
	a2, err := ParseLabelPath("Top.Countries.Europe")
	if err != nil {
		t.Fatal(err)
	}
	if a1.Fingerprint() != a2.Fingerprint() {
		t.Error("equal paths should share a fingerprint")
	}

	// Level boundaries matter: ["a.b"] and ["a","b"] hold the same
	// bytes but are different paths.
	joined, err := ParseLabelPath(`a\.b`)
	if err != nil {
		t.Fatal(err)
	}
	split, err := ParseLabelPath("a.b")
	if err != nil {
		t.Fatal(err)
	}
	if joined.Fingerprint() == split.Fingerprint() {
		t.Error("different level structure should not share a fingerprint")
	}
}

func TestPathKey(t *testing.T) {
	p, err := ParseLabelPath("Top.Countries")
	if err != nil {
		t.Fatal(err)
	}
	k1 := p.Key()
	k2 := p.Key()
	if len(k1) != 16 {
		t.Fatalf("key length = %d, want 16", len(k1))
	}
	if !bytes.Equal(k1, k2) {
		t.Error("key should be deterministic")
	}

	o, err := ParseLabelPath("Top.Cities")
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(k1, o.Key()) {
		t.Error("different paths should produce different keys")
	}
}
