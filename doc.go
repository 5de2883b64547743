// Package labeltree implements the text and binary codec for label-paths
// and label-patterns.
//
// A label-path is a dotted hierarchy of short textual labels, such as
// "Top.Countries.Europe". A label-pattern is the companion query syntax
// matched against label-paths by an external comparator, for example
// "Top.*.Europe*@" or "a|b.*{2,5}".
//
// # Basic Usage
//
// Parsing and serializing a path:
//
//	p, err := labeltree.ParseLabelPath("Top.Countries.Europe")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(p.String()) // "Top.Countries.Europe"
//
// Parsing a pattern:
//
//	q, err := labeltree.ParseLabelPattern("Top.*{1,2}.!Europe|Asia")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(q.FirstGood(), q.HasNegation())
//
// # Package Structure
//
// The implementation is organized as follows:
//
//   - Public API: path.go (ParseLabelPath, DecodeLabelPath), pattern.go
//     (ParseLabelPattern, DecodeLabelPattern)
//   - Parsers: path_parse.go, pattern_parse.go (state machines)
//   - Serializers: path_out.go, pattern_out.go (canonical text)
//   - Serialization: layout.go (record headers, offsets, padding)
//   - Escaping/pre-scan: escape.go
//   - Hashing: hash.go (content hash, fingerprint, index key)
//   - Batch helpers: batch.go (bounded-parallel parsing)
//
// Both parsers are pure, synchronous transformations: every call works on
// its own scratch state, so concurrent calls need no locking.
package labeltree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to the trace channel with key 'labeltree'.
func tracer() tracing.Trace {
	return tracing.Select("labeltree")
}
