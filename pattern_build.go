package labeltree

// buildPattern is the layout builder: it sizes the final record from the
// descriptor tables, allocates it once, copies and unescapes variant
// bytes into place, computes per-variant content hashes, and derives
// FirstGood and the negation flag.
func buildPattern(s string, qlevels []levelItem, hasNot bool) (*LabelPattern, error) {
	// Sizing pass. Quantifier bound ordering is checked here, before
	// allocation, matching the error order of the tokenizer's limits.
	totallen := patternHeaderSize
	for i := range qlevels {
		l := &qlevels[i]
		totallen += patternLevelHeaderSize
		if len(l.vars) > 0 {
			for _, v := range l.vars {
				totallen += variantSize(v.len)
			}
		} else if l.low > l.high {
			return nil, boundsInverted(l.low, l.high)
		}
	}

	data := make([]byte, totallen)
	firstGood := 0
	wasBad := false
	off := patternHeaderSize
	for i := range qlevels {
		l := &qlevels[i]
		lh := patternLevel{
			NumVar: uint16(len(l.vars)),
			Flag:   l.flag,
			Low:    uint16(l.low),
			High:   uint16(l.high),
		}
		levelLen := patternLevelHeaderSize
		if len(l.vars) > 0 {
			voff := off + patternLevelHeaderSize
			for _, v := range l.vars {
				payload := data[voff+variantHeaderSize : voff+variantHeaderSize+v.len]
				if err := copyUnescaped(s[v.start:], payload, v.len); err != nil {
					return nil, err
				}
				vh := variantHeader{
					Len:  uint16(v.len),
					Flag: v.flag,
					Hash: contentHash(payload),
				}
				vh.encodeTo(data[voff:])
				voff += variantSize(v.len)
				levelLen += variantSize(v.len)
			}
			// A level stays "good" while it is a bare single
			// alternative; anything richer ends the exact prefix.
			if len(l.vars) > 1 || l.flag != 0 {
				wasBad = true
			} else if !wasBad {
				firstGood++
			}
		} else {
			wasBad = true
		}
		lh.TotalLen = uint32(levelLen)
		lh.encodeTo(data[off:])
		off += levelLen
	}

	h := patternHeader{
		TotalSize: uint32(totallen),
		NumLevel:  uint16(len(qlevels)),
		FirstGood: uint16(firstGood),
	}
	if hasNot {
		h.Flag |= patternHasNegation
	}
	h.encodeTo(data)
	return &LabelPattern{data: data}, nil
}
