package labeltree

// String emits the canonical text of the path: labels in order, separated
// by '.', with '\', space, and '.' bytes escaped. The output always
// reparses to an identical record.
func (p *LabelPath) String() string {
	numLevel := p.NumLevels()
	if numLevel == 0 {
		return ""
	}

	// Sizing pass, so the emit pass appends without growing.
	total := numLevel - 1
	for l := range p.Levels() {
		total += escapedLen(l.b, pathEscape)
	}

	buf := make([]byte, 0, total)
	i := 0
	for l := range p.Levels() {
		if i != 0 {
			buf = append(buf, '.')
		}
		buf = appendEscaped(buf, l.b, pathEscape)
		i++
	}
	return string(buf)
}
