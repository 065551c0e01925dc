package stroke

// Dash splits a polyline into the "on" pieces of a dash pattern.
// lengths alternates dash and gap lengths and must have even length
// with at least one positive entry (the Dash type in the root package
// normalizes to this). offset advances into the pattern cycle before
// the first segment. Closed polylines are unrolled: the wrap-around
// segment is appended and the result pieces are open.
func Dash(poly []Point, closed bool, lengths []float64, offset float64) [][]Point {
	if len(poly) < 2 {
		return nil
	}
	total := 0.0
	for _, l := range lengths {
		total += l
	}
	if total <= 0 {
		return [][]Point{poly}
	}

	pts := poly
	if closed && pts[0] != pts[len(pts)-1] {
		pts = append(append(make([]Point, 0, len(poly)+1), poly...), poly[0])
	}

	// Position within the pattern cycle.
	pos := offset
	for pos < 0 {
		pos += total
	}
	idx := 0
	for pos >= lengths[idx] {
		pos -= lengths[idx]
		idx = (idx + 1) % len(lengths)
	}
	remain := lengths[idx] - pos
	on := idx%2 == 0

	var pieces [][]Point
	var cur []Point
	if on {
		cur = append(cur, pts[0])
	}

	flush := func() {
		if len(cur) > 1 {
			pieces = append(pieces, cur)
		}
		cur = nil
	}

	for i := 0; i < len(pts)-1; i++ {
		p0, p1 := pts[i], pts[i+1]
		segLen := p1.sub(p0).length()
		walked := 0.0
		for segLen-walked > remain {
			walked += remain
			t := walked / segLen
			split := Point{
				X: p0.X + (p1.X-p0.X)*t,
				Y: p0.Y + (p1.Y-p0.Y)*t,
			}
			if on {
				cur = append(cur, split)
				flush()
			} else {
				cur = append(cur, split)
			}
			on = !on
			if !on {
				cur = nil
			}
			idx = (idx + 1) % len(lengths)
			remain = lengths[idx]
		}
		remain -= segLen - walked
		if on {
			cur = append(cur, p1)
		}
	}
	flush()
	return pieces
}
