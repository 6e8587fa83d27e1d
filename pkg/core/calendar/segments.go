package calendar

// Island is a maximal run of consecutive off days. A single free day is a
// valid length-1 island.
type Island struct {
	Start int // day index, inclusive
	End   int // day index, inclusive
}

// Length returns the number of days in the island
func (i Island) Length() int {
	return i.End - i.Start + 1
}

// Gap is a maximal run of consecutive working days between two adjacent
// islands. Left and Right are island indices into the owning Sequence;
// -1 means the gap touches a year boundary.
type Gap struct {
	Start int
	End   int
	Left  int
	Right int
}

// Length returns the number of working days in the gap. This is also the
// PTO cost of fully closing it.
func (g Gap) Length() int {
	return g.End - g.Start + 1
}

// Sequence is the alternating island/gap structure the allocator reasons
// over. Islands and Gaps are each ordered by start day.
type Sequence struct {
	Islands []Island
	Gaps    []Gap
}

// Segments scans an off-day mask once into its alternating sequence of
// islands (runs of true) and gaps (runs of false). A leading or trailing
// gap exists when the mask starts or ends on a working day.
func Segments(off []bool) Sequence {
	var seq Sequence

	i := 0
	for i < len(off) {
		j := i
		for j < len(off) && off[j] == off[i] {
			j++
		}
		if off[i] {
			seq.Islands = append(seq.Islands, Island{Start: i, End: j - 1})
		} else {
			seq.Gaps = append(seq.Gaps, Gap{Start: i, End: j - 1, Left: len(seq.Islands) - 1})
		}
		i = j
	}

	// Islands are discovered after the gaps that precede them, so resolve
	// the right-hand neighbours in a second pass.
	for k := range seq.Gaps {
		right := seq.Gaps[k].Left + 1
		if right >= len(seq.Islands) {
			right = -1
		}
		seq.Gaps[k].Right = right
	}

	return seq
}
