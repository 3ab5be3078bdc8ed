package designator

import "strconv"

// Range designates the contiguous sub-range [Start, End) of a sequential value
type Range struct {
	Start int
	End   int
}

func (r Range) Peek() Designator { return r }

func (r Range) Tail() Designator { return Identity{} }

func (r Range) Equal(other Designator) bool {
	o, ok := other.(Range)
	return ok && o == r
}

func (r Range) String() string {
	return "[" + strconv.Itoa(r.Start) + ":" + strconv.Itoa(r.End) + "]"
}

// Len returns the number of elements covered by the range
func (r Range) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Clamp clips the range to a value of the given length
func (r Range) Clamp(length int) Range {
	if length < 0 {
		length = 0
	}
	start := min(max(r.Start, 0), length)
	end := min(max(r.End, 0), length)
	if end < start {
		end = start
	}
	return Range{Start: start, End: end}
}

// Shift moves the range by offset
func (r Range) Shift(offset int) Range {
	return Range{Start: r.Start + offset, End: r.End + offset}
}
