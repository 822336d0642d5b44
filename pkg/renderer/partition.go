package renderer

import "fmt"

// ColumnRange is the half-open span of pixel columns [Start, End)
type ColumnRange struct {
	Start, End int
}

// Width returns the number of columns in the range
func (r ColumnRange) Width() int { return r.End - r.Start }

// Empty reports whether the range contains no columns
func (r ColumnRange) Empty() bool { return r.End <= r.Start }

func (r ColumnRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Plan is the result of partitioning an image width among workers
type Plan struct {
	Width    int           // Image width that was partitioned
	Chunk    int           // Columns per worker, floor(Width / len(Ranges))
	Ranges   []ColumnRange // One range per worker, in column order
	Leftover ColumnRange   // Columns not covered by equal division
}

// Partition splits [0, width) into numWorkers ranges of equal width plus a
// leftover range holding the width % numWorkers trailing columns.
// When numWorkers exceeds width every worker range is empty and the leftover
// covers the whole width.
func Partition(width, numWorkers int) (Plan, error) {
	if numWorkers < 1 {
		return Plan{}, &ConfigurationError{Field: "worker count", Value: numWorkers, Reason: "must be at least 1"}
	}
	if width < 0 {
		return Plan{}, &ConfigurationError{Field: "width", Value: width, Reason: "must not be negative"}
	}

	// Integer division on purpose: the remainder goes to the leftover range.
	chunk := width / numWorkers

	ranges := make([]ColumnRange, numWorkers)
	for i := range ranges {
		ranges[i] = ColumnRange{Start: i * chunk, End: (i + 1) * chunk}
	}

	return Plan{
		Width:    width,
		Chunk:    chunk,
		Ranges:   ranges,
		Leftover: ColumnRange{Start: numWorkers * chunk, End: width},
	}, nil
}

// NonEmptyRanges returns the worker ranges that contain at least one column
func (p Plan) NonEmptyRanges() []ColumnRange {
	var ranges []ColumnRange
	for _, r := range p.Ranges {
		if !r.Empty() {
			ranges = append(ranges, r)
		}
	}
	return ranges
}

// Verify checks that the worker ranges and the leftover are pairwise
// disjoint and together cover exactly [0, Width).
func (p Plan) Verify() error {
	next := 0
	all := append(append([]ColumnRange(nil), p.Ranges...), p.Leftover)
	for i, r := range all {
		if r.Start < 0 || r.Start > r.End || r.End > p.Width {
			return fmt.Errorf("range %d %v is outside [0,%d)", i, r, p.Width)
		}
		if r.Empty() {
			continue
		}
		if r.Start != next {
			if r.Start < next {
				return fmt.Errorf("range %d %v overlaps columns before %d", i, r, next)
			}
			return fmt.Errorf("columns [%d,%d) are not covered", next, r.Start)
		}
		next = r.End
	}
	if next != p.Width {
		return fmt.Errorf("columns [%d,%d) are not covered", next, p.Width)
	}
	return nil
}
