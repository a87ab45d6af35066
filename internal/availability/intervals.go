package availability

import (
	"sort"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Interval is a half-open [Start, End) range of minutes since local midnight tagged with a status and reason
type Interval struct {
	Start  int
	End    int
	Status domain.SlotStatus
	Reason string
}

func (i Interval) sameTag(other Interval) bool {
	return i.Status == other.Status && i.Reason == other.Reason
}

func (i Interval) overlaps(start, end int) bool {
	return i.Start < end && start < i.End
}

// Normalize clamps the interval to [0, 1440]. The second result is false if nothing is left.
func Normalize(i Interval) (Interval, bool) {
	return NormalizeWithin(i, domain.MinutesPerDay)
}

// NormalizeWithin clamps the interval to [0, limit], limit being the length of a 23h, 24h or 25h day
func NormalizeWithin(i Interval, limit int) (Interval, bool) {
	if i.Start < 0 {
		i.Start = 0
	}
	if i.End > limit {
		i.End = limit
	}
	if i.End <= i.Start {
		return Interval{}, false
	}
	return i, true
}

// MergeSameStatus fuses overlapping or adjacent intervals that carry the same status and reason.
// Intervals with different tags are left as they are, overlaps between them included.
// The input is not modified.
func MergeSameStatus(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := sortedCopy(intervals)

	// Grouping by tag first keeps interleaved tags from hiding identical-tag overlaps.
	type tag struct {
		status domain.SlotStatus
		reason string
	}
	groups := make(map[tag][]Interval)
	order := make([]tag, 0)
	for _, iv := range sorted {
		k := tag{status: iv.Status, reason: iv.Reason}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], iv)
	}

	result := make([]Interval, 0, len(sorted))
	for _, k := range order {
		group := groups[k]
		current := group[0]
		for _, iv := range group[1:] {
			if iv.Start <= current.End {
				if iv.End > current.End {
					current.End = iv.End
				}
				continue
			}
			result = append(result, current)
			current = iv
		}
		result = append(result, current)
	}

	return sortIntervals(result)
}

// Override lays each override over the base in input order. An override replaces whatever it
// covers regardless of status, so a later override wins over an earlier one on overlap.
func Override(base []Interval, overrides []Interval) []Interval {
	result := copyIntervals(base)
	for _, o := range overrides {
		next := cut(result, o.Start, o.End)
		next = append(next, o)
		result = MergeSameStatus(next)
	}
	return result
}

// Subtract removes the block window from every base interval without putting anything in its place
func Subtract(base []Interval, block Interval) []Interval {
	return MergeSameStatus(cut(base, block.Start, block.End))
}

// Intersect returns the parts of base covered by the window, keeping their tags
func Intersect(base []Interval, window Interval) []Interval {
	result := make([]Interval, 0)
	for _, b := range base {
		if !b.overlaps(window.Start, window.End) {
			continue
		}
		result = append(result, Interval{
			Start:  max(b.Start, window.Start),
			End:    min(b.End, window.End),
			Status: b.Status,
			Reason: b.Reason,
		})
	}
	return sortIntervals(result)
}

// Flatten turns possibly overlapping intervals into a disjoint agenda.
// Intervals are laid in (Start, End) order, so on overlap the later-starting window wins.
func Flatten(intervals []Interval) []Interval {
	return Override(nil, sortedCopy(intervals))
}

// cut removes [start, end) from every interval, keeping the left and right remainders
func cut(base []Interval, start, end int) []Interval {
	result := make([]Interval, 0, len(base)+1)
	for _, b := range base {
		if !b.overlaps(start, end) {
			result = append(result, b)
			continue
		}
		if b.Start < start {
			left := b
			left.End = start
			result = append(result, left)
		}
		if b.End > end {
			right := b
			right.Start = end
			result = append(result, right)
		}
	}
	return result
}

func copyIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}
	out := make([]Interval, len(intervals))
	copy(out, intervals)
	return out
}

func sortedCopy(intervals []Interval) []Interval {
	return sortIntervals(copyIntervals(intervals))
}

func sortIntervals(intervals []Interval) []Interval {
	sort.SliceStable(intervals, func(a, b int) bool {
		if intervals[a].Start != intervals[b].Start {
			return intervals[a].Start < intervals[b].Start
		}
		return intervals[a].End < intervals[b].End
	})
	return intervals
}
