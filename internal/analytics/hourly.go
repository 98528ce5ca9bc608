package analytics

import (
	"sort"
	"time"

	"listlens/internal/model"
)

// HourlyPostCounts buckets posts into UTC hours by publish date. Posts whose
// publish date does not parse are skipped.
func HourlyPostCounts(posts []model.Post) map[time.Time]int {
	buckets := make(map[time.Time]int)
	for _, p := range posts {
		t, err := time.Parse(time.RFC3339, p.PublishDate)
		if err != nil {
			continue
		}
		t = t.UTC()
		key := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC)
		buckets[key]++
	}
	return buckets
}

// SortedBucketKeys returns bucket hours in ascending order.
func SortedBucketKeys(m map[time.Time]int) []time.Time {
	keys := make([]time.Time, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}

// PeakHour returns the busiest hour and its post count. Ties go to the
// earliest hour. ok is false when no bucket exists.
func PeakHour(m map[time.Time]int) (hour time.Time, count int, ok bool) {
	for _, k := range SortedBucketKeys(m) {
		if m[k] > count {
			hour, count, ok = k, m[k], true
		}
	}
	return hour, count, ok
}
