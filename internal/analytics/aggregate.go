package analytics

import (
	"sort"

	"listlens/internal/model"
)

const topN = 10

// counter is a frequency counter that remembers first-seen order so that
// equal counts rank deterministically.
type counter struct {
	counts map[string]int
	order  map[string]int
	next   int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int), order: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order[key] = c.next
		c.next++
	}
	c.counts[key]++
}

type entry struct {
	key   string
	count int
}

// top returns up to n entries sorted by count descending, ties broken by
// first-seen order.
func (c *counter) top(n int) []entry {
	keys := make([]string, 0, len(c.counts))
	for k := range c.counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if c.counts[a] != c.counts[b] {
			return c.counts[a] > c.counts[b]
		}
		return c.order[a] < c.order[b]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	out := make([]entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, entry{key: k, count: c.counts[k]})
	}
	return out
}

// Aggregate computes batch analytics. Hashtag, mention, and language counts
// come from every parsed entry, before the empty-content filter; the
// engagement rate averages over surviving posts only. Both choices match
// the richer upstream schema. Pure function of its inputs.
func Aggregate(parsed, kept []model.Post) model.Analytics {
	hashtags := newCounter()
	mentions := newCounter()
	languages := make(map[string]int)
	for _, p := range parsed {
		for _, tag := range p.Hashtags {
			hashtags.add(tag)
		}
		for _, user := range p.MentionedUsers {
			mentions.add(user)
		}
		languages[p.Language]++
	}

	topTags := make([]model.TagCount, 0, topN)
	for _, e := range hashtags.top(topN) {
		topTags = append(topTags, model.TagCount{Tag: e.key, Count: e.count})
	}
	topUsers := make([]model.UserCount, 0, topN)
	for _, e := range mentions.top(topN) {
		topUsers = append(topUsers, model.UserCount{User: e.key, Count: e.count})
	}

	return model.Analytics{
		TopHashtags:       topTags,
		TopMentionedUsers: topUsers,
		EngagementRate:    EngagementRate(kept),
		PostsByLanguage:   languages,
	}
}

// EngagementRate is the arithmetic mean of per-post engagement scores.
// An empty batch yields 0, never NaN.
func EngagementRate(posts []model.Post) float64 {
	if len(posts) == 0 {
		return 0
	}
	total := 0
	for _, p := range posts {
		total += model.EngagementScore(p)
	}
	return float64(total) / float64(len(posts))
}
