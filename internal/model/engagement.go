package model

// EngagementScore is a weighted sum of a post's engagement counts. Weights
// are fixed: replies count triple, retweets and quotes double.
func EngagementScore(p Post) int {
	m := p.Metrics
	return m.Likes + 2*m.Retweets + 3*m.Replies + 2*m.Quotes
}

// ProfileURL derives the canonical author profile URL used as the grouping
// key in simplified mode.
func ProfileURL(baseURL, screenName string) string {
	return baseURL + "/" + screenName
}
