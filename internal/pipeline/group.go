package pipeline

import "listlens/internal/model"

// Group buckets posts by the author's canonical profile URL. Posts keep
// their relative order within each bucket, and a key exists only when the
// author has at least one surviving post.
func Group(posts []model.Post, baseURL string) map[string][]model.Post {
	grouped := make(map[string][]model.Post)
	for _, p := range posts {
		key := model.ProfileURL(baseURL, p.Owner.ScreenName)
		grouped[key] = append(grouped[key], p)
	}
	return grouped
}
