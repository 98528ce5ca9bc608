// Package leads scores author profiles for business relevance and drafts
// outreach angles from their recent posts.
package leads

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"listlens/internal/model"
	"listlens/internal/util"
)

// minDescriptionLen is the shortest profile description considered
// substantive enough to judge.
const minDescriptionLen = 10

var businessTerms = []string{
	"ceo", "founder", "director", "vp", "head of", "manager", "lead", "business", "company",
}

var interestPattern = regexp.MustCompile(`(?i)(ai|machine learning|data|cloud|security|automation|digital transformation|innovation)`)

// maxLeads caps the ranked lead list.
const maxLeads = 5

// recentActivityLimit caps how many posts a lead carries as evidence.
const recentActivityLimit = 3

// Lead is one business-relevant author with supporting activity.
type Lead struct {
	User              model.UserProfile `json:"user"`
	RelevanceScore    int               `json:"relevanceScore"`
	RecentActivity    []model.Post      `json:"recentActivity"`
	SuggestedApproach string            `json:"suggestedApproach"`
}

// IsPotentialLead reports whether a profile looks business-relevant: the
// description must be substantive, and the profile must either carry a
// website or mention a business role. Pure and total.
func IsPotentialLead(user model.UserProfile, posts []model.Post) bool {
	if len(user.Description) <= minDescriptionLen {
		return false
	}
	if user.URL != "" {
		return true
	}
	return util.ContainsAnyCaseInsensitive(user.Description, businessTerms)
}

// SuggestApproach scans the author's post content for known interest
// keywords and returns a templated outreach angle. Matches are deduplicated
// keeping first-seen order; no match yields a generic fallback.
func SuggestApproach(user model.UserProfile, posts []model.Post) string {
	interests := Interests(posts)
	if len(interests) == 0 {
		return "General technology and innovation approach recommended"
	}
	return fmt.Sprintf("Approach focusing on their interest in %s. Consider highlighting our solutions in these areas.", strings.Join(interests, ", "))
}

// Rank finds potential leads in a cleaned batch: authors are deduplicated by
// screen name, gated by IsPotentialLead, scored by their total engagement,
// and the top few are returned with recent activity and an approach.
func Rank(posts []model.Post) []Lead {
	byAuthor := make(map[string][]model.Post)
	order := make([]string, 0)
	for _, p := range posts {
		key := p.Owner.ScreenName
		if _, ok := byAuthor[key]; !ok {
			order = append(order, key)
		}
		byAuthor[key] = append(byAuthor[key], p)
	}

	out := make([]Lead, 0, len(order))
	for _, key := range order {
		authorPosts := byAuthor[key]
		user := authorPosts[0].Owner
		if !IsPotentialLead(user, authorPosts) {
			continue
		}
		score := 0
		for _, p := range authorPosts {
			score += model.EngagementScore(p)
		}
		recent := authorPosts
		if len(recent) > recentActivityLimit {
			recent = recent[:recentActivityLimit]
		}
		out = append(out, Lead{
			User:              user,
			RelevanceScore:    score,
			RecentActivity:    recent,
			SuggestedApproach: SuggestApproach(user, authorPosts),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RelevanceScore > out[j].RelevanceScore })
	if len(out) > maxLeads {
		out = out[:maxLeads]
	}
	return out
}

// Interests returns the deduplicated interest keywords found in the posts,
// first-seen order. Used by the dashboard contributor view.
func Interests(posts []model.Post) []string {
	var sb strings.Builder
	for _, p := range posts {
		sb.WriteString(strings.ToLower(p.Content))
		sb.WriteString(" ")
	}
	matches := interestPattern.FindAllString(sb.String(), -1)
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.ToLower(m)
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}
