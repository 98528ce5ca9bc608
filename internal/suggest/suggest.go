// Package suggest drafts per-author icebreakers from a cleaned batch. Each
// author gets one line based on their first surviving post; an LLM provider
// can optionally upgrade the heuristic draft.
package suggest

import (
	"context"
	"fmt"
	"sort"

	"listlens/internal/config"
	"listlens/internal/model"
	"listlens/internal/pipeline"
	"listlens/internal/util"
)

// Summary is the JSON document handed to downstream consumers: the full
// cleaned batch plus one icebreaker per author profile URL.
type Summary struct {
	CleanedSocialData    model.CleanedData `json:"cleanedSocialData"`
	SuggestedIcebreakers map[string]string `json:"suggestedIcebreakers"`
}

// Icebreakers produces one opener per author, keyed by profile URL. Authors
// without posts never appear. LLM failures fall back to the heuristic draft
// rather than failing the batch.
func Icebreakers(ctx context.Context, data model.CleanedData, llm config.LLMConfig, baseURL string) map[string]string {
	grouped := data.Grouped
	if grouped == nil {
		grouped = pipeline.Group(data.Posts, baseURL)
	}
	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]string, len(keys))
	for _, key := range keys {
		posts := grouped[key]
		if len(posts) == 0 {
			continue
		}
		first := posts[0]
		draft := heuristicIcebreaker(first)
		if upgraded, err := DraftWithLLM(ctx, llm, first, draft); err == nil {
			draft = upgraded
		}
		out[key] = draft
	}
	return out
}

// BuildSummary pairs a cleaned batch with its icebreakers.
func BuildSummary(data model.CleanedData, icebreakers map[string]string) Summary {
	if icebreakers == nil {
		icebreakers = map[string]string{}
	}
	return Summary{CleanedSocialData: data, SuggestedIcebreakers: icebreakers}
}

func heuristicIcebreaker(p model.Post) string {
	topic := util.TrimRunes(util.NormalizeWhitespace(p.Content), 80)
	return fmt.Sprintf("Saw your post about \"%s\" - really interesting take. Curious how that's been going for you.", topic)
}
