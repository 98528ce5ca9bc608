package analytics

import (
	"fmt"
	"reflect"
	"testing"

	"listlens/internal/model"
)

func postWith(tags []string, mentions []string, lang string, likes int) model.Post {
	return model.Post{
		Hashtags:       tags,
		MentionedUsers: mentions,
		Language:       lang,
		Metrics:        model.PostMetrics{Likes: likes},
	}
}

func TestAggregate(t *testing.T) {
	parsed := []model.Post{
		postWith([]string{"go", "infra"}, []string{"acme"}, "en", 4),
		postWith([]string{"go"}, nil, "en", 0),
		postWith([]string{"quiet"}, []string{"acme"}, "und", 0),
	}
	kept := parsed[:2]

	a := Aggregate(parsed, kept)

	wantTags := []model.TagCount{{Tag: "go", Count: 2}, {Tag: "infra", Count: 1}, {Tag: "quiet", Count: 1}}
	if !reflect.DeepEqual(a.TopHashtags, wantTags) {
		t.Fatalf("topHashtags = %+v, want %+v", a.TopHashtags, wantTags)
	}
	wantUsers := []model.UserCount{{User: "acme", Count: 2}}
	if !reflect.DeepEqual(a.TopMentionedUsers, wantUsers) {
		t.Fatalf("topMentionedUsers = %+v, want %+v", a.TopMentionedUsers, wantUsers)
	}
	if a.PostsByLanguage["en"] != 2 || a.PostsByLanguage["und"] != 1 {
		t.Fatalf("postsByLanguage = %+v", a.PostsByLanguage)
	}
	// rate covers kept posts only: (4 + 0) / 2
	if a.EngagementRate != 2 {
		t.Fatalf("engagementRate = %v", a.EngagementRate)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	parsed := []model.Post{postWith([]string{"go"}, []string{"acme"}, "en", 1)}
	first := Aggregate(parsed, parsed)
	second := Aggregate(parsed, parsed)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregate not idempotent: %+v vs %+v", first, second)
	}
}

func TestTopCapsAtTenWithStableTies(t *testing.T) {
	c := newCounter()
	for i := 0; i < 12; i++ {
		c.add(fmt.Sprintf("tag%02d", i))
	}
	c.add("tag11") // most frequent, seen last

	top := c.top(10)
	if len(top) != 10 {
		t.Fatalf("got %d entries, want 10", len(top))
	}
	if top[0].key != "tag11" || top[0].count != 2 {
		t.Fatalf("top[0] = %+v", top[0])
	}
	// remaining ties rank by first-seen order
	if top[1].key != "tag00" || top[9].key != "tag08" {
		t.Fatalf("tie order wrong: %+v", top)
	}
}

func TestEngagementRateEmpty(t *testing.T) {
	if rate := EngagementRate(nil); rate != 0 {
		t.Fatalf("rate = %v, want 0", rate)
	}
}
