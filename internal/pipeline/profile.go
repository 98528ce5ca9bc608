package pipeline

import (
	"time"

	"listlens/internal/model"
	"listlens/internal/rawjson"
)

// platformTimeLayout is the legacy created_at format used across the
// timeline payload ("Mon Jan 02 15:04:05 -0700 2006").
const platformTimeLayout = time.RubyDate

// ExtractProfile maps a raw user-result object onto the canonical profile
// record. It is total: every field has a default, so an empty or absent user
// object still yields a complete profile.
func ExtractProfile(user map[string]any, now time.Time) model.UserProfile {
	legacy := rawjson.Map(user, "legacy")
	return model.UserProfile{
		ScreenName:      rawjson.String(legacy, "unknown", "screen_name"),
		Name:            rawjson.String(legacy, "Unknown", "name"),
		Description:     rawjson.String(legacy, "", "description"),
		FollowersCount:  rawjson.Int(legacy, 0, "followers_count"),
		FollowingCount:  rawjson.Int(legacy, 0, "friends_count"),
		Location:        rawjson.String(legacy, "", "location"),
		URL:             rawjson.String(legacy, "", "url"),
		IsVerified:      rawjson.Bool(user, false, "is_blue_verified"),
		ProfileImageURL: rawjson.String(legacy, "", "profile_image_url_https"),
		CreatedAt:       normalizeTime(rawjson.String(legacy, "", "created_at"), now),
	}
}

// normalizeTime converts a legacy platform timestamp to RFC3339, falling
// back to the normalization time when the source value is absent or does
// not parse.
func normalizeTime(raw string, now time.Time) string {
	if raw == "" {
		return now.UTC().Format(time.RFC3339)
	}
	t, err := time.Parse(platformTimeLayout, raw)
	if err != nil {
		return now.UTC().Format(time.RFC3339)
	}
	return t.UTC().Format(time.RFC3339)
}
