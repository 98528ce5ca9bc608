package model

import (
	"encoding/json"
	"fmt"
)

// Mode selects which output schema a cleaning run produces.
type Mode string

const (
	// ModeRich emits a flat post list with full metrics and entities.
	ModeRich Mode = "rich"
	// ModeSimplified emits posts grouped by author profile URL with a
	// reduced per-post shape.
	ModeSimplified Mode = "simplified"
)

// ParseMode validates a mode string from config or flags.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRich, ModeSimplified:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown pipeline mode %q", s)
}

// UserProfile is the canonical author record. It is a value type: every
// post carries its own copy.
type UserProfile struct {
	ScreenName      string `json:"screenName"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	FollowersCount  int    `json:"followersCount"`
	FollowingCount  int    `json:"followingCount"`
	Location        string `json:"location"`
	URL             string `json:"url,omitempty"`
	IsVerified      bool   `json:"isVerified"`
	ProfileImageURL string `json:"profileImageUrl"`
	CreatedAt       string `json:"createdAt"`
}

// PostMetrics holds per-post engagement counts. Views is optional in the
// source payload.
type PostMetrics struct {
	Likes    int  `json:"likes"`
	Retweets int  `json:"retweets"`
	Replies  int  `json:"replies"`
	Quotes   int  `json:"quotes"`
	Views    *int `json:"views,omitempty"`
}

// URLEntity is one expanded link from the post entities.
type URLEntity struct {
	URL         string `json:"url"`
	ExpandedURL string `json:"expandedUrl"`
	DisplayURL  string `json:"displayUrl"`
}

// Post is the canonical normalized post record.
type Post struct {
	Content        string      `json:"content"`
	Owner          UserProfile `json:"owner"`
	PublishDate    string      `json:"publishDate"`
	Metrics        PostMetrics `json:"metrics"`
	URLs           []URLEntity `json:"urls"`
	MentionedUsers []string    `json:"mentionedUsers"`
	Hashtags       []string    `json:"hashtags"`
	IsReply        bool        `json:"isReply"`
	IsRetweet      bool        `json:"isRetweet"`
	Language       string      `json:"language"`
}

// TagCount is one hashtag frequency entry.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// UserCount is one mentioned-user frequency entry.
type UserCount struct {
	User  string `json:"user"`
	Count int    `json:"count"`
}

// Analytics is recomputed on every run and never persisted on its own.
type Analytics struct {
	TopHashtags       []TagCount     `json:"topHashtags"`
	TopMentionedUsers []UserCount    `json:"topMentionedUsers"`
	EngagementRate    float64        `json:"engagementRate"`
	PostsByLanguage   map[string]int `json:"postsByLanguage"`
}

// CleanedData is the output of one cleaning run. It is immutable after
// construction. Posts always holds the flat surviving list regardless of
// mode; Grouped is populated in simplified mode. The wire shape depends on
// Mode (see MarshalJSON).
type CleanedData struct {
	Mode      Mode
	Posts     []Post
	Grouped   map[string][]Post
	CleanedAt string
	Analytics Analytics
}

// simplifiedPost is the reduced per-post wire shape of the grouped schema.
type simplifiedPost struct {
	Content          string      `json:"content"`
	Owner            UserProfile `json:"owner"`
	PublishDate      string      `json:"publishDate"`
	AuthorProfileURL string      `json:"authorProfileUrl"`
}

type flatEnvelope struct {
	Posts      []Post    `json:"posts"`
	TotalPosts int       `json:"totalPosts"`
	CleanedAt  string    `json:"cleanedAt"`
	Analytics  Analytics `json:"analytics"`
}

type groupedEnvelope struct {
	GroupedPosts         map[string][]simplifiedPost `json:"groupedPosts"`
	TotalIndividualPosts int                         `json:"totalIndividualPosts"`
	CleanedAt            string                      `json:"cleanedAt"`
	Analytics            Analytics                   `json:"analytics"`
}

// MarshalJSON emits the flat schema ({posts, totalPosts, ...}) in rich mode
// and the grouped schema ({groupedPosts, totalIndividualPosts, ...}) in
// simplified mode. Totals always equal the surviving post count.
func (d CleanedData) MarshalJSON() ([]byte, error) {
	if d.Mode == ModeSimplified {
		grouped := make(map[string][]simplifiedPost, len(d.Grouped))
		for key, posts := range d.Grouped {
			out := make([]simplifiedPost, 0, len(posts))
			for _, p := range posts {
				out = append(out, simplifiedPost{
					Content:          p.Content,
					Owner:            p.Owner,
					PublishDate:      p.PublishDate,
					AuthorProfileURL: key,
				})
			}
			grouped[key] = out
		}
		return json.Marshal(groupedEnvelope{
			GroupedPosts:         grouped,
			TotalIndividualPosts: len(d.Posts),
			CleanedAt:            d.CleanedAt,
			Analytics:            d.Analytics,
		})
	}
	return json.Marshal(flatEnvelope{
		Posts:      d.Posts,
		TotalPosts: len(d.Posts),
		CleanedAt:  d.CleanedAt,
		Analytics:  d.Analytics,
	})
}

// UnmarshalJSON accepts either wire shape and restores the in-memory value.
func (d *CleanedData) UnmarshalJSON(b []byte) error {
	var probe struct {
		GroupedPosts map[string][]Post `json:"groupedPosts"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return err
	}
	if probe.GroupedPosts != nil {
		var env struct {
			GroupedPosts map[string][]Post `json:"groupedPosts"`
			CleanedAt    string            `json:"cleanedAt"`
			Analytics    Analytics         `json:"analytics"`
		}
		if err := json.Unmarshal(b, &env); err != nil {
			return err
		}
		d.Mode = ModeSimplified
		d.Grouped = env.GroupedPosts
		d.CleanedAt = env.CleanedAt
		d.Analytics = env.Analytics
		d.Posts = nil
		for _, posts := range env.GroupedPosts {
			d.Posts = append(d.Posts, posts...)
		}
		return nil
	}
	var env flatEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}
	d.Mode = ModeRich
	d.Posts = env.Posts
	d.Grouped = nil
	d.CleanedAt = env.CleanedAt
	d.Analytics = env.Analytics
	return nil
}
