package patreon

import "time"

// Post is a piece of campaign content. When Tiers is loaded the post is
// restricted to patrons of those tiers.
type Post struct {
	ID          string     `json:"id" patreon:"optional"`
	AppID       *int64     `json:"app_id" patreon:"optional"`
	AppStatus   *string    `json:"app_status" patreon:"optional"`
	Content     *string    `json:"content" patreon:"optional"`
	EmbedData   any        `json:"embed_data" patreon:"optional"`
	EmbedURL    *string    `json:"embed_url" patreon:"optional"`
	IsPaid      *bool      `json:"is_paid" patreon:"optional"`
	IsPublic    *bool      `json:"is_public" patreon:"optional"`
	Tiers       Refs[Tier] `json:"tiers" patreon:"optional"`
	PublishedAt *time.Time `json:"published_at" patreon:"optional"`
	Title       *string    `json:"title" patreon:"optional"`
	URL         string     `json:"url"`
}

func (Post) kind() Kind { return KindPost }
func (p Post) id() string { return p.ID }

func (p *Post) UnmarshalJSON(data []byte) error {
	return unmarshal(data, p)
}
