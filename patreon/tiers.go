package patreon

import "time"

// Tier is a pledge level of a campaign.
type Tier struct {
	ID               string     `json:"id" patreon:"optional"`
	AmountCents      int64      `json:"amount_cents"`
	CreatedAt        time.Time  `json:"created_at"`
	Description      string     `json:"description"`
	DiscordRoleIDs   any        `json:"discord_role_ids" patreon:"optional"`
	EditedAt         time.Time  `json:"edited_at"`
	ImageURL         *string    `json:"image_url" patreon:"optional"`
	PatronCount      int        `json:"patron_count"`
	PostCount        *int       `json:"post_count" patreon:"optional"`
	Published        bool       `json:"published"`
	PublishedAt      *time.Time `json:"published_at" patreon:"optional"`
	Remaining        *int       `json:"remaining" patreon:"optional"`
	RequiresShipping bool       `json:"requires_shipping"`
	Title            string     `json:"title"`
	UnpublishedAt    *time.Time `json:"unpublished_at" patreon:"optional"`
	URL              string     `json:"url"`
	UserLimit        *int       `json:"user_limit" patreon:"optional"`

	Benefits  Refs[Benefit] `json:"benefits" patreon:"optional"`
	Campaign  Ref[Campaign] `json:"campaign" patreon:"optional"`
	TierImage Ref[Media]    `json:"tier_image" patreon:"optional"`
}

func (Tier) kind() Kind { return KindTier }
func (t Tier) id() string { return t.ID }

func (t *Tier) UnmarshalJSON(data []byte) error {
	return unmarshal(data, t)
}
