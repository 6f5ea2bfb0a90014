package patreon

import "time"

// Campaign is a creator's page. Most other resources point back at one.
type Campaign struct {
	ID                   string     `json:"id" patreon:"optional"`
	CreatedAt            time.Time  `json:"created_at"`
	CreationName         *string    `json:"creation_name" patreon:"optional"`
	DiscordServerID      *string    `json:"discord_server_id" patreon:"optional"`
	GoogleAnalyticsID    *string    `json:"google_analytics_id" patreon:"optional"`
	HasRSS               bool       `json:"has_rss"`
	HasSentRSSNotify     bool       `json:"has_sent_rss_notify"`
	ImageSmallURL        string     `json:"image_small_url"`
	ImageURL             string     `json:"image_url"`
	IsChargedImmediately *bool      `json:"is_charged_immediately" patreon:"optional"`
	IsMonthly            bool       `json:"is_monthly"`
	IsNSFW               bool       `json:"is_nsfw"`
	MainVideoEmbed       *string    `json:"main_video_embed" patreon:"optional"`
	MainVideoURL         *string    `json:"main_video_url" patreon:"optional"`
	OneLiner             *string    `json:"one_liner" patreon:"optional"`
	PatronCount          int        `json:"patron_count"`
	PayPerName           *string    `json:"pay_per_name" patreon:"optional"`
	PledgeURL            string     `json:"pledge_url"`
	PublishedAt          *time.Time `json:"published_at" patreon:"optional"`
	RSSArtworkURL        *string    `json:"rss_artwork_url" patreon:"optional"`
	RSSFeedTitle         string     `json:"rss_feed_title"`
	ShowEarnings         bool       `json:"show_earnings"`
	Summary              *string    `json:"summary" patreon:"optional"`
	ThanksEmbed          *string    `json:"thanks_embed" patreon:"optional"`
	ThanksMsg            *string    `json:"thanks_msg" patreon:"optional"`
	ThanksVideoURL       *string    `json:"thanks_video_url" patreon:"optional"`
	URL                  string     `json:"url"`
	Vanity               *string    `json:"vanity" patreon:"optional"`

	Benefits Refs[Benefit] `json:"benefits" patreon:"optional"`
	Creator  Ref[User]     `json:"creator" patreon:"optional"`
	Goals    Refs[Goal]    `json:"goals" patreon:"optional"`
	Tiers    Refs[Tier]    `json:"tiers" patreon:"optional"`
}

func (Campaign) kind() Kind { return KindCampaign }
func (c Campaign) id() string { return c.ID }

func (c *Campaign) UnmarshalJSON(data []byte) error {
	return unmarshal(data, c)
}
