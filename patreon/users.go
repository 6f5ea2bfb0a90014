package patreon

import "time"

// User is a Patreon account, creator or patron.
type User struct {
	ID                string    `json:"id" patreon:"optional"`
	About             *string   `json:"about" patreon:"optional"`
	CanSeeNSFW        *bool     `json:"can_see_nsfw" patreon:"optional"`
	Created           time.Time `json:"created"`
	Email             string    `json:"email"`
	FirstName         *string   `json:"first_name" patreon:"optional"`
	LastName          *string   `json:"last_name" patreon:"optional"`
	FullName          string    `json:"full_name"`
	HidePledges       *bool     `json:"hide_pledges" patreon:"optional"`
	ImageURL          string    `json:"image_url"`
	IsEmailVerified   bool      `json:"is_email_verified"`
	LikeCount         int       `json:"like_count"`
	SocialConnections any       `json:"social_connections" patreon:"optional"`
	ThumbURL          string    `json:"thumb_url"`
	URL               string    `json:"url"`
	Vanity            *string   `json:"vanity" patreon:"optional"`

	Campaign    Ref[Campaign] `json:"campaign" patreon:"optional"`
	Memberships Refs[Member]  `json:"memberships" patreon:"optional"`
}

func (User) kind() Kind { return KindUser }
func (u User) id() string { return u.ID }

func (u *User) UnmarshalJSON(data []byte) error {
	return unmarshal(data, u)
}
