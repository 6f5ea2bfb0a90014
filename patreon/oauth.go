package patreon

// OAuthClient is a registered API client.
type OAuthClient struct {
	ID               string  `json:"id" patreon:"optional"`
	AuthorName       *string `json:"author_name" patreon:"optional"`
	ClientSecret     string  `json:"client_secret"`
	Description      string  `json:"description"`
	Domain           *string `json:"domain" patreon:"optional"`
	IconURL          *string `json:"icon_url" patreon:"optional"`
	Name             string  `json:"name"`
	PrivacyPolicyURL *string `json:"privacy_policy_url" patreon:"optional"`
	RedirectURIs     string  `json:"redirect_uris"`
	TOSURL           *string `json:"tos_url" patreon:"optional"`
	Version          int     `json:"version"`
}

func (OAuthClient) kind() Kind { return KindOAuthClient }
func (c OAuthClient) id() string { return c.ID }

func (c *OAuthClient) UnmarshalJSON(data []byte) error {
	return unmarshal(data, c)
}
