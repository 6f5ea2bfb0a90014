package http

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/willmadison/patreon-sync-tools/patreon"
)

const timestamp = "2017-12-01T16:33:48+00:00"

func memberResource(id, name, campaignID, status string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"type": "member",
		"attributes": {
			"campaign_lifetime_support_cents": 12000,
			"currently_entitled_amount_cents": 500,
			"lifetime_support_cents": 12000,
			"will_pay_amount_cents": 500,
			"email": "patron@example.com",
			"full_name": %q,
			"is_follower": false,
			"last_charge_date": %q,
			"last_charge_status": "paid",
			"note": "",
			"patron_status": %s,
			"pledge_cadence": 1
		},
		"relationships": {
			"campaign": {"data": {"id": %q, "type": "campaign"}},
			"user": {"data": {"id": "user-1", "type": "user"}}
		}
	}`, id, name, timestamp, status, campaignID)
}

const userResource = `{
	"id": "user-1",
	"type": "user",
	"attributes": {
		"created": "2017-12-01T16:33:48+00:00",
		"email": "patron@example.com",
		"full_name": "Ada Lovelace",
		"image_url": "https://c8.patreon.com/ada.png",
		"is_email_verified": true,
		"like_count": 3,
		"thumb_url": "https://c8.patreon.com/ada-thumb.png",
		"url": "https://www.patreon.com/ada"
	}
}`

const campaignResource = `{
	"id": "campaign-1",
	"type": "campaign",
	"attributes": {
		"created_at": "2017-12-01T16:33:48+00:00",
		"has_rss": true,
		"has_sent_rss_notify": false,
		"image_small_url": "https://c10.patreonusercontent.com/small.png",
		"image_url": "https://c10.patreonusercontent.com/large.png",
		"is_monthly": true,
		"is_nsfw": false,
		"patron_count": 1200,
		"pledge_url": "/join/example",
		"rss_feed_title": "Example feed",
		"show_earnings": true,
		"url": "https://www.patreon.com/example"
	}
}`

func member(t *testing.T, id, name, campaignID string, status patreon.PatronStatus) *patreon.Member {
	t.Helper()

	var patronStatus any
	if status != patreon.PatronStatusNone {
		patronStatus = string(status)
	}

	m, err := patreon.DecodeAs[patreon.Member](map[string]any{
		"id":                              id,
		"campaign_lifetime_support_cents": float64(12000),
		"currently_entitled_amount_cents": float64(500),
		"lifetime_support_cents":          float64(12000),
		"will_pay_amount_cents":           float64(500),
		"email":                           "patron@example.com",
		"full_name":                       name,
		"is_follower":                     false,
		"last_charge_status":              "paid",
		"note":                            "",
		"patron_status":                   patronStatus,
		"pledge_cadence":                  float64(1),
		"campaign":                        campaignID,
	})
	require.NoError(t, err)

	return &m
}
