package patreon

const timestamp = "2017-12-01T16:33:48+00:00"

// payloads returns a fresh, valid raw payload for every kind. Each call
// builds new maps so tests are free to mutate them.
func payloads() map[Kind]map[string]any {
	return map[Kind]map[string]any{
		KindAddress: {
			"id":         "addr-1",
			"addressee":  "Ada Lovelace",
			"city":       "London",
			"country":    "GB",
			"created_at": timestamp,
			"line_1":     "12 St James's Square",
		},
		KindBenefit: {
			"id":                               "benefit-1",
			"app_meta":                         map[string]any{"plan": "gold"},
			"created_at":                       timestamp,
			"deliverables_due_today_count":     float64(1),
			"delivered_deliverables_count":     float64(4),
			"is_ended":                         false,
			"is_published":                     true,
			"not_delivered_deliverables_count": float64(0),
			"tiers_count":                      float64(2),
			"title":                            "Sticker pack",
		},
		KindCampaign: {
			"id":                  "campaign-1",
			"created_at":          timestamp,
			"has_rss":             true,
			"has_sent_rss_notify": false,
			"image_small_url":     "https://c10.patreonusercontent.com/small.png",
			"image_url":           "https://c10.patreonusercontent.com/large.png",
			"is_monthly":          true,
			"is_nsfw":             false,
			"patron_count":        float64(1200),
			"pledge_url":          "/join/example",
			"rss_feed_title":      "Example feed",
			"show_earnings":       true,
			"url":                 "https://www.patreon.com/example",
			"vanity":              "example",
		},
		KindDeliverable: {
			"id":              "deliverable-1",
			"completed_at":    timestamp,
			"delivery_status": "delivered",
			"due_at":          timestamp,
		},
		KindGoal: {
			"id":                   "goal-1",
			"amount_cents":         float64(500000),
			"completed_percentage": float64(42),
			"created_at":           timestamp,
			"title":                "New microphone",
		},
		KindMedia: {
			"id":                 "media-1",
			"created_at":         timestamp,
			"download_url":       "https://www.patreon.com/media/1",
			"file_name":          "cover.png",
			"image_urls":         map[string]any{"default": "https://c10.patreonusercontent.com/cover.png"},
			"mimetype":           "image/png",
			"owner_id":           "tier-1",
			"owner_relationship": "image",
			"owner_type":         "reward",
			"size_bytes":         float64(20480),
			"state":              "ready",
			"upload_expires_at":  timestamp,
			"upload_url":         "https://upload.patreon.com/1",
		},
		KindMember: {
			"id":                              "member-1",
			"campaign_lifetime_support_cents": float64(12000),
			"currently_entitled_amount_cents": float64(500),
			"lifetime_support_cents":          float64(12000),
			"will_pay_amount_cents":           float64(500),
			"email":                           "ada@example.com",
			"full_name":                       "Ada Lovelace",
			"is_follower":                     false,
			"last_charge_date":                timestamp,
			"last_charge_status":              "paid",
			"note":                            "",
			"patron_status":                   "active_patron",
			"pledge_cadence":                  float64(1),
		},
		KindOAuthClient: {
			"id":            "client-1",
			"client_secret": "s3cret",
			"description":   "Sync tool",
			"name":          "patreon-sync",
			"redirect_uris": "https://example.com/callback",
			"version":       float64(2),
		},
		KindPledgeEvent: {
			"id":             "pledge-1",
			"amount_cents":   float64(500),
			"currency_code":  "USD",
			"date":           timestamp,
			"payment_status": "paid",
			"tier_id":        "tier-1",
			"tier_title":     "Supporter",
			"type":           "pledge_start",
		},
		KindPost: {
			"id":        "post-1",
			"title":     "Hello patrons",
			"is_public": false,
			"url":       "/posts/hello-patrons-1",
		},
		KindTier: {
			"id":                "tier-1",
			"amount_cents":      float64(500),
			"created_at":        timestamp,
			"description":       "Support the work",
			"edited_at":         timestamp,
			"patron_count":      float64(300),
			"published":         true,
			"requires_shipping": false,
			"title":             "Supporter",
			"url":               "/join/example/checkout?rid=1",
		},
		KindUser: {
			"id":                "user-1",
			"created":           timestamp,
			"email":             "ada@example.com",
			"full_name":         "Ada Lovelace",
			"image_url":         "https://c8.patreon.com/ada.png",
			"is_email_verified": true,
			"like_count":        float64(7),
			"thumb_url":         "https://c8.patreon.com/ada-thumb.png",
			"url":               "https://www.patreon.com/ada",
		},
		KindWebhook: {
			"id":                           "webhook-1",
			"last_attempted_at":            timestamp,
			"num_consecutive_times_failed": float64(0),
			"paused":                       false,
			"secret":                       "whsec",
			"triggers":                     []any{"members:create", "members:update"},
			"uri":                          "https://example.com/webhooks/patreon",
		},
	}
}
