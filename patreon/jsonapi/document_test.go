package jsonapi

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willmadison/patreon-sync-tools/patreon"
)

const memberDocument = `{
	"data": {
		"id": "member-1",
		"type": "member",
		"attributes": {
			"campaign_lifetime_support_cents": 12000,
			"currently_entitled_amount_cents": 500,
			"lifetime_support_cents": 12000,
			"will_pay_amount_cents": 500,
			"email": "ada@example.com",
			"full_name": "Ada Lovelace",
			"is_follower": false,
			"last_charge_date": "2017-12-01T16:33:48+00:00",
			"last_charge_status": "paid",
			"note": "",
			"patron_status": "active_patron",
			"pledge_cadence": 1
		},
		"relationships": {
			"address": {"data": {"id": "addr-1", "type": "address"}},
			"campaign": {"data": {"id": "campaign-1", "type": "campaign"}, "links": {"related": "https://www.patreon.com/api/oauth2/v2/campaigns/campaign-1"}},
			"currently_entitled_tiers": {"data": [{"id": "tier-1", "type": "tier"}, {"id": "tier-2", "type": "tier"}]},
			"pledge_history": {"data": []},
			"user": {"data": {"id": "user-1", "type": "user"}}
		}
	},
	"included": [
		{
			"id": "addr-1",
			"type": "address",
			"attributes": {"city": "London", "country": "GB", "created_at": "2017-12-01T16:33:48+00:00", "addressee": null}
		},
		{
			"id": "user-1",
			"type": "user",
			"attributes": {
				"created": "2017-01-01T00:00:00+00:00",
				"email": "ada@example.com",
				"full_name": "Ada Lovelace",
				"image_url": "https://c8.patreon.com/ada.png",
				"is_email_verified": true,
				"like_count": 7,
				"thumb_url": "https://c8.patreon.com/ada-thumb.png",
				"url": "https://www.patreon.com/ada"
			},
			"relationships": {
				"memberships": {"data": [{"id": "member-1", "type": "member"}]},
				"campaign": {"data": null}
			}
		},
		{
			"id": "tier-1",
			"type": "tier",
			"attributes": {
				"amount_cents": 500,
				"created_at": "2017-01-01T00:00:00+00:00",
				"description": "Support the work",
				"edited_at": "2017-06-01T00:00:00+00:00",
				"patron_count": 300,
				"published": true,
				"requires_shipping": false,
				"title": "Supporter",
				"url": "/join/example/checkout?rid=1"
			}
		}
	],
	"meta": {"pagination": {"total": 1, "cursors": {"next": null}}}
}`

func TestFlatten(t *testing.T) {
	doc, err := Parse(strings.NewReader(memberDocument))
	require.NoError(t, err)

	resources, err := doc.Resources()
	require.NoError(t, err)
	require.Len(t, resources, 1)

	raw := doc.Flatten(resources[0])

	assert.Equal(t, "member-1", raw["id"])
	assert.Equal(t, json.Number("12000"), raw["campaign_lifetime_support_cents"])

	want := map[string]any{
		"id":         "addr-1",
		"city":       "London",
		"country":    "GB",
		"created_at": "2017-12-01T16:33:48+00:00",
		"addressee":  nil,
	}
	if diff := cmp.Diff(want, raw["address"]); diff != "" {
		t.Errorf("address mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, map[string]any{"id": "campaign-1", "type": "campaign"}, raw["campaign"])
	assert.Equal(t, []any{}, raw["pledge_history"])

	tiers := raw["currently_entitled_tiers"].([]any)
	require.Len(t, tiers, 2)
	assert.Equal(t, "Supporter", tiers[0].(map[string]any)["title"])
	assert.Equal(t, map[string]any{"id": "tier-2", "type": "tier"}, tiers[1])

	// the user links back to the member being flattened: that edge stays a linkage
	user := raw["user"].(map[string]any)
	assert.Equal(t, []any{map[string]any{"id": "member-1", "type": "member"}}, user["memberships"])
	assert.Contains(t, user, "campaign")
	assert.Nil(t, user["campaign"])
}

func TestFlattenDecodes(t *testing.T) {
	doc, err := Parse(strings.NewReader(memberDocument))
	require.NoError(t, err)

	flattened, err := doc.FlattenAll()
	require.NoError(t, err)
	require.Len(t, flattened, 1)

	member, err := patreon.DecodeAs[patreon.Member](flattened[0])
	require.NoError(t, err)

	assert.True(t, member.PatronStatus.IsSuccessful())

	address, err := member.Address.Get()
	require.NoError(t, err)
	assert.Equal(t, "London", address.City)

	assert.Equal(t, "campaign-1", member.Campaign.ID())
	_, err = member.Campaign.Get()
	assert.ErrorIs(t, err, patreon.ErrUnresolvedReference)

	assert.Equal(t, []string{"tier-1", "tier-2"}, member.CurrentlyEntitledTiers.IDs())
	assert.True(t, member.PledgeHistory.Loaded())
	assert.Equal(t, 0, member.PledgeHistory.Len())
}

// connectedDocument is a campaign whose n tiers each link every one of n
// benefits, and whose benefits link back to every tier.
func connectedDocument(n int) string {
	linkages := func(kind string) string {
		items := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			items = append(items, fmt.Sprintf(`{"id": "%s-%d", "type": %q}`, kind, i, kind))
		}
		return "[" + strings.Join(items, ", ") + "]"
	}

	var included []string
	for i := 1; i <= n; i++ {
		included = append(included,
			fmt.Sprintf(`{"id": "tier-%d", "type": "tier", "attributes": {"title": "Tier %d"}, "relationships": {"benefits": {"data": %s}}}`, i, i, linkages("benefit")),
			fmt.Sprintf(`{"id": "benefit-%d", "type": "benefit", "attributes": {"title": "Benefit %d"}, "relationships": {"tiers": {"data": %s}}}`, i, i, linkages("tier")),
		)
	}

	return fmt.Sprintf(`{
		"data": {"id": "campaign-1", "type": "campaign", "relationships": {"tiers": {"data": %s}}},
		"included": [%s]
	}`, linkages("tier"), strings.Join(included, ", "))
}

func countMaps(v any) int {
	switch x := v.(type) {
	case map[string]any:
		n := 1
		for _, e := range x {
			n += countMaps(e)
		}
		return n
	case []any:
		var n int
		for _, e := range x {
			n += countMaps(e)
		}
		return n
	}
	return 0
}

func TestFlattenEmbedsEachResourceOnce(t *testing.T) {
	const n = 12

	doc, err := Parse(strings.NewReader(connectedDocument(n)))
	require.NoError(t, err)

	resources, err := doc.Resources()
	require.NoError(t, err)

	raw := doc.Flatten(resources[0])

	// one map for the campaign plus exactly one per relationship edge
	edges := n + n*n + n*n
	assert.Equal(t, 1+edges, countMaps(raw))

	tiers := raw["tiers"].([]any)
	require.Len(t, tiers, n)
	for i, tier := range tiers {
		assert.Equal(t, fmt.Sprintf("Tier %d", i+1), tier.(map[string]any)["title"])
	}

	first := tiers[0].(map[string]any)["benefits"].([]any)
	assert.Equal(t, "Benefit 1", first[0].(map[string]any)["title"])
	assert.Equal(t, map[string]any{"id": "tier-1", "type": "tier"}, first[0].(map[string]any)["tiers"].([]any)[0])

	second := tiers[1].(map[string]any)["benefits"].([]any)
	assert.Equal(t, map[string]any{"id": "benefit-1", "type": "benefit"}, second[0])
}

func TestFlattenPassesMalformedLinkages(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		path string
	}{
		{
			name: "number",
			from: `"address": {"data": {"id": "addr-1", "type": "address"}}`,
			to:   `"address": {"data": 42}`,
			path: "address",
		},
		{
			name: "boolean",
			from: `"user": {"data": {"id": "user-1", "type": "user"}}`,
			to:   `"user": {"data": true}`,
			path: "user",
		},
		{
			name: "list element",
			from: `"currently_entitled_tiers": {"data": [{"id": "tier-1", "type": "tier"}, {"id": "tier-2", "type": "tier"}]}`,
			to:   `"currently_entitled_tiers": {"data": [5]}`,
			path: "currently_entitled_tiers[0]",
		},
		{
			name: "list as object",
			from: `"pledge_history": {"data": []}`,
			to:   `"pledge_history": {"data": {"count": 0}}`,
			path: "pledge_history",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.Replace(memberDocument, tt.from, tt.to, 1)
			require.NotEqual(t, memberDocument, body)

			doc, err := Parse(strings.NewReader(body))
			require.NoError(t, err)

			flattened, err := doc.FlattenAll()
			require.NoError(t, err)

			field := strings.SplitN(tt.path, "[", 2)[0]
			assert.Contains(t, flattened[0], field)

			_, err = patreon.Decode(patreon.KindMember, flattened[0])
			require.ErrorIs(t, err, patreon.ErrTypeMismatch)

			var verr *patreon.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.path, verr.Path)
		})
	}
}

func TestResources(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"single", `{"data": {"id": "1", "type": "post"}}`, []string{"1"}},
		{"array", `{"data": [{"id": "1", "type": "post"}, {"id": "2", "type": "post"}]}`, []string{"1", "2"}},
		{"null", `{"data": null}`, nil},
		{"absent", `{"errors": []}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(strings.NewReader(tt.body))
			require.NoError(t, err)

			resources, err := doc.Resources()
			require.NoError(t, err)

			var ids []string
			for _, res := range resources {
				ids = append(ids, res.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestNextCursor(t *testing.T) {
	doc, err := Parse(strings.NewReader(`{"data": [], "meta": {"pagination": {"total": 40, "cursors": {"next": "abc"}}}}`))
	require.NoError(t, err)
	assert.Equal(t, "abc", doc.NextCursor())
	assert.Equal(t, 40, doc.Meta.Pagination.Total)

	doc, err = Parse(strings.NewReader(memberDocument))
	require.NoError(t, err)
	assert.Equal(t, "", doc.NextCursor())
}

func TestErr(t *testing.T) {
	doc, err := Parse(strings.NewReader(`{"errors": [{"code": 1, "code_name": "Unauthorized", "status": "401", "title": "Unauthorized", "detail": "The server could not verify that you are authorized"}]}`))
	require.NoError(t, err)

	err = doc.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthorized")

	var apiErr Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "401", apiErr.Status)

	_, err = Parse(strings.NewReader(`{"data": `))
	assert.Error(t, err)
}
