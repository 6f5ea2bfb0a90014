package patreon

import "time"

// Member is a patron's membership of a single campaign.
//
// PatronStatus must be present in the payload; null means the user never
// pledged and decodes to PatronStatusNone.
type Member struct {
	ID                           string       `json:"id" patreon:"optional"`
	CampaignLifetimeSupportCents int64        `json:"campaign_lifetime_support_cents"`
	CurrentlyEntitledAmountCents int64        `json:"currently_entitled_amount_cents"`
	LifetimeSupportCents         int64        `json:"lifetime_support_cents"`
	WillPayAmountCents           int64        `json:"will_pay_amount_cents"`
	Email                        string       `json:"email"`
	FullName                     string       `json:"full_name"`
	// IsFollower is a JSON boolean on the wire.
	IsFollower                   bool         `json:"is_follower"`
	LastChargeDate               *time.Time   `json:"last_charge_date" patreon:"optional"`
	LastChargeStatus             ChargeStatus `json:"last_charge_status"`
	NextChargeDate               *time.Time   `json:"next_charge_date" patreon:"optional"`
	Note                         string       `json:"note"`
	PatronStatus                 PatronStatus `json:"patron_status" patreon:"nullable"`
	PledgeCadence                int          `json:"pledge_cadence"`
	PledgeRelationshipStart      *time.Time   `json:"pledge_relationship_start" patreon:"optional"`

	Address                Ref[Address]      `json:"address" patreon:"optional"`
	Campaign               Ref[Campaign]     `json:"campaign" patreon:"optional"`
	CurrentlyEntitledTiers Refs[Tier]        `json:"currently_entitled_tiers" patreon:"optional"`
	PledgeHistory          Refs[PledgeEvent] `json:"pledge_history" patreon:"optional"`
	User                   Ref[User]         `json:"user" patreon:"optional"`
}

func (Member) kind() Kind { return KindMember }
func (m Member) id() string { return m.ID }

func (m *Member) UnmarshalJSON(data []byte) error {
	return unmarshal(data, m)
}
