package patreon

import "time"

// PledgeEvent records one change to a patron's pledge.
type PledgeEvent struct {
	ID            string       `json:"id" patreon:"optional"`
	AmountCents   int64        `json:"amount_cents"`
	CurrencyCode  string       `json:"currency_code"`
	Date          time.Time    `json:"date"`
	PaymentStatus ChargeStatus `json:"payment_status"`
	TierID        string       `json:"tier_id"`
	TierTitle     string       `json:"tier_title"`
	Type          PledgeType   `json:"type"`

	Campaign Ref[Campaign] `json:"campaign" patreon:"optional"`
	Patron   Ref[User]     `json:"patron" patreon:"optional"`
	Tier     Ref[Tier]     `json:"tier" patreon:"optional"`
}

func (PledgeEvent) kind() Kind { return KindPledgeEvent }
func (p PledgeEvent) id() string { return p.ID }

func (p *PledgeEvent) UnmarshalJSON(data []byte) error {
	return unmarshal(data, p)
}
