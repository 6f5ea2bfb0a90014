package patreon

import "time"

// Deliverable is one scheduled fulfilment of a benefit for one member.
type Deliverable struct {
	ID             string         `json:"id" patreon:"optional"`
	CompletedAt    time.Time      `json:"completed_at"`
	DeliveryStatus DeliveryStatus `json:"delivery_status"`
	DueAt          time.Time      `json:"due_at"`

	Benefit  Ref[Benefit]  `json:"benefit" patreon:"optional"`
	Campaign Ref[Campaign] `json:"campaign" patreon:"optional"`
	Member   Ref[Member]   `json:"member" patreon:"optional"`
	User     Ref[User]     `json:"user" patreon:"optional"`
}

func (Deliverable) kind() Kind { return KindDeliverable }
func (d Deliverable) id() string { return d.ID }

func (d *Deliverable) UnmarshalJSON(data []byte) error {
	return unmarshal(data, d)
}
