package patreon

import "time"

// Address is a patron's shipping address.
type Address struct {
	ID          string    `json:"id" patreon:"optional"`
	Addressee   *string   `json:"addressee" patreon:"optional"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	CreatedAt   time.Time `json:"created_at"`
	Line1       *string   `json:"line_1" patreon:"optional"`
	Line2       *string   `json:"line_2" patreon:"optional"`
	PhoneNumber *string   `json:"phone_number" patreon:"optional"`
	PostalCode  *string   `json:"postal_code" patreon:"optional"`
	State       *string   `json:"state" patreon:"optional"`

	Campaigns Refs[Campaign] `json:"campaigns" patreon:"optional"`
	User      Ref[User]      `json:"user" patreon:"optional"`
}

func (Address) kind() Kind { return KindAddress }
func (a Address) id() string { return a.ID }

func (a *Address) UnmarshalJSON(data []byte) error {
	return unmarshal(data, a)
}
