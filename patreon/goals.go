package patreon

import "time"

type Goal struct {
	ID                  string     `json:"id" patreon:"optional"`
	AmountCents         int64      `json:"amount_cents"`
	CompletedPercentage int        `json:"completed_percentage"`
	CreatedAt           time.Time  `json:"created_at"`
	Description         *string    `json:"description" patreon:"optional"`
	ReachedAt           *time.Time `json:"reached_at" patreon:"optional"`
	Title               string     `json:"title"`

	Campaign Ref[Campaign] `json:"campaign" patreon:"optional"`
}

func (Goal) kind() Kind { return KindGoal }
func (g Goal) id() string { return g.ID }

func (g *Goal) UnmarshalJSON(data []byte) error {
	return unmarshal(data, g)
}
