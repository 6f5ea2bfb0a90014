package patreon

import "time"

// Benefit is a reward a campaign offers to patrons of one or more tiers.
type Benefit struct {
	ID                            string     `json:"id" patreon:"optional"`
	AppExternalID                 *string    `json:"app_external_id" patreon:"optional"`
	AppMeta                       any        `json:"app_meta" patreon:"optional"`
	BenefitType                   *string    `json:"benefit_type" patreon:"optional"`
	CreatedAt                     time.Time  `json:"created_at"`
	DeliverablesDueTodayCount     int        `json:"deliverables_due_today_count"`
	DeliveredDeliverablesCount    int        `json:"delivered_deliverables_count"`
	Description                   *string    `json:"description" patreon:"optional"`
	IsDeleted                     *bool      `json:"is_deleted" patreon:"optional"`
	IsEnded                       bool       `json:"is_ended"`
	IsPublished                   bool       `json:"is_published"`
	NextDeliverableDueDate        *time.Time `json:"next_deliverable_due_date" patreon:"optional"`
	NotDeliveredDeliverablesCount int        `json:"not_delivered_deliverables_count"`
	RuleType                      *string    `json:"rule_type" patreon:"optional"`
	TiersCount                    int        `json:"tiers_count"`
	Title                         string     `json:"title"`

	Campaign             Ref[Campaign]     `json:"campaign" patreon:"optional"`
	CampaignInstallation any               `json:"campaign_installation" patreon:"optional"`
	Deliverables         Refs[Deliverable] `json:"deliverables" patreon:"optional"`
	Tiers                Refs[Tier]        `json:"tiers" patreon:"optional"`
}

func (Benefit) kind() Kind { return KindBenefit }
func (b Benefit) id() string { return b.ID }

func (b *Benefit) UnmarshalJSON(data []byte) error {
	return unmarshal(data, b)
}
