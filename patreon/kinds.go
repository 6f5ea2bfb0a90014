package patreon

import "reflect"

// Kind names a resource type the way the API spells it in a resource's
// "type" member.
type Kind string

const (
	KindAddress     Kind = "address"
	KindBenefit     Kind = "benefit"
	KindCampaign    Kind = "campaign"
	KindDeliverable Kind = "deliverable"
	KindGoal        Kind = "goal"
	KindMedia       Kind = "media"
	KindMember      Kind = "member"
	KindOAuthClient Kind = "client"
	KindPledgeEvent Kind = "pledge-event"
	KindPost        Kind = "post"
	KindTier        Kind = "tier"
	KindUser        Kind = "user"
	KindWebhook     Kind = "webhook"
)

// Entity is implemented by every resource record declared in this package.
type Entity interface {
	kind() Kind
	id() string
}

// KindOf returns the resource kind of e.
func KindOf(e Entity) Kind {
	return e.kind()
}

// IDOf returns the identifier e was decoded with, or "" when the payload
// carried none.
func IDOf(e Entity) string {
	return e.id()
}

// kindOf names the kind of entity struct T. Pointer and non-entity types
// have no kind.
func kindOf[T any]() Kind {
	if reflect.TypeFor[T]().Kind() == reflect.Pointer {
		return ""
	}

	var zero T
	if e, ok := any(zero).(Entity); ok {
		return e.kind()
	}
	return ""
}
