package patreon

import "encoding/json"

// enum is implemented by the closed string enumerations. Valid reports
// whether the value is one of the wire members.
type enum interface {
	Valid() bool
}

type ChargeStatus string

const (
	ChargeStatusPaid     ChargeStatus = "paid"
	ChargeStatusDeclined ChargeStatus = "declined"
	ChargeStatusDeleted  ChargeStatus = "deleted"
	ChargeStatusPending  ChargeStatus = "pending"
	ChargeStatusRefunded ChargeStatus = "refunded"
	ChargeStatusFraud    ChargeStatus = "fraud"
	ChargeStatusOther    ChargeStatus = "other"
)

func ChargeStatuses() []ChargeStatus {
	return []ChargeStatus{
		ChargeStatusPaid,
		ChargeStatusDeclined,
		ChargeStatusDeleted,
		ChargeStatusPending,
		ChargeStatusRefunded,
		ChargeStatusFraud,
		ChargeStatusOther,
	}
}

func (s ChargeStatus) Valid() bool {
	switch s {
	case ChargeStatusPaid, ChargeStatusDeclined, ChargeStatusDeleted, ChargeStatusPending,
		ChargeStatusRefunded, ChargeStatusFraud, ChargeStatusOther:
		return true
	}
	return false
}

type PledgeType string

const (
	PledgeTypeStart        PledgeType = "pledge_start"
	PledgeTypeUpgrade      PledgeType = "pledge_upgrade"
	PledgeTypeDowngrade    PledgeType = "pledge_downgrade"
	PledgeTypeDelete       PledgeType = "pledge_delete"
	PledgeTypeSubscription PledgeType = "subscription"
)

func PledgeTypes() []PledgeType {
	return []PledgeType{
		PledgeTypeStart,
		PledgeTypeUpgrade,
		PledgeTypeDowngrade,
		PledgeTypeDelete,
		PledgeTypeSubscription,
	}
}

func (t PledgeType) Valid() bool {
	switch t {
	case PledgeTypeStart, PledgeTypeUpgrade, PledgeTypeDowngrade, PledgeTypeDelete, PledgeTypeSubscription:
		return true
	}
	return false
}

// PatronStatus is a member's standing with a campaign. PatronStatusNone is
// the API's null status (never pledged) and is carried on the wire as
// null, never as a string.
type PatronStatus string

const (
	PatronStatusNone     PatronStatus = ""
	PatronStatusActive   PatronStatus = "active_patron"
	PatronStatusDeclined PatronStatus = "declined_patron"
	PatronStatusFormer   PatronStatus = "former_patron"
)

// PatronStatuses lists every member including PatronStatusNone.
func PatronStatuses() []PatronStatus {
	return []PatronStatus{
		PatronStatusActive,
		PatronStatusDeclined,
		PatronStatusFormer,
		PatronStatusNone,
	}
}

// Valid reports whether s is one of the string members. PatronStatusNone
// is not: it only ever decodes from null.
func (s PatronStatus) Valid() bool {
	switch s {
	case PatronStatusActive, PatronStatusDeclined, PatronStatusFormer:
		return true
	}
	return false
}

func (s PatronStatus) IsSuccessful() bool {
	return s == PatronStatusActive
}

func (s PatronStatus) String() string {
	if s == PatronStatusNone {
		return "absent"
	}
	return string(s)
}

func (s PatronStatus) MarshalJSON() ([]byte, error) {
	if s == PatronStatusNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

type DeliveryStatus string

const (
	DeliveryStatusDelivered    DeliveryStatus = "delivered"
	DeliveryStatusNotDelivered DeliveryStatus = "not_delivered"
	DeliveryStatusWontDeliver  DeliveryStatus = "wont_deliver"
)

func DeliveryStatuses() []DeliveryStatus {
	return []DeliveryStatus{
		DeliveryStatusDelivered,
		DeliveryStatusNotDelivered,
		DeliveryStatusWontDeliver,
	}
}

func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryStatusDelivered, DeliveryStatusNotDelivered, DeliveryStatusWontDeliver:
		return true
	}
	return false
}
