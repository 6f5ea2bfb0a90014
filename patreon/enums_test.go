package patreon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeEnum runs value through the decoder on a field of the given kind.
func decodeEnum(t *testing.T, kind Kind, field string, value any) (Entity, error) {
	t.Helper()

	raw := payloads()[kind]
	raw[field] = value
	return Decode(kind, raw)
}

func TestEnumMembersDecode(t *testing.T) {
	for _, status := range ChargeStatuses() {
		e, err := decodeEnum(t, KindMember, "last_charge_status", string(status))
		require.NoError(t, err)
		assert.Equal(t, status, e.(*Member).LastChargeStatus)
	}

	for _, typ := range PledgeTypes() {
		e, err := decodeEnum(t, KindPledgeEvent, "type", string(typ))
		require.NoError(t, err)
		assert.Equal(t, typ, e.(*PledgeEvent).Type)
	}

	for _, status := range DeliveryStatuses() {
		e, err := decodeEnum(t, KindDeliverable, "delivery_status", string(status))
		require.NoError(t, err)
		assert.Equal(t, status, e.(*Deliverable).DeliveryStatus)
	}

	for _, status := range PatronStatuses() {
		var value any = string(status)
		if status == PatronStatusNone {
			value = nil
		}

		e, err := decodeEnum(t, KindMember, "patron_status", value)
		require.NoError(t, err)
		assert.Equal(t, status, e.(*Member).PatronStatus)
	}
}

func TestEnumUnknownValues(t *testing.T) {
	tests := []struct {
		kind  Kind
		field string
		value string
	}{
		{KindMember, "last_charge_status", "chargeback"},
		{KindMember, "last_charge_status", "Paid"},
		{KindPledgeEvent, "type", "start"},
		{KindPledgeEvent, "payment_status", "paid "},
		{KindDeliverable, "delivery_status", "shipped"},
		{KindMember, "patron_status", "absent"},
	}

	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			_, err := decodeEnum(t, tt.kind, tt.field, tt.value)
			require.ErrorIs(t, err, ErrUnknownEnumValue)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.value, verr.Value)
		})
	}
}

func TestEnumMembersAreDistinct(t *testing.T) {
	distinct := func(values []string) {
		seen := map[string]bool{}
		for _, v := range values {
			assert.False(t, seen[v], "duplicate member %q", v)
			seen[v] = true
		}
	}

	var charge, pledge, patron, delivery []string
	for _, v := range ChargeStatuses() {
		charge = append(charge, string(v))
	}
	for _, v := range PledgeTypes() {
		pledge = append(pledge, string(v))
	}
	for _, v := range PatronStatuses() {
		patron = append(patron, string(v))
	}
	for _, v := range DeliveryStatuses() {
		delivery = append(delivery, string(v))
	}

	assert.Len(t, charge, 7)
	assert.Len(t, pledge, 5)
	assert.Len(t, patron, 4)
	assert.Len(t, delivery, 3)

	distinct(charge)
	distinct(pledge)
	distinct(patron)
	distinct(delivery)
}

func TestPatronStatusIsSuccessful(t *testing.T) {
	for _, status := range PatronStatuses() {
		assert.Equal(t, status == PatronStatusActive, status.IsSuccessful(), status.String())
	}
}

func TestPatronStatusNone(t *testing.T) {
	assert.False(t, PatronStatusNone.Valid())
	assert.Equal(t, "absent", PatronStatusNone.String())

	b, err := PatronStatusNone.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = PatronStatusFormer.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"former_patron"`, string(b))
}
