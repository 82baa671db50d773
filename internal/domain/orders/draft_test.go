package orders

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchdesk/backend/internal/domain/catalog"
	"github.com/stitchdesk/backend/internal/domain/shared"
	"github.com/stitchdesk/backend/internal/domain/shared/valueobject"
)

func newTestOutfit(t *testing.T, tenantID uuid.UUID, name, code string, stitching, alteration int64) *catalog.Outfit {
	t.Helper()
	outfit, err := catalog.NewOutfit(tenantID, name, code,
		decimal.NewFromInt(stitching), decimal.NewFromInt(alteration))
	require.NoError(t, err)
	return outfit
}

func newTestDraft(t *testing.T) (*OrderDraft, uuid.UUID) {
	t.Helper()
	tenantID := uuid.New()
	draft := NewOrderDraft(tenantID, uuid.New())
	require.NoError(t, draft.SelectCustomer(CustomerRef{
		ID:       uuid.New(),
		Name:     "Rajesh Kumar",
		Mobile:   "+919876543210",
		SiteCode: "RK1",
	}))
	return draft, tenantID
}

func TestOrderDraft_SelectCustomer(t *testing.T) {
	draft := NewOrderDraft(uuid.New(), uuid.New())

	err := draft.SelectCustomer(CustomerRef{ID: uuid.Nil, Name: "Nobody"})
	assert.Error(t, err)
	assert.Nil(t, draft.Customer)

	ref := CustomerRef{ID: uuid.New(), Name: "Rajesh Kumar"}
	require.NoError(t, draft.SelectCustomer(ref))
	require.NotNil(t, draft.Customer)
	assert.Equal(t, "Rajesh", draft.Customer.FirstName())

	// Replacing the selection is unconditional
	other := CustomerRef{ID: uuid.New(), Name: "Priya Sharma"}
	require.NoError(t, draft.SelectCustomer(other))
	assert.Equal(t, other.ID, draft.Customer.ID)
}

func TestOrderDraft_AddInstance(t *testing.T) {
	draft, tenantID := newTestDraft(t)
	shirt := newTestOutfit(t, tenantID, "Shirt", "SHR", 1200, 400)

	instance, err := draft.AddInstance(shirt)
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("%s-0", shirt.ID), instance.InstanceID)
	assert.Equal(t, OrderTypeStitching, instance.OrderType)
	assert.Equal(t, 1, instance.Quantity)
	assert.True(t, instance.UnitPrice.Equal(decimal.NewFromInt(1200)))
	assert.True(t, instance.Total.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, "Rajesh", instance.ReferenceName)
	assert.Empty(t, instance.AdditionalCosts)
	assert.Empty(t, instance.Measurements)

	// Second instance of the same outfit gets the next sequence
	second, err := draft.AddInstance(shirt)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s-1", shirt.ID), second.InstanceID)
	assert.True(t, second.Total.Equal(decimal.NewFromInt(1200)))
}

func TestOrderDraft_AddInstance_NoCustomer(t *testing.T) {
	draft := NewOrderDraft(uuid.New(), uuid.New())
	shirt := newTestOutfit(t, uuid.New(), "Shirt", "SHR", 1200, 400)

	instance, err := draft.AddInstance(shirt)
	require.NoError(t, err)
	assert.Equal(t, "", instance.ReferenceName)
}

func TestOrderDraft_AddInstance_InactiveOutfit(t *testing.T) {
	draft, tenantID := newTestDraft(t)
	shirt := newTestOutfit(t, tenantID, "Shirt", "SHR", 1200, 400)
	shirt.Deactivate()

	_, err := draft.AddInstance(shirt)
	assert.Error(t, err)
}

func TestOrderDraft_InstanceIDsNeverReused(t *testing.T) {
	draft, tenantID := newTestDraft(t)
	shirt := newTestOutfit(t, tenantID, "Shirt", "SHR", 1200, 400)

	first, _ := draft.AddInstance(shirt)
	second, _ := draft.AddInstance(shirt)
	require.NoError(t, draft.RemoveInstance(second.InstanceID))

	// A new instance after removal continues the sequence
	third, err := draft.AddInstance(shirt)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s-2", shirt.ID), third.InstanceID)
	assert.NotEqual(t, second.InstanceID, third.InstanceID)

	// The surviving instance keeps its identity
	kept, err := draft.Instance(first.InstanceID)
	require.NoError(t, err)
	assert.Equal(t, first.InstanceID, kept.InstanceID)
}

func TestOrderDraft_RemoveInstance(t *testing.T) {
	draft, tenantID := newTestDraft(t)
	shirt := newTestOutfit(t, tenantID, "Shirt", "SHR", 1200, 400)

	first, _ := draft.AddInstance(shirt)
	second, _ := draft.AddInstance(shirt)
	require.NoError(t, draft.SetQuantity(first.InstanceID, 3))

	require.NoError(t, draft.RemoveInstance(second.InstanceID))
	assert.Equal(t, 1, draft.InstanceCount())

	kept, err := draft.Instance(first.InstanceID)
	require.NoError(t, err)
	assert.True(t, kept.Total.Equal(decimal.NewFromInt(3600)))
	assert.True(t, draft.GrandTotal().Equal(decimal.NewFromInt(3600)))

	err = draft.RemoveInstance("missing-0")
	assert.ErrorIs(t, err, shared.ErrInstanceNotFound)
}

func TestOrderDraft_Totals(t *testing.T) {
	draft, tenantID := newTestDraft(t)
	shirt := newTestOutfit(t, tenantID, "Shirt", "SHR", 1200, 400)

	first, _ := draft.AddInstance(shirt)
	second, _ := draft.AddInstance(shirt)

	// quantity * unitPrice
	require.NoError(t, draft.SetQuantity(first.InstanceID, 3))
	firstAgain, _ := draft.Instance(first.InstanceID)
	assert.True(t, firstAgain.Total.Equal(decimal.NewFromInt(3600)))

	// other instances unaffected
	secondAgain, _ := draft.Instance(second.InstanceID)
	assert.True(t, secondAgain.Total.Equal(decimal.NewFromInt(1200)))
	assert.True(t, draft.GrandTotal().Equal(decimal.NewFromInt(4800)))

	// plus additional costs
	embroidery := valueobject.NewMoneyINR(decimal.NewFromInt(300))
	require.NoError(t, draft.AddAdditionalCost(first.InstanceID, "Embroidery", embroidery))
	firstAgain, _ = draft.Instance(first.InstanceID)
	assert.True(t, firstAgain.Total.Equal(decimal.NewFromInt(3900)))
	assert.True(t, draft.GrandTotal().Equal(decimal.NewFromInt(5100)))

	// removing the cost restores the previous total
	require.NoError(t, draft.RemoveAdditionalCost(first.InstanceID, 0))
	firstAgain, _ = draft.Instance(first.InstanceID)
	assert.True(t, firstAgain.Total.Equal(decimal.NewFromInt(3600)))

	// overriding the unit price recomputes
	require.NoError(t, draft.SetUnitPrice(first.InstanceID, valueobject.NewMoneyINR(decimal.NewFromInt(1000))))
	firstAgain, _ = draft.Instance(first.InstanceID)
	assert.True(t, firstAgain.Total.Equal(decimal.NewFromInt(3000)))
}

func TestOrderDraft_SetQuantityValidation(t *testing.T) {
	draft, tenantID := newTestDraft(t)
	shirt := newTestOutfit(t, tenantID, "Shirt", "SHR", 1200, 400)
	instance, _ := draft.AddInstance(shirt)

	assert.Error(t, draft.SetQuantity(instance.InstanceID, 0))
	assert.Error(t, draft.SetQuantity(instance.InstanceID, -1))
	assert.Error(t, draft.SetQuantity("missing-0", 2))
}

func TestOrderDraft_SetOrderType(t *testing.T) {
	draft, tenantID := newTestDraft(t)
	shirt := newTestOutfit(t, tenantID, "Shirt", "SHR", 1200, 400)
	instance, _ := draft.AddInstance(shirt)

	require.NoError(t, draft.SetQuantity(instance.InstanceID, 2))
	embroidery := valueobject.NewMoneyINR(decimal.NewFromInt(300))
	require.NoError(t, draft.AddAdditionalCost(instance.InstanceID, "Embroidery", embroidery))

	require.NoError(t, draft.SetOrderType(instance.InstanceID, OrderTypeAlteration, shirt))

	updated, _ := draft.Instance(instance.InstanceID)
	assert.Equal(t, OrderTypeAlteration, updated.OrderType)
	assert.True(t, updated.UnitPrice.Equal(decimal.NewFromInt(400)))
	// quantity and costs survive the switch
	assert.Equal(t, 2, updated.Quantity)
	assert.Len(t, updated.AdditionalCosts, 1)
	assert.True(t, updated.Total.Equal(decimal.NewFromInt(1100)))

	// switching back restores the stitching price
	require.NoError(t, draft.SetOrderType(instance.InstanceID, OrderTypeStitching, shirt))
	updated, _ = draft.Instance(instance.InstanceID)
	assert.True(t, updated.UnitPrice.Equal(decimal.NewFromInt(1200)))

	assert.Error(t, draft.SetOrderType(instance.InstanceID, OrderType("ironing"), shirt))

	other := newTestOutfit(t, tenantID, "Kurta", "KRT", 900, 300)
	assert.Error(t, draft.SetOrderType(instance.InstanceID, OrderTypeAlteration, other))
}

func TestOrderDraft_Dates(t *testing.T) {
	draft, tenantID := newTestDraft(t)
	shirt := newTestOutfit(t, tenantID, "Shirt", "SHR", 1200, 400)
	instance, _ := draft.AddInstance(shirt)

	future := time.Now().Add(72 * time.Hour)
	require.NoError(t, draft.SetTrialDate(instance.InstanceID, &future))
	require.NoError(t, draft.SetDeliveryDate(instance.InstanceID, &future))

	past := time.Now().Add(-48 * time.Hour)
	assert.Error(t, draft.SetTrialDate(instance.InstanceID, &past))
	assert.Error(t, draft.SetDeliveryDate(instance.InstanceID, &past))

	// clearing is always allowed
	require.NoError(t, draft.SetTrialDate(instance.InstanceID, nil))
	updated, _ := draft.Instance(instance.InstanceID)
	assert.Nil(t, updated.TrialDate)
	assert.NotNil(t, updated.DeliveryDate)
}

func TestOrderDraft_Measurements(t *testing.T) {
	draft, tenantID := newTestDraft(t)
	shirt := newTestOutfit(t, tenantID, "Shirt", "SHR", 1200, 400)
	instance, _ := draft.AddInstance(shirt)

	// First open: only the fetched defaults
	form, err := draft.SeedMeasurements(instance.InstanceID, map[string]string{
		"Chest": "40",
		"Waist": "34",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Chest": "40", "Waist": "34"}, form)

	// Save an edit, then reseed: the local value wins over the default
	require.NoError(t, draft.SaveMeasurements(instance.InstanceID, map[string]string{
		"Chest": "41",
		"Waist": "",
	}))
	form, err = draft.SeedMeasurements(instance.InstanceID, map[string]string{
		"Chest": "40",
		"Waist": "34",
	})
	require.NoError(t, err)
	assert.Equal(t, "41", form["Chest"])
	assert.Equal(t, "34", form["Waist"])

	updated, _ := draft.Instance(instance.InstanceID)
	assert.True(t, updated.HasMeasurements())
	assert.NotContains(t, updated.Measurements, "Waist")
}

func TestOrderDraft_StitchOptions(t *testing.T) {
	draft, tenantID := newTestDraft(t)
	shirt := newTestOutfit(t, tenantID, "Shirt", "SHR", 1200, 400)
	instance, _ := draft.AddInstance(shirt)

	require.NoError(t, draft.SetStitchOption(instance.InstanceID, "Collar", "Mandarin"))
	require.NoError(t, draft.SetStitchOption(instance.InstanceID, "Sleeve", "Full"))
	updated, _ := draft.Instance(instance.InstanceID)
	assert.Len(t, updated.StitchOptions, 2)

	require.NoError(t, draft.SetStitchOption(instance.InstanceID, "Sleeve", ""))
	updated, _ = draft.Instance(instance.InstanceID)
	assert.Len(t, updated.StitchOptions, 1)

	assert.Error(t, draft.SetStitchOption(instance.InstanceID, "  ", "x"))
}

func TestOrderDraft_Attachments(t *testing.T) {
	draft, tenantID := newTestDraft(t)
	shirt := newTestOutfit(t, tenantID, "Shirt", "SHR", 1200, 400)
	instance, _ := draft.AddInstance(shirt)

	require.NoError(t, draft.AddAttachment(instance.InstanceID, "orders/abc.jpg", "abc.jpg"))
	require.NoError(t, draft.AddAttachment(instance.InstanceID, "orders/def.jpg", "def.jpg"))
	assert.Error(t, draft.AddAttachment(instance.InstanceID, "", "x.jpg"))

	require.NoError(t, draft.RemoveAttachment(instance.InstanceID, 0))
	updated, _ := draft.Instance(instance.InstanceID)
	require.Len(t, updated.Attachments, 1)
	assert.Equal(t, "orders/def.jpg", updated.Attachments[0].Key)

	assert.Error(t, draft.RemoveAttachment(instance.InstanceID, 5))
}

func TestOrderDraft_Validate(t *testing.T) {
	tenantID := uuid.New()
	shirt := newTestOutfit(t, tenantID, "Shirt", "SHR", 1200, 400)

	draft := NewOrderDraft(tenantID, uuid.New())
	_, err := draft.AddInstance(shirt)
	require.NoError(t, err)
	assert.ErrorIs(t, draft.Validate(), shared.ErrNoCustomer)

	require.NoError(t, draft.SelectCustomer(CustomerRef{ID: uuid.New(), Name: "Rajesh"}))
	assert.NoError(t, draft.Validate())

	empty := NewOrderDraft(tenantID, uuid.New())
	require.NoError(t, empty.SelectCustomer(CustomerRef{ID: uuid.New(), Name: "Rajesh"}))
	assert.ErrorIs(t, empty.Validate(), shared.ErrNoInstances)
}

func TestOrderDraft_ClearCustomerKeepsInstances(t *testing.T) {
	draft, tenantID := newTestDraft(t)
	shirt := newTestOutfit(t, tenantID, "Shirt", "SHR", 1200, 400)
	instance, _ := draft.AddInstance(shirt)

	draft.ClearCustomer()
	assert.Nil(t, draft.Customer)

	kept, err := draft.Instance(instance.InstanceID)
	require.NoError(t, err)
	// stale customer-derived default is retained
	assert.Equal(t, "Rajesh", kept.ReferenceName)
}

func TestOrderDraft_Reset(t *testing.T) {
	draft, tenantID := newTestDraft(t)
	shirt := newTestOutfit(t, tenantID, "Shirt", "SHR", 1200, 400)
	_, err := draft.AddInstance(shirt)
	require.NoError(t, err)

	draft.Reset()

	assert.Nil(t, draft.Customer)
	assert.Equal(t, 0, draft.InstanceCount())
	assert.True(t, draft.GrandTotal().IsZero())

	// counters restart for the new session
	instance, err := draft.AddInstance(shirt)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s-0", shirt.ID), instance.InstanceID)
}
