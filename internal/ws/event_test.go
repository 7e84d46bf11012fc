package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	event := NewEvent(EventTypeApproved, EntityTypeExpense, idPayload{ID: 12})

	assert.Equal(t, "expense.approved", event.Type)
	assert.Equal(t, EntityTypeExpense, event.Entity)
	assert.False(t, event.Timestamp.IsZero())
}

func TestEvent_ToJSON(t *testing.T) {
	event := RevenueCreated(42)

	data, err := event.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "revenue.created", decoded["type"])
	assert.Equal(t, "revenue", decoded["entity"])
	payload, ok := decoded["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(42), payload["id"])
}

func TestEntityRoutes(t *testing.T) {
	// Every entity family must map to a route, otherwise its events would
	// be invisible to all roles
	entities := []EntityType{
		EntityTypeRevenue, EntityTypeDonation, EntityTypeDonor,
		EntityTypeExpense, EntityTypeAccount, EntityTypeBudget,
		EntityTypeUser, EntityTypeSettings, EntityTypeTransactions,
	}
	for _, entity := range entities {
		assert.NotEmpty(t, entity.Route(), "entity %s has no route", entity)
	}
}

func TestEventConstructors(t *testing.T) {
	tests := []struct {
		event    Event
		wantType string
	}{
		{RevenueCreated(1), "revenue.created"},
		{RevenueDeleted(1), "revenue.deleted"},
		{DonationCreated(1), "donation.created"},
		{DonorCreated(1), "donor.created"},
		{ExpenseCreated(1), "expense.created"},
		{ExpenseApproved(1), "expense.approved"},
		{ExpenseRejected(1), "expense.rejected"},
		{AccountCreated(1), "account.created"},
		{AccountUpdated(1), "account.updated"},
		{AccountDeleted(1), "account.deleted"},
		{BudgetCreated(1), "budget.created"},
		{SettingsUpdated(), "settings.updated"},
		{TransactionsReset(), "transactions.reset"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wantType, tt.event.Type)
	}
}
