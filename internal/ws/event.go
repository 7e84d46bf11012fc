package ws

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the kind of mutation that happened
type EventType string

const (
	EventTypeCreated  EventType = "created"
	EventTypeUpdated  EventType = "updated"
	EventTypeDeleted  EventType = "deleted"
	EventTypeApproved EventType = "approved"
	EventTypeRejected EventType = "rejected"
	EventTypeReset    EventType = "reset"
)

// EntityType represents the entity family the event is about
type EntityType string

const (
	EntityTypeRevenue  EntityType = "revenue"
	EntityTypeDonation EntityType = "donation"
	EntityTypeDonor    EntityType = "donor"
	EntityTypeExpense  EntityType = "expense"
	EntityTypeAccount  EntityType = "account"
	EntityTypeBudget   EntityType = "budget"
	EntityTypeUser     EntityType = "user"
	EntityTypeSettings EntityType = "settings"
	// EntityTypeTransactions covers whole-ledger events such as the
	// PRESIDENT's reset, visible to every connected role
	EntityTypeTransactions EntityType = "transactions"
)

// entityRoutes maps entity families to the route prefix whose access rules
// decide which roles may receive their events.
var entityRoutes = map[EntityType]string{
	EntityTypeRevenue:      "/revenue",
	EntityTypeDonation:     "/donations",
	EntityTypeDonor:        "/donors",
	EntityTypeExpense:      "/expenses",
	EntityTypeAccount:      "/accounts",
	EntityTypeBudget:       "/budget",
	EntityTypeUser:         "/users",
	EntityTypeSettings:     "/settings",
	EntityTypeTransactions: "/dashboard",
}

// Route returns the route prefix governing visibility of this entity family
func (e EntityType) Route() string {
	return entityRoutes[e]
}

// Event is the message sent to connected clients when a financial record
// changes. Payload carries the entity ID, not the entity itself: clients
// refetch through the role-gated HTTP API.
type Event struct {
	Type      string     `json:"type"` // combined, e.g. "expense.approved"
	Entity    EntityType `json:"entity"`
	Payload   any        `json:"payload"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload any) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// idPayload is the standard payload shape
type idPayload struct {
	ID int32 `json:"id"`
}

// RevenueCreated creates a revenue.created event
func RevenueCreated(id int32) Event {
	return NewEvent(EventTypeCreated, EntityTypeRevenue, idPayload{ID: id})
}

// RevenueDeleted creates a revenue.deleted event
func RevenueDeleted(id int32) Event {
	return NewEvent(EventTypeDeleted, EntityTypeRevenue, idPayload{ID: id})
}

// DonationCreated creates a donation.created event
func DonationCreated(id int32) Event {
	return NewEvent(EventTypeCreated, EntityTypeDonation, idPayload{ID: id})
}

// DonorCreated creates a donor.created event
func DonorCreated(id int32) Event {
	return NewEvent(EventTypeCreated, EntityTypeDonor, idPayload{ID: id})
}

// ExpenseCreated creates an expense.created event
func ExpenseCreated(id int32) Event {
	return NewEvent(EventTypeCreated, EntityTypeExpense, idPayload{ID: id})
}

// ExpenseApproved creates an expense.approved event
func ExpenseApproved(id int32) Event {
	return NewEvent(EventTypeApproved, EntityTypeExpense, idPayload{ID: id})
}

// ExpenseRejected creates an expense.rejected event
func ExpenseRejected(id int32) Event {
	return NewEvent(EventTypeRejected, EntityTypeExpense, idPayload{ID: id})
}

// AccountCreated creates an account.created event
func AccountCreated(id int32) Event {
	return NewEvent(EventTypeCreated, EntityTypeAccount, idPayload{ID: id})
}

// AccountUpdated creates an account.updated event
func AccountUpdated(id int32) Event {
	return NewEvent(EventTypeUpdated, EntityTypeAccount, idPayload{ID: id})
}

// AccountDeleted creates an account.deleted event
func AccountDeleted(id int32) Event {
	return NewEvent(EventTypeDeleted, EntityTypeAccount, idPayload{ID: id})
}

// UserCreated creates a user.created event
func UserCreated(id int32) Event {
	return NewEvent(EventTypeCreated, EntityTypeUser, idPayload{ID: id})
}

// UserUpdated creates a user.updated event
func UserUpdated(id int32) Event {
	return NewEvent(EventTypeUpdated, EntityTypeUser, idPayload{ID: id})
}

// BudgetCreated creates a budget.created event
func BudgetCreated(id int32) Event {
	return NewEvent(EventTypeCreated, EntityTypeBudget, idPayload{ID: id})
}

// SettingsUpdated creates a settings.updated event
func SettingsUpdated() Event {
	return NewEvent(EventTypeUpdated, EntityTypeSettings, nil)
}

// TransactionsReset creates a transactions.reset event signalling that all
// transactional data was wiped
func TransactionsReset() Event {
	return NewEvent(EventTypeReset, EntityTypeTransactions, nil)
}
