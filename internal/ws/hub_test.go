package ws

import (
	"sync"
	"testing"
	"time"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient is a test double for Client that captures sent messages
type mockClient struct {
	id       string
	role     domain.Role
	messages [][]byte
	mu       sync.Mutex
	closed   bool
}

func newMockClient(id string, role domain.Role) *mockClient {
	return &mockClient{
		id:       id,
		role:     role,
		messages: make([][]byte, 0),
	}
}

func (m *mockClient) ID() string {
	return m.id
}

func (m *mockClient) Role() domain.Role {
	return m.role
}

func (m *mockClient) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClientClosed
	}
	m.messages = append(m.messages, data)
	return nil
}

func (m *mockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockClient) GetMessages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([][]byte, len(m.messages))
	copy(copied, m.messages)
	return copied
}

// waitForMessages polls until the client has n messages or the timeout hits
func waitForMessages(t *testing.T, client *mockClient, n int) [][]byte {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		messages := client.GetMessages()
		if len(messages) >= n {
			return messages
		}
		time.Sleep(5 * time.Millisecond)
	}
	return client.GetMessages()
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()

	client1 := newMockClient("client-1", domain.RolePresident)
	client2 := newMockClient("client-2", domain.RoleRevenueTeam)

	hub.Register(client1)
	hub.Register(client2)
	assert.Equal(t, 2, hub.ClientCount())

	hub.Unregister(client1)
	assert.Equal(t, 1, hub.ClientCount())

	// Unregistering twice is harmless
	hub.Unregister(client1)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(client2)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_BroadcastFiltersByRole(t *testing.T) {
	hub := NewHub()

	president := newMockClient("president", domain.RolePresident)
	revenue := newMockClient("revenue", domain.RoleRevenueTeam)
	finance := newMockClient("finance", domain.RoleFinanceTeam)

	hub.Register(president)
	hub.Register(revenue)
	hub.Register(finance)

	// Revenue events reach PRESIDENT and REVENUE_TEAM, never FINANCE_TEAM
	hub.Broadcast(RevenueCreated(7))

	presidentMsgs := waitForMessages(t, president, 1)
	revenueMsgs := waitForMessages(t, revenue, 1)

	require.Len(t, presidentMsgs, 1)
	require.Len(t, revenueMsgs, 1)
	assert.Contains(t, string(presidentMsgs[0]), "revenue.created")
	assert.Empty(t, finance.GetMessages())

	// Expense events go the other way
	hub.Broadcast(ExpenseApproved(3))

	financeMsgs := waitForMessages(t, finance, 1)
	require.Len(t, financeMsgs, 1)
	assert.Contains(t, string(financeMsgs[0]), "expense.approved")
	assert.Len(t, waitForMessages(t, president, 2), 2)
	assert.Len(t, revenue.GetMessages(), 1)
}

func TestHub_BroadcastSettingsPresidentOnly(t *testing.T) {
	hub := NewHub()

	president := newMockClient("president", domain.RolePresident)
	revenue := newMockClient("revenue", domain.RoleRevenueTeam)
	hub.Register(president)
	hub.Register(revenue)

	hub.Broadcast(SettingsUpdated())

	require.Len(t, waitForMessages(t, president, 1), 1)
	assert.Empty(t, revenue.GetMessages())
}

func TestHub_ResetReachesEveryRole(t *testing.T) {
	hub := NewHub()

	clients := []*mockClient{
		newMockClient("president", domain.RolePresident),
		newMockClient("revenue", domain.RoleRevenueTeam),
		newMockClient("finance", domain.RoleFinanceTeam),
	}
	for _, c := range clients {
		hub.Register(c)
	}

	hub.Broadcast(TransactionsReset())

	for _, c := range clients {
		messages := waitForMessages(t, c, 1)
		require.Len(t, messages, 1, "client %s", c.ID())
		assert.Contains(t, string(messages[0]), "transactions.reset")
	}
}

func TestHub_BroadcastSkipsClosedClient(t *testing.T) {
	hub := NewHub()

	client := newMockClient("client", domain.RolePresident)
	hub.Register(client)
	client.Close()

	// Send failure is logged, not fatal
	hub.Broadcast(AccountUpdated(1))
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, client.GetMessages())
}

func TestHub_BroadcastNoClients(t *testing.T) {
	hub := NewHub()
	// Must not panic
	hub.Broadcast(DonationCreated(1))
}
