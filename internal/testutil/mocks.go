package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/24studio/finance-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users    map[int32]*domain.User
	ByEmail  map[string]*domain.User
	NextID   int32
	CreateFn func(user *domain.User) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:   make(map[int32]*domain.User),
		ByEmail: make(map[string]*domain.User),
		NextID:  1,
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id int32) (*domain.User, error) {
	if user, ok := m.Users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByEmail retrieves a user by email
func (m *MockUserRepository) GetByEmail(email string) (*domain.User, error) {
	if user, ok := m.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetAll retrieves all users ordered by ID
func (m *MockUserRepository) GetAll() ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(m.Users))
	for _, user := range m.Users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Create creates a new user
func (m *MockUserRepository) Create(user *domain.User) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(user)
	}
	if _, ok := m.ByEmail[user.Email]; ok {
		return nil, domain.ErrDuplicateEmail
	}
	user.ID = m.NextID
	m.NextID++
	user.CreatedAt = time.Now()
	m.Users[user.ID] = user
	m.ByEmail[user.Email] = user
	return user, nil
}

// SetActive updates a user's active flag
func (m *MockUserRepository) SetActive(id int32, active bool) (*domain.User, error) {
	user, ok := m.Users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.IsActive = active
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	if user.ID >= m.NextID {
		m.NextID = user.ID + 1
	}
	m.Users[user.ID] = user
	m.ByEmail[user.Email] = user
}

// MockAccountRepository is a mock implementation of domain.AccountRepository
type MockAccountRepository struct {
	Accounts map[int32]*domain.Account
	// Referenced marks account IDs that carry transactions, making Delete fail
	Referenced map[int32]bool
	NextID     int32
	CreateFn   func(account *domain.Account) (*domain.Account, error)
}

// NewMockAccountRepository creates a new MockAccountRepository
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		Accounts:   make(map[int32]*domain.Account),
		Referenced: make(map[int32]bool),
		NextID:     1,
	}
}

// Create creates a new account
func (m *MockAccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	if m.CreateFn != nil {
		return m.CreateFn(account)
	}
	account.ID = m.NextID
	m.NextID++
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	m.Accounts[account.ID] = account
	return account, nil
}

// GetByID retrieves an account by ID
func (m *MockAccountRepository) GetByID(id int32) (*domain.Account, error) {
	if account, ok := m.Accounts[id]; ok {
		return account, nil
	}
	return nil, domain.ErrAccountNotFound
}

// GetAll retrieves all accounts ordered by name
func (m *MockAccountRepository) GetAll() ([]*domain.Account, error) {
	accounts := make([]*domain.Account, 0, len(m.Accounts))
	for _, account := range m.Accounts {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
	return accounts, nil
}

// SetBalance overwrites an account's balance
func (m *MockAccountRepository) SetBalance(id int32, balance decimal.Decimal) (*domain.Account, error) {
	account, ok := m.Accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	account.CurrentBalance = balance
	account.UpdatedAt = time.Now()
	return account, nil
}

// Delete removes an account unless it carries transactions
func (m *MockAccountRepository) Delete(id int32) error {
	if _, ok := m.Accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	if m.Referenced[id] {
		return domain.ErrAccountHasTransactions
	}
	delete(m.Accounts, id)
	return nil
}

// SumBalances returns the sum of all account balances
func (m *MockAccountRepository) SumBalances() (decimal.Decimal, error) {
	total := decimal.Zero
	for _, account := range m.Accounts {
		total = total.Add(account.CurrentBalance)
	}
	return total, nil
}

// adjustBalance applies a signed delta to an account, mirroring the SQL-side
// increments the real repositories perform inside their transactions.
func (m *MockAccountRepository) adjustBalance(id int32, delta decimal.Decimal) error {
	account, ok := m.Accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.CurrentBalance = account.CurrentBalance.Add(delta)
	account.UpdatedAt = time.Now()
	m.Referenced[id] = true
	return nil
}

// MockDonorRepository is a mock implementation of domain.DonorRepository
type MockDonorRepository struct {
	Donors map[int32]*domain.Donor
	NextID int32
}

// NewMockDonorRepository creates a new MockDonorRepository
func NewMockDonorRepository() *MockDonorRepository {
	return &MockDonorRepository{
		Donors: make(map[int32]*domain.Donor),
		NextID: 1,
	}
}

// Create creates a new donor
func (m *MockDonorRepository) Create(donor *domain.Donor) (*domain.Donor, error) {
	donor.ID = m.NextID
	m.NextID++
	donor.CreatedAt = time.Now()
	m.Donors[donor.ID] = donor
	return donor, nil
}

// GetByID retrieves a donor by ID
func (m *MockDonorRepository) GetByID(id int32) (*domain.Donor, error) {
	if donor, ok := m.Donors[id]; ok {
		return donor, nil
	}
	return nil, domain.ErrDonorNotFound
}

// GetAll retrieves all donors, newest donation first
func (m *MockDonorRepository) GetAll() ([]*domain.Donor, error) {
	donors := make([]*domain.Donor, 0, len(m.Donors))
	for _, donor := range m.Donors {
		donors = append(donors, donor)
	}
	sort.Slice(donors, func(i, j int) bool {
		a, b := donors[i].LastDonationDate, donors[j].LastDonationDate
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})
	return donors, nil
}

// MockDonationRepository is a mock implementation of domain.DonationRepository.
// When Accounts and Donors are wired, Create replays the real repository's
// transactional cascade in memory.
type MockDonationRepository struct {
	Donations map[int32]*domain.Donation
	NextID    int32
	Accounts  *MockAccountRepository
	Donors    *MockDonorRepository
	CreateFn  func(donation *domain.Donation) (*domain.Donation, error)
}

// NewMockDonationRepository creates a new MockDonationRepository
func NewMockDonationRepository() *MockDonationRepository {
	return &MockDonationRepository{
		Donations: make(map[int32]*domain.Donation),
		NextID:    1,
	}
}

// Create creates a new donation and applies the balance and donor cascades
func (m *MockDonationRepository) Create(donation *domain.Donation) (*domain.Donation, error) {
	if m.CreateFn != nil {
		return m.CreateFn(donation)
	}
	if m.Donors != nil {
		if _, ok := m.Donors.Donors[donation.DonorID]; !ok {
			return nil, domain.ErrDonorNotFound
		}
	}
	if m.Accounts != nil {
		if err := m.Accounts.adjustBalance(donation.AccountID, donation.Amount); err != nil {
			return nil, err
		}
	}
	if m.Donors != nil {
		donor := m.Donors.Donors[donation.DonorID]
		donor.TotalDonated = donor.TotalDonated.Add(donation.Amount)
		date := donation.Date
		donor.LastDonationDate = &date
	}
	donation.ID = m.NextID
	m.NextID++
	donation.CreatedAt = time.Now()
	m.Donations[donation.ID] = donation
	return donation, nil
}

// GetAll retrieves all donations, newest first
func (m *MockDonationRepository) GetAll() ([]*domain.Donation, error) {
	donations := make([]*domain.Donation, 0, len(m.Donations))
	for _, donation := range m.Donations {
		donations = append(donations, donation)
	}
	sort.Slice(donations, func(i, j int) bool { return donations[i].Date.After(donations[j].Date) })
	return donations, nil
}

// GetByDonor retrieves all donations for a donor, newest first
func (m *MockDonationRepository) GetByDonor(donorID int32) ([]*domain.Donation, error) {
	donations := make([]*domain.Donation, 0)
	for _, donation := range m.Donations {
		if donation.DonorID == donorID {
			donations = append(donations, donation)
		}
	}
	sort.Slice(donations, func(i, j int) bool { return donations[i].Date.After(donations[j].Date) })
	return donations, nil
}

// MockRevenueRepository is a mock implementation of domain.RevenueRepository.
// When Accounts is wired, Create and Delete replay the balance cascade.
type MockRevenueRepository struct {
	Revenues map[int32]*domain.Revenue
	NextID   int32
	Accounts *MockAccountRepository
	CreateFn func(revenue *domain.Revenue) (*domain.Revenue, error)
}

// NewMockRevenueRepository creates a new MockRevenueRepository
func NewMockRevenueRepository() *MockRevenueRepository {
	return &MockRevenueRepository{
		Revenues: make(map[int32]*domain.Revenue),
		NextID:   1,
	}
}

// Create creates a new revenue entry
func (m *MockRevenueRepository) Create(revenue *domain.Revenue) (*domain.Revenue, error) {
	if m.CreateFn != nil {
		return m.CreateFn(revenue)
	}
	if m.Accounts != nil && revenue.AccountID != nil && revenue.Status == domain.RevenueStatusReceived {
		if err := m.Accounts.adjustBalance(*revenue.AccountID, revenue.Amount); err != nil {
			return nil, err
		}
	}
	revenue.ID = m.NextID
	m.NextID++
	revenue.CreatedAt = time.Now()
	m.Revenues[revenue.ID] = revenue
	return revenue, nil
}

// GetByID retrieves a revenue entry by ID
func (m *MockRevenueRepository) GetByID(id int32) (*domain.Revenue, error) {
	if revenue, ok := m.Revenues[id]; ok {
		return revenue, nil
	}
	return nil, domain.ErrRevenueNotFound
}

// GetAll retrieves all revenue entries, newest first
func (m *MockRevenueRepository) GetAll() ([]*domain.Revenue, error) {
	revenues := make([]*domain.Revenue, 0, len(m.Revenues))
	for _, revenue := range m.Revenues {
		revenues = append(revenues, revenue)
	}
	sort.Slice(revenues, func(i, j int) bool { return revenues[i].Date.After(revenues[j].Date) })
	return revenues, nil
}

// Delete removes a revenue entry and reverses its balance contribution
func (m *MockRevenueRepository) Delete(id int32) error {
	revenue, ok := m.Revenues[id]
	if !ok {
		return domain.ErrRevenueNotFound
	}
	if m.Accounts != nil && revenue.AccountID != nil && revenue.Status == domain.RevenueStatusReceived {
		if err := m.Accounts.adjustBalance(*revenue.AccountID, revenue.Amount.Neg()); err != nil {
			return err
		}
	}
	delete(m.Revenues, id)
	return nil
}

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository.
// When Accounts and Budgets are wired, Approve replays the approval cascade.
type MockExpenseRepository struct {
	Expenses  map[int32]*domain.Expense
	NextID    int32
	Accounts  *MockAccountRepository
	Budgets   *MockBudgetRepository
	ApproveFn func(id int32, approvedByID int32) (*domain.Expense, error)
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		Expenses: make(map[int32]*domain.Expense),
		NextID:   1,
	}
}

// Create creates a new expense in Pending status
func (m *MockExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	expense.ID = m.NextID
	m.NextID++
	expense.Status = domain.ExpenseStatusPending
	expense.CreatedAt = time.Now()
	m.Expenses[expense.ID] = expense
	return expense, nil
}

// GetByID retrieves an expense by ID
func (m *MockExpenseRepository) GetByID(id int32) (*domain.Expense, error) {
	if expense, ok := m.Expenses[id]; ok {
		return expense, nil
	}
	return nil, domain.ErrExpenseNotFound
}

// GetAll retrieves all expenses, newest first
func (m *MockExpenseRepository) GetAll() ([]*domain.Expense, error) {
	expenses := make([]*domain.Expense, 0, len(m.Expenses))
	for _, expense := range m.Expenses {
		expenses = append(expenses, expense)
	}
	sort.Slice(expenses, func(i, j int) bool { return expenses[i].Date.After(expenses[j].Date) })
	return expenses, nil
}

// Approve flips a Pending expense to Approved and applies the cascades
func (m *MockExpenseRepository) Approve(id int32, approvedByID int32) (*domain.Expense, error) {
	if m.ApproveFn != nil {
		return m.ApproveFn(id, approvedByID)
	}
	expense, ok := m.Expenses[id]
	if !ok {
		return nil, domain.ErrExpenseNotFound
	}
	if expense.Status != domain.ExpenseStatusPending {
		return nil, domain.ErrAlreadyProcessed
	}
	expense.Status = domain.ExpenseStatusApproved
	expense.ApprovedByID = &approvedByID
	if m.Budgets != nil {
		for _, budget := range m.Budgets.Budgets {
			if budget.Year == expense.Date.Year() && budget.Category == expense.Category {
				budget.SpentAmount = budget.SpentAmount.Add(expense.Amount)
			}
		}
	}
	if m.Accounts != nil {
		if err := m.Accounts.adjustBalance(expense.AccountID, expense.Amount.Neg()); err != nil {
			return nil, err
		}
	}
	return expense, nil
}

// Reject hard-deletes a Pending expense
func (m *MockExpenseRepository) Reject(id int32) error {
	expense, ok := m.Expenses[id]
	if !ok {
		return domain.ErrExpenseNotFound
	}
	if expense.Status != domain.ExpenseStatusPending {
		return domain.ErrAlreadyProcessed
	}
	delete(m.Expenses, id)
	return nil
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets map[int32]*domain.Budget
	NextID  int32
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[int32]*domain.Budget),
		NextID:  1,
	}
}

// Create creates a new budget line
func (m *MockBudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	for _, existing := range m.Budgets {
		if existing.Year == budget.Year && existing.Category == budget.Category {
			return nil, domain.ErrDuplicateBudget
		}
	}
	budget.ID = m.NextID
	m.NextID++
	budget.SpentAmount = decimal.Zero
	budget.CreatedAt = time.Now()
	m.Budgets[budget.ID] = budget
	return budget, nil
}

// GetByYear retrieves all budget lines for a year
func (m *MockBudgetRepository) GetByYear(year int) ([]*domain.Budget, error) {
	budgets := make([]*domain.Budget, 0)
	for _, budget := range m.Budgets {
		if budget.Year == year {
			budgets = append(budgets, budget)
		}
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].Category < budgets[j].Category })
	return budgets, nil
}

// GetAll retrieves all budget lines
func (m *MockBudgetRepository) GetAll() ([]*domain.Budget, error) {
	budgets := make([]*domain.Budget, 0, len(m.Budgets))
	for _, budget := range m.Budgets {
		budgets = append(budgets, budget)
	}
	sort.Slice(budgets, func(i, j int) bool {
		if budgets[i].Year != budgets[j].Year {
			return budgets[i].Year > budgets[j].Year
		}
		return budgets[i].Category < budgets[j].Category
	})
	return budgets, nil
}

// MockSettingsRepository is a mock implementation of domain.SettingsRepository
type MockSettingsRepository struct {
	Settings *domain.Settings
	StatsFn  func() (*domain.DatabaseStats, error)
	ResetFn  func() error
}

// NewMockSettingsRepository creates a new MockSettingsRepository
func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{}
}

// Get returns the settings singleton, creating defaults if absent
func (m *MockSettingsRepository) Get() (*domain.Settings, error) {
	if m.Settings == nil {
		m.Settings = &domain.Settings{
			ID:                1,
			OrganizationName:  "24Studio Foundation",
			FiscalYearStart:   1,
			FiscalYearEnd:     12,
			RevenueCategories: []string{"Contribution", "Event", "Other"},
			ExpenseCategories: []string{"Operations", "Program", "Other"},
		}
	}
	return m.Settings, nil
}

// Update overwrites the organization fields
func (m *MockSettingsRepository) Update(settings *domain.Settings) (*domain.Settings, error) {
	current, err := m.Get()
	if err != nil {
		return nil, err
	}
	settings.ID = current.ID
	settings.RevenueCategories = current.RevenueCategories
	settings.ExpenseCategories = current.ExpenseCategories
	m.Settings = settings
	return m.Settings, nil
}

// UpdateCategories overwrites the category lists
func (m *MockSettingsRepository) UpdateCategories(revenueCategories, expenseCategories []string) (*domain.Settings, error) {
	current, err := m.Get()
	if err != nil {
		return nil, err
	}
	current.RevenueCategories = revenueCategories
	current.ExpenseCategories = expenseCategories
	return current, nil
}

// Stats returns per-family row counts
func (m *MockSettingsRepository) Stats() (*domain.DatabaseStats, error) {
	if m.StatsFn != nil {
		return m.StatsFn()
	}
	return &domain.DatabaseStats{}, nil
}

// ResetTransactions clears all transactional data
func (m *MockSettingsRepository) ResetTransactions() error {
	if m.ResetFn != nil {
		return m.ResetFn()
	}
	return nil
}

// MockReportRepository is a mock implementation of domain.ReportRepository,
// computing aggregates over in-memory row sets.
type MockReportRepository struct {
	Revenues  []*domain.Revenue
	Expenses  []*domain.Expense
	Donations []*domain.Donation
	Donors    []*domain.Donor
}

// NewMockReportRepository creates a new MockReportRepository
func NewMockReportRepository() *MockReportRepository {
	return &MockReportRepository{}
}

func inRange(date, start, end time.Time) bool {
	return !date.Before(start) && !date.After(end)
}

// RevenuesInRange returns revenue rows inside the window, newest first
func (m *MockReportRepository) RevenuesInRange(start, end time.Time) ([]*domain.Revenue, error) {
	rows := make([]*domain.Revenue, 0)
	for _, r := range m.Revenues {
		if inRange(r.Date, start, end) {
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
	return rows, nil
}

// ExpensesInRange returns expense rows inside the window, newest first
func (m *MockReportRepository) ExpensesInRange(start, end time.Time) ([]*domain.Expense, error) {
	rows := make([]*domain.Expense, 0)
	for _, e := range m.Expenses {
		if inRange(e.Date, start, end) {
			rows = append(rows, e)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
	return rows, nil
}

// DonationsInRange returns donation rows inside the window, newest first
func (m *MockReportRepository) DonationsInRange(start, end time.Time) ([]*domain.Donation, error) {
	rows := make([]*domain.Donation, 0)
	for _, d := range m.Donations {
		if inRange(d.Date, start, end) {
			rows = append(rows, d)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
	return rows, nil
}

// SumRevenues sums revenue amounts inside the window
func (m *MockReportRepository) SumRevenues(start, end time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, r := range m.Revenues {
		if inRange(r.Date, start, end) {
			total = total.Add(r.Amount)
		}
	}
	return total, nil
}

// SumDonations sums donation amounts inside the window
func (m *MockReportRepository) SumDonations(start, end time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, d := range m.Donations {
		if inRange(d.Date, start, end) {
			total = total.Add(d.Amount)
		}
	}
	return total, nil
}

// SumApprovedExpenses sums approved expense amounts inside the window
func (m *MockReportRepository) SumApprovedExpenses(start, end time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range m.Expenses {
		if e.Status == domain.ExpenseStatusApproved && inRange(e.Date, start, end) {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

// Counts returns per-family row counts (donors are not window-filtered)
func (m *MockReportRepository) Counts(start, end time.Time) (revenues, donations, expenses, donors int64, err error) {
	for _, r := range m.Revenues {
		if inRange(r.Date, start, end) {
			revenues++
		}
	}
	for _, d := range m.Donations {
		if inRange(d.Date, start, end) {
			donations++
		}
	}
	for _, e := range m.Expenses {
		if inRange(e.Date, start, end) {
			expenses++
		}
	}
	donors = int64(len(m.Donors))
	return revenues, donations, expenses, donors, nil
}

// MockReceiptRepository is an in-memory mock of storage.ReceiptRepository
type MockReceiptRepository struct {
	Objects  map[string][]byte
	UploadFn func(objectPath string, data []byte) (string, error)
}

// NewMockReceiptRepository creates a new MockReceiptRepository
func NewMockReceiptRepository() *MockReceiptRepository {
	return &MockReceiptRepository{
		Objects: make(map[string][]byte),
	}
}

// Upload stores an object in memory and returns its path
func (m *MockReceiptRepository) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, data); err != nil {
		return "", err
	}
	if m.UploadFn != nil {
		return m.UploadFn(objectPath, buf.Bytes())
	}
	m.Objects[objectPath] = buf.Bytes()
	return objectPath, nil
}

// Delete removes an object
func (m *MockReceiptRepository) Delete(ctx context.Context, objectPath string) error {
	delete(m.Objects, objectPath)
	return nil
}

// GeneratePresignedURL returns a fake URL for the object
func (m *MockReceiptRepository) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	if _, ok := m.Objects[objectPath]; !ok {
		return "", domain.ErrStorage
	}
	return fmt.Sprintf("https://storage.test/%s?expires=%d", objectPath, int64(expiry.Seconds())), nil
}
