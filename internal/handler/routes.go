package handler

import (
	"github.com/24studio/finance-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// Handlers bundles every HTTP handler for route registration
type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Account   *AccountHandler
	Donor     *DonorHandler
	Donation  *DonationHandler
	Revenue   *RevenueHandler
	Expense   *ExpenseHandler
	Budget    *BudgetHandler
	Settings  *SettingsHandler
	Report    *ReportHandler
	Receipt   *ReceiptHandler
	WebSocket *WebSocketHandler
}

// RegisterRoutes sets up all API routes. Every group below /api/v1 runs
// behind RequireSession and the role-prefix gate; login is the only open
// endpoint besides the websocket handshake, which authenticates itself.
func RegisterRoutes(e *echo.Echo, h Handlers, sessions *middleware.SessionManager, loginLimiter *middleware.RateLimiter) {
	api := e.Group("/api/v1")
	api.Use(sessions.Resolve())

	// Auth routes
	auth := api.Group("/auth")
	auth.POST("/login", h.Auth.Login, middleware.LoginRateLimit(loginLimiter))
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/me", h.Auth.Me, middleware.RequireSession())

	protected := api.Group("", middleware.RequireSession(), middleware.RequireAccess())

	// User management (PRESIDENT only, enforced by the prefix gate and services)
	protected.POST("/users", h.User.CreateUser)
	protected.GET("/users", h.User.GetUsers)
	protected.PATCH("/users/:id/toggle-status", h.User.ToggleUserStatus)

	// Accounts
	protected.POST("/accounts", h.Account.CreateAccount)
	protected.GET("/accounts", h.Account.GetAccounts)
	protected.PATCH("/accounts/:id/balance", h.Account.UpdateBalance)
	protected.DELETE("/accounts/:id", h.Account.DeleteAccount)

	// Donors
	protected.POST("/donors", h.Donor.CreateDonor)
	protected.GET("/donors", h.Donor.GetDonors)
	protected.GET("/donors/:id", h.Donor.GetDonorProfile)

	// Donations
	protected.POST("/donations", h.Donation.CreateDonation)
	protected.GET("/donations", h.Donation.GetDonations)

	// Revenue
	protected.POST("/revenue", h.Revenue.CreateRevenue)
	protected.GET("/revenue", h.Revenue.GetRevenues)
	protected.DELETE("/revenue/:id", h.Revenue.DeleteRevenue)

	// Expenses
	protected.POST("/expenses", h.Expense.CreateExpense)
	protected.GET("/expenses", h.Expense.GetExpenses)
	protected.PATCH("/expenses/:id/approve", h.Expense.ApproveExpense)
	protected.PATCH("/expenses/:id/reject", h.Expense.RejectExpense)

	// Budgets
	protected.POST("/budget", h.Budget.CreateBudget)
	protected.GET("/budget", h.Budget.GetBudgets)

	// Settings
	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", h.Settings.UpdateSettings)
	protected.PUT("/settings/categories", h.Settings.UpdateCategories)
	protected.GET("/settings/stats", h.Settings.GetDatabaseStats)
	protected.POST("/settings/reset", h.Settings.ResetAllTransactions)

	// Reports and dashboard
	protected.GET("/reports", h.Report.GetReport)
	protected.GET("/reports/export", h.Report.ExportCSV)
	protected.GET("/dashboard", h.Report.GetDashboard)

	// Receipts
	protected.POST("/receipts", h.Receipt.UploadReceipt)
	protected.GET("/receipts/*", h.Receipt.PresignReceipt)

	// WebSocket event stream
	e.GET("/ws", h.WebSocket.HandleWS)
}
