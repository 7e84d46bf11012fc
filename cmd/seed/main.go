package main

import (
	"context"
	"errors"
	"os"

	"github.com/24studio/finance-backend/internal/config"
	"github.com/24studio/finance-backend/internal/domain"
	"github.com/24studio/finance-backend/internal/repository/postgres"
	"github.com/24studio/finance-backend/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Seeds the first users, default accounts and the settings row. Safe to run
// repeatedly: existing rows are left alone.
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}

	userRepo := postgres.NewUserRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)

	seedUsers := []struct {
		name     string
		email    string
		password string
		role     domain.Role
	}{
		{"President", "president@24studio.org", envOr("SEED_PRESIDENT_PASSWORD", "changeme-president"), domain.RolePresident},
		{"Revenue Team", "revenue@24studio.org", envOr("SEED_REVENUE_PASSWORD", "changeme-revenue"), domain.RoleRevenueTeam},
		{"Finance Team", "finance@24studio.org", envOr("SEED_FINANCE_PASSWORD", "changeme-finance"), domain.RoleFinanceTeam},
	}

	for _, seed := range seedUsers {
		if _, err := userRepo.GetByEmail(seed.email); err == nil {
			log.Info().Str("email", seed.email).Msg("User exists, skipping")
			continue
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			log.Fatal().Err(err).Str("email", seed.email).Msg("Failed to check user")
		}

		hash, err := service.HashPassword(seed.password)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to hash password")
		}
		user, err := userRepo.Create(&domain.User{
			Name:         seed.name,
			Email:        seed.email,
			PasswordHash: hash,
			Role:         seed.role,
			IsActive:     true,
		})
		if err != nil {
			log.Fatal().Err(err).Str("email", seed.email).Msg("Failed to create user")
		}
		log.Info().Int32("user_id", user.ID).Str("role", string(user.Role)).Msg("User created")
	}

	existing, err := accountRepo.GetAll()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list accounts")
	}
	if len(existing) == 0 {
		defaults := []struct {
			name string
			typ  domain.AccountType
		}{
			{"Main Bank Account", domain.AccountTypeBank},
			{"bKash", domain.AccountTypeMobileBanking},
			{"Cash Box", domain.AccountTypeCash},
		}
		for _, seed := range defaults {
			account, err := accountRepo.Create(&domain.Account{
				Name:           seed.name,
				Type:           seed.typ,
				CurrentBalance: decimal.Zero,
			})
			if err != nil {
				log.Fatal().Err(err).Str("name", seed.name).Msg("Failed to create account")
			}
			log.Info().Int32("account_id", account.ID).Str("name", account.Name).Msg("Account created")
		}
	} else {
		log.Info().Int("count", len(existing)).Msg("Accounts exist, skipping")
	}

	// Get creates the defaults row if it is missing
	settings, err := settingsRepo.Get()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize settings")
	}
	log.Info().Str("organization", settings.OrganizationName).Msg("Settings ready")

	log.Info().Msg("Seed complete")
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
