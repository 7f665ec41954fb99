package seeder

import (
	"context"
	"fmt"

	"mentorlink/internal/database"

	"golang.org/x/crypto/bcrypt"
)

// demoPassword is shared by every seeded account. Demo data only; never
// run these seeders against a real deployment.
const demoPassword = "password123"

type demoAccount struct {
	Email      string
	Name       string
	Role       string
	Industries []string
	About      string
}

var demoAccounts = []demoAccount{
	{
		Email:      "raka.mentor@example.com",
		Name:       "Raka Pratama",
		Role:       "mentor",
		Industries: []string{"fintech", "payments"},
		About:      "Backend lead, ten years in payment infrastructure.",
	},
	{
		Email:      "sari.mentor@example.com",
		Name:       "Sari Wijaya",
		Role:       "mentor",
		Industries: []string{"edtech"},
		About:      "Engineering manager focused on early-career growth.",
	},
	{
		Email:      "dina.mentee@example.com",
		Name:       "Dina Lestari",
		Role:       "mentee",
		About:      "Junior developer moving from QA into backend work.",
	},
	{
		Email:      "bayu.mentee@example.com",
		Name:       "Bayu Santoso",
		Role:       "mentee",
		About:      "Fresh graduate exploring infrastructure engineering.",
	},
}

type DemoAccountsSeeder struct{}

func (DemoAccountsSeeder) Name() string { return "demo_accounts" }

func (DemoAccountsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := ensureTableColumns(ctx, db, "users", "id", "email", "password_hash"); err != nil {
		return err
	}
	if err := ensureTableColumns(ctx, db, "profiles", "id", "user_id", "name", "role", "industries", "about"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, acc := range demoAccounts {
		industries := acc.Industries
		if industries == nil {
			industries = []string{}
		}

		_, err := tx.Exec(
			ctx,
			`INSERT INTO users (id, email, password_hash) VALUES (gen_random_uuid(), $1, $2)
			 ON CONFLICT (email) DO NOTHING`,
			acc.Email,
			string(hash),
		)
		if err != nil {
			return err
		}

		_, err = tx.Exec(
			ctx,
			`INSERT INTO profiles (id, user_id, name, role, industries, about)
			 SELECT gen_random_uuid(), u.id, $2, $3, $4, $5 FROM users u WHERE u.email = $1
			 ON CONFLICT (user_id) DO NOTHING`,
			acc.Email,
			acc.Name,
			acc.Role,
			industries,
			acc.About,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
