package seed

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Yassinemathlouthi/skillswap/internal/database"
)

type DemoUsersSeeder struct{}

func (DemoUsersSeeder) Name() string { return "demo_users" }

type demoUser struct {
	Handle   string
	Email    string
	Bio      string
	Location string
	Lat, Lon float64
	Offers   []string
	Wants    []string
}

var demoUsers = []demoUser{
	{
		Handle: "amelia", Email: "amelia@example.com",
		Bio: "Classical guitarist, happy to trade lessons.", Location: "Lisbon, Portugal",
		Lat: 38.7223, Lon: -9.1393,
		Offers: []string{"Guitar", "Piano"}, Wants: []string{"Photography", "Spanish"},
	},
	{
		Handle: "bruno", Email: "bruno@example.com",
		Bio: "Street photographer and hobby cook.", Location: "Lisbon, Portugal",
		Lat: 38.7369, Lon: -9.1427,
		Offers: []string{"Photography", "Cooking"}, Wants: []string{"Guitar"},
	},
	{
		Handle: "chiara", Email: "chiara@example.com",
		Bio: "Native Spanish speaker, learning to bake.", Location: "Madrid, Spain",
		Lat: 40.4168, Lon: -3.7038,
		Offers: []string{"Spanish", "Yoga"}, Wants: []string{"Baking", "Piano"},
	},
	{
		Handle: "daan", Email: "daan@example.com",
		Bio: "Chess coach, weekends in the wood shop.", Location: "Amsterdam, Netherlands",
		Lat: 52.3676, Lon: 4.9041,
		Offers: []string{"Chess", "Woodworking"}, Wants: []string{"French", "Cooking"},
	},
}

const demoPassword = "password123"

func (DemoUsersSeeder) Run(ctx context.Context, db database.DB) error {
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

	for _, u := range demoUsers {
		_, err := tx.Exec(ctx,
			`INSERT INTO users (id, handle, email, password_hash, bio, location, latitude, longitude)
			 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (handle) DO NOTHING`,
			u.Handle, u.Email, string(hash), u.Bio, u.Location, u.Lat, u.Lon,
		)
		if err != nil {
			return err
		}

		for _, skill := range u.Offers {
			if err := linkSkill(ctx, tx, "skill_offers", u.Handle, skill); err != nil {
				return err
			}
		}
		for _, skill := range u.Wants {
			if err := linkSkill(ctx, tx, "skill_wants", u.Handle, skill); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func linkSkill(ctx context.Context, tx database.Tx, table, handle, skill string) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO `+table+` (id, user_id, skill_id)
		 SELECT gen_random_uuid(), u.id, s.id
		 FROM users u, skills s
		 WHERE u.handle = $1 AND s.name = $2
		 ON CONFLICT (user_id, skill_id) DO NOTHING`,
		handle, skill,
	)
	return err
}
