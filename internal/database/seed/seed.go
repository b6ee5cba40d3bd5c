package seed

import (
	"context"
	"fmt"
	"log"

	"github.com/Yassinemathlouthi/skillswap/internal/database"
)

// Seeder loads one slice of development data. Seeders must be idempotent
// so a restart with seeding enabled never duplicates rows.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Printf("Seed | applied name=%s", s.Name())
		}
	}
	return nil
}

// Run applies the default seeders: the skill catalog plus a handful of
// demo users with offers, wants, and locations.
func Run(ctx context.Context, db database.DB, logger *log.Logger) error {
	return Runner{
		Seeders: []Seeder{SkillsSeeder{}, DemoUsersSeeder{}},
		Logger:  logger,
	}.Run(ctx, db)
}
