package seed

import (
	"context"
	"fmt"

	"github.com/Yassinemathlouthi/skillswap/internal/database"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

var defaultSkills = []string{
	"Guitar",
	"Piano",
	"Photography",
	"Cooking",
	"Baking",
	"Spanish",
	"French",
	"Japanese",
	"Yoga",
	"Chess",
	"Pottery",
	"Woodworking",
	"Drawing",
	"Public Speaking",
	"Swimming",
}

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, name := range defaultSkills {
		_, err := tx.Exec(ctx,
			`INSERT INTO skills (id, name) VALUES (gen_random_uuid(), $1) ON CONFLICT (name) DO NOTHING`,
			name,
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
