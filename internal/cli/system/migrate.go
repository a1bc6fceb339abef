package system

import (
	"fmt"

	"github.com/julianstephens/dentaplan/internal/cli"
)

type migrator interface {
	Open() error
	Migrate() (int, error)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return fmt.Errorf("migrate command only supports SQL storage")
	}

	if err := m.Open(); err != nil {
		return err
	}
	count, err := m.Migrate()
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		cli.Success("Successfully applied %d migration(s).", count)
	}
	return nil
}
