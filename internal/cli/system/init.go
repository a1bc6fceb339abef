package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/dentaplan/internal/cli"
	"github.com/julianstephens/dentaplan/internal/state"
)

type InitCmd struct {
	Force  bool   `help:"Reset all data before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	fileBacked := ctx.IsSQLite() || filepath.Ext(ctx.Store.GetConfigPath()) == ".json"

	if c.Force && fileBacked {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source
		if c.Source != "" {
			absDB, errDB := filepath.Abs(dbPath)
			absSource, errSource := filepath.Abs(c.Source)
			if errDB == nil && errSource == nil && absDB == absSource {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}

	if c.Force && !fileBacked {
		if _, err := ctx.Session.Dispatch(state.Reset{}); err != nil {
			return fmt.Errorf("failed to reset data: %w", err)
		}
		fmt.Println("Cleared existing data.")
	}
	cli.Success("Initialized dentaplan storage at: %s", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		cli.Success("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) copyData(ctx *cli.Context) error {
	source, err := cli.OpenStore(c.Source)
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	settings, err := source.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}
	fmt.Println("  Copied settings")

	patients, err := source.GetPatients()
	if err != nil {
		return fmt.Errorf("failed to get patients from source: %w", err)
	}
	if err := ctx.Store.SavePatients(patients); err != nil {
		return fmt.Errorf("failed to save patients to destination: %w", err)
	}
	fmt.Printf("  Copied %d patients\n", len(patients))

	appts, err := source.GetAppointments()
	if err != nil {
		return fmt.Errorf("failed to get appointments from source: %w", err)
	}
	if err := ctx.Store.SaveAppointments(appts); err != nil {
		return fmt.Errorf("failed to save appointments to destination: %w", err)
	}
	fmt.Printf("  Copied %d appointments\n", len(appts))

	return ctx.Session.Load()
}
