package main

import (
	"bookinventory/internal/config"
)

type settings struct {
	DSN string
	Dir string
}

// resolveSettings reads DB_DSN and MIGRATIONS_DIR from the shared config.
// A non-empty dirFlag wins over MIGRATIONS_DIR.
func resolveSettings(dirFlag string) (settings, error) {
	cfg, err := config.Load()
	if err != nil {
		return settings{}, err
	}

	s := settings{DSN: cfg.DatabaseDSN, Dir: cfg.MigrationsDir}
	if dirFlag != "" {
		s.Dir = dirFlag
	}
	return s, nil
}
