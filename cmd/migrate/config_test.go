package main

import (
	"os"
	"path/filepath"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	cwd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })
}

func TestResolveSettings_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MIGRATIONS_DIR", "/custom/migrations")

	s, err := resolveSettings("")
	if err != nil {
		t.Fatalf("resolveSettings: %v", err)
	}
	if s.Dir != "/custom/migrations" {
		t.Fatalf("expected MIGRATIONS_DIR override, got %q", s.Dir)
	}
}

func TestResolveSettings_FlagWins(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MIGRATIONS_DIR", "/custom/migrations")

	s, err := resolveSettings("./other")
	if err != nil {
		t.Fatalf("resolveSettings: %v", err)
	}
	if s.Dir != "./other" {
		t.Fatalf("expected flag to win, got %q", s.Dir)
	}
}

func TestResolveSettings_Default(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MIGRATIONS_DIR", "")

	s, err := resolveSettings("")
	if err != nil {
		t.Fatalf("resolveSettings: %v", err)
	}
	if s.Dir != "db/migrations" {
		t.Fatalf("expected default migrations dir, got %q", s.Dir)
	}
}

func TestResolveSettings_EnvFileDoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, ".env"), []byte("DB_DSN=postgres://from-file/db\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	chdir(t, tmp)
	t.Setenv("DB_DSN", "postgres://from-env/db")

	s, err := resolveSettings("")
	if err != nil {
		t.Fatalf("resolveSettings: %v", err)
	}
	if s.DSN != "postgres://from-env/db" {
		t.Fatalf("expected existing env to win, got %q", s.DSN)
	}
}

func TestCreateCommand_WritesGooseFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"create", "add_book_notes", "--dir", dir})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("create: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "*_add_book_notes.sql"))
	if len(matches) != 1 {
		t.Fatalf("expected one migration file, got %v", matches)
	}
}

func TestCreateCommand_RequiresName(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"create"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error without a name")
	}
}
