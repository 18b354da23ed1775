package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sinavkoc/sinavkoc-backend/internal/config"
)

var (
	ok   = color.New(color.FgGreen, color.Bold).SprintFunc()
	fail = color.New(color.FgRed, color.Bold).SprintFunc()
)

func main() {
	var migrationDir string
	flag.StringVar(&migrationDir, "path", "migrations", "Path to migration files")
	flag.Parse()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		fatalf("DATABASE_URL is not set")
	}

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return
	}

	m, err := migrate.New("file://"+migrationDir, cfg.DatabaseURL)
	if err != nil {
		fatalf("Migration failed to initialize: %v", err)
	}
	defer m.Close()

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			fatalf("Up failed: %v", err)
		}
		fmt.Println(ok("✓"), "Migrated up successfully")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			fatalf("Down failed: %v", err)
		}
		fmt.Println(ok("✓"), "Migrated down successfully")
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("No migrations applied yet")
			return
		}
		if err != nil {
			fatalf("Version failed: %v", err)
		}
		state := ok("clean")
		if dirty {
			state = fail("dirty")
		}
		fmt.Printf("Version: %d (%s)\n", version, state)
	case "force":
		if len(args) < 2 {
			fatalf("force requires version argument")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			fatalf("Invalid version: %v", err)
		}
		if err := m.Force(v); err != nil {
			fatalf("Force failed: %v", err)
		}
		fmt.Println(ok("✓"), "Forced version to", v)
	default:
		printUsage()
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, fail("✗"), fmt.Sprintf(format, args...))
	os.Exit(1)
}

func printUsage() {
	fmt.Println("Usage: migrate [flags] <command>")
	fmt.Println("Commands: up, down, version, force <version>")
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
