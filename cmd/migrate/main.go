package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/elif-d/StudioFitBack/pkg/utils"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dbUrl := os.Getenv("DB_URL")
	if dbUrl == "" {
		log.Fatal("DB_URL environment variable is required")
	}

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	candidates := []string{}
	current := cwd
	for i := 0; i < 6; i++ {
		candidates = append(candidates, filepath.Join(current, "migrations"))
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	exePath, err := os.Executable()
	if err == nil {
		exeDir := filepath.Dir(exePath)
		candidates = append(candidates,
			filepath.Join(exeDir, "migrations"),
			filepath.Join(exeDir, "..", "migrations"),
			filepath.Join(exeDir, "..", "..", "migrations"),
		)
	}
	var migrationsPath string
	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && info.IsDir() {
			migrationsPath = candidate
			break
		}
	}
	if migrationsPath == "" {
		log.Fatal("Migrations directory not found")
	}
	absMigrationsPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.New(
		"file://"+absMigrationsPath,
		dbUrl,
	)
	if err != nil {
		log.Fatal(err)
	}

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	if cmd == "down" {
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			log.Fatal(err)
		}
		log.Println("Migration down successful")
		return
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal(err)
	}
	log.Println("Migration up successful")

	if err := seedDefaultAdmin(dbUrl); err != nil {
		log.Fatalf("Failed to seed default admin: %v", err)
	}
}

// seedDefaultAdmin creates the bootstrap admin account when
// DEFAULT_ADMIN_USERNAME and DEFAULT_ADMIN_PASSWORD are set. The insert
// is a no-op if the username already exists.
func seedDefaultAdmin(dbUrl string) error {
	username := strings.ToLower(strings.TrimSpace(os.Getenv("DEFAULT_ADMIN_USERNAME")))
	password := os.Getenv("DEFAULT_ADMIN_PASSWORD")
	if username == "" || password == "" {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbUrl)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	// birth_date is NOT NULL and member lookups scan it into a plain
	// time.Time, so the seed row must carry a concrete date.
	tag, err := conn.Exec(ctx, `
		INSERT INTO members (username, password_hash, first_name, last_name, birth_date, membership_type, is_admin)
		VALUES ($1, $2, 'Studio', 'Admin', '1970-01-01', 'full', TRUE)
		ON CONFLICT (username) DO NOTHING
	`, username, hash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		log.Printf("Seeded default admin %q", username)
	}
	return nil
}
