// seed creates the users table and inserts a few sample registrations into
// the local dev database. Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jooddae/bojbot/internal/infrastructure/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	judge_id   TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

var registrations = []struct {
	id      string
	judgeID string
}{
	{"seed-user-1", "koosaga"},
	{"seed-user-2", "jh05013"},
	{"seed-user-3", "cubelover"},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatalf("create schema: %v", err)
	}

	var inserted, skipped int
	for _, r := range registrations {
		tag, err := pool.Exec(ctx, `
			INSERT INTO users (id, judge_id)
			VALUES ($1, $2)
			ON CONFLICT (id) DO NOTHING`,
			r.id, r.judgeID,
		)
		if err != nil {
			log.Fatalf("insert %s: %v", r.id, err)
		}
		if tag.RowsAffected() == 0 {
			skipped++
		} else {
			inserted++
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Registrations created: %d  (skipped %d already existing)\n", inserted, skipped)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Start the bot and register against a real judge account:")
	fmt.Println()
	fmt.Println("    go run ./cmd/bot")
	fmt.Println("    !register <your judge ID>")
	fmt.Println()
	fmt.Println("  Then submit the printed token to any problem, share the")
	fmt.Println("  submission, and paste the share link. React with +❌ to cancel.")
}
