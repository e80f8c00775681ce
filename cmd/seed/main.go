package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"blog-backend/config"
	"blog-backend/internal/domain/entity"
	"blog-backend/pkg/helpers"
)

var sampleBlogs = []struct {
	Title       string
	Description string
	Category    string
}{
	{"Getting started with Go", "A short tour of the language and its tooling.", "Programming"},
	{"A weekend in Yogyakarta", "Temples, street food and way too much coffee.", "Travel"},
	{"Sourdough for beginners", "Flour, water, salt, patience.", "Food"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@example.com"
	password := "password123"
	name := "demoUser"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (name, email, role, bio, password, avatar_id, avatar_url)
		VALUES ($1, $2, 'user', 'Bio', $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name, email, hash, entity.DefaultAvatarID, entity.DefaultAvatarURL).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	for _, b := range sampleBlogs {
		var blogID string
		err := db.QueryRow(`
			INSERT INTO blogs (author_id, title, description, category, image_id, image_url)
			SELECT $1, $2, $3, $4, '', ''
			WHERE NOT EXISTS (SELECT 1 FROM blogs WHERE author_id = $1 AND title = $2)
			RETURNING id
		`, id, b.Title, b.Description, b.Category).Scan(&blogID)
		if err == sql.ErrNoRows {
			continue // already seeded
		}
		if err != nil {
			log.Fatalf("failed to seed blog %q: %v", b.Title, err)
		}
		fmt.Printf("seeded blog: id=%s title=%q\n", blogID, b.Title)
	}
}
