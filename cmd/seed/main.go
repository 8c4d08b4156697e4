package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/superstar-bot/config"
	"github.com/oksasatya/superstar-bot/pkg/helpers"
)

// Seeds one demo customer with a few orders so "track orders" has something to show.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	phone := "07901234567"
	password := "password123"
	name := "مستخدم تجريبي"
	hash, err := helpers.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (full_name, phone, email, business_name, business_address, governorate,
		                   annual_revenue, business_type, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (phone) DO UPDATE SET full_name = EXCLUDED.full_name, updated_at = now()
		RETURNING id
	`, name, phone, "demo@example.com", "متجر النجمة", "شارع الرشيد", "بغداد",
		"50k_100k", "wholesale", hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s phone=%s password=%s\n", id, phone, password)

	orders := []struct {
		number string
		status string
		total  float64
		age    string
	}{
		{"SS-1001", "delivered", 125000, "20 days"},
		{"SS-1002", "shipped", 78500.5, "5 days"},
		{"SS-1003", "pending", 43000, "1 hour"},
	}
	for _, o := range orders {
		if _, err := db.Exec(`
			INSERT INTO orders (order_number, user_id, status, total_amount, created_at)
			VALUES ($1, $2, $3, $4, now() - $5::interval)
			ON CONFLICT (order_number) DO NOTHING
		`, o.number, id, o.status, o.total, o.age); err != nil {
			log.Fatalf("failed to seed order %s: %v", o.number, err)
		}
	}
	fmt.Printf("seeded %d orders\n", len(orders))
}
