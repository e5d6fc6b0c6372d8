package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/vendops/api/internal/auth"
	"github.com/vendops/api/internal/config"
	"github.com/vendops/api/internal/database"
)

type seedProduct struct {
	name        string
	category    string
	subcategory string
	price       string
	stock       int32
	description string
}

var catalog = map[string][]string{
	"Beverages": {"Soft Drinks", "Water", "Energy Drinks"},
	"Snacks":    {"Chocolate", "Chips"},
	"Machines":  {"Snack Machines", "Combo Machines"},
}

var products = []seedProduct{
	{"Classic Coca-Cola", "Beverages", "Soft Drinks", "2.50", 120, "Refreshing cola drink"},
	{"Pepsi", "Beverages", "Soft Drinks", "2.50", 95, "Classic cola"},
	{"Sprite", "Beverages", "Soft Drinks", "2.50", 80, "Lemon-lime soda"},
	{"Bottled Water", "Beverages", "Water", "1.50", 150, "Pure spring water"},
	{"Red Bull Energy Drink", "Beverages", "Energy Drinks", "3.50", 25, "Energy drink"},
	{"Snickers Bar", "Snacks", "Chocolate", "1.75", 60, "Chocolate bar with peanuts"},
	{"Kit Kat", "Snacks", "Chocolate", "1.75", 70, "Crispy wafer bar"},
	{"Lay's Classic Chips", "Snacks", "Chips", "2.00", 45, "Salted potato chips"},
	{"Doritos Nacho Cheese", "Snacks", "Chips", "2.25", 0, "Nacho cheese tortilla chips"},
	{"Snack Machine X200", "Machines", "Snack Machines", "2499.00", 4, "40-slot spiral snack machine"},
	{"Combo Machine C500", "Machines", "Combo Machines", "4299.00", 2, "Refrigerated snack and drink combo"},
}

func main() {
	// CLI flags
	username := flag.String("username", "", "Admin username")
	email := flag.String("email", "", "Admin email address")
	password := flag.String("password", "", "Admin password")
	flag.Parse()

	_ = godotenv.Load()

	// Fall back to environment variables, then defaults
	*username = firstNonEmpty(*username, os.Getenv("SEED_USERNAME"), "admin")
	*email = firstNonEmpty(*email, os.Getenv("SEED_EMAIL"), "admin@vendops.local")
	*password = firstNonEmpty(*password, os.Getenv("SEED_PASSWORD"))
	if *password == "" {
		*password = "admin123"
		log.Println("WARNING: Using default password 'admin123'. Change immediately in production!")
	}

	cfg := config.Load()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	log.Println("Connected to database")

	if err := database.Migrate(cfg.Database.URL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed in a transaction: everything or nothing
	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	q := database.New(tx)

	adminID, err := seedAdmin(ctx, q, *username, *email, *password)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	subcategories, err := seedCatalog(ctx, q)
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	created, err := seedProducts(ctx, q, subcategories)
	if err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}

	log.Println("Seed completed successfully")
	log.Printf("Admin ID: %s", adminID)
	log.Printf("Products created: %d", created)
}

// seedAdmin creates the admin user if the username is free.
func seedAdmin(ctx context.Context, q *database.Queries, username, email, password string) (string, error) {
	existing, err := q.GetUserByUsername(ctx, username)
	if err == nil {
		log.Printf("User '%s' already exists (ID: %s), skipping", username, existing.ID)
		return existing.ID.String(), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("check admin: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := q.CreateUser(ctx, database.CreateUserParams{
		Username:     username,
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		Role:         database.UserRoleAdmin,
	})
	if err != nil {
		return "", fmt.Errorf("create admin: %w", err)
	}
	return user.ID.String(), nil
}

type catalogRef struct {
	categoryID    pgtype.UUID
	subcategoryID pgtype.UUID
}

// seedCatalog creates missing categories and subcategories and returns a
// lookup keyed by "category/subcategory".
func seedCatalog(ctx context.Context, q *database.Queries) (map[string]catalogRef, error) {
	existing, err := q.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	byName := make(map[string]database.Category, len(existing))
	for _, c := range existing {
		byName[c.Name] = c
	}

	refs := make(map[string]catalogRef)
	for catName, subNames := range catalog {
		cat, ok := byName[catName]
		if !ok {
			cat, err = q.CreateCategory(ctx, database.CreateCategoryParams{Name: catName})
			if err != nil {
				return nil, fmt.Errorf("create category %s: %w", catName, err)
			}
		}

		subs, err := q.ListSubcategories(ctx, pgtype.UUID{Bytes: cat.ID, Valid: true})
		if err != nil {
			return nil, fmt.Errorf("list subcategories of %s: %w", catName, err)
		}
		subByName := make(map[string]database.Subcategory, len(subs))
		for _, s := range subs {
			subByName[s.Name] = s
		}

		for _, subName := range subNames {
			sub, ok := subByName[subName]
			if !ok {
				sub, err = q.CreateSubcategory(ctx, database.CreateSubcategoryParams{CategoryID: cat.ID, Name: subName})
				if err != nil {
					return nil, fmt.Errorf("create subcategory %s: %w", subName, err)
				}
			}
			refs[catName+"/"+subName] = catalogRef{
				categoryID:    pgtype.UUID{Bytes: cat.ID, Valid: true},
				subcategoryID: pgtype.UUID{Bytes: sub.ID, Valid: true},
			}
		}
	}
	return refs, nil
}

// seedProducts inserts products that do not exist yet by name.
func seedProducts(ctx context.Context, q *database.Queries, refs map[string]catalogRef) (int, error) {
	created := 0
	for _, p := range products {
		_, err := q.GetProductByName(ctx, p.name)
		if err == nil {
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return created, fmt.Errorf("check product %s: %w", p.name, err)
		}

		var price pgtype.Numeric
		if err := price.Scan(p.price); err != nil {
			return created, fmt.Errorf("parse price %s: %w", p.price, err)
		}
		status := database.ProductStatusActive
		if p.stock == 0 {
			status = database.ProductStatusOutOfStock
		}
		ref := refs[p.category+"/"+p.subcategory]

		_, err = q.CreateProduct(ctx, database.CreateProductParams{
			Name:           p.name,
			Category:       pgtype.Text{String: p.category, Valid: true},
			CategoryID:     ref.categoryID,
			SubcategoryID:  ref.subcategoryID,
			Price:          price,
			Description:    pgtype.Text{String: p.description, Valid: true},
			Stock:          p.stock,
			Specifications: database.Specifications{},
			Status:         status,
		})
		if err != nil {
			return created, fmt.Errorf("create product %s: %w", p.name, err)
		}
		created++
	}
	return created, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
