package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"internhub/internal/config"
	"internhub/internal/db"
	"internhub/internal/model"
	"internhub/internal/repository"
)

// SeedIntern is one fixture record. Password is optional; interns without
// one behave like Google-only accounts.
type SeedIntern struct {
	InternID  string `json:"internID"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
}

func main() {
	fixturePath := flag.String("file", "seed/interns.json", "path to intern fixture JSON")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Intern{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	fixtures, err := loadFixtures(*fixturePath)
	if err != nil {
		log.Fatalf("Failed to load fixtures: %v", err)
	}
	log.Printf("Loaded %d interns from %s", len(fixtures), *fixturePath)

	internRepo := repository.NewInternRepository(gormDB)
	ctx := context.Background()

	created, updated, err := seedInterns(ctx, internRepo, fixtures)
	if err != nil {
		log.Fatalf("Failed to seed interns: %v", err)
	}

	log.Printf("Seed completed: %d created, %d updated", created, updated)
}

// loadFixtures reads and parses the fixture file.
func loadFixtures(path string) ([]SeedIntern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture file: %w", err)
	}

	var fixtures []SeedIntern
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("parse fixture JSON: %w", err)
	}
	return fixtures, nil
}

// seedInterns upserts fixture records by email, hashing any provided
// password the same way signup does.
func seedInterns(ctx context.Context, repo repository.InternRepository, fixtures []SeedIntern) (created int, updated int, err error) {
	for _, fixture := range fixtures {
		email := strings.ToLower(strings.TrimSpace(fixture.Email))
		if email == "" {
			log.Printf("Skipping fixture with empty email (internID %q)", fixture.InternID)
			continue
		}

		existing, err := repo.FindByEmail(ctx, email)
		if err != nil && err != gorm.ErrRecordNotFound {
			return created, updated, fmt.Errorf("error checking intern %s: %w", email, err)
		}

		var passwordHash string
		if fixture.Password != "" {
			hashed, err := bcrypt.GenerateFromPassword([]byte(fixture.Password), bcrypt.DefaultCost)
			if err != nil {
				return created, updated, fmt.Errorf("error hashing password for %s: %w", email, err)
			}
			passwordHash = string(hashed)
		}

		if existing != nil {
			existing.InternID = strings.TrimSpace(fixture.InternID)
			existing.FirstName = strings.TrimSpace(fixture.FirstName)
			existing.LastName = strings.TrimSpace(fixture.LastName)
			if passwordHash != "" {
				existing.PasswordHash = passwordHash
			}
			if err := repo.Save(ctx, existing); err != nil {
				return created, updated, fmt.Errorf("error updating intern %s: %w", email, err)
			}
			updated++
		} else {
			intern := &model.Intern{
				InternID:     strings.TrimSpace(fixture.InternID),
				FirstName:    strings.TrimSpace(fixture.FirstName),
				LastName:     strings.TrimSpace(fixture.LastName),
				Email:        email,
				PasswordHash: passwordHash,
			}
			if err := repo.Create(ctx, intern); err != nil {
				return created, updated, fmt.Errorf("error creating intern %s: %w", email, err)
			}
			created++
		}
	}
	return created, updated, nil
}
