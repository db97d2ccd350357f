package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"meetbook/internal/config"
	"meetbook/internal/db"
	"meetbook/internal/model"
	"meetbook/internal/repository"
)

// SeedUserData describes one user fixture with their availability slots.
type SeedUserData struct {
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Password   string         `json:"password"`
	Timezone   string         `json:"timezone"`
	Profession string         `json:"profession"`
	Slots      []SeedSlotData `json:"slots"`
}

// SeedSlotData describes one availability slot fixture. Times are clock
// offsets in hours from 00:00; dates are offsets in days from today.
type SeedSlotData struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	StartHour    int    `json:"startHour"`
	EndHour      int    `json:"endHour"`
	StartDayFrom int    `json:"startDayFrom"`
	EndDayFrom   int    `json:"endDayFrom"`
}

var defaultFixtures = []SeedUserData{
	{
		Name: "Alice Mercer", Email: "alice@example.com", Password: "password",
		Timezone: "Europe/Berlin", Profession: "Cardiologist",
		Slots: []SeedSlotData{
			{Title: "Morning consultations", Description: "General cardiology consults", StartHour: 9, EndHour: 11, StartDayFrom: 0, EndDayFrom: 14},
			{Title: "Second opinions", Description: "Review of existing diagnoses", StartHour: 14, EndHour: 16, StartDayFrom: 0, EndDayFrom: 30},
		},
	},
	{
		Name: "Bruno Keller", Email: "bruno@example.com", Password: "password",
		Timezone: "UTC", Profession: "Tax Advisor",
		Slots: []SeedSlotData{
			{Title: "Quarterly filing review", Description: "Small business quarterly returns", StartHour: 10, EndHour: 12, StartDayFrom: 0, EndDayFrom: 21},
		},
	},
	{
		Name: "Chioma Adeyemi", Email: "chioma@example.com", Password: "password",
		Timezone: "Africa/Lagos", Profession: "Career Coach",
		Slots: []SeedSlotData{
			{Title: "CV and interview prep", Description: "One on one coaching sessions", StartHour: 17, EndHour: 19, StartDayFrom: 0, EndDayFrom: 14},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Slot{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	fixtures := defaultFixtures
	if len(os.Args) > 1 {
		loaded, err := loadFixtures(os.Args[1])
		if err != nil {
			log.Fatalf("Failed to load fixtures from %s: %v", os.Args[1], err)
		}
		fixtures = loaded
		log.Printf("Loaded %d user fixtures from %s", len(fixtures), os.Args[1])
	}

	userRepo := repository.NewUserRepository(gormDB)
	slotRepo := repository.NewSlotRepository(gormDB)
	ctx := context.Background()

	users, slots, skipped, err := seedUsers(ctx, userRepo, slotRepo, fixtures)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", users)
	log.Printf("  - Slots created: %d", slots)
	log.Printf("  - Existing users skipped: %d", skipped)
}

// loadFixtures reads user fixtures from a JSON file.
func loadFixtures(path string) ([]SeedUserData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}

	var fixtures []SeedUserData
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return fixtures, nil
}

// seedUsers creates each fixture user and their slots. Users that already
// exist (by email) are skipped along with their slots.
func seedUsers(
	ctx context.Context,
	userRepo repository.UserRepository,
	slotRepo repository.SlotRepository,
	fixtures []SeedUserData,
) (users int, slots int, skipped int, err error) {
	today := time.Now().Truncate(24 * time.Hour)

	for _, fixture := range fixtures {
		existing, err := userRepo.FindByEmail(ctx, fixture.Email)
		if err != nil && err != gorm.ErrRecordNotFound {
			return users, slots, skipped, fmt.Errorf("error checking user %s: %w", fixture.Email, err)
		}
		if existing != nil {
			log.Printf("User %s already exists, skipping", fixture.Email)
			skipped++
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(fixture.Password), bcrypt.DefaultCost)
		if err != nil {
			return users, slots, skipped, fmt.Errorf("error hashing password for %s: %w", fixture.Email, err)
		}

		user := &model.User{
			Name:         fixture.Name,
			Email:        fixture.Email,
			PasswordHash: string(hash),
			Timezone:     fixture.Timezone,
			Profession:   fixture.Profession,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return users, slots, skipped, fmt.Errorf("error creating user %s: %w", fixture.Email, err)
		}
		users++

		for _, sf := range fixture.Slots {
			slot := &model.Slot{
				Title:       sf.Title,
				Description: sf.Description,
				StartTime:   today.Add(time.Duration(sf.StartHour) * time.Hour),
				EndTime:     today.Add(time.Duration(sf.EndHour) * time.Hour),
				StartDate:   today.AddDate(0, 0, sf.StartDayFrom),
				EndDate:     today.AddDate(0, 0, sf.EndDayFrom),
				UserID:      user.ID,
				Active:      true,
			}
			if err := slotRepo.Create(ctx, slot); err != nil {
				return users, slots, skipped, fmt.Errorf("error creating slot %q for %s: %w", sf.Title, fixture.Email, err)
			}
			slots++
		}
	}

	return users, slots, skipped, nil
}
