package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"meetbook/internal/model"
	"meetbook/internal/repository"
)

// SeedHandler creates demo users and slots for development environments.
type SeedHandler struct {
	userRepo repository.UserRepository
	slotRepo repository.SlotRepository
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(userRepo repository.UserRepository, slotRepo repository.SlotRepository) *SeedHandler {
	return &SeedHandler{userRepo: userRepo, slotRepo: slotRepo}
}

// SeedResponse represents the seed response.
type SeedResponse struct {
	Message string `json:"message"`
	Users   int    `json:"users"`
	Slots   int    `json:"slots"`
}

var seedUsers = []struct {
	Name       string
	Email      string
	Profession string
	SlotTitle  string
}{
	{"Alice Mercer", "alice@example.com", "Cardiologist", "Morning consultations"},
	{"Bruno Keller", "bruno@example.com", "Tax Advisor", "Quarterly filing review"},
	{"Chioma Adeyemi", "chioma@example.com", "Career Coach", "CV and interview prep"},
}

// SeedDemoData godoc
// @Summary Seed demo users with one active slot each
// @Tags seed
// @Produce json
// @Success 200 {object} SeedResponse
// @Failure 500 {object} map[string]string
// @Router /seed/demo [get]
func (h *SeedHandler) SeedDemoData(c echo.Context) error {
	ctx := c.Request().Context()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	userCount, slotCount := 0, 0
	base := time.Now().Truncate(24 * time.Hour)
	for i, su := range seedUsers {
		if existing, err := h.userRepo.FindByEmail(ctx, su.Email); err == nil && existing != nil {
			continue
		}

		user := &model.User{
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: string(hash),
			Timezone:     "UTC",
			Profession:   su.Profession,
		}
		if err := h.userRepo.Create(ctx, user); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{
				"error": fmt.Sprintf("seed user %s: %v", su.Email, err),
			})
		}
		userCount++

		slot := &model.Slot{
			Title:       su.SlotTitle,
			Description: fmt.Sprintf("Open availability with %s", su.Name),
			StartTime:   base.Add(time.Duration(9+i) * time.Hour),
			EndTime:     base.Add(time.Duration(10+i) * time.Hour),
			StartDate:   base,
			EndDate:     base.AddDate(0, 0, 14),
			UserID:      user.ID,
			Active:      true,
		}
		if err := h.slotRepo.Create(ctx, slot); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{
				"error": fmt.Sprintf("seed slot for %s: %v", su.Email, err),
			})
		}
		slotCount++
	}

	return c.JSON(http.StatusOK, SeedResponse{
		Message: "demo data seeded",
		Users:   userCount,
		Slots:   slotCount,
	})
}
