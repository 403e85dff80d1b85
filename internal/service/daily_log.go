package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Midoriya12/calsnap/internal/models"
	"github.com/Midoriya12/calsnap/internal/repository"
	goaway "github.com/TwiN/go-away"
	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
)

// DateLayout is the calendar-day format of the daily log.
const DateLayout = "2006-01-02"

// DailyLogService is the business logic layer for the daily nutrition log.
type DailyLogService struct {
	Repo repository.DailyLogRepo
	Now  func() time.Time
}

// LogMealRequest is one meal to add to the log.
type LogMealRequest struct {
	MealName   string            `json:"mealName"`
	Calories   float64           `json:"calories"`
	Protein    *float64          `json:"protein,omitempty"`
	Fat        *float64          `json:"fat,omitempty"`
	Carbs      *float64          `json:"carbs,omitempty"`
	Fiber      *float64          `json:"fiber,omitempty"`
	DateLogged string            `json:"dateLogged"`
	Source     models.MealSource `json:"source"`
}

// DailyLogResponse is one day of the log.
type DailyLogResponse struct {
	Date   string              `json:"date"`
	Meals  []models.LoggedMeal `json:"meals"`
	Totals models.DailyTotals  `json:"totals"`
}

// NewDailyLogService is the constructor function for initializing a new DailyLogService
func NewDailyLogService(repo repository.DailyLogRepo) *DailyLogService {
	return &DailyLogService{Repo: repo, Now: time.Now}
}

// LogMeal validates and stores a log entry. A missing date means today and a
// missing source means manual entry.
func (s *DailyLogService) LogMeal(ctx context.Context, userID string, req LogMealRequest) (*models.LoggedMeal, error) {
	if err := s.validateLogMeal(&req); err != nil {
		return nil, err
	}

	meal := &models.LoggedMeal{
		ID:         uuid.NewString(),
		UserID:     userID,
		MealName:   req.MealName,
		Calories:   req.Calories,
		Protein:    req.Protein,
		Fat:        req.Fat,
		Carbs:      req.Carbs,
		Fiber:      req.Fiber,
		DateLogged: req.DateLogged,
		Source:     req.Source,
		CreatedAt:  s.Now().UTC(),
	}
	if err := s.Repo.CreateLoggedMeal(ctx, meal); err != nil {
		return nil, err
	}
	return meal, nil
}

func (s *DailyLogService) validateLogMeal(req *LogMealRequest) error {
	req.MealName = strings.TrimSpace(req.MealName)
	if req.MealName == "" {
		return validationErrorf("Meal name is required")
	}

	profanityDetector := goaway.NewProfanityDetector().WithSanitizeLeetSpeak(true).WithSanitizeSpecialCharacters(true).WithSanitizeAccents(false)
	if profanityDetector.IsProfane(req.MealName) {
		return validationErrorf("meal name contains inappropriate language")
	}

	if req.Calories < 0 {
		return validationErrorf("Calories must not be negative")
	}
	macros := []struct {
		name  string
		value *float64
	}{
		{"protein", req.Protein},
		{"fat", req.Fat},
		{"carbs", req.Carbs},
		{"fiber", req.Fiber},
	}
	for _, m := range macros {
		if m.value != nil && *m.value < 0 {
			return validationErrorf("%s must not be negative", m.name)
		}
	}

	if req.DateLogged == "" {
		req.DateLogged = s.Now().Format(DateLayout)
	}
	if err := validateDate(req.DateLogged); err != nil {
		return err
	}

	switch req.Source {
	case "":
		req.Source = models.MealSourceManual
	case models.MealSourceAI, models.MealSourceManual:
	default:
		return validationErrorf("source must be %q or %q", models.MealSourceAI, models.MealSourceManual)
	}
	return nil
}

func validateDate(date string) error {
	if !govalidator.IsTime(date, DateLayout) {
		return validationErrorf("date must be formatted YYYY-MM-DD, got %q", date)
	}
	return nil
}

// GetDailyLog returns the day's entries newest first with their totals.
func (s *DailyLogService) GetDailyLog(ctx context.Context, userID, date string) (*DailyLogResponse, error) {
	if date == "" {
		date = s.Now().Format(DateLayout)
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}

	meals, err := s.Repo.GetLoggedMealsByDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if meals == nil {
		meals = []models.LoggedMeal{}
	}
	return &DailyLogResponse{
		Date:   date,
		Meals:  meals,
		Totals: models.SumDailyTotals(meals),
	}, nil
}

// DeleteLoggedMeal removes one log entry.
func (s *DailyLogService) DeleteLoggedMeal(ctx context.Context, userID, mealID string) error {
	if mealID == "" {
		return validationErrorf("meal id is required")
	}
	err := s.Repo.DeleteLoggedMeal(ctx, userID, mealID)
	var nf repository.NotFoundError
	if err != nil && !errors.As(err, &nf) {
		return fmt.Errorf("failed to delete logged meal: %w", err)
	}
	return err
}
