package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Midoriya12/calsnap/internal/ai"
	"github.com/Midoriya12/calsnap/internal/models"
	"github.com/Midoriya12/calsnap/internal/repository"
	"github.com/Midoriya12/calsnap/internal/testutil"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestMealService(analyzer *testutil.MockMealAnalyzer, repo *testutil.MockSavedMealRepo) *MealService {
	svc := NewMealService(analyzer, repo)
	svc.Now = func() time.Time { return fixedNow }
	return svc
}

func TestAnalyzeMeal_Success(t *testing.T) {
	var gotType string
	analyzer := &testutil.MockMealAnalyzer{
		AnalyzeMealFunc: func(ctx context.Context, img ai.Image) (*models.MealEstimation, error) {
			gotType = img.MediaType
			return testutil.TestEstimation(), nil
		},
	}
	svc := newTestMealService(analyzer, &testutil.MockSavedMealRepo{})

	est, err := svc.AnalyzeMeal(context.Background(), testutil.TestPhotoDataURI())
	if err != nil {
		t.Fatalf("AnalyzeMeal() error: %v", err)
	}
	if est.DishName != "Avocado Toast" {
		t.Errorf("DishName = %q", est.DishName)
	}
	if gotType != "image/png" {
		t.Errorf("MediaType = %q, want image/png", gotType)
	}
}

func TestAnalyzeMeal_InvalidPhoto(t *testing.T) {
	svc := newTestMealService(&testutil.MockMealAnalyzer{}, &testutil.MockSavedMealRepo{})

	for _, uri := range []string{"", "not a data uri", "data:text/plain;base64,aGVsbG8="} {
		_, err := svc.AnalyzeMeal(context.Background(), uri)
		var ve ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("AnalyzeMeal(%q) = %v, want ValidationError", uri, err)
		}
	}
}

func TestAnalyzeMeal_ProviderError(t *testing.T) {
	analyzer := &testutil.MockMealAnalyzer{
		AnalyzeMealFunc: func(ctx context.Context, img ai.Image) (*models.MealEstimation, error) {
			return nil, errors.New("overloaded")
		},
	}
	svc := newTestMealService(analyzer, &testutil.MockSavedMealRepo{})

	_, err := svc.AnalyzeMeal(context.Background(), testutil.TestPhotoDataURI())
	var ve ValidationError
	if err == nil || errors.As(err, &ve) {
		t.Errorf("AnalyzeMeal() = %v, want provider error", err)
	}
}

func TestDetectIngredients_NilBecomesEmpty(t *testing.T) {
	analyzer := &testutil.MockMealAnalyzer{
		DetectIngredientsFunc: func(ctx context.Context, img ai.Image) ([]string, error) {
			return nil, nil
		},
	}
	svc := newTestMealService(analyzer, &testutil.MockSavedMealRepo{})

	got, err := svc.DetectIngredients(context.Background(), testutil.TestPhotoDataURI())
	if err != nil {
		t.Fatalf("DetectIngredients() error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("DetectIngredients() = %#v, want empty non-nil", got)
	}
}

func TestSaveListDeleteMeal(t *testing.T) {
	repo := &testutil.MockSavedMealRepo{}
	svc := newTestMealService(&testutil.MockMealAnalyzer{}, repo)
	ctx := context.Background()

	saved, err := svc.SaveMeal(ctx, testutil.TestUserID, *testutil.TestEstimation())
	if err != nil {
		t.Fatalf("SaveMeal() error: %v", err)
	}
	if saved.ID == "" {
		t.Error("saved meal has no id")
	}
	if !saved.SavedAt.Equal(fixedNow) {
		t.Errorf("SavedAt = %v, want %v", saved.SavedAt, fixedNow)
	}

	meals, err := svc.ListSavedMeals(ctx, testutil.TestUserID)
	if err != nil || len(meals) != 1 {
		t.Fatalf("ListSavedMeals() = %v, %v", meals, err)
	}

	others, _ := svc.ListSavedMeals(ctx, "someone-else")
	if others == nil || len(others) != 0 {
		t.Errorf("other user's meals = %#v, want empty", others)
	}

	if err := svc.DeleteSavedMeal(ctx, "someone-else", saved.ID); err == nil {
		t.Error("deleting another user's meal should fail")
	}
	if err := svc.DeleteSavedMeal(ctx, testutil.TestUserID, saved.ID); err != nil {
		t.Fatalf("DeleteSavedMeal() error: %v", err)
	}

	err = svc.DeleteSavedMeal(ctx, testutil.TestUserID, saved.ID)
	var nf repository.NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("second delete = %v, want NotFoundError", err)
	}
}

func TestSaveMeal_Validation(t *testing.T) {
	svc := newTestMealService(&testutil.MockMealAnalyzer{}, &testutil.MockSavedMealRepo{})

	cases := []models.MealEstimation{
		{DishName: "  "},
		{DishName: "Toast", EstimatedCalories: -1},
	}
	for _, est := range cases {
		_, err := svc.SaveMeal(context.Background(), testutil.TestUserID, est)
		var ve ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("SaveMeal(%+v) = %v, want ValidationError", est, err)
		}
	}
}
