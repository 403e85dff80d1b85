package s3

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/Midoriya12/calsnap/internal/models"
	"github.com/Midoriya12/calsnap/internal/search"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeGetter struct {
	body string
	err  error
	key  string
}

func (f *fakeGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.key = *params.Key
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

type fakeUploader struct {
	input *s3.PutObjectInput
	body  []byte
}

func (f *fakeUploader) Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	f.input = input
	f.body, _ = io.ReadAll(input.Body)
	return &manager.UploadOutput{Location: "https://bucket.s3.amazonaws.com/" + *input.Key}, nil
}

func TestCatalogSource_ListAndGet(t *testing.T) {
	getter := &fakeGetter{body: `[
		{"id": "1", "name": "Vegan Lentil Soup", "dietaryRestrictions": ["Vegan"]},
		{"id": "", "name": "Dropped"},
		{"id": "2", "name": "Pad Thai", "calories": 500}
	]`}
	src := NewCatalogSource(getter, "bucket", "catalog/recipes.json")

	records, err := src.ListRecipes(context.Background())
	if err != nil {
		t.Fatalf("ListRecipes() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if getter.key != "catalog/recipes.json" {
		t.Errorf("key = %q, want catalog/recipes.json", getter.key)
	}

	r, err := src.GetRecipe(context.Background(), "2")
	if err != nil {
		t.Fatalf("GetRecipe() error: %v", err)
	}
	if r.Calories == nil || *r.Calories != 500 {
		t.Errorf("Calories = %v, want 500", r.Calories)
	}

	if _, err := src.GetRecipe(context.Background(), "3"); !errors.Is(err, search.ErrRecipeNotFound) {
		t.Errorf("GetRecipe(missing) = %v, want ErrRecipeNotFound", err)
	}
}

func TestCatalogSource_NoSuchKey(t *testing.T) {
	src := NewCatalogSource(&fakeGetter{err: &types.NoSuchKey{}}, "bucket", "k")

	_, err := src.ListRecipes(context.Background())
	if !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("ListRecipes() = %v, want ErrSnapshotNotFound", err)
	}
}

func TestPublishCatalogSnapshot(t *testing.T) {
	up := &fakeUploader{}
	records := []models.RecipeRecord{{ID: "1", Name: "Soup", Ingredients: []string{"Water"}}}

	loc, err := PublishCatalogSnapshot(context.Background(), up, "bucket", "catalog/recipes.json", records)
	if err != nil {
		t.Fatalf("PublishCatalogSnapshot() error: %v", err)
	}
	if !strings.HasSuffix(loc, "catalog/recipes.json") {
		t.Errorf("location = %q", loc)
	}
	if *up.input.ContentType != "application/json" {
		t.Errorf("ContentType = %q", *up.input.ContentType)
	}

	var got []models.RecipeRecord
	if err := json.Unmarshal(up.body, &got); err != nil {
		t.Fatalf("snapshot is not JSON: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Soup" {
		t.Errorf("snapshot = %+v", got)
	}
}

func TestPublishCatalogSnapshot_EmptyIsArray(t *testing.T) {
	up := &fakeUploader{}
	if _, err := PublishCatalogSnapshot(context.Background(), up, "b", "k", nil); err != nil {
		t.Fatalf("PublishCatalogSnapshot() error: %v", err)
	}
	if string(up.body) != "[]" {
		t.Errorf("body = %q, want []", up.body)
	}
}
