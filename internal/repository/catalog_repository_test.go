package repository

import (
	"context"
	"errors"
	"testing"

	"tireshop/internal/domain"

	"github.com/google/uuid"
)

func TestCatalogDuplicateNamesRejected(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository(testDB)

	c := domain.Category{ID: uuid.New(), Name: "Duplicated category"}
	if err := repo.CreateCategory(ctx, &c); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	dup := domain.Category{ID: uuid.New(), Name: "Duplicated category"}
	if err := repo.CreateCategory(ctx, &dup); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestTireBrandsNestTheirModels(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository(testDB)

	brand := domain.TireBrand{ID: uuid.New(), Name: "Nested Tire Co"}
	if err := repo.CreateTireBrand(ctx, &brand); err != nil {
		t.Fatalf("failed to create brand: %v", err)
	}
	for _, name := range []string{"Blizzak", "Turanza"} {
		m := domain.TireModel{ID: uuid.New(), BrandID: brand.ID, Name: name}
		if err := repo.CreateTireModel(ctx, &m); err != nil {
			t.Fatalf("failed to create model %s: %v", name, err)
		}
	}

	// same model name under the same brand collides
	dup := domain.TireModel{ID: uuid.New(), BrandID: brand.ID, Name: "Blizzak"}
	if err := repo.CreateTireModel(ctx, &dup); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName for model, got %v", err)
	}

	// a model under an unknown brand reports the missing brand
	orphan := domain.TireModel{ID: uuid.New(), BrandID: uuid.New(), Name: "Orphan"}
	if err := repo.CreateTireModel(ctx, &orphan); !errors.Is(err, ErrBrandNotFound) {
		t.Fatalf("expected ErrBrandNotFound, got %v", err)
	}

	brands, err := repo.ListTireBrands(ctx)
	if err != nil {
		t.Fatalf("failed to list brands: %v", err)
	}
	for _, b := range brands {
		if b.ID != brand.ID {
			continue
		}
		if len(b.Models) != 2 {
			t.Fatalf("expected 2 nested models, got %d", len(b.Models))
		}
		if b.Models[0].Name != "Blizzak" || b.Models[1].Name != "Turanza" {
			t.Errorf("models not sorted by name: %+v", b.Models)
		}
		return
	}
	t.Fatal("created brand missing from listing")
}

func TestSeededIndicesPresent(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository(testDB)

	speeds, err := repo.ListSpeedIndices(ctx)
	if err != nil {
		t.Fatalf("failed to list speed indices: %v", err)
	}
	if len(speeds) == 0 {
		t.Fatal("no seeded speed indices")
	}
	for i := 1; i < len(speeds); i++ {
		if speeds[i-1].MaxKph > speeds[i].MaxKph {
			t.Errorf("speed indices not ordered by max speed: %+v", speeds)
			break
		}
	}

	loads, err := repo.ListLoadIndices(ctx)
	if err != nil {
		t.Fatalf("failed to list load indices: %v", err)
	}
	if len(loads) == 0 {
		t.Fatal("no seeded load indices")
	}
}
