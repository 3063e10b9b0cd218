package services

import (
	"context"
	"testing"

	"github.com/matrimony/backend/internal/models"
)

func TestFavoriteLifecycle(t *testing.T) {
	directory, _ := newTestDirectory(t)
	id := submitTestBiodata(t, directory, "owner@x.com", models.BiodataTypeFemale, 24, "Dhaka")
	s := NewFavoriteService(directory)
	ctx := context.Background()

	fav, err := s.Add(ctx, "fan@x.com", id)
	if err != nil {
		t.Fatalf("add: unexpected error: %v", err)
	}
	if fav.Name != "Member owner@x.com" || fav.PermanentDivision != "Dhaka" {
		t.Fatalf("denormalized fields not filled: %+v", fav)
	}

	if _, err := s.Add(ctx, "fan@x.com", id); err != ErrAlreadyFavorited {
		t.Fatalf("duplicate add: expected ErrAlreadyFavorited, got %v", err)
	}
	if _, err := s.Add(ctx, "fan@x.com", 999); err != ErrBiodataNotFound {
		t.Fatalf("unknown biodata: expected ErrBiodataNotFound, got %v", err)
	}

	mine, err := s.ListByEmail(ctx, "fan@x.com")
	if err != nil {
		t.Fatalf("list: unexpected error: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 favorite, got %d", len(mine))
	}

	if err := s.Remove(ctx, fav.ID, "intruder@x.com"); err != ErrFavoriteForbidden {
		t.Fatalf("foreign remove: expected ErrFavoriteForbidden, got %v", err)
	}
	if err := s.Remove(ctx, fav.ID, "fan@x.com"); err != nil {
		t.Fatalf("remove: unexpected error: %v", err)
	}
	if err := s.Remove(ctx, fav.ID, "fan@x.com"); err != ErrFavoriteNotFound {
		t.Fatalf("repeat remove: expected ErrFavoriteNotFound, got %v", err)
	}

	// Removing frees the slot for a fresh favorite.
	if _, err := s.Add(ctx, "fan@x.com", id); err != nil {
		t.Fatalf("re-add after remove: unexpected error: %v", err)
	}
}
