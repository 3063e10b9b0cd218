package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matrimony/backend/internal/models"
)

var (
	ErrFavoriteNotFound  = errors.New("favorite not found")
	ErrAlreadyFavorited  = errors.New("biodata already favorited")
	ErrFavoriteForbidden = errors.New("not the owner of this favorite")
)

// FavoriteStore is the favorites contract shared by the in-memory and Mongo
// implementations.
type FavoriteStore interface {
	Add(ctx context.Context, userEmail string, biodataID int) (*models.Favorite, error)
	ListByEmail(ctx context.Context, userEmail string) ([]*models.Favorite, error)
	Remove(ctx context.Context, id, userEmail string) error
}

// FavoriteService is the in-memory favorites store. The directory reference
// supplies the denormalized listing fields at add time.
type FavoriteService struct {
	mu        sync.RWMutex
	favorites []*models.Favorite
	byUser    map[string]map[int]string // userEmail -> biodataID -> favoriteID
	directory BiodataDirectory
}

func NewFavoriteService(directory BiodataDirectory) *FavoriteService {
	return &FavoriteService{
		byUser:    make(map[string]map[int]string),
		directory: directory,
	}
}

func (s *FavoriteService) Add(ctx context.Context, userEmail string, biodataID int) (*models.Favorite, error) {
	b, err := s.directory.GetByID(ctx, biodataID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ids, exists := s.byUser[userEmail]; exists {
		if _, exists := ids[biodataID]; exists {
			return nil, ErrAlreadyFavorited
		}
	}

	fav := &models.Favorite{
		ID:                uuid.New().String(),
		UserEmail:         userEmail,
		BiodataID:         biodataID,
		Name:              b.Name,
		PermanentDivision: b.PermanentDivision,
		Occupation:        b.Occupation,
		CreatedAt:         time.Now(),
	}

	s.favorites = append(s.favorites, fav)
	if s.byUser[userEmail] == nil {
		s.byUser[userEmail] = make(map[int]string)
	}
	s.byUser[userEmail][biodataID] = fav.ID

	return fav, nil
}

func (s *FavoriteService) ListByEmail(ctx context.Context, userEmail string) ([]*models.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Favorite, 0)
	for _, fav := range s.favorites {
		if fav.UserEmail == userEmail {
			out = append(out, fav)
		}
	}
	return out, nil
}

func (s *FavoriteService) Remove(ctx context.Context, id, userEmail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, fav := range s.favorites {
		if fav.ID != id {
			continue
		}
		if fav.UserEmail != userEmail {
			return ErrFavoriteForbidden
		}
		s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
		delete(s.byUser[userEmail], fav.BiodataID)
		return nil
	}
	return ErrFavoriteNotFound
}
