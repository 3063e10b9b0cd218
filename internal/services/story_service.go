package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matrimony/backend/internal/models"
)

var ErrStoryNotFound = errors.New("success story not found")

// StoryStore is the success-story contract shared by the in-memory and Mongo
// implementations.
type StoryStore interface {
	Create(ctx context.Context, req *models.CreateStoryRequest) (*models.SuccessStory, error)
	List(ctx context.Context) ([]*models.SuccessStory, error)
	GetByID(ctx context.Context, id string) (*models.SuccessStory, error)
}

// StoryService is the in-memory success-story store.
type StoryService struct {
	mu      sync.RWMutex
	stories map[string]*models.SuccessStory
}

func NewStoryService() *StoryService {
	return &StoryService{
		stories: make(map[string]*models.SuccessStory),
	}
}

func (s *StoryService) Create(ctx context.Context, req *models.CreateStoryRequest) (*models.SuccessStory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	story := &models.SuccessStory{
		ID:               uuid.New().String(),
		SelfBiodataID:    req.SelfBiodataID,
		PartnerBiodataID: req.PartnerBiodataID,
		CoupleImage:      req.CoupleImage,
		Review:           req.Review,
		MarriageDate:     req.MarriageDate,
		CreatedAt:        time.Now(),
	}
	s.stories[story.ID] = story
	return story, nil
}

// List returns stories newest-marriage-first, matching the home page order.
func (s *StoryService) List(ctx context.Context) ([]*models.SuccessStory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.SuccessStory, 0, len(s.stories))
	for _, story := range s.stories {
		out = append(out, story)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].MarriageDate.After(out[j].MarriageDate)
	})
	return out, nil
}

func (s *StoryService) GetByID(ctx context.Context, id string) (*models.SuccessStory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	story, exists := s.stories[id]
	if !exists {
		return nil, ErrStoryNotFound
	}
	return story, nil
}
