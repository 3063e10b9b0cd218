package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/matrimony/backend/internal/models"
	"github.com/matrimony/backend/internal/storage"
)

var (
	ErrBiodataNotFound = errors.New("biodata not found")
	ErrBiodataBadInput = errors.New("invalid biodata input")
)

// similarLimit caps the "profiles like this one" strip. Selection is type
// match in store order only; there is no relevance ranking.
const similarLimit = 3

// PremiumLister exposes the premium accounts used for directory blending.
type PremiumLister interface {
	ListByRole(ctx context.Context, role string) ([]*models.User, error)
}

// BiodataDirectory is the profile directory contract shared by the in-memory
// and Mongo implementations.
type BiodataDirectory interface {
	List(ctx context.Context, filter *models.BiodataFilter, page, pageSize int) (*models.DirectoryPage, error)
	GetByID(ctx context.Context, id int) (*models.Biodata, error)
	GetByEmail(ctx context.Context, email string) (*models.Biodata, error)
	GetSimilar(ctx context.Context, biodataType, excludeEmail string) ([]*models.Biodata, error)
	Submit(ctx context.Context, req *models.SubmitBiodataRequest) (*models.SubmitResult, error)
	Update(ctx context.Context, email string, req *models.SubmitBiodataRequest) (*models.Biodata, error)
	Counts(ctx context.Context) (total, male, female int64, err error)
}

// BiodataService is the in-memory directory, optionally persisted through a
// JSON store. Records keep insertion order so paging matches the document
// store's default ordering.
type BiodataService struct {
	mu       sync.RWMutex
	biodatas []*models.Biodata
	byEmail  map[string]*models.Biodata
	byID     map[int]*models.Biodata
	nextID   int
	premium  PremiumLister
	store    *storage.JSONStore
}

type biodataSnapshot struct {
	Biodatas []*models.Biodata `json:"biodatas"`
	NextID   int               `json:"next_id"`
}

func NewBiodataService(store *storage.JSONStore, premium PremiumLister) (*BiodataService, error) {
	s := &BiodataService{
		byEmail: make(map[string]*models.Biodata),
		byID:    make(map[int]*models.Biodata),
		nextID:  1,
		premium: premium,
		store:   store,
	}

	if store != nil {
		var snap biodataSnapshot
		existed, err := store.Load(&snap)
		if err != nil {
			return nil, err
		}
		if existed {
			s.biodatas = snap.Biodatas
			s.nextID = snap.NextID
			for _, b := range s.biodatas {
				s.byEmail[b.ContactEmail] = b
				s.byID[b.BiodataID] = b
				if b.BiodataID >= s.nextID {
					s.nextID = b.BiodataID + 1
				}
			}
		}
	}

	return s, nil
}

// persist must be called with the write lock held.
func (s *BiodataService) persist() error {
	if s.store == nil {
		return nil
	}
	return s.store.Save(&biodataSnapshot{Biodatas: s.biodatas, NextID: s.nextID})
}

func (s *BiodataService) List(ctx context.Context, filter *models.BiodataFilter, page, pageSize int) (*models.DirectoryPage, error) {
	page, pageSize = NormalizePagination(page, pageSize)

	s.mu.RLock()
	matched := make([]*models.Biodata, 0)
	for _, b := range s.biodatas {
		if filter == nil || filter.Matches(b) {
			matched = append(matched, b)
		}
	}
	s.mu.RUnlock()

	totalCount := int64(len(matched))
	items := pageWindow(matched, page, pageSize)

	premiumItems, err := s.premiumSlice(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	return &models.DirectoryPage{
		Items:        items,
		PremiumItems: premiumItems,
		TotalCount:   totalCount,
		TotalPages:   TotalPages(totalCount, pageSize),
		CurrentPage:  page,
	}, nil
}

// premiumSlice builds the criteria-independent featured list: premium
// accounts joined to their biodata by email, accounts without biodata kept.
func (s *BiodataService) premiumSlice(ctx context.Context, page, pageSize int) ([]*models.PremiumBiodata, error) {
	users, err := s.premium.ListByRole(ctx, models.RolePremium)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*models.PremiumBiodata, 0, len(users))
	for _, u := range users {
		p := &models.PremiumBiodata{
			Role:  u.Role,
			Email: u.Email,
		}
		if b, ok := s.byEmail[u.Email]; ok {
			p.BiodataID = b.BiodataID
			p.BiodataType = b.BiodataType
			p.ProfileImage = b.ProfileImage
			p.Division = b.PermanentDivision
			p.Occupation = b.Occupation
			p.Age = b.Age
		}
		all = append(all, p)
	}

	return pageWindow(all, page, pageSize), nil
}

func (s *BiodataService) GetByID(ctx context.Context, id int) (*models.Biodata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.byID[id]
	if !ok {
		return nil, ErrBiodataNotFound
	}
	return b, nil
}

func (s *BiodataService) GetByEmail(ctx context.Context, email string) (*models.Biodata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.byEmail[email]
	if !ok {
		return nil, ErrBiodataNotFound
	}
	return b, nil
}

func (s *BiodataService) GetSimilar(ctx context.Context, biodataType, excludeEmail string) ([]*models.Biodata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	similar := make([]*models.Biodata, 0, similarLimit)
	for _, b := range s.biodatas {
		if b.BiodataType != biodataType || b.ContactEmail == excludeEmail {
			continue
		}
		similar = append(similar, b)
		if len(similar) == similarLimit {
			break
		}
	}
	return similar, nil
}

// Submit assigns the next sequential id and inserts. A second submission for
// an existing contact email is a no-op reported through the result, not an
// error. Id assignment is serialized under the write lock, so concurrent
// submissions cannot collide.
func (s *BiodataService) Submit(ctx context.Context, req *models.SubmitBiodataRequest) (*models.SubmitResult, error) {
	if req.ContactEmail == "" {
		return nil, ErrBiodataBadInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[req.ContactEmail]; exists {
		return &models.SubmitResult{Inserted: false}, nil
	}

	b := biodataFromRequest(req)
	b.BiodataID = s.nextID
	b.CreatedAt = time.Now()
	s.nextID++

	s.biodatas = append(s.biodatas, b)
	s.byEmail[b.ContactEmail] = b
	s.byID[b.BiodataID] = b

	if err := s.persist(); err != nil {
		return nil, err
	}

	return &models.SubmitResult{Inserted: true, BiodataID: b.BiodataID}, nil
}

// Update edits the descriptive fields of the caller's biodata. Id and
// contact email are immutable.
func (s *BiodataService) Update(ctx context.Context, email string, req *models.SubmitBiodataRequest) (*models.Biodata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.byEmail[email]
	if !ok {
		return nil, ErrBiodataNotFound
	}

	updated := biodataFromRequest(req)
	updated.BiodataID = b.BiodataID
	updated.ContactEmail = b.ContactEmail
	updated.CreatedAt = b.CreatedAt
	*b = *updated

	if err := s.persist(); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BiodataService) Counts(ctx context.Context) (total, male, female int64, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.biodatas {
		total++
		switch b.BiodataType {
		case models.BiodataTypeMale:
			male++
		case models.BiodataTypeFemale:
			female++
		}
	}
	return total, male, female, nil
}

func biodataFromRequest(req *models.SubmitBiodataRequest) *models.Biodata {
	return &models.Biodata{
		BiodataType:           req.BiodataType,
		Name:                  req.Name,
		ContactEmail:          req.ContactEmail,
		ProfileImage:          req.ProfileImage,
		DateOfBirth:           req.DateOfBirth,
		Age:                   req.Age,
		Height:                req.Height,
		Weight:                req.Weight,
		Occupation:            req.Occupation,
		Race:                  req.Race,
		FathersName:           req.FathersName,
		MothersName:           req.MothersName,
		PermanentDivision:     req.PermanentDivision,
		PresentDivision:       req.PresentDivision,
		ExpectedPartnerAge:    req.ExpectedPartnerAge,
		ExpectedPartnerHeight: req.ExpectedPartnerHeight,
		ExpectedPartnerWeight: req.ExpectedPartnerWeight,
		MobileNumber:          req.MobileNumber,
	}
}

// NormalizePagination applies the directory defaults to missing or
// nonsensical inputs.
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = models.DefaultPage
	}
	if pageSize < 1 {
		pageSize = models.DefaultPageSize
	}
	return page, pageSize
}

// TotalPages is ceil(totalCount / pageSize).
func TotalPages(totalCount int64, pageSize int) int {
	return int((totalCount + int64(pageSize) - 1) / int64(pageSize))
}

// pageWindow slices out the requested page; pages past the end yield an
// empty, non-nil slice.
func pageWindow[T any](all []T, page, pageSize int) []T {
	offset := (page - 1) * pageSize
	if offset >= len(all) {
		return []T{}
	}
	end := offset + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
