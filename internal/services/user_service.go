package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/matrimony/backend/internal/models"
	"github.com/matrimony/backend/internal/storage"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidRole     = errors.New("invalid role")
)

// UserStore is the account contract shared by the in-memory and Mongo
// implementations. It also satisfies middleware.RoleResolver and
// PremiumLister.
type UserStore interface {
	Create(ctx context.Context, req *models.RegisterRequest) (*models.CreateUserResult, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetRole(ctx context.Context, email string) (string, error)
	VerifyCredentials(ctx context.Context, email, password string) (*models.User, error)
	List(ctx context.Context, search string) ([]*models.User, error)
	ListByRole(ctx context.Context, role string) ([]*models.User, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	RequestPremium(ctx context.Context, email string) error
	SetRole(ctx context.Context, email, role string) error
}

// UserService is the in-memory account store.
type UserService struct {
	mu    sync.RWMutex
	users []*models.User
	index map[string]*models.User
	store *storage.JSONStore
}

type userSnapshot struct {
	Users []*models.User `json:"users"`
}

func NewUserService(store *storage.JSONStore) (*UserService, error) {
	s := &UserService{
		index: make(map[string]*models.User),
		store: store,
	}

	if store != nil {
		var snap userSnapshot
		existed, err := store.Load(&snap)
		if err != nil {
			return nil, err
		}
		if existed {
			s.users = snap.Users
			for _, u := range s.users {
				s.index[u.Email] = u
			}
		}
	}

	return s, nil
}

func (s *UserService) persist() error {
	if s.store == nil {
		return nil
	}
	return s.store.Save(&userSnapshot{Users: s.users})
}

// Create registers an account. Signing up twice with the same email is a
// no-op success; the result says whether anything was inserted.
func (s *UserService) Create(ctx context.Context, req *models.RegisterRequest) (*models.CreateUserResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[req.Email]; exists {
		return &models.CreateUserResult{Inserted: false}, nil
	}

	u := &models.User{
		Email:     req.Email,
		Name:      req.Name,
		PhotoURL:  req.PhotoURL,
		Role:      models.RoleNormal,
		CreatedAt: time.Now(),
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}

	s.users = append(s.users, u)
	s.index[u.Email] = u

	if err := s.persist(); err != nil {
		return nil, err
	}

	return &models.CreateUserResult{Inserted: true, InsertedID: uuid.New().String()}, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, exists := s.index[email]
	if !exists {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) GetRole(ctx context.Context, email string) (string, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

// VerifyCredentials checks the password for accounts that registered with
// one. Accounts created through federated sign-in have no hash and pass on
// email alone.
func (s *UserService) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u.PasswordHash == "" {
		return u, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context, search string) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.User, 0, len(s.users))
	needle := strings.ToLower(search)
	for _, u := range s.users {
		if search != "" && !strings.Contains(strings.ToLower(u.Name), needle) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *UserService) ListByRole(ctx context.Context, role string) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.User, 0)
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *UserService) CountByRole(ctx context.Context, role string) (int64, error) {
	users, err := s.ListByRole(ctx, role)
	if err != nil {
		return 0, err
	}
	return int64(len(users)), nil
}

// RequestPremium moves the account to premium-requested. The transition is
// unconditional: re-requesting or requesting from premium simply sets the
// state again.
func (s *UserService) RequestPremium(ctx context.Context, email string) error {
	return s.SetRole(ctx, email, models.RolePremiumRequested)
}

// SetRole applies a single-step role transition with no precondition on the
// current state.
func (s *UserService) SetRole(ctx context.Context, email, role string) error {
	switch role {
	case models.RoleNormal, models.RolePremiumRequested, models.RolePremium, models.RoleAdmin:
	default:
		return ErrInvalidRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.index[email]
	if !exists {
		return ErrUserNotFound
	}
	u.Role = role
	return s.persist()
}
