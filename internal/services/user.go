package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"collegeevents/internal/domain"
)

const minPasswordLen = 8

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type userService struct {
	userRepo       domain.UserRepository
	hasher         domain.PasswordHasher
	tokenIssuer    domain.TokenIssuer
	tokenExpiry    time.Duration
	contextTimeout time.Duration
}

// NewUserService creates a UserService with the given repository and auth ports.
func NewUserService(userRepo domain.UserRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry, timeout time.Duration) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		tokenExpiry:    tokenExpiry,
		contextTimeout: timeout,
	}
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}
	return nil
}

func (s *userService) SignUp(ctx context.Context, user *domain.User, password string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user.Email = domain.NormalizeEmail(user.Email)
	user.Name = strings.TrimSpace(user.Name)
	user.RegNo = strings.TrimSpace(user.RegNo)
	if !emailRegexp.MatchString(user.Email) {
		return fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if err := validatePassword(password); err != nil {
		return err
	}
	if user.Role == "" {
		user.Role = domain.RoleStudent
	}
	if !domain.ValidRole(user.Role) {
		return fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, user.Role)
	}
	if user.Year == 0 {
		user.Year = 1
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			return err
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	token, err := s.tokenIssuer.Issue(user.ID, user.Email, user.Role, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.userRepo.List(ctx)
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if patch.RegNo != nil {
		user.RegNo = strings.TrimSpace(*patch.RegNo)
	}
	if patch.Name != nil {
		user.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		email := domain.NormalizeEmail(*patch.Email)
		if !emailRegexp.MatchString(email) {
			return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
		}
		user.Email = email
	}
	if patch.Role != nil {
		if !domain.ValidRole(*patch.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, *patch.Role)
		}
		user.Role = *patch.Role
	}
	if patch.Department != nil {
		user.Department = strings.TrimSpace(*patch.Department)
	}
	if patch.Year != nil {
		if *patch.Year < 1 || *patch.Year > 4 {
			return nil, fmt.Errorf("%w: year must be between 1 and 4", domain.ErrInvalidInput)
		}
		user.Year = *patch.Year
	}
	if patch.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*patch.PhoneNumber)
	}
	if patch.Password != nil {
		if err := validatePassword(*patch.Password); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
