package app

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"yuwelongo/internal/domain"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// AccountService validates sign-ups and profile edits before they reach the
// account store.
type AccountService struct {
	store AccountStore
}

func NewAccountService(store AccountStore) *AccountService {
	return &AccountService{store: store}
}

func (s *AccountService) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	if reg.Name == "" {
		return domain.User{}, fmt.Errorf("%w: name required", domain.ErrInvalidInput)
	}
	if err := validateEmail(reg.Email); err != nil {
		return domain.User{}, err
	}
	if len(reg.Password) < MinPasswordLength {
		return domain.User{}, fmt.Errorf("%w: password needs at least %d characters", domain.ErrInvalidInput, MinPasswordLength)
	}
	return s.store.Register(ctx, reg)
}

func (s *AccountService) Profile(ctx context.Context, userID int64) (domain.User, error) {
	if userID <= 0 {
		return domain.User{}, fmt.Errorf("%w: user id required", domain.ErrInvalidInput)
	}
	return s.store.User(ctx, userID)
}

// UpdateProfile changes the non-empty fields of update.
func (s *AccountService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.User, error) {
	update.Name = strings.TrimSpace(update.Name)
	update.Email = strings.TrimSpace(update.Email)
	switch {
	case update.ID <= 0:
		return domain.User{}, fmt.Errorf("%w: user id required", domain.ErrInvalidInput)
	case update.Name == "" && update.Email == "" && update.Password == "":
		return domain.User{}, fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	case update.Password != "" && len(update.Password) < MinPasswordLength:
		return domain.User{}, fmt.Errorf("%w: password needs at least %d characters", domain.ErrInvalidInput, MinPasswordLength)
	}
	if update.Email != "" {
		if err := validateEmail(update.Email); err != nil {
			return domain.User{}, err
		}
	}
	return s.store.UpdateProfile(ctx, update)
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email %q", domain.ErrInvalidInput, email)
	}
	return nil
}
