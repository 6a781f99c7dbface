package repository

import (
	"context"

	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
)

// UserRepository persists user profiles in the user directory.
type UserRepository interface {
	// FindByUID returns the profile for uid, or ErrUserNotFound.
	FindByUID(ctx context.Context, uid string) (*entity.UserProfile, error)

	// Save creates or overwrites a profile keyed by its UID.
	Save(ctx context.Context, profile *entity.UserProfile) error

	// UpdateRole changes the role of an existing profile.
	UpdateRole(ctx context.Context, uid string, role entity.Role) error

	// List returns every profile in the directory.
	List(ctx context.Context) ([]*entity.UserProfile, error)
}
