// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
)

// AssignRoleInput defines the data required to change a user's role.
type AssignRoleInput struct {
	ActorUID  string
	TargetUID string
	Role      string
}

// AuthUsecase defines the interface for authentication and account
// administration operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Authenticate verifies a raw ID token and returns the stored
	// profile, creating a client profile on first sight.
	Authenticate(ctx context.Context, idToken string) (*entity.UserProfile, error)

	// GetProfile returns the stored profile for a user.
	GetProfile(ctx context.Context, uid string) (*entity.UserProfile, error)

	// ListUsers returns every account in the directory. Admin only.
	ListUsers(ctx context.Context, actor *entity.UserProfile) ([]*entity.UserProfile, error)

	// AssignRole changes a user's role. Admin only; an admin cannot
	// remove their own admin role.
	AssignRole(ctx context.Context, actor *entity.UserProfile, input AssignRoleInput) (*entity.UserProfile, error)
}
