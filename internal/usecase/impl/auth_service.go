// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
	domainerrors "github.com/jonathanpoaquiza/market-jals/internal/domain/errors"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/repository"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/service"
	"github.com/jonathanpoaquiza/market-jals/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	verifier service.CredentialVerifier
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Verifier service.CredentialVerifier
	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		verifier: params.Verifier,
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

// Authenticate verifies the credential and resolves the stored profile.
// A verified identity with no profile gets a fresh client profile, so
// the first authenticated request doubles as registration.
func (srv *authService) Authenticate(ctx context.Context, idToken string) (*entity.UserProfile, error) {
	credential, err := srv.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}

	profile, err := srv.userRepo.FindByUID(ctx, credential.UID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to load profile")
	}

	profile = entity.NewUserProfile(credential.UID, credential.Email, credential.DisplayName)
	if err := srv.userRepo.Save(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "failed to create profile")
	}

	srv.logger.Info("Created profile for first-time user",
		"uid", credential.UID, "email", credential.Email)

	return profile, nil
}

// GetProfile retrieves the stored profile for a user.
func (srv *authService) GetProfile(ctx context.Context, uid string) (*entity.UserProfile, error) {
	profile, err := srv.userRepo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "profile lookup")
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	return profile, nil
}

// ListUsers returns every account in the directory.
func (srv *authService) ListUsers(ctx context.Context, actor *entity.UserProfile) ([]*entity.UserProfile, error) {
	if !actor.HasMinimumRole(entity.RoleAdmin) {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "listing users requires admin")
	}

	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// AssignRole changes a user's role.
func (srv *authService) AssignRole(ctx context.Context, actor *entity.UserProfile, input usecase.AssignRoleInput) (*entity.UserProfile, error) {
	if !actor.HasMinimumRole(entity.RoleAdmin) {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "assigning roles requires admin")
	}

	role, ok := entity.ParseRole(input.Role)
	if !ok {
		return nil, errors.Wrapf(domainerrors.ErrInvalidRole, "role %q", input.Role)
	}

	target, err := srv.userRepo.FindByUID(ctx, input.TargetUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "role target")
		}

		return nil, errors.Wrap(err, "failed to load role target")
	}

	// The last admin locking themselves out is unrecoverable without
	// direct database access.
	if actor.UID == target.UID && role != entity.RoleAdmin {
		return nil, errors.Wrap(domainerrors.ErrSelfDemotion, "self demotion")
	}

	if err := srv.userRepo.UpdateRole(ctx, target.UID, role); err != nil {
		return nil, errors.Wrap(err, "failed to update role")
	}

	srv.logger.Info("Role assigned",
		"actor", actor.UID, "target", target.UID, "role", role)

	target.Role = role

	return target, nil
}
