package impl

import (
	"context"
	"testing"

	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
	domainerrors "github.com/jonathanpoaquiza/market-jals/internal/domain/errors"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/service"
	"github.com/jonathanpoaquiza/market-jals/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authServiceFixtures struct {
	service  usecase.AuthUsecase
	userRepo *fakeUserRepo
	verifier *fakeVerifier
}

func createTestAuthService(profiles ...*entity.UserProfile) authServiceFixtures {
	userRepo := newFakeUserRepo(profiles...)
	verifier := &fakeVerifier{credentials: map[string]*service.Credential{
		"token-ana": {UID: "ana", Email: "ana@example.com", DisplayName: "Ana"},
	}}

	svc := NewAuthService(AuthServiceParams{
		Verifier: verifier,
		UserRepo: userRepo,
		Logger:   testLogger(),
	})

	return authServiceFixtures{service: svc, userRepo: userRepo, verifier: verifier}
}

func adminProfile(uid string) *entity.UserProfile {
	return &entity.UserProfile{UID: uid, Role: entity.RoleAdmin}
}

func TestAuthService_Authenticate_CreatesProfileOnFirstSight(t *testing.T) {
	fx := createTestAuthService()

	profile, err := fx.service.Authenticate(context.Background(), "token-ana")

	require.NoError(t, err)
	assert.Equal(t, "ana", profile.UID)
	assert.Equal(t, entity.RoleClient, profile.Role)
	assert.False(t, profile.CreatedAt.IsZero())

	stored, err := fx.userRepo.FindByUID(context.Background(), "ana")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleClient, stored.Role)
}

func TestAuthService_Authenticate_KeepsExistingRole(t *testing.T) {
	fx := createTestAuthService(&entity.UserProfile{
		UID: "ana", Email: "ana@example.com", Role: entity.RoleAdmin,
	})

	profile, err := fx.service.Authenticate(context.Background(), "token-ana")

	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, profile.Role)
}

func TestAuthService_Authenticate_InvalidToken(t *testing.T) {
	fx := createTestAuthService()

	_, err := fx.service.Authenticate(context.Background(), "garbage")

	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestAuthService_GetProfile_NotFound(t *testing.T) {
	fx := createTestAuthService()

	_, err := fx.service.GetProfile(context.Background(), "ghost")

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAuthService_ListUsers_RequiresAdmin(t *testing.T) {
	fx := createTestAuthService()

	_, err := fx.service.ListUsers(context.Background(), &entity.UserProfile{
		UID: "emp", Role: entity.RoleEmployee,
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestAuthService_ListUsers_Success(t *testing.T) {
	fx := createTestAuthService(
		&entity.UserProfile{UID: "a", Role: entity.RoleClient},
		&entity.UserProfile{UID: "b", Role: entity.RoleEmployee},
	)

	users, err := fx.service.ListUsers(context.Background(), adminProfile("root"))

	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestAuthService_AssignRole_Success(t *testing.T) {
	fx := createTestAuthService(&entity.UserProfile{UID: "bob", Role: entity.RoleClient})

	updated, err := fx.service.AssignRole(context.Background(), adminProfile("root"), usecase.AssignRoleInput{
		ActorUID:  "root",
		TargetUID: "bob",
		Role:      "employee",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleEmployee, updated.Role)

	stored, err := fx.userRepo.FindByUID(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEmployee, stored.Role)
}

func TestAuthService_AssignRole_RejectsSelfDemotion(t *testing.T) {
	fx := createTestAuthService(adminProfile("root"))

	_, err := fx.service.AssignRole(context.Background(), adminProfile("root"), usecase.AssignRoleInput{
		ActorUID:  "root",
		TargetUID: "root",
		Role:      "client",
	})

	assert.ErrorIs(t, err, domainerrors.ErrSelfDemotion)

	// The role must be untouched after the rejection.
	stored, err := fx.userRepo.FindByUID(context.Background(), "root")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, stored.Role)
}

func TestAuthService_AssignRole_AllowsSelfReassignToAdmin(t *testing.T) {
	fx := createTestAuthService(adminProfile("root"))

	updated, err := fx.service.AssignRole(context.Background(), adminProfile("root"), usecase.AssignRoleInput{
		ActorUID:  "root",
		TargetUID: "root",
		Role:      "admin",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, updated.Role)
}

func TestAuthService_AssignRole_RejectsUnknownRole(t *testing.T) {
	fx := createTestAuthService(&entity.UserProfile{UID: "bob", Role: entity.RoleClient})

	_, err := fx.service.AssignRole(context.Background(), adminProfile("root"), usecase.AssignRoleInput{
		ActorUID:  "root",
		TargetUID: "bob",
		Role:      "superuser",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)
}

func TestAuthService_AssignRole_TargetNotFound(t *testing.T) {
	fx := createTestAuthService()

	_, err := fx.service.AssignRole(context.Background(), adminProfile("root"), usecase.AssignRoleInput{
		ActorUID:  "root",
		TargetUID: "ghost",
		Role:      "employee",
	})

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAuthService_AssignRole_RequiresAdmin(t *testing.T) {
	fx := createTestAuthService(&entity.UserProfile{UID: "bob", Role: entity.RoleClient})

	_, err := fx.service.AssignRole(context.Background(), &entity.UserProfile{
		UID: "emp", Role: entity.RoleEmployee,
	}, usecase.AssignRoleInput{
		ActorUID:  "emp",
		TargetUID: "bob",
		Role:      "employee",
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}
