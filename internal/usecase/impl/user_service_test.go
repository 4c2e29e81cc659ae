package impl

import (
	"context"
	"testing"

	"lifelink/internal/domain/entity"
	domainerrors "lifelink/internal/domain/errors"
	"lifelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserServiceForTest() (usecase.UserUsecase, *fakeUserRepo, *fakeAuthRepo) {
	userRepo := newFakeUserRepo()
	authRepo := newFakeAuthRepo()
	factory := &fakeFactory{userRepo: userRepo, authRepo: authRepo}

	svc := NewUserService(UserServiceParams{
		TxManager:    &fakeTxManager{factory: factory},
		UserRepo:     userRepo,
		AuthRepo:     authRepo,
		Hasher:       fakeHasher{},
		TokenService: fakeTokenService{},
		Logger:       testLogger(),
	})

	return svc, userRepo, authRepo
}

func registerTestUser(t *testing.T, svc usecase.UserUsecase, email string) *entity.User {
	t.Helper()

	out, err := svc.RegisterUser(context.Background(), usecase.RegisterUserInput{
		Name:      "Ana Torres",
		Email:     email,
		Password:  "secreto123",
		BloodType: "O-",
		Location:  "Iztapalapa",
	})
	require.NoError(t, err)

	return out.User
}

func TestUserService_RegisterUser(t *testing.T) {
	svc, _, authRepo := newUserServiceForTest()

	user := registerTestUser(t, svc, "ana@example.com")

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, entity.RoleUser, user.Role)
	require.NotNil(t, user.BloodType)
	assert.Equal(t, entity.BloodONeg, *user.BloodType)

	auth, err := authRepo.FindAuthentication(context.Background(), entity.ProviderTypeEmail, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hashed:secreto123", auth.PasswordHash)
}

func TestUserService_RegisterUser_DuplicateEmail(t *testing.T) {
	svc, _, _ := newUserServiceForTest()
	registerTestUser(t, svc, "ana@example.com")

	_, err := svc.RegisterUser(context.Background(), usecase.RegisterUserInput{
		Name:     "Otra Ana",
		Email:    "ana@example.com",
		Password: "otra-clave",
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestUserService_RegisterUser_InvalidBloodType(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	_, err := svc.RegisterUser(context.Background(), usecase.RegisterUserInput{
		Name:      "Ana",
		Email:     "ana@example.com",
		Password:  "secreto123",
		BloodType: "Z+",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidBloodType)
}

func TestUserService_LoginAndRefresh(t *testing.T) {
	svc, _, authRepo := newUserServiceForTest()
	user := registerTestUser(t, svc, "ana@example.com")

	out, err := svc.Login(context.Background(), usecase.LoginInput{
		Email:    "ana@example.com",
		Password: "secreto123",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, out.User.ID)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)

	// The stored session holds only the token hash.
	_, err = authRepo.FindRefreshTokenByHash(context.Background(), "hash:"+out.RefreshToken)
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), usecase.RefreshTokenInput{RefreshToken: out.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestUserService_LoginWrongPassword(t *testing.T) {
	svc, _, _ := newUserServiceForTest()
	registerTestUser(t, svc, "ana@example.com")

	_, err := svc.Login(context.Background(), usecase.LoginInput{
		Email:    "ana@example.com",
		Password: "incorrecta",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_LoginUnknownEmail(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	_, err := svc.Login(context.Background(), usecase.LoginInput{
		Email:    "nadie@example.com",
		Password: "lo-que-sea",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_RefreshUnknownToken(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	_, err := svc.RefreshToken(context.Background(), usecase.RefreshTokenInput{RefreshToken: "forged"})
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestUserService_LogoutEndsSession(t *testing.T) {
	svc, _, _ := newUserServiceForTest()
	registerTestUser(t, svc, "ana@example.com")

	out, err := svc.Login(context.Background(), usecase.LoginInput{
		Email:    "ana@example.com",
		Password: "secreto123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), usecase.LogoutInput{RefreshToken: out.RefreshToken}))

	_, err = svc.RefreshToken(context.Background(), usecase.RefreshTokenInput{RefreshToken: out.RefreshToken})
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)

	// Logout is idempotent.
	assert.NoError(t, svc.Logout(context.Background(), usecase.LogoutInput{RefreshToken: out.RefreshToken}))
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc, _, _ := newUserServiceForTest()
	user := registerTestUser(t, svc, "ana@example.com")

	updated, err := svc.UpdateProfile(context.Background(), user.ID, usecase.UpdateProfileInput{
		Phone:     "+52 55 1234 5678",
		BloodType: "A+",
	})
	require.NoError(t, err)
	assert.Equal(t, "+52 55 1234 5678", updated.Phone)
	require.NotNil(t, updated.BloodType)
	assert.Equal(t, entity.BloodAPos, *updated.BloodType)
	// Untouched fields survive.
	assert.Equal(t, "Ana Torres", updated.Name)

	loaded, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "+52 55 1234 5678", loaded.Phone)
}
