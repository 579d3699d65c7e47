package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	"github.com/sekyere/schoolfees-api/pkg/apperror"
	"github.com/sekyere/schoolfees-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users []*entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	r.users = append(r.users, &stored)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	for i, u := range r.users {
		if u.ID == user.ID {
			stored := *user
			r.users[i] = &stored
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	repo := &fakeUserRepo{}
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(repo, jwtManager), repo
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password, role string, active bool) *entity.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	user := &entity.User{
		FirstName: "Akosua",
		LastName:  "Darko",
		Email:     email,
		Password:  hash,
		Role:      role,
		IsActive:  active,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestLogin(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "bursar@school.test", "secret123", entity.RoleBursar, true)

	out, err := svc.Login(context.Background(), &LoginInput{Email: "bursar@school.test", Password: "secret123"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, entity.RoleBursar, out.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "bursar@school.test", "secret123", entity.RoleBursar, true)

	_, err := svc.Login(context.Background(), &LoginInput{Email: "bursar@school.test", Password: "wrong"})

	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "left@school.test", "secret123", entity.RoleViewer, false)

	_, err := svc.Login(context.Background(), &LoginInput{Email: "left@school.test", Password: "secret123"})

	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestRegisterDefaultsToViewer(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, err := svc.Register(context.Background(), &RegisterInput{
		FirstName: "Kwabena",
		LastName:  "Osei",
		Email:     "kosei@school.test",
		Password:  "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleViewer, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret123", user.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "taken@school.test", "secret123", entity.RoleViewer, true)

	_, err := svc.Register(context.Background(), &RegisterInput{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "taken@school.test",
		Password:  "secret123",
	})

	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestRefreshToken(t *testing.T) {
	svc, repo := newAuthFixture(t)
	user := seedUser(t, repo, "bursar@school.test", "secret123", entity.RoleBursar, true)
	ctx := context.Background()

	out, err := svc.Login(ctx, &LoginInput{Email: "bursar@school.test", Password: "secret123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, out.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, refreshed.User.ID)

	_, err = svc.RefreshToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	svc, repo := newAuthFixture(t)
	user := seedUser(t, repo, "bursar@school.test", "secret123", entity.RoleBursar, true)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, user.ID, &ChangePasswordInput{CurrentPassword: "wrong", NewPassword: "newsecret"})
	assert.Error(t, err)

	err = svc.ChangePassword(ctx, user.ID, &ChangePasswordInput{CurrentPassword: "secret123", NewPassword: "newsecret"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginInput{Email: "bursar@school.test", Password: "newsecret"})
	assert.NoError(t, err)
}
