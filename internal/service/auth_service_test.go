package service

import (
	"context"
	"testing"

	"stockroom/internal/apierror"
	"stockroom/internal/config"
	"stockroom/internal/dto"
	"stockroom/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	items map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{items: make(map[uuid.UUID]*model.User)}
}

func (s *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	s.items[u.ID] = &cp
	return nil
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.items {
		if u.Email == email && u.Active {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) List(_ context.Context) ([]model.User, error) { return nil, nil }

func (s *stubUserRepo) Update(_ context.Context, u *model.User) error {
	cp := *u
	s.items[u.ID] = &cp
	return nil
}

func (s *stubUserRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if u, ok := s.items[id]; ok {
		u.Active = false
	}
	return nil
}

func newAuthFixture() AuthService {
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return NewAuthService(newStubUserRepo(), nil, cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, dto.RegisterRequest{
		Name:     "Dara",
		Email:    "dara@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.Equal(t, "user", user.Role)

	resp, err := svc.Login(ctx, dto.LoginRequest{Email: "dara@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, "Bearer", resp.TokenType)
	require.Equal(t, 3600, resp.ExpiresIn)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "B", Email: "a@example.com", Password: "secret123"})
	require.True(t, apierror.IsKind(err, apierror.KindConflict))
}

func TestLoginWrongPasswordFails(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "a@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshIssuesNewTokenPair(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)
	login, err := svc.Login(ctx, dto.LoginRequest{Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)
	require.Equal(t, login.User.ID, refreshed.User.ID)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc := newAuthFixture()
	_, err := svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: "not-a-jwt"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfileRehashesPassword(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, uuid.MustParse(user.ID), dto.UpdateProfileRequest{Password: "newsecret"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "a@example.com", Password: "secret123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, dto.LoginRequest{Email: "a@example.com", Password: "newsecret"})
	require.NoError(t, err)
}
