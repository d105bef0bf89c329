//go:build testutil
// +build testutil

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuserp/campuserp/internal/app/models"
	"github.com/campuserp/campuserp/internal/pkg/apperrors"
	"github.com/campuserp/campuserp/internal/pkg/auth"
)

func newJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "integration-test-secret",
		TokenIssuer:     "campuserp-test",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
	})
}

func TestLoginWithStudentCredential(t *testing.T) {
	_, repos := startDeps(t)
	ctx := context.Background()

	studentSvc := NewStudentService(repos.StudentRepository, repos.UserRepository)
	authSvc := NewAuthService(repos.UserRepository, repos.TokenRepository, newJWT())

	studentID, err := studentSvc.AddStudent(ctx, AddStudentInput{
		Name:     "Alice",
		Username: "alice",
		Password: "s3cret",
	})
	require.NoError(t, err)

	result, err := authSvc.Login(ctx, "alice", "s3cret", models.RoleStudent)
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	require.NotNil(t, result.User.StudentID)
	assert.Equal(t, studentID, *result.User.StudentID)

	_, err = authSvc.Login(ctx, "alice", "wrong", models.RoleStudent)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// Wrong role is the same failure as a missing user.
	_, err = authSvc.Login(ctx, "alice", "s3cret", models.RoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	_, repos := startDeps(t)
	ctx := context.Background()

	studentSvc := NewStudentService(repos.StudentRepository, repos.UserRepository)
	authSvc := NewAuthService(repos.UserRepository, repos.TokenRepository, newJWT())

	_, err := studentSvc.AddStudent(ctx, AddStudentInput{
		Name:     "Alice",
		Username: "alice",
		Password: "s3cret",
	})
	require.NoError(t, err)

	login, err := authSvc.Login(ctx, "alice", "s3cret", models.RoleStudent)
	require.NoError(t, err)

	refreshed, err := authSvc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The redeemed token is gone.
	_, err = authSvc.Refresh(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = authSvc.Refresh(ctx, "no-such-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestLoginSweepsExpiredTokens(t *testing.T) {
	handle, repos := startDeps(t)
	ctx := context.Background()

	studentSvc := NewStudentService(repos.StudentRepository, repos.UserRepository)
	authSvc := NewAuthService(repos.UserRepository, repos.TokenRepository, newJWT())

	_, err := studentSvc.AddStudent(ctx, AddStudentInput{
		Name:     "Alice",
		Username: "alice",
		Password: "s3cret",
	})
	require.NoError(t, err)

	login, err := authSvc.Login(ctx, "alice", "s3cret", models.RoleStudent)
	require.NoError(t, err)
	require.NotNil(t, login.User)

	require.NoError(t, repos.TokenRepository.Create(ctx, login.User.ID, "stale-token", time.Now().Add(-time.Hour)))

	_, err = authSvc.Login(ctx, "alice", "s3cret", models.RoleStudent)
	require.NoError(t, err)

	var stale int
	err = handle.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM refresh_tokens WHERE token = 'stale-token'`).Scan(&stale)
	require.NoError(t, err)
	assert.Zero(t, stale)
}

func TestDuplicateUsernameRejected(t *testing.T) {
	_, repos := startDeps(t)
	ctx := context.Background()

	studentSvc := NewStudentService(repos.StudentRepository, repos.UserRepository)

	_, err := studentSvc.AddStudent(ctx, AddStudentInput{Name: "Alice", Username: "shared", Password: "pw1"})
	require.NoError(t, err)

	_, err = studentSvc.AddStudent(ctx, AddStudentInput{Name: "Bob", Username: "shared", Password: "pw2"})
	assert.ErrorIs(t, err, apperrors.ErrUsernameExists)
}

func TestDuplicateRollNoRejected(t *testing.T) {
	_, repos := startDeps(t)
	ctx := context.Background()

	studentSvc := NewStudentService(repos.StudentRepository, repos.UserRepository)

	_, err := studentSvc.AddStudent(ctx, AddStudentInput{Name: "Alice", RollNo: "R-100"})
	require.NoError(t, err)

	_, err = studentSvc.AddStudent(ctx, AddStudentInput{Name: "Bob", RollNo: "R-100"})
	assert.ErrorIs(t, err, apperrors.ErrRollNoExists)
}
