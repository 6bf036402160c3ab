package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/models"
)

func newAuthService(t *testing.T) (*AuthService, testRepos) {
	t.Helper()
	db := testDB(t)
	repos := newTestRepos(db)
	svc := NewAuthService(repos.users, "test_secret", time.Hour)
	return svc, repos
}

func TestAuthService_Signup_PublicAlwaysStudent(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Signup(SignupInput{
		Username: "S2023001",
		Password: "password123",
		Role:     "admin",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestAuthService_Signup_AdminPicksRole(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Signup(SignupInput{
		Username: "staff_meera",
		Password: "password123",
		Role:     "staff",
	}, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, user.Role)
}

func TestAuthService_Signup_ShortPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Signup(SignupInput{Username: "S2023001", Password: "short"}, "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "password")
}

func TestAuthService_Signup_DuplicateUsername(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Signup(SignupInput{Username: "S2023001", Password: "password123"}, "")
	require.NoError(t, err)

	_, err = svc.Signup(SignupInput{Username: "S2023001", Password: "password456"}, "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
}

func TestAuthService_LoginAndValidateToken(t *testing.T) {
	svc, _ := newAuthService(t)

	created, err := svc.Signup(SignupInput{Username: "S2023001", Password: "password123"}, "")
	require.NoError(t, err)

	user, token, err := svc.Login("S2023001", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	require.NotEmpty(t, token)

	validated, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, validated.ID)
	assert.Equal(t, models.RoleStudent, validated.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Signup(SignupInput{Username: "S2023001", Password: "password123"}, "")
	require.NoError(t, err)

	_, _, err = svc.Login("S2023001", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)

	// a token signed with a different secret is rejected
	db := testDB(t)
	other := NewAuthService(newTestRepos(db).users, "other_secret", time.Hour)
	created, err := other.Signup(SignupInput{Username: "S2023001", Password: "password123"}, "")
	require.NoError(t, err)
	_, token, err := other.Login(created.Username, "password123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
