package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	authdomain "settlease-backend/internal/auth/domain"
	authdto "settlease-backend/internal/auth/dto"
	"settlease-backend/internal/auth/session"
	"settlease-backend/pkg/birthday"
	"settlease-backend/pkg/config"
	"settlease-backend/pkg/firebase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeUserRepo struct {
	mu            sync.Mutex
	users         map[string]*authdomain.User
	refreshTokens map[string]*authdomain.RefreshToken
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:         map[string]*authdomain.User{},
		refreshTokens: map[string]*authdomain.RefreshToken{},
	}
}

func (r *fakeUserRepo) FindByID(id string) (*authdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Upsert(user *authdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.users[user.ID]; ok {
		existing.Name = user.Name
		existing.Email = user.Email
		existing.PhotoURL = user.PhotoURL
		existing.LastLogin = user.LastLogin
		return nil
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Update(user *authdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) SaveRefreshToken(token *authdomain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshTokens[token.Token] = token
	return nil
}

func (r *fakeUserRepo) FindRefreshToken(token string) (*authdomain.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshTokens[token], nil
}

func (r *fakeUserRepo) DeleteRefreshToken(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.refreshTokens, token)
	return nil
}

func (r *fakeUserRepo) DeleteExpiredRefreshTokens(before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, t := range r.refreshTokens {
		if t.ExpiresAt.Before(before) {
			delete(r.refreshTokens, k)
			n++
		}
	}
	return n, nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{values: map[string]string{}}
}

func (r *fakeTokenRepo) Set(userID, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[userID+"/"+key] = value
	return nil
}

func (r *fakeTokenRepo) Get(userID, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.values[userID+"/"+key], nil
}

func (r *fakeTokenRepo) Delete(userID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, userID+"/"+key)
	return nil
}

func (r *fakeTokenRepo) DeleteAll(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.values {
		if len(k) > len(userID) && k[:len(userID)+1] == userID+"/" {
			delete(r.values, k)
		}
	}
	return nil
}

type fakeVerifier struct {
	identity *firebase.Identity
	err      error
}

func (v *fakeVerifier) VerifyIdentity(ctx context.Context, idToken string) (*firebase.Identity, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.identity, nil
}

type fixture struct {
	uc       AuthUsecase
	users    *fakeUserRepo
	tokens   *fakeTokenRepo
	sessions *session.Registry
	verifier *fakeVerifier
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		users:    newFakeUserRepo(),
		tokens:   newFakeTokenRepo(),
		sessions: session.NewRegistry(),
		verifier: &fakeVerifier{identity: &firebase.Identity{
			UID:         "uid-1",
			DisplayName: "Ada",
			Email:       "ada@example.com",
			CreatedAt:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			LastSignIn:  time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
		}},
	}
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
	}
	f.uc = NewAuthUsecase(f.users, f.tokens, f.verifier, f.sessions, cfg, zaptest.NewLogger(t))
	return f
}

func TestFirebaseSignIn(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.FirebaseSignIn(context.Background(), &authdto.FirebaseSignInRequest{
		IDToken:     "id-token",
		AccessToken: "google-access",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "uid-1", resp.User.ID)
	assert.Equal(t, "Ada", resp.User.Name)
	assert.Empty(t, resp.User.HomeAddress)
	assert.Nil(t, resp.User.Birthday)
	assert.Equal(t, session.Authenticated, resp.Session.State)

	stored, err := f.uc.AccessToken("uid-1")
	require.NoError(t, err)
	assert.Equal(t, "google-access", stored)

	user, err := f.uc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", user.ID)
}

func TestFirebaseSignIn_KeepsProfileAttributes(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.FirebaseSignIn(context.Background(), &authdto.FirebaseSignInRequest{IDToken: "id-token"})
	require.NoError(t, err)

	home := "123 Main St"
	_, err = f.uc.UpdateProfile("uid-1", &authdto.UpdateProfileRequest{HomeAddress: &home})
	require.NoError(t, err)

	f.verifier.identity.DisplayName = "Ada L."
	resp, err := f.uc.FirebaseSignIn(context.Background(), &authdto.FirebaseSignInRequest{IDToken: "id-token"})
	require.NoError(t, err)

	assert.Equal(t, "Ada L.", resp.User.Name)
	assert.Equal(t, "123 Main St", resp.User.HomeAddress)
}

func TestFirebaseSignIn_Rejected(t *testing.T) {
	f := newFixture(t)
	f.verifier.err = errors.New("token expired")

	_, err := f.uc.FirebaseSignIn(context.Background(), &authdto.FirebaseSignInRequest{IDToken: "bad"})

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, session.Unauthenticated, f.uc.SessionState("uid-1").State)
}

func TestRefreshToken(t *testing.T) {
	f := newFixture(t)
	signIn, err := f.uc.FirebaseSignIn(context.Background(), &authdto.FirebaseSignInRequest{IDToken: "id-token"})
	require.NoError(t, err)

	refreshed, err := f.uc.RefreshToken(signIn.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, signIn.RefreshToken, refreshed.RefreshToken)
	assert.Equal(t, session.Authenticated, refreshed.Session.State)

	_, err = f.uc.RefreshToken(signIn.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshTokenExpired)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.FirebaseSignIn(context.Background(), &authdto.FirebaseSignInRequest{IDToken: "id-token"})
	require.NoError(t, err)

	_, err = f.uc.ValidateToken(resp.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = f.uc.RefreshToken(resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = f.uc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.FirebaseSignIn(context.Background(), &authdto.FirebaseSignInRequest{
		IDToken:     "id-token",
		AccessToken: "google-access",
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Logout("uid-1", resp.RefreshToken))

	stored, err := f.uc.AccessToken("uid-1")
	require.NoError(t, err)
	assert.Empty(t, stored)
	assert.Equal(t, session.Unauthenticated, f.uc.SessionState("uid-1").State)

	_, err = f.uc.RefreshToken(resp.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshTokenExpired)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.FirebaseSignIn(context.Background(), &authdto.FirebaseSignInRequest{IDToken: "id-token"})
	require.NoError(t, err)

	work, gender, bday := "1 Office Park", "female", "1990-06-15"
	user, err := f.uc.UpdateProfile("uid-1", &authdto.UpdateProfileRequest{
		WorkAddress: &work,
		Gender:      &gender,
		Birthday:    &bday,
	})
	require.NoError(t, err)
	assert.Equal(t, "1 Office Park", user.WorkAddress)
	assert.Equal(t, "female", user.Gender)
	require.NotNil(t, user.Birthday)
	assert.Equal(t, time.June, user.Birthday.Month())

	empty := ""
	user, err = f.uc.UpdateProfile("uid-1", &authdto.UpdateProfileRequest{Birthday: &empty})
	require.NoError(t, err)
	assert.Nil(t, user.Birthday)
	assert.Equal(t, "female", user.Gender)

	bad := "not a date"
	_, err = f.uc.UpdateProfile("uid-1", &authdto.UpdateProfileRequest{Birthday: &bad})
	assert.ErrorIs(t, err, birthday.ErrInvalidBirthday)

	_, err = f.uc.UpdateProfile("missing", &authdto.UpdateProfileRequest{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogout_IgnoresOtherUsersRefreshToken(t *testing.T) {
	f := newFixture(t)
	other, err := f.uc.FirebaseSignIn(context.Background(), &authdto.FirebaseSignInRequest{IDToken: "id-token"})
	require.NoError(t, err)

	require.NoError(t, f.uc.Logout("uid-2", other.RefreshToken))

	_, err = f.uc.RefreshToken(other.RefreshToken)
	assert.NoError(t, err)
}

func TestLogout_ClearsTokenStore(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.FirebaseSignIn(context.Background(), &authdto.FirebaseSignInRequest{
		IDToken:     "id-token",
		AccessToken: "google-access",
	})
	require.NoError(t, err)
	require.NoError(t, f.tokens.Set("uid-1", "driveCursor", "abc"))

	require.NoError(t, f.uc.Logout("uid-1", ""))

	assert.Empty(t, f.tokens.values)
}

func TestFirebaseSignIn_WithoutAccessTokenDropsStaleOne(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.FirebaseSignIn(context.Background(), &authdto.FirebaseSignInRequest{
		IDToken:     "id-token",
		AccessToken: "google-access",
	})
	require.NoError(t, err)

	_, err = f.uc.FirebaseSignIn(context.Background(), &authdto.FirebaseSignInRequest{IDToken: "id-token"})
	require.NoError(t, err)

	stored, err := f.uc.AccessToken("uid-1")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRefreshToken_ResumesSessionAfterRestart(t *testing.T) {
	f := newFixture(t)
	signIn, err := f.uc.FirebaseSignIn(context.Background(), &authdto.FirebaseSignInRequest{IDToken: "id-token"})
	require.NoError(t, err)

	// a fresh registry is what a restarted server has
	restarted := NewAuthUsecase(f.users, f.tokens, f.verifier, session.NewRegistry(), &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
	}, zaptest.NewLogger(t))
	assert.Equal(t, session.Unauthenticated, restarted.SessionState("uid-1").State)

	resp, err := restarted.RefreshToken(signIn.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, session.Authenticated, resp.Session.State)
	assert.Equal(t, session.Authenticated, restarted.SessionState("uid-1").State)
}
