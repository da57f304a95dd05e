package usecase

import (
	"context"
	"fmt"
	"time"

	authdomain "settlease-backend/internal/auth/domain"
	authdto "settlease-backend/internal/auth/dto"
	"settlease-backend/internal/auth/repository"
	"settlease-backend/internal/auth/session"
	"settlease-backend/pkg/birthday"
	"settlease-backend/pkg/config"
	"settlease-backend/pkg/firebase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	verifier  IdentityVerifier
	sessions  *session.Registry
	config    *config.Config
	logger    *zap.Logger
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	verifier IdentityVerifier,
	sessions *session.Registry,
	cfg *config.Config,
	logger *zap.Logger,
) AuthUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authUsecase{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		verifier:  verifier,
		sessions:  sessions,
		config:    cfg,
		logger:    logger.Named("auth"),
	}
}

func (u *authUsecase) FirebaseSignIn(ctx context.Context, req *authdto.FirebaseSignInRequest) (*authdto.TokenResponse, error) {
	identity, err := u.verifier.VerifyIdentity(ctx, req.IDToken)
	if err != nil {
		u.logger.Warn("Sign-in rejected", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if _, err := u.sessions.Publish(identity.UID, session.Event{Kind: session.EventSignInStarted}); err != nil {
		return nil, err
	}

	resp, err := u.completeSignIn(identity, req.AccessToken)
	if err != nil {
		_, _ = u.sessions.Publish(identity.UID, session.Event{Kind: session.EventSignInFailed, Err: err})
		return nil, err
	}

	snap, err := u.sessions.Publish(identity.UID, session.Event{Kind: session.EventSignedIn, User: resp.User})
	if err != nil {
		return nil, err
	}
	resp.Session = snap

	u.logger.Info("User signed in", zap.String("user_id", identity.UID))
	return resp, nil
}

func (u *authUsecase) completeSignIn(identity *firebase.Identity, accessToken string) (*authdto.TokenResponse, error) {
	user := &authdomain.User{
		ID:        identity.UID,
		Name:      identity.DisplayName,
		Email:     identity.Email,
		PhotoURL:  identity.PhotoURL,
		CreatedAt: identity.CreatedAt,
		LastLogin: identity.LastSignIn,
	}
	if err := u.userRepo.Upsert(user); err != nil {
		return nil, err
	}

	// Reload so profile attributes saved earlier come back
	stored, err := u.userRepo.FindByID(identity.UID)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		user = stored
	}

	// A sign-in without a Google access token must not leave the previous one usable
	if accessToken != "" {
		err = u.tokenRepo.Set(user.ID, authdomain.AccessTokenKey, accessToken)
	} else {
		err = u.tokenRepo.Delete(user.ID, authdomain.AccessTokenKey)
	}
	if err != nil {
		return nil, err
	}

	return u.generateTokens(user)
}

func (u *authUsecase) RefreshToken(refreshToken string) (*authdto.TokenResponse, error) {
	userID, err := u.parseToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	// Check if token exists in repository
	storedToken, err := u.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if storedToken == nil || storedToken.ExpiresAt.Before(time.Now()) {
		return nil, ErrRefreshTokenExpired
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// Rotate: the old refresh token is single use
	if err := u.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return nil, err
	}

	resp, err := u.generateTokens(user)
	if err != nil {
		return nil, err
	}
	// A valid refresh token resumes the session, also after a restart
	resp.Session, err = u.sessions.Publish(user.ID, session.Event{Kind: session.EventSignedIn, User: user})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (u *authUsecase) Logout(userID, refreshToken string) error {
	if refreshToken != "" {
		stored, err := u.userRepo.FindRefreshToken(refreshToken)
		if err != nil {
			return err
		}
		switch {
		case stored == nil:
		case stored.UserID != userID:
			u.logger.Warn("Logout with another user's refresh token ignored", zap.String("user_id", userID))
		default:
			if err := u.userRepo.DeleteRefreshToken(refreshToken); err != nil {
				return err
			}
		}
	}
	if err := u.tokenRepo.DeleteAll(userID); err != nil {
		return err
	}
	if _, err := u.sessions.Publish(userID, session.Event{Kind: session.EventSignedOut}); err != nil {
		return err
	}
	u.logger.Info("User signed out", zap.String("user_id", userID))
	return nil
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.User, error) {
	userID, err := u.parseToken(tokenString, tokenTypeAccess)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (u *authUsecase) UpdateProfile(userID string, req *authdto.UpdateProfileRequest) (*authdomain.User, error) {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.HomeAddress != nil {
		user.HomeAddress = *req.HomeAddress
	}
	if req.WorkAddress != nil {
		user.WorkAddress = *req.WorkAddress
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.Birthday != nil {
		if *req.Birthday == "" {
			user.Birthday = nil
		} else {
			t, err := birthday.Parse(*req.Birthday)
			if err != nil {
				return nil, err
			}
			user.Birthday = &t
		}
	}

	if err := u.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) SessionState(userID string) session.Snapshot {
	return u.sessions.Get(userID).Snapshot()
}

func (u *authUsecase) AccessToken(userID string) (string, error) {
	return u.tokenRepo.Get(userID, authdomain.AccessTokenKey)
}

func (u *authUsecase) generateTokens(user *authdomain.User) (*authdto.TokenResponse, error) {
	now := time.Now()

	accessToken, err := u.signToken(jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"type":    tokenTypeAccess,
		"exp":     now.Add(u.config.JWTAccessExpiry).Unix(),
		"iat":     now.Unix(),
	})
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.signToken(jwt.MapClaims{
		"user_id":  user.ID,
		"token_id": uuid.New().String(),
		"type":     tokenTypeRefresh,
		"exp":      now.Add(u.config.JWTRefreshExpiry).Unix(),
		"iat":      now.Unix(),
	})
	if err != nil {
		return nil, err
	}

	// Store refresh token
	refreshTokenEntity := &authdomain.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: now.Add(u.config.JWTRefreshExpiry),
	}
	if err := u.userRepo.SaveRefreshToken(refreshTokenEntity); err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (u *authUsecase) signToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

// parseToken validates signature, expiry and type, and returns the user id
func (u *authUsecase) parseToken(tokenString, tokenType string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	if t, _ := claims["type"].(string); t != tokenType {
		return "", ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}
