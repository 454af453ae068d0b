package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"campus-canteen/internal/domain"
)

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrPasswordResetPending = errors.New("password reset in progress, session suspended")
)

// AuthService owns identity resolution. While a password reset is pending for
// a user, Identity refuses every access token for that user: the identity is
// forced to none for all consumers until the reset completes.
type AuthService struct {
	users     UserRepository
	profiles  ProfileRepository
	publisher ChangePublisher

	secret       []byte
	tokenTTL     time.Duration
	welcomeCoins int
}

func NewAuthService(users UserRepository, profiles ProfileRepository, publisher ChangePublisher, secret string, tokenTTL time.Duration, welcomeCoins int) *AuthService {
	return &AuthService{
		users:        users,
		profiles:     profiles,
		publisher:    publisher,
		secret:       []byte(secret),
		tokenTTL:     tokenTTL,
		welcomeCoins: welcomeCoins,
	}
}

func (s *AuthService) SignUp(ctx context.Context, email, password, fullName string) (string, *domain.Profile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user, profile, err := s.users.CreateWithProfile(email, string(hash), fullName, s.welcomeCoins)
	if err != nil {
		return "", nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, domain.ChangeEvent{
			Table:     domain.TableProfiles,
			Type:      domain.EventInsert,
			UserID:    user.ID,
			Coins:     profile.Coins,
			Timestamp: time.Now(),
		})
	}

	token, err := s.issueToken(user.ID, "access", s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, profile, nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID, "access", s.tokenTTL)
	if err != nil {
		return "", nil, err
	}

	// A failed profile fetch is logged but does not block sign-in.
	profile, err := s.profiles.Get(user.ID)
	if err != nil {
		log.Printf("Failed to fetch profile for user %d: %v", user.ID, err)
		profile = nil
	}
	return token, profile, nil
}

// Identity resolves an access token to a user id.
func (s *AuthService) Identity(tokenString string) (int, error) {
	userID, purpose, err := s.parseToken(tokenString)
	if err != nil {
		return 0, ErrInvalidToken
	}
	if purpose != "access" {
		return 0, ErrInvalidToken
	}

	user, err := s.users.Get(userID)
	if err != nil {
		return 0, ErrInvalidToken
	}
	if user.ResetRequestedAt != nil {
		return 0, ErrPasswordResetPending
	}
	return userID, nil
}

func (s *AuthService) Profile(userID int) (*domain.Profile, error) {
	return s.profiles.Get(userID)
}

func (s *AuthService) UpdateFullName(ctx context.Context, userID int, fullName string) error {
	if err := s.profiles.UpdateFullName(userID, fullName); err != nil {
		return err
	}
	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, domain.ChangeEvent{
			Table:     domain.TableProfiles,
			Type:      domain.EventUpdate,
			UserID:    userID,
			Timestamp: time.Now(),
		})
	}
	return nil
}

// RequestPasswordReset stamps the user and returns a short-lived reset token.
// From this moment every existing session is suspended until the reset
// completes.
func (s *AuthService) RequestPasswordReset(email string) (string, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := s.users.SetResetRequested(user.ID, time.Now()); err != nil {
		return "", err
	}
	return s.issueToken(user.ID, "reset", 15*time.Minute)
}

func (s *AuthService) CompletePasswordReset(resetToken, newPassword string) error {
	userID, purpose, err := s.parseToken(resetToken)
	if err != nil || purpose != "reset" {
		return ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.CompleteReset(userID, string(hash))
}

func (s *AuthService) issueToken(userID int, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     userID,
		"purpose": purpose,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *AuthService) parseToken(tokenString string) (int, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidToken
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, "", ErrInvalidToken
	}
	purpose, _ := claims["purpose"].(string)
	return int(sub), purpose, nil
}

var _ AuthServiceInterface = (*AuthService)(nil)
