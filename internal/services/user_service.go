// Package services – UserService
//
// Account registration, credential login, profiles, and the public
// reputation read. Passwords are stored as bcrypt hashes; login failures
// are reported with a single undifferentiated error so the response never
// reveals whether the email exists.
package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tbourn/go-qna-backend/internal/domain"
	"github.com/tbourn/go-qna-backend/internal/repo"
)

// TokenIssuer mints an access token for a user. Satisfied by *auth.Manager.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

const (
	minUsernameRunes = 3
	maxUsernameRunes = 30
	minPasswordBytes = 8
	maxBioRunes      = 500
)

// UserService implements accounts and profile reads.
type UserService struct {
	DB *gorm.DB
	// Tokens mints login tokens. Required for Login.
	Tokens TokenIssuer
	// Reputation serves the public balance read.
	Reputation *ReputationService
	// Social provides the follower counts shown on profiles. Optional.
	Social *SocialService
}

// Register creates an account and returns the stored user. The password is
// bcrypt-hashed; username/email collisions map to ErrDuplicateUser.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	n := utf8.RuneCountInString(username)
	if n < minUsernameRunes || n > maxUsernameRunes {
		return nil, ErrEmptyContent
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrEmptyContent
	}
	if len(password) < minPasswordBytes {
		return nil, ErrEmptyContent
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u, err := repo.CreateUser(ctx, s.DB, username, email, string(hash))
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, ErrDuplicateUser
	}
	return u, err
}

// Login verifies credentials and returns the user plus a signed token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := repo.GetUserByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Profile is the public view of a user.
type Profile struct {
	User       domain.User `json:"user"`
	Followers  int64       `json:"followers"`
	Following  int64       `json:"following"`
	Reputation int         `json:"reputation"`
}

// GetProfile returns a user's public profile with follow counts.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	u, err := repo.GetUser(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	p := &Profile{User: *u, Reputation: u.Reputation}
	if s.Social != nil {
		p.Followers, p.Following, err = s.Social.FollowCounts(ctx, userID)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// UpdateBio replaces the user's bio.
func (s *UserService) UpdateBio(ctx context.Context, userID, bio string) error {
	bio = strings.TrimSpace(bio)
	if utf8.RuneCountInString(bio) > maxBioRunes {
		return ErrTooLong
	}
	err := repo.UpdateUserProfile(ctx, s.DB, userID, bio)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// Balance returns the user's current reputation snapshot.
func (s *UserService) Balance(ctx context.Context, userID string) (*ReputationSnapshot, error) {
	return s.Reputation.CurrentBalance(ctx, s.DB, userID)
}
