package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/plantkeeper/internal/common"
	"github.com/dmitrijs2005/plantkeeper/internal/server/auth"
	"github.com/dmitrijs2005/plantkeeper/internal/server/repositories/repomanager"
)

// AuthService registers users, checks credentials and maps token subjects
// back to user ids.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenCodec
	hasher      auth.PasswordHasher

	decoyOnce sync.Once
	decoyHash string
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenCodec, hasher auth.PasswordHasher) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		hasher:      hasher,
	}
}

// Register stores a new user and returns a token for it.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	if err := validateCredentials(email, password); err != nil {
		return "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", internal(err)
	}

	// Signed before the insert so a signing failure leaves no row behind.
	token, err := s.tokens.Issue(email)
	if err != nil {
		return "", internal(err)
	}

	if _, err := s.repomanager.Users(s.db).Create(ctx, email, hash); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrUserAlreadyExists
		}
		return "", internal(err)
	}
	return token, nil
}

// Login returns a fresh token when password matches the stored hash.
// Unknown emails and wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if err := validateCredentials(email, password); err != nil {
		return "", err
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.burnVerify(password)
			return "", common.ErrInvalidCredentials
		}
		return "", internal(err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", internal(err)
	}
	return token, nil
}

// ResolveUserID maps a verified token subject to the user's id. A subject
// with no account is unauthorized.
func (s *AuthService) ResolveUserID(ctx context.Context, email string) (int64, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, common.ErrorUnauthorized
		}
		return 0, internal(err)
	}
	return user.ID, nil
}

// burnVerify spends about as long as a real password check so unknown
// emails are not told apart by response time.
func (s *AuthService) burnVerify(password string) {
	s.decoyOnce.Do(func() {
		s.decoyHash, _ = s.hasher.Hash("plantkeeper-decoy")
	})
	s.hasher.Verify(password, s.decoyHash)
}

func validateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return common.NewValidationError("email", "must not be empty")
	}
	if password == "" {
		return common.NewValidationError("password", "must not be empty")
	}
	return nil
}
