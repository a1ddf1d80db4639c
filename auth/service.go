package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"cutroom/errors"
)

type account struct {
	participantID string
	role          string
	passwordHash  string
}

// Service keeps participant accounts in memory and exchanges credentials for
// signed tokens. The runtime never sees passwords: it only validates the
// tokens minted here.
type Service struct {
	mu       sync.RWMutex
	accounts map[string]account // keyed by email
	tokenTTL time.Duration
}

func NewService(tokenTTL time.Duration) *Service {
	return &Service{
		accounts: make(map[string]account),
		tokenTTL: tokenTTL,
	}
}

// Register validates the request, hashes the password and creates the
// account. Returns the assigned participant id.
func (s *Service) Register(req RegisterRequest) (string, error) {
	if err := ValidateRegister(req); err != nil {
		return "", err
	}
	hash, err := HashPassword(req.Password)
	if err != nil {
		return "", fmt.Errorf("password hashing failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[req.Email]; exists {
		return "", fmt.Errorf("account %s already exists: %w", req.Email, errors.ErrInvalidReference)
	}
	participantID := uuid.NewString()
	s.accounts[req.Email] = account{
		participantID: participantID,
		role:          req.Role,
		passwordHash:  hash,
	}
	return participantID, nil
}

// Login exchanges credentials for a participant token carrying id and role.
func (s *Service) Login(email, password string) (string, error) {
	s.mu.RLock()
	acc, ok := s.accounts[email]
	s.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("account %s: %w", email, errors.ErrNotFound)
	}

	match, err := ComparePassword(password, acc.passwordHash)
	if err != nil {
		return "", err
	}
	if !match {
		return "", fmt.Errorf("wrong password for %s: %w", email, errors.ErrForbidden)
	}
	return GenerateToken(acc.participantID, acc.role, s.tokenTTL)
}
