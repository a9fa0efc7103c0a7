package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/evote/internal/common"
	"github.com/dmitrijs2005/evote/internal/server/auth"
	"github.com/dmitrijs2005/evote/internal/server/models"
)

// UserService keeps the minimal identity records needed for authorization
// and mints access tokens for them.
type UserService struct {
	deps                        Deps
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService; tokens are signed with secret
// and valid for ttl.
func NewUserService(deps Deps, secret string, ttl time.Duration) *UserService {
	deps = deps.withDefaults()
	deps.Log = deps.Log.With("module", "users")
	return &UserService{deps: deps, jwtSecret: []byte(secret), accessTokenValidityDuration: ttl}
}

// Register creates a user with the given email and role.
func (s *UserService) Register(ctx context.Context, email, role string, verified bool) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	if role != common.RoleAdmin && role != common.RoleVoter {
		return nil, fmt.Errorf("%w: unknown role %q", common.ErrorValidation, role)
	}

	user := &models.User{Email: email, Role: role, Active: true, Verified: verified}
	u, err := s.deps.RepoManager.Users(s.deps.Tx.Conn()).Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	s.deps.Log.Info(ctx, "user registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.deps.RepoManager.Users(s.deps.Tx.Conn()).Get(ctx, id)
}

// CheckEligible returns ErrVoterNotEligible unless the user exists, is
// active and verified.
func (s *UserService) CheckEligible(ctx context.Context, id string) error {
	u, err := s.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrVoterNotEligible
		}
		return err
	}
	if !u.Eligible() {
		return common.ErrVoterNotEligible
	}
	return nil
}

// IssueToken mints an access token for an existing user.
func (s *UserService) IssueToken(ctx context.Context, id string) (string, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	token, err := auth.GenerateToken(u.ID, u.Role, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}
