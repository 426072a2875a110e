package auth

import (
	"context"
	"errors"
	"log/slog"

	apperrors "github.com/yanqian/desi-diet/pkg/errors"
)

const codeAuth = "auth_error"

// Service exposes authentication workflows.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (UserView, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	ValidateToken(ctx context.Context, token string) (Claims, error)
	Refresh(ctx context.Context, refreshToken string) (LoginResponse, error)
	Profile(ctx context.Context, userID int64) (UserView, error)
}

type service struct {
	repo    Repository
	members MembershipSource
	tokens  tokenIssuer
	logger  *slog.Logger
}

// NewService constructs a Service instance. members may be nil, in which case
// every account is reported as unsubscribed.
func NewService(cfg Config, repo Repository, members MembershipSource, logger *slog.Logger) Service {
	return &service{
		repo:    repo,
		members: members,
		tokens:  newTokenIssuer(cfg),
		logger:  logger.With("component", "auth.service"),
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (UserView, error) {
	reg, err := req.validate()
	if err != nil {
		return UserView{}, err
	}
	_, exists, err := s.repo.GetByEmail(ctx, reg.email)
	if err != nil {
		return UserView{}, apperrors.Wrap(apperrors.CodeStorage, "failed to check user", err)
	}
	if exists {
		return UserView{}, apperrors.Wrap(apperrors.CodeEmailExists, "email already registered", nil)
	}
	hashed, err := hashPassword(reg.password)
	if err != nil {
		return UserView{}, err
	}
	user, err := s.repo.Create(ctx, reg.email, reg.name, hashed)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return UserView{}, apperrors.Wrap(apperrors.CodeEmailExists, "email already registered", err)
		}
		return UserView{}, apperrors.Wrap(apperrors.CodeStorage, "failed to create user", err)
	}
	s.logger.Info("user registered", "userId", user.ID)
	// a new account has no subscription yet
	return newUserView(user, false), nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	email, err := req.validate()
	if err != nil {
		return LoginResponse{}, err
	}
	user, found, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeStorage, "failed to fetch user", err)
	}
	if !found || !passwordMatches(user, req.Password) {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeInvalidCredentials, "invalid email or password", nil)
	}
	return s.session(ctx, user)
}

func (s *service) ValidateToken(_ context.Context, token string) (Claims, error) {
	return s.tokens.verify(token, kindAccess)
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (LoginResponse, error) {
	claims, err := s.tokens.verify(refreshToken, kindRefresh)
	if err != nil {
		return LoginResponse{}, err
	}
	user, err := s.loadUser(ctx, claims.UserID)
	if err != nil {
		return LoginResponse{}, err
	}
	return s.session(ctx, user)
}

func (s *service) Profile(ctx context.Context, userID int64) (UserView, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return UserView{}, err
	}
	return s.view(ctx, user), nil
}

func (s *service) loadUser(ctx context.Context, userID int64) (User, error) {
	user, found, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load user", err)
	}
	if !found {
		return User{}, apperrors.Wrap(apperrors.CodeNotFound, "user not found", nil)
	}
	return user, nil
}

// session issues a fresh access/refresh pair for user.
func (s *service) session(ctx context.Context, user User) (LoginResponse, error) {
	access, err := s.tokens.issue(user, kindAccess)
	if err != nil {
		return LoginResponse{}, err
	}
	refresh, err := s.tokens.issue(user, kindRefresh)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{
		Token:        access,
		RefreshToken: refresh,
		User:         s.view(ctx, user),
	}, nil
}

// view reports a membership lookup failure as unsubscribed so sign-in keeps working.
func (s *service) view(ctx context.Context, user User) UserView {
	subscribed := false
	if s.members != nil {
		ok, err := s.members.IsSubscribed(ctx, user.ID)
		if err != nil {
			s.logger.Warn("membership lookup failed", "userId", user.ID, "error", err)
		}
		subscribed = ok && err == nil
	}
	return newUserView(user, subscribed)
}

func newUserView(user User, subscribed bool) UserView {
	return UserView{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		IsSubscribed: subscribed,
		CreatedAt:    user.CreatedAt,
	}
}
