package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/syncro4/taskboard/internal/core/domain"
	"github.com/syncro4/taskboard/internal/core/ports"
)

var _ ports.SessionService = (*SessionService)(nil)

// SessionService implements login by account selection and issues signed
// tokens that are honoured only while their user holds the store session.
type SessionService struct {
	store     ports.BoardStore
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewSessionService(store ports.BoardStore, jwtSecret string, tokenTTL time.Duration) *SessionService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &SessionService{
		store:     store,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// Login starts a session for the account with the given id.
func (s *SessionService) Login(ctx context.Context, userID string) (string, *domain.User, error) {
	if userID == "" {
		return "", nil, domain.ErrUserNotFound
	}
	user, ok := s.store.FindUser(userID)
	if !ok {
		return "", nil, domain.ErrUserNotFound
	}

	s.store.Login(ctx, user)

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Logout ends the active session.
func (s *SessionService) Logout(ctx context.Context) {
	s.store.Logout(ctx)
}

// Authenticate validates token and returns the current session record, so
// self-edits are visible immediately.
func (s *SessionService) Authenticate(token string) (*domain.User, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthenticated
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, domain.ErrUnauthenticated
	}

	session := s.store.Session()
	if session == nil || session.ID != subject {
		return nil, domain.ErrUnauthenticated
	}
	return session, nil
}

func (s *SessionService) generateToken(user domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"name": user.Name,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}
