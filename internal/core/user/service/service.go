package userapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"yatube/internal/config"
	userEntity "yatube/internal/core/user"
	"yatube/internal/core/validation"
	"yatube/internal/errorx"
	userPort "yatube/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "yatube"

// UserService manages accounts and their auth tokens.
type UserService struct {
	UserRepository userPort.UserRepository
	jwtKey         []byte
	lifetime       time.Duration
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte, lifetime time.Duration) *UserService {
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &UserService{
		UserRepository: repo,
		jwtKey:         jwtKey,
		lifetime:       lifetime,
	}
}

type claims struct {
	Username string `json:"username"`
	jwt.StandardClaims
}

// RegisterUser validates the signup form and stores a new user.
func (s *UserService) RegisterUser(ctx context.Context, form userPort.SignupForm) (*userPort.UserDTO, error) {
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)

	verr := validation.Struct(form)
	if verr.Empty() {
		_, err := s.UserRepository.FindByUsername(ctx, form.Username)
		switch {
		case err == nil:
			verr.Add("username", "A user with that username already exists.")
		case !errors.Is(err, errorx.ErrNotFound):
			return nil, fmt.Errorf("find user: %w", err)
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.UserRepository.Create(ctx, &userEntity.User{
		Username:  form.Username,
		FirstName: strings.TrimSpace(form.FirstName),
		LastName:  strings.TrimSpace(form.LastName),
		Email:     form.Email,
		Password:  string(hashedPassword),
	})
	if errors.Is(err, errorx.ErrAlreadyExists) {
		// lost a race with a concurrent signup for the same name
		verr.Add("username", "A user with that username already exists.")
		return nil, verr
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	config.Logger.Info("user registered", zap.String("username", u.Username))

	return &userPort.UserDTO{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
	}, nil
}

// LoginUser checks the password and issues a signed token.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error) {
	u, err := s.UserRepository.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, errorx.ErrNotFound) {
			return nil, errorx.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		config.Logger.Info("invalid password", zap.String("username", u.Username))
		return nil, errorx.ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.lifetime)
	token, err := s.generateJWT(u, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *UserService) generateJWT(u *userEntity.User, expiresAt time.Time) (string, error) {
	c := &claims{
		Username: u.Username,
		StandardClaims: jwt.StandardClaims{
			Subject:   u.ID.String(),
			Issuer:    issuer,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(s.jwtKey)
}

// ParseToken verifies the signature and expiry and returns the identity in it.
func (s *UserService) ParseToken(tokenString string) (*userEntity.Viewer, error) {
	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errorx.ErrUnauthenticated
	}

	id, err := uuid.FromString(c.Subject)
	if err != nil {
		return nil, errorx.ErrUnauthenticated
	}
	return &userEntity.Viewer{ID: id, Username: c.Username}, nil
}

// Authenticate parses the token and confirms the user still exists.
func (s *UserService) Authenticate(ctx context.Context, tokenString string) (*userEntity.Viewer, error) {
	v, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	u, err := s.UserRepository.FindByID(ctx, v.ID)
	if err != nil {
		if errors.Is(err, errorx.ErrNotFound) {
			return nil, errorx.ErrUnauthenticated
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &userEntity.Viewer{ID: u.ID, Username: u.Username}, nil
}

// DeleteUser removes the user with everything they authored.
func (s *UserService) DeleteUser(ctx context.Context, username string) error {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.UserRepository.Delete(ctx, u.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	config.Logger.Info("user deleted", zap.String("username", username))
	return nil
}
