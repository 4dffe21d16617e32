package service

import (
	"context"
	"errors"
	"time"

	"github.com/bernardesrodrigoc/explotrack/internal/dto"
	"github.com/bernardesrodrigoc/explotrack/internal/infra"
	"github.com/bernardesrodrigoc/explotrack/internal/model"
	"github.com/bernardesrodrigoc/explotrack/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (string, *model.Usuario, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*model.Usuario, error)
	Me(ctx context.Context, userID uuid.UUID) (*model.Usuario, error)
}

type authService struct {
	usuarioRepo repository.UsuarioRepository
	clock       infra.Clock
	jwtSecret   []byte
	expiration  time.Duration
}

func NewAuthService(usuarioRepo repository.UsuarioRepository, clock infra.Clock, jwtSecret string, expirationHours int) AuthService {
	return &authService{
		usuarioRepo: usuarioRepo,
		clock:       clock,
		jwtSecret:   []byte(jwtSecret),
		expiration:  time.Duration(expirationHours) * time.Hour,
	}
}

// Login checks the bcrypt hash and mints a signed token. Unknown user and
// wrong password produce the same error so usernames cannot be probed.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (string, *model.Usuario, error) {
	u, err := s.usuarioRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return "", nil, ErrCredenciaisInvalidas
	}
	if !u.Ativo {
		return "", nil, ErrCredenciaisInvalidas
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.SenhaHash), []byte(req.Password)); err != nil {
		return "", nil, ErrCredenciaisInvalidas
	}

	now := s.clock.Now()
	claims := jwt.MapClaims{
		"user_id": u.ID.String(),
		"role":    u.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(s.expiration).Unix(),
	}
	if u.FilialID != nil {
		claims["filial_id"] = u.FilialID.String()
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*model.Usuario, error) {
	if _, err := s.usuarioRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsuarioJaExiste
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var filialID *uuid.UUID
	if req.FilialID != nil {
		id, err := uuid.Parse(*req.FilialID)
		if err != nil {
			return nil, ErrFilialNaoEncontrada
		}
		filialID = &id
	}

	u := &model.Usuario{
		Username:  req.Username,
		Nome:      req.Nome,
		Role:      req.Role,
		SenhaHash: string(hash),
		FilialID:  filialID,
		Ativo:     true,
	}
	if err := s.usuarioRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Me resolves the bearer of a valid token back to the current user record. A
// user deactivated after the token was issued stops resolving immediately.
func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*model.Usuario, error) {
	u, err := s.usuarioRepo.FindByID(ctx, userID)
	if err != nil || !u.Ativo {
		return nil, ErrCredenciaisInvalidas
	}
	return u, nil
}
