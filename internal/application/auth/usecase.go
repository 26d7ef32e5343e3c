// Package auth registro e inicio de sesión de usuarios del back-office.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
	"github.com/tu-usuario/resto-backoffice/pkg/config"
	"github.com/tu-usuario/resto-backoffice/pkg/jwt"
	"github.com/tu-usuario/resto-backoffice/pkg/logger"
)

// AuthUseCase maneja registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   config.JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg config.JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log.Component("auth")}
}

// RegisterInput datos de alta de usuario. LocationKey solo aplica a
// managers: "central" o el ID de su sucursal.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Role        string
	LocationKey string
}

// Register da de alta un usuario con la contraseña hasheada con bcrypt.
// Un email repetido responde ErrEmailAlreadyExists.
func (uc *AuthUseCase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	if in.Role != entity.RoleAdmin && in.Role != entity.RoleManager {
		return nil, domain.ErrInvalidInput
	}

	var home entity.Location
	if in.Role == entity.RoleManager {
		parsed, err := entity.ParseLocationKey(in.LocationKey)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		home = parsed
	}

	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		HomeLocation: home,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", u.ID).Str("role", u.Role).Msg("usuario registrado")
	return u, nil
}

// LoginResult token emitido y el usuario autenticado.
type LoginResult struct {
	Token string
	User  *entity.User
}

// Login verifica credenciales y emite un JWT con rol y ubicación base.
// Credenciales incorrectas responden ErrUnauthorized sin distinguir si el
// email existe.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	u, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	locationKey := ""
	if u.Role == entity.RoleManager && u.HomeLocation.IsValid() {
		locationKey = u.HomeLocation.Key()
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Name, u.Role, locationKey, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", u.ID).Msg("login correcto")
	return &LoginResult{Token: token, User: u}, nil
}
