package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/budget-comisiones/internal/application/dto"
	"github.com/tu-usuario/budget-comisiones/internal/domain"
	"github.com/tu-usuario/budget-comisiones/internal/domain/entity"
	"github.com/tu-usuario/budget-comisiones/internal/domain/repository"
	"github.com/tu-usuario/budget-comisiones/pkg/jwt"
)

// AuthUseCase registro y login de usuarios del panel con emisión de JWT.
type AuthUseCase struct {
	repo       repository.UserRepository
	jwtSecret  string
	jwtIssuer  string
	expMinutes int
}

// NewAuthUseCase construye el caso de uso con la configuración JWT.
func NewAuthUseCase(repo repository.UserRepository, jwtSecret, jwtIssuer string, expMinutes int) *AuthUseCase {
	return &AuthUseCase{repo: repo, jwtSecret: jwtSecret, jwtIssuer: jwtIssuer, expMinutes: expMinutes}
}

// Register crea un usuario y devuelve el token de la sesión inicial.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	if in.Email == "" || in.Name == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(ctx, in.Email)
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
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.issueToken(user)
}

// Login valida credenciales y emite un token.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	// Misma respuesta para email inexistente y contraseña incorrecta.
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issueToken(user)
}

func (uc *AuthUseCase) issueToken(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtSecret, user.ID, user.Email, uc.jwtIssuer, uc.expMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token: token,
		User:  dto.UserResponse{ID: user.ID, Email: user.Email, Name: user.Name},
	}, nil
}
