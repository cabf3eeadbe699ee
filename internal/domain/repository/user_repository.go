package repository

import (
	"context"

	"github.com/leoc0104/nfe-api/internal/domain/entity"
)

// UserRepository porto de persistência para usuários da API.
type UserRepository interface {
	// Create persiste um usuário. Devolve domain.ErrEmailAlreadyExists
	// quando o e-mail já está cadastrado.
	Create(ctx context.Context, user *entity.User) error
	// GetByEmail devolve (nil, nil) quando o e-mail não existe.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
