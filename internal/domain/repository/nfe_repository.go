package repository

import (
	"context"

	"github.com/leoc0104/nfe-api/internal/domain/entity"
)

// NFeRepository define o porto de persistência para notas e seus itens.
// Métodos Get* devolvem (nil, nil) quando o registro não existe.
type NFeRepository interface {
	// Create persiste o cabeçalho da nota. Devolve domain.ErrDuplicateAccessKey
	// quando a constraint única de access_key é violada.
	Create(ctx context.Context, nfe *entity.NFe) error
	// CreateItem persiste uma linha de item vinculada à nota.
	CreateItem(ctx context.Context, item *entity.NFeItem) error
	GetByAccessKey(ctx context.Context, accessKey string) (*entity.NFe, error)
	GetByID(ctx context.Context, id string) (*entity.NFe, error)
	// GetItemsByNFeID devolve os itens na ordem do documento (line_number).
	GetItemsByNFeID(ctx context.Context, nfeID string) ([]entity.NFeItem, error)
	// List devolve uma página de notas ordenada por created_at DESC.
	List(ctx context.Context, limit, offset int) ([]*entity.NFe, error)
	Count(ctx context.Context) (int, error)
}
