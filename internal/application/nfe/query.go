package nfe

import (
	"context"

	"github.com/leoc0104/nfe-api/internal/application/dto"
	"github.com/leoc0104/nfe-api/internal/domain"
	"github.com/leoc0104/nfe-api/internal/domain/repository"
)

// Limite máximo de itens por página.
const maxPageSize = 100

// QueryUseCase consultas de leitura: listagem paginada e busca por ID.
type QueryUseCase struct {
	repo repository.NFeRepository
}

// NewQueryUseCase constrói o caso de uso.
func NewQueryUseCase(repo repository.NFeRepository) *QueryUseCase {
	return &QueryUseCase{repo: repo}
}

// List devolve uma página de notas (sem itens), da mais recente para a mais
// antiga. Valores de page/limit menores que 1 são normalizados para 1 e o
// limit é limitado a maxPageSize.
func (uc *QueryUseCase) List(ctx context.Context, page, limit int) (*dto.NFeListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	offset := (page - 1) * limit
	notas, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.NFeListResponse{
		Data:       make([]dto.NFeResponse, 0, len(notas)),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}
	for _, nota := range notas {
		resp.Data = append(resp.Data, toNFeResponse(nota, nil))
	}
	return resp, nil
}

// GetByID devolve a nota com todos os itens, ou domain.ErrNotFound.
func (uc *QueryUseCase) GetByID(ctx context.Context, id string) (*dto.NFeResponse, error) {
	nota, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if nota == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.repo.GetItemsByNFeID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toNFeResponse(nota, items)
	return &resp, nil
}
