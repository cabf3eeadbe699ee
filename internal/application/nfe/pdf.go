package nfe

import (
	"context"

	"github.com/leoc0104/nfe-api/internal/domain"
	"github.com/leoc0104/nfe-api/internal/domain/entity"
	"github.com/leoc0104/nfe-api/internal/domain/repository"
)

// DANFEGenerator porto para a geração do DANFE (Documento Auxiliar da NF-e).
type DANFEGenerator interface {
	Generate(ctx context.Context, nota *entity.NFe, items []entity.NFeItem) ([]byte, error)
}

// PDFUseCase gera a representação gráfica de uma nota persistida.
type PDFUseCase struct {
	repo repository.NFeRepository
	gen  DANFEGenerator
}

// NewPDFUseCase constrói o caso de uso.
func NewPDFUseCase(repo repository.NFeRepository, gen DANFEGenerator) *PDFUseCase {
	return &PDFUseCase{repo: repo, gen: gen}
}

// Generate devolve os bytes do PDF do DANFE, ou domain.ErrNotFound.
func (uc *PDFUseCase) Generate(ctx context.Context, id string) ([]byte, error) {
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
	return uc.gen.Generate(ctx, nota, items)
}
