package nfe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leoc0104/nfe-api/internal/application/dto"
	"github.com/leoc0104/nfe-api/internal/domain"
	"github.com/leoc0104/nfe-api/internal/domain/entity"
	"github.com/leoc0104/nfe-api/internal/domain/repository"
)

// TxRunner executa fn com um repositório atado a uma transação: ou a nota e
// todos os itens são persistidos, ou nada é.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.NFeRepository) error) error
}

// IngestUseCase coordena a ingestão de um arquivo XML de NF-e: valida o
// upload, normaliza e mapeia o documento, checa duplicidade pela chave de
// acesso e persiste nota + itens atomicamente.
type IngestUseCase struct {
	repo repository.NFeRepository
	tx   TxRunner
}

// NewIngestUseCase constrói o caso de uso.
func NewIngestUseCase(repo repository.NFeRepository, tx TxRunner) *IngestUseCase {
	return &IngestUseCase{repo: repo, tx: tx}
}

// Ingest processa o conteúdo de um upload e devolve a nota persistida com os
// itens na ordem do documento. Em qualquer falha nada fica persistido.
func (uc *IngestUseCase) Ingest(ctx context.Context, filename string, content []byte) (*dto.NFeResponse, error) {
	// Rejeições baratas antes de qualquer parse.
	if !strings.HasSuffix(strings.ToLower(filename), ".xml") {
		return nil, fmt.Errorf("%w: apenas arquivos .xml são aceitos", domain.ErrInvalidDocument)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: arquivo é obrigatório", domain.ErrInvalidDocument)
	}

	doc, err := Normalize(content)
	if err != nil {
		return nil, err
	}
	nota, err := MapDocument(doc)
	if err != nil {
		return nil, err
	}

	// Pré-checagem otimista: devolve um conflito limpo sem tentar a escrita.
	// A garantia final é a constraint única de access_key no insert.
	existing, err := uc.repo.GetByAccessKey(ctx, nota.AccessKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateAccessKey, nota.AccessKey)
	}

	nota.ID = uuid.New().String()
	nota.CreatedAt = time.Now()
	err = uc.tx.Run(ctx, func(repo repository.NFeRepository) error {
		if err := repo.Create(ctx, nota); err != nil {
			return err
		}
		for i := range nota.Items {
			nota.Items[i].ID = uuid.New().String()
			nota.Items[i].NFeID = nota.ID
			if err := repo.CreateItem(ctx, &nota.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toNFeResponse(nota, nota.Items)
	return &resp, nil
}

// toNFeResponse converte a entidade para o DTO de resposta.
func toNFeResponse(nota *entity.NFe, items []entity.NFeItem) dto.NFeResponse {
	resp := dto.NFeResponse{
		ID:            nota.ID,
		AccessKey:     nota.AccessKey,
		Number:        nota.Number,
		Series:        nota.Series,
		IssueDate:     nota.IssueDate,
		IssuerName:    nota.IssuerName,
		IssuerCNPJ:    nota.IssuerCNPJ,
		RecipientName: nota.RecipientName,
		RecipientCNPJ: nota.RecipientCNPJ,
		TotalValue:    nota.TotalValue,
		CreatedAt:     nota.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.NFeItemResponse{
			ID:          item.ID,
			Code:        item.Code,
			Description: item.Description,
			NCM:         item.NCM,
			CFOP:        item.CFOP,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalValue:  item.TotalValue,
		})
	}
	return resp
}
