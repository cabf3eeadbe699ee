package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/leoc0104/nfe-api/internal/domain"
	"github.com/leoc0104/nfe-api/internal/domain/entity"
	"github.com/leoc0104/nfe-api/internal/domain/repository"
)

var _ repository.NFeRepository = (*NFeRepo)(nil)

// NFeRepo implementação de NFeRepository sobre PostgreSQL (usável com pool ou tx).
type NFeRepo struct {
	q Querier
}

// NewNFeRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewNFeRepository(q Querier) *NFeRepo {
	return &NFeRepo{q: q}
}

const nfeColumns = `id, access_key, number, series, issue_date, issuer_name, issuer_cnpj,
	recipient_name, recipient_cnpj, total_value, created_at`

// Create persiste o cabeçalho da nota. A constraint única de access_key é a
// garantia final contra ingestões concorrentes do mesmo documento.
func (r *NFeRepo) Create(ctx context.Context, nota *entity.NFe) error {
	query := `
		INSERT INTO nfes (id, access_key, number, series, issue_date, issuer_name, issuer_cnpj, recipient_name, recipient_cnpj, total_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		nota.ID, nota.AccessKey, nota.Number, nota.Series, nota.IssueDate,
		nota.IssuerName, nota.IssuerCNPJ, nota.RecipientName, nota.RecipientCNPJ,
		nota.TotalValue, nota.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateAccessKey, nota.AccessKey)
		}
		return fmt.Errorf("insert nfe: %w", err)
	}
	return nil
}

// CreateItem persiste uma linha de item.
func (r *NFeRepo) CreateItem(ctx context.Context, item *entity.NFeItem) error {
	query := `
		INSERT INTO nfe_items (id, nfe_id, line_number, code, description, ncm, cfop, quantity, unit_price, total_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.NFeID, item.LineNumber, item.Code, item.Description,
		item.NCM, item.CFOP, item.Quantity, item.UnitPrice, item.TotalValue,
	)
	if err != nil {
		return fmt.Errorf("insert nfe item: %w", err)
	}
	return nil
}

// GetByAccessKey obtém uma nota pela chave de acesso. (nil, nil) se não existe.
func (r *NFeRepo) GetByAccessKey(ctx context.Context, accessKey string) (*entity.NFe, error) {
	query := `SELECT ` + nfeColumns + ` FROM nfes WHERE access_key = $1`
	return r.getOne(ctx, query, accessKey)
}

// GetByID obtém uma nota por ID. (nil, nil) se não existe.
func (r *NFeRepo) GetByID(ctx context.Context, id string) (*entity.NFe, error) {
	query := `SELECT ` + nfeColumns + ` FROM nfes WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *NFeRepo) getOne(ctx context.Context, query string, arg any) (*entity.NFe, error) {
	var nota entity.NFe
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&nota.ID, &nota.AccessKey, &nota.Number, &nota.Series, &nota.IssueDate,
		&nota.IssuerName, &nota.IssuerCNPJ, &nota.RecipientName, &nota.RecipientCNPJ,
		&nota.TotalValue, &nota.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get nfe: %w", err)
	}
	return &nota, nil
}

// GetItemsByNFeID obtém os itens de uma nota na ordem do documento.
func (r *NFeRepo) GetItemsByNFeID(ctx context.Context, nfeID string) ([]entity.NFeItem, error) {
	query := `
		SELECT id, nfe_id, line_number, code, description, ncm, cfop, quantity, unit_price, total_value
		FROM nfe_items WHERE nfe_id = $1 ORDER BY line_number`
	rows, err := r.q.Query(ctx, query, nfeID)
	if err != nil {
		return nil, fmt.Errorf("list nfe items: %w", err)
	}
	defer rows.Close()
	var items []entity.NFeItem
	for rows.Next() {
		var item entity.NFeItem
		if err := rows.Scan(&item.ID, &item.NFeID, &item.LineNumber, &item.Code, &item.Description,
			&item.NCM, &item.CFOP, &item.Quantity, &item.UnitPrice, &item.TotalValue); err != nil {
			return nil, fmt.Errorf("scan nfe item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// List devolve uma página de notas ordenada da mais recente para a mais antiga.
func (r *NFeRepo) List(ctx context.Context, limit, offset int) ([]*entity.NFe, error) {
	query := `SELECT ` + nfeColumns + ` FROM nfes ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list nfes: %w", err)
	}
	defer rows.Close()
	var list []*entity.NFe
	for rows.Next() {
		var nota entity.NFe
		if err := rows.Scan(&nota.ID, &nota.AccessKey, &nota.Number, &nota.Series, &nota.IssueDate,
			&nota.IssuerName, &nota.IssuerCNPJ, &nota.RecipientName, &nota.RecipientCNPJ,
			&nota.TotalValue, &nota.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan nfe: %w", err)
		}
		list = append(list, &nota)
	}
	return list, rows.Err()
}

// Count devolve o total de notas persistidas.
func (r *NFeRepo) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM nfes`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count nfes: %w", err)
	}
	return total, nil
}
