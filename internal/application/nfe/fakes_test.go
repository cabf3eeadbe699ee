package nfe_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/leoc0104/nfe-api/internal/domain"
	"github.com/leoc0104/nfe-api/internal/domain/entity"
	"github.com/leoc0104/nfe-api/internal/domain/repository"
)

// memRepo implementação em memória de NFeRepository para os testes.
// Espelha o contrato do adaptador PostgreSQL: (nil, nil) quando não existe e
// domain.ErrDuplicateAccessKey na violação da chave única.
type memRepo struct {
	mu    sync.Mutex
	notas []*entity.NFe // ordem de inserção; List devolve do fim para o começo
	items map[string][]entity.NFeItem

	// failCreateWith simula uma falha no insert (ex.: corrida na constraint única).
	failCreateWith error
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[string][]entity.NFeItem{}}
}

func (r *memRepo) Create(_ context.Context, nota *entity.NFe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreateWith != nil {
		return r.failCreateWith
	}
	for _, existing := range r.notas {
		if existing.AccessKey == nota.AccessKey {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateAccessKey, nota.AccessKey)
		}
	}
	clone := *nota
	clone.Items = nil
	r.notas = append(r.notas, &clone)
	return nil
}

func (r *memRepo) CreateItem(_ context.Context, item *entity.NFeItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.NFeID] = append(r.items[item.NFeID], *item)
	return nil
}

func (r *memRepo) GetByAccessKey(_ context.Context, accessKey string) (*entity.NFe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, nota := range r.notas {
		if nota.AccessKey == accessKey {
			clone := *nota
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*entity.NFe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, nota := range r.notas {
		if nota.ID == id {
			clone := *nota
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memRepo) GetItemsByNFeID(_ context.Context, nfeID string) ([]entity.NFeItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.NFeItem(nil), r.items[nfeID]...), nil
}

func (r *memRepo) List(_ context.Context, limit, offset int) ([]*entity.NFe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Mais recentes primeiro, como o ORDER BY created_at DESC do adaptador real.
	var out []*entity.NFe
	for i := len(r.notas) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		clone := *r.notas[i]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notas), nil
}

func (r *memRepo) itemCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, items := range r.items {
		total += len(items)
	}
	return total
}

// memTx executa o callback direto sobre o repositório em memória.
type memTx struct {
	repo *memRepo
}

func (t *memTx) Run(_ context.Context, fn func(repo repository.NFeRepository) error) error {
	return fn(t.repo)
}
