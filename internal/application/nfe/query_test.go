package nfe_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appnfe "github.com/leoc0104/nfe-api/internal/application/nfe"
	"github.com/leoc0104/nfe-api/internal/domain"
)

// seedNotas ingere n documentos com chaves de acesso distintas e devolve os
// IDs na ordem de criação.
func seedNotas(t *testing.T, uc *appnfe.IngestUseCase, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("%044d", i+1)
		raw := strings.Replace(string(sampleXML()), testAccessKey, key, 1)
		nota, err := uc.Ingest(context.Background(), "nota.xml", []byte(raw))
		require.NoError(t, err)
		ids = append(ids, nota.ID)
	}
	return ids
}

// Três notas, limit 2: primeira página com 2, segunda com 1, totais corretos.
func TestList_Paginacao(t *testing.T) {
	repo := newMemRepo()
	ingest := appnfe.NewIngestUseCase(repo, &memTx{repo: repo})
	query := appnfe.NewQueryUseCase(repo)
	seedNotas(t, ingest, 3)

	page1, err := query.List(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Len(t, page1.Data, 2)
	assert.Equal(t, 3, page1.Total)
	assert.Equal(t, 1, page1.Page)
	assert.Equal(t, 2, page1.Limit)
	assert.Equal(t, 2, page1.TotalPages)

	page2, err := query.List(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, page2.Data, 1)
	assert.Equal(t, 2, page2.Page)

	// Mais recentes primeiro: a última nota ingerida abre a primeira página.
	assert.Equal(t, fmt.Sprintf("%044d", 3), page1.Data[0].AccessKey)
	assert.Equal(t, fmt.Sprintf("%044d", 1), page2.Data[0].AccessKey)
}

// page/limit menores que 1 são normalizados para 1.
func TestList_NormalizaPaginaELimite(t *testing.T) {
	repo := newMemRepo()
	ingest := appnfe.NewIngestUseCase(repo, &memTx{repo: repo})
	query := appnfe.NewQueryUseCase(repo)
	seedNotas(t, ingest, 2)

	resp, err := query.List(context.Background(), 0, -5)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 1, resp.Limit)
	assert.Len(t, resp.Data, 1)

	// limit acima do teto é reduzido
	resp, err = query.List(context.Background(), 1, 10_000)
	require.NoError(t, err)
	assert.Equal(t, 100, resp.Limit)
}

// Base vazia: página vazia com zero totalPages, sem erro.
func TestList_BaseVazia(t *testing.T) {
	query := appnfe.NewQueryUseCase(newMemRepo())
	resp, err := query.List(context.Background(), 1, 50)
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.Zero(t, resp.Total)
	assert.Zero(t, resp.TotalPages)
}

// GetByID devolve a nota com todos os itens; ID inexistente falha com ErrNotFound.
func TestGetByID(t *testing.T) {
	repo := newMemRepo()
	ingest := appnfe.NewIngestUseCase(repo, &memTx{repo: repo})
	query := appnfe.NewQueryUseCase(repo)
	ids := seedNotas(t, ingest, 1)

	nota, err := query.GetByID(context.Background(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, ids[0], nota.ID)
	require.Len(t, nota.Items, 1)
	assert.Equal(t, "001", nota.Items[0].Code)

	_, err = query.GetByID(context.Background(), "inexistente")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
