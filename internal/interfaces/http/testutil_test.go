package http_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/leoc0104/nfe-api/internal/application/auth"
	appnfe "github.com/leoc0104/nfe-api/internal/application/nfe"
	"github.com/leoc0104/nfe-api/internal/domain"
	"github.com/leoc0104/nfe-api/internal/domain/entity"
	"github.com/leoc0104/nfe-api/internal/domain/repository"
	apphttp "github.com/leoc0104/nfe-api/internal/interfaces/http"
	pkgjwt "github.com/leoc0104/nfe-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "nfe-api-test"
	testUserID    = "00000000-0000-0000-0000-000000000001"

	// Chave de acesso de 44 dígitos usada nas amostras.
	testAccessKey = "35240112345678000190550010000012341000012349"
)

// sampleXML documento NF-e completo com um item.
func sampleXML(accessKey string) []byte {
	return []byte(fmt.Sprintf(`<nfeProc versao="4.00"><NFe><infNFe Id="NFe%s" versao="4.00">
		<ide><nNF>1234</nNF><serie>1</serie><dhEmi>2024-01-15T10:30:00-03:00</dhEmi></ide>
		<emit><CNPJ>12345678000190</CNPJ><xNome>ACME Comercio Ltda</xNome></emit>
		<dest><CNPJ>04252011000110</CNPJ><xNome>Cliente SA</xNome></dest>
		<det nItem="1"><prod><cProd>001</cProd><xProd>Camiseta</xProd><NCM>61091000</NCM><CFOP>5102</CFOP><qCom>2.0000</qCom><vUnCom>50.00</vUnCom><vProd>100.00</vProd></prod></det>
		<total><ICMSTot><vNF>100.00</vNF></ICMSTot></total>
	</infNFe></NFe></nfeProc>`, accessKey))
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória (mesmo contrato dos adaptadores PostgreSQL)
// ──────────────────────────────────────────────────────────────────────────────

type memRepo struct {
	mu    sync.Mutex
	notas []*entity.NFe
	items map[string][]entity.NFeItem
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[string][]entity.NFeItem{}}
}

func (r *memRepo) Create(_ context.Context, nota *entity.NFe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
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

type memTx struct {
	repo *memRepo
}

func (t *memTx) Run(_ context.Context, fn func(repo repository.NFeRepository) error) error {
	return fn(t.repo)
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User // por e-mail
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	clone := *user
	r.users[user.Email] = &clone
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

// stubDANFE gerador de PDF falso para não depender do renderizador nos testes.
type stubDANFE struct{}

func (stubDANFE) Generate(_ context.Context, _ *entity.NFe, _ []entity.NFeItem) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp monta a aplicação Fiber completa sobre os fakes em memória.
func buildTestApp(t *testing.T) (*fiber.App, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	userRepo := newMemUserRepo()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewUseCase(userRepo, auth.JWTConfig{
			Secret:     testJWTSecret,
			ExpMinutes: 60,
			Issuer:     testIssuer,
		}),
		Ingest:    appnfe.NewIngestUseCase(repo, &memTx{repo: repo}),
		Query:     appnfe.NewQueryUseCase(repo),
		PDF:       appnfe.NewPDFUseCase(repo, stubDANFE{}),
		JWTSecret: testJWTSecret,
	})
	return app, repo
}

// bearerToken gera um JWT válido para as rotas protegidas.
func bearerToken(t *testing.T) string {
	t.Helper()
	token, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, 60)
	require.NoError(t, err)
	return "Bearer " + token
}

// uploadRequest monta um POST multipart para /api/nfe/uploads.
// filename vazio omite o campo "file".
func uploadRequest(t *testing.T, filename string, content []byte, authHeader string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/nfe/uploads", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req
}

// doRequest executa a requisição na app Fiber.
func doRequest(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}
