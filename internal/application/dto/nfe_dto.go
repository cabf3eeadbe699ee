package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// NFeResponse nota fiscal na resposta da API. Os nomes dos campos seguem as
// colunas persistidas para interoperabilidade com os consumidores existentes.
type NFeResponse struct {
	ID            string            `json:"id"`
	AccessKey     string            `json:"access_key"`
	Number        string            `json:"number"`
	Series        string            `json:"series"`
	IssueDate     time.Time         `json:"issue_date"`
	IssuerName    string            `json:"issuer_name"`
	IssuerCNPJ    string            `json:"issuer_cnpj"`
	RecipientName string            `json:"recipient_name"`
	RecipientCNPJ string            `json:"recipient_cnpj"`
	TotalValue    decimal.Decimal   `json:"total_value"`
	Items         []NFeItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// NFeItemResponse linha de item na resposta da API.
type NFeItemResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	NCM         string          `json:"ncm"`
	CFOP        string          `json:"cfop"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalValue  decimal.Decimal `json:"total_value"`
}

// NFeListResponse página de notas com metadados de paginação.
type NFeListResponse struct {
	Data       []NFeResponse `json:"data"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
}
