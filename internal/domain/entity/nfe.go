package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// NFe representa a nota fiscal eletrônica persistida.
// AccessKey é a chave de acesso de 44 dígitos (atributo Id do infNFe sem o
// prefixo literal "NFe") e é única em toda a base.
type NFe struct {
	ID            string
	AccessKey     string
	Number        string
	Series        string
	IssueDate     time.Time
	IssuerName    string
	IssuerCNPJ    string
	RecipientName string // vazio quando o documento omite a seção dest
	RecipientCNPJ string // CNPJ ou, na falta dele, CPF do destinatário
	TotalValue    decimal.Decimal
	Items         []NFeItem
	CreatedAt     time.Time
}
