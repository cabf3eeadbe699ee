package entity

import "github.com/shopspring/decimal"

// NFeItem representa uma linha de produto (det/prod) da nota.
// LineNumber preserva a ordem do documento original.
type NFeItem struct {
	ID          string
	NFeID       string
	LineNumber  int
	Code        string
	Description string
	NCM         string
	CFOP        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalValue  decimal.Decimal
}
