// Package pdf implementa a geração do DANFE (Documento Auxiliar da Nota
// Fiscal Eletrônica) em formato simplificado.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emitente + CNPJ      │  N° / Série / Data emissão  │
//	│  CHAVE DE ACESSO: 44 dígitos + código de barras             │
//	│  ───────────────────────────────────────────────────────── │
//	│  DESTINATÁRIO: Nome + CNPJ/CPF                              │
//	│  ───────────────────────────────────────────────────────── │
//	│  TABELA: Cód | Descrição | NCM | CFOP | Qtd | V.Unit | V.Tot│
//	│  ───────────────────────────────────────────────────────── │
//	│  TOTAL DA NOTA                                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/barcode"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appnfe "github.com/leoc0104/nfe-api/internal/application/nfe"
	"github.com/leoc0104/nfe-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appnfe.DANFEGenerator = (*MarotoDANFEGenerator)(nil)

// MarotoDANFEGenerator implementa nfe.DANFEGenerator usando Maroto v2.
type MarotoDANFEGenerator struct{}

// NewMarotoDANFEGenerator constrói o gerador.
func NewMarotoDANFEGenerator() *MarotoDANFEGenerator { return &MarotoDANFEGenerator{} }

// Generate gera o PDF do DANFE e devolve seus bytes.
func (g *MarotoDANFEGenerator) Generate(_ context.Context, nota *entity.NFe, items []entity.NFeItem) ([]byte, error) {
	if nota == nil {
		return nil, fmt.Errorf("pdf: nota ausente")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("DANFE", true).
		WithAuthor(nota.IssuerName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(nota))
	m.AddRows(accessKeyRows(nota)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(recipientRow(nota))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, item := range items {
		m.AddRows(itemRow(item))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(nota))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: emitente (esq) e número/série/data (dir).
func headerRow(nota *entity.NFe) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nota.IssuerName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CNPJ: "+nota.IssuerCNPJ, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("NF-e Nº "+nota.Number+"  Série "+nota.Series, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Emissão: "+nota.IssueDate.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// accessKeyRows: chave de acesso em texto e código de barras Code 128.
func accessKeyRows(nota *entity.NFe) []core.Row {
	return []core.Row{
		row.New(6).Add(
			col.New(12).Add(
				text.New("CHAVE DE ACESSO: "+nota.AccessKey, props.Text{
					Size: 8, Style: fontstyle.Bold, Align: align.Center,
				}),
			),
		),
		row.New(12).Add(
			code.NewBarCol(12, nota.AccessKey, props.Barcode{
				Type: barcode.Code128, Center: true, Percent: 90,
			}),
		),
	}
}

// recipientRow: bloco do destinatário, ou indicação de consumidor não identificado.
func recipientRow(nota *entity.NFe) core.Row {
	name := nota.RecipientName
	doc := nota.RecipientCNPJ
	if name == "" && doc == "" {
		name = "Consumidor não identificado"
	}
	return row.New(12).Add(
		col.New(8).Add(
			text.New("DESTINATÁRIO", props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(name, props.Text{Size: 10, Style: fontstyle.Bold, Top: 5}),
		),
		col.New(4).Add(
			text.New("CNPJ/CPF", props.Text{Size: 7, Color: colorGray, Align: align.Right, Top: 1}),
			text.New(doc, props.Text{Size: 10, Align: align.Right, Top: 5}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Size: 8, Style: fontstyle.Bold, Color: colorPrimary, Align: a, Top: 1,
		}))
	}
	return row.New(6).Add(
		header(2, "Código", align.Left),
		header(4, "Descrição", align.Left),
		header(1, "NCM", align.Left),
		header(1, "CFOP", align.Left),
		header(1, "Qtd", align.Right),
		header(1, "V. Unit", align.Right),
		header(2, "V. Total", align.Right),
	)
}

func itemRow(item entity.NFeItem) core.Row {
	cell := func(size int, value string, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1}))
	}
	return row.New(5).Add(
		cell(2, item.Code, align.Left),
		cell(4, item.Description, align.Left),
		cell(1, item.NCM, align.Left),
		cell(1, item.CFOP, align.Left),
		cell(1, item.Quantity.String(), align.Right),
		cell(1, item.UnitPrice.StringFixed(2), align.Right),
		cell(2, item.TotalValue.StringFixed(2), align.Right),
	)
}

func totalRow(nota *entity.NFe) core.Row {
	return row.New(8).Add(
		col.New(8).Add(text.New("VALOR TOTAL DA NOTA", props.Text{
			Size: 10, Style: fontstyle.Bold, Top: 2,
		})),
		col.New(4).Add(text.New("R$ "+nota.TotalValue.StringFixed(2), props.Text{
			Size: 11, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary, Top: 2,
		})),
	)
}
