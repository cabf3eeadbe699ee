// Package nfe implementa o pipeline de ingestão de NF-e: normalização do XML,
// mapeamento para a entidade canônica, idempotência por chave de acesso e
// consultas paginadas.
package nfe

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/leoc0104/nfe-api/internal/domain"
	"github.com/leoc0104/nfe-api/internal/domain/entity"
	"github.com/leoc0104/nfe-api/pkg/xmltree"
)

// Prefixo literal do atributo Id do infNFe; o restante é a chave de acesso.
const accessKeyPrefix = "NFe"

// Layouts aceitos para a data de emissão: dhEmi (data e hora com fuso) com
// fallback para dEmi (apenas data), como nos documentos das versões antigas.
const (
	layoutDhEmi = time.RFC3339
	layoutDEmi  = "2006-01-02"
)

// Normalize decodifica os bytes do upload na árvore genérica. O elemento det
// é sempre materializado como lista, então o mapeador não precisa tratar o
// caso "um ou muitos" por chamada.
func Normalize(raw []byte) (xmltree.Node, error) {
	doc, err := xmltree.Parse(raw, xmltree.Options{ListElements: []string{"det"}})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrXMLMalformed, err)
	}
	return doc, nil
}

// MapDocument percorre a árvore normalizada e extrai a nota canônica com seus
// itens. Problemas estruturais devolvem domain.ErrInvalidDocument; campos de
// negócio opcionais ausentes (dest, CNPJ do destinatário) nunca falham.
func MapDocument(doc xmltree.Node) (*entity.NFe, error) {
	// Desembrulha até dois níveis opcionais: nfeProc (processo) e NFe (documento).
	section := doc
	if proc, ok := section.Child("nfeProc"); ok {
		section = proc
	}
	if inner, ok := section.Child("NFe"); ok {
		section = inner
	}
	infNFe, ok := section.Child("infNFe")
	if !ok {
		return nil, fmt.Errorf("%w: falta a seção infNFe", domain.ErrInvalidDocument)
	}

	accessKey := strings.TrimPrefix(infNFe.Attr("Id"), accessKeyPrefix)

	ide, ok := infNFe.Child("ide")
	if !ok {
		return nil, fmt.Errorf("%w: falta a seção ide", domain.ErrInvalidDocument)
	}
	emit, ok := infNFe.Child("emit")
	if !ok {
		return nil, fmt.Errorf("%w: falta a seção emit", domain.ErrInvalidDocument)
	}
	total, ok := infNFe.Child("total")
	if !ok {
		return nil, fmt.Errorf("%w: falta a seção total", domain.ErrInvalidDocument)
	}
	icmsTot, ok := total.Child("ICMSTot")
	if !ok {
		return nil, fmt.Errorf("%w: falta a seção total/ICMSTot", domain.ErrInvalidDocument)
	}

	issueDate, err := parseIssueDate(ide.Text("dhEmi"), ide.Text("dEmi"))
	if err != nil {
		return nil, err
	}
	totalValue, err := parseAmount(icmsTot.Text("vNF"), "total/ICMSTot/vNF")
	if err != nil {
		return nil, err
	}

	nota := &entity.NFe{
		AccessKey:  accessKey,
		Number:     ide.Text("nNF"),
		Series:     ide.Text("serie"),
		IssueDate:  issueDate,
		IssuerName: emit.Text("xNome"),
		IssuerCNPJ: emit.Text("CNPJ"),
		TotalValue: totalValue,
	}

	// dest é opcional: nota para consumidor final pode não identificá-lo.
	if dest, ok := infNFe.Child("dest"); ok {
		nota.RecipientName = dest.Text("xNome")
		nota.RecipientCNPJ = dest.Text("CNPJ")
		if nota.RecipientCNPJ == "" {
			nota.RecipientCNPJ = dest.Text("CPF")
		}
	}

	for i, det := range infNFe.List("det") {
		prod, ok := det.Child("prod")
		if !ok {
			return nil, fmt.Errorf("%w: item %d sem seção prod", domain.ErrInvalidDocument, i+1)
		}
		item, err := mapItem(prod, i+1)
		if err != nil {
			return nil, err
		}
		nota.Items = append(nota.Items, item)
	}

	return nota, nil
}

func mapItem(prod xmltree.Node, line int) (entity.NFeItem, error) {
	quantity, err := parseDecimal(prod.Text("qCom"), fmt.Sprintf("item %d qCom", line))
	if err != nil {
		return entity.NFeItem{}, err
	}
	unitPrice, err := parseAmount(prod.Text("vUnCom"), fmt.Sprintf("item %d vUnCom", line))
	if err != nil {
		return entity.NFeItem{}, err
	}
	totalValue, err := parseAmount(prod.Text("vProd"), fmt.Sprintf("item %d vProd", line))
	if err != nil {
		return entity.NFeItem{}, err
	}
	return entity.NFeItem{
		LineNumber:  line,
		Code:        prod.Text("cProd"),
		Description: prod.Text("xProd"),
		NCM:         prod.Text("NCM"),
		CFOP:        prod.Text("CFOP"),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalValue:  totalValue,
	}, nil
}

// parseIssueDate prefere dhEmi (data e hora) e cai para dEmi (somente data).
func parseIssueDate(dhEmi, dEmi string) (time.Time, error) {
	if dhEmi != "" {
		t, err := time.Parse(layoutDhEmi, dhEmi)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: dhEmi inválido: %q", domain.ErrInvalidDocument, dhEmi)
		}
		return t, nil
	}
	if dEmi != "" {
		t, err := time.Parse(layoutDEmi, dEmi)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: dEmi inválido: %q", domain.ErrInvalidDocument, dEmi)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: falta a data de emissão (dhEmi/dEmi)", domain.ErrInvalidDocument)
}

func parseDecimal(raw, field string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: falta o campo %s", domain.ErrInvalidDocument, field)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: campo %s não numérico: %q", domain.ErrInvalidDocument, field, raw)
	}
	return d, nil
}

// parseAmount é parseDecimal com a regra de valores monetários não negativos.
func parseAmount(raw, field string) (decimal.Decimal, error) {
	d, err := parseDecimal(raw, field)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: campo %s negativo: %q", domain.ErrInvalidDocument, field, raw)
	}
	return d, nil
}
