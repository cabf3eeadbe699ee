package xmltree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// ErrMalformed indica bytes que não formam um documento XML válido.
var ErrMalformed = errors.New("xmltree: XML malformado")

// Options configura a decodificação.
type Options struct {
	// ListElements nomeia elementos sempre materializados como sequência,
	// mesmo com uma única ocorrência no documento.
	ListElements []string
}

// Parse decodifica os bytes num Node raiz. O elemento raiz do documento fica
// registrado sob o próprio nome no Node devolvido.
func Parse(raw []byte, opts Options) (Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: documento sem elemento raiz", ErrMalformed)
	}

	forced := make(map[string]bool, len(opts.ListElements))
	for _, name := range opts.ListElements {
		forced[name] = true
	}

	result := Node{}
	addChild(result, root.Tag, convert(root, forced), forced)
	return result, nil
}

// convert devolve string para folhas de texto puro e Node quando o elemento
// carrega atributos ou filhos.
func convert(el *etree.Element, forced map[string]bool) any {
	children := el.ChildElements()
	text := strings.TrimSpace(el.Text())

	if len(el.Attr) == 0 && len(children) == 0 {
		return text
	}

	node := Node{}
	for _, attr := range el.Attr {
		node[attrPrefix+attr.Key] = attr.Value
	}
	if text != "" {
		node[textKey] = text
	}
	for _, child := range children {
		addChild(node, child.Tag, convert(child, forced), forced)
	}
	return node
}

// addChild insere o valor sob o nome, promovendo para sequência nomes
// configurados como lista e repetições.
func addChild(n Node, name string, v any, forced map[string]bool) {
	existing, ok := n[name]
	if !ok {
		if forced[name] {
			n[name] = []any{v}
			return
		}
		n[name] = v
		return
	}
	if seq, isSeq := existing.([]any); isSeq {
		n[name] = append(seq, v)
		return
	}
	n[name] = []any{existing, v}
}
