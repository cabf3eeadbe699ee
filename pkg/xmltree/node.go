// Package xmltree decodifica XML arbitrário numa árvore genérica de mapas,
// com atributos sob a chave "@nome" e texto do elemento sob "#text". Elementos
// repetidos (ou configurados como lista) viram sequências, preservando a ordem
// do documento.
package xmltree

const (
	textKey    = "#text"
	attrPrefix = "@"
)

// Node é um elemento decodificado. Os valores são string (folha de texto),
// Node (elemento com atributos ou filhos) ou []any (sequência de ambos).
// Todos os acessores são seguros em Node nil.
type Node map[string]any

// Child devolve o elemento filho com o nome dado. Folhas de texto puro não
// são Node e devolvem ok=false.
func (n Node) Child(name string) (Node, bool) {
	if n == nil {
		return nil, false
	}
	child, ok := n[name].(Node)
	return child, ok
}

// Text devolve o texto do filho com o nome dado: o valor direto se a folha é
// string, ou o "#text" se o filho carrega atributos. Ausente devolve "".
func (n Node) Text(name string) string {
	if n == nil {
		return ""
	}
	switch v := n[name].(type) {
	case string:
		return v
	case Node:
		s, _ := v[textKey].(string)
		return s
	default:
		return ""
	}
}

// Attr devolve o valor do atributo com o nome dado, ou "".
func (n Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	s, _ := n[attrPrefix+name].(string)
	return s
}

// List materializa o filho com o nome dado como sequência: uma sequência é
// devolvida como está, uma ocorrência única vira sequência de tamanho 1 e
// ausente devolve nil.
func (n Node) List(name string) []Node {
	if n == nil {
		return nil
	}
	switch v := n[name].(type) {
	case nil:
		return nil
	case []any:
		out := make([]Node, 0, len(v))
		for _, item := range v {
			out = append(out, asNode(item))
		}
		return out
	default:
		return []Node{asNode(v)}
	}
}

// asNode embrulha folhas de texto como Node para a iteração de sequências.
func asNode(v any) Node {
	switch item := v.(type) {
	case Node:
		return item
	case string:
		return Node{textKey: item}
	default:
		return Node{}
	}
}
