package domain

import "errors"

// Erros de domínio (sem dependências externas). Os handlers HTTP traduzem
// cada sentinela para o status correspondente via errors.Is.
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrXMLMalformed       = errors.New("XML malformado")
	ErrInvalidDocument    = errors.New("documento NF-e inválido")
	ErrDuplicateAccessKey = errors.New("chave de acesso já cadastrada")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("e-mail já cadastrado")
	ErrUnauthorized       = errors.New("não autorizado")
)
