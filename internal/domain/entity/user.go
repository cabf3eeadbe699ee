package entity

import "time"

// User usuário da API. Todas as rotas de NF-e exigem um token emitido no login.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}
