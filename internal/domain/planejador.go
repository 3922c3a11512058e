package domain

import "time"

// Planejador é um espaço de programação independente: programações em
// planejadores diferentes nunca conflitam entre si. O nome é único sem
// diferenciar maiúsculas de minúsculas.
type Planejador struct {
	ID       int64     `json:"id"`
	Nome     string    `json:"name"`
	CriadoEm time.Time `json:"created_at"`
}
