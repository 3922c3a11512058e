package domain

import (
	"errors"
	"time"
)

type Periodo string

const (
	PeriodoManha Periodo = "Manhã"
	PeriodoTarde Periodo = "Tarde"
)

func (p Periodo) Valido() bool {
	return p == PeriodoManha || p == PeriodoTarde
}

type StatusProgramacao string

const (
	StatusPlanejada    StatusProgramacao = "Planejada"
	StatusEmAndamento  StatusProgramacao = "Em Andamento"
	StatusConcluida    StatusProgramacao = "Concluída"
	StatusReprogramada StatusProgramacao = "Reprogramada"
)

func (s StatusProgramacao) Valido() bool {
	switch s {
	case StatusPlanejada, StatusEmAndamento, StatusConcluida, StatusReprogramada:
		return true
	}
	return false
}

// ErrOrdemJaProgramada sinaliza a violação da invariante de que uma ordem
// aparece no máximo uma vez dentro do mesmo planejador.
var ErrOrdemJaProgramada = errors.New("a ordem já está programada neste planejador")

// Programacao agenda uma ordem de serviço em um planejador, com data, horário
// e equipe de executantes. Os campos da ordem (número, descrição, setor,
// intervenção, categoria) são uma fotografia tirada no momento da criação.
type Programacao struct {
	ID                int64             `json:"id"`
	PlanejadorID      int64             `json:"planner_id"`
	OrdemID           int64             `json:"ordem_id"`
	NumeroOS          string            `json:"numero_os"`
	Descricao         string            `json:"descricao"`
	Setor             string            `json:"setor"`
	CodigoIntervencao string            `json:"codigo_intervencao"`
	Categoria         Categoria         `json:"categoria"`
	Data              Data              `json:"data"`
	DataConclusao     Data              `json:"data_conclusao"`
	Periodo           Periodo           `json:"periodo"`
	Horario           string            `json:"horario"` // HH:MM
	DuracaoMin        *int              `json:"duracao_min"`
	ExecutantesTexto  string            `json:"executantes_texto"`
	Executantes       []string          `json:"executantes"` // derivado do texto, nunca gravado
	TipoServico       string            `json:"tipo_servico"`
	Status            StatusProgramacao `json:"status"`
	Observacoes       string            `json:"observacoes"`
	Area              string            `json:"area"`
	CriadaEm          time.Time         `json:"criada_em"`
	AtualizadaEm      *time.Time        `json:"atualizada_em"`
}
