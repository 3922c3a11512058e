package scheduling

import (
	"github.com/pcm-dev/programador-os/backend/internal/domain"
)

// RegistroConflito descreve uma colisão de equipe/horário com uma programação
// já existente, com detalhe suficiente para o cliente resolvê-la manualmente.
type RegistroConflito struct {
	ProgramacaoID     int64    `json:"programacao_id"`
	NumeroOS          string   `json:"numero_os"`
	Horario           string   `json:"horario"`
	DuracaoMin        *int     `json:"duracao_min"`
	ExecutantesComuns []string `json:"executantes_comuns"`
}

// DetectarConflitos percorre as programações existentes e devolve todas as
// colisões segundo a Regra B, não apenas a primeira. As programações passadas
// já devem estar filtradas pelo mesmo planejador e pela mesma data da
// candidata; excluirID (0 = nenhuma) tira a própria programação da checagem
// durante uma atualização.
func DetectarConflitos(existentes []*domain.Programacao, executantesTexto string, horario string, duracaoMin *int, excluirID int64) ([]RegistroConflito, error) {
	equipe := domain.NormalizeExecutantes(executantesTexto)
	if len(equipe) == 0 {
		// sem executantes atribuídos não há com quem conflitar
		return nil, nil
	}

	candidato, err := novoIntervalo(horario, duracaoMin)
	if err != nil {
		return nil, err
	}

	var conflitos []RegistroConflito
	for _, p := range existentes {
		if p.ID == excluirID {
			continue
		}

		comuns := domain.ExecutantesComuns(equipe, domain.NormalizeExecutantes(p.ExecutantesTexto))
		if len(comuns) == 0 {
			continue
		}

		existente, err := novoIntervalo(p.Horario, p.DuracaoMin)
		if err != nil {
			return nil, err
		}
		if !candidato.sobrepoe(existente) {
			continue
		}

		conflitos = append(conflitos, RegistroConflito{
			ProgramacaoID:     p.ID,
			NumeroOS:          p.NumeroOS,
			Horario:           p.Horario,
			DuracaoMin:        p.DuracaoMin,
			ExecutantesComuns: comuns,
		})
	}

	return conflitos, nil
}
