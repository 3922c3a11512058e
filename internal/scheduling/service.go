package scheduling

import (
	"database/sql"
	"errors"

	"github.com/pcm-dev/programador-os/backend/internal/domain"
)

// VerificacaoConflitos é executada pelo Store dentro da mesma transação que
// faz a escrita, recebendo as programações do planejador na mesma data da
// candidata. Se retornar erro, a transação inteira é abortada.
type VerificacaoConflitos func(mesmaData []*domain.Programacao) error

// Store é a abstração transacional exigida pelo serviço de programação. A
// leitura de validação (programações do mesmo dia, ordem duplicada) e a
// escrita subsequente precisam acontecer em uma única transação serializada
// por planejador, senão duas requisições concorrentes passam ambas pela
// checagem contra um retrato que não inclui a escrita da outra.
type Store interface {
	GetPlanejadorPorID(id int64) (*domain.Planejador, error)
	GetOrdemPorID(id int64) (*domain.OrdemServico, error)
	GetProgramacaoPorID(id int64, planejadorID int64) (*domain.Programacao, error)

	// CreateProgramacao executa, em uma transação: o bloqueio do planejador,
	// a checagem de ordem duplicada (domain.ErrOrdemJaProgramada), a leitura
	// das programações da mesma data, a verificação fornecida e o INSERT.
	CreateProgramacao(p *domain.Programacao, verificar VerificacaoConflitos) error

	// UpdateProgramacao segue a mesma disciplina de CreateProgramacao, sem a
	// checagem de ordem duplicada (a associação com a ordem é imutável).
	UpdateProgramacao(p *domain.Programacao, verificar VerificacaoConflitos) error

	DeleteProgramacao(id int64, planejadorID int64) error
	ListProgramacoes(planejadorID int64, inicio, fim *domain.Data) ([]*domain.Programacao, error)
}

// Service orquestra validação, checagens de duplicidade/conflito e a escrita
// atômica das programações. Toda regra roda antes de qualquer mutação; a
// primeira checagem que falha interrompe o restante.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// NovaProgramacao é a entrada da operação de criação. Campos opcionais vazios
// herdam seus valores: DataConclusao da Data, TipoServico da ordem, Status de
// StatusPlanejada.
type NovaProgramacao struct {
	PlanejadorID     int64
	OrdemID          int64
	Data             domain.Data
	DataConclusao    *domain.Data
	Periodo          domain.Periodo
	Horario          string
	DuracaoMin       *int
	ExecutantesTexto string
	TipoServico      string
	Status           domain.StatusProgramacao
	Observacoes      string
	Area             string
}

// AlteracaoProgramacao é a entrada da atualização: os mesmos campos da
// criação, exceto a ordem, que não pode ser trocada depois de criada.
type AlteracaoProgramacao struct {
	PlanejadorID     int64
	Data             domain.Data
	DataConclusao    *domain.Data
	Periodo          domain.Periodo
	Horario          string
	DuracaoMin       *int
	ExecutantesTexto string
	TipoServico      string
	Status           domain.StatusProgramacao
	Observacoes      string
	Area             string
}

func (s *Service) Criar(req *NovaProgramacao) (*domain.Programacao, error) {
	if _, err := s.buscarPlanejador(req.PlanejadorID); err != nil {
		return nil, err
	}

	if !req.Periodo.Valido() {
		return nil, &ErroValidacao{Campo: "periodo", Motivo: "deve ser Manhã ou Tarde"}
	}
	status := req.Status
	if status == "" {
		status = domain.StatusPlanejada
	}
	if !status.Valido() {
		return nil, &ErroValidacao{Campo: "status", Motivo: "valor fora da enumeração"}
	}
	if _, err := parseHorario(req.Horario); err != nil {
		return nil, &ErroValidacao{Campo: "horario", Motivo: err.Error()}
	}
	duracao := normalizaDuracao(req.DuracaoMin)

	// a ordem é resolvida antes das checagens de data: referência quebrada
	// responde como não encontrado, não como entrada inválida
	ordem, err := s.store.GetOrdemPorID(req.OrdemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &ErroNaoEncontrado{Recurso: "ordem de serviço"}
		}
		return nil, err
	}

	conclusao := req.Data
	if req.DataConclusao != nil {
		conclusao = *req.DataConclusao
	}
	if conclusao.Before(req.Data.Time) {
		return nil, &ErroValidacao{Campo: "data_conclusao", Motivo: "não pode ser anterior à data de início"}
	}

	tipoServico := req.TipoServico
	if tipoServico == "" {
		tipoServico = ordem.TipoServico
	}

	p := &domain.Programacao{
		PlanejadorID:      req.PlanejadorID,
		OrdemID:           ordem.ID,
		NumeroOS:          ordem.NumeroOS,
		Descricao:         ordem.Descricao,
		Setor:             ordem.Setor,
		CodigoIntervencao: ordem.CodigoIntervencao,
		Categoria:         domain.CategoriaDaIntervencao(ordem.CodigoIntervencao),
		Data:              req.Data,
		DataConclusao:     conclusao,
		Periodo:           req.Periodo,
		Horario:           req.Horario,
		DuracaoMin:        duracao,
		ExecutantesTexto:  req.ExecutantesTexto,
		TipoServico:       tipoServico,
		Status:            status,
		Observacoes:       req.Observacoes,
		Area:              req.Area,
	}

	if err := s.store.CreateProgramacao(p, s.verificacao(p, 0)); err != nil {
		if errors.Is(err, domain.ErrOrdemJaProgramada) {
			return nil, &ErroConflito{Motivo: domain.ErrOrdemJaProgramada.Error()}
		}
		return nil, err
	}

	p.Executantes = domain.NormalizeExecutantes(p.ExecutantesTexto)
	return p, nil
}

func (s *Service) Atualizar(id int64, req *AlteracaoProgramacao) (*domain.Programacao, error) {
	if _, err := s.buscarPlanejador(req.PlanejadorID); err != nil {
		return nil, err
	}

	p, err := s.store.GetProgramacaoPorID(id, req.PlanejadorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &ErroNaoEncontrado{Recurso: "programação"}
		}
		return nil, err
	}

	if !req.Periodo.Valido() {
		return nil, &ErroValidacao{Campo: "periodo", Motivo: "deve ser Manhã ou Tarde"}
	}
	status := req.Status
	if status == "" {
		status = p.Status
	}
	if !status.Valido() {
		return nil, &ErroValidacao{Campo: "status", Motivo: "valor fora da enumeração"}
	}
	if _, err := parseHorario(req.Horario); err != nil {
		return nil, &ErroValidacao{Campo: "horario", Motivo: err.Error()}
	}

	conclusao := req.Data
	if req.DataConclusao != nil {
		conclusao = *req.DataConclusao
	}
	if conclusao.Before(req.Data.Time) {
		return nil, &ErroValidacao{Campo: "data_conclusao", Motivo: "não pode ser anterior à data de início"}
	}

	p.Data = req.Data
	p.DataConclusao = conclusao
	p.Periodo = req.Periodo
	p.Horario = req.Horario
	p.DuracaoMin = normalizaDuracao(req.DuracaoMin)
	p.ExecutantesTexto = req.ExecutantesTexto
	if req.TipoServico != "" {
		p.TipoServico = req.TipoServico
	}
	p.Status = status
	p.Observacoes = req.Observacoes
	p.Area = req.Area

	// a própria programação é excluída da checagem de conflito
	if err := s.store.UpdateProgramacao(p, s.verificacao(p, p.ID)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &ErroNaoEncontrado{Recurso: "programação"}
		}
		return nil, err
	}

	p.Executantes = domain.NormalizeExecutantes(p.ExecutantesTexto)
	return p, nil
}

func (s *Service) Remover(id int64, planejadorID int64) error {
	if _, err := s.buscarPlanejador(planejadorID); err != nil {
		return err
	}

	if err := s.store.DeleteProgramacao(id, planejadorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &ErroNaoEncontrado{Recurso: "programação"}
		}
		return err
	}
	return nil
}

// Listar devolve as programações do planejador ordenadas por (data, horário).
// Com um intervalo de datas, devolve as programações cujo período
// [data, data_conclusao] intersecta o intervalo, inclusivo nas duas pontas.
func (s *Service) Listar(planejadorID int64, inicio, fim *domain.Data) ([]*domain.Programacao, error) {
	if _, err := s.buscarPlanejador(planejadorID); err != nil {
		return nil, err
	}

	programacoes, err := s.store.ListProgramacoes(planejadorID, inicio, fim)
	if err != nil {
		return nil, err
	}

	for _, p := range programacoes {
		p.Executantes = domain.NormalizeExecutantes(p.ExecutantesTexto)
	}
	return programacoes, nil
}

func (s *Service) buscarPlanejador(id int64) (*domain.Planejador, error) {
	planejador, err := s.store.GetPlanejadorPorID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &ErroNaoEncontrado{Recurso: "planejador"}
		}
		return nil, err
	}
	return planejador, nil
}

func (s *Service) verificacao(p *domain.Programacao, excluirID int64) VerificacaoConflitos {
	return func(mesmaData []*domain.Programacao) error {
		conflitos, err := DetectarConflitos(mesmaData, p.ExecutantesTexto, p.Horario, p.DuracaoMin, excluirID)
		if err != nil {
			return err
		}
		if len(conflitos) > 0 {
			return &ErroConflito{
				Motivo:    "conflito de executantes e horário com programações existentes",
				Conflitos: conflitos,
			}
		}
		return nil
	}
}

// Duração zero ou negativa é tratada como ausência de duração.
func normalizaDuracao(duracaoMin *int) *int {
	if duracaoMin == nil || *duracaoMin <= 0 {
		return nil
	}
	return duracaoMin
}
