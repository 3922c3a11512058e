package scheduling

import (
	"database/sql"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcm-dev/programador-os/backend/internal/domain"
)

// fakeStore reproduz em memória o contrato do Store: sql.ErrNoRows para
// registros ausentes, checagem de ordem duplicada e verificação de conflitos
// executada contra as programações da mesma data antes de qualquer escrita.
type fakeStore struct {
	planejadores map[int64]*domain.Planejador
	ordens       map[int64]*domain.OrdemServico
	programacoes map[int64]*domain.Programacao
	proximoID    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		planejadores: make(map[int64]*domain.Planejador),
		ordens:       make(map[int64]*domain.OrdemServico),
		programacoes: make(map[int64]*domain.Programacao),
	}
}

func (f *fakeStore) GetPlanejadorPorID(id int64) (*domain.Planejador, error) {
	p, ok := f.planejadores[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakeStore) GetOrdemPorID(id int64) (*domain.OrdemServico, error) {
	o, ok := f.ordens[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return o, nil
}

func (f *fakeStore) GetProgramacaoPorID(id int64, planejadorID int64) (*domain.Programacao, error) {
	p, ok := f.programacoes[id]
	if !ok || p.PlanejadorID != planejadorID {
		return nil, sql.ErrNoRows
	}
	copia := *p
	return &copia, nil
}

func (f *fakeStore) mesmaData(planejadorID int64, data domain.Data) []*domain.Programacao {
	var saida []*domain.Programacao
	for _, p := range f.programacoes {
		if p.PlanejadorID == planejadorID && p.Data.Equal(data.Time) {
			saida = append(saida, p)
		}
	}
	return saida
}

func (f *fakeStore) CreateProgramacao(p *domain.Programacao, verificar VerificacaoConflitos) error {
	for _, existente := range f.programacoes {
		if existente.PlanejadorID == p.PlanejadorID && existente.OrdemID == p.OrdemID {
			return domain.ErrOrdemJaProgramada
		}
	}
	if err := verificar(f.mesmaData(p.PlanejadorID, p.Data)); err != nil {
		return err
	}
	f.proximoID++
	p.ID = f.proximoID
	copia := *p
	f.programacoes[p.ID] = &copia
	return nil
}

func (f *fakeStore) UpdateProgramacao(p *domain.Programacao, verificar VerificacaoConflitos) error {
	atual, ok := f.programacoes[p.ID]
	if !ok || atual.PlanejadorID != p.PlanejadorID {
		return sql.ErrNoRows
	}
	if err := verificar(f.mesmaData(p.PlanejadorID, p.Data)); err != nil {
		return err
	}
	copia := *p
	f.programacoes[p.ID] = &copia
	return nil
}

func (f *fakeStore) DeleteProgramacao(id int64, planejadorID int64) error {
	p, ok := f.programacoes[id]
	if !ok || p.PlanejadorID != planejadorID {
		return sql.ErrNoRows
	}
	delete(f.programacoes, id)
	return nil
}

func (f *fakeStore) ListProgramacoes(planejadorID int64, inicio, fim *domain.Data) ([]*domain.Programacao, error) {
	var saida []*domain.Programacao
	for _, p := range f.programacoes {
		if p.PlanejadorID != planejadorID {
			continue
		}
		if inicio != nil && p.DataConclusao.Before(inicio.Time) {
			continue
		}
		if fim != nil && p.Data.After(fim.Time) {
			continue
		}
		copia := *p
		saida = append(saida, &copia)
	}
	sort.Slice(saida, func(i, j int) bool {
		if !saida[i].Data.Equal(saida[j].Data.Time) {
			return saida[i].Data.Before(saida[j].Data.Time)
		}
		return saida[i].Horario < saida[j].Horario
	})
	return saida, nil
}

func dataTeste(t *testing.T, s string) domain.Data {
	t.Helper()
	d, err := domain.ParseData(s)
	require.NoError(t, err)
	return d
}

func cenarioBase(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	store.planejadores[1] = &domain.Planejador{ID: 1, Nome: "Carlos Pereira"}
	store.planejadores[2] = &domain.Planejador{ID: 2, Nome: "Fernanda Lima"}
	store.ordens[100] = &domain.OrdemServico{
		ID:                100,
		NumeroOS:          "200100",
		Descricao:         "Troca de rolamento da bomba",
		TipoServico:       "Mecânica",
		Setor:             "Utilidades",
		CodigoIntervencao: "CM01",
	}
	store.ordens[101] = &domain.OrdemServico{
		ID:                101,
		NumeroOS:          "200101",
		Descricao:         "Inspeção de correia",
		TipoServico:       "Mecânica",
		Setor:             "Moagem",
		CodigoIntervencao: "PM02",
	}
	return NewService(store), store
}

func TestCriarProgramacao(t *testing.T) {
	service, _ := cenarioBase(t)

	p, err := service.Criar(&NovaProgramacao{
		PlanejadorID:     1,
		OrdemID:          100,
		Data:             dataTeste(t, "2024-03-01"),
		Periodo:          domain.PeriodoManha,
		Horario:          "09:00",
		DuracaoMin:       minutos(60),
		ExecutantesTexto: "Ana",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), p.ID)
	// fotografia da ordem no momento da criação
	assert.Equal(t, "200100", p.NumeroOS)
	assert.Equal(t, "Troca de rolamento da bomba", p.Descricao)
	assert.Equal(t, "Utilidades", p.Setor)
	assert.Equal(t, domain.CategoriaCorretiva, p.Categoria)
	// campos opcionais herdados
	assert.Equal(t, domain.StatusPlanejada, p.Status)
	assert.True(t, p.DataConclusao.Equal(p.Data.Time))
	assert.Equal(t, "Mecânica", p.TipoServico)
	assert.Equal(t, []string{"ana"}, p.Executantes)
}

func TestCriarProgramacaoDuracaoNaoPositiva(t *testing.T) {
	service, _ := cenarioBase(t)

	p, err := service.Criar(&NovaProgramacao{
		PlanejadorID:     1,
		OrdemID:          100,
		Data:             dataTeste(t, "2024-03-01"),
		Periodo:          domain.PeriodoTarde,
		Horario:          "14:00",
		DuracaoMin:       minutos(-30),
		ExecutantesTexto: "Ana",
	})
	require.NoError(t, err)
	assert.Nil(t, p.DuracaoMin)
}

func TestCriarProgramacaoValidacao(t *testing.T) {
	conclusao := dataTeste(t, "2024-02-28")

	casos := []struct {
		nome  string
		req   NovaProgramacao
		campo string
	}{
		{
			nome:  "período inválido",
			req:   NovaProgramacao{PlanejadorID: 1, OrdemID: 100, Periodo: "Noite", Horario: "09:00"},
			campo: "periodo",
		},
		{
			nome:  "status fora da enumeração",
			req:   NovaProgramacao{PlanejadorID: 1, OrdemID: 100, Periodo: domain.PeriodoManha, Horario: "09:00", Status: "Cancelada"},
			campo: "status",
		},
		{
			nome:  "horário malformado",
			req:   NovaProgramacao{PlanejadorID: 1, OrdemID: 100, Periodo: domain.PeriodoManha, Horario: "9h00"},
			campo: "horario",
		},
		{
			nome: "conclusão antes do início",
			req: NovaProgramacao{
				PlanejadorID: 1, OrdemID: 100, Periodo: domain.PeriodoManha, Horario: "09:00",
				DataConclusao: &conclusao,
			},
			campo: "data_conclusao",
		},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			service, store := cenarioBase(t)
			c.req.Data = dataTeste(t, "2024-03-01")

			_, err := service.Criar(&c.req)

			var ev *ErroValidacao
			require.ErrorAs(t, err, &ev)
			assert.Equal(t, c.campo, ev.Campo)
			assert.Empty(t, store.programacoes, "validação reprovada não pode gravar nada")
		})
	}
}

func TestCriarProgramacaoRecursosAusentes(t *testing.T) {
	service, _ := cenarioBase(t)

	_, err := service.Criar(&NovaProgramacao{
		PlanejadorID: 99, OrdemID: 100,
		Data: dataTeste(t, "2024-03-01"), Periodo: domain.PeriodoManha, Horario: "09:00",
	})
	var en *ErroNaoEncontrado
	require.ErrorAs(t, err, &en)
	assert.Equal(t, "planejador", en.Recurso)

	_, err = service.Criar(&NovaProgramacao{
		PlanejadorID: 1, OrdemID: 999,
		Data: dataTeste(t, "2024-03-01"), Periodo: domain.PeriodoManha, Horario: "09:00",
	})
	require.ErrorAs(t, err, &en)
	assert.Equal(t, "ordem de serviço", en.Recurso)

	// ordem inexistente e datas invertidas ao mesmo tempo: a referência
	// quebrada responde primeiro
	conclusao := dataTeste(t, "2024-02-28")
	_, err = service.Criar(&NovaProgramacao{
		PlanejadorID: 1, OrdemID: 999,
		Data: dataTeste(t, "2024-03-01"), DataConclusao: &conclusao,
		Periodo: domain.PeriodoManha, Horario: "09:00",
	})
	require.ErrorAs(t, err, &en)
	assert.Equal(t, "ordem de serviço", en.Recurso)
}

func TestCriarProgramacaoOrdemDuplicada(t *testing.T) {
	service, _ := cenarioBase(t)

	_, err := service.Criar(&NovaProgramacao{
		PlanejadorID: 1, OrdemID: 100,
		Data: dataTeste(t, "2024-03-01"), Periodo: domain.PeriodoManha,
		Horario: "09:00", ExecutantesTexto: "Ana",
	})
	require.NoError(t, err)

	// mesma ordem em dia, horário e equipe totalmente diferentes: ainda é
	// duplicidade dentro do planejador
	_, err = service.Criar(&NovaProgramacao{
		PlanejadorID: 1, OrdemID: 100,
		Data: dataTeste(t, "2024-06-15"), Periodo: domain.PeriodoTarde,
		Horario: "15:00", ExecutantesTexto: "Bruno",
	})
	var ec *ErroConflito
	require.ErrorAs(t, err, &ec)
	assert.Empty(t, ec.Conflitos)

	// em outro planejador a mesma ordem pode ser programada
	_, err = service.Criar(&NovaProgramacao{
		PlanejadorID: 2, OrdemID: 100,
		Data: dataTeste(t, "2024-03-01"), Periodo: domain.PeriodoManha,
		Horario: "09:00", ExecutantesTexto: "Ana",
	})
	require.NoError(t, err)
}

func TestCriarProgramacaoConflitoDeEquipe(t *testing.T) {
	service, _ := cenarioBase(t)

	primeira, err := service.Criar(&NovaProgramacao{
		PlanejadorID: 1, OrdemID: 100,
		Data: dataTeste(t, "2024-03-01"), Periodo: domain.PeriodoManha,
		Horario: "09:00", DuracaoMin: minutos(60), ExecutantesTexto: "Ana",
	})
	require.NoError(t, err)

	_, err = service.Criar(&NovaProgramacao{
		PlanejadorID: 1, OrdemID: 101,
		Data: dataTeste(t, "2024-03-01"), Periodo: domain.PeriodoManha,
		Horario: "09:30", DuracaoMin: minutos(60), ExecutantesTexto: "Ana, Bruno",
	})

	var ec *ErroConflito
	require.ErrorAs(t, err, &ec)
	require.Len(t, ec.Conflitos, 1)
	assert.Equal(t, primeira.ID, ec.Conflitos[0].ProgramacaoID)
	assert.Equal(t, "200100", ec.Conflitos[0].NumeroOS)
	assert.Equal(t, []string{"ana"}, ec.Conflitos[0].ExecutantesComuns)
}

func TestAtualizarProgramacao(t *testing.T) {
	service, _ := cenarioBase(t)

	p, err := service.Criar(&NovaProgramacao{
		PlanejadorID: 1, OrdemID: 100,
		Data: dataTeste(t, "2024-03-01"), Periodo: domain.PeriodoManha,
		Horario: "09:00", DuracaoMin: minutos(60), ExecutantesTexto: "Ana",
	})
	require.NoError(t, err)

	// manter horário e equipe não conflita consigo mesma
	atualizada, err := service.Atualizar(p.ID, &AlteracaoProgramacao{
		PlanejadorID:     1,
		Data:             dataTeste(t, "2024-03-01"),
		Periodo:          domain.PeriodoManha,
		Horario:          "09:00",
		DuracaoMin:       minutos(60),
		ExecutantesTexto: "Ana",
		Observacoes:      "aguardando peça",
	})
	require.NoError(t, err)
	assert.Equal(t, "aguardando peça", atualizada.Observacoes)
	// status e tipo de serviço vazios preservam os valores atuais
	assert.Equal(t, domain.StatusPlanejada, atualizada.Status)
	assert.Equal(t, "Mecânica", atualizada.TipoServico)
}

func TestAtualizarProgramacaoParaConflito(t *testing.T) {
	service, _ := cenarioBase(t)

	_, err := service.Criar(&NovaProgramacao{
		PlanejadorID: 1, OrdemID: 100,
		Data: dataTeste(t, "2024-03-01"), Periodo: domain.PeriodoManha,
		Horario: "09:00", DuracaoMin: minutos(60), ExecutantesTexto: "Ana",
	})
	require.NoError(t, err)

	segunda, err := service.Criar(&NovaProgramacao{
		PlanejadorID: 1, OrdemID: 101,
		Data: dataTeste(t, "2024-03-01"), Periodo: domain.PeriodoTarde,
		Horario: "14:00", DuracaoMin: minutos(60), ExecutantesTexto: "Ana",
	})
	require.NoError(t, err)

	_, err = service.Atualizar(segunda.ID, &AlteracaoProgramacao{
		PlanejadorID:     1,
		Data:             dataTeste(t, "2024-03-01"),
		Periodo:          domain.PeriodoManha,
		Horario:          "09:30",
		DuracaoMin:       minutos(60),
		ExecutantesTexto: "Ana",
	})
	var ec *ErroConflito
	require.ErrorAs(t, err, &ec)
	require.Len(t, ec.Conflitos, 1)
}

func TestAtualizarProgramacaoInexistente(t *testing.T) {
	service, _ := cenarioBase(t)

	req := &AlteracaoProgramacao{
		PlanejadorID: 1,
		Data:         dataTeste(t, "2024-03-01"),
		Periodo:      domain.PeriodoManha,
		Horario:      "09:00",
	}

	_, err := service.Atualizar(42, req)
	var en *ErroNaoEncontrado
	require.ErrorAs(t, err, &en)
	assert.Equal(t, "programação", en.Recurso)
}

func TestAtualizarProgramacaoDeOutroPlanejador(t *testing.T) {
	service, _ := cenarioBase(t)

	p, err := service.Criar(&NovaProgramacao{
		PlanejadorID: 1, OrdemID: 100,
		Data: dataTeste(t, "2024-03-01"), Periodo: domain.PeriodoManha, Horario: "09:00",
	})
	require.NoError(t, err)

	_, err = service.Atualizar(p.ID, &AlteracaoProgramacao{
		PlanejadorID: 2,
		Data:         dataTeste(t, "2024-03-01"),
		Periodo:      domain.PeriodoManha,
		Horario:      "09:00",
	})
	var en *ErroNaoEncontrado
	require.ErrorAs(t, err, &en)
	assert.Equal(t, "programação", en.Recurso)
}

func TestRemoverProgramacao(t *testing.T) {
	service, store := cenarioBase(t)

	p, err := service.Criar(&NovaProgramacao{
		PlanejadorID: 1, OrdemID: 100,
		Data: dataTeste(t, "2024-03-01"), Periodo: domain.PeriodoManha, Horario: "09:00",
	})
	require.NoError(t, err)

	require.NoError(t, service.Remover(p.ID, 1))
	assert.Empty(t, store.programacoes)

	err = service.Remover(p.ID, 1)
	var en *ErroNaoEncontrado
	require.ErrorAs(t, err, &en)
	assert.Equal(t, "programação", en.Recurso)

	err = service.Remover(1, 99)
	require.ErrorAs(t, err, &en)
	assert.Equal(t, "planejador", en.Recurso)
}

func TestListarProgramacoes(t *testing.T) {
	service, _ := cenarioBase(t)

	fim := dataTeste(t, "2024-03-05")
	_, err := service.Criar(&NovaProgramacao{
		PlanejadorID: 1, OrdemID: 100,
		Data: dataTeste(t, "2024-03-04"), DataConclusao: &fim,
		Periodo: domain.PeriodoManha, Horario: "08:00", ExecutantesTexto: "Ana, Bruno",
	})
	require.NoError(t, err)

	_, err = service.Criar(&NovaProgramacao{
		PlanejadorID: 1, OrdemID: 101,
		Data:    dataTeste(t, "2024-03-01"),
		Periodo: domain.PeriodoTarde, Horario: "14:00", ExecutantesTexto: "Carlos",
	})
	require.NoError(t, err)

	todas, err := service.Listar(1, nil, nil)
	require.NoError(t, err)
	require.Len(t, todas, 2)
	// ordenação por (data, horário)
	assert.Equal(t, "200101", todas[0].NumeroOS)
	assert.Equal(t, "200100", todas[1].NumeroOS)
	assert.Equal(t, []string{"carlos"}, todas[0].Executantes)
	assert.Equal(t, []string{"ana", "bruno"}, todas[1].Executantes)

	// o intervalo intersecta o período [data, data_conclusao], inclusivo
	ini := dataTeste(t, "2024-03-05")
	fimBusca := dataTeste(t, "2024-03-10")
	recorte, err := service.Listar(1, &ini, &fimBusca)
	require.NoError(t, err)
	require.Len(t, recorte, 1)
	assert.Equal(t, "200100", recorte[0].NumeroOS)

	ini = dataTeste(t, "2024-03-06")
	recorte, err = service.Listar(1, &ini, &fimBusca)
	require.NoError(t, err)
	assert.Empty(t, recorte)

	_, err = service.Listar(99, nil, nil)
	var en *ErroNaoEncontrado
	require.ErrorAs(t, err, &en)
	assert.Equal(t, "planejador", en.Recurso)
}
