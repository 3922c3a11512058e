package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pcm-dev/programador-os/backend/internal/domain"
	"github.com/pcm-dev/programador-os/backend/internal/scheduling"
)

const colunasProgramacao = `
	id, planejador_id, ordem_id, numero_os, descricao, setor, codigo_intervencao,
	categoria, data, data_conclusao, periodo, horario, duracao_min,
	executantes_texto, tipo_servico, status, observacoes, area, criada_em, atualizada_em
`

type scanner interface {
	Scan(dst ...any) error
}

func scanProgramacao(s scanner) (*domain.Programacao, error) {
	var p domain.Programacao
	var duracao sql.NullInt32
	var atualizadaEm sql.NullTime

	dst := []any{
		&p.ID,
		&p.PlanejadorID,
		&p.OrdemID,
		&p.NumeroOS,
		&p.Descricao,
		&p.Setor,
		&p.CodigoIntervencao,
		&p.Categoria,
		&p.Data,
		&p.DataConclusao,
		&p.Periodo,
		&p.Horario,
		&duracao,
		&p.ExecutantesTexto,
		&p.TipoServico,
		&p.Status,
		&p.Observacoes,
		&p.Area,
		&p.CriadaEm,
		&atualizadaEm,
	}
	if err := s.Scan(dst...); err != nil {
		return nil, err
	}

	if duracao.Valid {
		d := int(duracao.Int32)
		p.DuracaoMin = &d
	}
	if atualizadaEm.Valid {
		t := atualizadaEm.Time
		p.AtualizadaEm = &t
	}

	return &p, nil
}

func (r *Repository) GetProgramacaoPorID(id int64, planejadorID int64) (*domain.Programacao, error) {
	query := `
		SELECT ` + colunasProgramacao + `
		FROM programacoes
		WHERE id = $1 AND planejador_id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanProgramacao(r.dbpool.QueryRowContext(ctx, query, id, planejadorID))
}

// programacoesNaData lê, dentro da transação, as programações do planejador
// cuja data de início é exatamente a data dada. A checagem de conflito ancora
// só na data de início: a equipe de uma programação de vários dias fica
// protegida apenas no primeiro dia. Comportamento herdado do sistema original
// e mantido de propósito, já que consumidores podem depender dele.
func programacoesNaData(ctx context.Context, tx *sql.Tx, planejadorID int64, data domain.Data) ([]*domain.Programacao, error) {
	query := `
		SELECT ` + colunasProgramacao + `
		FROM programacoes
		WHERE planejador_id = $1 AND data = $2
	`

	rows, err := tx.QueryContext(ctx, query, planejadorID, data)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	programacoes := []*domain.Programacao{}
	for rows.Next() {
		p, err := scanProgramacao(rows)
		if err != nil {
			return nil, err
		}
		programacoes = append(programacoes, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return programacoes, nil
}

// CreateProgramacao insere uma programação dentro de uma única transação que
// também executa a leitura de validação. O bloqueio consultivo por planejador
// serializa as escritas concorrentes do mesmo planejador, fechando a corrida
// checar-depois-gravar; a constraint única (planejador_id, ordem_id) é a
// segunda linha de defesa contra a mesma corrida.
func (r *Repository) CreateProgramacao(p *domain.Programacao, verificar scheduling.VerificacaoConflitos) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, p.PlanejadorID); err != nil {
		return err
	}

	var jaProgramada bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM programacoes WHERE planejador_id = $1 AND ordem_id = $2
		)
	`
	if err := tx.QueryRowContext(ctx, query, p.PlanejadorID, p.OrdemID).Scan(&jaProgramada); err != nil {
		return err
	}
	if jaProgramada {
		return domain.ErrOrdemJaProgramada
	}

	mesmaData, err := programacoesNaData(ctx, tx, p.PlanejadorID, p.Data)
	if err != nil {
		return err
	}
	if err := verificar(mesmaData); err != nil {
		return err
	}

	query = `
		INSERT INTO programacoes (
			planejador_id, ordem_id, numero_os, descricao, setor, codigo_intervencao,
			categoria, data, data_conclusao, periodo, horario, duracao_min,
			executantes_texto, tipo_servico, status, observacoes, area
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, criada_em
	`
	params := []any{
		p.PlanejadorID,
		p.OrdemID,
		p.NumeroOS,
		p.Descricao,
		p.Setor,
		p.CodigoIntervencao,
		p.Categoria,
		p.Data,
		p.DataConclusao,
		p.Periodo,
		p.Horario,
		duracaoParam(p.DuracaoMin),
		p.ExecutantesTexto,
		p.TipoServico,
		p.Status,
		p.Observacoes,
		p.Area,
	}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&p.ID, &p.CriadaEm); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// UpdateProgramacao segue a mesma disciplina de CreateProgramacao, sem a
// checagem de ordem duplicada (a associação com a ordem é imutável).
func (r *Repository) UpdateProgramacao(p *domain.Programacao, verificar scheduling.VerificacaoConflitos) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, p.PlanejadorID); err != nil {
		return err
	}

	mesmaData, err := programacoesNaData(ctx, tx, p.PlanejadorID, p.Data)
	if err != nil {
		return err
	}
	if err := verificar(mesmaData); err != nil {
		return err
	}

	query := `
		UPDATE programacoes
		SET
			data = $1,
			data_conclusao = $2,
			periodo = $3,
			horario = $4,
			duracao_min = $5,
			executantes_texto = $6,
			tipo_servico = $7,
			status = $8,
			observacoes = $9,
			area = $10,
			atualizada_em = NOW()
		WHERE id = $11 AND planejador_id = $12
		RETURNING atualizada_em
	`
	params := []any{
		p.Data,
		p.DataConclusao,
		p.Periodo,
		p.Horario,
		duracaoParam(p.DuracaoMin),
		p.ExecutantesTexto,
		p.TipoServico,
		p.Status,
		p.Observacoes,
		p.Area,
		p.ID,
		p.PlanejadorID,
	}

	var atualizadaEm time.Time
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&atualizadaEm); err != nil {
		return err
	}
	p.AtualizadaEm = &atualizadaEm

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteProgramacao(id int64, planejadorID int64) error {
	query := `
		DELETE FROM programacoes WHERE id = $1 AND planejador_id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, id, planejadorID)
	if err != nil {
		return err
	}

	afetadas, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if afetadas == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// ListProgramacoes devolve as programações ordenadas por (data, horário). As
// pontas do filtro são opcionais; uma programação entra no resultado quando o
// seu período [data, data_conclusao] intersecta o intervalo pedido, inclusivo
// nas duas pontas.
func (r *Repository) ListProgramacoes(planejadorID int64, inicio, fim *domain.Data) ([]*domain.Programacao, error) {
	query := `
		SELECT ` + colunasProgramacao + `
		FROM programacoes
		WHERE planejador_id = $1
			AND ($2::date IS NULL OR data_conclusao >= $2)
			AND ($3::date IS NULL OR data <= $3)
		ORDER BY data, horario
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var inicioParam, fimParam any
	if inicio != nil {
		inicioParam = inicio.Time
	}
	if fim != nil {
		fimParam = fim.Time
	}

	rows, err := r.dbpool.QueryContext(ctx, query, planejadorID, inicioParam, fimParam)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	programacoes := []*domain.Programacao{}
	for rows.Next() {
		p, err := scanProgramacao(rows)
		if err != nil {
			return nil, err
		}
		programacoes = append(programacoes, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return programacoes, nil
}

func duracaoParam(duracaoMin *int) any {
	if duracaoMin == nil {
		return nil
	}
	return *duracaoMin
}
