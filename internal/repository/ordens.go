package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/pcm-dev/programador-os/backend/internal/domain"
)

// CreateOrdens grava um lote importado de ordens em uma única transação.
// Ordens cujo numero_os já existe são ignoradas, para que reimportar a mesma
// planilha não duplique o catálogo. Devolve quantas foram gravadas e quantas
// foram ignoradas.
func (r *Repository) CreateOrdens(ordens []*domain.OrdemServico) (int, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO ordens (numero_os, descricao, tipo_servico, setor, codigo_intervencao)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (numero_os) DO NOTHING
		RETURNING id, criada_em
	`

	importadas, ignoradas := 0, 0
	for _, o := range ordens {
		params := []any{o.NumeroOS, o.Descricao, o.TipoServico, o.Setor, o.CodigoIntervencao}
		err := tx.QueryRowContext(ctx, query, params...).Scan(&o.ID, &o.CriadaEm)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// numero_os já existia
			ignoradas++
		case err != nil:
			return 0, 0, err
		default:
			o.Categoria = domain.CategoriaDaIntervencao(o.CodigoIntervencao)
			importadas++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}

	return importadas, ignoradas, nil
}

func (r *Repository) GetOrdemPorID(id int64) (*domain.OrdemServico, error) {
	query := `
		SELECT numero_os, descricao, tipo_servico, setor, codigo_intervencao, criada_em
		FROM ordens
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	o := &domain.OrdemServico{
		ID: id,
	}

	dst := []any{&o.NumeroOS, &o.Descricao, &o.TipoServico, &o.Setor, &o.CodigoIntervencao, &o.CriadaEm}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	o.Categoria = domain.CategoriaDaIntervencao(o.CodigoIntervencao)
	return o, nil
}

// ListOrdens lista o catálogo inteiro. Com excluirPlanejadorID, omite as
// ordens que já possuem programação naquele planejador.
func (r *Repository) ListOrdens(excluirPlanejadorID *int64) ([]*domain.OrdemServico, error) {
	query := `
		SELECT o.id, o.numero_os, o.descricao, o.tipo_servico, o.setor, o.codigo_intervencao, o.criada_em
		FROM ordens o
		WHERE $1::bigint IS NULL OR NOT EXISTS (
			SELECT 1 FROM programacoes p
			WHERE p.ordem_id = o.id AND p.planejador_id = $1
		)
		ORDER BY o.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var param any
	if excluirPlanejadorID != nil {
		param = *excluirPlanejadorID
	}

	rows, err := r.dbpool.QueryContext(ctx, query, param)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ordens := []*domain.OrdemServico{}
	for rows.Next() {
		var o domain.OrdemServico
		dst := []any{&o.ID, &o.NumeroOS, &o.Descricao, &o.TipoServico, &o.Setor, &o.CodigoIntervencao, &o.CriadaEm}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		o.Categoria = domain.CategoriaDaIntervencao(o.CodigoIntervencao)
		ordens = append(ordens, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ordens, nil
}
