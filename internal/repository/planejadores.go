package repository

import (
	"context"
	"time"

	"github.com/pcm-dev/programador-os/backend/internal/domain"
)

func (r *Repository) CreatePlanejador(p *domain.Planejador) error {
	query := `
		INSERT INTO planejadores (nome)
		VALUES ($1)
		RETURNING id, criado_em
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, p.Nome).Scan(&p.ID, &p.CriadoEm); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllPlanejadores() ([]*domain.Planejador, error) {
	query := `
		SELECT id, nome, criado_em
		FROM planejadores
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	planejadores := []*domain.Planejador{}
	for rows.Next() {
		var p domain.Planejador
		if err := rows.Scan(&p.ID, &p.Nome, &p.CriadoEm); err != nil {
			return nil, err
		}
		planejadores = append(planejadores, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return planejadores, nil
}

func (r *Repository) GetPlanejadorPorID(id int64) (*domain.Planejador, error) {
	query := `
		SELECT nome, criado_em
		FROM planejadores
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	p := &domain.Planejador{
		ID: id,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&p.Nome, &p.CriadoEm); err != nil {
		return nil, err
	}

	return p, nil
}

// GetPlanejadorPorNome busca sem diferenciar maiúsculas de minúsculas. Serve
// de pré-checagem para uma mensagem limpa; a garantia real contra corrida é a
// constraint única sobre lower(nome).
func (r *Repository) GetPlanejadorPorNome(nome string) (*domain.Planejador, error) {
	query := `
		SELECT id, nome, criado_em
		FROM planejadores
		WHERE lower(nome) = lower($1)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var p domain.Planejador
	if err := r.dbpool.QueryRowContext(ctx, query, nome).Scan(&p.ID, &p.Nome, &p.CriadoEm); err != nil {
		return nil, err
	}

	return &p, nil
}
