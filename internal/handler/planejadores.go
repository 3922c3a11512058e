package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pcm-dev/programador-os/backend/internal/domain"
)

func (h *Handler) CreatePlanejador(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// pré-checagem para uma mensagem limpa; a constraint cobre a corrida
	if _, err := h.repository.GetPlanejadorPorNome(req.Name); err == nil {
		h.errorResponse(w, r, http.StatusConflict, "já existe um planejador com esse nome")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		h.internalServerError(w, r, err)
		return
	}

	p := &domain.Planejador{
		Nome: req.Name,
	}

	if err := h.repository.CreatePlanejador(p); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "planejadores_nome_lower_key":
			h.errorResponse(w, r, http.StatusConflict, "já existe um planejador com esse nome")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "planejador criado", p)
}

func (h *Handler) GetAllPlanejadores(w http.ResponseWriter, r *http.Request) {
	planejadores, err := h.repository.GetAllPlanejadores()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "planejadores listados", planejadores)
}
