package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pcm-dev/programador-os/backend/internal/domain"
	"github.com/pcm-dev/programador-os/backend/internal/scheduling"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("erro interno do servidor", "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
		http.Error(w, "erro interno do servidor", http.StatusInternalServerError)
	}
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, Response{
		Success: false,
		Message: msg,
		Data:    nil,
	})
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.errorResponse(w, r, http.StatusBadRequest, validationErrors[0].Translate(h.translator))
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, msg string) {
	h.errorResponse(w, r, http.StatusNotFound, msg)
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Success: false,
		Message: "erro interno do servidor",
		Data:    nil,
	})
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// schedulingError traduz a taxonomia do serviço de programação para os
// códigos HTTP do contrato: validação 400, não encontrado 404, conflito 409
// (com a lista completa de colisões no corpo), o resto 500.
func (h *Handler) schedulingError(w http.ResponseWriter, r *http.Request, err error) {
	var errValidacao *scheduling.ErroValidacao
	var errNaoEncontrado *scheduling.ErroNaoEncontrado
	var errConflito *scheduling.ErroConflito
	var pgErr *pgconn.PgError

	switch {
	case errors.As(err, &errValidacao):
		h.errorResponse(w, r, http.StatusBadRequest, errValidacao.Error())
	case errors.As(err, &errNaoEncontrado):
		h.notFound(w, r, errNaoEncontrado.Error())
	case errors.As(err, &errConflito):
		var data any
		if len(errConflito.Conflitos) > 0 {
			data = map[string]any{"conflitos": errConflito.Conflitos}
		}
		h.writeJSON(w, r, http.StatusConflict, Response{
			Success: false,
			Message: errConflito.Motivo,
			Data:    data,
		})
	case errors.As(err, &pgErr) && pgErr.ConstraintName == "programacoes_planejador_id_ordem_id_key":
		// a corrida passou pela pré-checagem e morreu na constraint
		h.errorResponse(w, r, http.StatusConflict, domain.ErrOrdemJaProgramada.Error())
	default:
		h.internalServerError(w, r, err)
	}
}
