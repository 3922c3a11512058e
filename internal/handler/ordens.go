package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pcm-dev/programador-os/backend/internal/ingest"
)

const chaveUltimaImportacao = "importacoes:ultima"

func (h *Handler) ListOrdens(w http.ResponseWriter, r *http.Request) {
	var excluirPlanejadorID *int64

	if param := r.URL.Query().Get("planner_id"); param != "" {
		id, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, "planner_id inválido")
			return
		}

		if _, err := h.repository.GetPlanejadorPorID(id); err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.notFound(w, r, "planejador não encontrado")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		excluirPlanejadorID = &id
	}

	ordens, err := h.repository.ListOrdens(excluirPlanejadorID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "ordens listadas", ordens)
}

func (h *Handler) ImportarExcel(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "envio multipart inválido")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "o campo \"file\" é obrigatório")
		return
	}
	defer file.Close()

	ordens, err := ingest.LerPlanilha(file)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	importadas, ignoradas, err := h.repository.CreateOrdens(ordens)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	resumo := &ingest.Resumo{
		Arquivo:     header.Filename,
		Total:       len(ordens),
		Importadas:  importadas,
		Ignoradas:   ignoradas,
		RealizadaEm: time.Now(),
	}

	h.guardarResumo(resumo)
	h.successResponse(w, r, "importação concluída", resumo)
}

func (h *Handler) GetUltimaImportacao(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	raw, err := h.redisClient.Get(ctx, chaveUltimaImportacao).Result()
	if err != nil {
		switch {
		case errors.Is(err, redis.Nil):
			h.notFound(w, r, "nenhuma importação registrada")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	var resumo ingest.Resumo
	if err := json.Unmarshal([]byte(raw), &resumo); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "última importação", &resumo)
}

// guardarResumo registra o resumo no redis com validade. As ordens já foram
// gravadas; falhar aqui só custa a consulta do resumo, então apenas loga.
func (h *Handler) guardarResumo(resumo *ingest.Resumo) {
	body, err := json.Marshal(resumo)
	if err != nil {
		slog.Warn("não foi possível serializar o resumo da importação", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	expiration := time.Duration(h.config.Import.SummaryExpiration) * time.Second
	if err := h.redisClient.Set(ctx, chaveUltimaImportacao, body, expiration).Err(); err != nil {
		slog.Warn("não foi possível guardar o resumo da importação no redis", "error", err)
	}
}
