package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pcm-dev/programador-os/backend/internal/domain"
	"github.com/pcm-dev/programador-os/backend/internal/scheduling"
)

func (h *Handler) CreateProgramacao(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlannerID        int64   `json:"planner_id" validate:"required"`
		OrdemID          int64   `json:"ordem_id" validate:"required"`
		Data             string  `json:"data" validate:"required"`
		DataConclusao    *string `json:"data_conclusao"`
		Periodo          string  `json:"periodo" validate:"required"`
		Horario          string  `json:"horario" validate:"required"`
		DuracaoMin       *int    `json:"duracao_min"`
		ExecutantesTexto string  `json:"executantes_texto"`
		TipoServico      string  `json:"tipo_servico"`
		Status           string  `json:"status"`
		Observacoes      string  `json:"observacoes"`
		Area             string  `json:"area"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	data, err := domain.ParseData(req.Data)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	var conclusao *domain.Data
	if req.DataConclusao != nil {
		d, err := domain.ParseData(*req.DataConclusao)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		conclusao = &d
	}

	p, err := h.service.Criar(&scheduling.NovaProgramacao{
		PlanejadorID:     req.PlannerID,
		OrdemID:          req.OrdemID,
		Data:             data,
		DataConclusao:    conclusao,
		Periodo:          domain.Periodo(req.Periodo),
		Horario:          req.Horario,
		DuracaoMin:       req.DuracaoMin,
		ExecutantesTexto: req.ExecutantesTexto,
		TipoServico:      req.TipoServico,
		Status:           domain.StatusProgramacao(req.Status),
		Observacoes:      req.Observacoes,
		Area:             req.Area,
	})
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}

	h.publicarEvento(&domain.EventoProgramacao{
		Tipo:        domain.EventoProgramacaoCriada,
		Planejador:  h.nomePlanejador(p.PlanejadorID),
		Programacao: p,
	})
	h.successResponse(w, r, "programação criada", p)
}

func (h *Handler) UpdateProgramacao(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "id de programação inválido")
		return
	}

	var req struct {
		PlannerID        int64   `json:"planner_id" validate:"required"`
		Data             string  `json:"data" validate:"required"`
		DataConclusao    *string `json:"data_conclusao"`
		Periodo          string  `json:"periodo" validate:"required"`
		Horario          string  `json:"horario" validate:"required"`
		DuracaoMin       *int    `json:"duracao_min"`
		ExecutantesTexto string  `json:"executantes_texto"`
		TipoServico      string  `json:"tipo_servico"`
		Status           string  `json:"status"`
		Observacoes      string  `json:"observacoes"`
		Area             string  `json:"area"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	data, err := domain.ParseData(req.Data)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	var conclusao *domain.Data
	if req.DataConclusao != nil {
		d, err := domain.ParseData(*req.DataConclusao)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		conclusao = &d
	}

	p, err := h.service.Atualizar(id, &scheduling.AlteracaoProgramacao{
		PlanejadorID:     req.PlannerID,
		Data:             data,
		DataConclusao:    conclusao,
		Periodo:          domain.Periodo(req.Periodo),
		Horario:          req.Horario,
		DuracaoMin:       req.DuracaoMin,
		ExecutantesTexto: req.ExecutantesTexto,
		TipoServico:      req.TipoServico,
		Status:           domain.StatusProgramacao(req.Status),
		Observacoes:      req.Observacoes,
		Area:             req.Area,
	})
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}

	h.publicarEvento(&domain.EventoProgramacao{
		Tipo:        domain.EventoProgramacaoAtualizada,
		Planejador:  h.nomePlanejador(p.PlanejadorID),
		Programacao: p,
	})
	h.successResponse(w, r, "programação atualizada", p)
}

func (h *Handler) DeleteProgramacao(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "id de programação inválido")
		return
	}

	planejadorID, err := strconv.ParseInt(r.URL.Query().Get("planner_id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "planner_id inválido")
		return
	}

	if err := h.service.Remover(id, planejadorID); err != nil {
		h.schedulingError(w, r, err)
		return
	}

	h.publicarEvento(&domain.EventoProgramacao{
		Tipo:       domain.EventoProgramacaoRemovida,
		Planejador: h.nomePlanejador(planejadorID),
		RemovidaID: id,
	})
	h.successResponse(w, r, "programação removida", map[string]int64{"removed_id": id})
}

func (h *Handler) ListProgramacoes(w http.ResponseWriter, r *http.Request) {
	planejadorID, err := strconv.ParseInt(r.URL.Query().Get("planner_id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "planner_id inválido")
		return
	}

	var inicio, fim *domain.Data
	if param := r.URL.Query().Get("data_ini"); param != "" {
		d, err := domain.ParseData(param)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		inicio = &d
	}
	if param := r.URL.Query().Get("data_fim"); param != "" {
		d, err := domain.ParseData(param)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		fim = &d
	}

	programacoes, err := h.service.Listar(planejadorID, inicio, fim)
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}

	h.successResponse(w, r, "programações listadas", programacoes)
}

func (h *Handler) nomePlanejador(id int64) string {
	p, err := h.repository.GetPlanejadorPorID(id)
	if err != nil {
		return ""
	}
	return p.Nome
}
