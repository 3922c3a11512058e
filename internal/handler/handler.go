package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	pt_br_translations "github.com/go-playground/validator/v10/translations/pt_BR"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/pcm-dev/programador-os/backend/internal/config"
	"github.com/pcm-dev/programador-os/backend/internal/repository"
	"github.com/pcm-dev/programador-os/backend/internal/scheduling"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	service       *scheduling.Service
	translator    ut.Translator
	eventsChannel *amqp.Channel
	redisClient   *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, svc *scheduling.Service, eventsCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	ptBR := pt_BR.New()
	uni := ut.New(ptBR, ptBR)
	trans, _ := uni.GetTranslator("pt_BR")
	if err := pt_br_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		service:       svc,
		translator:    trans,
		eventsChannel: eventsCh,
		redisClient:   rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	// o frontend roda em outra origem; o sistema original liberava tudo
	h.Mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// planejadores
	h.Mux.Post("/planners", h.CreatePlanejador)
	h.Mux.Get("/planners", h.GetAllPlanejadores)

	// catálogo de ordens de serviço
	h.Mux.Get("/ordens", h.ListOrdens)
	h.Mux.Post("/importar-excel", h.ImportarExcel)
	h.Mux.Get("/importacoes/ultima", h.GetUltimaImportacao)

	// programações
	h.Mux.Post("/programar", h.CreateProgramacao)
	h.Mux.Route("/programacoes", func(r chi.Router) {
		r.Get("/", h.ListProgramacoes)
		r.Put("/{id}", h.UpdateProgramacao)
		r.Delete("/{id}", h.DeleteProgramacao)
	})
}
