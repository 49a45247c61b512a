package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/agendap83/rosterboard/internal/config"
	"github.com/agendap83/rosterboard/internal/repository"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	translator    ut.Translator
	eventsChannel *amqp.Channel
	redisClient   *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, eventsCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		translator:    trans,
		eventsChannel: eventsCh,
		redisClient:   rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.metrics)
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/health", h.Health)
	h.Mux.Handle("/metrics", promhttp.Handler())

	h.Mux.Get("/persons", h.GetPersons)
	h.Mux.Get("/persons/{personKey}", h.GetPerson)
	h.Mux.Get("/calendar", h.GetCalendarDays)
	h.Mux.Get("/legend", h.GetLegendCodes)

	h.Mux.Route("/schedule/cells", func(r chi.Router) {
		r.Get("/", h.GetScheduleCells)
		r.Post("/", h.SaveScheduleCells)
		r.Delete("/{personKey}/{date}", h.DeleteScheduleCell)
	})
}
