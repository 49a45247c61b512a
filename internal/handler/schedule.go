package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/agendap83/rosterboard/internal/domain"
)

func (h *Handler) GetScheduleCells(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	if !domain.IsISODate(from) || !domain.IsISODate(to) {
		h.errorResponse(w, r, "from and to must be ISO dates (yyyy-mm-dd)")
		return
	}

	keys := make([]string, 0)
	for _, k := range strings.Split(r.URL.Query().Get("keys"), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}

	cells, err := h.repository.GetScheduleCells(keys, from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "schedule loaded", cells)
}

// SaveScheduleCells is the transactional batch route: every item upserts by
// (personKey, date), items with a blank code delete instead. The batch is
// validated in full, including the size cap, before the transaction opens.
func (h *Handler) SaveScheduleCells(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []struct {
			PersonKey string `json:"personKey" validate:"required"`
			Date      string `json:"date" validate:"required,datetime=2006-01-02"`
			Code      string `json:"code"`
			Source    string `json:"source"`
			Note      string `json:"note"`
		} `json:"items" validate:"required,min=1,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if len(req.Items) > h.config.Grid.MaxBatchItems {
		h.badRequest(w, r, fmt.Errorf("batch exceeds the %d item limit", h.config.Grid.MaxBatchItems))
		return
	}

	items := make([]domain.ScheduleCell, 0, len(req.Items))
	for _, item := range req.Items {
		source := item.Source
		if source == "" {
			source = h.config.Grid.SourceTag
		}
		items = append(items, domain.ScheduleCell{
			PersonKey: item.PersonKey,
			Date:      item.Date,
			Code:      domain.NormalizeCode(item.Code),
			Source:    source,
			Note:      item.Note,
		})
	}

	result, err := h.repository.SaveScheduleCells(items)
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "schedule_cells_person_key_fkey":
				h.badRequest(w, r, errors.New("batch references an unknown person key"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	batchItems.Observe(float64(len(items)))
	h.publishScheduleChanged(w, r, items, result)
}

func (h *Handler) publishScheduleChanged(w http.ResponseWriter, r *http.Request, items []domain.ScheduleCell, result domain.SaveResult) {
	event := domain.ScheduleChangedEvent{
		ID:         uuid.NewString(),
		Source:     items[0].Source,
		OccurredAt: time.Now().UTC(),
		Upserted:   result.Upserted,
		Deleted:    result.Deleted,
		Items:      items,
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.eventsChannel.PublishWithContext(
		ctx,
		"",
		domain.ScheduleEventsQueue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        eventData,
		},
	); err != nil {
		// the batch is committed; a lost audit event must not fail the save
		h.logInternalServerError(r, err)
	}

	h.successResponse(w, r, "batch saved", result)
}

func (h *Handler) DeleteScheduleCell(w http.ResponseWriter, r *http.Request) {
	personKey := chi.URLParam(r, "personKey")
	date := chi.URLParam(r, "date")

	if personKey == "" || !domain.IsISODate(date) {
		h.errorResponse(w, r, "invalid person key or date")
		return
	}

	deleted, err := h.repository.DeleteScheduleCell(personKey, date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "cell deleted", map[string]int{"deleted": deleted})
}
