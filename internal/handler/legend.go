package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/agendap83/rosterboard/internal/domain"
)

const legendCacheKey = "rosterboard:legend"

// GetLegendCodes serves the day-code catalog through a redis read-through
// cache. The catalog changes rarely but is read on every grid session.
func (h *Handler) GetLegendCodes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	cached, err := h.redisClient.Get(ctx, legendCacheKey).Result()
	if err == nil {
		codes := []*domain.LegendCode{}
		if err := json.Unmarshal([]byte(cached), &codes); err == nil {
			h.successResponse(w, r, "legend loaded", codes)
			return
		}
		// fall through to the database on a corrupt cache entry
	} else if !errors.Is(err, redis.Nil) {
		h.internalServerError(w, r, err)
		return
	}

	codes, err := h.repository.GetAllLegendCodes()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if payload, err := json.Marshal(codes); err == nil {
		ttl := time.Duration(h.config.Redis.LegendTTL) * time.Second
		_ = h.redisClient.Set(ctx, legendCacheKey, payload, ttl).Err()
	}

	h.successResponse(w, r, "legend loaded", codes)
}

func (h *Handler) GetCalendarDays(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	if !domain.IsISODate(from) || !domain.IsISODate(to) {
		h.errorResponse(w, r, "from and to must be ISO dates (yyyy-mm-dd)")
		return
	}

	days, err := h.repository.GetCalendarDays(from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "calendar loaded", days)
}
