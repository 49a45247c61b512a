package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "ok", nil)
}

func (h *Handler) GetPersons(w http.ResponseWriter, r *http.Request) {
	filter := strings.TrimSpace(r.URL.Query().Get("q"))

	persons, err := h.repository.GetAllPersons(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "roster loaded", persons)
}

func (h *Handler) GetPerson(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "personKey")

	person, err := h.repository.GetPersonByKey(key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.errorResponse(w, r, "unknown person key")
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "person loaded", person)
}
