package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Response is the envelope every route answers with. Business rejections set
// success=false with HTTP 200; only infrastructure failures change the status.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// maxBodyBytes bounds request bodies. A full-size schedule batch is a few
// hundred kilobytes, so this leaves ample headroom.
const maxBodyBytes = 4 << 20

func (h *Handler) readJSON(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logInternalServerError(r, err)
	}
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{Success: true, Message: msg, Data: data})
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, msg string) {
	h.writeJSON(w, r, http.StatusOK, Response{Success: false, Message: msg})
}

// badRequest renders the first validation failure in translated form, or the
// raw error for anything that is not a validator error.
func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		h.errorResponse(w, r, verrs[0].Translate(h.translator))
		return
	}
	h.errorResponse(w, r, err.Error())
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{Success: false, Message: "internal server error"})
}

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)
}
