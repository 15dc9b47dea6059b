package http

import (
	"bytes"
	_ "embed"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/natthakit111/qr-demo/internal/domain/amount"
	"github.com/natthakit111/qr-demo/internal/domain/payload"
	"github.com/natthakit111/qr-demo/internal/usecase/generatepayload"
	"github.com/natthakit111/qr-demo/internal/usecase/renderqr"
)

const (
	msgInvalidAmount = "Invalid amount"
	msgInternalError = "Internal Server Error"

	maxBodyBytes = 1 << 20
)

//go:embed web/index.html
var indexHTML []byte

type Handler struct {
	generatePayloadUC *generatepayload.UseCase
	renderQRUC        *renderqr.UseCase
	logger            *slog.Logger
}

func NewHandler(generatePayloadUC *generatepayload.UseCase, renderQRUC *renderqr.UseCase, logger *slog.Logger) *Handler {
	return &Handler{
		generatePayloadUC: generatePayloadUC,
		renderQRUC:        renderQRUC,
		logger:            logger,
	}
}

type GenerateRequest struct {
	Amount amountField `json:"amount"`
}

type GenerateResponse struct {
	Payload string `json:"payload"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// amountField keeps the raw amount so that numbers and numeric strings go through the
// same parser. Numbers are kept as their literal text to avoid float rounding.
type amountField struct {
	raw any
}

func (f *amountField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		f.raw = nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f.raw = s
	default:
		f.raw = string(data)
	}
	return nil
}

func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidAmount)
		return
	}

	amt, err := amount.Parse(req.Amount.raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidAmount)
		return
	}

	resp, err := h.generatePayloadUC.Execute(r.Context(), generatepayload.Request{Amount: amt})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{Payload: resp.Payload.String()})
}

func (h *Handler) HandleQR(w http.ResponseWriter, r *http.Request) {
	amt, err := amount.ParseString(r.URL.Query().Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidAmount)
		return
	}

	resp, err := h.generatePayloadUC.Execute(r.Context(), generatepayload.Request{Amount: amt})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	png, err := h.renderQRUC.Execute(renderqr.Request{Payload: resp.Payload})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(png)
}

func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) HandleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

// fail maps use case errors to responses. Only validation errors carry a specific
// message; everything else is logged and reported generically.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, amount.ErrInvalid) {
		writeError(w, http.StatusBadRequest, msgInvalidAmount)
		return
	}
	level := slog.LevelError
	if errors.Is(err, payload.ErrUnencodableAmount) {
		level = slog.LevelWarn
	}
	h.logger.Log(r.Context(), level, "request failed",
		"error", err,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
	)
	writeError(w, http.StatusInternalServerError, msgInternalError)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
