package handler

import (
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/raimundomartins/rendimentos/internal/engine"
	"github.com/raimundomartins/rendimentos/internal/model"
)

type Handler struct {
	engine  *engine.Engine
	logger  *zap.Logger
	metrics fasthttp.RequestHandler
}

func New(e *engine.Engine, logger *zap.Logger, gatherer prometheus.Gatherer) *Handler {
	return &Handler{
		engine:  e,
		logger:  logger.Named("http"),
		metrics: fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})),
	}
}

// Route dispatches on path and method.
func (h *Handler) Route(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/calculation", "/calculation-requests":
		h.HandleCalculation(ctx)
	case "/health":
		if !ctx.IsGet() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"status":"ok"}`)
	case "/metrics":
		h.metrics(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) HandleCalculation(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusBadRequest, "Method not allowed")
		return
	}

	var req model.CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.CalculationInstructions.Mutations) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "At least one mutation is required")
		return
	}

	resp := h.engine.Process(ctx, &req)

	body, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error("encoding calculation response", zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
