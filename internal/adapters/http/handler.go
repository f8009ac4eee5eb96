package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nathankoerschner/threecoins/internal/app"
	"github.com/nathankoerschner/threecoins/internal/domain"
)

const maxQuestionLen = 500

type Handler struct {
	divination *app.DivinationService
	sessions   *app.SessionService
}

func NewHandler(divination *app.DivinationService, sessions *app.SessionService) *Handler {
	return &Handler{divination: divination, sessions: sessions}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/v1/iching", h.Cast)

	e.POST("/v1/readings", h.ReadFromValues)
	e.GET("/v1/readings", h.History)
	e.GET("/v1/readings/:id", h.GetReading)
	e.POST("/v1/readings/:id/interpretation", h.InterpretReading)

	e.GET("/v1/hexagrams/:key", h.LookupHexagram)

	e.POST("/v1/sessions", h.StartSession)
	e.GET("/v1/sessions/resume", h.ResumeSession)
	e.GET("/v1/sessions/:id", h.GetSession)
	e.POST("/v1/sessions/:id/lines", h.AddLine)
	e.DELETE("/v1/sessions/:id", h.DiscardSession)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Cast(c echo.Context) error {
	q := c.QueryParam("q")
	if len(q) > maxQuestionLen {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "q must be at most 500 characters"})
	}

	interpret := true
	if raw := c.QueryParam("interpret"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "interpret must be a boolean"})
		}
		interpret = parsed
	}

	resp, err := h.divination.Cast(c.Request().Context(), app.CastRequest{
		Question:  q,
		Lang:      c.QueryParam("lang"),
		Interpret: interpret,
	})
	if err != nil {
		return mapReadingError(c, err, resp.Record.ID)
	}
	return c.JSON(http.StatusOK, toCastResponse(resp, requestID(c)))
}

func (h *Handler) ReadFromValues(c echo.Context) error {
	var req ValuesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if len(req.Question) > maxQuestionLen {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "question must be at most 500 characters"})
	}

	resp, err := h.divination.ReadFromValues(c.Request().Context(), app.ValuesRequest{
		Question:  req.Question,
		Lang:      req.Lang,
		Values:    req.Values,
		Interpret: req.Interpret,
	})
	if err != nil {
		return mapReadingError(c, err, resp.Record.ID)
	}
	return c.JSON(http.StatusCreated, toCastResponse(resp, requestID(c)))
}

func (h *Handler) History(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be an integer between 1 and 100"})
		}
		limit = parsed
	}

	recs, err := h.divination.History(c.Request().Context(), limit)
	if err != nil {
		return mapError(c, err)
	}
	out := HistoryResponse{Readings: make([]ReadingResponse, len(recs))}
	for i, rec := range recs {
		out.Readings[i] = toReadingResponse(rec)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetReading(c echo.Context) error {
	rec, err := h.divination.GetReading(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toReadingResponse(rec))
}

func (h *Handler) InterpretReading(c echo.Context) error {
	resp, err := h.divination.InterpretReading(c.Request().Context(), c.Param("id"), c.QueryParam("lang"))
	if err != nil {
		return mapReadingError(c, err, resp.Record.ID)
	}
	return c.JSON(http.StatusOK, toCastResponse(resp, requestID(c)))
}

func (h *Handler) LookupHexagram(c echo.Context) error {
	view, err := h.divination.LookupHexagram(c.Request().Context(), c.Param("key"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, HexagramDetailResponse{
		HexagramResp: toHexagramResp(view.Hexagram),
		Upper:        view.Upper,
		Lower:        view.Lower,
		Details:      view.Details,
		Sequence:     view.Hexagram.Sequence,
	})
}

func (h *Handler) StartSession(c echo.Context) error {
	var req StartSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if len(req.Question) > maxQuestionLen {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "question must be at most 500 characters"})
	}

	sess, err := h.sessions.Start(c.Request().Context(), req.Question)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusCreated, toSessionResponse(sess, nil))
}

func (h *Handler) GetSession(c echo.Context) error {
	sess, err := h.sessions.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess, nil))
}

func (h *Handler) ResumeSession(c echo.Context) error {
	sess, err := h.sessions.Resume(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess, nil))
}

// AddLine tosses coins for the next line, or records a line value cast with
// physical coins when the body carries one.
func (h *Handler) AddLine(c echo.Context) error {
	var req AddLineRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		}
	}

	ctx := c.Request().Context()
	id := c.Param("id")

	var (
		resp app.CastLineResponse
		err  error
	)
	if req.Value == nil {
		resp, err = h.sessions.CastLine(ctx, id)
	} else {
		var line domain.Line
		line, err = domain.LineFromValue(*req.Value)
		if err == nil {
			resp, err = h.sessions.AddLine(ctx, id, line)
		}
	}
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(resp.Session, resp.Record))
}

func (h *Handler) DiscardSession(c echo.Context) error {
	if err := h.sessions.Discard(c.Request().Context(), c.Param("id")); err != nil {
		return mapError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toCastResponse(r app.CastResponse, requestID string) ReadingResponse {
	resp := toReadingResponse(r.Record)
	if r.Interpretation != nil {
		resp.Interpretation = &InterpretationResp{
			Style:      r.Interpretation.Style,
			Text:       r.Interpretation.Text,
			Disclaimer: r.Interpretation.Disclaimer,
		}
		resp.Meta = &MetaResp{
			Model:     r.Model,
			RequestID: requestID,
			LatencyMS: r.LatencyMS,
		}
	}
	return resp
}

func requestID(c echo.Context) string {
	id, _ := c.Get("request_id").(string)
	return id
}

// mapReadingError is mapError for failures that may follow a stored reading.
func mapReadingError(c echo.Context, err error, readingID string) error {
	if readingID != "" {
		c.Set("reading_id", readingID)
	}
	return mapError(c, err)
}

func errorBody(c echo.Context, msg string) ErrorResponse {
	id, _ := c.Get("reading_id").(string)
	return ErrorResponse{Error: msg, ReadingID: id}
}

func mapError(c echo.Context, err error) error {
	rid := requestID(c)

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, errorBody(c, err.Error()))
	case errors.Is(err, domain.ErrHexagramNotFound),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrReadingNotFound):
		return c.JSON(http.StatusNotFound, errorBody(c, err.Error()))
	case errors.Is(err, domain.ErrSessionComplete):
		return c.JSON(http.StatusConflict, errorBody(c, err.Error()))
	case errors.Is(err, domain.ErrNoInterpreter):
		return c.JSON(http.StatusServiceUnavailable, errorBody(c, err.Error()))
	case errors.Is(err, domain.ErrUpstreamLLM), errors.Is(err, domain.ErrInvalidLLMJSON):
		slog.Error("upstream LLM failure", "request_id", rid, "error", err)
		return c.JSON(http.StatusBadGateway, errorBody(c, "upstream LLM failure"))
	case errors.Is(err, domain.ErrDataIntegrity):
		slog.Error("data integrity failure", "request_id", rid, "error", err)
		return c.JSON(http.StatusInternalServerError, errorBody(c, "internal error"))
	default:
		slog.Error("internal error", "request_id", rid, "error", err)
		return c.JSON(http.StatusInternalServerError, errorBody(c, "internal error"))
	}
}
