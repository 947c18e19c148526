package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	models "CropAdvisor/internal/domain/models"
	"CropAdvisor/internal/usecase"
	xhttp "CropAdvisor/pkg/http"
	xlogger "CropAdvisor/pkg/logger"
)

// PricesEchoHandler exposes the mandi price views over HTTP.
type PricesEchoHandler struct {
	logger *xlogger.Logger
	agg    *usecase.PriceAggregator
}

func NewPricesEchoHandler(logger *xlogger.Logger, agg *usecase.PriceAggregator) *PricesEchoHandler {
	return &PricesEchoHandler{logger: logger.Component("http_prices"), agg: agg}
}

func (h *PricesEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/prices", h.Prices)
	g.GET("/prices/crop", h.CropPrices)
	g.GET("/prices/state", h.StatePrices)
	g.GET("/prices/trending", h.Trending)
	g.GET("/prices/search", h.SearchTable)
	g.GET("/states", h.States)
	g.GET("/states/search", h.SearchState)
	g.GET("/crops", h.Crops)
	g.GET("/trends", h.Trends)
	g.GET("/insights", h.Insights)
	g.GET("/mandi-prices", h.Legacy)
}

// Prices returns the full snapshot. Upstream failures are reported in the
// payload (success=false), not as an HTTP error.
func (h *PricesEchoHandler) Prices(c echo.Context) error {
	res := h.agg.FetchAll(c.Request().Context())
	if res.Success {
		c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=60")
	} else {
		h.logger.Debug("serving failed snapshot", xlogger.String("source", res.Source))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PricesEchoHandler) CropPrices(c echo.Context) error {
	req := &models.CropRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	rows := h.agg.CropPrices(c.Request().Context(), req.Name)
	return xhttp.ListResponse(c, rows, len(rows))
}

func (h *PricesEchoHandler) StatePrices(c echo.Context) error {
	req := &models.StateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	rows := h.agg.StatePrices(c.Request().Context(), req.Name)
	return xhttp.ListResponse(c, rows, len(rows))
}

func (h *PricesEchoHandler) Trending(c echo.Context) error {
	rows := h.agg.TrendingPrices(c.Request().Context())
	return xhttp.ListResponse(c, rows, len(rows))
}

func (h *PricesEchoHandler) SearchTable(c echo.Context) error {
	req := &models.TableSearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	rows := h.agg.SearchTable(c.Request().Context(), usecase.TableQuery{
		Q:     req.Q,
		State: req.State,
		Crop:  req.Crop,
	})
	return xhttp.ListResponse(c, rows, len(rows))
}

func (h *PricesEchoHandler) States(c echo.Context) error {
	states := h.agg.AvailableStates(c.Request().Context())
	return xhttp.ListResponse(c, states, len(states))
}

func (h *PricesEchoHandler) SearchState(c echo.Context) error {
	req := &models.StateSearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	rows := h.agg.SearchState(c.Request().Context(), req.State)
	return xhttp.ListResponse(c, rows, len(rows))
}

func (h *PricesEchoHandler) Crops(c echo.Context) error {
	crops := h.agg.AvailableCrops(c.Request().Context())
	return xhttp.ListResponse(c, crops, len(crops))
}

// Trends returns a synthetic daily series; it is illustrative, not history.
func (h *PricesEchoHandler) Trends(c echo.Context) error {
	req := &models.TrendRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	points := h.agg.CropTrends(c.Request().Context(), req.Crop, req.Days)
	return xhttp.ListResponse(c, points, len(points))
}

func (h *PricesEchoHandler) Insights(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.agg.MarketInsights(c.Request().Context()))
}

// legacyResponse is the bare (unenveloped) body of /api/mandi-prices.
type legacyResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	State   string      `json:"state,omitempty"`
}

// Legacy dispatches /api/mandi-prices on its query flags, first match wins:
// states, search+state, crop, state, trending, otherwise the full snapshot.
func (h *PricesEchoHandler) Legacy(c echo.Context) error {
	req := &models.LegacyPricesRequest{}
	if err := c.Bind(req); err != nil {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{Code: "ERR_UNKNOWN", Message: err.Error()}})
	}
	ctx := c.Request().Context()

	switch {
	case req.States != "":
		return c.JSON(http.StatusOK, legacyResponse{Success: true, Data: h.agg.AvailableStates(ctx)})
	case req.Search != "" && req.State != "":
		return c.JSON(http.StatusOK, legacyResponse{Success: true, Data: h.agg.SearchState(ctx, req.State), State: req.State})
	case req.Crop != "":
		return c.JSON(http.StatusOK, legacyResponse{Success: true, Data: h.agg.CropPrices(ctx, req.Crop)})
	case req.State != "":
		return c.JSON(http.StatusOK, legacyResponse{Success: true, Data: h.agg.StatePrices(ctx, req.State)})
	case req.Trending != "":
		return c.JSON(http.StatusOK, legacyResponse{Success: true, Data: h.agg.TrendingPrices(ctx)})
	default:
		return c.JSON(http.StatusOK, h.agg.FetchAll(ctx))
	}
}
