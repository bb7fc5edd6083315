package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"crickpulse/internal/dataset"
	apierrors "crickpulse/internal/errors"
	"crickpulse/internal/exporter"
	"crickpulse/internal/services"
)

// DataHandler handles dashboard data HTTP requests with RFC 7807 compliance
type DataHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDataHandler creates a new data handler with RFC 7807 error handling
func NewDataHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the data routes with proper Chi patterns
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/matches", h.GetMatches)
	r.Get("/seasons", h.GetSeasons)
	r.Get("/teams", h.GetTeams)
	r.Get("/summary", h.GetSummary)
	r.Get("/season-activity", h.GetSeasonActivity)
	r.Get("/wins", h.GetWins)
	r.Get("/win-matrix", h.GetWinMatrix)
	r.Get("/margins", h.GetMargins)
	r.Get("/result-types", h.GetResultTypes)

	r.Route("/export/{format}", func(r chi.Router) {
		r.Use(h.ExportCtx)
		r.Get("/", h.Export)
	})

	return r
}

// ExportCtx middleware validates the export format parameter
func (h *DataHandler) ExportCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		format := chi.URLParam(r, "format")

		validFormats := map[string]bool{
			"csv":  true,
			"xlsx": true,
		}

		if !validFormats[format] {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", fmt.Sprintf("Invalid export format: %s. Must be one of: csv, xlsx", format)))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetMatches handles GET /api/data/matches
func (h *DataHandler) GetMatches(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	filter, _, err := bindFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "fetching matches",
		slog.String("request_id", reqID),
		slog.Int("filter_seasons", len(filter.Seasons)),
		slog.Int("filter_teams", len(filter.Teams)),
	)

	matches, err := h.service.Matches(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, r, err, "get matches")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   matches,
		"count":  len(matches),
	})
}

// GetSeasons handles GET /api/data/seasons
func (h *DataHandler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.service.Seasons(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "get seasons")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   seasons,
		"count":  len(seasons),
	})
}

// GetTeams handles GET /api/data/teams
func (h *DataHandler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.service.Teams(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "get teams")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   teams,
		"count":  len(teams),
	})
}

// GetSummary handles GET /api/data/summary
func (h *DataHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	filter, _, err := bindFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	summary, err := h.service.Summary(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, r, err, "get summary")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// GetSeasonActivity handles GET /api/data/season-activity
func (h *DataHandler) GetSeasonActivity(w http.ResponseWriter, r *http.Request) {
	filter, _, err := bindFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	activity, err := h.service.SeasonActivity(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, r, err, "get season activity")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   activity,
		"count":  len(activity),
	})
}

// GetWins handles GET /api/data/wins
func (h *DataHandler) GetWins(w http.ResponseWriter, r *http.Request) {
	filter, limit, err := bindFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	wins, err := h.service.TopTeams(r.Context(), filter, limit)
	if err != nil {
		h.handleServiceError(w, r, err, "get wins")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   wins,
		"count":  len(wins),
		"params": map[string]interface{}{
			"limit": limit,
		},
	})
}

// GetWinMatrix handles GET /api/data/win-matrix
func (h *DataHandler) GetWinMatrix(w http.ResponseWriter, r *http.Request) {
	filter, _, err := bindFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	matrix, err := h.service.WinMatrix(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, r, err, "get win matrix")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   matrix,
	})
}

// GetMargins handles GET /api/data/margins
func (h *DataHandler) GetMargins(w http.ResponseWriter, r *http.Request) {
	filter, _, err := bindFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	points, distribution, err := h.service.Margins(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, r, err, "get margins")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"points":       points,
			"distribution": distribution,
		},
		"count": len(points),
	})
}

// GetResultTypes handles GET /api/data/result-types
func (h *DataHandler) GetResultTypes(w http.ResponseWriter, r *http.Request) {
	filter, _, err := bindFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	counts, err := h.service.ResultTypes(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, r, err, "get result types")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   counts,
		"count":  len(counts),
	})
}

// Export handles GET /api/data/export/{format}. The csv format streams
// one table picked by the "table" query parameter, the xlsx format
// streams a workbook with every table as a sheet.
func (h *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	format := chi.URLParam(r, "format")

	filter, _, err := bindFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	snap, err := h.service.Aggregates(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, r, err, "export aggregates")
		return
	}

	h.logger.InfoContext(r.Context(), "exporting aggregates",
		slog.String("request_id", reqID),
		slog.String("format", format),
	)

	stamp := time.Now().Format("20060102")

	switch format {
	case "csv":
		tableName := r.URL.Query().Get("table")
		if tableName == "" {
			tableName = exporter.TableSummary
		}
		table, err := exporter.TableByName(snap, tableName)
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("table", fmt.Sprintf("Unknown table %q. Must be one of: %v", tableName, exporter.TableNames())))
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_%s.csv"`, table.Name, stamp))
		if err := exporter.WriteCSV(w, table); err != nil {
			h.logger.ErrorContext(r.Context(), "csv export failed",
				slog.String("error", err.Error()),
				slog.String("request_id", reqID),
			)
		}

	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="match_report_%s.xlsx"`, stamp))
		if err := exporter.WriteWorkbook(w, exporter.FromAggregates(snap)); err != nil {
			h.logger.ErrorContext(r.Context(), "xlsx export failed",
				slog.String("error", err.Error()),
				slog.String("request_id", reqID),
			)
		}
	}
}

// handleServiceError maps service and dataset errors to API errors
func (h *DataHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	reqID := middleware.GetReqID(r.Context())

	h.logger.ErrorContext(r.Context(), "data request failed",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
	)

	switch {
	case errors.Is(err, dataset.ErrFileNotFound):
		h.errorHandler.HandleError(w, r, apierrors.ErrDatasetNotFound)
	case errors.Is(err, dataset.ErrParse), errors.Is(err, dataset.ErrSchemaMismatch):
		h.errorHandler.HandleError(w, r, apierrors.ErrDatasetUnreadable)
	case errors.Is(err, services.ErrDatasetNotLoaded):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusServiceUnavailable,
			"SERVICE_UNAVAILABLE",
			"Matches dataset is not loaded yet",
		))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}
