package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kola-ootro/oura-ring-data-collector/internal/domain/models"
	drepo "github.com/kola-ootro/oura-ring-data-collector/internal/domain/repository"
	"github.com/kola-ootro/oura-ring-data-collector/internal/service/cache"
	"github.com/kola-ootro/oura-ring-data-collector/internal/service/excel"
	"github.com/kola-ootro/oura-ring-data-collector/internal/usecase"
	xhttp "github.com/kola-ootro/oura-ring-data-collector/pkg/http"
	xlogger "github.com/kola-ootro/oura-ring-data-collector/pkg/logger"
)

const (
	storeCacheKey = "store"
	storeCacheTTL = 5 * time.Second

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// DashboardHandler serves the dashboard pages and the archive download.
type DashboardHandler struct {
	logger    *xlogger.Logger
	refresher *usecase.Refresher
	archive   drepo.Archive
	apiKey    string
	cache     *cache.TTLCache
}

func NewDashboardHandler(logger *xlogger.Logger, refresher *usecase.Refresher, archive drepo.Archive, apiKey string) *DashboardHandler {
	return &DashboardHandler{
		logger:    logger,
		refresher: refresher,
		archive:   archive,
		apiKey:    apiKey,
		cache:     cache.NewTTLCache(),
	}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	e.Renderer = NewRenderer()
	e.GET("/", h.Dashboard)
	e.GET("/update", h.Update)
	e.GET("/fetch_initial_data", h.Update)
	e.GET("/download_archive", h.DownloadArchive)
	e.GET("/api/data", h.Data)
	e.GET("/healthz", h.Health)
}

// credentialErr fails fast before any route touches the store.
func (h *DashboardHandler) credentialErr() *xhttp.AppError {
	if h.apiKey == "" {
		return xhttp.InternalError("OURA_API_KEY is not set in environment variables")
	}
	return nil
}

// Dashboard renders the accumulated metrics, or redirects to the first-run
// fetch when nothing has been stored yet.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	if appErr := h.credentialErr(); appErr != nil {
		return xhttp.AppErrorResponse(c, appErr)
	}

	store, err := h.loadStore()
	if err != nil {
		h.logger.Error("store load failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("An error occurred").WithError(err))
	}
	if store.IsEmpty() {
		return c.Redirect(http.StatusFound, "/fetch_initial_data")
	}

	return c.Render(http.StatusOK, "dashboard.html", map[string]interface{}{
		"Store":       store,
		"LastUpdated": h.archive.LastUpdated(),
	})
}

type updateRequest struct {
	Days int `query:"days" validate:"omitempty,min=1,max=30"`
}

// Update triggers a refresh cycle and sends the browser back to the
// dashboard. An optional days parameter overrides the configured lookback.
func (h *DashboardHandler) Update(c echo.Context) error {
	if appErr := h.credentialErr(); appErr != nil {
		return xhttp.AppErrorResponse(c, appErr)
	}

	req := &updateRequest{}
	if verr := xhttp.BindAndValidate(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if err := h.refresher.RefreshWindow(c.Request().Context(), req.Days); err != nil {
		h.logger.Error("refresh failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("An error occurred during update").WithError(err))
	}

	h.cache.Invalidate(storeCacheKey)
	return c.Redirect(http.StatusFound, "/")
}

// DownloadArchive streams the store as an xlsx workbook.
func (h *DashboardHandler) DownloadArchive(c echo.Context) error {
	if appErr := h.credentialErr(); appErr != nil {
		return xhttp.AppErrorResponse(c, appErr)
	}

	store, err := h.loadStore()
	if err != nil {
		h.logger.Error("store load failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("An error occurred").WithError(err))
	}

	buf, err := excel.Export(store)
	if errors.Is(err, excel.ErrNoData) {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("No data available to download"))
	}
	if err != nil {
		h.logger.Error("export failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("An error occurred during export").WithError(err))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="oura_archive.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

type dataRequest struct {
	Type string `query:"type" validate:"omitempty,oneof=daily_activity daily_readiness daily_sleep"`
}

// Data returns the store as JSON for programmatic consumers, optionally
// filtered to one metric type.
func (h *DashboardHandler) Data(c echo.Context) error {
	if appErr := h.credentialErr(); appErr != nil {
		return xhttp.AppErrorResponse(c, appErr)
	}

	req := &dataRequest{}
	if verr := xhttp.BindAndValidate(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	store, err := h.loadStore()
	if err != nil {
		h.logger.Error("store load failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("An error occurred").WithError(err))
	}

	if req.Type != "" {
		filtered := models.Store{}
		if b, ok := store[req.Type]; ok {
			filtered[req.Type] = b
		}
		store = filtered
	}

	return xhttp.SuccessResponse(c, map[string]interface{}{
		"last_updated": h.archive.LastUpdated(),
		"data":         store,
	})
}

func (h *DashboardHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *DashboardHandler) loadStore() (models.Store, error) {
	if v, ok := h.cache.Get(storeCacheKey); ok {
		return v.(models.Store), nil
	}
	store, err := h.archive.Load()
	if err != nil {
		return nil, err
	}
	h.cache.Set(storeCacheKey, store, storeCacheTTL)
	return store, nil
}
