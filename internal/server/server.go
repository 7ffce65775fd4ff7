// internal/server/server.go
package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TigerTown3661/dvi-bridge/internal/common/config"
	"github.com/TigerTown3661/dvi-bridge/internal/common/logger"
	"github.com/TigerTown3661/dvi-bridge/internal/common/rowriter"
	"github.com/TigerTown3661/dvi-bridge/internal/endpoints/inspection"
	"github.com/TigerTown3661/dvi-bridge/internal/endpoints/notes"
	"github.com/TigerTown3661/dvi-bridge/internal/endpoints/prime"
	"github.com/TigerTown3661/dvi-bridge/internal/endpoints/qcchecks"
	"github.com/TigerTown3661/dvi-bridge/internal/endpoints/rowid"
	"github.com/TigerTown3661/dvi-bridge/internal/endpoints/staging"
	"github.com/TigerTown3661/dvi-bridge/internal/endpoints/status"
)

// New builds the echo server with every bridge route registered.
func New(cfg *config.Config, dvi *rowriter.Client, log logger.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(RequestLogger(log))

	statusHandler := status.NewHandler(dvi, log)
	isoHandler := inspection.NewHandler(inspection.ISOConfig(cfg.Inspections), dvi, log)
	pmaHandler := inspection.NewHandler(inspection.PMAConfig(cfg.Inspections), dvi, log)
	notesHandler := notes.NewHandler(dvi, cfg.Inspections.TechNotesItemID, log)
	stagingHandler := staging.NewHandler(log)
	rowidHandler := rowid.NewHandler(dvi, log)
	qcHandler := qcchecks.NewHandler(dvi, log)
	primeHandler := prime.NewHandler(dvi, cfg.Inspections.ISO.ChecklistID, log)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"ok":      true,
			"message": "DVI bridge server running",
		})
	})

	e.POST("/dvi/start", statusHandler.Start)
	e.POST("/dvi/iso_complete", statusHandler.ISOComplete)
	e.POST("/dvi/pma_complete", statusHandler.PMAComplete)
	e.POST("/dvi/qc_complete", statusHandler.QCComplete)

	e.POST("/dvi/iso_inspection", isoHandler.Handle)
	e.POST("/dvi/pma_inspection", pmaHandler.Handle)

	e.POST("/dvi/pma_technician_notes", notesHandler.Handle)
	e.POST("/dvi/upload_image", stagingHandler.Handle)
	e.POST("/dvi/prime_iso", primeHandler.Handle)

	e.GET("/dvi/get_rowid", rowidHandler.Handle)
	e.GET("/dvi/qc_checks", qcHandler.Handle)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
