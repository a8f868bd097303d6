package http

import (
	"fmt"
	"net/http"
	"net/http/pprof"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/osmosis-labs/limitswap/domain"
	"github.com/osmosis-labs/limitswap/log"
)

// HealthChecker reports whether a dependency of the server is usable.
type HealthChecker interface {
	Name() string
	Check() error
}

type SystemHandler struct {
	logger    log.Logger
	sequencer domain.Sequencer
	checkers  []HealthChecker
	config    domain.Config
}

const (
	versionPlaceholder    = "version="
	whiteSpacePlaceholder = " "
)

// NewSystemHandler will initialize the /debug/ppof resources endpoint
func NewSystemHandler(e *echo.Echo, config domain.Config, logger log.Logger, sequencer domain.Sequencer, checkers ...HealthChecker) {
	handler := &SystemHandler{
		logger:    logger,
		sequencer: sequencer,
		checkers:  checkers,
		config:    config,
	}

	// if debug mod, enable additional profiles that are too intensive
	// for production.
	if !config.LoggerIsProduction {
		runtime.SetMutexProfileFraction(2)
		runtime.SetBlockProfileRate(2)
	}

	e.GET("/debug/pprof/*", echo.WrapHandler(http.HandlerFunc(pprof.Index)))
	e.GET("/debug/pprof/cmdline", echo.WrapHandler(http.HandlerFunc(pprof.Cmdline)))
	e.GET("/debug/pprof/profile", echo.WrapHandler(http.HandlerFunc(pprof.Profile)))
	e.GET("/debug/pprof/symbol", echo.WrapHandler(http.HandlerFunc(pprof.Symbol)))
	e.GET("/debug/pprof/trace", echo.WrapHandler(http.HandlerFunc(pprof.Trace)))

	e.GET("/healthcheck", handler.GetHealthStatus)
	e.GET("/config", handler.GetConfig)
	e.GET("/version", handler.GetVersion)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

// GetConfig returns the config for the limit order engine server
func (h *SystemHandler) GetConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, h.config)
}

func (h *SystemHandler) GetVersion(c echo.Context) error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read build info")
	}

	for _, setting := range buildInfo.Settings {
		if setting.Key == "-ldflags" {
			version, err := extractVersion(setting.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to extract version information: %v", err))
			}

			return c.JSON(http.StatusOK, version)
		}
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "failed to find version information")
}

// extractVersion extracts the version string from the ldflags
func extractVersion(ldGlagsValueStr string) (string, error) {
	// Find the position of github.com/osmosis-labs/limitswap/version=
	index := strings.Index(ldGlagsValueStr, versionPlaceholder)
	if index == -1 {
		return "", fmt.Errorf("No version string found")
	}

	// Extract the substring after github.com/osmosis-labs/limitswap/version=
	substring := ldGlagsValueStr[index+len(versionPlaceholder):]

	// the version may be the last flag
	index = strings.Index(substring, whiteSpacePlaceholder)
	if index == -1 {
		index = len(substring)
	}

	if index == 0 {
		return "", fmt.Errorf("empty version string")
	}

	return substring[:index], nil
}

// GetHealthStatus handles health check requests for the ledger and the configured stores
func (h *SystemHandler) GetHealthStatus(c echo.Context) error {
	status := map[string]string{
		"ledger_height": fmt.Sprint(h.sequencer.Height()),
	}

	for _, checker := range h.checkers {
		if err := checker.Check(); err != nil {
			h.logger.Error("health check failed", zap.String("dependency", checker.Name()), zap.Error(err))
			return echo.NewHTTPError(http.StatusServiceUnavailable, fmt.Sprintf("Error connecting to %s: %s", checker.Name(), err))
		}
		status[checker.Name()+"_status"] = "running"
	}

	return c.JSON(http.StatusOK, status)
}
