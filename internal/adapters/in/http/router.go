package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter wires the API, health, metrics and swagger routes into a fresh echo instance.
//
// Example:
//
//	e, err := http.NewRouter(ctx, http.NewServer(handlers, logger), logger)
//	if err != nil {
//	    return err
//	}
//	e.Logger.Fatal(e.Start(":8080"))
func NewRouter(ctx context.Context, server ServerInterface, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	openAPIRouter, err := NewOpenAPIRouter(doc)
	if err != nil {
		return nil, err
	}
	if err = registerSwagger(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(
		middleware.RequestID(),
		RequestLogger(logger),
		Metrics(),
		middleware.Recover(),
		OpenAPIValidator(openAPIRouter),
	)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	RegisterHandlers(e, server, BaseURL)

	return e, nil
}
