package router // package router defines how HTTP routes are registered for the API

import (
	"net/http"

	"github.com/labstack/echo/v4"                   // import the Echo web framework to handle routing
	echomw "github.com/labstack/echo/v4/middleware" // echo's bundled middleware (CORS, recover, request id, logger)
	"github.com/oklog/ulid/v2"

	"github.com/iliyamo/film-catalog/internal/handler" // import the handlers that implement the film endpoints
)

// Options carries the optional pieces of the HTTP stack.  Nil middleware
// is skipped.
type Options struct {
	ImageDir  string              // directory served under /img
	RateLimit echo.MiddlewareFunc // applied to every /films route
	Cache     echo.MiddlewareFunc // applied to GET /films only
	AccessLog bool                // emit one log line per request
}

// New builds a ready-to-serve Echo instance with the common middleware
// stack and every route registered.
func New(films *handler.FilmHandler, db handler.Pinger, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	UseCommon(e, opts.AccessLog)
	RegisterRoutes(e, db)
	RegisterFilms(e, films, opts.RateLimit, opts.Cache)
	if opts.ImageDir != "" {
		RegisterStatic(e, opts.ImageDir)
	}
	return e
}

// UseCommon installs the middleware every request goes through: panic
// recovery, a ULID request id, optional access logging and a permissive
// CORS policy (any origin; GET, POST, PUT and DELETE; Content-Type and
// Authorization headers).
func UseCommon(e *echo.Echo, accessLog bool) {
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: func() string { return ulid.Make().String() },
	}))
	if accessLog {
		e.Use(echomw.Logger())
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
}

// RegisterRoutes registers service-level routes.  At the moment it only
// exposes a health check backed by a store ping.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterFilms maps the CRUD endpoints of the catalog.  The cache wraps
// the listing only; writes invalidate it from the handler.
func RegisterFilms(e *echo.Echo, h *handler.FilmHandler, rateLimit, cache echo.MiddlewareFunc) {
	var common []echo.MiddlewareFunc
	if rateLimit != nil {
		common = append(common, rateLimit)
	}
	list := common
	if cache != nil {
		list = append(append([]echo.MiddlewareFunc{}, common...), cache)
	}

	e.GET("/films", h.List, list...)
	e.POST("/films", h.Create, common...)
	e.PUT("/films/:id", h.Update, common...)
	e.DELETE("/films/:id", h.Delete, common...)
}

// RegisterStatic serves poster images from dir under /img.  Directories
// are never listed; a missing file is a 404.
func RegisterStatic(e *echo.Echo, dir string) {
	e.Static("/img", dir)
}
