// Package handler exposes the HTTP handlers of the film catalog.  Error
// bodies are generic; the underlying store error is only logged.
package handler

import (
    "context"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/film-catalog/internal/model"
    "github.com/iliyamo/film-catalog/internal/queue"
    "github.com/iliyamo/film-catalog/internal/repository"
)

// Response messages.  The front end displays them as-is.
const (
    msgFieldsRequired = "Tous les champs sont requis"
    msgInvalidBody    = "Corps de requête invalide"
    msgInvalidFilter  = "Filtre invalide"
    msgNotFound       = "Film non trouvé"
    msgListFailed     = "Erreur SQL"
    msgCreateFailed   = "Erreur lors de l'ajout du film"
    msgUpdateFailed   = "Erreur lors de la mise à jour du film"
    msgDeleteFailed   = "Erreur lors de la suppression"
    msgCreated        = "Film ajouté avec succès"
    msgUpdated        = "Film mis à jour avec succès"
    msgDeleted        = "Film supprimé avec succès"
)

// publishTimeout bounds a background event publish.
const publishTimeout = 5 * time.Second

// EventPublisher is implemented by service.QueuePublisher.
type EventPublisher interface {
    Publish(ctx context.Context, event queue.FilmEvent) error
}

// CacheInvalidator is implemented by middleware.CacheInvalidator.
type CacheInvalidator interface {
    Invalidate(ctx context.Context) error
}

// FilmHandler serves /films.  Events and Cache are optional; leave them
// nil to run without a broker or a response cache.
type FilmHandler struct {
    Films  *repository.FilmRepo
    Events EventPublisher
    Cache  CacheInvalidator
}

// NewFilmHandler panics on a nil repository, like the other constructors
// wired at startup.
func NewFilmHandler(films *repository.FilmRepo) *FilmHandler {
    if films == nil {
        panic("nil repository passed to NewFilmHandler")
    }
    return &FilmHandler{Films: films}
}

// List handles GET /films?origine=&niveau=&noteMin=&noteMax= and returns
// every matching film as a JSON array.
func (h *FilmHandler) List(c echo.Context) error {
    filter, err := repository.ParseFilmFilter(c.QueryParams())
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidFilter})
    }
    films, err := h.Films.List(c.Request().Context(), filter)
    if err != nil {
        c.Logger().Errorf("films: list failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgListFailed})
    }
    return c.JSON(http.StatusOK, films)
}

// Create handles POST /films.  All nine fields are required; on success the
// response carries the generated id.
func (h *FilmHandler) Create(c echo.Context) error {
    in, resp := bindFilm(c)
    if resp != nil {
        return resp()
    }
    ctx := c.Request().Context()
    id, err := h.Films.Create(ctx, in)
    if err != nil {
        c.Logger().Errorf("films: insert failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgCreateFailed})
    }
    h.changed(c, queue.NewFilmEvent(queue.FilmCreated, id, in.Nom, in.Origine))
    return c.JSON(http.StatusOK, echo.Map{"message": msgCreated, "id": id})
}

// Update handles PUT /films/:id, replacing every field of the film.
func (h *FilmHandler) Update(c echo.Context) error {
    in, resp := bindFilm(c)
    if resp != nil {
        return resp()
    }
    id, ok := filmID(c)
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"error": msgNotFound})
    }
    if err := h.Films.Update(c.Request().Context(), id, in); err != nil {
        if errors.Is(err, repository.ErrFilmNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": msgNotFound})
        }
        c.Logger().Errorf("films: update %d failed: %v", id, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgUpdateFailed})
    }
    h.changed(c, queue.NewFilmEvent(queue.FilmUpdated, id, in.Nom, in.Origine))
    return c.JSON(http.StatusOK, echo.Map{"message": msgUpdated})
}

// Delete handles DELETE /films/:id.
func (h *FilmHandler) Delete(c echo.Context) error {
    id, ok := filmID(c)
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"error": msgNotFound})
    }
    ctx := c.Request().Context()
    // Load the row first so the event can still name the film.
    film, err := h.Films.GetByID(ctx, id)
    if err == nil {
        err = h.Films.Delete(ctx, id)
    }
    if err != nil {
        if errors.Is(err, repository.ErrFilmNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": msgNotFound})
        }
        c.Logger().Errorf("films: delete %d failed: %v", id, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgDeleteFailed})
    }
    h.changed(c, queue.NewFilmEvent(queue.FilmDeleted, id, deref(film.Nom), deref(film.Origine)))
    return c.JSON(http.StatusOK, echo.Map{"message": msgDeleted})
}

// bindFilm decodes and validates the request body.  When the body is
// rejected it returns a function writing the 400 response.
func bindFilm(c echo.Context) (model.FilmInput, func() error) {
    var in model.FilmInput
    if err := c.Bind(&in); err != nil {
        return in, func() error {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidBody})
        }
    }
    if missing := in.Missing(); len(missing) > 0 {
        return in, func() error {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": msgFieldsRequired, "missing": missing})
        }
    }
    return in, nil
}

// filmID parses :id.  A value that is not a positive integer cannot match
// any row, so callers answer 404 rather than 400.
func filmID(c echo.Context) (int64, bool) {
    id, err := strconv.ParseInt(c.Param("id"), 10, 64)
    if err != nil || id <= 0 {
        return 0, false
    }
    return id, true
}

func deref(p *string) string {
    if p == nil {
        return ""
    }
    return *p
}

// changed runs the post-write side effects.  The cache is dropped before
// the response is sent; the event is published in the background so a slow
// or absent broker never delays the client.
func (h *FilmHandler) changed(c echo.Context, ev queue.FilmEvent) {
    if h.Cache != nil {
        if err := h.Cache.Invalidate(c.Request().Context()); err != nil {
            c.Logger().Warnf("films: cache invalidation failed: %v", err)
        }
    }
    if h.Events == nil {
        return
    }
    logger := c.Logger()
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
        defer cancel()
        if err := h.Events.Publish(ctx, ev); err != nil {
            logger.Warnf("films: publish %s for film %d failed: %v", ev.Type, ev.FilmID, err)
        }
    }()
}
