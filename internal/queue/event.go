// Package queue defines message payloads exchanged over the message broker.
package queue

import (
    "time"

    "github.com/oklog/ulid/v2"
)

// FilmEventsQueue is the durable queue film change events are routed to.
const FilmEventsQueue = "films.events"

// Event types carried in FilmEvent.Type.
const (
    FilmCreated = "film.created"
    FilmUpdated = "film.updated"
    FilmDeleted = "film.deleted"
)

// FilmEvent is published after a successful write to the films table.  It
// carries enough for downstream consumers to log or index the change
// without querying the store.  Nom and Origine are empty when the row had
// no value for them.
type FilmEvent struct {
    ID         string `json:"id"`
    Type       string `json:"type"`
    FilmID     int64  `json:"film_id"`
    Nom        string `json:"nom,omitempty"`
    Origine    string `json:"origine,omitempty"`
    OccurredAt string `json:"occurred_at"`
}

// NewFilmEvent stamps an event with a fresh ULID and the current UTC time.
func NewFilmEvent(typ string, filmID int64, nom, origine string) FilmEvent {
    return FilmEvent{
        ID:         ulid.Make().String(),
        Type:       typ,
        FilmID:     filmID,
        Nom:        nom,
        Origine:    origine,
        OccurredAt: time.Now().UTC().Format(time.RFC3339),
    }
}
