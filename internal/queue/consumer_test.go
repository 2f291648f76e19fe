package queue

import (
    "encoding/json"
    "os"
    "path/filepath"
    "strings"
    "testing"

    "github.com/oklog/ulid/v2"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestNewFilmEvent(t *testing.T) {
    ev := NewFilmEvent(FilmCreated, 7, "Heat", "USA")
    _, err := ulid.ParseStrict(ev.ID)
    require.NoError(t, err)
    assert.Equal(t, FilmCreated, ev.Type)
    assert.EqualValues(t, 7, ev.FilmID)
    assert.NotEmpty(t, ev.OccurredAt)

    other := NewFilmEvent(FilmCreated, 7, "Heat", "USA")
    assert.NotEqual(t, ev.ID, other.ID)
}

func TestHandleMessageAppendsLines(t *testing.T) {
    dir := filepath.Join(t.TempDir(), "logs")
    for _, ev := range []FilmEvent{
        NewFilmEvent(FilmCreated, 1, "Heat", "USA"),
        NewFilmEvent(FilmDeleted, 1, "", ""),
    } {
        body, err := json.Marshal(ev)
        require.NoError(t, err)
        require.NoError(t, HandleMessage(body, dir))
    }

    b, err := os.ReadFile(filepath.Join(dir, "films.log"))
    require.NoError(t, err)
    lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
    require.Len(t, lines, 2)
    assert.Contains(t, lines[0], "film.created")
    assert.Contains(t, lines[0], `nom="Heat"`)
    assert.Contains(t, lines[1], "film.deleted")
    assert.Contains(t, lines[1], "film_id=1")
}

func TestHandleMessageRejectsBadPayloads(t *testing.T) {
    dir := t.TempDir()
    assert.Error(t, HandleMessage([]byte("not json"), dir))
    assert.Error(t, HandleMessage([]byte(`{"id":"x"}`), dir))

    _, err := os.Stat(filepath.Join(dir, "films.log"))
    assert.True(t, os.IsNotExist(err), "nothing is written for rejected messages")
}
