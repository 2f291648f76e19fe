package repository

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Tier names accepted by the niveau filter.
const (
	NiveauClassics = "classics" // critic note >= 4.2
	NiveauNavets   = "navets"   // audience notePublic < 3.2
)

// OrigineAll disables the origine filter.
const OrigineAll = "all"

const (
	classicsMinNote     = 4.2
	navetsMaxNotePublic = 3.2
)

// FilmFilter holds the optional filters of GET /films.  Zero values mean
// "not supplied".
type FilmFilter struct {
	Origine string
	Niveau  string
	NoteMin *float64
	NoteMax *float64
}

// ParseFilmFilter reads origine, niveau, noteMin and noteMax from the query
// string.  Empty parameters are treated as absent.  noteMin and noteMax must
// parse as finite numbers; otherwise an error wrapping ErrInvalidFilter is returned.
func ParseFilmFilter(q url.Values) (FilmFilter, error) {
	f := FilmFilter{
		Origine: q.Get("origine"),
		Niveau:  q.Get("niveau"),
	}
	var err error
	if f.NoteMin, err = parseNote(q, "noteMin"); err != nil {
		return FilmFilter{}, err
	}
	if f.NoteMax, err = parseNote(q, "noteMax"); err != nil {
		return FilmFilter{}, err
	}
	return f, nil
}

func parseNote(q url.Values, key string) (*float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidFilter, key, raw)
	}
	return &v, nil
}

// Where builds the predicate and bound arguments for the filter.  The
// predicates are combined with AND; with no filters it matches every row.
// Caller-supplied values are always bound, never spliced into the SQL.
func (f FilmFilter) Where() (string, []any) {
	where := []string{"1=1"}
	args := []any{}

	if f.Origine != "" && f.Origine != OrigineAll {
		where = append(where, "origine = ?")
		args = append(args, f.Origine)
	}

	switch f.Niveau {
	case NiveauClassics:
		where = append(where, fmt.Sprintf("note >= %v", classicsMinNote))
	case NiveauNavets:
		where = append(where, fmt.Sprintf("notePublic < %v", navetsMaxNotePublic))
	}

	if f.NoteMin != nil {
		where = append(where, "note >= ?")
		args = append(args, *f.NoteMin)
	}
	if f.NoteMax != nil {
		where = append(where, "note <= ?")
		args = append(args, *f.NoteMax)
	}
	return strings.Join(where, " AND "), args
}
