package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/film-catalog/internal/database"
	"github.com/iliyamo/film-catalog/internal/model"
	"github.com/iliyamo/film-catalog/internal/repository"
)

func newRepo(t *testing.T) *repository.FilmRepo {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, filepath.Join(t.TempDir(), "films.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.EnsureSchema(context.Background(), db))
	return repository.NewFilmRepo(db)
}

func film(nom, origine string, note, notePublic float64) model.FilmInput {
	return model.FilmInput{
		Nom:          nom,
		DateDeSortie: "1994-10-14",
		Realisateur:  "Quentin Tarantino",
		Note:         note,
		NotePublic:   notePublic,
		Compagnie:    "Miramax",
		Description:  "desc",
		Origine:      origine,
		LienImage:    "img/" + nom + ".jpg",
	}
}

func seedRepo(t *testing.T, r *repository.FilmRepo) map[string]int64 {
	t.Helper()
	ids := map[string]int64{}
	for _, in := range []model.FilmInput{
		film("pulp", "USA", 4.6, 4.4),
		film("amelie", "France", 4.1, 4.5),
		film("taxi", "France", 2.9, 3.0),
		film("godzilla", "USA", 2.5, 3.1),
		film("akira", "Japon", 4.3, 4.0),
	} {
		id, err := r.Create(context.Background(), in)
		require.NoError(t, err)
		ids[in.Nom] = id
	}
	return ids
}

func names(films []model.Film) []string {
	out := make([]string, 0, len(films))
	for _, f := range films {
		out = append(out, *f.Nom)
	}
	return out
}

func TestFilmRepoListFilters(t *testing.T) {
	r := newRepo(t)
	seedRepo(t, r)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter repository.FilmFilter
		want   []string
	}{
		{"all rows", repository.FilmFilter{}, []string{"pulp", "amelie", "taxi", "godzilla", "akira"}},
		{"origine all", repository.FilmFilter{Origine: "all"}, []string{"pulp", "amelie", "taxi", "godzilla", "akira"}},
		{"origine", repository.FilmFilter{Origine: "France"}, []string{"amelie", "taxi"}},
		{"usa classics", repository.FilmFilter{Origine: "USA", Niveau: "classics"}, []string{"pulp"}},
		{"classics", repository.FilmFilter{Niveau: "classics"}, []string{"pulp", "akira"}},
		{"navets", repository.FilmFilter{Niveau: "navets"}, []string{"taxi", "godzilla"}},
		{"unknown niveau", repository.FilmFilter{Niveau: "bof"}, []string{"pulp", "amelie", "taxi", "godzilla", "akira"}},
		{"note range", repository.FilmFilter{NoteMin: ptr(2.9), NoteMax: ptr(4.3)}, []string{"amelie", "taxi", "akira"}},
		{"no match", repository.FilmFilter{Origine: "Italie"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func ptr(v float64) *float64 { return &v }

func TestFilmRepoCreateAndGet(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	in := film("heat", "USA", 4.4, 4.2)
	id, err := r.Create(ctx, in)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := r.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, in.Film(id), *got)
}

func TestFilmRepoUpdate(t *testing.T) {
	r := newRepo(t)
	ids := seedRepo(t, r)
	ctx := context.Background()

	changed := film("taxi 2", "France", 3.1, 3.3)
	require.NoError(t, r.Update(ctx, ids["taxi"], changed))

	got, err := r.GetByID(ctx, ids["taxi"])
	require.NoError(t, err)
	assert.Equal(t, changed.Film(ids["taxi"]), *got)

	// Same values again still counts as a match.
	require.NoError(t, r.Update(ctx, ids["taxi"], changed))

	err = r.Update(ctx, 9999, changed)
	assert.ErrorIs(t, err, repository.ErrFilmNotFound)
}

func TestFilmRepoDelete(t *testing.T) {
	r := newRepo(t)
	ids := seedRepo(t, r)
	ctx := context.Background()

	require.NoError(t, r.Delete(ctx, ids["godzilla"]))
	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)

	_, err = r.GetByID(ctx, ids["godzilla"])
	assert.ErrorIs(t, err, repository.ErrFilmNotFound)

	assert.ErrorIs(t, r.Delete(ctx, ids["godzilla"]), repository.ErrFilmNotFound)
}

func TestFilmRepoInsertBatchStoresNulls(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	nom := "sans note"
	n, err := r.InsertBatch(ctx, []model.Film{{ID: 42, Nom: &nom}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	all, err := r.List(ctx, repository.FilmFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.EqualValues(t, 1, all[0].ID, "ids from input are ignored")
	assert.Equal(t, "sans note", *all[0].Nom)
	assert.Nil(t, all[0].Note)
	assert.Nil(t, all[0].Origine)
}
