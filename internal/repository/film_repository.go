package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/film-catalog/internal/model"
)

// filmColumns lists the writable columns in the order used by every
// INSERT and UPDATE.
const filmColumns = "nom, dateDeSortie, realisateur, note, notePublic, compagnie, description, origine, lienImage"

const selectFilms = "SELECT id, " + filmColumns + " FROM films"

// FilmRepo encapsulates all queries against the films table.  The handle
// is injected at construction; its lifecycle belongs to the caller.
type FilmRepo struct {
	db *sqlx.DB
}

func NewFilmRepo(db *sqlx.DB) *FilmRepo {
	return &FilmRepo{db: db}
}

// List returns the films matching f ordered by id.  The slice is never nil
// so an empty result encodes as [].
func (r *FilmRepo) List(ctx context.Context, f FilmFilter) ([]model.Film, error) {
	cond, args := f.Where()
	out := []model.Film{}
	if err := r.db.SelectContext(ctx, &out, selectFilms+" WHERE "+cond+" ORDER BY id", args...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single film.  It returns ErrFilmNotFound when the id
// does not exist.
func (r *FilmRepo) GetByID(ctx context.Context, id int64) (*model.Film, error) {
	out := []model.Film{}
	if err := r.db.SelectContext(ctx, &out, selectFilms+" WHERE id = ?", id); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrFilmNotFound
	}
	return &out[0], nil
}

// Create inserts a film and returns the id assigned by the store.
func (r *FilmRepo) Create(ctx context.Context, in model.FilmInput) (int64, error) {
	const q = "INSERT INTO films (" + filmColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, insertArgs(in.Film(0))...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update replaces every column except id.  It returns ErrFilmNotFound when
// no row has the given id.
func (r *FilmRepo) Update(ctx context.Context, id int64, in model.FilmInput) error {
	const q = `UPDATE films SET nom = ?, dateDeSortie = ?, realisateur = ?, note = ?, notePublic = ?,
	           compagnie = ?, description = ?, origine = ?, lienImage = ? WHERE id = ?`
	args := append(insertArgs(in.Film(id)), id)
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	return requireAffected(res.RowsAffected())
}

// Delete removes a film.  It returns ErrFilmNotFound when no row has the
// given id.
func (r *FilmRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM films WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res.RowsAffected())
}

// Count returns the total number of rows.
func (r *FilmRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM films"); err != nil {
		return 0, err
	}
	return n, nil
}

// InsertBatch inserts rows in a single transaction through one prepared
// statement and returns how many were written.  Nil fields are stored as
// NULL.  Ids on the input are ignored.
func (r *FilmRepo) InsertBatch(ctx context.Context, films []model.Film) (n int, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	stmt, err := tx.PreparexContext(ctx, "INSERT INTO films ("+filmColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i := range films {
		if _, err = stmt.ExecContext(ctx, insertArgs(films[i])...); err != nil {
			return n, fmt.Errorf("insert film %d: %w", i, err)
		}
		n++
	}
	return n, nil
}

func insertArgs(f model.Film) []any {
	return []any{str(f.Nom), str(f.DateDeSortie), str(f.Realisateur), num(f.Note), num(f.NotePublic),
		str(f.Compagnie), str(f.Description), str(f.Origine), str(f.LienImage)}
}

// str and num unwrap nullable fields so drivers receive a plain value or nil.
func str(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func num(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func requireAffected(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFilmNotFound
	}
	return nil
}
