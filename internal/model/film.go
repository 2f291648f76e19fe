package model

// Film represents one row of the `films` table.  Every column except the
// primary key is nullable in storage (rows loaded by the seed tool may lack
// keys), so the scanned fields are pointers and render as JSON null.
// JSON keys match the column names used by the existing front end.
//
// Fields:
//  ID           – primary key, auto-assigned and never changed.
//  Nom          – title.
//  DateDeSortie – release date, free-form text.
//  Realisateur  – director.
//  Note         – critic score.
//  NotePublic   – audience score.
//  Compagnie    – production company.
//  Description  – synopsis.
//  Origine      – country/origin tag used by the origine filter.
//  LienImage    – path or URL of the poster image.
type Film struct {
    ID           int64    `db:"id" json:"id"`                     // films.id
    Nom          *string  `db:"nom" json:"nom"`                   // films.nom
    DateDeSortie *string  `db:"dateDeSortie" json:"dateDeSortie"` // films.dateDeSortie
    Realisateur  *string  `db:"realisateur" json:"realisateur"`   // films.realisateur
    Note         *float64 `db:"note" json:"note"`                 // films.note
    NotePublic   *float64 `db:"notePublic" json:"notePublic"`     // films.notePublic
    Compagnie    *string  `db:"compagnie" json:"compagnie"`       // films.compagnie
    Description  *string  `db:"description" json:"description"`   // films.description
    Origine      *string  `db:"origine" json:"origine"`           // films.origine
    LienImage    *string  `db:"lienImage" json:"lienImage"`       // films.lienImage
}

// FilmInput is the body accepted by POST /films and PUT /films/:id.  All
// nine fields are required.
type FilmInput struct {
    Nom          string  `json:"nom"`
    DateDeSortie string  `json:"dateDeSortie"`
    Realisateur  string  `json:"realisateur"`
    Note         float64 `json:"note"`
    NotePublic   float64 `json:"notePublic"`
    Compagnie    string  `json:"compagnie"`
    Description  string  `json:"description"`
    Origine      string  `json:"origine"`
    LienImage    string  `json:"lienImage"`
}

// Missing lists the JSON names of required fields that are empty.  A score
// of 0 counts as missing: clients have always had to send a non-zero note
// and notePublic, and existing data relies on that.
func (in FilmInput) Missing() []string {
    var out []string
    check := func(name string, ok bool) {
        if !ok {
            out = append(out, name)
        }
    }
    check("nom", in.Nom != "")
    check("realisateur", in.Realisateur != "")
    check("compagnie", in.Compagnie != "")
    check("dateDeSortie", in.DateDeSortie != "")
    check("note", in.Note != 0)
    check("notePublic", in.NotePublic != 0)
    check("description", in.Description != "")
    check("lienImage", in.LienImage != "")
    check("origine", in.Origine != "")
    return out
}

// Film converts the input into a row value with the given id.
func (in FilmInput) Film(id int64) Film {
    return Film{
        ID:           id,
        Nom:          &in.Nom,
        DateDeSortie: &in.DateDeSortie,
        Realisateur:  &in.Realisateur,
        Note:         &in.Note,
        NotePublic:   &in.NotePublic,
        Compagnie:    &in.Compagnie,
        Description:  &in.Description,
        Origine:      &in.Origine,
        LienImage:    &in.LienImage,
    }
}
