package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInput() FilmInput {
	return FilmInput{
		Nom:          "Heat",
		DateDeSortie: "1995-12-15",
		Realisateur:  "Michael Mann",
		Note:         4.4,
		NotePublic:   4.3,
		Compagnie:    "Warner Bros.",
		Description:  "Braquage.",
		Origine:      "USA",
		LienImage:    "img/heat.jpg",
	}
}

func TestMissingAcceptsCompleteInput(t *testing.T) {
	assert.Empty(t, validInput().Missing())
}

func TestMissingReportsEachEmptyField(t *testing.T) {
	clear := map[string]func(*FilmInput){
		"nom":          func(in *FilmInput) { in.Nom = "" },
		"dateDeSortie": func(in *FilmInput) { in.DateDeSortie = "" },
		"realisateur":  func(in *FilmInput) { in.Realisateur = "" },
		"note":         func(in *FilmInput) { in.Note = 0 },
		"notePublic":   func(in *FilmInput) { in.NotePublic = 0 },
		"compagnie":    func(in *FilmInput) { in.Compagnie = "" },
		"description":  func(in *FilmInput) { in.Description = "" },
		"origine":      func(in *FilmInput) { in.Origine = "" },
		"lienImage":    func(in *FilmInput) { in.LienImage = "" },
	}
	for field, fn := range clear {
		t.Run(field, func(t *testing.T) {
			in := validInput()
			fn(&in)
			assert.Equal(t, []string{field}, in.Missing())
		})
	}
}

func TestMissingRejectsZeroScores(t *testing.T) {
	in := validInput()
	in.Note, in.NotePublic = 0, 0
	assert.ElementsMatch(t, []string{"note", "notePublic"}, in.Missing())

	in = validInput()
	in.Note = -1
	assert.Empty(t, in.Missing(), "only zero counts as missing")
}
