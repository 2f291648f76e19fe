package main // seed loads a JSON snapshot of films into the store

import (
	"context"
	"log"

	"github.com/alecthomas/kong"

	"github.com/iliyamo/film-catalog/internal/database"
	"github.com/iliyamo/film-catalog/internal/repository"
	"github.com/iliyamo/film-catalog/internal/seed"
)

type cli struct {
	File   string `help:"JSON array of films to insert." default:"film.json" type:"existingfile"`
	DB     string `name:"db" help:"SQLite file path or MySQL DSN." default:"films.db" env:"DB_DSN"`
	Driver string `help:"Store driver." default:"sqlite" enum:"sqlite,mysql" env:"DB_DRIVER"`
}

func main() {
	var args cli
	kong.Parse(&args,
		kong.Name("seed"),
		kong.Description("Create the films table if needed and append every film from --file."),
	)

	// Parse before opening the store so a malformed file never touches it.
	films, err := seed.LoadFile(args.File)
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Open(args.Driver, args.DB)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	n, err := seed.Run(ctx, db, films)
	if err != nil {
		db.Close()
		log.Fatalf("seed: %v", err)
	}
	total, err := repository.NewFilmRepo(db).Count(ctx)
	if err != nil {
		log.Printf("inserted %d films", n)
		return
	}
	log.Printf("inserted %d films (%d rows in films)", n, total)
}
