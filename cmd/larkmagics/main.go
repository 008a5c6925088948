// Command larkmagics searches for fresh slider magic numbers, prints them as
// Go array literals, and optionally persists them for later runs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tylersaunders/lark/internal/magicstore"
	"github.com/tylersaunders/lark/internal/movegen"
)

func main() {
	seed := flag.Uint64("seed", 0, "RNG seed; 0 seeds from system entropy")
	attempts := flag.Int("attempts", 0, "max candidates per square; 0 uses the default cap")
	save := flag.Bool("save", false, "persist the found numbers to the magic store")
	dbDir := flag.String("db", "", "magic store directory; empty uses the platform default")
	verbose := flag.Bool("v", false, "log every found magic")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	log.Info().Uint64("seed", *seed).Msg("searching for magic numbers")

	gen, err := movegen.NewViaSearch(movegen.SearchOptions{
		Seed:        *seed,
		MaxAttempts: *attempts,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("magic search failed")
	}

	rook, bishop := gen.MagicNumbers()
	printArray("RookMagics", rook)
	printArray("BishopMagics", bishop)

	if !*save {
		return
	}

	dir := *dbDir
	if dir == "" {
		dir, err = magicstore.DefaultDir()
		if err != nil {
			log.Fatal().Err(err).Msg("could not resolve magic store directory")
		}
	}

	store, err := magicstore.Open(dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", dir).Msg("could not open magic store")
	}
	defer store.Close()

	if err := store.Save(&magicstore.MagicSet{Rook: rook, Bishop: bishop, Seed: *seed}); err != nil {
		log.Fatal().Err(err).Msg("could not save magic numbers")
	}
	log.Info().Str("dir", dir).Msg("magic numbers saved")
}

func printArray(name string, numbers [64]uint64) {
	fmt.Printf("var %s = [64]uint64{\n", name)
	for i := 0; i < 64; i += 4 {
		fmt.Printf("\t0x%016x, 0x%016x, 0x%016x, 0x%016x,\n",
			numbers[i], numbers[i+1], numbers[i+2], numbers[i+3])
	}
	fmt.Println("}")
}
