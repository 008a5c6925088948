package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tylersaunders/lark/internal/board"
	"github.com/tylersaunders/lark/internal/eval"
	"github.com/tylersaunders/lark/internal/movegen"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "position to load, in FEN")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatal().Err(err).Str("fen", *fen).Msg("could not parse position")
	}

	gen := movegen.New()

	fmt.Print(pos)
	fmt.Printf("Evaluation: %d\n\n", eval.Evaluate(pos))

	moves := gen.GenerateMoves(pos, nil)
	fmt.Printf("Possible moves for %s (%d):\n", pos.SideToMove, len(moves))
	for _, mv := range moves {
		fmt.Printf("  %s\n", mv)
	}
}
