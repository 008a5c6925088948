package movegen

import (
	"encoding/binary"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tylersaunders/lark/internal/board"
	"lukechampine.com/frand"
)

// DefaultMaxAttempts bounds the number of candidate numbers tried per square
// before a search gives up. Magics for any square are normally found within
// a few hundred thousand attempts, so hitting this cap means the RNG or the
// masks are broken.
const DefaultMaxAttempts = 100_000_000

// SearchOptions controls a magic number search.
type SearchOptions struct {
	// Seed makes the search deterministic when nonzero. With a zero seed
	// the generator is keyed from the system entropy source.
	Seed uint64

	// MaxAttempts caps the candidates tried per square. Zero means
	// DefaultMaxAttempts.
	MaxAttempts int
}

func newRNG(seed uint64) *frand.RNG {
	if seed == 0 {
		return frand.New()
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	return frand.NewCustom(key[:], 1024, 12)
}

func randUint64(rng *frand.RNG) uint64 {
	var buf [8]byte
	rng.Read(buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}

// searchSliderTable finds a working magic number for every square and fills
// the attack table along the way. Candidates are drawn as the AND of three
// random numbers, which biases them toward sparse bit patterns; sparse
// multipliers are far more likely to hash without collisions.
func searchSliderTable(pt board.PieceType, opts SearchOptions) ([]board.Bitboard, [64]Magic, [64]uint64, error) {
	var magics [64]Magic
	var numbers [64]uint64

	if pt != board.Rook && pt != board.Bishop {
		return nil, magics, numbers, fmt.Errorf("cannot search magics for %v: only rooks and bishops have magic tables", pt)
	}

	maxAttempts := opts.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = DefaultMaxAttempts
	}

	rng := newRNG(opts.Seed)
	table := make([]board.Bitboard, sliderTableSize(pt))

	offset := uint64(0)
	for sq := board.A1; sq <= board.H8; sq++ {
		mask := sliderMask(pt, sq)
		bits := mask.PopCount()
		permutations := uint64(1) << bits
		end := offset + permutations - 1

		subsets := blockerSubsets(mask)
		attacks := make([]board.Bitboard, len(subsets))
		for i, blockers := range subsets {
			attacks[i] = sliderAttacksSlow(pt, sq, blockers)
		}

		magic := Magic{
			Mask:   mask,
			Shift:  uint8(64 - bits),
			Offset: offset,
		}

		found := false
		attempts := 0
		for !found {
			if attempts >= maxAttempts {
				return nil, magics, numbers, fmt.Errorf("no %v magic for %s after %d attempts", pt, sq, attempts)
			}
			attempts++
			found = true

			magic.Number = randUint64(rng) & randUint64(rng) & randUint64(rng)

			for i, blockers := range subsets {
				index := magic.Index(blockers)
				if uint64(index) < offset || uint64(index) > end {
					return nil, magics, numbers, fmt.Errorf("%v magic search on %s: index %d outside region [%d, %d]",
						pt, sq, index, offset, end)
				}

				if table[index] == board.Empty {
					table[index] = attacks[i]
					continue
				}

				// Collision: wipe this square's region and try the
				// next candidate.
				for wipe := offset; wipe <= end; wipe++ {
					table[wipe] = board.Empty
				}
				found = false
				break
			}
		}

		log.Debug().
			Str("piece", pt.String()).
			Str("square", sq.String()).
			Str("magic", fmt.Sprintf("0x%016x", magic.Number)).
			Uint64("offset", offset).
			Uint64("end", end).
			Int("attempts", attempts).
			Msg("found magic")

		magics[sq] = magic
		numbers[sq] = magic.Number
		offset += permutations
	}

	if offset != uint64(len(table)) {
		return nil, magics, numbers, fmt.Errorf("%v table only filled %d of %d entries", pt, offset, len(table))
	}

	return table, magics, numbers, nil
}
