package movegen

import (
	"fmt"

	"github.com/tylersaunders/lark/internal/board"
)

// Exact sizes of the flat slider attack tables: the sum over all 64 squares
// of the number of blocker permutations for that square.
const (
	RookTableSize   = 102_400
	BishopTableSize = 5_248
)

// DefaultRookMagics are precomputed rook magic numbers, one per square.
// They were found with SearchMagics and are baked in so that constructing a
// Generator does not have to search at start-up.
var DefaultRookMagics = [64]uint64{
	0x0780008c40022010, 0x0600102082014102, 0x0080100020008028, 0xe080100204080080,
	0x0300110002080054, 0x8200020008500104, 0x2400030082043008, 0x0080010000582080,
	0x0c00800080e44000, 0x0000402000401000, 0x0a21002001024290, 0x4000801001800800,
	0x8400800800802400, 0x0402002a00080490, 0x40c1000100020004, 0x8806000200804401,
	0x0030208010824004, 0x100281004000e100, 0x8520888010006000, 0x4000090020500103,
	0x4500808028000401, 0x0241010024003816, 0x8000040001021008, 0x0240720002841141,
	0x0043014500208000, 0x00200020401000c2, 0x2083100880200082, 0x0010210100085004,
	0x0051000500080010, 0xa042001200506408, 0x8000610400104228, 0xa20404020008c081,
	0x000080c008800120, 0x169010a000400040, 0x3620008824801000, 0x0440801000804800,
	0x0002000822001004, 0x140500040100080a, 0x8240802100800200, 0x0004004082000421,
	0x5000410080010028, 0x401000402000c000, 0x2802200500130040, 0x2000890210010021,
	0x01001e00124e0018, 0x430900b400030018, 0x0082008001004040, 0x0208088241020004,
	0x0403008008402900, 0x0000c01000200040, 0x0000841002200480, 0x620100a810022100,
	0x0000040048008080, 0x8102440002008080, 0x3804088a45100400, 0x0080800100194080,
	0x0401250080001841, 0xc124d20084410022, 0x4822200019011041, 0x84005060400a020a,
	0x8501004800240211, 0x0405000400680219, 0x0000500304882244, 0x0140440da0c10082,
}

// DefaultBishopMagics are precomputed bishop magic numbers, one per square.
var DefaultBishopMagics = [64]uint64{
	0x0022b00a08010022, 0x4808582800802000, 0x1864480481100208, 0x0014050612222044,
	0x1402021001000020, 0x0301100a10006040, 0x0000410410410600, 0x1402002084042040,
	0x2000400848008080, 0x1040844104030201, 0x0410188202420002, 0x0020040402980000,
	0x6000040420000084, 0x208202080404200c, 0x0022940402021100, 0x8002258201100a09,
	0x00100240023e0400, 0x0010044802208408, 0x9018001008441020, 0x0001001024008000,
	0x2324001b80a000a1, 0x4c02010501430400, 0x00010074480210a1, 0x1042000100921149,
	0x200486211020080c, 0x0110880482021400, 0x000804012a003200, 0x000a012002008200,
	0x0010840000802002, 0x0188020040404214, 0x000101002414014a, 0x0410408e80c20811,
	0x4004204800200601, 0x4902a218a5202800, 0x1000c40a00900620, 0x0001020080080080,
	0x101c028200040050, 0x6041808100160102, 0x0204440080425800, 0x0107040020008210,
	0x14240a2010808402, 0x0004420805006010, 0x10284c0048044400, 0x0004309414001800,
	0x0308041008800400, 0x2004204400484900, 0x6248020830400221, 0x0048081140800040,
	0x000402082c240088, 0x0000410805113080, 0x0002031080904008, 0x2c80210084140154,
	0x2010935820884280, 0x2402400801244004, 0x0008100102040000, 0x1104440802046000,
	0x0002402804022006, 0x0808104230900800, 0x00c001002a011002, 0x000200008a420208,
	0x4040020811020600, 0x0002814044080080, 0x08a0041002284112, 0x000a100208104080,
}

// sliderMask returns the relevant occupancy mask for the slider on sq.
// Only rooks and bishops have magic tables; any other piece is a programming
// error.
func sliderMask(pt board.PieceType, sq board.Square) board.Bitboard {
	switch pt {
	case board.Rook:
		return rookMask(sq)
	case board.Bishop:
		return bishopMask(sq)
	default:
		panic(fmt.Sprintf("not a magic slider: %v", pt))
	}
}

// sliderAttacksSlow computes the slider attack set by ray walking.
func sliderAttacksSlow(pt board.PieceType, sq board.Square, blockers board.Bitboard) board.Bitboard {
	switch pt {
	case board.Rook:
		return rookAttacksSlow(sq, blockers)
	case board.Bishop:
		return bishopAttacksSlow(sq, blockers)
	default:
		panic(fmt.Sprintf("not a magic slider: %v", pt))
	}
}

func sliderTableSize(pt board.PieceType) int {
	if pt == board.Rook {
		return RookTableSize
	}
	return BishopTableSize
}

// buildSliderTable fills a flat attack table from the given per-square magic
// numbers. The numbers must form a perfect hash; any collision, or any index
// escaping its square's region, means the numbers do not belong to these
// masks and the table cannot be trusted, so an error is returned.
func buildSliderTable(pt board.PieceType, numbers [64]uint64) ([]board.Bitboard, [64]Magic, error) {
	table := make([]board.Bitboard, sliderTableSize(pt))
	var magics [64]Magic

	offset := uint64(0)
	for sq := board.A1; sq <= board.H8; sq++ {
		mask := sliderMask(pt, sq)
		bits := mask.PopCount()
		permutations := uint64(1) << bits
		end := offset + permutations - 1

		magic := Magic{
			Mask:   mask,
			Shift:  uint8(64 - bits),
			Offset: offset,
			Number: numbers[sq],
		}

		for _, blockers := range blockerSubsets(mask) {
			index := magic.Index(blockers)
			if uint64(index) < offset || uint64(index) > end {
				return nil, magics, fmt.Errorf("magic 0x%016x for %v on %s: index %d outside region [%d, %d]",
					numbers[sq], pt, sq, index, offset, end)
			}
			if table[index] != board.Empty {
				return nil, magics, fmt.Errorf("magic 0x%016x for %v on %s: collision at index %d",
					numbers[sq], pt, sq, index)
			}
			table[index] = sliderAttacksSlow(pt, sq, blockers)
		}

		magics[sq] = magic
		offset += permutations
	}

	if offset != uint64(len(table)) {
		return nil, magics, fmt.Errorf("%v table only filled %d of %d entries", pt, offset, len(table))
	}

	return table, magics, nil
}
