package shogi

import "math/rand"

// Zobrist tables: independent random keys for each piece kind on each square,
// for each hand count, and a single key XORed in while White is to move.
// The seed is fixed so position hashes are stable across runs and can be
// persisted externally.
var (
	zobristPiece [2][NumPieceKinds][81]uint64
	zobristHand  [2][7][maxHandCount + 1]uint64
	zobristSide  uint64
)

// maxHandCount clamps hand-count hashing; 18 pawns is the physical maximum
// for any piece type.
const maxHandCount = 18

func init() {
	initZobrist()
}

func initZobrist() {
	// Fixed seed for reproducible hashes.
	rnd := rand.New(rand.NewSource(0x1234567890ABCDEF))

	for c := 0; c < 2; c++ {
		for kind := 0; kind < NumPieceKinds; kind++ {
			for sq := 0; sq < 81; sq++ {
				zobristPiece[c][kind][sq] = rnd.Uint64()
			}
		}
	}
	for c := 0; c < 2; c++ {
		for pt := 0; pt < 7; pt++ {
			for count := 0; count <= maxHandCount; count++ {
				zobristHand[c][pt][count] = rnd.Uint64()
			}
		}
	}
	zobristSide = rnd.Uint64()
}

// pieceSquareHash returns the key for one piece on one square.
func pieceSquareHash(p Piece, sq Square) uint64 {
	return zobristPiece[p.Color][p.Index()][sq]
}

// handHash returns the key for holding count pieces of one type. A count of
// zero contributes nothing, so incremental updates can XOR old and new counts
// unconditionally.
func handHash(c Color, pt PieceType, count int) uint64 {
	if count == 0 {
		return 0
	}
	if count > maxHandCount {
		count = maxHandCount
	}
	return zobristHand[c][pt.HandIndex()][count]
}

// sideHash returns the side-to-move term: zero for Black, the side key for
// White.
func sideHash(c Color) uint64 {
	if c == White {
		return zobristSide
	}
	return 0
}

// ComputeHash recomputes the full Zobrist hash of the position. It is used at
// construction and as a cross-check; steady-state updates are incremental.
func (pos *Position) ComputeHash() uint64 {
	var hash uint64
	occ := pos.Board.AllOccupancy()
	for !occ.IsEmpty() {
		sq := occ.PopLSB()
		p, _ := pos.Board.PieceOn(sq)
		hash ^= pieceSquareHash(p, sq)
	}
	for c := Black; c <= White; c++ {
		for pt := Rook; pt <= Pawn; pt++ {
			if n := pos.Hands[c][pt.HandIndex()]; n > 0 {
				hash ^= handHash(c, pt, int(n))
			}
		}
	}
	hash ^= sideHash(pos.SideToMove)
	return hash
}
