package shogi

// Precomputed attack patterns from each square. The non-sliding patterns are
// occupancy-independent; sliding pieces (rook, bishop, lance along its file)
// are ray-cast on demand against live occupancy. All tables are built once at
// package init and never written afterwards, so concurrent reads are safe.
var (
	kingAttackTable   [81]Bitboard
	goldAttackTable   [2][81]Bitboard
	silverAttackTable [2][81]Bitboard
	knightAttackTable [2][81]Bitboard
	lanceAttackTable  [2][81]Bitboard // full file ray, blockers ignored
	pawnAttackTable   [2][81]Bitboard

	// betweenTable[a][b] holds the squares strictly between a and b when they
	// share a rank, file or diagonal, and is empty otherwise.
	betweenTable [81][81]Bitboard

	fileTable [9]Bitboard
	rankTable [9]Bitboard
)

type direction struct{ df, dr int }

var orthogonalDirs = [4]direction{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
var diagonalDirs = [4]direction{{1, -1}, {1, 1}, {-1, 1}, {-1, -1}}

func init() {
	initAttackTables()
	initBetweenTable()
}

// forwardStep is the rank delta of a forward move: Black plays toward rank 8,
// White toward rank 0.
func forwardStep(c Color) int {
	if c == Black {
		return 1
	}
	return -1
}

func initAttackTables() {
	for f := 0; f < 9; f++ {
		for r := 0; r < 9; r++ {
			fileTable[f].Set(NewSquare(f, r))
			rankTable[r].Set(NewSquare(f, r))
		}
	}

	for sq := Square(0); sq < 81; sq++ {
		file, rank := sq.File(), sq.Rank()

		// King: every adjacent square clipped to the board.
		for df := -1; df <= 1; df++ {
			for dr := -1; dr <= 1; dr++ {
				if df == 0 && dr == 0 {
					continue
				}
				setIfOnBoard(&kingAttackTable[sq], file+df, rank+dr)
			}
		}

		for _, c := range []Color{Black, White} {
			fwd := forwardStep(c)

			// Gold: forward, both forward diagonals, sideways, backward.
			for _, d := range []direction{
				{0, fwd}, {1, fwd}, {-1, fwd}, {1, 0}, {-1, 0}, {0, -fwd},
			} {
				setIfOnBoard(&goldAttackTable[c][sq], file+d.df, rank+d.dr)
			}

			// Silver: forward and all four diagonals.
			for _, d := range []direction{
				{0, fwd}, {1, fwd}, {-1, fwd}, {1, -fwd}, {-1, -fwd},
			} {
				setIfOnBoard(&silverAttackTable[c][sq], file+d.df, rank+d.dr)
			}

			// Knight: two ranks forward, one file to either side.
			setIfOnBoard(&knightAttackTable[c][sq], file-1, rank+2*fwd)
			setIfOnBoard(&knightAttackTable[c][sq], file+1, rank+2*fwd)

			// Lance: the unblocked file ray toward the forward edge.
			for r := rank + fwd; r >= 0 && r < 9; r += fwd {
				lanceAttackTable[c][sq].Set(NewSquare(file, r))
			}

			// Pawn: one square forward.
			setIfOnBoard(&pawnAttackTable[c][sq], file, rank+fwd)
		}
	}
}

func setIfOnBoard(bb *Bitboard, file, rank int) {
	if file >= 0 && file < 9 && rank >= 0 && rank < 9 {
		bb.Set(NewSquare(file, rank))
	}
}

func initBetweenTable() {
	for a := Square(0); a < 81; a++ {
		for b := Square(0); b < 81; b++ {
			if a == b {
				continue
			}
			df := sign(b.File() - a.File())
			dr := sign(b.Rank() - a.Rank())
			aligned := a.File() == b.File() || a.Rank() == b.Rank() ||
				abs(a.File()-b.File()) == abs(a.Rank()-b.Rank())
			if !aligned {
				continue
			}
			f, r := a.File()+df, a.Rank()+dr
			for f != b.File() || r != b.Rank() {
				betweenTable[a][b].Set(NewSquare(f, r))
				f += df
				r += dr
			}
		}
	}
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// slidingAttacks ray-casts rook or bishop attacks from sq against the given
// occupancy. Each ray includes the first blocker and stops there.
func slidingAttacks(sq Square, occupied Bitboard, pt PieceType) Bitboard {
	var dirs []direction
	switch pt {
	case Rook:
		dirs = orthogonalDirs[:]
	case Bishop:
		dirs = diagonalDirs[:]
	default:
		return Bitboard{}
	}

	var attacks Bitboard
	for _, d := range dirs {
		f, r := sq.File()+d.df, sq.Rank()+d.dr
		for f >= 0 && f < 9 && r >= 0 && r < 9 {
			t := NewSquare(f, r)
			attacks.Set(t)
			if occupied.Test(t) {
				break
			}
			f += d.df
			r += d.dr
		}
	}
	return attacks
}

// lanceSlidingAttacks is the lance's forward ray cut at the first blocker,
// which is included.
func lanceSlidingAttacks(sq Square, occupied Bitboard, c Color) Bitboard {
	fwd := forwardStep(c)
	var attacks Bitboard
	file := sq.File()
	for r := sq.Rank() + fwd; r >= 0 && r < 9; r += fwd {
		t := NewSquare(file, r)
		attacks.Set(t)
		if occupied.Test(t) {
			break
		}
	}
	return attacks
}

// between returns the squares strictly between two aligned squares.
func between(a, b Square) Bitboard { return betweenTable[a][b] }

func alignedRook(a, b Square) bool {
	return a.File() == b.File() || a.Rank() == b.Rank()
}

func alignedBishop(a, b Square) bool {
	df := abs(a.File() - b.File())
	dr := abs(a.Rank() - b.Rank())
	return df == dr && df != 0
}
