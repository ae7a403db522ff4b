package shogi

import "fmt"

// Position is a full game state: board, hand reserves, side to move, ply, the
// running Zobrist hash and the hash history for repetition detection.
//
// After construction a position changes only through ApplyMove, which keeps
// the hash incrementally in sync; search explores alternatives by cloning
// rather than mutating and undoing. Test and setup code that places pieces
// directly on the Board must call RecomputeHash before applying moves.
type Position struct {
	Board Board

	// Hands counts reserve pieces per side in the order
	// Rook, Bishop, Gold, Silver, Knight, Lance, Pawn.
	Hands [2][7]uint8

	SideToMove Color
	Ply        int
	Hash       uint64

	// History holds the hash of every prior position, appended before each
	// move is applied.
	History []uint64
}

// NewPosition returns an empty position with Black to move.
func NewPosition() *Position {
	return &Position{}
}

// StartPosition returns the standard starting layout.
func StartPosition() *Position {
	pos := NewPosition()

	for file := 0; file < 9; file++ {
		pos.Board.PutPiece(NewSquare(file, 2), NewPiece(Pawn, Black))
		pos.Board.PutPiece(NewSquare(file, 6), NewPiece(Pawn, White))
	}

	backRank := []PieceType{Lance, Knight, Silver, Gold, King, Gold, Silver, Knight, Lance}
	for file, pt := range backRank {
		pos.Board.PutPiece(NewSquare(file, 0), NewPiece(pt, Black))
		pos.Board.PutPiece(NewSquare(file, 8), NewPiece(pt, White))
	}

	pos.Board.PutPiece(NewSquare(7, 1), NewPiece(Rook, Black))
	pos.Board.PutPiece(NewSquare(1, 7), NewPiece(Rook, White))
	pos.Board.PutPiece(NewSquare(1, 1), NewPiece(Bishop, Black))
	pos.Board.PutPiece(NewSquare(7, 7), NewPiece(Bishop, White))

	pos.RecomputeHash()
	return pos
}

// RecomputeHash resets the running hash from the full position. Only setup
// code needs this; ApplyMove maintains the hash incrementally.
func (pos *Position) RecomputeHash() {
	pos.Hash = pos.ComputeHash()
}

// Clone returns a deep copy sharing no mutable state with the original.
func (pos *Position) Clone() *Position {
	next := *pos
	next.History = make([]uint64, len(pos.History))
	copy(next.History, pos.History)
	return &next
}

// IsRepetition reports four-fold repetition: the current hash already occurred
// at least three times in the history.
func (pos *Position) IsRepetition() bool {
	if len(pos.History) < 4 {
		return false
	}
	count := 0
	for _, h := range pos.History {
		if h == pos.Hash {
			count++
			if count >= 3 {
				return true
			}
		}
	}
	return false
}

// ApplyMove plays one generator-produced move: it updates the board and hands,
// XORs the incremental hash terms, pushes the pre-move hash onto the history,
// flips the side to move and advances the ply.
//
// Moves must come from the move generator. An impossible transition, such as
// capturing a king or dropping a piece that is not in hand, indicates an
// upstream legality defect and panics.
func (pos *Position) ApplyMove(m Move) {
	pos.History = append(pos.History, pos.Hash)
	us := pos.SideToMove

	if m.IsDrop() {
		pt := m.DropPieceType()
		to := m.To()
		idx := pt.HandIndex()
		if pos.Hands[us][idx] == 0 {
			panic(fmt.Sprintf("shogi: drop %v with empty hand", m))
		}

		p := NewPiece(pt, us)
		pos.Board.PutPiece(to, p)
		old := int(pos.Hands[us][idx])
		pos.Hands[us][idx]--

		pos.Hash ^= pieceSquareHash(p, to)
		pos.Hash ^= handHash(us, pt, old)
		pos.Hash ^= handHash(us, pt, old-1)
	} else {
		from, to := m.From(), m.To()
		p, ok := pos.Board.RemovePiece(from)
		if !ok {
			panic(fmt.Sprintf("shogi: move %v from empty square", m))
		}
		pos.Hash ^= pieceSquareHash(p, from)

		if captured, occupied := pos.Board.PieceOn(to); occupied {
			if captured.Type == King {
				panic(fmt.Sprintf("shogi: move %v captures a king", m))
			}
			pos.Board.RemovePiece(to)
			pos.Hash ^= pieceSquareHash(captured, to)

			// Captures always enter the hand in unpromoted form.
			idx := captured.Type.HandIndex()
			old := int(pos.Hands[us][idx])
			if old >= maxHandCount {
				panic(fmt.Sprintf("shogi: hand overflow for %v", captured.Type))
			}
			pos.Hash ^= handHash(us, captured.Type, old)
			pos.Hands[us][idx]++
			pos.Hash ^= handHash(us, captured.Type, old+1)
		}

		if m.IsPromotion() {
			p.Promoted = true
		}
		pos.Board.PutPiece(to, p)
		pos.Hash ^= pieceSquareHash(p, to)
	}

	pos.SideToMove = us.Opposite()
	pos.Hash ^= zobristSide
	pos.Ply++
}
