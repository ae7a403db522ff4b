package shogi

import "fmt"

// Move packs one move into 16 bits:
//
//	bits 0-6   destination square (0-80)
//	bits 7-13  source square (0-80) or drop piece code (81-87)
//	bit 14     promotion flag
//	bit 15     drop flag
//
// Moves are immutable values produced by the move generator; applying a move
// built any other way is unsafe.
type Move uint16

// NullMove is the zero value and never a legal move.
const NullMove Move = 0

const (
	moveToMask     = 0x7F
	moveFromShift  = 7
	movePromoteBit = 1 << 14
	moveDropBit    = 1 << 15

	// Drop piece types are encoded in the source field past the last valid
	// square, in hand order (Rook..Pawn), so 81 means a rook drop.
	dropCodeBase = 81
)

// NewMove builds a normal board move.
func NewMove(from, to Square, promote bool) Move {
	m := Move(to&moveToMask) | Move(from&moveToMask)<<moveFromShift
	if promote {
		m |= movePromoteBit
	}
	return m
}

// NewDrop builds a drop move. King is never a valid drop payload.
func NewDrop(pt PieceType, to Square) Move {
	if pt == King || pt > Pawn {
		panic("shogi: invalid drop piece type")
	}
	return Move(to&moveToMask) | Move(dropCodeBase+pt.HandIndex())<<moveFromShift | moveDropBit
}

// IsNull reports whether this is the null move.
func (m Move) IsNull() bool { return m == NullMove }

// IsDrop reports whether the move drops a piece from hand.
func (m Move) IsDrop() bool { return m&moveDropBit != 0 }

// IsPromotion reports whether the move promotes the moving piece.
func (m Move) IsPromotion() bool { return m&movePromoteBit != 0 }

// To returns the destination square.
func (m Move) To() Square { return Square(m & moveToMask) }

// From returns the source square, or NoSquare for drops.
func (m Move) From() Square {
	if m.IsDrop() {
		return NoSquare
	}
	return Square(m>>moveFromShift) & moveToMask
}

// DropPieceType decodes the dropped piece type. It panics on a malformed
// encoding: that signals a corrupted move value, not a user error.
func (m Move) DropPieceType() PieceType {
	code := int(m>>moveFromShift&moveToMask) - dropCodeBase
	if !m.IsDrop() || code < 0 || code > Pawn.HandIndex() {
		panic(fmt.Sprintf("shogi: malformed drop move %#04x", uint16(m)))
	}
	return PieceType(code + 1)
}

// String renders the move in coordinate notation: "7g7f", "7c7b+" for a
// promotion, "P*5e" for a drop.
func (m Move) String() string {
	if m.IsNull() {
		return "null"
	}
	if m.IsDrop() {
		return m.DropPieceType().String() + "*" + m.To().String()
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += "+"
	}
	return s
}

// MoveList accumulates generated moves. The backing slice is pre-sized for a
// typical middlegame position so generation normally never reallocates.
type MoveList struct {
	moves []Move
}

// NewMoveList returns an empty list with default capacity.
func NewMoveList() *MoveList {
	return &MoveList{moves: make([]Move, 0, 128)}
}

// Push appends one move.
func (l *MoveList) Push(m Move) { l.moves = append(l.moves, m) }

// Len returns the number of moves.
func (l *MoveList) Len() int { return len(l.moves) }

// Clear empties the list, keeping its capacity.
func (l *MoveList) Clear() { l.moves = l.moves[:0] }

// Moves returns the backing slice; it is invalidated by the next Clear.
func (l *MoveList) Moves() []Move { return l.moves }
