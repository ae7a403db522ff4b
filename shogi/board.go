package shogi

import "math/bits"

// Color identifies a side. Black (sente) moves first and plays down the board
// toward rank 8; White (gote) plays toward rank 0.
type Color uint8

const (
	Black Color = 0
	White Color = 1
)

// Opposite returns the other side.
func (c Color) Opposite() Color { return c ^ 1 }

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// PieceType is the base kind of a piece. Promotion is tracked separately on
// Piece, so a promoted pawn still lives in the Pawn bucket.
type PieceType uint8

const (
	King PieceType = iota
	Rook
	Bishop
	Gold
	Silver
	Knight
	Lance
	Pawn

	NumPieceTypes = 8
)

// CanPromote reports whether the base kind has a promoted form.
func (pt PieceType) CanPromote() bool {
	switch pt {
	case Rook, Bishop, Silver, Knight, Lance, Pawn:
		return true
	}
	return false
}

// HandIndex maps a droppable piece type to its slot in the hand arrays,
// in the fixed order Rook, Bishop, Gold, Silver, Knight, Lance, Pawn.
// King has no hand slot; the caller must not pass it.
func (pt PieceType) HandIndex() int { return int(pt) - 1 }

func (pt PieceType) String() string {
	switch pt {
	case King:
		return "K"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Gold:
		return "G"
	case Silver:
		return "S"
	case Knight:
		return "N"
	case Lance:
		return "L"
	case Pawn:
		return "P"
	}
	return "?"
}

// Piece is a concrete piece: base kind, owner and promotion status.
type Piece struct {
	Type     PieceType
	Color    Color
	Promoted bool
}

// NewPiece returns an unpromoted piece.
func NewPiece(pt PieceType, c Color) Piece {
	return Piece{Type: pt, Color: c}
}

// PromotedPiece returns the promoted form of a promotable kind.
func PromotedPiece(pt PieceType, c Color) Piece {
	return Piece{Type: pt, Color: c, Promoted: true}
}

// NumPieceKinds counts the distinct movement kinds: 8 base plus the 6
// promoted forms.
const NumPieceKinds = 14

// Buckets 8-13 for the promoted forms, in base-type order.
var promotedKindIndex = [NumPieceTypes]int{
	Rook: 8, Bishop: 9, Silver: 10, Knight: 11, Lance: 12, Pawn: 13,
}

// Index returns the piece-kind bucket in [0,NumPieceKinds): base kinds occupy
// 0-7 and promoted forms of the six promotable kinds occupy 8-13.
func (p Piece) Index() int {
	if p.Promoted && p.Type.CanPromote() {
		return promotedKindIndex[p.Type]
	}
	return int(p.Type)
}

func (p Piece) String() string {
	s := p.Type.String()
	if p.Promoted {
		s = "+" + s
	}
	return s
}

// Square is a board coordinate in [0,81): file = sq%9 (0 is the 9-file edge on
// Black's right), rank = sq/9 (0 is Black's back rank).
type Square int

// NoSquare marks the absence of a square, e.g. the source of a drop.
const NoSquare Square = -1

// NewSquare builds a square from file and rank, both in [0,9).
func NewSquare(file, rank int) Square { return Square(rank*9 + file) }

// File returns the file in [0,9).
func (sq Square) File() int { return int(sq) % 9 }

// Rank returns the rank in [0,9).
func (sq Square) Rank() int { return int(sq) / 9 }

// Flip mirrors the square to the opponent's perspective.
func (sq Square) Flip() Square { return 80 - sq }

// OnBoard reports whether the square is a real board coordinate.
func (sq Square) OnBoard() bool { return sq >= 0 && sq < 81 }

// String renders the square in the usual shogi coordinates, e.g. "5e" for the
// center square: files count 9..1 right to left, ranks a..i top to bottom.
func (sq Square) String() string {
	return string([]byte{'9' - byte(sq.File()), 'a' + byte(sq.Rank())})
}

// ==========================
// Bitboard
// ==========================

// Bitboard is an 81-square set. Squares 0-63 live in lo, squares 64-80 in the
// low 17 bits of hi; the remaining hi bits must stay zero.
type Bitboard struct {
	lo, hi uint64
}

const hiMask = (uint64(1) << 17) - 1

// EmptyBB is the empty square set.
var EmptyBB = Bitboard{}

// AllBB has every board square set.
var AllBB = Bitboard{lo: ^uint64(0), hi: hiMask}

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	if sq < 64 {
		return Bitboard{lo: 1 << uint(sq)}
	}
	return Bitboard{hi: 1 << uint(sq-64)}
}

// Set adds a square to the set.
func (b *Bitboard) Set(sq Square) {
	if sq < 64 {
		b.lo |= 1 << uint(sq)
	} else {
		b.hi |= 1 << uint(sq-64)
	}
}

// Clear removes a square from the set.
func (b *Bitboard) Clear(sq Square) {
	if sq < 64 {
		b.lo &^= 1 << uint(sq)
	} else {
		b.hi &^= 1 << uint(sq-64)
	}
}

// Test reports whether a square is in the set.
func (b Bitboard) Test(sq Square) bool {
	if sq < 64 {
		return b.lo&(1<<uint(sq)) != 0
	}
	return b.hi&(1<<uint(sq-64)) != 0
}

// IsEmpty reports whether no square is set.
func (b Bitboard) IsEmpty() bool { return b.lo == 0 && b.hi == 0 }

// Count returns the number of set squares.
func (b Bitboard) Count() int {
	return bits.OnesCount64(b.lo) + bits.OnesCount64(b.hi)
}

// LSB returns the lowest set square, or NoSquare if the set is empty.
func (b Bitboard) LSB() Square {
	if b.lo != 0 {
		return Square(bits.TrailingZeros64(b.lo))
	}
	if b.hi != 0 {
		return Square(64 + bits.TrailingZeros64(b.hi))
	}
	return NoSquare
}

// PopLSB removes and returns the lowest set square, or NoSquare if empty.
func (b *Bitboard) PopLSB() Square {
	if b.lo != 0 {
		sq := Square(bits.TrailingZeros64(b.lo))
		b.lo &= b.lo - 1
		return sq
	}
	if b.hi != 0 {
		sq := Square(64 + bits.TrailingZeros64(b.hi))
		b.hi &= b.hi - 1
		return sq
	}
	return NoSquare
}

// Or returns the union of two sets.
func (b Bitboard) Or(o Bitboard) Bitboard { return Bitboard{b.lo | o.lo, b.hi | o.hi} }

// And returns the intersection of two sets.
func (b Bitboard) And(o Bitboard) Bitboard { return Bitboard{b.lo & o.lo, b.hi & o.hi} }

// AndNot returns the squares of b not present in o.
func (b Bitboard) AndNot(o Bitboard) Bitboard { return Bitboard{b.lo &^ o.lo, b.hi &^ o.hi} }

// Xor returns the symmetric difference of two sets.
func (b Bitboard) Xor(o Bitboard) Bitboard { return Bitboard{b.lo ^ o.lo, b.hi ^ o.hi} }

// Not returns the complement, re-masked so only the 81 board bits survive.
func (b Bitboard) Not() Bitboard { return Bitboard{^b.lo, ^b.hi & hiMask} }

// ==========================
// Board
// ==========================

// Board holds piece placement: per-(color,type) bitboards, occupancy caches,
// the promoted overlay and a per-square piece cache. All of them are updated
// together by PutPiece/RemovePiece and must never disagree.
type Board struct {
	pieces   [2][NumPieceTypes]Bitboard
	occupied [2]Bitboard
	all      Bitboard
	promoted Bitboard
	squares  [81]Piece
}

// PutPiece places a piece on an empty square, updating every cache.
func (b *Board) PutPiece(sq Square, p Piece) {
	ci := int(p.Color)
	b.pieces[ci][p.Type].Set(sq)
	b.occupied[ci].Set(sq)
	b.all.Set(sq)
	if p.Promoted {
		b.promoted.Set(sq)
	}
	b.squares[sq] = p
}

// RemovePiece removes and returns the piece on a square. The second return is
// false if the square was empty.
func (b *Board) RemovePiece(sq Square) (Piece, bool) {
	if !b.all.Test(sq) {
		return Piece{}, false
	}
	p := b.squares[sq]
	ci := int(p.Color)
	b.pieces[ci][p.Type].Clear(sq)
	b.occupied[ci].Clear(sq)
	b.all.Clear(sq)
	if p.Promoted {
		b.promoted.Clear(sq)
	}
	b.squares[sq] = Piece{}
	return p, true
}

// PieceOn returns the piece on a square, if any.
func (b *Board) PieceOn(sq Square) (Piece, bool) {
	if !b.all.Test(sq) {
		return Piece{}, false
	}
	return b.squares[sq], true
}

// KingSquare returns the square of the given side's king, or NoSquare.
func (b *Board) KingSquare(c Color) Square {
	return b.pieces[c][King].LSB()
}

// PieceBB returns the bitboard for one (color, type) bucket.
func (b *Board) PieceBB(c Color, pt PieceType) Bitboard { return b.pieces[c][pt] }

// ColorOccupancy returns the occupancy of one side.
func (b *Board) ColorOccupancy(c Color) Bitboard { return b.occupied[c] }

// AllOccupancy returns the union occupancy of both sides.
func (b *Board) AllOccupancy() Bitboard { return b.all }

// PromotedBB returns the promoted-piece overlay.
func (b *Board) PromotedBB() Bitboard { return b.promoted }

// Validate cross-checks the per-square cache against every bitboard. It is a
// test and debugging aid, not part of the hot path.
func (b *Board) Validate() bool {
	var pieces [2][NumPieceTypes]Bitboard
	var occupied [2]Bitboard
	var all, promoted Bitboard
	for sq := Square(0); sq < 81; sq++ {
		if !b.all.Test(sq) {
			continue
		}
		p := b.squares[sq]
		pieces[p.Color][p.Type].Set(sq)
		occupied[p.Color].Set(sq)
		all.Set(sq)
		if p.Promoted {
			promoted.Set(sq)
		}
	}
	if pieces != b.pieces || occupied != b.occupied {
		return false
	}
	return all == b.all && promoted == b.promoted
}
