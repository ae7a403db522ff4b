package engine

import (
	sg "github.com/SH11235/shogi/shogi"
)

// =============================================================================
// MATERIAL VALUES
// =============================================================================

// PieceValues is indexed by PieceType. The king carries no material value; a
// lost king ends the game before it could be counted.
var PieceValues = [sg.NumPieceTypes]int32{0, 1000, 800, 450, 400, 350, 300, 100}

// PromotionBonus is the extra value a promoted piece gains over its base
// type. Gold cannot promote and stays at zero.
var PromotionBonus = [sg.NumPieceTypes]int32{0, 200, 200, 0, 50, 100, 100, 300}

// KingSafetyBonus rewards a king that has not left its three home ranks.
var KingSafetyBonus int32 = 50

// Evaluate scores the position from the side to move's perspective: board and
// hand material plus promotion bonuses, and the home-camp king bonus for the
// mover only. Captured pieces count at their base value.
func Evaluate(pos *sg.Position) int32 {
	us := pos.SideToMove
	them := us.Opposite()

	score := materialFor(pos, us) - materialFor(pos, them)
	if kingInCamp(pos, us) {
		score += KingSafetyBonus
	}
	return score
}

func materialFor(pos *sg.Position, c sg.Color) int32 {
	promoted := pos.Board.PromotedBB()

	var total int32
	for pt := sg.King; pt <= sg.Pawn; pt++ {
		bb := pos.Board.PieceBB(c, pt)
		total += int32(bb.Count()) * PieceValues[pt]
		total += int32(bb.And(promoted).Count()) * PromotionBonus[pt]
	}
	for pt := sg.Rook; pt <= sg.Pawn; pt++ {
		total += int32(pos.Hands[c][pt.HandIndex()]) * PieceValues[pt]
	}
	return total
}

func kingInCamp(pos *sg.Position, c sg.Color) bool {
	kingSq := pos.Board.KingSquare(c)
	if kingSq == sg.NoSquare {
		return false
	}
	if c == sg.Black {
		return kingSq.Rank() <= 2
	}
	return kingSq.Rank() >= 6
}
