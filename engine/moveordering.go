package engine

import (
	"golang.org/x/exp/slices"

	sg "github.com/SH11235/shogi/shogi"
)

// Capture scores sit above this offset so that any capture is tried before
// every quiet move.
const captureOffset int32 = 10000

// A small nudge for promotions among otherwise equal moves.
const promotionNudge int32 = 5

// orderMoves sorts captures by victim value ahead of quiet moves. The stable
// sort keeps the generator's deterministic order as the tie break.
func orderMoves(pos *sg.Position, moves []sg.Move) {
	slices.SortStableFunc(moves, func(a, b sg.Move) bool {
		return moveScore(pos, a) > moveScore(pos, b)
	})
}

func moveScore(pos *sg.Position, m sg.Move) int32 {
	var score int32
	if !m.IsDrop() {
		if victim, ok := pos.Board.PieceOn(m.To()); ok {
			score = captureOffset + PieceValues[victim.Type]
			if victim.Promoted {
				score += PromotionBonus[victim.Type]
			}
		}
		if m.IsPromotion() {
			score += promotionNudge
		}
	}
	return score
}
