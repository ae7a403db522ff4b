package shogi

// MoveGen enumerates the strictly legal moves of a single position. The
// constructor computes the checker set and pin rays once; GenerateAll then
// walks every piece and hand reserve. An instance owns private scratch state
// and must not be shared across goroutines.
type MoveGen struct {
	pos      *Position
	moves    *MoveList
	kingSq   Square
	checkers Bitboard
	pinned   Bitboard
	pinRays  [81]Bitboard
}

// NewMoveGen builds a generator for the side to move. A kingless position
// cannot be queried for moves and panics.
func NewMoveGen(pos *Position) *MoveGen {
	kingSq := pos.Board.KingSquare(pos.SideToMove)
	if kingSq == NoSquare {
		panic("shogi: move generation for a kingless position")
	}
	g := &MoveGen{pos: pos, moves: NewMoveList(), kingSq: kingSq}
	g.findCheckersAndPins()
	return g
}

// Checkers returns the enemy pieces currently checking the mover's king.
func (g *MoveGen) Checkers() Bitboard { return g.checkers }

// InCheck reports whether the mover's king is attacked.
func (g *MoveGen) InCheck() bool { return !g.checkers.IsEmpty() }

// GenerateAll returns every legal move. The returned slice is owned by the
// generator and is invalidated by the next GenerateAll call.
func (g *MoveGen) GenerateAll() []Move {
	g.moves.Clear()
	us := g.pos.SideToMove
	board := &g.pos.Board

	// Double check: nothing can block or capture two checkers at once.
	if g.checkers.Count() > 1 {
		g.genKingMoves(g.kingSq)
		return g.moves.Moves()
	}

	for pt := King; pt <= Pawn; pt++ {
		pieces := board.PieceBB(us, pt)
		for !pieces.IsEmpty() {
			from := pieces.PopLSB()
			promoted := board.PromotedBB().Test(from)
			switch pt {
			case King:
				g.genKingMoves(from)
			case Rook, Bishop:
				g.genSlidingMoves(from, pt, promoted)
			case Gold:
				g.genGoldMoves(from)
			case Silver:
				if promoted {
					g.genGoldMoves(from)
				} else {
					g.genSilverMoves(from)
				}
			case Knight:
				if promoted {
					g.genGoldMoves(from)
				} else {
					g.genKnightMoves(from)
				}
			case Lance:
				if promoted {
					g.genGoldMoves(from)
				} else {
					g.genLanceMoves(from)
				}
			case Pawn:
				if promoted {
					g.genGoldMoves(from)
				} else {
					g.genPawnMoves(from)
				}
			}
		}
	}

	// Drops cannot block a check here: while in check only evasions above
	// apply, and blocking drops are not generated.
	if !g.InCheck() {
		g.genDropMoves()
	}

	return g.moves.Moves()
}

// findCheckersAndPins fills the checker set and, for each pinned piece, the
// ray it is restricted to (including the pinning piece's square).
//
// Non-sliding checkers are found by attack-pattern symmetry: a piece of color
// c attacks square s exactly when it sits in the pattern of the opposite
// color projected from s.
func (g *MoveGen) findCheckersAndPins() {
	us := g.pos.SideToMove
	them := us.Opposite()
	board := &g.pos.Board
	kingSq := g.kingSq
	promoted := board.PromotedBB()
	ourPieces := board.ColorOccupancy(us)

	pawns := board.PieceBB(them, Pawn)
	knights := board.PieceBB(them, Knight)
	silvers := board.PieceBB(them, Silver)
	lances := board.PieceBB(them, Lance)
	rooks := board.PieceBB(them, Rook)
	bishops := board.PieceBB(them, Bishop)

	g.checkers = g.checkers.Or(pawns.AndNot(promoted).And(pawnAttackTable[us][kingSq]))
	g.checkers = g.checkers.Or(knights.AndNot(promoted).And(knightAttackTable[us][kingSq]))
	g.checkers = g.checkers.Or(silvers.AndNot(promoted).And(silverAttackTable[us][kingSq]))

	goldMovers := board.PieceBB(them, Gold).
		Or(promoted.And(silvers.Or(knights).Or(lances).Or(pawns)))
	g.checkers = g.checkers.Or(goldMovers.And(goldAttackTable[us][kingSq]))

	// Dragons and horses add a king-step ring to their slides.
	kingRing := kingAttackTable[kingSq]
	g.checkers = g.checkers.Or(rooks.And(promoted).And(kingRing))
	g.checkers = g.checkers.Or(bishops.And(promoted).And(kingRing))

	// Unpromoted lances check or pin along their forward file.
	for bb := lances.AndNot(promoted); !bb.IsEmpty(); {
		lanceSq := bb.PopLSB()
		if !lanceAttackTable[them][lanceSq].Test(kingSq) {
			continue
		}
		g.addSliderCheckOrPin(lanceSq, kingSq, ourPieces)
	}

	// Rooks and bishops (promoted or not) check or pin along their slide
	// lines.
	for bb := rooks; !bb.IsEmpty(); {
		rookSq := bb.PopLSB()
		if alignedRook(rookSq, kingSq) {
			g.addSliderCheckOrPin(rookSq, kingSq, ourPieces)
		}
	}
	for bb := bishops; !bb.IsEmpty(); {
		bishopSq := bb.PopLSB()
		if alignedBishop(bishopSq, kingSq) {
			g.addSliderCheckOrPin(bishopSq, kingSq, ourPieces)
		}
	}
}

// addSliderCheckOrPin classifies one aligned slider: no blocker between it and
// the king means check, exactly one own-side blocker means that piece is
// pinned to the line.
func (g *MoveGen) addSliderCheckOrPin(attackerSq, kingSq Square, ourPieces Bitboard) {
	blockers := between(attackerSq, kingSq).And(g.pos.Board.AllOccupancy())
	switch blockers.Count() {
	case 0:
		g.checkers.Set(attackerSq)
	case 1:
		blockerSq := blockers.LSB()
		if ourPieces.Test(blockerSq) {
			g.pinned.Set(blockerSq)
			g.pinRays[blockerSq] = between(attackerSq, kingSq).Or(SquareBB(attackerSq))
		}
	}
}

// restrict narrows a piece's candidate destinations to the legal ones: under
// a single check only the checking line or the checker itself, along the pin
// ray for a pinned piece, and never the opposing king's square.
func (g *MoveGen) restrict(from Square, targets Bitboard) Bitboard {
	if g.checkers.Count() == 1 {
		checkerSq := g.checkers.LSB()
		targets = targets.And(between(checkerSq, g.kingSq).Or(g.checkers))
	}
	if g.pinned.Test(from) {
		targets = targets.And(g.pinRays[from])
	}
	them := g.pos.SideToMove.Opposite()
	return targets.AndNot(g.pos.Board.PieceBB(them, King))
}

// inPromotionZone reports whether either endpoint lies in the color's three
// promotion ranks.
func inPromotionZone(from, to Square, c Color) bool {
	if c == Black {
		return from.Rank() >= 6 || to.Rank() >= 6
	}
	return from.Rank() <= 2 || to.Rank() <= 2
}

// lastRank is the absolute final rank for the color.
func lastRank(c Color) int {
	if c == Black {
		return 8
	}
	return 0
}

// emit pushes the legal promotion variants of one destination. A forced
// promotion emits only the promoting move; an optional one emits both.
func (g *MoveGen) emit(from, to Square, mustPromote, mayPromote bool) {
	if mustPromote {
		g.moves.Push(NewMove(from, to, true))
		return
	}
	if mayPromote {
		g.moves.Push(NewMove(from, to, true))
	}
	g.moves.Push(NewMove(from, to, false))
}

func (g *MoveGen) genGoldMoves(from Square) {
	us := g.pos.SideToMove
	targets := goldAttackTable[us][from].AndNot(g.pos.Board.ColorOccupancy(us))
	targets = g.restrict(from, targets)
	for !targets.IsEmpty() {
		to := targets.PopLSB()
		g.moves.Push(NewMove(from, to, false))
	}
}

func (g *MoveGen) genSilverMoves(from Square) {
	us := g.pos.SideToMove
	targets := silverAttackTable[us][from].AndNot(g.pos.Board.ColorOccupancy(us))
	targets = g.restrict(from, targets)
	for !targets.IsEmpty() {
		to := targets.PopLSB()
		g.emit(from, to, false, inPromotionZone(from, to, us))
	}
}

func (g *MoveGen) genKnightMoves(from Square) {
	us := g.pos.SideToMove
	targets := knightAttackTable[us][from].AndNot(g.pos.Board.ColorOccupancy(us))
	targets = g.restrict(from, targets)
	for !targets.IsEmpty() {
		to := targets.PopLSB()
		// A knight on the last two ranks could never jump again.
		var mustPromote bool
		if us == Black {
			mustPromote = to.Rank() >= 7
		} else {
			mustPromote = to.Rank() <= 1
		}
		g.emit(from, to, mustPromote, inPromotionZone(from, to, us))
	}
}

func (g *MoveGen) genLanceMoves(from Square) {
	us := g.pos.SideToMove
	board := &g.pos.Board
	targets := lanceSlidingAttacks(from, board.AllOccupancy(), us).
		AndNot(board.ColorOccupancy(us))
	targets = g.restrict(from, targets)
	for !targets.IsEmpty() {
		to := targets.PopLSB()
		g.emit(from, to, to.Rank() == lastRank(us), inPromotionZone(from, to, us))
	}
}

func (g *MoveGen) genPawnMoves(from Square) {
	us := g.pos.SideToMove
	targets := pawnAttackTable[us][from].AndNot(g.pos.Board.ColorOccupancy(us))
	targets = g.restrict(from, targets)
	for !targets.IsEmpty() {
		to := targets.PopLSB()
		g.emit(from, to, to.Rank() == lastRank(us), inPromotionZone(from, to, us))
	}
}

func (g *MoveGen) genSlidingMoves(from Square, pt PieceType, promoted bool) {
	us := g.pos.SideToMove
	board := &g.pos.Board
	attacks := slidingAttacks(from, board.AllOccupancy(), pt)
	if promoted {
		attacks = attacks.Or(kingAttackTable[from])
	}
	targets := g.restrict(from, attacks.AndNot(board.ColorOccupancy(us)))
	for !targets.IsEmpty() {
		to := targets.PopLSB()
		g.emit(from, to, false, !promoted && inPromotionZone(from, to, us))
	}
}

func (g *MoveGen) genKingMoves(from Square) {
	us := g.pos.SideToMove
	them := us.Opposite()
	board := &g.pos.Board
	targets := kingAttackTable[from].
		AndNot(board.ColorOccupancy(us)).
		AndNot(board.PieceBB(them, King))
	for !targets.IsEmpty() {
		to := targets.PopLSB()
		if !g.kingWouldBeAttacked(from, to) {
			g.moves.Push(NewMove(from, to, false))
		}
	}
}

// kingWouldBeAttacked tests the destination under the hypothetical occupancy
// with the king moved. Sliding and lance attacks are re-derived against the
// new occupancy; the non-sliding patterns are occupancy-independent.
func (g *MoveGen) kingWouldBeAttacked(from, to Square) bool {
	them := g.pos.SideToMove.Opposite()
	occ := g.pos.Board.AllOccupancy()
	occ.Clear(from)
	occ.Set(to)
	return !g.attackersToWithOcc(to, them, occ).IsEmpty()
}

// attackersTo returns every piece of color c attacking sq under the current
// occupancy.
func (g *MoveGen) attackersTo(sq Square, c Color) Bitboard {
	return g.attackersToWithOcc(sq, c, g.pos.Board.AllOccupancy())
}

// attackersToWithOcc returns every piece of color c attacking sq, ray-casting
// sliders against the supplied occupancy.
func (g *MoveGen) attackersToWithOcc(sq Square, c Color, occ Bitboard) Bitboard {
	board := &g.pos.Board
	rev := c.Opposite()
	promoted := board.PromotedBB()

	pawns := board.PieceBB(c, Pawn)
	knights := board.PieceBB(c, Knight)
	silvers := board.PieceBB(c, Silver)
	lances := board.PieceBB(c, Lance)
	rooks := board.PieceBB(c, Rook)
	bishops := board.PieceBB(c, Bishop)

	var attackers Bitboard
	attackers = attackers.Or(pawns.AndNot(promoted).And(pawnAttackTable[rev][sq]))
	attackers = attackers.Or(knights.AndNot(promoted).And(knightAttackTable[rev][sq]))
	attackers = attackers.Or(silvers.AndNot(promoted).And(silverAttackTable[rev][sq]))

	goldMovers := board.PieceBB(c, Gold).
		Or(promoted.And(silvers.Or(knights).Or(lances).Or(pawns)))
	attackers = attackers.Or(goldMovers.And(goldAttackTable[rev][sq]))

	kingRing := kingAttackTable[sq]
	attackers = attackers.Or(board.PieceBB(c, King).And(kingRing))

	// A lance attacks sq when it is the first piece on the file behind sq,
	// seen from c's direction of play.
	attackers = attackers.Or(lances.AndNot(promoted).And(lanceSlidingAttacks(sq, occ, rev)))

	attackers = attackers.Or(rooks.And(slidingAttacks(sq, occ, Rook)))
	attackers = attackers.Or(rooks.And(promoted).And(kingRing))
	attackers = attackers.Or(bishops.And(slidingAttacks(sq, occ, Bishop)))
	attackers = attackers.Or(bishops.And(promoted).And(kingRing))

	return attackers
}

// ==========================
// Drops
// ==========================

func (g *MoveGen) genDropMoves() {
	us := g.pos.SideToMove
	board := &g.pos.Board
	empty := board.AllOccupancy().Not()

	for pt := Rook; pt <= Pawn; pt++ {
		if g.pos.Hands[us][pt.HandIndex()] == 0 {
			continue
		}
		valid := empty
		switch pt {
		case Pawn:
			valid = g.validPawnDrops(valid)
		case Lance:
			valid = valid.AndNot(rankTable[lastRank(us)])
		case Knight:
			valid = valid.AndNot(rankTable[lastRank(us)])
			if us == Black {
				valid = valid.AndNot(rankTable[7])
			} else {
				valid = valid.AndNot(rankTable[1])
			}
		}
		for !valid.IsEmpty() {
			to := valid.PopLSB()
			g.moves.Push(NewDrop(pt, to))
		}
	}
}

// validPawnDrops removes the squares a pawn may never be dropped on: files
// already holding one of our unpromoted pawns, the back rank, and the single
// square where the drop would deliver an unanswerable mate.
func (g *MoveGen) validPawnDrops(valid Bitboard) Bitboard {
	us := g.pos.SideToMove
	them := us.Opposite()
	board := &g.pos.Board

	ourPawns := board.PieceBB(us, Pawn).AndNot(board.PromotedBB())
	for f := 0; f < 9; f++ {
		if !ourPawns.And(fileTable[f]).IsEmpty() {
			valid = valid.AndNot(fileTable[f])
		}
	}
	valid = valid.AndNot(rankTable[lastRank(us)])

	// Only the square directly in front of the enemy king can give check, so
	// the drop-pawn-mate rule is tested for that square alone.
	kingSq := board.KingSquare(them)
	if kingSq == NoSquare {
		return valid
	}
	checkRank := kingSq.Rank() - forwardStep(us)
	if checkRank < 0 || checkRank > 8 {
		return valid
	}
	checkSq := NewSquare(kingSq.File(), checkRank)
	if valid.Test(checkSq) && g.isDropPawnMate(checkSq) {
		valid.Clear(checkSq)
	}
	return valid
}

// isDropPawnMate applies the uchifuzume rule: a pawn drop is illegal exactly
// when it gives check, the pawn is supported, no unpinned defender other than
// the king, a pawn or a lance can capture it, and the defending king has no
// safe escape square. If the pawn is unsupported the drop is legal outright,
// because the king can simply recapture.
func (g *MoveGen) isDropPawnMate(to Square) bool {
	us := g.pos.SideToMove
	them := us.Opposite()
	board := &g.pos.Board

	kingSq := board.KingSquare(them)
	if kingSq == NoSquare || !pawnAttackTable[us][to].Test(kingSq) {
		return false
	}

	if g.attackersTo(to, us).IsEmpty() {
		return false
	}

	defenders := g.attackersToExceptKingPawnLance(to, them)
	if !defenders.IsEmpty() {
		pinnedDefenders := g.pinnedFor(them)
		for !defenders.IsEmpty() {
			defSq := defenders.PopLSB()
			if !pinnedDefenders.Test(defSq) {
				return false
			}
		}
	}

	escapes := kingAttackTable[kingSq].
		AndNot(board.ColorOccupancy(them)).
		AndNot(SquareBB(to))
	occAfter := board.AllOccupancy().Or(SquareBB(to))
	for !escapes.IsEmpty() {
		escapeSq := escapes.PopLSB()
		if g.attackersToWithOcc(escapeSq, us, occAfter).IsEmpty() {
			return false
		}
	}

	return true
}

// attackersToExceptKingPawnLance finds the pieces of color c that could
// recapture a dropped pawn on sq. Kings, pawns and lances are excluded: the
// king's recapture is handled by the support test, and a pawn or lance
// directly behind sq could never reach it.
func (g *MoveGen) attackersToExceptKingPawnLance(sq Square, c Color) Bitboard {
	board := &g.pos.Board
	rev := c.Opposite()
	promoted := board.PromotedBB()
	occ := board.AllOccupancy()

	pawns := board.PieceBB(c, Pawn)
	knights := board.PieceBB(c, Knight)
	silvers := board.PieceBB(c, Silver)
	lances := board.PieceBB(c, Lance)
	rooks := board.PieceBB(c, Rook)
	bishops := board.PieceBB(c, Bishop)

	var attackers Bitboard
	attackers = attackers.Or(knights.AndNot(promoted).And(knightAttackTable[rev][sq]))
	attackers = attackers.Or(silvers.AndNot(promoted).And(silverAttackTable[rev][sq]))

	goldMovers := board.PieceBB(c, Gold).
		Or(promoted.And(silvers.Or(knights).Or(lances).Or(pawns)))
	attackers = attackers.Or(goldMovers.And(goldAttackTable[rev][sq]))

	kingRing := kingAttackTable[sq]
	attackers = attackers.Or(rooks.And(slidingAttacks(sq, occ, Rook)))
	attackers = attackers.Or(rooks.And(promoted).And(kingRing))
	attackers = attackers.Or(bishops.And(slidingAttacks(sq, occ, Bishop)))
	attackers = attackers.Or(bishops.And(promoted).And(kingRing))

	return attackers
}

// pinnedFor computes the pieces of color c pinned to their own king by enemy
// rooks and bishops. Used only by the drop-pawn-mate defender test.
func (g *MoveGen) pinnedFor(c Color) Bitboard {
	board := &g.pos.Board
	kingSq := board.KingSquare(c)
	if kingSq == NoSquare {
		return Bitboard{}
	}
	them := c.Opposite()

	var pinned Bitboard
	check := func(attackerSq Square) {
		blockers := between(attackerSq, kingSq).And(board.AllOccupancy())
		if blockers.Count() != 1 {
			return
		}
		blockerSq := blockers.LSB()
		if board.ColorOccupancy(c).Test(blockerSq) {
			pinned.Set(blockerSq)
		}
	}

	for bb := board.PieceBB(them, Rook); !bb.IsEmpty(); {
		sq := bb.PopLSB()
		if alignedRook(sq, kingSq) {
			check(sq)
		}
	}
	for bb := board.PieceBB(them, Bishop); !bb.IsEmpty(); {
		sq := bb.PopLSB()
		if alignedBishop(sq, kingSq) {
			check(sq)
		}
	}
	return pinned
}
