package shogi

import "testing"

func TestKingAttackCounts(t *testing.T) {
	cases := []struct {
		sq   Square
		want int
	}{
		{NewSquare(4, 4), 8},
		{NewSquare(0, 0), 3},
		{NewSquare(8, 8), 3},
		{NewSquare(0, 4), 5},
		{NewSquare(4, 8), 5},
	}
	for _, c := range cases {
		if got := kingAttackTable[c.sq].Count(); got != c.want {
			t.Errorf("king attacks from %v: %d squares, want %d", c.sq, got, c.want)
		}
	}
}

func TestPawnAttacks(t *testing.T) {
	sq := NewSquare(4, 4)
	if bb := pawnAttackTable[Black][sq]; bb.Count() != 1 || !bb.Test(NewSquare(4, 5)) {
		t.Errorf("black pawn on 5e attacks %d squares, want just 5f", bb.Count())
	}
	if bb := pawnAttackTable[White][sq]; bb.Count() != 1 || !bb.Test(NewSquare(4, 3)) {
		t.Errorf("white pawn on 5e attacks %d squares, want just 5d", bb.Count())
	}
	if !pawnAttackTable[Black][NewSquare(4, 8)].IsEmpty() {
		t.Error("black pawn on the last rank has attack squares")
	}
}

func TestKnightAttacks(t *testing.T) {
	sq := NewSquare(4, 4)
	bb := knightAttackTable[Black][sq]
	if bb.Count() != 2 || !bb.Test(NewSquare(3, 6)) || !bb.Test(NewSquare(5, 6)) {
		t.Errorf("black knight on 5e attacks %v squares", bb.Count())
	}
	bb = knightAttackTable[White][sq]
	if bb.Count() != 2 || !bb.Test(NewSquare(3, 2)) || !bb.Test(NewSquare(5, 2)) {
		t.Errorf("white knight on 5e attacks %v squares", bb.Count())
	}
	if got := knightAttackTable[Black][NewSquare(0, 4)].Count(); got != 1 {
		t.Errorf("black knight on the 9 file has %d jumps, want 1", got)
	}
}

func TestGoldAndSilverAttacks(t *testing.T) {
	sq := NewSquare(4, 4)
	gold := goldAttackTable[Black][sq]
	if gold.Count() != 6 {
		t.Fatalf("black gold on 5e attacks %d squares, want 6", gold.Count())
	}
	if !gold.Test(NewSquare(4, 5)) || !gold.Test(NewSquare(4, 3)) {
		t.Error("black gold pattern missing a straight step")
	}
	if gold.Test(NewSquare(3, 3)) || gold.Test(NewSquare(5, 3)) {
		t.Error("black gold pattern includes backward diagonals")
	}

	silver := silverAttackTable[Black][sq]
	if silver.Count() != 5 {
		t.Fatalf("black silver on 5e attacks %d squares, want 5", silver.Count())
	}
	if silver.Test(NewSquare(3, 4)) || silver.Test(NewSquare(4, 3)) {
		t.Error("black silver pattern includes sideways or straight back steps")
	}
	if !silver.Test(NewSquare(3, 3)) || !silver.Test(NewSquare(5, 3)) {
		t.Error("black silver pattern missing backward diagonals")
	}
}

func TestSlidingAttacks(t *testing.T) {
	sq := NewSquare(4, 4)
	if got := slidingAttacks(sq, EmptyBB, Rook).Count(); got != 16 {
		t.Errorf("rook on empty board attacks %d squares, want 16", got)
	}
	if got := slidingAttacks(sq, EmptyBB, Bishop).Count(); got != 16 {
		t.Errorf("bishop on empty board attacks %d squares, want 16", got)
	}

	occ := SquareBB(NewSquare(4, 6))
	rook := slidingAttacks(sq, occ, Rook)
	if !rook.Test(NewSquare(4, 6)) {
		t.Error("rook ray excludes the first blocker")
	}
	if rook.Test(NewSquare(4, 7)) || rook.Test(NewSquare(4, 8)) {
		t.Error("rook ray continues past the first blocker")
	}
	if got := rook.Count(); got != 14 {
		t.Errorf("blocked rook attacks %d squares, want 14", got)
	}
}

func TestLanceSlidingAttacks(t *testing.T) {
	sq := NewSquare(4, 0)
	if got := lanceSlidingAttacks(sq, EmptyBB, Black).Count(); got != 8 {
		t.Errorf("black lance on 5a attacks %d squares, want 8", got)
	}
	occ := SquareBB(NewSquare(4, 3))
	bb := lanceSlidingAttacks(sq, occ, Black)
	if got := bb.Count(); got != 3 {
		t.Errorf("blocked black lance attacks %d squares, want 3", got)
	}
	if !bb.Test(NewSquare(4, 3)) || bb.Test(NewSquare(4, 4)) {
		t.Error("blocked black lance ray has the wrong cutoff")
	}
	if got := lanceSlidingAttacks(NewSquare(4, 8), EmptyBB, White).Count(); got != 8 {
		t.Errorf("white lance on 5i attacks %d squares, want 8", got)
	}
}

func TestBetween(t *testing.T) {
	if got := between(NewSquare(0, 0), NewSquare(0, 8)).Count(); got != 7 {
		t.Errorf("between 9a and 9i: %d squares, want 7", got)
	}
	bb := between(NewSquare(2, 2), NewSquare(5, 5))
	if bb.Count() != 2 || !bb.Test(NewSquare(3, 3)) || !bb.Test(NewSquare(4, 4)) {
		t.Errorf("between 7c and 4f: got %d squares", bb.Count())
	}
	if !between(NewSquare(0, 0), NewSquare(1, 2)).IsEmpty() {
		t.Error("between is non-empty for unaligned squares")
	}
	if !between(NewSquare(3, 3), NewSquare(4, 3)).IsEmpty() {
		t.Error("between is non-empty for adjacent squares")
	}
}

func TestFileAndRankTables(t *testing.T) {
	for i := 0; i < 9; i++ {
		if got := fileTable[i].Count(); got != 9 {
			t.Errorf("fileTable[%d] has %d squares, want 9", i, got)
		}
		if got := rankTable[i].Count(); got != 9 {
			t.Errorf("rankTable[%d] has %d squares, want 9", i, got)
		}
	}
	if !fileTable[4].Test(NewSquare(4, 7)) || fileTable[4].Test(NewSquare(5, 7)) {
		t.Error("fileTable[4] covers the wrong squares")
	}
}
