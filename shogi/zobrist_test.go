package shogi

import "testing"

func TestHashDeterminism(t *testing.T) {
	a := StartPosition()
	b := StartPosition()
	if a.Hash == 0 {
		t.Fatal("start position hash is zero")
	}
	if a.Hash != b.Hash {
		t.Errorf("two start positions hash to %#x and %#x", a.Hash, b.Hash)
	}
}

func TestHashSideToMove(t *testing.T) {
	a := StartPosition()
	b := StartPosition()
	b.SideToMove = White
	b.RecomputeHash()
	if a.Hash == b.Hash {
		t.Fatal("side to move does not change the hash")
	}
	if a.Hash^zobristSide != b.Hash {
		t.Error("side toggle is not a single key XOR")
	}
}

func TestHashHandCounts(t *testing.T) {
	a := StartPosition()
	b := StartPosition()
	b.Hands[Black][Pawn.HandIndex()] = 1
	b.RecomputeHash()
	if a.Hash == b.Hash {
		t.Error("a pawn in hand does not change the hash")
	}
	b.Hands[Black][Pawn.HandIndex()] = 2
	prev := b.Hash
	b.RecomputeHash()
	if b.Hash == prev {
		t.Error("hand count 1 and 2 hash identically")
	}
}

// Incremental updates in ApplyMove must agree with a full recomputation
// through captures, promotions and drops.
func TestHashIncrementalAgainstRecompute(t *testing.T) {
	pos := NewPosition()
	pos.Board.PutPiece(NewSquare(0, 0), NewPiece(King, Black))
	pos.Board.PutPiece(NewSquare(8, 8), NewPiece(King, White))
	pos.Board.PutPiece(NewSquare(4, 4), NewPiece(Rook, Black))
	pos.Board.PutPiece(NewSquare(4, 6), NewPiece(Pawn, White))
	pos.RecomputeHash()

	script := []Move{
		NewMove(NewSquare(4, 4), NewSquare(4, 6), true), // rook takes pawn, promotes
		NewMove(NewSquare(8, 8), NewSquare(8, 7), false),
		NewDrop(Pawn, NewSquare(5, 5)), // the captured pawn comes back down
		NewMove(NewSquare(8, 7), NewSquare(8, 8), false),
	}
	for i, m := range script {
		pos.ApplyMove(m)
		if got := pos.ComputeHash(); pos.Hash != got {
			t.Fatalf("after move %d (%v): incremental hash %#x, recomputed %#x",
				i, m, pos.Hash, got)
		}
	}
	if pos.Hands[Black][Pawn.HandIndex()] != 0 {
		t.Errorf("black still holds %d pawns after dropping", pos.Hands[Black][Pawn.HandIndex()])
	}
	if p, ok := pos.Board.PieceOn(NewSquare(4, 6)); !ok || !p.Promoted || p.Type != Rook {
		t.Error("rook did not promote on capture")
	}
}

// Playing moves through the generator must keep the incremental hash in sync
// from the standard starting layout as well.
func TestHashIncrementalFromStart(t *testing.T) {
	pos := StartPosition()
	for ply := 0; ply < 6; ply++ {
		moves := NewMoveGen(pos).GenerateAll()
		if len(moves) == 0 {
			t.Fatalf("no legal moves at ply %d", ply)
		}
		pos.ApplyMove(moves[0])
		if got := pos.ComputeHash(); pos.Hash != got {
			t.Fatalf("ply %d: incremental hash %#x, recomputed %#x", ply, pos.Hash, got)
		}
	}
}
