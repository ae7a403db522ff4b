package shogi

import "testing"

func TestApplyMoveCapture(t *testing.T) {
	pos := NewPosition()
	pos.Board.PutPiece(NewSquare(0, 0), NewPiece(King, Black))
	pos.Board.PutPiece(NewSquare(8, 8), NewPiece(King, White))
	pos.Board.PutPiece(NewSquare(4, 4), NewPiece(Gold, Black))
	pos.Board.PutPiece(NewSquare(4, 5), PromotedPiece(Silver, White))
	pos.RecomputeHash()

	pos.ApplyMove(NewMove(NewSquare(4, 4), NewSquare(4, 5), false))

	if got := pos.Hands[Black][Silver.HandIndex()]; got != 1 {
		t.Errorf("captured silver count in hand = %d, want 1", got)
	}
	if p, ok := pos.Board.PieceOn(NewSquare(4, 5)); !ok || p.Type != Gold || p.Color != Black {
		t.Errorf("destination holds %v, want the black gold", p)
	}
	if pos.Board.PromotedBB().Test(NewSquare(4, 5)) {
		t.Error("promotion status leaked from the captured piece")
	}
	if pos.SideToMove != White {
		t.Errorf("side to move = %v after a black move", pos.SideToMove)
	}
	if pos.Ply != 1 {
		t.Errorf("ply = %d, want 1", pos.Ply)
	}
}

func TestApplyMoveDropConsumesHand(t *testing.T) {
	pos := NewPosition()
	pos.Board.PutPiece(NewSquare(0, 0), NewPiece(King, Black))
	pos.Board.PutPiece(NewSquare(8, 8), NewPiece(King, White))
	pos.Hands[Black][Gold.HandIndex()] = 2
	pos.RecomputeHash()

	pos.ApplyMove(NewDrop(Gold, NewSquare(4, 4)))

	if got := pos.Hands[Black][Gold.HandIndex()]; got != 1 {
		t.Errorf("hand gold count = %d after dropping, want 1", got)
	}
	if p, ok := pos.Board.PieceOn(NewSquare(4, 4)); !ok || p.Type != Gold || p.Promoted {
		t.Errorf("dropped piece is %v, want an unpromoted black gold", p)
	}
}

func TestApplyMoveKingCapturePanics(t *testing.T) {
	pos := NewPosition()
	pos.Board.PutPiece(NewSquare(0, 0), NewPiece(King, Black))
	pos.Board.PutPiece(NewSquare(0, 1), NewPiece(King, White))
	pos.RecomputeHash()

	defer func() {
		if recover() == nil {
			t.Error("capturing a king did not panic")
		}
	}()
	pos.ApplyMove(NewMove(NewSquare(0, 0), NewSquare(0, 1), false))
}

func TestCloneIndependence(t *testing.T) {
	pos := StartPosition()
	clone := pos.Clone()

	moves := NewMoveGen(clone).GenerateAll()
	clone.ApplyMove(moves[0])

	if pos.Hash == clone.Hash {
		t.Error("clone shares its hash with the original after a move")
	}
	if len(pos.History) != 0 {
		t.Errorf("original history grew to %d entries", len(pos.History))
	}
	if pos.SideToMove != Black || pos.Ply != 0 {
		t.Error("original position mutated by a move on the clone")
	}
}

func TestRepetition(t *testing.T) {
	pos := StartPosition()
	startHash := pos.Hash

	cycle := []Move{
		NewMove(NewSquare(7, 1), NewSquare(6, 1), false), // black rook out
		NewMove(NewSquare(1, 7), NewSquare(2, 7), false), // white rook out
		NewMove(NewSquare(6, 1), NewSquare(7, 1), false), // and back
		NewMove(NewSquare(2, 7), NewSquare(1, 7), false),
	}
	for rep := 0; rep < 3; rep++ {
		for _, m := range cycle {
			pos.ApplyMove(m)
		}
		if pos.Hash != startHash {
			t.Fatalf("hash %#x after cycle %d, want %#x", pos.Hash, rep+1, startHash)
		}
		if rep < 2 && pos.IsRepetition() {
			t.Errorf("repetition reported after only %d cycles", rep+1)
		}
	}
	if !pos.IsRepetition() {
		t.Error("four-fold repetition not detected after three full cycles")
	}
}
