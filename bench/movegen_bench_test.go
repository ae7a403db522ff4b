package bench

import (
	"testing"

	sg "github.com/SH11235/shogi/shogi"
)

func BenchmarkGenerateAllStart(b *testing.B) {
	pos := sg.StartPosition()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gen := sg.NewMoveGen(pos)
		if got := len(gen.GenerateAll()); got != 30 {
			b.Fatalf("generated %d moves, want 30", got)
		}
	}
}

func BenchmarkGenerateAllMidgame(b *testing.B) {
	pos := midgamePosition()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gen := sg.NewMoveGen(pos)
		if len(gen.GenerateAll()) == 0 {
			b.Fatal("no moves generated")
		}
	}
}

func BenchmarkApplyMoveClone(b *testing.B) {
	pos := sg.StartPosition()
	moves := sg.NewMoveGen(pos).GenerateAll()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		child := pos.Clone()
		child.ApplyMove(moves[i%len(moves)])
	}
}

// midgamePosition plays a fixed opening sequence to reach a position with
// drops in hand and open lines.
func midgamePosition() *sg.Position {
	pos := sg.StartPosition()
	for ply := 0; ply < 20; ply++ {
		moves := sg.NewMoveGen(pos).GenerateAll()
		if len(moves) == 0 {
			break
		}
		pos.ApplyMove(moves[(ply*7)%len(moves)])
	}
	return pos
}
