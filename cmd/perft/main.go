package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"golang.org/x/exp/slices"

	sg "github.com/SH11235/shogi/shogi"
)

func main() {
	depth := flag.Int("depth", 0, "perft depth (required)")
	divide := flag.Bool("divide", false, "print per-move node counts at the root")
	repeat := flag.Int("repeat", 1, "repeat the count N times for steadier timings")
	cpuProf := flag.String("cpuprofile", "", "write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "write heap profile to file after run")
	flag.Parse()

	if *depth <= 0 {
		log.Fatal("-depth must be > 0")
	}
	if *repeat <= 0 {
		log.Fatal("-repeat must be > 0")
	}

	pos := sg.StartPosition()

	if *divide {
		entries := sg.PerftDivide(pos, *depth)
		// Sort moves for stable output.
		slices.SortFunc(entries, func(a, b sg.DivideEntry) bool {
			return a.Move.String() < b.Move.String()
		})
		var sum uint64
		for _, e := range entries {
			fmt.Printf("%s: %d\n", e.Move, e.Nodes)
			sum += e.Nodes
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
		}()
	}

	start := time.Now()
	var nodes uint64
	for i := 0; i < *repeat; i++ {
		nodes = sg.Perft(pos, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(nodes) * float64(*repeat) / elapsed.Seconds()
	fmt.Printf("perft(%d) = %d nodes in %v (%.0f nps)\n", *depth, nodes, elapsed, nps)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			log.Fatalf("could not create heap profile: %v", err)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("could not write heap profile: %v", err)
		}
		f.Close()
	}
}
