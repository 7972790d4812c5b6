package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/depot"
	"github.com/aretw0/depot/pkg/resources"
)

func main() {
	count := flag.Int("count", 10000, "Number of seed records to generate")
	workers := flag.Int("workers", 8, "Concurrent writers for the create run")
	keep := flag.Bool("keep", false, "Keep the generated seed directory after running")
	flag.Parse()

	// 1. Generate a seed directory
	seedDir, err := os.MkdirTemp("", "depot_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(seedDir)
		} else {
			fmt.Printf("Keeping seed dir: %s\n", seedDir)
		}
	}()

	fmt.Printf("Generating %d orders in %s...\n", *count, seedDir)
	startGen := time.Now()
	var b strings.Builder
	for i := 0; i < *count; i++ {
		fmt.Fprintf(&b, "bench%d:\n  task: benchmark order %d\n", i, i)
	}
	if err := os.WriteFile(filepath.Join(seedDir, "orders.yaml"), []byte(b.String()), 0644); err != nil {
		panic(err)
	}
	fmt.Printf("Generation took: %v\n", time.Since(startGen))

	// 2. Cold start: parse and apply the seeds
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	fmt.Println("Running New (seed load)...")
	startLoad := time.Now()
	app, err := depot.New(depot.WithSeedDir(seedDir), depot.WithLogger(logger))
	if err != nil {
		panic(err)
	}
	load := time.Since(startLoad)
	fmt.Printf("Seed load: %v (Items: %d)\n", load, len(app.Orders().List()))

	// 3. Concurrent creates
	fmt.Printf("Running %d creates across %d writers...\n", *count, *workers)
	orders := app.Orders()
	startCreate := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < *count; i += *workers {
				if _, _, err := orders.Create(resources.Order{Task: "created"}); err != nil {
					panic(err)
				}
			}
		}(w)
	}
	wg.Wait()
	create := time.Since(startCreate)

	// 4. Snapshot reads
	startList := time.Now()
	list := orders.List()
	listDuration := time.Since(startList)

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d records):\n", *count)
	fmt.Printf("  Seed load: %v\n", load)
	fmt.Printf("  Creates:   %v (%.0f/s)\n", create, float64(*count)/create.Seconds())
	fmt.Printf("  List:      %v (Items: %d)\n", listDuration, len(list))
	fmt.Printf("--------------------------------------------------\n")
}
