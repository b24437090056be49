package main

import "runtime"

// maxAutoWorkers caps auto-sized batches; pandoc startup dominates well
// before CPU does.
const maxAutoWorkers = 8

// resolveWorkers determines the worker count for a batch.
// Priority: explicit flag > GOMAXPROCS-based calculation (adjusted by
// automaxprocs for containers), never more workers than files.
func resolveWorkers(flagWorkers, files int) int {
	n := flagWorkers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
		if n > maxAutoWorkers {
			n = maxAutoWorkers
		}
	}
	if n > files {
		n = files
	}
	if n < 1 {
		n = 1
	}
	return n
}
