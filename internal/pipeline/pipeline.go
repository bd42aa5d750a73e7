// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"sync"

	"vepanno-core/anno"
	"vepanno-core/vcf"
)

// Config controls the record-annotation pipeline.
type Config struct {
	Threads int    // number of worker goroutines (>=1)
	InfoKey string // INFO key holding the composite field ("CSQ")
}

// ForEachRecord streams data lines from next, rewrites the composite
// INFO field of each through per-worker Rewriters, and calls emit with
// the finished lines in input order. Lines without the INFO key pass
// through unmodified. With Threads=1 processing is strictly sequential.
//
// The Rewriters returned by newRW share one read-only table but own
// their scratch buffers, so one is created per worker.
func ForEachRecord(
	ctx context.Context,
	cfg Config,
	next func() ([]byte, bool),
	newRW func() *anno.Rewriter,
	emit func([]byte) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	key := cfg.InfoKey
	if key == "" {
		key = "CSQ"
	}

	type job struct {
		seq  int
		line []byte
	}
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan job, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			rw := newRW()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					if v, ok := vcf.InfoValue(j.line, key); ok {
						// ReplaceInfoValue copies, so the rewriter's
						// buffer may be reused for the next job.
						j.line, _ = vcf.ReplaceInfoValue(j.line, key, rw.Rewrite(v))
					}
					select {
					case results <- j:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector: reassemble input order before emitting, since VCF
	// output must keep record order byte for byte.
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		pending := make(map[int][]byte)
		nextSeq := 0
		for r := range results {
			if cerr != nil {
				continue
			}
			pending[r.seq] = r.line
			for {
				line, ok := pending[nextSeq]
				if !ok {
					break
				}
				delete(pending, nextSeq)
				nextSeq++
				if err := emit(line); err != nil {
					cerr = err
					break
				}
			}
		}
	}()

	// Feed work. Lines are copied because next reuses its buffer.
	seq := 0
feed:
	for {
		line, ok := next()
		if !ok {
			break
		}
		buf := append(make([]byte, 0, len(line)), line...)
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{seq: seq, line: buf}:
			seq++
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return cerr
}
