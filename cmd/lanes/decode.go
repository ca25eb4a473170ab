package main

import (
	"context"
	"os"
	"sync"

	"github.com/Garik-/midilanes/pkg/midi"
	"go.uber.org/zap"
)

type result struct {
	index int
	name  string

	ticksPerQuarterNote uint16
	tracks              []*midi.Track
	err                 error
}

type job struct {
	index int
	path  string
}

// decodeFile decodes one file. Tracks sealed before a failure are kept.
func decodeFile(name string, closeDangling bool) *result {
	out := &result{name: name}
	f, err := os.Open(name)
	if err != nil {
		out.err = err
		return out
	}

	defer f.Close()

	decoder := midi.NewDecoder(f)
	decoder.CloseDanglingNotes = closeDangling
	out.err = decoder.Decode()
	out.ticksPerQuarterNote = decoder.TicksPerQuarterNote
	out.tracks = decoder.Tracks

	return out
}

func decodeWorker(ctx context.Context, jobs <-chan job, cntRoutines int, closeDangling bool) (<-chan *result, <-chan struct{}) {
	log := decodeLog.Named("decodeWorker")
	out := make(chan *result)
	done := make(chan struct{}, 1)

	go func() {
		var wg sync.WaitGroup
		goroutines := make(chan struct{}, cntRoutines)

	loop:
		for j := range jobs {
			select {
			case goroutines <- struct{}{}:
			case <-ctx.Done():
				log.Debug("context done")
				break loop
			}
			wg.Add(1)
			go func(ctx context.Context, j job, goroutines <-chan struct{}, out chan<- *result, wg *sync.WaitGroup) {
				defer wg.Done()

				r := decodeFile(j.path, closeDangling)
				r.index = j.index

				select {
				case out <- r:
				case <-ctx.Done():
					log.Debug("decodeFile context done", zap.String("path", j.path))
				}
				<-goroutines

			}(ctx, j, goroutines, out, &wg)
		}

		wg.Wait()
		close(goroutines)
		close(out)

		done <- struct{}{}
		close(done)
	}()

	return out, done
}

// decodeAll decodes paths with at most cntRoutines files in flight and
// returns one result per path, in input order. Paths left undecoded because
// ctx was cancelled carry the context error.
func decodeAll(parent context.Context, paths <-chan string, cntRoutines int, closeDangling bool) []*result {
	log := decodeLog.Named("decodeAll")
	ctx, cancel := context.WithCancel(parent)

	var names []string
	for path := range paths {
		names = append(names, path)
	}

	jobs := make(chan job)
	go func() {
		defer close(jobs)
		for i, name := range names {
			select {
			case jobs <- job{index: i, path: name}:
			case <-ctx.Done():
				return
			}
		}
	}()

	results, done := decodeWorker(ctx, jobs, cntRoutines, closeDangling)

	defer func() {
		cancel()
		<-done // wait decodeWorker closed
	}()

	all := make([]*result, len(names))
	for r := range results {
		log.Debug("result", zap.String("name", r.name), zap.Int("tracks", len(r.tracks)), zap.Error(r.err))
		all[r.index] = r
	}

	for i, r := range all {
		if r != nil {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		all[i] = &result{index: i, name: names[i], err: err}
	}

	return all
}
