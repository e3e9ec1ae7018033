package main

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/quartz"
)

// progressReporter prints session throughput on a fixed interval while a
// simulation runs.
type progressReporter struct {
	w       io.Writer
	clock   quartz.Clock
	ticker  *quartz.Ticker
	started time.Time

	done  atomic.Int64
	total atomic.Int64

	stop chan struct{}
	wg   sync.WaitGroup
}

func newProgressReporter(w io.Writer, clock quartz.Clock, interval time.Duration) *progressReporter {
	p := &progressReporter{
		w:       w,
		clock:   clock,
		ticker:  clock.NewTicker(interval, "progress"),
		started: clock.Now(),
		stop:    make(chan struct{}),
	}
	p.wg.Add(1)
	go p.loop()
	return p
}

// Update records progress. It is safe to call from any goroutine.
func (p *progressReporter) Update(done, total int) {
	p.total.Store(int64(total))
	p.done.Store(int64(done))
}

func (p *progressReporter) loop() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ticker.C:
			p.print()
		case <-p.stop:
			return
		}
	}
}

func (p *progressReporter) print() {
	done, total := p.done.Load(), p.total.Load()
	if total == 0 {
		return
	}
	elapsed := p.clock.Since(p.started)
	rate := 0.0
	if elapsed > 0 {
		rate = float64(done) / elapsed.Seconds()
	}
	fmt.Fprintf(p.w, "%d/%d sessions (%.0f%%) %.0f sessions/sec\n",
		done, total, float64(done)/float64(total)*100, rate)
}

// Stop halts the ticker and waits for the printer to exit
func (p *progressReporter) Stop() {
	p.ticker.Stop()
	close(p.stop)
	p.wg.Wait()
}
