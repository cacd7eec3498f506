package cmd

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// progressPrinter shows a single updating line while several domains run.
type progressPrinter struct {
	total    int
	mu       sync.Mutex
	ok       int
	fail     int
	updates  chan struct{}
	done     chan struct{}
	stopped  chan struct{}
	started  bool
	stopOnce sync.Once
}

func newProgressPrinter(total int) *progressPrinter {
	if total <= 0 {
		total = 1
	}
	return &progressPrinter{
		total:   total,
		updates: make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (p *progressPrinter) Start() {
	p.started = true
	go p.loop()
}

// Increment records one finished domain. healthy means it produced a report
// with nothing above OK.
func (p *progressPrinter) Increment(healthy bool) {
	p.mu.Lock()
	if healthy {
		p.ok++
	} else {
		p.fail++
	}
	p.mu.Unlock()

	select {
	case p.updates <- struct{}{}:
	default:
	}
}

// Stop ends the updating line. It waits for the print loop to exit so a
// late redraw cannot land after the line is cleared.
func (p *progressPrinter) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
	})
	if p.started {
		<-p.stopped
	}
	fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", 80))
}

func (p *progressPrinter) loop() {
	defer close(p.stopped)

	ticker := time.NewTicker(300 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-p.updates:
			p.print()
		case <-ticker.C:
			p.print()
		case <-p.done:
			return
		}
	}
}

func (p *progressPrinter) print() {
	p.mu.Lock()
	ok := p.ok
	fail := p.fail
	p.mu.Unlock()

	completed := ok + fail
	percent := (float64(completed) / float64(p.total)) * 100

	fmt.Fprintf(os.Stdout, "\rTesting: %d/%d (%.1f%%) healthy:%d with findings:%d",
		completed, p.total, percent, ok, fail)
}
