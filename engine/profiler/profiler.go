//go:build profile

package profiler

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"
	"time"
)

// Stat aggregates every closed scope with the same name.
type Stat struct {
	Name  string
	Count int
	Total time.Duration
	Max   time.Duration
}

func (s Stat) Avg() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

var (
	mu      sync.Mutex
	enabled bool
	stats   map[string]*Stat
	order   []string
)

// Init must be called once (e.g., on app start) with the expected number of scope names.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 16
	}
	mu.Lock()
	defer mu.Unlock()
	stats = make(map[string]*Stat, capacity)
	order = order[:0]
	enabled = true
}

// Start begins a scope and returns an end func to be deferred.
func Start(name string) func() {
	mu.Lock()
	on := enabled
	mu.Unlock()
	if !on {
		return func() {}
	}
	begin := time.Now()
	return func() { record(name, time.Since(begin)) }
}

func record(name string, d time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	s, ok := stats[name]
	if !ok {
		s = &Stat{Name: name}
		stats[name] = s
		order = append(order, name)
	}
	s.Count++
	s.Total += d
	if d > s.Max {
		s.Max = d
	}
}

// Report returns a snapshot sorted by total time, largest first.
func Report() []Stat {
	mu.Lock()
	out := make([]Stat, 0, len(order))
	for _, n := range order {
		out = append(out, *stats[n])
	}
	mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

// Dump writes the report as a table.
func Dump(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "scope\tcount\tavg\tmax\ttotal")
	for _, s := range Report() {
		fmt.Fprintf(tw, "%s\t%d\t%v\t%v\t%v\n", s.Name, s.Count, s.Avg(), s.Max, s.Total)
	}
	return tw.Flush()
}
