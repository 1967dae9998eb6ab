//go:build !profile

package profiler

import (
	"io"
	"time"
)

// Stubbed no-op versions when the "profile" build tag is not set.

type Stat struct {
	Name  string
	Count int
	Total time.Duration
	Max   time.Duration
}

func (s Stat) Avg() time.Duration { return 0 }

func Init(capacity int) {}

func Start(name string) func() { return func() {} }

func Report() []Stat { return nil }

func Dump(w io.Writer) error { return nil }
