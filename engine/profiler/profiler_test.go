//go:build profile

package profiler

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopesAggregateByName(t *testing.T) {
	Init(4)
	for i := 0; i < 3; i++ {
		end := Start("frame.draw")
		time.Sleep(time.Millisecond)
		end()
	}
	Start("frame.clear")()

	rep := Report()
	require.Len(t, rep, 2)
	assert.Equal(t, "frame.draw", rep[0].Name)
	assert.Equal(t, 3, rep[0].Count)
	assert.GreaterOrEqual(t, rep[0].Avg(), time.Millisecond)
	assert.GreaterOrEqual(t, rep[0].Total, rep[0].Max)

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf))
	assert.Contains(t, buf.String(), "frame.clear")
}
