package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_RecordAndQuery(t *testing.T) {
	tracker := NewTracker()

	assert.False(t, tracker.WasWritten("src/app.ts"))

	tracker.RecordWrite("src/app.ts")
	assert.True(t, tracker.WasWritten("src/app.ts"))
	assert.Equal(t, 1, tracker.Len())

	// Paths are normalized before comparison.
	tracker.RecordWrite("src/./lib/../lib/util.ts")
	assert.True(t, tracker.WasWritten("src/lib/util.ts"))
	assert.Equal(t, 2, tracker.Len())
}

func TestTracker_DuplicateWrites(t *testing.T) {
	tracker := NewTracker()
	tracker.RecordWrite("a.ts")
	tracker.RecordWrite("a.ts")
	assert.Equal(t, 1, tracker.Len())
}
