package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_AllowGlobs(t *testing.T) {
	policy := NewPolicy([]string{"**/*.test.ts", "fixtures/**", "*.d.ts"}, nil)

	assert.False(t, policy.ShouldRedact("src/app.test.ts"))
	assert.False(t, policy.ShouldRedact("fixtures/deep/nested/sample.ts"))
	assert.False(t, policy.ShouldRedact("src/types/global.d.ts"), "basename match")
	assert.True(t, policy.ShouldRedact("src/app.ts"))
}

func TestPolicy_WrittenFilesExempt(t *testing.T) {
	tracker := NewTracker()
	policy := NewPolicy(nil, tracker)

	assert.True(t, policy.ShouldRedact("src/app.ts"))
	tracker.RecordWrite("src/app.ts")
	assert.False(t, policy.ShouldRedact("src/app.ts"),
		"a session always sees its own output unredacted")
}

func TestPolicy_NilPolicyRedactsEverything(t *testing.T) {
	var policy *Policy
	assert.True(t, policy.ShouldRedact("src/app.ts"))
}
