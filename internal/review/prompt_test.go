package review_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bkyoung/review-assistant/internal/review"
)

func TestPromptBuilder_Build(t *testing.T) {
	builder := review.NewPromptBuilder()

	t.Run("embeds the diff", func(t *testing.T) {
		prompt := builder.Build("diff --git a/main.go b/main.go")
		assert.Contains(t, prompt, "diff --git a/main.go b/main.go")
	})

	t.Run("names the issue categories", func(t *testing.T) {
		prompt := builder.Build("x")
		for _, category := range []string{"Bugs", "Security Issues", "Performance Concerns", "Code Quality"} {
			assert.Contains(t, prompt, category)
		}
	})

	t.Run("defines the severity tiers", func(t *testing.T) {
		prompt := builder.Build("x")
		for _, severity := range []string{"Critical", "High", "Medium", "Low"} {
			assert.Contains(t, prompt, severity)
		}
	})

	t.Run("demands the JSON output shape", func(t *testing.T) {
		prompt := builder.Build("x")
		assert.Contains(t, prompt, `"summary"`)
		assert.Contains(t, prompt, `"issues"`)
		assert.Contains(t, prompt, `"severity"`)
		assert.Contains(t, prompt, `"message"`)
		assert.Contains(t, prompt, `"suggestion"`)
		assert.Contains(t, prompt, "ONLY valid JSON")
	})
}

func TestTruncateDiff(t *testing.T) {
	t.Run("short diffs pass through unchanged", func(t *testing.T) {
		diff := strings.Repeat("a", review.MaxDiffChars)
		assert.Equal(t, diff, review.TruncateDiff(diff))
	})

	t.Run("long diffs keep exactly the first 10000 characters", func(t *testing.T) {
		diff := strings.Repeat("a", 15000)
		capped := review.TruncateDiff(diff)

		assert.True(t, strings.HasSuffix(capped, review.TruncationMarker))
		kept := strings.TrimSuffix(capped, review.TruncationMarker)
		assert.Len(t, kept, review.MaxDiffChars)
		assert.Equal(t, diff[:review.MaxDiffChars], kept)
	})

	t.Run("counts characters, not bytes", func(t *testing.T) {
		diff := strings.Repeat("é", 10001)
		capped := review.TruncateDiff(diff)

		kept := strings.TrimSuffix(capped, review.TruncationMarker)
		assert.Equal(t, review.MaxDiffChars, len([]rune(kept)))
	})

	t.Run("is deterministic", func(t *testing.T) {
		diff := strings.Repeat("xyz", 5000)
		assert.Equal(t, review.TruncateDiff(diff), review.TruncateDiff(diff))
	})
}
