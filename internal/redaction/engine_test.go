package redaction_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bkyoung/review-assistant/internal/redaction"
)

func TestEngine_Sanitize(t *testing.T) {
	engine := redaction.NewEngine()

	t.Run("masks GitHub tokens", func(t *testing.T) {
		token := "ghp_" + strings.Repeat("a1B2", 9)
		result := engine.Sanitize("pushing with " + token)

		assert.NotContains(t, result, token)
		assert.Contains(t, result, "ghp_***REDACTED***")
	})

	t.Run("masks OpenAI API keys", func(t *testing.T) {
		key := "sk-" + strings.Repeat("Xy7z", 12)
		result := engine.Sanitize("key is " + key)

		assert.NotContains(t, result, key)
		assert.Contains(t, result, "sk-***REDACTED***")
	})

	t.Run("masks generic credential assignments", func(t *testing.T) {
		result := engine.Sanitize("connecting with password=hunter2 now")

		assert.NotContains(t, result, "hunter2")
		assert.Equal(t, "connecting with password=***REDACTED*** now", result)
	})

	t.Run("keeps the matched keyword case", func(t *testing.T) {
		result := engine.Sanitize("TOKEN=abc123")

		assert.Equal(t, "TOKEN=***REDACTED***", result)
	})

	t.Run("later rules see earlier redactions", func(t *testing.T) {
		token := "ghp_" + strings.Repeat("a1B2", 9)
		result := engine.Sanitize("token=" + token)

		assert.NotContains(t, result, token)
		assert.Equal(t, "token=***REDACTED***", result)
	})

	t.Run("no match is a no-op", func(t *testing.T) {
		input := "nothing secret here"
		assert.Equal(t, input, engine.Sanitize(input))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", engine.Sanitize(""))
	})

	t.Run("is idempotent", func(t *testing.T) {
		inputs := []string{
			"token=abc secret=def",
			"sk-" + strings.Repeat("abcd", 12),
			"ghp_" + strings.Repeat("a1B2", 9),
			"plain text",
			"",
		}
		for _, input := range inputs {
			once := engine.Sanitize(input)
			assert.Equal(t, once, engine.Sanitize(once), "input %q", input)
		}
	})
}
