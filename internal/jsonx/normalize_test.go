package jsonx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMarkdownWrapsFence(t *testing.T) {
	in := "Some explanation. ```javascript\nconst x = 1;\n``` More text."
	got := normalizeMarkdown(in)

	assert.Contains(t, got, "\n\n```javascript\nconst x = 1;\n```\n\n")
	assert.NotRegexp(t, `\n{3,}`, got)
}

func TestNormalizeMarkdownCollapsesNewlineRuns(t *testing.T) {
	got := normalizeMarkdown("a\n\n\n\n\nb")
	assert.Equal(t, "a\n\nb", got)
}

func TestNormalizeMarkdownTrims(t *testing.T) {
	got := normalizeMarkdown("  \n\nhello\n\n  ")
	assert.Equal(t, "hello", got)
}

func TestNormalizeMarkdownIdempotent(t *testing.T) {
	inputs := []string{
		"Some explanation. ```javascript\nconst x = 1;\n``` More text.",
		"```go\nfmt.Println(1)\n```",
		"plain text, no fences",
		"a\n\n\n\nb ```js\nx\n``` c",
	}
	for _, in := range inputs {
		once := normalizeMarkdown(in)
		twice := normalizeMarkdown(once)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestNormalizeValueRecurses(t *testing.T) {
	v, err := Extract(`{"title":"  T  ","items":[{"explanation":"a\n\n\n\nb"}],"count":3,"ok":true,"none":null}`)
	require.NoError(t, err)

	obj := v.(map[string]any)
	assert.Equal(t, "T", obj["title"])
	assert.Equal(t, float64(3), obj["count"])
	assert.Equal(t, true, obj["ok"])
	assert.Nil(t, obj["none"])

	items := obj["items"].([]any)
	assert.Equal(t, "a\n\nb", items[0].(map[string]any)["explanation"])
}
