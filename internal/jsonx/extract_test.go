package jsonx

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractValidJSON(t *testing.T) {
	v, err := Extract(`[{"question":"Q?","answer":"A."}]`)
	require.NoError(t, err)

	arr, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, arr, 1)

	obj := arr[0].(map[string]any)
	assert.Equal(t, "Q?", obj["question"])
	assert.Equal(t, "A.", obj["answer"])
}

func TestExtractStripsSurroundingProse(t *testing.T) {
	raw := "Here is the JSON:\n[{\"question\":\"Q?\",\"answer\":\"A.\"}]\nDone!"
	v, err := Extract(raw)
	require.NoError(t, err)

	arr := v.([]any)
	require.Len(t, arr, 1)
	obj := arr[0].(map[string]any)
	assert.Equal(t, "Q?", obj["question"])
	assert.Equal(t, "A.", obj["answer"])
}

func TestExtractStripsMarkdownFence(t *testing.T) {
	raw := "```json\n{\"title\":\"T\"}\n```"
	v, err := Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "T"}, v)
}

func TestExtractTrailingCommas(t *testing.T) {
	v, err := Extract(`[{"question":"Q?","answer":"A."},]`)
	require.NoError(t, err)
	arr := v.([]any)
	require.Len(t, arr, 1)
	assert.Equal(t, "A.", arr[0].(map[string]any)["answer"])

	v, err = Extract(`{"title":"T","explanation":"E",}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "T", "explanation": "E"}, v)
}

func TestExtractTrailingCommaBeforeNewlineCloser(t *testing.T) {
	v, err := Extract("[\n  {\"question\":\"Q?\",\"answer\":\"A.\"},\n]")
	require.NoError(t, err)
	arr := v.([]any)
	require.Len(t, arr, 1)
	assert.Equal(t, "Q?", arr[0].(map[string]any)["question"])
}

func TestExtractRawNewlineInString(t *testing.T) {
	v, err := Extract("{\"answer\": \"Line 1\nLine 2\"}")
	require.NoError(t, err)

	obj := v.(map[string]any)
	// the repaired value holds a real newline, not the two-character escape
	assert.Equal(t, "Line 1\nLine 2", obj["answer"])
}

func TestExtractRawTabAndCarriageReturn(t *testing.T) {
	v, err := Extract("{\"answer\": \"a\tb\rc\"}")
	require.NoError(t, err)
	assert.Equal(t, "a\tb\rc", v.(map[string]any)["answer"])
}

func TestExtractDropsBareControlChars(t *testing.T) {
	v, err := Extract("{\"answer\": \"a\x01b\"}")
	require.NoError(t, err)
	assert.Equal(t, "ab", v.(map[string]any)["answer"])
}

func TestExtractUnescapedInnerQuotes(t *testing.T) {
	v, err := Extract(`{"answer": "Use "strict mode" in JavaScript"}`)
	require.NoError(t, err)
	assert.Equal(t, `Use "strict mode" in JavaScript`, v.(map[string]any)["answer"])
}

func TestExtractEscapedQuotesUntouched(t *testing.T) {
	v, err := Extract(`{"answer": "Say \"Hello\""}`)
	require.NoError(t, err)
	assert.Equal(t, `Say "Hello"`, v.(map[string]any)["answer"])
}

func TestExtractDuplicateKeysLastWins(t *testing.T) {
	v, err := Extract(`{"a":1,"a":2}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(2)}, v)
}

func TestExtractNoJSONAtAll(t *testing.T) {
	_, err := Extract("This is not JSON at all")
	require.Error(t, err)

	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.NotEmpty(t, extErr.Preview)
}

func TestExtractUnbalancedInput(t *testing.T) {
	_, err := Extract("[{broken json structure")
	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
}

func TestExtractPreviewIsBounded(t *testing.T) {
	_, err := Extract("[" + strings.Repeat("x", 2000))
	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.LessOrEqual(t, utf8.RuneCountInString(extErr.Preview), previewLimit)
}

func TestExtractPreviewKeepsRunesIntact(t *testing.T) {
	// multi-byte runes straddling the cap must not be split
	_, err := Extract("[" + strings.Repeat("héllö wörld ", 200))
	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.True(t, utf8.ValidString(extErr.Preview))
	assert.Equal(t, previewLimit, utf8.RuneCountInString(extErr.Preview))
}

func TestExtractDoesNotMutateInput(t *testing.T) {
	raw := "prose {\"answer\": \"Line 1\nLine 2\"} trailing"
	before := strings.Clone(raw)
	_, err := Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, before, raw)
}

func TestExtractTo(t *testing.T) {
	var out []struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	raw := "Sure! Here you go:\n[{\"question\":\"Q?\",\"answer\":\"A.\"},]"
	require.NoError(t, ExtractTo(raw, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Q?", out[0].Question)
	assert.Equal(t, "A.", out[0].Answer)
}

func TestExtractConcurrent(t *testing.T) {
	inputs := []string{
		`[{"question":"Q1","answer":"A1"}]`,
		"noise {\"answer\": \"Line 1\nLine 2\"} noise",
		`{"answer": "Use "strict mode" in JavaScript"}`,
		`{"title":"T","explanation":"E",}`,
		"not json",
	}

	type result struct {
		v   any
		err error
	}

	sequential := make([]result, len(inputs))
	for i, in := range inputs {
		v, err := Extract(in)
		sequential[i] = result{v, err}
	}

	const rounds = 50
	results := make(chan struct {
		idx int
		res result
	}, len(inputs)*rounds)

	for r := 0; r < rounds; r++ {
		for i, in := range inputs {
			go func(i int, in string) {
				v, err := Extract(in)
				results <- struct {
					idx int
					res result
				}{i, result{v, err}}
			}(i, in)
		}
	}

	for n := 0; n < len(inputs)*rounds; n++ {
		got := <-results
		want := sequential[got.idx]
		assert.Equal(t, want.v, got.res.v)
		assert.Equal(t, want.err == nil, got.res.err == nil)
	}
}
