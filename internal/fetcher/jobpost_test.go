package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<!DOCTYPE html>
<html>
<head><title>Acme Corp Careers</title><script>var x = 1;</script></head>
<body>
<nav>Home | Jobs</nav>
<h1>Senior Backend Engineer</h1>
<p>We are   looking for a Go engineer.</p>
<p>Requirements: 3+ years with Go, Postgres.</p>
<footer>© Acme</footer>
</body>
</html>`

func TestFetchJobPosting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(testPage))
	}))
	defer srv.Close()

	jp, err := FetchJobPosting(context.Background(), srv.URL, "test-agent")
	require.NoError(t, err)

	assert.Equal(t, "Senior Backend Engineer", jp.Title)
	assert.Contains(t, jp.Description, "We are looking for a Go engineer.")
	assert.Contains(t, jp.Description, "Requirements: 3+ years with Go, Postgres.")
	assert.NotContains(t, jp.Description, "var x = 1")
	assert.NotContains(t, jp.Description, "Home | Jobs")
	assert.NotContains(t, jp.Description, "© Acme")
}

func TestFetchJobPostingTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("Söftwäre Engineer öpening. ", 1000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><head><title>Jobs</title></head><body><p>" + long + "</p></body></html>"))
	}))
	defer srv.Close()

	jp, err := FetchJobPosting(context.Background(), srv.URL, "")
	require.NoError(t, err)

	assert.True(t, utf8.ValidString(jp.Description))
	assert.LessOrEqual(t, utf8.RuneCountInString(jp.Description), maxDescriptionLen+1)
}

func TestFetchJobPostingBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := FetchJobPosting(context.Background(), srv.URL, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
