package cmd

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nepalvoices-web/core/domain"
)

const sampleBody = `<p>Intro</p><figure><img src="https://news.nepalvoices.com/wp-content/uploads/lead-300x200.jpg"></figure>` +
	`<p>More</p><img src="/wp-content/uploads/second.png">`

func writeBody(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "body.html")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestResolve_FromFile(t *testing.T) {
	out, err := execute(t, "resolve", "--file", writeBody(t, sampleBody), "--origin", "https://news.nepalvoices.com")
	require.NoError(t, err)

	var res domain.Resolution
	require.NoError(t, json.Unmarshal([]byte(out), &res))

	assert.Equal(t, "https://news.nepalvoices.com/wp-content/uploads/lead-300x200.jpg", res.CardThumbnail)
	assert.Equal(t, []string{"https://news.nepalvoices.com/wp-content/uploads/second.png"}, res.RemainingImages)
	assert.NotContains(t, res.CleanedBodyHTML, "lead-300x200.jpg")
	assert.Contains(t, res.CleanedBodyHTML, "second.png")
}

func TestResolve_BodyOnly(t *testing.T) {
	out, err := execute(t, "resolve", "--file", writeBody(t, sampleBody), "--body")
	require.NoError(t, err)

	assert.Contains(t, out, "<p>Intro</p>")
	assert.NotContains(t, out, "lead-300x200.jpg")
	assert.NotContains(t, out, "cardThumbnail")
}

func TestResolve_RequiresExactlyOneSource(t *testing.T) {
	_, err := execute(t, "resolve")
	assert.Error(t, err)

	_, err = execute(t, "resolve", "--file", "x.html", "--slug", "x")
	assert.Error(t, err)
}

func TestResolve_MissingFile(t *testing.T) {
	_, err := execute(t, "resolve", "--file", filepath.Join(t.TempDir(), "missing.html"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading body")
}

func TestResolve_FromSlug(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"postBy":{"id":"cG9zdDox","databaseId":1,"title":"Budget","slug":"budget-2081",` +
			`"date":"2024-05-29T10:00:00","content":"<p>x</p><img src=\"https://cdn.example.com/a.jpg\"><img src=\"https://cdn.example.com/b.jpg\">",` +
			`"featuredImage":{"node":{"sourceUrl":"https://cdn.example.com/featured.jpg"}}}}}`))
	}))
	defer server.Close()

	out, err := execute(t, "resolve", "--slug", "budget-2081", "--graphql", server.URL)
	require.NoError(t, err)
	assert.Contains(t, gotBody, "budget-2081")

	var res domain.Resolution
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "https://cdn.example.com/featured.jpg", res.CardThumbnail)
	assert.True(t, strings.Contains(res.CleanedBodyHTML, "a.jpg"))
}
