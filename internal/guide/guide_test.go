package guide

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBrief(t *testing.T) {
	ctx := context.Background()

	t.Run("ExtractsParagraphsAndStripsNoise", func(t *testing.T) {
		var requestedPath string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestedPath = r.URL.Path
			html := `
			<html>
				<head><script>tracking();</script></head>
				<body>
					<nav>Menu</nav>
					<table class="infobox"><tr><td>Population: lots</td></tr></table>
					<p>Hyderabad is the capital of Telangana.</p>
					<p></p>
					<p>It is famous for its biryani and the Charminar.</p>
					<footer>Copyright</footer>
				</body>
			</html>`
			w.Write([]byte(html))
		}))
		defer ts.Close()

		c := NewClient(ts.URL)
		brief, err := c.Brief(ctx, "Hyderabad, India")
		if err != nil {
			t.Fatalf("Brief failed: %v", err)
		}

		if requestedPath != "/Hyderabad" {
			t.Errorf("Expected country suffix dropped from the slug, got path %q", requestedPath)
		}
		if !strings.Contains(brief, "capital of Telangana") || !strings.Contains(brief, "biryani") {
			t.Errorf("Expected paragraph text in the brief, got %q", brief)
		}
		for _, noise := range []string{"Menu", "Population", "tracking", "Copyright"} {
			if strings.Contains(brief, noise) {
				t.Errorf("Expected %q to be stripped, got %q", noise, brief)
			}
		}
	})

	t.Run("MultiWordDestinationSlug", func(t *testing.T) {
		var requestedPath string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestedPath = r.URL.Path
			w.Write([]byte("<html><body><p>A city.</p></body></html>"))
		}))
		defer ts.Close()

		c := NewClient(ts.URL)
		if _, err := c.Brief(ctx, "New Delhi, India"); err != nil {
			t.Fatalf("Brief failed: %v", err)
		}
		if requestedPath != "/New_Delhi" {
			t.Errorf("Expected spaces replaced with underscores, got path %q", requestedPath)
		}
	})

	t.Run("NotFoundIsAnError", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		c := NewClient(ts.URL)
		if _, err := c.Brief(ctx, "Atlantis"); err == nil {
			t.Fatal("Expected an error for a 404 page, got nil")
		}
	})

	t.Run("EmptyPageIsAnError", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html><body><nav>only chrome</nav></body></html>"))
		}))
		defer ts.Close()

		c := NewClient(ts.URL)
		if _, err := c.Brief(ctx, "Nowhere"); err == nil {
			t.Fatal("Expected an error for a page with no prose, got nil")
		}
	})

	t.Run("LongContentIsCapped", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html><body><p>" + strings.Repeat("history and food. ", 500) + "</p></body></html>"))
		}))
		defer ts.Close()

		c := NewClient(ts.URL)
		brief, err := c.Brief(ctx, "Mumbai")
		if err != nil {
			t.Fatalf("Brief failed: %v", err)
		}
		if len([]rune(brief)) > maxBriefRunes {
			t.Errorf("Expected the brief capped at %d runes, got %d", maxBriefRunes, len([]rune(brief)))
		}
	})
}
