package controllers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	geocode "github.com/lounyevents/event-calendar-go/geocode"
)

// resolveClient follows redirect chains so the final URL can be reported.
var resolveClient = &http.Client{Timeout: 10 * time.Second}

// ---------------- RESOLVE SHORT LINK ----------------
// ResolveLink expands a facebook short link (fb.me) to its canonical URL by
// following redirects. Only facebook hosts are accepted, so the endpoint
// cannot be used as an open redirect prober.
func ResolveLink() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.Query("url"))
		if raw == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
			return
		}

		parsed, err := url.Parse(raw)
		if err != nil || !isFacebookHost(parsed.Hostname()) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported url"})
			return
		}

		req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, raw, nil)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported url"})
			return
		}

		resp, err := resolveClient.Do(req)
		if err != nil {
			// The caller falls back to the original link on any failure.
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not resolve link"})
			return
		}
		defer resp.Body.Close()

		c.JSON(http.StatusOK, gin.H{"resolved": resp.Request.URL.String()})
	}
}

func isFacebookHost(host string) bool {
	host = strings.ToLower(host)
	return host == "fb.me" ||
		host == "facebook.com" ||
		strings.HasSuffix(host, ".facebook.com")
}

// ---------------- LOCATION SUGGESTIONS ----------------
// SuggestLocations proxies the place-suggestion API. An aborted request
// (the client typed another character) cancels the upstream queries through
// the request context.
func SuggestLocations(geo *geocode.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("query")
		items := geo.Suggest(c.Request.Context(), query)
		if items == nil {
			items = []geocode.Suggestion{}
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}
