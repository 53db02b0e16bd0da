package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

var fbEventRe = regexp.MustCompile(`facebook\.com/events/(\d+)`)

// NormalizeFacebookURL canonicalizes a user-supplied event link before it is
// stored. Direct facebook.com/events links are rewritten to their canonical
// form, fb.me short links are expanded through the resolver endpoint, and
// anything else passes through unchanged.
//
// This function never fails: the resolver being down, slow, or returning
// garbage degrades to storing what the user typed, because a broken link is
// better than a blocked submission.
func NormalizeFacebookURL(ctx context.Context, client *http.Client, resolverEndpoint, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if m := fbEventRe.FindStringSubmatch(trimmed); m != nil {
		return "https://www.facebook.com/events/" + m[1] + "/"
	}

	if strings.Contains(trimmed, "fb.me") && resolverEndpoint != "" {
		if resolved := resolveShortLink(ctx, client, resolverEndpoint, trimmed); resolved != "" {
			return resolved
		}
	}

	return trimmed
}

func resolveShortLink(ctx context.Context, client *http.Client, endpoint, shortURL string) string {
	if client == nil {
		client = http.DefaultClient
	}

	reqURL := endpoint + "?url=" + url.QueryEscape(shortURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return ""
	}

	resp, err := client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ""
	}

	var body struct {
		Resolved string `json:"resolved"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ""
	}
	return body.Resolved
}
