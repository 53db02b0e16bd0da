package calendar

import (
	"net/url"
	"strings"

	"github.com/lounyevents/event-calendar-go/models"
)

// Suffix of the derived smaller poster variant.
const resizedSuffix = "_750x1080.webp"

// ResizedImagePath derives the storage key of the resized poster variant
// from the original key: the extension (text after the last dot) is replaced
// by the resized suffix, or the suffix is appended when there is no
// extension. Pure string transform; it does not check that the variant
// exists in storage.
func ResizedImagePath(originalKey string) string {
	if originalKey == "" {
		return ""
	}
	if i := strings.LastIndex(originalKey, "."); i != -1 {
		return originalKey[:i] + resizedSuffix
	}
	return originalKey + resizedSuffix
}

// ExtractPosterPath recovers the poster storage key for an event. The
// explicit PosterPath field wins; older records only stored the download
// URL, whose path carries the URL-encoded key after a literal "/o/" segment
// (the object-store download-URL convention). Returns "" when neither
// source yields a key.
//
// The URL fallback is a compatibility path for pre-PosterPath records;
// writes persist the key explicitly.
func ExtractPosterPath(ev *models.Event) string {
	if ev.PosterPath != "" {
		return ev.PosterPath
	}
	if ev.PosterURL == "" {
		return ""
	}
	u, err := url.Parse(ev.PosterURL)
	if err != nil {
		return ""
	}
	_, encoded, found := strings.Cut(u.EscapedPath(), "/o/")
	if !found || encoded == "" {
		return ""
	}
	decoded, err := url.PathUnescape(encoded)
	if err != nil {
		return ""
	}
	return decoded
}
