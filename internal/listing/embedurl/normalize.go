package embedurl

import (
	"regexp"
	"strings"
)

// Canonical form displayed in the feed. Identifier goes between prefix
// and suffix.
const (
	embedPrefix = "https://www.youtube.com/embed/"
	embedSuffix = "?autoplay=0&mute=0"
)

var (
	shortLinkRe  = regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{6,})`)
	watchParamRe = regexp.MustCompile(`[?&]v=([a-zA-Z0-9_-]{6,})`)
)

// Normalize rewrites a user-supplied video link into the canonical
// embeddable form. It never fails: anything that matches no rule is
// returned unchanged and treated as an opaque external embed.
// Normalize(Normalize(x)) == Normalize(x) for every input.
func Normalize(raw string) string {
	if raw == "" {
		return raw
	}

	// Уже embed — не трогаем
	if strings.Contains(raw, "youtube.com/embed/") {
		return raw
	}

	// youtu.be/xxxxx
	if m := shortLinkRe.FindStringSubmatch(raw); m != nil {
		return embedPrefix + m[1] + embedSuffix
	}

	// youtube.com/watch?v=xxxxx or any ?v=xxxxx
	if m := watchParamRe.FindStringSubmatch(raw); m != nil {
		return embedPrefix + m[1] + embedSuffix
	}

	return raw
}
