package market

import (
	"fmt"
	"strings"
)

// the direct fetch path executes no javascript, so anti-automation
// middlemen can hand it an interstitial challenge with HTTP 200 and it
// would happily parse zero rows out of it. a real collection page is
// always larger than minPageLength, and the markers below only ever
// appear on challenge pages.
const minPageLength = 2048

var challengeMarkers = []string{
	"Just a moment...",
	"cf-browser-verification",
	"challenge-platform",
	`<meta name="robots" content="noindex`,
	"challenges.cloudflare.com",
	"/cdn-cgi/images/trace/jsch/",
}

type Verdict struct {
	Blocked bool
	Reason  string
}

// Classify decides whether a fetched body is a legitimate page or an
// anti-automation challenge disguised as one.
func Classify(body string) Verdict {
	if len(body) < minPageLength {
		return Verdict{Blocked: true, Reason: fmt.Sprintf("body too short (%d bytes)", len(body))}
	}
	for _, marker := range challengeMarkers {
		if strings.Contains(body, marker) {
			return Verdict{Blocked: true, Reason: fmt.Sprintf("challenge marker %q", marker)}
		}
	}
	return Verdict{}
}
