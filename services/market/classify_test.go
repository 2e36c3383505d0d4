package market

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func padded(body string) string {
	return body + strings.Repeat("<!-- padding -->\n", 256)
}

func TestClassifyShortBody(t *testing.T) {
	// a body below the minimum length is always blocked, even when it
	// contains no challenge marker at all
	for _, body := range []string{"", "ok", "<html><body>hello</body></html>"} {
		verdict := Classify(body)
		require.True(t, verdict.Blocked, "body: %q", body)
		require.NotEmpty(t, verdict.Reason)
	}
}

func TestClassifyChallengeMarkers(t *testing.T) {
	bodies := []string{
		padded("<html><title>Just a moment...</title></html>"),
		padded(`<div id="cf-browser-verification"></div>`),
		padded(`<script src="/cdn-cgi/challenge-platform/orchestrate"></script>`),
		padded(`<meta name="robots" content="noindex, nofollow">`),
		padded(`<iframe src="https://challenges.cloudflare.com/turnstile"></iframe>`),
		padded(`<img src="/cdn-cgi/images/trace/jsch/transparent.gif">`),
	}
	for _, body := range bodies {
		require.True(t, Classify(body).Blocked)
	}
}

func TestClassifyLegitimatePage(t *testing.T) {
	verdict := Classify(listingPage(fiveValidOneInvalid()...))
	require.False(t, verdict.Blocked)
	require.Empty(t, verdict.Reason)
}
