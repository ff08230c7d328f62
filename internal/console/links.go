package console

import (
	"net/url"
	"regexp"
	"strings"
)

var schemePattern = regexp.MustCompile(`(?i)^https?://`)

// CanonicalBase returns the host prefix for shareable stream URLs: the resolver
// base when set, else the backend origin, always with a scheme and no trailing slash.
func CanonicalBase(resolverBase, origin string) string {
	base := strings.TrimSpace(resolverBase)
	if base == "" {
		base = strings.TrimSpace(origin)
	}
	if !schemePattern.MatchString(base) {
		base = "http://" + base
	}
	return strings.TrimRight(base, "/")
}

// ServerURL is the Xtream server address handed to players
func ServerURL(base, accountID string) string {
	return base + "/xtream/" + accountID
}

// FullURL is the ready-to-play M3U address with credentials in the query
func FullURL(base, accountID, username, password string) string {
	return ServerURL(base, accountID) +
		"/get.php?username=" + escape(username) +
		"&password=" + escape(password) +
		"&playlist_type=m3u&output=ts"
}

// PlaylistLink is the retrieval path of a converted playlist
func PlaylistLink(origin, playlistID string) string {
	return strings.TrimRight(strings.TrimSpace(origin), "/") + "/lists/" + playlistID + ".m3u"
}

// escape percent-encodes a query component, spaces as %20
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
