package console

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalBase(t *testing.T) {
	tests := []struct {
		name     string
		resolver string
		origin   string
		want     string
	}{
		{"origin when resolver empty", "", "https://h/", "https://h"},
		{"resolver without scheme", "example.com", "https://h/", "http://example.com"},
		{"resolver trimmed", "  https://r.example/  ", "https://h", "https://r.example"},
		{"scheme match ignores case", "HTTPS://R", "", "HTTPS://R"},
		{"blank resolver", "   ", "http://origin:8080", "http://origin:8080"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CanonicalBase(tt.resolver, tt.origin))
		})
	}
}

func TestServerURL(t *testing.T) {
	require.Equal(t, "https://h/xtream/7", ServerURL(CanonicalBase("", "https://h/"), "7"))
	require.Equal(t, "http://example.com/xtream/7", ServerURL(CanonicalBase("example.com", "https://h/"), "7"))
}

func TestFullURLEncodesCredentials(t *testing.T) {
	full := FullURL("http://h", "7", "a b", "p@ss")

	require.True(t, strings.HasPrefix(full, "http://h/xtream/7/get.php?"))
	require.Contains(t, full, "username=a%20b&password=p%40ss")
	require.True(t, strings.HasSuffix(full, "&playlist_type=m3u&output=ts"))
}

func TestFullURLEscapesQueryDelimiters(t *testing.T) {
	full := FullURL("http://h", "1", "u&x=1", "p+q")
	require.Contains(t, full, "username=u%26x%3D1&password=p%2Bq")
}

func TestPlaylistLink(t *testing.T) {
	require.Equal(t, "https://h/lists/42.m3u", PlaylistLink("https://h/", "42"))
}
