// Package m3u summarizes extended M3U playlists returned by the convert endpoint.
package m3u

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"sort"
	"strings"
)

var (
	reTvgName   = regexp.MustCompile(`tvg-name="([^"]*)"`)
	reTvgID     = regexp.MustCompile(`tvg-id="([^"]*)"`)
	reGroup     = regexp.MustCompile(`group-title="([^"]*)"`)
	reCommaName = regexp.MustCompile(`,([^\n\r\t]*)$`)
)

// ErrNotM3U is returned when the content has no #EXTM3U header and no entries
var ErrNotM3U = errors.New("not an M3U playlist")

// Entry is one stream in the playlist
type Entry struct {
	Name  string
	Group string
	URL   string
}

// Group counts the entries carrying one group-title
type Group struct {
	Name  string
	Count int
}

// Summary describes a parsed playlist
type Summary struct {
	Entries []Entry
	Groups  []Group // sorted by count, then name
}

// Len returns the number of entries
func (s Summary) Len() int { return len(s.Entries) }

// Parse reads an extended M3U playlist. EXTINF lines without a following URL are skipped.
func Parse(r io.Reader) (Summary, error) {
	scanner := bufio.NewScanner(r)
	// Some EXTINF lines carry very long attribute lists.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []Entry
	var extinf string
	var sawHead bool
	counts := make(map[string]int)
	ungrouped := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		upper := strings.ToUpper(line)

		switch {
		case line == "":
			continue
		case strings.HasPrefix(upper, "#EXTM3U"):
			sawHead = true
		case strings.HasPrefix(upper, "#EXTINF"):
			extinf = line
		case strings.HasPrefix(line, "#"):
			// other directives (EXTVLCOPT, EXTGRP) carry nothing we summarize
		default:
			if extinf == "" {
				continue
			}
			e := Entry{
				Name:  entryName(extinf),
				Group: matchFirst(reGroup, extinf),
				URL:   line,
			}
			entries = append(entries, e)
			if e.Group == "" {
				ungrouped++
			} else {
				counts[e.Group]++
			}
			extinf = ""
		}
	}
	if err := scanner.Err(); err != nil {
		return Summary{}, err
	}
	if !sawHead && len(entries) == 0 {
		return Summary{}, ErrNotM3U
	}

	groups := make([]Group, 0, len(counts)+1)
	for name, n := range counts {
		groups = append(groups, Group{Name: name, Count: n})
	}
	if ungrouped > 0 {
		groups = append(groups, Group{Name: "", Count: ungrouped})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Name < groups[j].Name
	})

	return Summary{Entries: entries, Groups: groups}, nil
}

// entryName prefers tvg-name, then the text after the comma, then tvg-id
func entryName(extinf string) string {
	if n := matchFirst(reTvgName, extinf); n != "" {
		return n
	}
	if n := matchFirst(reCommaName, extinf); n != "" {
		return n
	}
	return matchFirst(reTvgID, extinf)
}

func matchFirst(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}
