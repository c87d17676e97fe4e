package domain

import (
	"net/url"
	"strings"
)

const (
	youTubeSearchURL = "https://www.youtube.com/results?search_query="
	spotifySearchURL = "https://open.spotify.com/search/"
)

// SearchLinks are the outbound links rendered under each song card.
type SearchLinks struct {
	YouTube string `json:"youtube"`
	Spotify string `json:"spotify"`
}

// LinksFor derives both search links for "{title} {artist}". Nothing is
// fetched or validated.
func LinksFor(song VibeSong) SearchLinks {
	query := encodeComponent(song.Title + " " + song.Artist)
	return SearchLinks{
		YouTube: youTubeSearchURL + query,
		Spotify: spotifySearchURL + query,
	}
}

// componentUnescaper restores the characters that browsers leave literal in a
// URI component but url.QueryEscape encodes. Spaces become %20, not "+".
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent escapes s for use as a single URL component. Everything
// except A-Z a-z 0-9 and - _ . ! ~ * ' ( ) is percent-encoded.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
