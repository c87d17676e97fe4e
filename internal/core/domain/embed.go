package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrUnsupportedEmbed is returned for URLs that no known player can embed.
var ErrUnsupportedEmbed = errors.New("domain: unsupported embed url")

type Platform string

const (
	PlatformSpotify Platform = "spotify"
	PlatformYouTube Platform = "youtube"
)

type EmbedKind string

const (
	EmbedTrack    EmbedKind = "track"
	EmbedArtist   EmbedKind = "artist"
	EmbedPlaylist EmbedKind = "playlist"
)

// Embed describes an iframe for a third-party player.
type Embed struct {
	URL      string    `json:"url"`
	Platform Platform  `json:"platform"`
	Kind     EmbedKind `json:"kind"`
	Height   int       `json:"height"`
}

const (
	spotifyHost        = "open.spotify.com"
	spotifyEmbedSuffix = "?utm_source=generator&theme=0"

	compactPlayerHeight  = 152
	playlistPlayerHeight = 380
	youTubePlayerHeight  = 315
)

// ResolveEmbed rewrites a public share URL into the platform's embed URL.
// Spotify tracks, artists and playlists are supported, plus YouTube playlists.
func ResolveEmbed(shareURL string) (Embed, error) {
	u, err := url.Parse(strings.TrimSpace(shareURL))
	if err != nil {
		return Embed{}, fmt.Errorf("%w: %v", ErrUnsupportedEmbed, err)
	}

	switch u.Hostname() {
	case spotifyHost:
		return resolveSpotify(u)
	case "www.youtube.com", "youtube.com":
		list := u.Query().Get("list")
		if list == "" {
			return Embed{}, fmt.Errorf("%w: youtube url has no playlist", ErrUnsupportedEmbed)
		}
		return Embed{
			URL:      "https://www.youtube.com/embed/videoseries?list=" + url.QueryEscape(list),
			Platform: PlatformYouTube,
			Kind:     EmbedPlaylist,
			Height:   youTubePlayerHeight,
		}, nil
	}

	return Embed{}, fmt.Errorf("%w: host %q", ErrUnsupportedEmbed, u.Hostname())
}

func resolveSpotify(u *url.URL) (Embed, error) {
	path := u.Path
	switch {
	case strings.HasPrefix(path, "/track/"):
		return spotifyEmbed(EmbedTrack, strings.TrimPrefix(path, "/track/"), compactPlayerHeight)
	case strings.HasPrefix(path, "/artist/"):
		return spotifyEmbed(EmbedArtist, strings.TrimPrefix(path, "/artist/"), compactPlayerHeight)
	case strings.Contains(path, "/playlist/"):
		_, rest, _ := strings.Cut(path, "/playlist/")
		return spotifyEmbed(EmbedPlaylist, rest, playlistPlayerHeight)
	}
	return Embed{}, fmt.Errorf("%w: spotify path %q", ErrUnsupportedEmbed, path)
}

func spotifyEmbed(kind EmbedKind, rest string, height int) (Embed, error) {
	id, _, _ := strings.Cut(rest, "/")
	if id == "" {
		return Embed{}, fmt.Errorf("%w: missing spotify %s id", ErrUnsupportedEmbed, kind)
	}
	return Embed{
		URL:      fmt.Sprintf("https://%s/embed/%s/%s%s", spotifyHost, kind, url.PathEscape(id), spotifyEmbedSuffix),
		Platform: PlatformSpotify,
		Kind:     kind,
		Height:   height,
	}, nil
}
