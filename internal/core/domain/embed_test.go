package domain

import (
	"errors"
	"testing"
)

func TestResolveEmbed(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Embed
		wantErr bool
	}{
		{
			name:  "spotify track",
			input: "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC?si=abc",
			want: Embed{
				URL:      "https://open.spotify.com/embed/track/4uLU6hMCjMI75M1A2tKUQC?utm_source=generator&theme=0",
				Platform: PlatformSpotify,
				Kind:     EmbedTrack,
				Height:   152,
			},
		},
		{
			name:  "spotify artist",
			input: "https://open.spotify.com/artist/0gxyHStUsqpMadRV0Di1Qt",
			want: Embed{
				URL:      "https://open.spotify.com/embed/artist/0gxyHStUsqpMadRV0Di1Qt?utm_source=generator&theme=0",
				Platform: PlatformSpotify,
				Kind:     EmbedArtist,
				Height:   152,
			},
		},
		{
			name:  "spotify playlist under user path",
			input: "https://open.spotify.com/user/label/playlist/37i9dQZF1DX0XUsuxWHRQd",
			want: Embed{
				URL:      "https://open.spotify.com/embed/playlist/37i9dQZF1DX0XUsuxWHRQd?utm_source=generator&theme=0",
				Platform: PlatformSpotify,
				Kind:     EmbedPlaylist,
				Height:   380,
			},
		},
		{
			name:  "youtube playlist",
			input: "https://www.youtube.com/playlist?list=PL1234567890",
			want: Embed{
				URL:      "https://www.youtube.com/embed/videoseries?list=PL1234567890",
				Platform: PlatformYouTube,
				Kind:     EmbedPlaylist,
				Height:   315,
			},
		},
		{
			name:  "bare youtube host",
			input: "https://youtube.com/watch?v=abc&list=PLxyz",
			want: Embed{
				URL:      "https://www.youtube.com/embed/videoseries?list=PLxyz",
				Platform: PlatformYouTube,
				Kind:     EmbedPlaylist,
				Height:   315,
			},
		},
		{name: "youtube video without list", input: "https://www.youtube.com/watch?v=abc", wantErr: true},
		{name: "spotify album", input: "https://open.spotify.com/album/1DFixLWuPkv3KT3TnV35m3", wantErr: true},
		{name: "spotify track without id", input: "https://open.spotify.com/track/", wantErr: true},
		{name: "unknown host", input: "https://soundcloud.com/label/track", wantErr: true},
		{name: "not a url", input: "::::", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveEmbed(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrUnsupportedEmbed) {
					t.Fatalf("expected ErrUnsupportedEmbed, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("embed mismatch:\n got %+v\nwant %+v", got, tc.want)
			}
		})
	}
}
