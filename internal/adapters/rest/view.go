package rest

import "github.com/ewilliams-labs/vibefinder/internal/core/domain"

type songView struct {
	Title  string             `json:"title"`
	Artist string             `json:"artist"`
	Reason string             `json:"reason"`
	Links  domain.SearchLinks `json:"links"`
}

type stateView struct {
	Status domain.Status `json:"status"`
	Songs  []songView    `json:"songs"`
	Error  string        `json:"error"`
}

func newStateView(st domain.State) stateView {
	songs := make([]songView, 0, len(st.Songs))
	for _, s := range st.Songs {
		songs = append(songs, songView{
			Title:  s.Title,
			Artist: s.Artist,
			Reason: s.Reason,
			Links:  domain.LinksFor(s),
		})
	}
	return stateView{Status: st.Status, Songs: songs, Error: st.Message}
}
