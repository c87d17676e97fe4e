package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalizePrompt(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "keeps plain prompt", input: "late night drive", want: "late night drive", wantOK: true},
		{name: "trims surrounding whitespace", input: "  rainy afternoon \n", want: "rainy afternoon", wantOK: true},
		{name: "rejects empty", input: "", want: "", wantOK: false},
		{name: "rejects whitespace only", input: " \t\n ", want: "", wantOK: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizePrompt(tc.input)
			if got != tc.want || ok != tc.wantOK {
				t.Fatalf("NormalizePrompt(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestParseVibeResult(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    VibeResult
		wantErr error
	}{
		{
			name:    "single song",
			payload: `{"songs":[{"title":"Nightcall","artist":"Kavinsky","reason":"synthwave driving mood"}]}`,
			want:    VibeResult{{Title: "Nightcall", Artist: "Kavinsky", Reason: "synthwave driving mood"}},
		},
		{
			name: "keeps order and does not filter",
			payload: `{"songs":[
				{"title":"B","artist":"Two","reason":"second"},
				{"title":"A","artist":"One","reason":"first"},
				{"title":"B","artist":"Two","reason":"again"}
			]}`,
			want: VibeResult{
				{Title: "B", Artist: "Two", Reason: "second"},
				{Title: "A", Artist: "One", Reason: "first"},
				{Title: "B", Artist: "Two", Reason: "again"},
			},
		},
		{name: "missing songs is empty", payload: `{}`, want: VibeResult{}},
		{name: "null songs is empty", payload: `{"songs":null}`, want: VibeResult{}},
		{name: "empty songs", payload: `{"songs":[]}`, want: VibeResult{}},
		{name: "extra fields ignored", payload: `{"songs":[{"title":"T","artist":"A","reason":"R","year":1999}],"note":"x"}`, want: VibeResult{{Title: "T", Artist: "A", Reason: "R"}}},
		{name: "not json", payload: `Here are some songs`, wantErr: ErrMalformedResult},
		{name: "truncated json", payload: `{"songs":[{"title":"T"`, wantErr: ErrMalformedResult},
		{name: "array payload", payload: `[{"title":"T","artist":"A","reason":"R"}]`, wantErr: ErrMalformedResult},
		{name: "null payload", payload: `null`, wantErr: ErrMalformedResult},
		{name: "songs not array", payload: `{"songs":"Nightcall"}`, wantErr: ErrMalformedResult},
		{name: "song not object", payload: `{"songs":["Nightcall"]}`, wantErr: ErrMalformedResult},
		{name: "missing reason", payload: `{"songs":[{"title":"T","artist":"A"}]}`, wantErr: ErrMalformedResult},
		{name: "null artist", payload: `{"songs":[{"title":"T","artist":null,"reason":"R"}]}`, wantErr: ErrMalformedResult},
		{name: "numeric title", payload: `{"songs":[{"title":7,"artist":"A","reason":"R"}]}`, wantErr: ErrMalformedResult},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseVibeResult([]byte(tc.payload))
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected error %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got == nil {
				t.Fatalf("expected non-nil result")
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("result mismatch: want %+v, got %+v", tc.want, got)
			}
		})
	}
}
