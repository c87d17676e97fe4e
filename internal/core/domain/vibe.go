package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// RequestedSongs is how many suggestions the generative service is asked for.
// Responses may carry fewer; every count is rendered as returned.
const RequestedSongs = 5

// ErrorMessage is the only failure text ever shown to the end user.
const ErrorMessage = "Sorry, I couldn't find a vibe for that. Please try something else."

// ErrMalformedResult is returned when a generated payload does not match the
// songs schema.
var ErrMalformedResult = errors.New("domain: malformed vibe result")

// VibeSong is one suggestion produced by the generative service.
type VibeSong struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Reason string `json:"reason"`
}

// VibeResult is the ordered list of suggestions for a single prompt.
type VibeResult []VibeSong

// NormalizePrompt trims the user's vibe. The boolean is false when nothing is
// left to submit.
func NormalizePrompt(prompt string) (string, bool) {
	trimmed := strings.TrimSpace(prompt)
	return trimmed, trimmed != ""
}

// ParseVibeResult validates a generated payload against the songs schema.
//
// A missing or null "songs" field is an empty result, not an error. Anything
// else that does not fit the schema (non-object payload, non-array songs,
// missing or non-string fields) yields ErrMalformedResult.
func ParseVibeResult(payload []byte) (VibeResult, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}
	if envelope == nil {
		return nil, fmt.Errorf("%w: payload is null", ErrMalformedResult)
	}

	raw, ok := envelope["songs"]
	if !ok || isNull(raw) {
		return VibeResult{}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: songs is not an array", ErrMalformedResult)
	}

	songs := make(VibeResult, 0, len(items))
	for i, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			return nil, fmt.Errorf("%w: song %d is not an object", ErrMalformedResult, i)
		}

		var song VibeSong
		for name, dst := range map[string]*string{
			"title":  &song.Title,
			"artist": &song.Artist,
			"reason": &song.Reason,
		} {
			if err := requiredString(fields, name, dst); err != nil {
				return nil, fmt.Errorf("%w: song %d: %v", ErrMalformedResult, i, err)
			}
		}
		songs = append(songs, song)
	}

	return songs, nil
}

func requiredString(fields map[string]json.RawMessage, name string, dst *string) error {
	raw, ok := fields[name]
	if !ok || isNull(raw) {
		return fmt.Errorf("missing %q", name)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%q is not a string", name)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
