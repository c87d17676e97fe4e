package domain

import "fmt"

// Status is the lifecycle position of a vibe request.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

var statusNames = map[Status]string{
	StatusIdle:    "idle",
	StatusLoading: "loading",
	StatusSuccess: "success",
	StatusError:   "error",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// MarshalText renders the status by name so JSON bodies read "success"
// rather than 2.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(name string) (Status, error) {
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return StatusIdle, fmt.Errorf("domain: unknown status %q", name)
}

// State is a snapshot of one engine. Songs is only set for StatusSuccess and
// Message only for StatusError.
type State struct {
	Status  Status     `json:"status"`
	Songs   VibeResult `json:"songs"`
	Message string     `json:"error,omitempty"`
}

func IdleState() State {
	return State{Status: StatusIdle, Songs: VibeResult{}}
}

func LoadingState() State {
	return State{Status: StatusLoading, Songs: VibeResult{}}
}

// SuccessState copies songs so later changes to the caller's slice cannot
// leak into a published snapshot.
func SuccessState(songs VibeResult) State {
	copied := make(VibeResult, len(songs))
	copy(copied, songs)
	return State{Status: StatusSuccess, Songs: copied}
}

func ErrorState(message string) State {
	return State{Status: StatusError, Songs: VibeResult{}, Message: message}
}

// Settled reports whether no request is in flight.
func (s State) Settled() bool {
	return s.Status != StatusLoading
}
