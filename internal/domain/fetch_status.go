package domain

import "fmt"

type FetchStatus int

const (
	FetchStatusLoading FetchStatus = iota
	FetchStatusError
	FetchStatusDone
)

func (s FetchStatus) String() string {
	switch s {
	case FetchStatusLoading:
		return "loading"
	case FetchStatusError:
		return "error"
	case FetchStatusDone:
		return "done"
	default:
		return fmt.Sprintf("FetchStatus(%d)", int(s))
	}
}

func (s FetchStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *FetchStatus) UnmarshalText(text []byte) error {
	for _, candidate := range []FetchStatus{FetchStatusLoading, FetchStatusError, FetchStatusDone} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown fetch status %q", text)
}

// Terminal reports whether a fetch sequence has ended.
func (s FetchStatus) Terminal() bool {
	return s == FetchStatusError || s == FetchStatusDone
}
