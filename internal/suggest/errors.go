package suggest

import (
	"errors"
	"fmt"

	"github.com/huimingz/ai-commit-go/internal/llm"
)

// ErrorKind is the failure category of one suggestion round
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindAuth
	KindRateLimited
	KindServer
	KindMalformedResponse
	KindNoValidSuggestions
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "Network"
	case KindAuth:
		return "Auth"
	case KindRateLimited:
		return "RateLimited"
	case KindServer:
		return "Server"
	case KindMalformedResponse:
		return "MalformedResponse"
	case KindNoValidSuggestions:
		return "NoValidSuggestions"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error reports a failed suggestion round
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNoValidSuggestions:
		if e.Err != nil {
			return fmt.Sprintf("no valid commit message suggestions: %v", e.Err)
		}
		return "no valid commit message suggestions"
	case KindMalformedResponse:
		if e.Err != nil {
			return fmt.Sprintf("malformed model response: %v", e.Err)
		}
		return "malformed model response"
	default:
		return fmt.Sprintf("suggestion request failed (%s): %v", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// fromGenerator maps an AI boundary failure onto a round failure
func fromGenerator(err error) *Error {
	var llmErr *llm.Error
	if !errors.As(err, &llmErr) {
		return &Error{Kind: KindServer, Err: err}
	}
	switch llmErr.Kind {
	case llm.KindUnauthorized:
		return &Error{Kind: KindAuth, Err: err}
	case llm.KindRateLimited:
		return &Error{Kind: KindRateLimited, Err: err}
	case llm.KindNetwork:
		return &Error{Kind: KindNetwork, Err: err}
	default:
		return &Error{Kind: KindServer, Err: err}
	}
}
