package view

import (
	"errors"
	"mime/multipart"
	"sync"

	"github.com/gadgeto/storefront/internal/apiclient"
	"github.com/gadgeto/storefront/internal/validation"
)

// RegistrarAPI is the slice of the backend boundary a registration attempt
// needs. *apiclient.RequestClient satisfies it.
type RegistrarAPI interface {
	CreateAdmin(reg *validation.Registration, file *multipart.FileHeader) error
}

// SubmissionState tracks where a registration attempt is. There is no
// terminal state: success and failure both resolve back to Idle so the form
// stays interactive for retry.
type SubmissionState int

const (
	StateIdle SubmissionState = iota
	StateValidating
	StateSubmitting
)

// Submission sequences one registration attempt: validate, transform, submit
// to the backend, classify the response. One instance per session.
type Submission struct {
	mu    sync.Mutex
	state SubmissionState
}

// Outcome is the terminal result of one Submit call.
type Outcome struct {
	Busy         bool // another attempt was in flight; this one was ignored
	Accepted     bool
	Unauthorized bool
	FieldErrors  validation.FieldErrors
	General      []string
}

func NewSubmission() *Submission {
	return &Submission{}
}

func (s *Submission) State() SubmissionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit runs the full pipeline. Re-entrant submits while one is in flight
// are ignored: at most one network call happens per successful validation
// pass, and none at all when validation fails.
func (s *Submission) Submit(api RegistrarAPI, in validation.RegistrationInput) Outcome {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return Outcome{Busy: true}
	}
	s.state = StateValidating
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.state = StateIdle
		s.mu.Unlock()
	}()

	reg, fieldErrs := validation.Validate(in)
	if fieldErrs != nil {
		return Outcome{FieldErrors: fieldErrs}
	}

	s.mu.Lock()
	s.state = StateSubmitting
	s.mu.Unlock()

	if err := api.CreateAdmin(reg, in.File); err != nil {
		return classifySubmitError(err)
	}

	return Outcome{Accepted: true}
}

func classifySubmitError(err error) Outcome {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		return Outcome{Unauthorized: true}
	}

	var be *apiclient.BackendError
	if errors.As(err, &be) {
		out := Outcome{General: be.General}
		if len(be.Fields) > 0 {
			out.FieldErrors = validation.FieldErrors{}
			for field, msg := range be.Fields {
				out.FieldErrors[field] = msg
			}
		}
		if len(out.General) == 0 && len(out.FieldErrors) == 0 {
			out.General = []string{"Something went wrong. Please try again"}
		}
		return out
	}

	return Outcome{General: []string{"Internal error: backend unavailable"}}
}
