package view

import (
	"mime/multipart"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gadgeto/storefront/internal/apiclient"
	"github.com/gadgeto/storefront/internal/validation"
)

type fakeRegistrar struct {
	calls   atomic.Int32
	err     error
	entered chan struct{} // closed when the first call arrives
	release chan struct{} // call blocks until closed
}

func (f *fakeRegistrar) CreateAdmin(reg *validation.Registration, file *multipart.FileHeader) error {
	if f.calls.Add(1) == 1 && f.entered != nil {
		close(f.entered)
	}
	if f.release != nil {
		<-f.release
	}
	return f.err
}

func validRegistrationInput() validation.RegistrationInput {
	return validation.RegistrationInput{
		ID:       "7",
		Name:     "Bob Smith",
		Email:    "bob@example.com",
		Password: "longenough",
		Phone:    "01712345678",
		NID:      "1234567890",
		Age:      "30",
	}
}

func TestSubmission_Accepted(t *testing.T) {
	api := &fakeRegistrar{}
	s := NewSubmission()

	out := s.Submit(api, validRegistrationInput())

	assert.True(t, out.Accepted)
	assert.Equal(t, int32(1), api.calls.Load())
	assert.Equal(t, StateIdle, s.State())
}

func TestSubmission_ValidationFailureSkipsNetwork(t *testing.T) {
	api := &fakeRegistrar{}
	s := NewSubmission()

	in := validRegistrationInput()
	in.Email = "not-an-email"
	out := s.Submit(api, in)

	assert.False(t, out.Accepted)
	require.NotNil(t, out.FieldErrors)
	assert.Contains(t, out.FieldErrors, "email")
	assert.Equal(t, int32(0), api.calls.Load(), "invalid form must not reach the backend")
	assert.Equal(t, StateIdle, s.State())
}

func TestSubmission_ConcurrentSubmitsSingleCall(t *testing.T) {
	api := &fakeRegistrar{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := NewSubmission()

	var first Outcome
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = s.Submit(api, validRegistrationInput())
	}()

	<-api.entered
	second := s.Submit(api, validRegistrationInput())
	assert.True(t, second.Busy)

	close(api.release)
	wg.Wait()

	assert.True(t, first.Accepted)
	assert.Equal(t, int32(1), api.calls.Load(), "exactly one network call despite two submits")
}

func TestSubmission_SubmitAgainAfterResolve(t *testing.T) {
	api := &fakeRegistrar{}
	s := NewSubmission()

	require.True(t, s.Submit(api, validRegistrationInput()).Accepted)
	require.True(t, s.Submit(api, validRegistrationInput()).Accepted)
	assert.Equal(t, int32(2), api.calls.Load())
}

func TestSubmission_Unauthorized(t *testing.T) {
	api := &fakeRegistrar{err: apiclient.ErrUnauthorized}
	s := NewSubmission()

	out := s.Submit(api, validRegistrationInput())

	assert.True(t, out.Unauthorized)
	assert.False(t, out.Accepted)
	assert.Empty(t, out.General)
}

func TestSubmission_BackendFieldErrors(t *testing.T) {
	api := &fakeRegistrar{err: &apiclient.BackendError{
		StatusCode: 400,
		Fields:     map[string]string{"email": "Email already registered"},
		General:    []string{"Registration rejected"},
	}}
	s := NewSubmission()

	out := s.Submit(api, validRegistrationInput())

	assert.False(t, out.Accepted)
	assert.Equal(t, "Email already registered", out.FieldErrors["email"])
	assert.Equal(t, []string{"Registration rejected"}, out.General)
}

func TestSubmission_BackendErrorWithoutDetail(t *testing.T) {
	api := &fakeRegistrar{err: &apiclient.BackendError{StatusCode: 400}}
	s := NewSubmission()

	out := s.Submit(api, validRegistrationInput())

	assert.Equal(t, []string{"Something went wrong. Please try again"}, out.General)
}

func TestSubmission_TransportError(t *testing.T) {
	api := &fakeRegistrar{err: assert.AnError}
	s := NewSubmission()

	out := s.Submit(api, validRegistrationInput())

	assert.Equal(t, []string{"Internal error: backend unavailable"}, out.General)
	assert.Nil(t, out.FieldErrors)
}
