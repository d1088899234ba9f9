package client

import (
	"context"
	"errors"

	"github.com/noah-isme/med-a-api/internal/models"
	appErrors "github.com/noah-isme/med-a-api/pkg/errors"
)

// State is the position of one content item in the access flow.
type State string

const (
	StateIdle            State = "idle"
	StateChecking        State = "checking"
	StatePaymentRequired State = "payment_required"
	StatePasswordPrompt  State = "password_prompt"
	StatePasswordError   State = "password_error"
	StateThrottled       State = "throttled"
	StateDisabled        State = "disabled"
	StateViewing         State = "viewing"
	StateUnavailable     State = "unavailable"
)

// Flow walks one content item through the access gate. Each item gets
// its own Flow; the zero value is not usable, construct via NewFlow.
//
// Open moves Idle to Viewing, PaymentRequired, PasswordPrompt or a
// terminal denial. SubmitPassword retries the gate with a password and
// moves PasswordPrompt/PasswordError to Viewing or back to
// PasswordError. Every transition re-runs the subscription check on the
// server, so a lapsed subscription surfaces mid-flow as
// PaymentRequired.
type Flow struct {
	client    *Client
	contentID int

	state       State
	url         string
	checkoutURL string
}

// NewFlow starts a flow for one content item.
func NewFlow(c *Client, contentID int) *Flow {
	return &Flow{client: c, contentID: contentID, state: StateIdle}
}

// State reports the current flow position.
func (f *Flow) State() State { return f.state }

// URL returns the disclosed resource URL. Empty unless Viewing.
func (f *Flow) URL() string { return f.url }

// CheckoutURL returns the payment link. Empty unless PaymentRequired.
func (f *Flow) CheckoutURL() string { return f.checkoutURL }

// Open runs the gate without a password. Unlocked items land directly
// in Viewing; locked ones in PasswordPrompt.
func (f *Flow) Open(ctx context.Context) (State, error) {
	return f.advance(ctx, "")
}

// SubmitPassword retries the gate with the viewer's password.
func (f *Flow) SubmitPassword(ctx context.Context, password string) (State, error) {
	return f.advance(ctx, password)
}

func (f *Flow) advance(ctx context.Context, password string) (State, error) {
	f.state = StateChecking
	result, err := f.client.Verify(ctx, f.contentID, password)
	if err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) && appErr.Code == appErrors.ErrTooManyAttempts.Code {
			f.state = StateThrottled
			return f.state, err
		}
		f.state = StateUnavailable
		return f.state, err
	}

	switch result.Kind {
	case models.AccessGranted:
		f.state = StateViewing
		f.url = result.URL
	case models.AccessPaymentRequired:
		f.state = StatePaymentRequired
		f.checkoutURL = result.CheckoutURL
	case models.AccessAccountDisabled:
		f.state = StateDisabled
	case models.AccessInvalidPassword:
		if password == "" {
			f.state = StatePasswordPrompt
		} else {
			f.state = StatePasswordError
		}
	default:
		f.state = StateUnavailable
	}
	return f.state, nil
}
