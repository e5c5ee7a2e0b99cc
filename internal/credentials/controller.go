// Package credentials drives the two mutually exclusive
// password-change protocols: the authenticated in-app change and the
// public token-based reset. Which protocol applies is decided once, at
// form construction, never re-derived at submit time.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/url"
	"strings"
	"sync"

	"github.com/Hitargot/Qooa-Frontend/internal/overlay"
	"github.com/Hitargot/Qooa-Frontend/internal/session"
	"github.com/Hitargot/Qooa-Frontend/internal/settings"
)

// Protocol selects which backend contract a form submission follows.
type Protocol int

const (
	// AuthenticatedChange requires the current password and the
	// session's bearer token; no confirm field.
	AuthenticatedChange Protocol = iota
	// TokenReset carries a reset token (and optional email) from the
	// reset link; requires a matching confirmation, no current field.
	TokenReset
)

func (p Protocol) String() string {
	if p == TokenReset {
		return "token-reset"
	}
	return "authenticated-change"
}

// State is the controller's flow state.
type State int

const (
	StateIdle State = iota
	StateFormPresented
	StateSubmitting
	StateSucceeded
	StateFailed
)

// Form captures the protocol decision made when the form was built.
type Form struct {
	Protocol Protocol
	Token    string // token reset only
	Email    string // token reset only, optional
}

// Submission is the user's form input.
type Submission struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Controller presents the change-password form through the shared
// overlay and runs the selected protocol.
type Controller struct {
	overlay  *overlay.Manager
	sessions *session.Store
	client   *Client
	notifier overlay.Notifier

	mu          sync.Mutex
	state       State
	form        *Form
	inlineError string
}

// NewController wires a Controller.
func NewController(ov *overlay.Manager, sessions *session.Store, client *Client, notifier overlay.Notifier) *Controller {
	if notifier == nil {
		notifier = overlay.LogNotifier{}
	}
	return &Controller{
		overlay:  ov,
		sessions: sessions,
		client:   client,
		notifier: notifier,
	}
}

// State returns the current flow state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// InlineError returns the error currently shown inside the form, if
// any.
func (c *Controller) InlineError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inlineError
}

// Form returns the active form, or nil when none is presented.
func (c *Controller) Form() *Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.form == nil {
		return nil
	}
	f := *c.form
	return &f
}

// PresentChangeForm opens the password form in the overlay. A non-nil
// token selects the in-app flow even when the value is empty (the
// authenticated protocol); a nil token reads the reset token from the
// request URL's query parameters (the public reset-link flow).
func (c *Controller) PresentChangeForm(ctx context.Context, token *string, reqURL *url.URL) {
	var tokenVal string
	if token != nil {
		tokenVal = *token
	} else if reqURL != nil {
		tokenVal = reqURL.Query().Get("token")
	}

	form := &Form{}
	if tokenVal == "" {
		form.Protocol = AuthenticatedChange
	} else {
		form.Protocol = TokenReset
		form.Token = tokenVal
		if reqURL != nil {
			form.Email = reqURL.Query().Get("email")
		}
	}

	c.mu.Lock()
	c.form = form
	c.state = StateFormPresented
	c.inlineError = ""
	body := renderForm(form, "")
	c.mu.Unlock()

	c.overlay.Open(ctx, overlay.Spec{
		Title:  "Change Password",
		Body:   body,
		Footer: `<button class="btn-primary" data-action="password-submit">Save password</button> <button class="btn-secondary" data-action="overlay-close">Cancel</button>`,
		Size:   settings.SizeSmall,
		OnOpen: func() error {
			// Focus lands on the first password input once the overlay
			// is wired.
			return nil
		},
	})
}

// errNoNetwork marks failures that never reached the backend.
var errNoNetwork = errors.New("rejected before network call")

// Submit validates and runs the presented form's protocol. Required
// fields are checked before any network call; terminal failure leaves
// the form presented with an inline message until corrected and
// resubmitted.
func (c *Controller) Submit(ctx context.Context, sub Submission) error {
	c.mu.Lock()
	form := c.form
	if form == nil || c.state == StateSubmitting {
		c.mu.Unlock()
		return fmt.Errorf("no form presented")
	}
	c.state = StateSubmitting
	c.mu.Unlock()

	var (
		message string
		err     error
	)
	switch form.Protocol {
	case AuthenticatedChange:
		message, err = c.submitAuthenticated(ctx, form, sub)
	case TokenReset:
		message, err = c.submitTokenReset(ctx, form, sub)
	}

	if err != nil {
		c.fail(inlineMessage(err))
		return err
	}

	c.succeed(ctx, form, message)
	return nil
}

func (c *Controller) submitAuthenticated(ctx context.Context, form *Form, sub Submission) (string, error) {
	if sub.NewPassword == "" {
		return "", fmt.Errorf("%w: %s", errNoNetwork, "Please fill the required password fields")
	}
	if strings.TrimSpace(sub.CurrentPassword) == "" {
		return "", fmt.Errorf("%w: %s", errNoNetwork, "Please enter your old password")
	}

	token := c.sessions.Token(ctx)
	if token == "" {
		return "", fmt.Errorf("%w: %s", errNoNetwork, "Not authenticated")
	}

	message, err := c.client.ChangePassword(ctx, token, strings.TrimSpace(sub.CurrentPassword), sub.NewPassword)
	if err != nil {
		return "", err
	}
	if message == "" {
		message = "Password changed successfully"
	}
	return message, nil
}

func (c *Controller) submitTokenReset(ctx context.Context, form *Form, sub Submission) (string, error) {
	if sub.NewPassword == "" || sub.ConfirmPassword == "" {
		return "", fmt.Errorf("%w: %s", errNoNetwork, "Please fill the required password fields")
	}
	if sub.NewPassword != sub.ConfirmPassword {
		return "", fmt.Errorf("%w: %s", errNoNetwork, "New passwords do not match")
	}

	if _, err := c.client.ResetPassword(ctx, form.Token, form.Email, sub.NewPassword); err != nil {
		return "", err
	}
	return "Password has been reset. You can now login.", nil
}

// fail keeps the overlay open and shows the message inline; the flow
// returns to FormPresented awaiting correction.
func (c *Controller) fail(message string) {
	c.mu.Lock()
	c.state = StateFormPresented
	c.inlineError = message
	body := renderForm(c.form, message)
	c.mu.Unlock()

	c.overlay.SetBody(body)
	log.Printf("credentials: submission failed: %s", message)
}

// succeed closes the overlay and reports through a transient toast.
func (c *Controller) succeed(ctx context.Context, form *Form, message string) {
	c.mu.Lock()
	c.state = StateSucceeded
	c.inlineError = ""
	if form.Protocol == TokenReset {
		form.Token = ""
	}
	c.form = nil
	c.mu.Unlock()

	c.overlay.Close()
	c.notifier.Toast(message)
}

// inlineMessage maps an error to the text shown inside the form.
func inlineMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return "Failed to change password"
	}
	if errors.Is(err, errNoNetwork) {
		// The validation text follows the wrap marker.
		if idx := strings.Index(err.Error(), ": "); idx >= 0 {
			return err.Error()[idx+2:]
		}
	}
	return "Network error while changing password"
}

var formTemplate = template.Must(template.New("passwordForm").Parse(`
{{if .Error}}<div id="changePwdErr" class="inline-error">{{.Error}}</div>{{end}}
<form id="changePasswordForm">
<input type="hidden" id="changeToken" name="token" value="{{.Token}}">
{{if .ShowCurrent}}
<div class="form-group">
  <label for="currentPassword">Old password</label>
  <input type="password" id="currentPassword" name="currentPassword" required>
</div>
{{end}}
<div class="form-group">
  <label for="newPassword">New password</label>
  <input type="password" id="newPassword" name="newPassword" required>
</div>
{{if .ShowConfirm}}
<div class="form-group">
  <label for="confirmPassword">Confirm new password</label>
  <input type="password" id="confirmPassword" name="confirmPassword" required>
</div>
{{end}}
</form>`))

func renderForm(form *Form, inlineError string) string {
	data := struct {
		Error       string
		Token       string
		ShowCurrent bool
		ShowConfirm bool
	}{
		Error:       inlineError,
		Token:       form.Token,
		ShowCurrent: form.Protocol == AuthenticatedChange,
		ShowConfirm: form.Protocol == TokenReset,
	}

	var sb strings.Builder
	if err := formTemplate.Execute(&sb, data); err != nil {
		log.Printf("credentials: rendering form: %v", err)
		return ""
	}
	return sb.String()
}
