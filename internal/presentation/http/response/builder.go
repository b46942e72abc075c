package response

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Additional-Code/ricebowl/pkg/errorbank"
)

// Builder helps construct consistent HTTP responses. Every response carries
// the same envelope: success responses expose data and a message, failures
// expose an error string instead, and both are stamped with the render time.
type Builder struct {
	ctx     echo.Context
	status  int
	data    any
	message string
	err     error
}

// New instantiates a Builder for the provided request context.
func New(ctx echo.Context) *Builder {
	return &Builder{ctx: ctx, status: http.StatusOK}
}

// WithStatus overrides the response status code.
func (b *Builder) WithStatus(status int) *Builder {
	if status > 0 {
		b.status = status
	}
	return b
}

// WithData attaches a success payload.
func (b *Builder) WithData(data any) *Builder {
	b.data = data
	return b
}

// WithMessage sets the human-readable success message.
func (b *Builder) WithMessage(message string) *Builder {
	b.message = message
	return b
}

// WithError records an error to be rendered.
func (b *Builder) WithError(err error) *Builder {
	b.err = err
	return b
}

// Build finalises and emits the HTTP response.
func (b *Builder) Build() error {
	if b.err != nil {
		return b.buildError()
	}
	return b.buildSuccess()
}

func (b *Builder) buildSuccess() error {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	payload := struct {
		Success   bool      `json:"success"`
		Data      any       `json:"data"`
		Message   string    `json:"message,omitempty"`
		Timestamp time.Time `json:"timestamp"`
	}{
		Success:   true,
		Data:      b.data,
		Message:   b.message,
		Timestamp: time.Now(),
	}
	return b.ctx.JSON(b.status, payload)
}

func (b *Builder) buildError() error {
	appErr := errorbank.From(b.err)
	status := b.status
	if status < 400 {
		status = appErr.StatusCode()
	}
	payload := struct {
		Success   bool      `json:"success"`
		Error     string    `json:"error"`
		Timestamp time.Time `json:"timestamp"`
	}{
		Success:   false,
		Error:     appErr.Message(),
		Timestamp: time.Now(),
	}
	return b.ctx.JSON(status, payload)
}
