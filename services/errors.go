package services

import "errors"

// AuthError rejects a connection at handshake time. The client gets a
// connect_error frame and the socket is closed.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// NotFoundError reports a missing user or group to an admitted connection.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ForbiddenError reports a failed friendship or membership precondition.
// Action and RecipientID, when set, let the client offer a remediation
// (e.g. prompt to send a friend request).
type ForbiddenError struct {
	Message     string
	Action      string
	RecipientID string
}

func (e *ForbiddenError) Error() string { return e.Message }

// ValidationError reports a malformed event payload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ErrorPayload is the wire shape of the "error" event.
type ErrorPayload struct {
	Message     string `json:"message"`
	Action      string `json:"action,omitempty"`
	RecipientID string `json:"recipientId,omitempty"`
}

// errorPayload converts a handler failure into the client-visible error
// event. Anything outside the taxonomy (store failures included) collapses
// to the per-operation fallback message.
func errorPayload(err error, fallback string) ErrorPayload {
	var notFound *NotFoundError
	var forbidden *ForbiddenError
	var validation *ValidationError

	switch {
	case errors.As(err, &notFound):
		return ErrorPayload{Message: notFound.Message}
	case errors.As(err, &forbidden):
		return ErrorPayload{
			Message:     forbidden.Message,
			Action:      forbidden.Action,
			RecipientID: forbidden.RecipientID,
		}
	case errors.As(err, &validation):
		return ErrorPayload{Message: validation.Message}
	default:
		return ErrorPayload{Message: fallback}
	}
}
