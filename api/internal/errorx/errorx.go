package errorx

import (
	"context"
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"
)

const internalMsg = "internal server error"

// CodeError is an error that is safe to show to the client.
type CodeError struct {
	Code int
	Msg  string
}

func (e *CodeError) Error() string {
	return e.Msg
}

func New(code int, msg string) *CodeError {
	return &CodeError{Code: code, Msg: msg}
}

func NewBadRequest(msg string) *CodeError {
	return New(http.StatusBadRequest, msg)
}

func NewUnauthorized(msg string) *CodeError {
	return New(http.StatusUnauthorized, msg)
}

func NewNotFound(msg string) *CodeError {
	return New(http.StatusNotFound, msg)
}

// NewConflict reports a uniqueness or state conflict. The API reports these
// as 400 with a specific message.
func NewConflict(msg string) *CodeError {
	return New(http.StatusBadRequest, msg)
}

func NewTooManyRequests() *CodeError {
	return New(http.StatusTooManyRequests, "too many requests, please try again later")
}

// Body is the envelope written for every failed request.
type Body struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Handler is registered with httpx.SetErrorHandlerCtx. Errors that are not
// CodeErrors are logged and reported as a generic 500.
func Handler(ctx context.Context, err error) (int, any) {
	var ce *CodeError
	if errors.As(err, &ce) {
		return ce.Code, Body{Error: ce.Msg}
	}

	logx.WithContext(ctx).Errorf("unhandled error: %v", err)
	return http.StatusInternalServerError, Body{Error: internalMsg}
}
