package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/qx/mybudget/api/internal/errorx"
	"github.com/qx/mybudget/api/internal/model"
	"github.com/qx/mybudget/api/internal/session"
)

const dateLayout = "2006-01-02"

// caller returns the authenticated user of the request.
func caller(ctx context.Context) (*session.Principal, error) {
	p, ok := session.FromContext(ctx)
	if !ok {
		return nil, errorx.NewUnauthorized("not authorized")
	}

	return p, nil
}

// modelError turns model sentinels into client errors. Anything else is
// wrapped with op and reported as an internal error.
func modelError(err error, op, notFound string) error {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return errorx.NewNotFound(notFound)
	case errors.Is(err, model.ErrInvalidObjectId):
		return errorx.NewBadRequest("invalid id")
	case errors.Is(err, model.ErrDuplicate):
		return errorx.NewConflict("already exists")
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

// parseDate accepts RFC 3339 timestamps and plain dates. Plain dates are
// midnight in loc.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, errorx.NewBadRequest("invalid date, use YYYY-MM-DD")
	}

	return t, nil
}
