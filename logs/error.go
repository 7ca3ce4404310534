package logs

import (
	"context"
	"errors"
	"fmt"
)

// WrapSpan joins the span id of ctx to err so that the failure can be found in the logs.
func WrapSpan(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	v := ctx.Value(SpanKey)
	if v == nil {
		return err
	}
	return errors.Join(err, fmt.Errorf("span: %s", v.(Span)))
}
