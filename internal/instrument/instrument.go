// Package instrument wraps operations with entry, exit and failure logging.
//
// The wrappers never change what the wrapped operation returns: results and
// errors pass through untouched.
package instrument

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Sink receives leveled records. *logrus.Logger and *logrus.Entry satisfy it.
type Sink interface {
	WithFields(fields logrus.Fields) *logrus.Entry
}

type (
	Func0[R any]       func(ctx context.Context) (R, error)
	Func1[A, R any]    func(ctx context.Context, a A) (R, error)
	Func2[A, B, R any] func(ctx context.Context, a A, b B) (R, error)
)

func Wrap0[R any](name string, sink Sink, op func(ctx context.Context) (R, error)) Func0[R] {
	return func(ctx context.Context) (R, error) {
		return observe(name, sink, []any{}, func() (R, error) { return op(ctx) })
	}
}

func Wrap1[A, R any](name string, sink Sink, op func(ctx context.Context, a A) (R, error)) Func1[A, R] {
	return func(ctx context.Context, a A) (R, error) {
		return observe(name, sink, []any{a}, func() (R, error) { return op(ctx, a) })
	}
}

func Wrap2[A, B, R any](name string, sink Sink, op func(ctx context.Context, a A, b B) (R, error)) Func2[A, B, R] {
	return func(ctx context.Context, a A, b B) (R, error) {
		return observe(name, sink, []any{a, b}, func() (R, error) { return op(ctx, a, b) })
	}
}

func observe[R any](name string, sink Sink, args []any, call func() (R, error)) (R, error) {
	log := sink.WithFields(logrus.Fields{"op": name})
	log.WithField("args", fmt.Sprint(args...)).Infof("start %s", name)

	res, err := call()
	if err != nil {
		kind := Kind(err)
		msg := err.Error()
		if !strings.HasPrefix(msg, kind) {
			msg = kind + ": " + msg
		}
		log.WithField("kind", kind).Error(msg)
		return res, err
	}

	log.WithField("result", fmt.Sprint(res)).Infof("finish %s", name)
	return res, nil
}

// Kind names an error for log records: the ErrorKind of the first error in
// the chain that reports one, else its dynamic type.
func Kind(err error) string {
	var kinded interface{ ErrorKind() string }
	if errors.As(err, &kinded) {
		return kinded.ErrorKind()
	}
	return fmt.Sprintf("%T", err)
}
