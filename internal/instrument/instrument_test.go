package instrument

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"currencytracker/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestWrap1_Success(t *testing.T) {
	logger, hook := test.NewNullLogger()
	op := func(_ context.Context, codes []string) (map[string]float64, error) {
		return map[string]float64{codes[0]: 92.1}, nil
	}

	wrapped := Wrap1("fetch_rates", logger, op)
	res, err := wrapped(context.Background(), []string{"USD"})

	require.NoError(t, err)
	require.Equal(t, map[string]float64{"USD": 92.1}, res)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	require.Equal(t, logrus.InfoLevel, entries[0].Level)
	require.Equal(t, "start fetch_rates", entries[0].Message)
	require.Equal(t, "[USD]", entries[0].Data["args"])
	require.Equal(t, "fetch_rates", entries[0].Data["op"])
	require.Equal(t, logrus.InfoLevel, entries[1].Level)
	require.Equal(t, "finish fetch_rates", entries[1].Message)
	require.Equal(t, "map[USD:92.1]", entries[1].Data["result"])
}

func TestWrap1_FailureIsLoggedAndReturnedUnchanged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	cause := &domain.FeedError{Kind: domain.KindCodeNotFound, Code: "XAU"}
	op := func(_ context.Context, _ []string) (map[string]float64, error) {
		return nil, cause
	}

	res, err := Wrap1("fetch_rates", logger, op)(context.Background(), []string{"XAU"})

	require.Nil(t, res)
	require.Same(t, cause, err)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	require.Equal(t, logrus.InfoLevel, entries[0].Level)
	require.Equal(t, logrus.ErrorLevel, entries[1].Level)
	require.Equal(t, "CodeNotFound", entries[1].Data["kind"])
	require.Equal(t, `CodeNotFound "XAU"`, entries[1].Message)
}

func TestWrap0AndWrap2(t *testing.T) {
	logger, hook := test.NewNullLogger()

	answer := Wrap0("answer", logger, func(context.Context) (int, error) { return 42, nil })
	got, err := answer(context.Background())
	require.NoError(t, err)
	require.Equal(t, 42, got)

	boom := errors.New("boom")
	div := Wrap2("div", logger, func(_ context.Context, a, b int) (int, error) {
		if b == 0 {
			return 0, boom
		}
		return a / b, nil
	})
	got, err = div(context.Background(), 6, 3)
	require.NoError(t, err)
	require.Equal(t, 2, got)

	_, err = div(context.Background(), 1, 0)
	require.ErrorIs(t, err, boom)

	levels := make([]logrus.Level, 0, len(hook.AllEntries()))
	for _, e := range hook.AllEntries() {
		levels = append(levels, e.Level)
	}
	require.Equal(t, []logrus.Level{
		logrus.InfoLevel, logrus.InfoLevel,
		logrus.InfoLevel, logrus.InfoLevel,
		logrus.InfoLevel, logrus.ErrorLevel,
	}, levels)
	require.Equal(t, "*errors.errorString", hook.LastEntry().Data["kind"])
	require.Equal(t, "*errors.errorString: boom", hook.LastEntry().Message)
}

func TestKind(t *testing.T) {
	wrapped := fmt.Errorf("refresh: %w", &domain.FeedError{Kind: domain.KindTransport})
	require.Equal(t, "TransportError", Kind(wrapped))
	require.Equal(t, "*errors.errorString", Kind(errors.New("x")))
}
