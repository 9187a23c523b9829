package diag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordLast(t *testing.T) {
	ctx := WithKey(context.Background())
	require.Nil(t, Last(ctx))

	Record(ctx, nil, "dialing node", nil)
	entry := Last(ctx)
	require.NotNil(t, entry)
	require.Equal(t, "dialing node", entry.Message)
	require.Nil(t, entry.Err)

	err := errors.New("boom")
	Record(ctx, nil, "request failed", err)
	entry = Last(ctx)
	require.Equal(t, "request failed", entry.Message)
	require.Equal(t, err, entry.Err)
}

func TestRecordIsolatedPerKey(t *testing.T) {
	ctx1 := WithKey(context.Background())
	ctx2 := WithKey(context.Background())

	Record(ctx1, nil, "first", nil)
	require.NotNil(t, Last(ctx1))
	require.Nil(t, Last(ctx2))
}

func TestClear(t *testing.T) {
	ctx := WithKey(context.Background())
	Record(ctx, nil, "something", nil)
	require.NotNil(t, Last(ctx))
	Clear(ctx)
	require.Nil(t, Last(ctx))
}

func TestEntryString(t *testing.T) {
	e := &Entry{Message: "msg", File: "f.go", Line: 10}
	require.Equal(t, "f.go:10: msg", e.String())

	e.Err = errors.New("oops")
	require.Equal(t, "f.go:10: msg: oops", e.String())
}
