package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"

	txerrors "github.com/kigichang/sawtk/core/errors"
	"github.com/kigichang/sawtk/core/namespace"
	"github.com/kigichang/sawtk/core/types"
)

var ns = namespace.New("state.test")

func TestReadWriteRoundTrip(t *testing.T) {
	ctx := NewMemoryContext()
	a1, a2, missing := ns.MakeAddress("a"), ns.MakeAddress("b"), ns.MakeAddress("c")

	require.NoError(t, WriteMessages(ctx,
		Write{Address: a1, Message: wrapperspb.String("alpha")},
		Write{Address: a2, Message: wrapperspb.UInt64(42)},
	))

	states, err := Read(ctx, a1, a2, missing)
	require.NoError(t, err)
	require.Equal(t, 2, states.Len())
	require.True(t, states.Contains(a1))
	require.False(t, states.Contains(missing))

	var s wrapperspb.StringValue
	require.NoError(t, states.Decode(a1, &s))
	require.Equal(t, "alpha", s.GetValue())

	var n wrapperspb.UInt64Value
	require.NoError(t, ReadMessage(ctx, a2, &n))
	require.Equal(t, uint64(42), n.GetValue())
}

func TestDecodeDistinguishesMissingFromMalformed(t *testing.T) {
	ctx := NewMemoryContext()
	bad := ns.MakeAddress("bad")
	ctx.Put(bad, []byte{0xff})

	states, err := Read(ctx, bad, ns.MakeAddress("none"))
	require.NoError(t, err)

	err = states.Decode(ns.MakeAddress("none"), &wrapperspb.StringValue{})
	require.ErrorIs(t, err, txerrors.ErrNotFound)
	require.True(t, txerrors.IsInvalidTransaction(err))
	require.Contains(t, err.Error(), "not found")

	err = states.Decode(bad, &wrapperspb.StringValue{})
	require.ErrorIs(t, err, txerrors.ErrMalformedInput)
	require.True(t, txerrors.IsInvalidTransaction(err))
}

func TestWriteIsAllOrNothingOnEncodingFailure(t *testing.T) {
	ctx := NewMemoryContext()
	err := WriteMessages(ctx,
		Write{Address: ns.MakeAddress("ok"), Message: wrapperspb.String("fine")},
		Write{Address: ns.MakeAddress("bad"), Message: wrapperspb.String("\xff")},
	)
	require.ErrorIs(t, err, txerrors.ErrSerialization)
	require.Empty(t, ctx.Addresses())
}

func TestStoreFailuresBecomeInvalidTransaction(t *testing.T) {
	storeErr := errors.New("context closed")
	ctx := NewMemoryContext()
	ctx.FailGet, ctx.FailSet, ctx.FailDelete, ctx.FailEvent = storeErr, storeErr, storeErr, storeErr

	_, err := Read(ctx, ns.MakeAddress("a"))
	require.ErrorIs(t, err, txerrors.ErrStore)
	require.Contains(t, err.Error(), "context closed")

	err = WriteMessage(ctx, ns.MakeAddress("a"), wrapperspb.String("x"))
	require.ErrorIs(t, err, txerrors.ErrStore)

	_, err = Delete(ctx, ns.MakeAddress("a"))
	require.ErrorIs(t, err, txerrors.ErrStore)

	err = Emit(ctx, "test/event", nil, wrapperspb.String("x"))
	require.ErrorIs(t, err, txerrors.ErrStore)
	require.True(t, txerrors.IsInvalidTransaction(err))
}

func TestDelete(t *testing.T) {
	ctx := NewMemoryContext()
	a1, a2 := ns.MakeAddress("a"), ns.MakeAddress("b")
	require.NoError(t, WriteMessage(ctx, a1, wrapperspb.Bool(true)))

	deleted, err := Delete(ctx, a1, a2)
	require.NoError(t, err)
	require.Equal(t, []string{a1}, deleted)

	ok, err := DeleteOne(ctx, a1)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEmitSerializesLikeState(t *testing.T) {
	ctx := NewMemoryContext()
	attrs := []types.Attribute{{Key: "k1", Value: "v1"}, {Key: "k2", Value: "v2"}}
	msg := wrapperspb.String("payload")
	require.NoError(t, Emit(ctx, "test/created", attrs, msg))

	events := ctx.Events()
	require.Len(t, events, 1)
	require.Equal(t, "test/created", events[0].EventType)
	require.Equal(t, attrs, events[0].Attributes)

	want, err := proto.MarshalOptions{Deterministic: true}.Marshal(msg)
	require.NoError(t, err)
	require.Equal(t, want, events[0].Data)
}

func TestStatesAddressesSorted(t *testing.T) {
	s := NewStates(map[string][]byte{"b": nil, "a": {1}})
	require.Equal(t, []string{"a", "b"}, s.Addresses())
	b, ok := s.Bytes("a")
	require.True(t, ok)
	require.Equal(t, []byte{1}, b)
	require.Equal(t, 0, NewStates(nil).Len())
}
