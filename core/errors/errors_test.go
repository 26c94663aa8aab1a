package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInvalidKeepsMessageAndKind(t *testing.T) {
	err := Invalid(ErrNotFound, "%s not found", "abc")
	require.Equal(t, "abc not found", err.Error())
	require.ErrorIs(t, err, ErrNotFound)
	require.True(t, IsInvalidTransaction(err))
	require.Equal(t, "not_found", KindName(err))
}

func TestAsInvalid(t *testing.T) {
	require.Nil(t, AsInvalid(nil))

	orig := Invalid(ErrStore, "boom")
	require.Same(t, orig, error(AsInvalid(fmt.Errorf("wrapped: %w", orig))))

	plain := AsInvalid(stderrors.New("insufficient balance"))
	require.Equal(t, "insufficient balance", plain.Error())
	require.ErrorIs(t, plain, ErrValidationFailed)

	signing := AsInvalid(fmt.Errorf("%w: bad key", ErrSigning))
	require.ErrorIs(t, signing, ErrSigning)
	require.Equal(t, "signing", KindName(signing))
}

func TestKindName(t *testing.T) {
	require.Equal(t, "", KindName(nil))
	require.Equal(t, "validation_failed", KindName(stderrors.New("x")))
	require.Equal(t, "unknown_command", KindName(ErrUnknownCommand))
}
