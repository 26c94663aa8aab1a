package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"

	txerrors "github.com/kigichang/sawtk/core/errors"
)

func TestHashVectors(t *testing.T) {
	require.Equal(t, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", SHA256Hex("hello world"))
	require.Equal(t,
		"309ecc489c12d6eb4cc40f50c902f2b4d0ed77ee511a7c7a9bcd3ca86d4cd86f989dd35bc5ff499670da34255b45b0cfd830e81f605dcf7dc5542e93ae9cd76f",
		SHA512Hex("hello world"),
	)
	require.Equal(t, SHA512Hex("hello world"), SHA512BytesHex([]byte("hello world")))
	require.Len(t, SHA256([]byte{}), 32)
	require.Len(t, SHA512([]byte{}), 64)
}

func TestHexRoundTrip(t *testing.T) {
	for _, b := range [][]byte{
		{},
		{0x00},
		{0xde, 0xad, 0xbe, 0xef},
		SHA512([]byte("round trip")),
	} {
		decoded, err := HexToBytes(BytesToHex(b))
		require.NoError(t, err)
		require.Equal(t, b, decoded)
	}

	decoded, err := HexToBytes("DEADbeef")
	require.NoError(t, err)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, decoded)
}

func TestHexToBytesErrors(t *testing.T) {
	_, err := HexToBytes("abc")
	require.ErrorIs(t, err, txerrors.ErrMalformedInput)
	require.Contains(t, err.Error(), "odd hex string length 3")

	_, err = HexToBytes("abzd")
	require.ErrorIs(t, err, txerrors.ErrMalformedInput)
	require.Contains(t, err.Error(), "at 2")
}

func TestIsHex(t *testing.T) {
	cases := map[string]bool{
		"":       true,
		"00":     true,
		"aBcD":   true,
		"0":      false,
		"abc":    false,
		"0g":     false,
		"12 4":   false,
		"é0":     false,
		"0x1234": false,
	}
	for input, want := range cases {
		require.Equal(t, want, IsHex(input), input)
	}
}

func TestIsPublicKey(t *testing.T) {
	require.True(t, IsPublicKey("03d73e65987f716a33fb2cf1bec01711c6bee200b90143ee656f1282fdd1276a9c"))
	require.False(t, IsPublicKey("03d73e65987f716a33fb2cf1bec01711c6bee200b90143ee656f1282fdd1276a9"))
	require.False(t, IsPublicKey("03d73e65987f716a33fb2cf1bec01711c6bee200b90143ee656f1282fdd1276a9z"))
}

func TestNonce(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		n := Nonce()
		require.True(t, IsUUID(n))
		_, dup := seen[n]
		require.False(t, dup)
		seen[n] = struct{}{}
	}
	require.False(t, IsUUID("not-a-uuid"))
}
