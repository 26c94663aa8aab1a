package tx

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"

	txerrors "github.com/kigichang/sawtk/core/errors"
	"github.com/kigichang/sawtk/core/namespace"
	"github.com/kigichang/sawtk/core/types"
	"github.com/kigichang/sawtk/crypto"
)

const (
	testKey    = "2f1e7b7a130d7ba9da0068b3bb0ba1d79e7e77110302c9f746c3c2a63fe40088"
	testPubKey = "026a2c795a9776f75464aa3bda3534c3154a6e91b357b1181d3f515110f84b67c5"
	batchKey   = "51b845c2cdde22fe646148f0b51eaf5feec8c82ee921d5e0cbe7619f3bb9c62d"
	batchPub   = "039c20a66b4ec7995391dbec1d8bb0e2c6e6fd63cd259ed5b877cb4ea98858cf6d"
)

func testSigner(t *testing.T, key string) *crypto.Signer {
	t.Helper()
	signer, err := crypto.SignerFromHex(key)
	require.NoError(t, err)
	return signer
}

func testPayload(t *testing.T, value string) *Payload {
	t.Helper()
	ns := namespace.New("intkey")
	address := ns.MakeAddress(value)
	p, err := NewPayload("intkey", "1.0", wrapperspb.String(value), []string{address}, []string{address})
	require.NoError(t, err)
	return p
}

func TestNewPayload(t *testing.T) {
	p := testPayload(t, "foo")
	raw, err := proto.Marshal(wrapperspb.String("foo"))
	require.NoError(t, err)

	require.Equal(t, "intkey", p.FamilyName())
	require.Equal(t, "1.0", p.FamilyVersion())
	require.Equal(t, raw, p.Bytes())
	require.Equal(t, crypto.SHA512BytesHex(raw), p.SHA512())
	require.Len(t, p.Inputs(), 1)
	require.Equal(t, p.Inputs(), p.Outputs())

	_, err = NewPayload("intkey", "1.0", wrapperspb.String("\xff"), nil, nil)
	require.ErrorIs(t, err, txerrors.ErrSerialization)

	_, err = NewPayload("intkey", "1.0", nil, nil, nil)
	require.ErrorIs(t, err, txerrors.ErrSerialization)
}

func TestNewCommandPayload(t *testing.T) {
	p, err := NewCommandPayload("counter", "1.0", -3, wrapperspb.String("a"), nil, nil)
	require.NoError(t, err)

	envelope := &types.Request{}
	require.NoError(t, envelope.Unmarshal(p.Bytes()))
	require.Equal(t, int32(-3), envelope.Command)
	body := &wrapperspb.StringValue{}
	require.NoError(t, proto.Unmarshal(envelope.Payload, body))
	require.Equal(t, "a", body.GetValue())

	p, err = NewCommandPayload("counter", "1.0", 4, nil, nil, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x08, 0x04}, p.Bytes())
}

func TestPayloadHeader(t *testing.T) {
	p := testPayload(t, "foo")
	h1 := p.Header(batchPub, testPubKey, []string{"dep"})
	h2 := p.Header(batchPub, testPubKey, []string{"dep"})

	require.Equal(t, "intkey", h1.FamilyName)
	require.Equal(t, "1.0", h1.FamilyVersion)
	require.Equal(t, batchPub, h1.BatcherPublicKey)
	require.Equal(t, testPubKey, h1.SignerPublicKey)
	require.Equal(t, []string{"dep"}, h1.Dependencies)
	require.Equal(t, p.SHA512(), h1.PayloadSha512)
	require.True(t, crypto.IsUUID(h1.Nonce))
	require.NotEqual(t, h1.Nonce, h2.Nonce)
}

func TestBuildTransaction(t *testing.T) {
	builder, err := NewBuilder(testSigner(t, testKey))
	require.NoError(t, err)
	p := testPayload(t, "foo")

	txn, err := builder.Build(p, batchPub, nil)
	require.NoError(t, err)
	require.Equal(t, p.Bytes(), txn.Payload)
	require.True(t, crypto.Verify(testPubKey, txn.HeaderSignature, txn.Header))
	require.NoError(t, VerifyTransaction(txn))

	header, err := txn.DecodeHeader()
	require.NoError(t, err)
	require.Equal(t, crypto.SHA512BytesHex(txn.Payload), header.PayloadSha512)
	require.Equal(t, batchPub, header.BatcherPublicKey)
	require.Equal(t, testPubKey, header.SignerPublicKey)
	require.Empty(t, header.Dependencies)
}

func TestBuildTransactionDefaultsBatcherToSigner(t *testing.T) {
	builder, err := NewBuilder(testSigner(t, testKey))
	require.NoError(t, err)
	header, err := builder.Header(testPayload(t, "foo"), "", nil)
	require.NoError(t, err)
	require.Equal(t, testPubKey, header.BatcherPublicKey)
}

func TestTamperedTransactionFailsVerification(t *testing.T) {
	builder, err := NewBuilder(testSigner(t, testKey))
	require.NoError(t, err)
	txn, err := builder.Build(testPayload(t, "foo"), batchPub, nil)
	require.NoError(t, err)

	tampered := *txn
	tampered.Payload = append([]byte{}, txn.Payload...)
	tampered.Payload[len(tampered.Payload)-1] ^= 0x01
	require.ErrorIs(t, VerifyTransaction(&tampered), txerrors.ErrValidationFailed)

	// A header carrying the new digest no longer matches the old signature.
	header, err := txn.DecodeHeader()
	require.NoError(t, err)
	header.PayloadSha512 = crypto.SHA512BytesHex(tampered.Payload)
	tampered.Header, err = header.Marshal()
	require.NoError(t, err)
	require.NotEqual(t, txn.Header, tampered.Header)
	require.False(t, crypto.Verify(testPubKey, txn.HeaderSignature, tampered.Header))
	require.ErrorIs(t, VerifyTransaction(&tampered), txerrors.ErrValidationFailed)
}

func TestNilArguments(t *testing.T) {
	_, err := NewBuilder(nil)
	require.ErrorIs(t, err, ErrMissingSigner)
	_, err = NewBatcher(nil)
	require.ErrorIs(t, err, ErrMissingSigner)

	builder, err := NewBuilder(testSigner(t, testKey))
	require.NoError(t, err)
	_, err = builder.Build(nil, "", nil)
	require.ErrorIs(t, err, ErrMissingPayload)
}

func buildTransactions(t *testing.T, n int) []*types.Transaction {
	t.Helper()
	builder, err := NewBuilder(testSigner(t, testKey))
	require.NoError(t, err)
	txs := make([]*types.Transaction, 0, n)
	for i := 0; i < n; i++ {
		txn, err := builder.Build(testPayload(t, fmt.Sprintf("key-%d", i)), batchPub, nil)
		require.NoError(t, err)
		txs = append(txs, txn)
	}
	return txs
}

func TestBuildBatchPreservesOrder(t *testing.T) {
	batcher, err := NewBatcher(testSigner(t, batchKey))
	require.NoError(t, err)
	require.Equal(t, "batcher: "+batchPub, batcher.String())

	for _, n := range []int{0, 1, 5} {
		t.Run(fmt.Sprintf("size_%d", n), func(t *testing.T) {
			txs := buildTransactions(t, n)
			batch, err := batcher.Build(txs)
			require.NoError(t, err)

			want := make([]string, 0, n)
			for _, txn := range txs {
				want = append(want, txn.ID())
			}
			ids, err := TransactionIDs(batch)
			require.NoError(t, err)
			require.Equal(t, len(want), len(ids))
			for i := range want {
				require.Equal(t, want[i], ids[i])
			}
			require.Len(t, batch.Transactions, n)
			require.True(t, crypto.Verify(batchPub, batch.HeaderSignature, batch.Header))
			require.NoError(t, VerifyBatch(batch))
		})
	}
}

func TestBuildBatchRejectsUnsignedTransaction(t *testing.T) {
	batcher, err := NewBatcher(testSigner(t, batchKey))
	require.NoError(t, err)
	txs := buildTransactions(t, 2)
	txs = append(txs, &types.Transaction{})
	_, err = batcher.Build(txs)
	require.ErrorIs(t, err, txerrors.ErrMalformedInput)
}

func TestVerifyBatchDetectsMismatches(t *testing.T) {
	batcher, err := NewBatcher(testSigner(t, batchKey))
	require.NoError(t, err)
	txs := buildTransactions(t, 2)
	batch, err := batcher.Build(txs)
	require.NoError(t, err)

	reordered := *batch
	reordered.Transactions = []*types.Transaction{txs[1], txs[0]}
	require.ErrorIs(t, VerifyBatch(&reordered), txerrors.ErrValidationFailed)

	// Transactions naming a different batcher are rejected.
	other, err := NewBatcher(testSigner(t, testKey))
	require.NoError(t, err)
	foreign, err := other.Build(txs)
	require.NoError(t, err)
	require.ErrorIs(t, VerifyBatch(foreign), txerrors.ErrValidationFailed)
}

func TestBatchListRoundTrip(t *testing.T) {
	batcher, err := NewBatcher(testSigner(t, batchKey))
	require.NoError(t, err)
	first, err := batcher.Build(buildTransactions(t, 1))
	require.NoError(t, err)
	second, err := batcher.Build(buildTransactions(t, 2))
	require.NoError(t, err)

	list := ToBatchList(first, second)
	raw, err := list.Marshal()
	require.NoError(t, err)

	decoded := &types.BatchList{}
	require.NoError(t, decoded.Unmarshal(raw))
	require.Len(t, decoded.Batches, 2)
	require.Equal(t, first.ID(), decoded.Batches[0].ID())
	require.Equal(t, second.ID(), decoded.Batches[1].ID())
	require.Len(t, decoded.Batches[1].Transactions, 2)
	for _, b := range decoded.Batches {
		require.NoError(t, VerifyBatch(b))
	}

	require.Empty(t, ToBatchList().Batches)
}

func TestBatchListWithNilBatchFailsToMarshal(t *testing.T) {
	_, err := ToBatchList(nil).Marshal()
	require.ErrorIs(t, err, txerrors.ErrSerialization)

	raw, err := ToBatchList().Marshal()
	require.NoError(t, err)
	require.Empty(t, raw)
}
