package txsender

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/rpc"
	sdktypes "github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"klend-admin-sol/internal/logic/domain"
	"klend-admin-sol/internal/types"
)

const testBlockhash = "EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N"

type fakeLedger struct {
	mu           sync.Mutex
	blockhash    string
	blockhashErr error
	sendErr      error
	signature    string
	rent         uint64
	accounts     map[string]client.AccountInfo

	blockhashCalls int
	sent           []sdktypes.Transaction
}

func (f *fakeLedger) GetLatestBlockhash(ctx context.Context) (rpc.GetLatestBlockhashValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blockhashCalls++
	if f.blockhashErr != nil {
		return rpc.GetLatestBlockhashValue{}, f.blockhashErr
	}
	blockhash := f.blockhash
	if blockhash == "" {
		blockhash = testBlockhash
	}
	return rpc.GetLatestBlockhashValue{Blockhash: blockhash, LatestValidBlockHeight: 100}, nil
}

func (f *fakeLedger) SendTransaction(ctx context.Context, tx sdktypes.Transaction) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, tx)
	if f.sendErr != nil {
		return "", f.sendErr
	}
	return f.signature, nil
}

func (f *fakeLedger) GetMinimumBalanceForRentExemption(ctx context.Context, dataLen uint64) (uint64, error) {
	return f.rent * dataLen, nil
}

func (f *fakeLedger) GetAccountInfo(ctx context.Context, base58Addr string) (client.AccountInfo, error) {
	return f.accounts[base58Addr], nil
}

type recordingSink struct {
	err      error
	receipts []Receipt
}

func (s *recordingSink) Record(ctx context.Context, r Receipt) error {
	s.receipts = append(s.receipts, r)
	return s.err
}

func signerIx(program types.Pubkey, signers ...sdktypes.Account) domain.Instruction {
	ix := domain.Instruction{ProgramID: program, Data: []byte{1}}
	for _, s := range signers {
		ix.Accounts = append(ix.Accounts, domain.AccountMeta{
			Pubkey:     types.PubkeyFromCommon(s.PublicKey),
			IsSigner:   true,
			IsWritable: true,
		})
	}
	ix.Accounts = append(ix.Accounts, domain.AccountMeta{Pubkey: types.Pubkey{0x42}, IsWritable: true})
	return ix
}

func TestSubmit_Success(t *testing.T) {
	payer := sdktypes.NewAccount()
	market := sdktypes.NewAccount()
	program := types.Pubkey{0x99}
	ledger := &fakeLedger{signature: "sig-1"}
	sink := &recordingSink{}

	o := NewOrchestrator(ledger, sink)
	o.now = func() time.Time { return time.Unix(1700000000, 0) }

	req := Request{
		Label:        "init_lending_market",
		FeePayer:     types.PubkeyFromCommon(payer.PublicKey),
		Instructions: []domain.Instruction{signerIx(program, payer), signerIx(program, payer, market)},
		Signers:      []sdktypes.Account{payer, market},
	}
	receipt, err := o.Submit(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "sig-1", receipt.Signature)
	assert.Equal(t, 2, receipt.InstructionCount)
	assert.True(t, receipt.Succeeded())
	assert.Equal(t, time.Unix(1700000000, 0), receipt.SubmittedAt)

	require.Len(t, ledger.sent, 1)
	tx := ledger.sent[0]
	assert.Equal(t, testBlockhash, tx.Message.RecentBlockHash)
	assert.Equal(t, payer.PublicKey, tx.Message.Accounts[0], "fee payer 位于首位")
	assert.Len(t, tx.Message.Instructions, 2)
	assert.Len(t, tx.Signatures, 2)

	require.Len(t, sink.receipts, 1)
	assert.Equal(t, receipt, sink.receipts[0])
}

func TestSubmit_LocalChecksBeforeNetwork(t *testing.T) {
	payer := sdktypes.NewAccount()
	other := sdktypes.NewAccount()
	program := types.Pubkey{0x99}
	payerKey := types.PubkeyFromCommon(payer.PublicKey)

	cases := map[string]Request{
		"no instructions": {
			FeePayer: payerKey,
			Signers:  []sdktypes.Account{payer},
		},
		"missing instruction signer": {
			FeePayer:     payerKey,
			Instructions: []domain.Instruction{signerIx(program, payer, other)},
			Signers:      []sdktypes.Account{payer},
		},
		"fee payer not a signer": {
			FeePayer:     types.PubkeyFromCommon(other.PublicKey),
			Instructions: []domain.Instruction{signerIx(program, payer)},
			Signers:      []sdktypes.Account{payer},
		},
		"unused signer": {
			FeePayer:     payerKey,
			Instructions: []domain.Instruction{signerIx(program, payer)},
			Signers:      []sdktypes.Account{payer, other},
		},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			ledger := &fakeLedger{signature: "unused"}
			sink := &recordingSink{}
			o := NewOrchestrator(ledger, sink)

			_, err := o.Submit(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.Zero(t, ledger.blockhashCalls, "本地校验失败不能触发网络调用")
			assert.Empty(t, ledger.sent)
			assert.Empty(t, sink.receipts)
		})
	}
}

func TestSubmit_RemoteFailure(t *testing.T) {
	payer := sdktypes.NewAccount()
	program := types.Pubkey{0x99}
	remote := errors.New("Transaction simulation failed: custom program error: 0x1770")

	req := Request{
		Label:        "deposit",
		FeePayer:     types.PubkeyFromCommon(payer.PublicKey),
		Instructions: []domain.Instruction{signerIx(program, payer)},
		Signers:      []sdktypes.Account{payer},
	}

	t.Run("send", func(t *testing.T) {
		ledger := &fakeLedger{sendErr: remote}
		sink := &recordingSink{}
		receipt, err := NewOrchestrator(ledger, sink).Submit(context.Background(), req)

		var subErr *SubmissionError
		require.ErrorAs(t, err, &subErr)
		assert.Equal(t, StageSend, subErr.Stage)
		assert.Equal(t, "deposit", subErr.Label)
		assert.ErrorIs(t, err, remote, "远端错误原样透传")
		assert.Len(t, ledger.sent, 1, "不重试")

		assert.False(t, receipt.Succeeded())
		assert.Empty(t, receipt.Signature)
		require.Len(t, sink.receipts, 1)
		assert.Contains(t, sink.receipts[0].Err, "0x1770")
	})

	t.Run("blockhash", func(t *testing.T) {
		ledger := &fakeLedger{blockhashErr: remote}
		_, err := NewOrchestrator(ledger).Submit(context.Background(), req)

		var subErr *SubmissionError
		require.ErrorAs(t, err, &subErr)
		assert.Equal(t, StageBlockhash, subErr.Stage)
		assert.Empty(t, ledger.sent)
	})
}

func TestSubmit_SignFailureNoReceipt(t *testing.T) {
	payer := sdktypes.NewAccount()
	// 0 / O / I / l 不在 base58 字母表中，消息序列化失败
	ledger := &fakeLedger{blockhash: "0OIl", signature: "unused"}
	sink := &recordingSink{}

	receipt, err := NewOrchestrator(ledger, sink).Submit(context.Background(), Request{
		Label:        "init_user_metadata",
		FeePayer:     types.PubkeyFromCommon(payer.PublicKey),
		Instructions: []domain.Instruction{signerIx(types.Pubkey{0x99}, payer)},
		Signers:      []sdktypes.Account{payer},
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	var subErr *SubmissionError
	assert.False(t, errors.As(err, &subErr))
	assert.Equal(t, Receipt{}, receipt)
	assert.Equal(t, 1, ledger.blockhashCalls)
	assert.Empty(t, ledger.sent, "签名失败不应发送")
	assert.Empty(t, sink.receipts, "本地错误不写回执")
}

func TestSubmit_SinkFailureIgnored(t *testing.T) {
	payer := sdktypes.NewAccount()
	ledger := &fakeLedger{signature: "sig-2"}
	failing := &recordingSink{err: errors.New("kafka down")}
	ok := &recordingSink{}

	receipt, err := NewOrchestrator(ledger, failing, ok).Submit(context.Background(), Request{
		Label:        "refresh",
		FeePayer:     types.PubkeyFromCommon(payer.PublicKey),
		Instructions: []domain.Instruction{signerIx(types.Pubkey{0x99}, payer)},
		Signers:      []sdktypes.Account{payer},
	})
	require.NoError(t, err)
	assert.Equal(t, "sig-2", receipt.Signature)
	assert.Len(t, failing.receipts, 1)
	assert.Len(t, ok.receipts, 1, "前一个 sink 失败不影响后续 sink")
}

func TestRentExemptionAndAccountInfo(t *testing.T) {
	key := types.Pubkey{0x10}
	owner := common.PublicKeyFromBytes([]byte{0x20})
	ledger := &fakeLedger{
		rent: 2,
		accounts: map[string]client.AccountInfo{
			key.String(): {Lamports: 5, Owner: owner},
		},
	}
	o := NewOrchestrator(ledger)

	lamports, err := o.RentExemption(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(200), lamports)

	info, err := o.AccountInfo(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, owner, info.Owner)

	missing, err := o.AccountInfo(context.Background(), types.Pubkey{0x11})
	require.NoError(t, err)
	assert.Zero(t, missing.Lamports)
}
