package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/rpc"
	sdktypes "github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"klend-admin-sol/internal/consts"
	"klend-admin-sol/internal/logic/instruction"
	"klend-admin-sol/internal/logic/reserveconfig"
	"klend-admin-sol/internal/logic/txsender"
	"klend-admin-sol/internal/types"
)

type fakeLedger struct {
	sendErr  error
	rentErr  error
	accounts map[string]client.AccountInfo

	rentSizes []uint64
	sent      []sdktypes.Transaction
	deadlines []bool
}

func (f *fakeLedger) GetLatestBlockhash(ctx context.Context) (rpc.GetLatestBlockhashValue, error) {
	return rpc.GetLatestBlockhashValue{Blockhash: "EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N"}, nil
}

func (f *fakeLedger) SendTransaction(ctx context.Context, tx sdktypes.Transaction) (string, error) {
	_, ok := ctx.Deadline()
	f.deadlines = append(f.deadlines, ok)
	f.sent = append(f.sent, tx)
	if f.sendErr != nil {
		return "", f.sendErr
	}
	return "sig", nil
}

func (f *fakeLedger) GetMinimumBalanceForRentExemption(ctx context.Context, dataLen uint64) (uint64, error) {
	f.rentSizes = append(f.rentSizes, dataLen)
	if f.rentErr != nil {
		return 0, f.rentErr
	}
	return dataLen * 10, nil
}

func (f *fakeLedger) GetAccountInfo(ctx context.Context, base58Addr string) (client.AccountInfo, error) {
	return f.accounts[base58Addr], nil
}

type recordingSink struct {
	receipts []txsender.Receipt
}

func (s *recordingSink) Record(ctx context.Context, r txsender.Receipt) error {
	s.receipts = append(s.receipts, r)
	return nil
}

func newTestService(ledger *fakeLedger, sink *recordingSink) *LendingService {
	return NewLendingService(
		instruction.NewBuilder(consts.KlendProgram),
		txsender.NewOrchestrator(ledger, sink),
		reserveconfig.NewOracleTable(consts.DefaultOracleSymbols()),
		5*time.Second,
	)
}

// programOf 返回交易中第 i 条指令的 program id
func programOf(tx sdktypes.Transaction, i int) types.Pubkey {
	ix := tx.Message.Instructions[i]
	return types.PubkeyFromCommon(tx.Message.Accounts[ix.ProgramIDIndex])
}

func TestCreateLendingMarket(t *testing.T) {
	ledger := &fakeLedger{}
	sink := &recordingSink{}
	svc := newTestService(ledger, sink)

	payer := sdktypes.NewAccount()
	market := sdktypes.NewAccount()

	receipt, err := svc.CreateLendingMarket(context.Background(), payer, market)
	require.NoError(t, err)
	assert.Equal(t, "sig", receipt.Signature)
	assert.Equal(t, consts.OpInitLendingMarket.String(), receipt.Label)
	assert.Equal(t, 2, receipt.InstructionCount)

	assert.Equal(t, []uint64{consts.LendingMarketSize}, ledger.rentSizes)
	require.Len(t, ledger.sent, 1)
	tx := ledger.sent[0]
	assert.Len(t, tx.Signatures, 2, "payer 与新 market 账户都需签名")
	assert.Equal(t, consts.SystemProgram, programOf(tx, 0))
	assert.Equal(t, consts.KlendProgram, programOf(tx, 1))
	assert.Equal(t, []bool{true}, ledger.deadlines, "提交带超时")
	assert.Len(t, sink.receipts, 1)
}

func TestInitReserve(t *testing.T) {
	ledger := &fakeLedger{}
	svc := newTestService(ledger, &recordingSink{})

	payer := sdktypes.NewAccount()
	reserve := sdktypes.NewAccount()

	receipt, err := svc.InitReserve(context.Background(), payer, types.Pubkey{7}, reserve, consts.USDCMint, consts.TokenProgram)
	require.NoError(t, err)
	assert.Equal(t, "init_reserve", receipt.Label)
	assert.Equal(t, []uint64{consts.ReserveSize}, ledger.rentSizes)
	require.Len(t, ledger.sent, 1)
	assert.Len(t, ledger.sent[0].Signatures, 2)
}

func TestInitReserve_RentFailure(t *testing.T) {
	ledger := &fakeLedger{rentErr: errors.New("rpc down")}
	svc := newTestService(ledger, &recordingSink{})

	_, err := svc.InitReserve(context.Background(), sdktypes.NewAccount(), types.Pubkey{7}, sdktypes.NewAccount(), consts.USDCMint, consts.TokenProgram)
	assert.ErrorContains(t, err, "rpc down")
	assert.Empty(t, ledger.sent)
}

func TestUpdateReserveConfig(t *testing.T) {
	ledger := &fakeLedger{}
	svc := newTestService(ledger, &recordingSink{})
	payer := sdktypes.NewAccount()

	receipt, err := svc.UpdateReserveConfig(context.Background(), payer, types.Pubkey{7}, types.Pubkey{8}, "USDC", reserveconfig.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, "update_reserve_config", receipt.Label)

	require.Len(t, ledger.sent, 1)
	data := ledger.sent[0].Message.Instructions[0].Data
	assert.Len(t, data, 8+8+reserveconfig.ReserveConfigSize)
}

func TestUpdateReserveConfig_UnknownSymbolBeforeNetwork(t *testing.T) {
	ledger := &fakeLedger{}
	sink := &recordingSink{}
	svc := newTestService(ledger, sink)

	_, err := svc.UpdateReserveConfig(context.Background(), sdktypes.NewAccount(), types.Pubkey{7}, types.Pubkey{8}, "DOGE", reserveconfig.DefaultParams())
	assert.ErrorIs(t, err, reserveconfig.ErrUnknownOracleSymbol)
	assert.Empty(t, ledger.sent)
	assert.Empty(t, sink.receipts)
}

func TestInitUserMetadataAndObligation(t *testing.T) {
	ledger := &fakeLedger{}
	svc := newTestService(ledger, &recordingSink{})
	payer := sdktypes.NewAccount()

	receipt, err := svc.InitUserMetadata(context.Background(), payer)
	require.NoError(t, err)
	assert.Equal(t, "init_user_metadata", receipt.Label)

	receipt, err = svc.InitObligation(context.Background(), payer, types.Pubkey{7})
	require.NoError(t, err)
	assert.Equal(t, "init_obligation", receipt.Label)

	require.Len(t, ledger.sent, 2)
	for _, tx := range ledger.sent {
		assert.Len(t, tx.Signatures, 1, "payer 同时是 owner 与 fee payer")
	}
}

func TestIsUserMetadataInitialized(t *testing.T) {
	user := types.Pubkey{0x31}
	builder := instruction.NewBuilder(consts.KlendProgram)
	meta, err := builder.Deriver().UserMetadata(user)
	require.NoError(t, err)

	ledger := &fakeLedger{accounts: map[string]client.AccountInfo{
		meta.Key.String(): {Lamports: 1, Owner: consts.KlendProgram.ToCommon()},
	}}
	svc := newTestService(ledger, &recordingSink{})

	ok, err := svc.IsUserMetadataInitialized(context.Background(), user)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsUserMetadataInitialized(context.Background(), types.Pubkey{0x32})
	require.NoError(t, err)
	assert.False(t, ok, "账户不存在")

	ledger.accounts[meta.Key.String()] = client.AccountInfo{Owner: consts.SystemProgram.ToCommon()}
	ok, err = svc.IsUserMetadataInitialized(context.Background(), user)
	require.NoError(t, err)
	assert.False(t, ok, "归属其他程序")
}

func TestDeposit(t *testing.T) {
	ledger := &fakeLedger{}
	svc := newTestService(ledger, &recordingSink{})
	payer := sdktypes.NewAccount()

	receipt, err := svc.DepositReserveLiquidityAndObligationCollateral(
		context.Background(), payer, types.Pubkey{7}, types.Pubkey{8}, consts.MSOLMint, "MSOL", 1_000_000, consts.TokenProgram)
	require.NoError(t, err)
	assert.Equal(t, 3, receipt.InstructionCount)

	require.Len(t, ledger.sent, 1)
	tx := ledger.sent[0]
	require.Len(t, tx.Message.Instructions, 3)
	assert.Equal(t, instruction.Sighash("refresh_reserve"), [8]byte(tx.Message.Instructions[0].Data[:8]))
	assert.Equal(t, instruction.Sighash("refresh_obligation"), [8]byte(tx.Message.Instructions[1].Data[:8]))
	assert.Equal(t, instruction.Sighash("deposit_reserve_liquidity_and_obligation_collateral"), [8]byte(tx.Message.Instructions[2].Data[:8]))

	// refresh_reserve 第 3 个账户是 MSOL 对应的 Pyth 价格账户
	oracleIdx := tx.Message.Instructions[0].Accounts[2]
	assert.Equal(t, consts.PythMSOLPrice, types.PubkeyFromCommon(tx.Message.Accounts[oracleIdx]))
}

func TestDeposit_Failures(t *testing.T) {
	t.Run("unknown symbol", func(t *testing.T) {
		ledger := &fakeLedger{}
		svc := newTestService(ledger, &recordingSink{})
		_, err := svc.DepositReserveLiquidityAndObligationCollateral(
			context.Background(), sdktypes.NewAccount(), types.Pubkey{7}, types.Pubkey{8}, consts.MSOLMint, "msol", 1, consts.TokenProgram)
		assert.ErrorIs(t, err, reserveconfig.ErrUnknownOracleSymbol)
		assert.Empty(t, ledger.sent)
	})

	t.Run("remote rejection", func(t *testing.T) {
		ledger := &fakeLedger{sendErr: errors.New("insufficient funds")}
		sink := &recordingSink{}
		svc := newTestService(ledger, sink)
		_, err := svc.DepositReserveLiquidityAndObligationCollateral(
			context.Background(), sdktypes.NewAccount(), types.Pubkey{7}, types.Pubkey{8}, consts.USDCMint, "USDC", 1, consts.TokenProgram)

		var subErr *txsender.SubmissionError
		require.ErrorAs(t, err, &subErr)
		assert.Equal(t, "deposit", subErr.Label)
		require.Len(t, sink.receipts, 1)
		assert.False(t, sink.receipts[0].Succeeded())
	})
}
