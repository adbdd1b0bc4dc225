package service

import (
	"context"
	"fmt"
	"time"

	sdktypes "github.com/blocto/solana-go-sdk/types"

	"klend-admin-sol/internal/consts"
	"klend-admin-sol/internal/logic/domain"
	"klend-admin-sol/internal/logic/instruction"
	"klend-admin-sol/internal/logic/reserveconfig"
	"klend-admin-sol/internal/logic/txsender"
	"klend-admin-sol/internal/pkg/logger"
	"klend-admin-sol/internal/types"
)

// LendingService 管理员与用户侧的完整操作流程：派生地址 → 组装指令 → 提交。
// 每个方法对应一笔原子交易。
type LendingService struct {
	builder       *instruction.Builder
	sender        *txsender.Orchestrator
	oracles       reserveconfig.OracleTable
	submitTimeout time.Duration // 0 表示不额外限制，由调用方 ctx 决定
}

func NewLendingService(
	builder *instruction.Builder,
	sender *txsender.Orchestrator,
	oracles reserveconfig.OracleTable,
	submitTimeout time.Duration,
) *LendingService {
	return &LendingService{
		builder:       builder,
		sender:        sender,
		oracles:       oracles,
		submitTimeout: submitTimeout,
	}
}

func pubkeyOf(account sdktypes.Account) types.Pubkey {
	return types.PubkeyFromCommon(account.PublicKey)
}

func (s *LendingService) submit(ctx context.Context, op consts.Operation, payer sdktypes.Account, ixs []domain.Instruction, extraSigners ...sdktypes.Account) (txsender.Receipt, error) {
	if s.submitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.submitTimeout)
		defer cancel()
	}

	return s.sender.Submit(ctx, txsender.Request{
		Label:        op.String(),
		FeePayer:     pubkeyOf(payer),
		Instructions: ixs,
		Signers:      append([]sdktypes.Account{payer}, extraSigners...),
	})
}

// CreateLendingMarket 分配 market 账户并初始化，market 需作为新账户签名
func (s *LendingService) CreateLendingMarket(ctx context.Context, payer, market sdktypes.Account) (txsender.Receipt, error) {
	lamports, err := s.sender.RentExemption(ctx, consts.LendingMarketSize)
	if err != nil {
		return txsender.Receipt{}, err
	}

	ixs, err := s.builder.InitLendingMarketWithAllocation(pubkeyOf(payer), pubkeyOf(market), [32]byte{}, lamports)
	if err != nil {
		return txsender.Receipt{}, err
	}

	logger.Infof("[LendingService] 创建 lending market: %s, owner: %s", pubkeyOf(market), pubkeyOf(payer))
	return s.submit(ctx, consts.OpInitLendingMarket, payer, ixs, market)
}

// InitReserve 分配 reserve 账户并在 market 下为 mint 初始化
func (s *LendingService) InitReserve(
	ctx context.Context,
	payer sdktypes.Account,
	market types.Pubkey,
	reserve sdktypes.Account,
	mint types.Pubkey,
	tokenProgram types.Pubkey,
) (txsender.Receipt, error) {
	lamports, err := s.sender.RentExemption(ctx, consts.ReserveSize)
	if err != nil {
		return txsender.Receipt{}, err
	}

	ixs, err := s.builder.InitReserveWithAllocation(pubkeyOf(payer), market, pubkeyOf(reserve), mint, tokenProgram, lamports)
	if err != nil {
		return txsender.Receipt{}, err
	}

	logger.Infof("[LendingService] 初始化 reserve: %s, market: %s, mint: %s", pubkeyOf(reserve), market, mint)
	return s.submit(ctx, consts.OpInitReserve, payer, ixs, reserve)
}

// UpdateReserveConfig 由 symbol + params 生成完整配置并整体覆盖。
// 未知 symbol、名称超长等编码错误在任何网络调用之前返回。
func (s *LendingService) UpdateReserveConfig(
	ctx context.Context,
	payer sdktypes.Account,
	market, reserve types.Pubkey,
	symbol string,
	params reserveconfig.Params,
) (txsender.Receipt, error) {
	cfg, err := reserveconfig.BuildReserveConfig(symbol, params, s.oracles)
	if err != nil {
		return txsender.Receipt{}, err
	}

	ix, err := s.builder.UpdateReserveConfig(pubkeyOf(payer), market, reserve, cfg)
	if err != nil {
		return txsender.Receipt{}, err
	}

	logger.Infof("[LendingService] 更新 reserve 配置: %s, symbol: %s, ltv: %d%%, oracle: %s",
		reserve, symbol, cfg.LoanToValuePct, cfg.TokenInfo.PythConfiguration.Price)
	return s.submit(ctx, consts.OpUpdateReserveConfig, payer, []domain.Instruction{ix})
}

// InitUserMetadata payer 同时作为 owner 与付费方，无推荐人
func (s *LendingService) InitUserMetadata(ctx context.Context, payer sdktypes.Account) (txsender.Receipt, error) {
	ix, err := s.builder.InitUserMetadata(pubkeyOf(payer), pubkeyOf(payer), domain.None())
	if err != nil {
		return txsender.Receipt{}, err
	}
	return s.submit(ctx, consts.OpInitUserMetadata, payer, []domain.Instruction{ix})
}

// IsUserMetadataInitialized 账户存在且归属 klend 程序即视为已初始化
func (s *LendingService) IsUserMetadataInitialized(ctx context.Context, user types.Pubkey) (bool, error) {
	meta, err := s.builder.Deriver().UserMetadata(user)
	if err != nil {
		return false, err
	}

	info, err := s.sender.AccountInfo(ctx, meta.Key)
	if err != nil {
		return false, err
	}
	return types.PubkeyFromCommon(info.Owner) == s.builder.ProgramID(), nil
}

// InitObligation 为 payer 在 market 下创建默认仓位（tag/id/seed 全 0）
func (s *LendingService) InitObligation(ctx context.Context, payer sdktypes.Account, market types.Pubkey) (txsender.Receipt, error) {
	ix, err := s.builder.InitDefaultObligation(pubkeyOf(payer), market)
	if err != nil {
		return txsender.Receipt{}, err
	}
	return s.submit(ctx, consts.OpInitObligation, payer, []domain.Instruction{ix})
}

// DepositReserveLiquidityAndObligationCollateral refresh_reserve → refresh_obligation → deposit，
// 价格账户按 symbol 从预言机表中查找。
func (s *LendingService) DepositReserveLiquidityAndObligationCollateral(
	ctx context.Context,
	payer sdktypes.Account,
	market, reserve, mint types.Pubkey,
	symbol string,
	amount uint64,
	tokenProgram types.Pubkey,
) (txsender.Receipt, error) {
	oracle, err := s.oracles.Lookup(symbol)
	if err != nil {
		return txsender.Receipt{}, fmt.Errorf("deposit %s: %w", symbol, err)
	}

	ixs, err := s.builder.DepositWithRefresh(instruction.DepositParams{
		Owner:         pubkeyOf(payer),
		LendingMarket: market,
		Reserve:       reserve,
		Mint:          mint,
		TokenProgram:  tokenProgram,
		Oracles:       instruction.PythOracles(oracle),
		Amount:        amount,
	})
	if err != nil {
		return txsender.Receipt{}, err
	}

	logger.Infof("[LendingService] 存入 %d (%s) 到 reserve: %s", amount, symbol, reserve)
	return s.submit(ctx, consts.OpDeposit, payer, ixs)
}
