package reserveconfig

import (
	"fmt"

	"klend-admin-sol/internal/types"
)

// BuildReserveConfig 由 symbol + 少量参数生成完整的 ReserveConfig。
// 所有失败（未知 symbol、名称超长、曲线非法）都发生在序列化之前。
func BuildReserveConfig(symbol string, params Params, oracles OracleTable) (*ReserveConfig, error) {
	oracle, err := resolveOracle(symbol, params.PriceFeed, oracles)
	if err != nil {
		return nil, err
	}

	name, err := EncodeTokenName(symbol)
	if err != nil {
		return nil, err
	}

	points := params.CurvePoints
	if points == nil {
		points = DefaultCurvePoints()
	}
	curve, err := PadCurve(points)
	if err != nil {
		return nil, fmt.Errorf("reserve %s: %w", symbol, err)
	}

	return &ReserveConfig{
		Status:                     0,
		AssetTier:                  0,
		MultiplierSideBoost:        defaultMultiplierSideBoost,
		MultiplierTagBoost:         defaultMultiplierTagBoost,
		ProtocolTakeRatePct:        params.ProtocolTakeRatePct,
		ProtocolLiquidationFeePct:  0,
		LoanToValuePct:             params.LoanToValuePct,
		LiquidationThresholdPct:    params.LiquidationThresholdPct,
		MinLiquidationBonusBps:     params.MinLiquidationBonusBps,
		MaxLiquidationBonusBps:     params.MaxLiquidationBonusBps,
		BadDebtLiquidationBonusBps: params.BadDebtLiquidationBonusBps,

		DeleveragingMarginCallPeriodSecs: DefaultDeleveragingMarginCallPeriodSecs,
		DeleveragingThresholdSlotsPerBps: DefaultDeleveragingThresholdSlotsPerBps,

		Fees: ReserveFees{
			BorrowFeeSf:    params.BorrowFeeSf,
			FlashLoanFeeSf: params.FlashLoanFeeSf,
		},
		BorrowRateCurve: curve,
		BorrowFactorPct: DefaultBorrowFactorPct,
		DepositLimit:    DefaultDepositLimit,
		BorrowLimit:     params.BorrowLimit,

		TokenInfo: TokenInfo{
			Name:               name,
			MaxAgePriceSeconds: DefaultMaxAgePriceSeconds,
			PythConfiguration:  PythConfiguration{Price: oracle},
		},

		// 提款上限窗口全部置 0
		DepositWithdrawalCap: WithdrawalCaps{},
		DebtWithdrawalCap:    WithdrawalCaps{},

		ElevationGroups: params.ElevationGroups,
	}, nil
}

// resolveOracle 显式指定优先，否则查表；查表失败为致命错误，绝不回退到其他地址
func resolveOracle(symbol string, override *types.Pubkey, oracles OracleTable) (types.Pubkey, error) {
	if override != nil {
		return *override, nil
	}
	return oracles.Lookup(symbol)
}
