package reserveconfig

import "klend-admin-sol/internal/types"

// Params 面向使用者的少量参数，其余字段取协议默认值
type Params struct {
	LoanToValuePct             uint8
	MaxLiquidationBonusBps     uint16
	MinLiquidationBonusBps     uint16
	BadDebtLiquidationBonusBps uint16
	LiquidationThresholdPct    uint8
	BorrowFeeSf                uint64 // 60 位定点小数，见 FractionFromBps
	FlashLoanFeeSf             uint64
	ProtocolTakeRatePct        uint8
	ElevationGroups            [ElevationGroupSize]uint8
	PriceFeed                  *types.Pubkey // 显式指定预言机；为 nil 时按 symbol 查表
	BorrowLimit                uint64
	CurvePoints                []CurvePoint // 为 nil 时使用 DefaultCurvePoints
}

func DefaultParams() Params {
	return Params{
		LoanToValuePct:             75,
		MaxLiquidationBonusBps:     500,
		MinLiquidationBonusBps:     200,
		BadDebtLiquidationBonusBps: 10,
		LiquidationThresholdPct:    85,
		BorrowLimit:                DefaultBorrowLimit,
	}
}

// 协议级默认值
const (
	DefaultDepositLimit                     uint64 = 10_000_000_000_000
	DefaultBorrowLimit                      uint64 = 10_000_000_000_000
	DefaultMaxAgePriceSeconds               uint64 = 1_000_000_000
	DefaultDeleveragingMarginCallPeriodSecs uint64 = 259200 // 3 天
	DefaultDeleveragingThresholdSlotsPerBps uint64 = 7200   // 每小时 0.01%
	DefaultBorrowFactorPct                  uint64 = 100
)

var (
	defaultMultiplierSideBoost = [2]uint8{1, 1}
	defaultMultiplierTagBoost  = [8]uint8{1, 1, 1, 1, 1, 1, 1, 1}
)
