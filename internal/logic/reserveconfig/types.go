package reserveconfig

import "klend-admin-sol/internal/types"

// 链上 ReserveConfig 的固定尺寸
const (
	ReserveConfigSize  = 648 // borsh 编码后的总字节数，对应 update_entire_reserve_config 的 value 槽位
	CurvePointCount    = 11  // BorrowRateCurve 固定点数
	TokenNameSize      = 32  // TokenInfo.Name 固定宽度
	ElevationGroupSize = 20
)

// 以下结构体字段顺序即 borsh 编码顺序，必须与链上 IDL 完全一致，不能调整。
// 字段类型只使用基础整型与定长数组，保证 borsh-go 能双向编解码。

type ReserveFees struct {
	BorrowFeeSf    uint64
	FlashLoanFeeSf uint64
	Padding        [8]uint8
}

type CurvePoint struct {
	UtilizationRateBps uint32
	BorrowRateBps      uint32
}

type BorrowRateCurve struct {
	Points [CurvePointCount]CurvePoint
}

type PriceHeuristic struct {
	Lower uint64
	Upper uint64
	Exp   uint64
}

type ScopeConfiguration struct {
	PriceFeed  types.Pubkey
	PriceChain [4]uint16
	TwapChain  [4]uint16
}

type SwitchboardConfiguration struct {
	PriceAggregator types.Pubkey
	TwapAggregator  types.Pubkey
}

type PythConfiguration struct {
	Price types.Pubkey
}

type TokenInfo struct {
	Name                     [TokenNameSize]uint8
	Heuristic                PriceHeuristic
	MaxTwapDivergenceBps     uint64
	MaxAgePriceSeconds       uint64
	MaxAgeTwapSeconds        uint64
	ScopeConfiguration       ScopeConfiguration
	SwitchboardConfiguration SwitchboardConfiguration
	PythConfiguration        PythConfiguration
	Padding                  [20]uint64
}

// WithdrawalCaps 滚动窗口提款上限；本工具创建的配置全部置 0（不限制）
type WithdrawalCaps struct {
	ConfigCapacity              int64
	CurrentTotal                int64
	LastIntervalStartTimestamp  uint64
	ConfigIntervalLengthSeconds uint64
}

// ReserveConfig 链上 reserve 的完整配置记录
type ReserveConfig struct {
	Status                           uint8
	AssetTier                        uint8
	Reserved0                        [2]uint8
	MultiplierSideBoost              [2]uint8
	MultiplierTagBoost               [8]uint8
	ProtocolTakeRatePct              uint8
	ProtocolLiquidationFeePct        uint8
	LoanToValuePct                   uint8
	LiquidationThresholdPct          uint8
	MinLiquidationBonusBps           uint16
	MaxLiquidationBonusBps           uint16
	BadDebtLiquidationBonusBps       uint16
	DeleveragingMarginCallPeriodSecs uint64
	DeleveragingThresholdSlotsPerBps uint64
	Fees                             ReserveFees
	BorrowRateCurve                  BorrowRateCurve
	BorrowFactorPct                  uint64
	DepositLimit                     uint64
	BorrowLimit                      uint64
	TokenInfo                        TokenInfo
	DepositWithdrawalCap             WithdrawalCaps
	DebtWithdrawalCap                WithdrawalCaps
	ElevationGroups                  [ElevationGroupSize]uint8
	Reserved1                        [4]uint8
}
