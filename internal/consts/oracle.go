package consts

import "klend-admin-sol/internal/types"

const (
	// Pyth legacy price account（USDC/USD），稳定币类 reserve 共用
	PythUSDCPriceStr = "Gnt27xtC473ZT2Mw5u8wZ68Z3gULkSTb5DuxJy7eJotD"

	// Pyth legacy price account（mSOL/USD），SOL 及其衍生资产共用
	PythMSOLPriceStr = "E4v1BBgoso9s64TQvmyownAVJbhbEPGyzA3qn4n46qj9"
)

var (
	PythUSDCPrice = types.PubkeyFromBase58(PythUSDCPriceStr)
	PythMSOLPrice = types.PubkeyFromBase58(PythMSOLPriceStr)
)

// DefaultOracleSymbols 默认 symbol → Pyth 价格账户映射。
// 每次调用返回新的 map，调用方可自由修改而不影响其他使用者。
func DefaultOracleSymbols() map[string]types.Pubkey {
	return map[string]types.Pubkey{
		"SOL":   PythMSOLPrice,
		"STSOL": PythMSOLPrice,
		"MSOL":  PythMSOLPrice,
		"USDC":  PythUSDCPrice,
		"USDH":  PythUSDCPrice,
		"USDT":  PythUSDCPrice,
		"UXD":   PythUSDCPrice,
	}
}
