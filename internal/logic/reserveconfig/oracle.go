package reserveconfig

import (
	"fmt"

	"klend-admin-sol/internal/types"
)

// OracleTable 只读的 symbol → 价格账户映射，由调用方显式传入，不依赖全局状态
type OracleTable struct {
	entries map[string]types.Pubkey
}

// NewOracleTable 拷贝一份输入，之后的外部修改不会影响表内容
func NewOracleTable(entries map[string]types.Pubkey) OracleTable {
	copied := make(map[string]types.Pubkey, len(entries))
	for symbol, oracle := range entries {
		copied[symbol] = oracle
	}
	return OracleTable{entries: copied}
}

// Lookup symbol 精确匹配（区分大小写），未命中返回 ErrUnknownOracleSymbol
func (t OracleTable) Lookup(symbol string) (types.Pubkey, error) {
	oracle, ok := t.entries[symbol]
	if !ok {
		return types.Pubkey{}, fmt.Errorf("%w: %q", ErrUnknownOracleSymbol, symbol)
	}
	return oracle, nil
}

func (t OracleTable) Len() int {
	return len(t.entries)
}
