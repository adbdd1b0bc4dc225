package domain

import "klend-admin-sol/internal/types"

// OptionalPubkey 可选账户槽位。
// Anchor 约定：缺省的可选账户以程序自身地址占位（sentinel）。
type OptionalPubkey struct {
	Key   types.Pubkey
	Valid bool
}

func None() OptionalPubkey {
	return OptionalPubkey{}
}

func Some(key types.Pubkey) OptionalPubkey {
	return OptionalPubkey{Key: key, Valid: true}
}

// Resolve 有值返回自身，否则返回 programID 作为占位
func (o OptionalPubkey) Resolve(programID types.Pubkey) types.Pubkey {
	if o.Valid {
		return o.Key
	}
	return programID
}
