package domain

import (
	sdktypes "github.com/blocto/solana-go-sdk/types"

	"klend-admin-sol/internal/types"
)

// AccountMeta 指令引用的一个账户及其签名/可写标记
type AccountMeta struct {
	Pubkey     types.Pubkey
	IsSigner   bool
	IsWritable bool
}

// Instruction 表示一条待提交的程序指令：账户顺序即链上校验顺序，不可重排。
type Instruction struct {
	ProgramID types.Pubkey  // 目标程序地址
	Accounts  []AccountMeta // 按布局排好序的账户列表
	Data      []byte        // discriminator + borsh 参数
}

// Signers 返回需要签名的账户（保持出现顺序，去重）
func (ix Instruction) Signers() []types.Pubkey {
	var out []types.Pubkey
	seen := make(map[types.Pubkey]struct{}, len(ix.Accounts))
	for _, meta := range ix.Accounts {
		if !meta.IsSigner {
			continue
		}
		if _, ok := seen[meta.Pubkey]; ok {
			continue
		}
		seen[meta.Pubkey] = struct{}{}
		out = append(out, meta.Pubkey)
	}
	return out
}

// ToSdk 转换为 blocto SDK 的指令类型，仅在提交边界调用
func (ix Instruction) ToSdk() sdktypes.Instruction {
	metas := make([]sdktypes.AccountMeta, len(ix.Accounts))
	for i, meta := range ix.Accounts {
		metas[i] = sdktypes.AccountMeta{
			PubKey:     meta.Pubkey.ToCommon(),
			IsSigner:   meta.IsSigner,
			IsWritable: meta.IsWritable,
		}
	}
	return sdktypes.Instruction{
		ProgramID: ix.ProgramID.ToCommon(),
		Accounts:  metas,
		Data:      ix.Data,
	}
}

// InstructionFromSdk ToSdk 的逆过程，用于把 SDK 内置程序（system 等）生成的指令纳入统一流程
func InstructionFromSdk(ix sdktypes.Instruction) Instruction {
	metas := make([]AccountMeta, len(ix.Accounts))
	for i, meta := range ix.Accounts {
		metas[i] = AccountMeta{
			Pubkey:     types.PubkeyFromCommon(meta.PubKey),
			IsSigner:   meta.IsSigner,
			IsWritable: meta.IsWritable,
		}
	}
	return Instruction{
		ProgramID: types.PubkeyFromCommon(ix.ProgramID),
		Accounts:  metas,
		Data:      ix.Data,
	}
}

// ToSdkInstructions 批量转换
func ToSdkInstructions(ixs []Instruction) []sdktypes.Instruction {
	out := make([]sdktypes.Instruction, len(ixs))
	for i, ix := range ixs {
		out[i] = ix.ToSdk()
	}
	return out
}
