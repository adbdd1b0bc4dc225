package instruction

import (
	"fmt"

	"github.com/near/borsh-go"

	"klend-admin-sol/internal/logic/domain"
	"klend-admin-sol/internal/logic/pda"
	"klend-admin-sol/internal/types"
)

// Builder 负责组装 klend 指令：派生 PDA、按布局排序账户、编码参数。
// 无内部可变状态，可并发使用。
type Builder struct {
	programID types.Pubkey
	pda       *pda.Deriver
}

func NewBuilder(programID types.Pubkey) *Builder {
	return &Builder{
		programID: programID,
		pda:       pda.New(programID),
	}
}

func (b *Builder) ProgramID() types.Pubkey {
	return b.programID
}

// Deriver 返回与 Builder 同一程序地址的 PDA 派生器
func (b *Builder) Deriver() *pda.Deriver {
	return b.pda
}

// build 通用组装：账户绑定 + discriminator + borsh 参数（args 为 nil 表示无参数）
func (b *Builder) build(name string, disc uint64, layout Layout, accounts map[Role]types.Pubkey, args any) (domain.Instruction, error) {
	metas, err := layout.Bind(accounts)
	if err != nil {
		return domain.Instruction{}, fmt.Errorf("%s: %w", name, err)
	}

	data := discriminatorBytes(disc)
	if args != nil {
		encoded, err := borsh.Serialize(args)
		if err != nil {
			return domain.Instruction{}, fmt.Errorf("%s: encode args: %w", name, err)
		}
		data = append(data, encoded...)
	}

	return domain.Instruction{
		ProgramID: b.programID,
		Accounts:  metas,
		Data:      data,
	}, nil
}
