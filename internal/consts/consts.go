package consts

// 链上账户大小（字节，包含 8 字节 Anchor discriminator），用于 create_account 时计算租金
const (
	LendingMarketSize uint64 = 4664
	ReserveSize       uint64 = 8624
)
