package consts

// Operation 表示一次提交所对应的协议操作，用于回执与日志
type Operation int

const (
	OpInitLendingMarket   Operation = iota + 1 // 1
	OpInitReserve                              // 2
	OpUpdateReserveConfig                      // 3
	OpInitUserMetadata                         // 4
	OpInitObligation                           // 5
	OpDeposit                                  // 6
)

var OperationNames = []string{
	"unknown",               // 0 (保留)
	"init_lending_market",   // 1
	"init_reserve",          // 2
	"update_reserve_config", // 3
	"init_user_metadata",    // 4
	"init_obligation",       // 5
	"deposit",               // 6
}

func (op Operation) String() string {
	if op >= 1 && int(op) < len(OperationNames) {
		return OperationNames[op]
	}
	return OperationNames[0]
}
