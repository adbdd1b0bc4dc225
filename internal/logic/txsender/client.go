package txsender

import (
	"context"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/rpc"
	sdktypes "github.com/blocto/solana-go-sdk/types"
)

// LedgerClient 提交所需的最小 RPC 能力，*client.Client 直接满足
type LedgerClient interface {
	GetLatestBlockhash(ctx context.Context) (rpc.GetLatestBlockhashValue, error)
	SendTransaction(ctx context.Context, tx sdktypes.Transaction) (string, error)
	GetMinimumBalanceForRentExemption(ctx context.Context, dataLen uint64) (uint64, error)
	GetAccountInfo(ctx context.Context, base58Addr string) (client.AccountInfo, error)
}

var _ LedgerClient = (*client.Client)(nil)
