package txsender

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blocto/solana-go-sdk/client"
	sdktypes "github.com/blocto/solana-go-sdk/types"

	"klend-admin-sol/internal/logic/domain"
	"klend-admin-sol/internal/pkg/logger"
	"klend-admin-sol/internal/types"
)

// Request 一笔原子提交：指令按给定顺序打包进同一交易
type Request struct {
	Label        string // 操作名，仅用于日志与回执
	FeePayer     types.Pubkey
	Instructions []domain.Instruction
	Signers      []sdktypes.Account
}

// Orchestrator 负责 取 blockhash → 组装消息 → 签名 → 发送。
// 不重试、不自设超时，超时与取消由调用方通过 ctx 控制。
type Orchestrator struct {
	client LedgerClient
	sinks  []ReceiptSink
	now    func() time.Time
}

func NewOrchestrator(client LedgerClient, sinks ...ReceiptSink) *Orchestrator {
	return &Orchestrator{
		client: client,
		sinks:  sinks,
		now:    time.Now,
	}
}

// Submit 每次调用恰好产生一个结果：本地校验或签名失败返回 ErrInvalidRequest，不写回执；
// 远端失败返回 *SubmissionError；成功返回带签名的 Receipt。
func (o *Orchestrator) Submit(ctx context.Context, req Request) (Receipt, error) {
	if err := validate(req); err != nil {
		return Receipt{}, err
	}

	receipt := Receipt{
		Label:            req.Label,
		FeePayer:         req.FeePayer,
		InstructionCount: len(req.Instructions),
	}

	sig, err := o.send(ctx, req)
	if errors.Is(err, ErrInvalidRequest) {
		// 签名失败属于本地错误，交易未发出，不产生回执
		logger.Warnf("[TxSender] %s 签名失败: %v", req.Label, err)
		return Receipt{}, err
	}
	receipt.SubmittedAt = o.now()
	if err != nil {
		receipt.Err = err.Error()
		logger.Warnf("[TxSender] %s 提交失败: %v", req.Label, err)
	} else {
		receipt.Signature = sig
		logger.Infof("[TxSender] %s 已提交, 指令数: %d, signature: %s", req.Label, receipt.InstructionCount, sig)
	}

	o.emit(ctx, receipt)
	return receipt, err
}

func (o *Orchestrator) send(ctx context.Context, req Request) (string, error) {
	latest, err := o.client.GetLatestBlockhash(ctx)
	if err != nil {
		return "", &SubmissionError{Label: req.Label, Stage: StageBlockhash, Err: err}
	}

	tx, err := sdktypes.NewTransaction(sdktypes.NewTransactionParam{
		Message: sdktypes.NewMessage(sdktypes.NewMessageParam{
			FeePayer:        req.FeePayer.ToCommon(),
			RecentBlockhash: latest.Blockhash,
			Instructions:    domain.ToSdkInstructions(req.Instructions),
		}),
		Signers: req.Signers,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: sign: %v", ErrInvalidRequest, req.Label, err)
	}

	sig, err := o.client.SendTransaction(ctx, tx)
	if err != nil {
		return "", &SubmissionError{Label: req.Label, Stage: StageSend, Err: err}
	}
	if _, err := types.SignatureFromBase58(sig); err != nil {
		logger.Warnf("[TxSender] %s 节点返回的签名格式异常: %q, err=%v", req.Label, sig, err)
	}
	return sig, nil
}

// emit 依次通知所有 sink，sink 的失败不影响提交结果
func (o *Orchestrator) emit(ctx context.Context, receipt Receipt) {
	for _, sink := range o.sinks {
		if err := sink.Record(ctx, receipt); err != nil {
			logger.Warnf("[TxSender] 回执写入失败: label=%s, sink=%T, err=%v", receipt.Label, sink, err)
		}
	}
}

// RentExemption 查询 size 字节账户的租金豁免额
func (o *Orchestrator) RentExemption(ctx context.Context, size uint64) (uint64, error) {
	lamports, err := o.client.GetMinimumBalanceForRentExemption(ctx, size)
	if err != nil {
		return 0, fmt.Errorf("get rent exemption for %d bytes: %w", size, err)
	}
	return lamports, nil
}

// AccountInfo 读取账户；账户不存在时返回零值
func (o *Orchestrator) AccountInfo(ctx context.Context, key types.Pubkey) (client.AccountInfo, error) {
	info, err := o.client.GetAccountInfo(ctx, key.String())
	if err != nil {
		return client.AccountInfo{}, fmt.Errorf("get account info %s: %w", key, err)
	}
	return info, nil
}
