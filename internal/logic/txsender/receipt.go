package txsender

import (
	"context"
	"time"

	"klend-admin-sol/internal/types"
)

// Receipt 一次提交的结果记录，只写给 ReceiptSink，不参与后续流程
type Receipt struct {
	Label            string
	Signature        string // base58，失败时为空
	FeePayer         types.Pubkey
	InstructionCount int
	SubmittedAt      time.Time
	Err              string // 远端错误信息，成功时为空
}

func (r Receipt) Succeeded() bool {
	return r.Err == ""
}

// ReceiptSink 提交结果的旁路观察者（Kafka、Redis 等）；返回的错误只记录日志
type ReceiptSink interface {
	Record(ctx context.Context, receipt Receipt) error
}
