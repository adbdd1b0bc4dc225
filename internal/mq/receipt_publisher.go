package mq

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"klend-admin-sol/internal/logic/txsender"
	"klend-admin-sol/internal/utils"
)

// ReceiptPublisher 将提交回执投递到 Kafka，实现 txsender.ReceiptSink。
// 同一 fee payer 的回执落在同一分区，保证其顺序。
type ReceiptPublisher struct {
	producer   Producer
	topic      string
	partitions uint32
	timeout    time.Duration
}

var _ txsender.ReceiptSink = (*ReceiptPublisher)(nil)

func NewReceiptPublisher(producer Producer, topic string, partitions int, timeout time.Duration) *ReceiptPublisher {
	if partitions <= 0 {
		partitions = 1
	}
	return &ReceiptPublisher{
		producer:   producer,
		topic:      topic,
		partitions: uint32(partitions),
		timeout:    timeout,
	}
}

func (p *ReceiptPublisher) Record(ctx context.Context, receipt txsender.Receipt) error {
	payload, err := EncodeReceipt(receipt)
	if err != nil {
		return err
	}

	feePayer := receipt.FeePayer.Bytes()
	job := &KafkaJob{
		Topic:     p.topic,
		Partition: int32(utils.PartitionHashBytes(feePayer, p.partitions)),
		Key:       feePayer,
		Value:     payload,
	}

	_, failed := SendKafkaJobs(ctx, p.producer, []*KafkaJob{job}, p.timeout)
	if len(failed) > 0 {
		return fmt.Errorf("publish receipt %s: %w", receipt.Label, failed[0].Err)
	}
	return nil
}

// EncodeReceipt 回执 → structpb.Struct → 带类型前缀的 protobuf 字节
func EncodeReceipt(receipt txsender.Receipt) ([]byte, error) {
	msg, err := structpb.NewStruct(map[string]any{
		"label":             receipt.Label,
		"signature":         receipt.Signature,
		"fee_payer":         receipt.FeePayer.String(),
		"instruction_count": receipt.InstructionCount,
		"submitted_at":      receipt.SubmittedAt.UnixMilli(),
		"succeeded":         receipt.Succeeded(),
		"error":             receipt.Err,
	})
	if err != nil {
		return nil, fmt.Errorf("build receipt struct: %w", err)
	}
	return utils.EncodeEvent(utils.EventTypeReceipt, msg)
}
