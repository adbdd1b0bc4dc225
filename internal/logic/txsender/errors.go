package txsender

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest 请求本身有缺陷（空指令、缺签名者等），在任何网络调用之前返回
var ErrInvalidRequest = errors.New("invalid submission request")

// 远端失败所处阶段
const (
	StageBlockhash = "get_latest_blockhash"
	StageSend      = "send_transaction"
)

// SubmissionError 原样携带远端返回的错误，不做重试
type SubmissionError struct {
	Label string
	Stage string
	Err   error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit %s failed at %s: %v", e.Label, e.Stage, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
