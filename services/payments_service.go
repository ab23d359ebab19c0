package services

import (
	"context"
	"vinti4/entity"
)

type Payments interface {
	Prepare(ctx context.Context, request *entity.TransactionRequest) (*entity.PaymentForm, error)
	Notify(ctx context.Context, fields map[string]string) *entity.PaymentResult
	NotifyReversal(ctx context.Context, fields map[string]string) *entity.PaymentResult
	GetResult(ctx context.Context, merchantRef string) (*entity.PaymentResult, error)
}
