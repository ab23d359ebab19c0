package services

import (
	"context"
	"vinti4/entity"
)

type Database interface {
	WriteLogMessage(data Data) error

	SavePaymentForm(ctx context.Context, merchantRef string, form *entity.PaymentForm) error
	SavePaymentResult(ctx context.Context, result *entity.PaymentResult) error
	GetPaymentResult(ctx context.Context, merchantRef string) (*entity.PaymentResult, error)
}

type Data interface {
	DataType() string
}
