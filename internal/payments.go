package internal

import (
	"context"
	"errors"
	"fmt"
	"vinti4/config"
	"vinti4/entity"
	"vinti4/services"
)

// Payments prepares signed gateway forms and processes gateway callbacks.
// Signing and verification are delegated to Client; Payments adds logging
// and, when a database is set, keeps prepared forms and callback verdicts.
type Payments struct {
	conf     *config.Config
	client   *Client
	database services.Database
	logger   services.LogHandler
}

// NewPayments creates the payment service for the configured point of sale.
func NewPayments(conf *config.Config) (*Payments, error) {
	client, err := NewClient(ClientConfig{
		PosID:    conf.Merchant.PosID,
		AuthCode: conf.Merchant.AuthCode,
		Endpoint: conf.Merchant.Endpoint,
		Currency: conf.Merchant.Currency,
		Language: conf.Merchant.Language,
	})
	if err != nil {
		return nil, err
	}
	return &Payments{
		conf:   conf,
		client: client,
		logger: NewLogger("payments", conf.IsDebug, nil),
	}, nil
}

func (p *Payments) SetDatabase(database services.Database) {
	p.database = database
}

func (p *Payments) SetLogger(logger services.LogHandler) {
	p.logger = logger
	p.logger.Info(fmt.Sprintf("point of sale %s; endpoint %s", secret(p.client.PosID()), p.client.endpoint))
}

// Prepare builds the signed form for a transaction request. Requests without a
// response URL use the configured one.
func (p *Payments) Prepare(ctx context.Context, request *entity.TransactionRequest) (*entity.PaymentForm, error) {
	reqID := GetRequestID(ctx)
	if request != nil && request.ResponseUrl == "" {
		withUrl := *request
		withUrl.ResponseUrl = p.conf.Merchant.ResponseUrl
		request = &withUrl
	}

	form, err := p.client.Build(request)
	if err != nil {
		var validation *ValidationError
		if errors.As(err, &validation) {
			p.logger.Warn(fmt.Sprintf("[%s] prepare: %v", reqID, err))
		} else {
			p.logger.Error(fmt.Sprintf("[%s] prepare", reqID), err)
		}
		return nil, err
	}

	merchantRef := form.Get(entity.FieldMerchantRef)
	p.logger.Info(fmt.Sprintf("[%s] prepared: code %s; ref %s; amount %s %s",
		reqID, form.Get(entity.FieldTransactionCode), merchantRef, form.Get(entity.FieldAmount), form.Get(entity.FieldCurrency)))
	p.logger.Debug(fmt.Sprintf("[%s] post url: %s", reqID, form.PostUrl))

	if p.database != nil {
		if err = p.database.SavePaymentForm(ctx, merchantRef, form); err != nil {
			p.logger.Error(fmt.Sprintf("[%s] save payment form", reqID), err)
		}
	}
	return form, nil
}

// Notify classifies a payment callback.
func (p *Payments) Notify(ctx context.Context, fields map[string]string) *entity.PaymentResult {
	result := p.client.ClassifyPayment(fields)
	p.processResult(ctx, result)
	return result
}

// NotifyReversal classifies a reversal callback.
func (p *Payments) NotifyReversal(ctx context.Context, fields map[string]string) *entity.PaymentResult {
	result := p.client.ClassifyReversal(fields)
	p.processResult(ctx, result)
	return result
}

// GetResult returns the stored verdict for a merchant reference.
func (p *Payments) GetResult(ctx context.Context, merchantRef string) (*entity.PaymentResult, error) {
	if p.database == nil {
		return nil, fmt.Errorf("database not set")
	}
	return p.database.GetPaymentResult(ctx, merchantRef)
}

func (p *Payments) processResult(ctx context.Context, result *entity.PaymentResult) {
	reqID := GetRequestID(ctx)
	summary := fmt.Sprintf("[%s] %s response: status %s; type %s; ref %s; pan %s",
		reqID, result.Flow, result.Status, result.MessageType, result.MerchantRef, secret(result.Data[entity.RespPan]))

	switch result.Status {
	case entity.StatusSuccess, entity.StatusCancelled:
		p.logger.Info(summary)
	case entity.StatusInvalidFingerprint:
		p.logger.Warn(summary + "; fingerprint mismatch, manual reconciliation required")
	case entity.StatusFailure:
		if result.Err != nil {
			p.logger.Error(summary, result.Err)
		} else {
			p.logger.Info(fmt.Sprintf("%s; %s %s", summary, result.ErrorDescription, result.ErrorDetail))
		}
	default:
		p.logger.Warn(summary)
	}
	if result.Status != entity.StatusCancelled && result.Data[entity.RespDCCData] != "" && result.DCC == nil {
		p.logger.Warn(fmt.Sprintf("[%s] invalid dcc data: %s", reqID, result.Data[entity.RespDCCData]))
	}

	if p.database != nil {
		if err := p.database.SavePaymentResult(ctx, result); err != nil {
			p.logger.Error(fmt.Sprintf("[%s] save payment result", reqID), err)
		}
	}
}

func secret(some string) string {
	if len(some) > 5 {
		return fmt.Sprintf("%s***", some[0:5])
	}
	if some == "" {
		return "?"
	}
	return "***"
}
