package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"vinti4/config"
	"vinti4/entity"
	"vinti4/services"

	"github.com/julienschmidt/httprouter"
	"github.com/shopspring/decimal"
)

const (
	preparePayment = "/payment/:kind"
	prepareForm    = "/form/:kind"
	paymentNotify  = "/notify"
	reversalNotify = "/notify/reversal"
	paymentResult  = "/result/:merchant_ref"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	payments   services.Payments
	logger     services.LogHandler
}

// transactionBody is the JSON accepted by the prepare endpoints.
type transactionBody struct {
	Amount          decimal.Decimal        `json:"amount"`
	ResponseUrl     string                 `json:"response_url"`
	MerchantRef     string                 `json:"merchant_ref"`
	MerchantSession string                 `json:"merchant_session"`
	Language        string                 `json:"language"`
	Currency        string                 `json:"currency"`
	EntityCode      string                 `json:"entity_code"`
	ReferenceNumber string                 `json:"reference_number"`
	ClearingPeriod  string                 `json:"clearing_period"`
	TransactionID   string                 `json:"transaction_id"`
	Billing         map[string]interface{} `json:"billing"`
}

func NewServer(conf *config.Config) *Server {

	server := Server{
		conf: conf,
	}

	// register itself as a router for httpServer handler
	router := httprouter.New()
	server.Register(router)
	server.httpServer = &http.Server{
		Handler: router,
	}

	return &server
}

func (s *Server) Register(router *httprouter.Router) {
	router.POST(preparePayment, s.preparePayment)
	router.POST(prepareForm, s.prepareForm)
	router.POST(paymentNotify, s.paymentNotify)
	router.POST(reversalNotify, s.reversalNotify)
	router.GET(paymentResult, s.paymentResult)
}

func (s *Server) SetPaymentsService(payments services.Payments) {
	s.payments = payments
}

func (s *Server) SetLogger(logger services.LogHandler) {
	s.logger = logger
}

func (s *Server) Start() error {
	if s.conf == nil {
		return fmt.Errorf("configuration not loaded")
	}

	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	if s.conf.Listen.TLS {
		s.logger.Info(fmt.Sprintf("starting https TLS on %s", serverAddress))
		err = s.httpServer.ServeTLS(listener, s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
	} else {
		s.logger.Info(fmt.Sprintf("starting http on %s", serverAddress))
		err = s.httpServer.Serve(listener)
	}

	return err
}

func (s *Server) preparePayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	form, ok := s.prepare(w, r, ps)
	if !ok {
		return
	}
	s.writeJSON(w, r, form)
}

func (s *Server) prepareForm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	form, ok := s.prepare(w, r, ps)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := RenderForm(&buf, form); err != nil {
		s.logger.Error(fmt.Sprintf("[%s] render form", GetRequestID(r.Context())), err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// prepare decodes the request body and builds the signed form; it writes the
// error response itself and reports whether the caller should continue.
func (s *Server) prepare(w http.ResponseWriter, r *http.Request, ps httprouter.Params) (*entity.PaymentForm, bool) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	kindName := ps.ByName("kind")
	if _, ok := entity.KindByName(kindName); !ok {
		s.logger.Warn(fmt.Sprintf("[%s] unknown transaction kind: %s", reqID, kindName))
		w.WriteHeader(http.StatusNotFound)
		return nil, false
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] prepare: read request body", reqID), err)
		w.WriteHeader(http.StatusBadRequest)
		return nil, false
	}
	var request transactionBody
	if err = json.Unmarshal(body, &request); err != nil {
		s.logger.Warn(fmt.Sprintf("[%s] prepare: decode request body: %v", reqID, err))
		w.WriteHeader(http.StatusBadRequest)
		return nil, false
	}

	form, err := s.payments.Prepare(ctx, request.toTransaction(kindName))
	if err != nil {
		var validation *ValidationError
		var missing *MissingFieldError
		if errors.As(err, &validation) || errors.As(err, &missing) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil, false
		}
		w.WriteHeader(http.StatusInternalServerError)
		return nil, false
	}
	return form, true
}

func (s *Server) paymentNotify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.notify(w, r, s.payments.Notify)
}

func (s *Server) reversalNotify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.notify(w, r, s.payments.NotifyReversal)
}

// notify always answers 200 once the body is read: the verdict is in the payload,
// gateway retries are not driven by the classification.
func (s *Server) notify(w http.ResponseWriter, r *http.Request, classify func(ctx context.Context, fields map[string]string) *entity.PaymentResult) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	if err := r.ParseForm(); err != nil {
		s.logger.Error(fmt.Sprintf("[%s] notify: parse form", reqID), err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	fields := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		fields[key] = r.PostForm.Get(key)
	}

	result := classify(ctx, fields)
	s.writeJSON(w, r, result)
}

func (s *Server) paymentResult(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	merchantRef := ps.ByName("merchant_ref")
	result, err := s.payments.GetResult(ctx, merchantRef)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("[%s] result %s: %v", reqID, merchantRef, err))
		w.WriteHeader(http.StatusNotFound)
		return
	}
	s.writeJSON(w, r, result)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] encode response", GetRequestID(r.Context())), err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (b *transactionBody) toTransaction(kindName string) *entity.TransactionRequest {
	request := &entity.TransactionRequest{
		Amount:          b.Amount,
		ResponseUrl:     b.ResponseUrl,
		MerchantRef:     b.MerchantRef,
		MerchantSession: b.MerchantSession,
		Language:        b.Language,
		Currency:        b.Currency,
	}
	switch kindName {
	case "purchase":
		request.Kind = entity.Purchase{Billing: billingFromMap(b.Billing)}
	case "service":
		request.Kind = entity.ServicePayment{EntityCode: b.EntityCode, ReferenceNumber: b.ReferenceNumber}
	case "recharge":
		request.Kind = entity.Recharge{EntityCode: b.EntityCode, ReferenceNumber: b.ReferenceNumber}
	case "reversal":
		request.Kind = entity.Reversal{ClearingPeriod: b.ClearingPeriod, TransactionID: b.TransactionID}
	}
	return request
}

// billingFromMap splits a decoded billing object into required and optional
// fields; optional keys are taken in sorted order.
func billingFromMap(m map[string]interface{}) *entity.Billing {
	if len(m) == 0 {
		return nil
	}
	text := func(key string) string {
		if v, ok := m[key].(string); ok {
			return v
		}
		return ""
	}
	billing := &entity.Billing{
		Country:    text(entity.BillAddrCountry),
		City:       text(entity.BillAddrCity),
		Line1:      text(entity.BillAddrLine1),
		PostalCode: text(entity.BillAddrPostCode),
		Email:      text(entity.BillEmail),
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		switch key {
		case entity.BillAddrCountry, entity.BillAddrCity, entity.BillAddrLine1, entity.BillAddrPostCode, entity.BillEmail:
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		billing.Set(key, m[key])
	}
	return billing
}
