package service

import (
	"context"
	"net/http"

	paymenthub "github.com/flexprice/paymenthub-go"
)

const paymentsPath = "/v1/payments"

type PaymentService interface {
	Process(ctx context.Context, req PaymentRequest, opts *paymenthub.CallOptions) (*Payment, error)
	Get(ctx context.Context, id string, opts *paymenthub.CallOptions) (*Payment, error)
	ListByMerchantRef(ctx context.Context, merchantRefNum string, query ...paymenthub.QueryOption) (*PaymentList, error)
}

type paymentService struct {
	baseService
}

func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{
		baseService: newBaseService(params),
	}
}

// Process creates a payment. A declined payment is returned as an
// APIError whose DecodeDeclined yields the Payment.
func (s *paymentService) Process(ctx context.Context, req PaymentRequest, opts *paymenthub.CallOptions) (*Payment, error) {
	payment, err := paymenthub.Do[Payment](ctx, s.client, http.MethodPost, paymentsPath, req, opts)
	if err != nil {
		s.logger.Debugw("payment not processed",
			"merchant_ref_num", req.MerchantRefNum,
			"error", err,
		)
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) Get(ctx context.Context, id string, opts *paymenthub.CallOptions) (*Payment, error) {
	path, err := resourcePath(paymentsPath, "payment", id)
	if err != nil {
		return nil, err
	}
	return paymenthub.Do[Payment](ctx, s.client, http.MethodGet, path, nil, opts)
}

// ListByMerchantRef lists the payments carrying merchantRefNum. query
// may narrow the result further; a merchant reference among it is
// overridden.
func (s *paymentService) ListByMerchantRef(ctx context.Context, merchantRefNum string, query ...paymenthub.QueryOption) (*PaymentList, error) {
	params := paymenthub.NewQueryParams(append(query, paymenthub.WithMerchantRefNum(merchantRefNum))...)
	return paymenthub.Do[PaymentList](ctx, s.client, http.MethodGet, paymentsPath+params.Encode(), nil, nil)
}
