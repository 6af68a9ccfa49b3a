package service

import (
	"context"

	paymenthub "github.com/flexprice/paymenthub-go"
)

const customersPath = "/v1/customers"

type CustomerService interface {
	Delete(ctx context.Context, id string, opts *paymenthub.CallOptions) error
}

type customerService struct {
	baseService
}

func NewCustomerService(params ServiceParams) CustomerService {
	return &customerService{
		baseService: newBaseService(params),
	}
}

func (s *customerService) Delete(ctx context.Context, id string, opts *paymenthub.CallOptions) error {
	path, err := resourcePath(customersPath, "customer", id)
	if err != nil {
		return err
	}

	resp, err := s.client.Delete(ctx, path, opts)
	if err != nil {
		return err
	}
	if err := s.client.CheckDelete(resp); err != nil {
		return err
	}

	s.logger.Debugw("customer deleted", "customer_id", id)
	return nil
}
