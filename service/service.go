package service

import (
	"net/url"
	"strings"

	paymenthub "github.com/flexprice/paymenthub-go"
	ierr "github.com/flexprice/paymenthub-go/internal/errors"
	"github.com/flexprice/paymenthub-go/internal/logger"
	"go.uber.org/zap"
)

// ServiceParams holds the dependencies shared by every service.
type ServiceParams struct {
	Client *paymenthub.Client
	// Logger may be nil.
	Logger *zap.Logger
}

type baseService struct {
	client *paymenthub.Client
	logger *logger.Logger
}

func newBaseService(params ServiceParams) baseService {
	return baseService{
		client: params.Client,
		logger: logger.FromZap(params.Logger),
	}
}

// resourcePath joins base and an escaped id, rejecting blank ids before
// anything is sent.
func resourcePath(base, name, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", ierr.NewErrorf("%s id is required", name).
			WithHintf("Provide the %s id returned when it was created", name).
			Mark(ierr.ErrConfiguration)
	}
	return base + "/" + url.PathEscape(id), nil
}
