package testutil

import (
	"context"
	"net/http"

	"github.com/flexprice/paymenthub-go/internal/config"
	"github.com/flexprice/paymenthub-go/internal/logger"
	"github.com/flexprice/paymenthub-go/internal/validator"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// TestAPIKey is a well formed credential for tests.
const TestAPIKey = "test-user:test-secret"

// BaseServiceTestSuite provides common functionality for suites that
// drive a client against a local test server.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	logger *logger.Logger
	logs   *observer.ObservedLogs
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext(s.T())

	core, logs := observer.New(zap.DebugLevel)
	s.logger = logger.FromZap(zap.New(core))
	s.logs = logs
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetLogs returns everything logged through GetLogger during the test.
func (s *BaseServiceTestSuite) GetLogs() *observer.ObservedLogs {
	return s.logs
}

// NewServer starts a recording server that lives for the current test.
func (s *BaseServiceTestSuite) NewServer(handler http.HandlerFunc) *Server {
	return NewServer(s.T(), handler)
}

// GetConfig returns a client configuration pointed at server with the
// given retry limit.
func (s *BaseServiceTestSuite) GetConfig(server *Server, maxRetries int) config.ClientConfig {
	return config.ClientConfig{
		APIKey:          TestAPIKey,
		BaseURLOverride: server.URL,
		MaxRetries:      lo.ToPtr(maxRetries),
	}
}
