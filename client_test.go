package paymenthub

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/flexprice/paymenthub-go/internal/connection"
	"github.com/flexprice/paymenthub-go/internal/httpclient"
	"github.com/flexprice/paymenthub-go/internal/request"
	"github.com/flexprice/paymenthub-go/internal/retry"
	"github.com/flexprice/paymenthub-go/internal/testutil"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/suite"
)

type payment struct {
	ID     string `json:"id"`
	Amount int    `json:"amount"`
}

type ClientSuite struct {
	testutil.BaseServiceTestSuite
}

func TestClient(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func noProxyEnv(string) (string, bool) {
	return "", false
}

func (s *ClientSuite) newClient(cfg Config) *Client {
	client, err := New(cfg,
		withProviderOptions(connection.WithLookupEnv(noProxyEnv)),
		withExecutorOptions(httpclient.WithRetryOptions(retry.WithRandom(func() float64 { return 0 }))),
	)
	s.Require().NoError(err)
	s.T().Cleanup(client.Close)
	return client
}

func (s *ClientSuite) TestNewRejectsRetryLimitsOutOfRange() {
	for _, n := range []int{-3, -1, 6, 10} {
		client, err := New(Config{APIKey: testutil.TestAPIKey, MaxRetries: lo.ToPtr(n)})
		s.Nil(client)
		s.Require().Error(err, "max retries %d", n)
		s.True(IsConfiguration(err))
	}
	for n := 0; n <= MaxAllowedRetries; n++ {
		client, err := New(Config{APIKey: testutil.TestAPIKey, MaxRetries: lo.ToPtr(n)})
		s.Require().NoError(err)
		client.Close()
	}
}

func (s *ClientSuite) TestNewRejectsBadCredentials() {
	for _, key := range []string{"", "   ", "nocolon", "a:b:c", "a :b"} {
		_, err := New(Config{APIKey: key})
		s.True(IsConfiguration(err), "key %q", key)
	}
}

func (s *ClientSuite) TestDefaultsToTestEnvironment() {
	client, err := New(Config{APIKey: testutil.TestAPIKey})
	s.Require().NoError(err)
	defer client.Close()
	s.Equal(Test, client.Environment())
}

func (s *ClientSuite) TestGetAlwaysFailingTransportIsAttemptedThreeTimes() {
	server := s.NewServer(testutil.AlwaysDrop)
	cfg := s.GetConfig(server, 2)
	cfg.Environment = Test

	resp, err := s.newClient(cfg).Get(s.GetContext(), "/v1/payments/p1", nil)

	s.Nil(resp)
	s.Require().Error(err)
	s.True(IsConnection(err))
	s.Equal(3, server.Hits())

	connErr, ok := AsConnectionError(err)
	s.Require().True(ok)
	s.Equal(3, connErr.Attempts)
}

func (s *ClientSuite) TestPostUnserializableBodyNeverReachesNetwork() {
	server := s.NewServer(testutil.Respond(http.StatusOK, "{}"))

	_, err := s.newClient(s.GetConfig(server, 2)).
		Post(s.GetContext(), "/v1/payments", map[string]any{"callback": func() {}}, nil)

	s.Require().Error(err)
	s.True(IsSerialization(err))
	s.False(IsConnection(err))
	s.Equal(0, server.Hits())
}

func (s *ClientSuite) TestGetCreatedDecodes() {
	server := s.NewServer(testutil.Respond(http.StatusCreated, `{"id":"p1","amount":1500}`))
	client := s.newClient(s.GetConfig(server, 2))

	resp, err := client.Get(s.GetContext(), "/v1/payments/p1", nil)
	s.Require().NoError(err)

	got, err := Decode[payment](client, resp)
	s.Require().NoError(err)
	s.Equal(&payment{ID: "p1", Amount: 1500}, got)
}

func (s *ClientSuite) TestBadRequestIsAPIError() {
	server := s.NewServer(testutil.Respond(http.StatusBadRequest,
		`{"error":{"code":"5068","message":"Field error(s)"}}`,
		"X-INTERNAL-CORRELATION-ID", "corr-400"))

	_, err := Do[payment](s.GetContext(), s.newClient(s.GetConfig(server, 2)), http.MethodGet, "/v1/payments/p1", nil, nil)

	s.Require().Error(err)
	s.True(IsAPI(err))
	apiErr, ok := AsAPIError(err)
	s.Require().True(ok)
	s.Equal(http.StatusBadRequest, apiErr.StatusCode)
	s.Equal(KindInvalidRequest, apiErr.Kind)
	s.Equal("5068", apiErr.Code())
	s.Equal("Field error(s)", apiErr.Detail.Message)
	s.Equal("corr-400", apiErr.CorrelationID)
	s.Equal(1, server.Hits())
}

func (s *ClientSuite) TestDeleteWithEmptyBodySucceeds() {
	server := s.NewServer(testutil.Respond(http.StatusOK, ""))
	client := s.newClient(s.GetConfig(server, 2))

	resp, err := client.Delete(s.GetContext(), "/v1/customers/c1", nil)
	s.Require().NoError(err)
	s.NoError(client.CheckDelete(resp))
	s.Equal(http.MethodDelete, server.LastRequest().Method)
	s.Equal("/paymenthub/v1/customers/c1", server.LastRequest().Path)
}

func (s *ClientSuite) TestSimulatorHeader() {
	tests := []struct {
		name      string
		env       Environment
		simulator *Simulator
		want      string
	}{
		{name: "test with simulator", env: Test, simulator: lo.ToPtr(SimulatorExternal), want: "EXTERNAL"},
		{name: "test without simulator", env: Test},
		{name: "live with simulator", env: Live, simulator: lo.ToPtr(SimulatorInternal)},
		{name: "live without simulator", env: Live},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			server := s.NewServer(testutil.Respond(http.StatusOK, "{}"))
			cfg := s.GetConfig(server, 0)
			cfg.Environment = tt.env

			opts := NewCallOptions()
			opts.Simulator = tt.simulator

			_, err := s.newClient(cfg).Post(s.GetContext(), "/v1/payments", map[string]int{"amount": 1}, opts)
			s.Require().NoError(err)

			header := server.LastRequest().Header
			s.Equal(tt.want, header.Get(request.HeaderSimulator))
			s.Equal(tt.want != "", len(header.Values(request.HeaderSimulator)) > 0)
		})
	}
}

func (s *ClientSuite) TestInvalidCallOptionsFailBeforeSending() {
	server := s.NewServer(testutil.Respond(http.StatusOK, "{}"))
	client := s.newClient(s.GetConfig(server, 2))

	for _, opts := range []*CallOptions{
		NewCallOptions().WithMaxRetries(6),
		NewCallOptions().WithMaxRetries(-1),
		NewCallOptions().WithConnectTimeout(0),
		NewCallOptions().WithResponseTimeout(-time.Second),
	} {
		_, err := client.Get(s.GetContext(), "/v1/monitor", opts)
		s.True(IsConfiguration(err))
	}
	s.Equal(0, server.Hits())
}

func (s *ClientSuite) TestPerCallResponseTimeout() {
	server := s.NewServer(testutil.Stall(2 * time.Second))
	client := s.newClient(s.GetConfig(server, 0))

	start := time.Now()
	_, err := client.Get(s.GetContext(), "/v1/monitor", NewCallOptions().WithResponseTimeout(50*time.Millisecond))

	s.True(IsConnection(err))
	s.Less(time.Since(start), time.Second)
}

func (s *ClientSuite) TestPerCallRetryOverride() {
	server := s.NewServer(testutil.AlwaysDrop)
	client := s.newClient(s.GetConfig(server, 2))

	_, err := client.Get(s.GetContext(), "/v1/monitor", NewCallOptions().WithMaxRetries(0))
	s.True(IsConnection(err))
	s.Equal(1, server.Hits())
}

func (s *ClientSuite) TestQueryParamsReachServer() {
	server := s.NewServer(testutil.Respond(http.StatusOK, `{"payments":[]}`))
	client := s.newClient(s.GetConfig(server, 2))

	query := NewQueryParams(WithLimit(10), WithMerchantRefNum("ref-1"))
	_, err := client.Get(s.GetContext(), "/v1/payments"+query.Encode(), nil)
	s.Require().NoError(err)

	s.Equal("merchantRefNum=ref-1&limit=10", server.LastRequest().RawQuery)
}

func (s *ClientSuite) TestConfigIsCopied() {
	server := s.NewServer(testutil.AlwaysDrop)
	cfg := s.GetConfig(server, 1)
	client := s.newClient(cfg)

	*cfg.MaxRetries = 5
	cfg.BaseURLOverride = "http://127.0.0.1:1"

	_, err := client.Get(s.GetContext(), "/v1/monitor", nil)
	s.True(IsConnection(err))
	s.Equal(2, server.Hits())
}

func (s *ClientSuite) TestConcurrentUse() {
	server := s.NewServer(testutil.Respond(http.StatusOK, `{"id":"p1","amount":1}`))
	client := s.newClient(s.GetConfig(server, 2))

	var wg conc.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Go(func() {
			got, err := Do[payment](context.Background(), client, http.MethodGet, "/v1/payments/p1", nil, nil)
			s.NoError(err)
			if got != nil {
				s.Equal("p1", got.ID)
			}
		})
	}
	wg.Wait()
	s.Equal(25, server.Hits())
}

func (s *ClientSuite) TestEffectiveOptionsReachExecutor() {
	mock := testutil.NewMockHTTPClient()
	mock.RegisterResponse("/v1/monitor", testutil.MockResponse{StatusCode: http.StatusOK, Body: `{"status":"READY"}`})

	client, err := New(Config{
		APIKey:          testutil.TestAPIKey,
		ConnectTimeout:  3 * time.Second,
		MaxRetries:      lo.ToPtr(4),
		BaseURLOverride: "http://payments.invalid",
	}, withExecutor(mock))
	s.Require().NoError(err)

	_, err = client.Get(s.GetContext(), "/v1/monitor", NewCallOptions().WithMaxRetries(1))
	s.Require().NoError(err)

	sent := mock.Sent()
	s.Require().Len(sent, 1)
	s.Equal("http://payments.invalid/paymenthub/v1/monitor", sent[0].Spec.URL)
	s.Equal(3*time.Second, sent[0].Options.ConnectTimeout)
	s.Equal(DefaultResponseTimeout, sent[0].Options.ResponseTimeout)
	s.Equal(1, sent[0].Options.MaxRetries)
}
