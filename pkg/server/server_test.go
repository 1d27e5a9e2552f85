package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/cost-advisor/pkg/models/api"
	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/server/middleware"
	"github.com/de-tools/cost-advisor/pkg/services/advisor"
	"github.com/de-tools/cost-advisor/pkg/services/cost"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockExplorer struct {
	mock.Mock
}

func (m *mockExplorer) ListProfiles(ctx context.Context) ([]domain.ConfigProfile, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ConfigProfile), args.Error(1)
}

func (m *mockExplorer) ResolveContext(ctx context.Context, profile, region string) (domain.CloudContext, error) {
	args := m.Called(ctx, profile, region)
	return args.Get(0).(domain.CloudContext), args.Error(1)
}

func (m *mockExplorer) GetAdvisor(ctx context.Context, cc domain.CloudContext) (advisor.Controller, error) {
	args := m.Called(ctx, cc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(advisor.Controller), args.Error(1)
}

func (m *mockExplorer) GetCostAggregator(
	ctx context.Context,
	platform string,
	cc domain.CloudContext,
) (*cost.Aggregator, error) {
	args := m.Called(ctx, platform, cc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cost.Aggregator), args.Error(1)
}

func (m *mockExplorer) ListCostPlatforms() []string {
	return m.Called().Get(0).([]string)
}

type mockController struct {
	mock.Mock
}

func (m *mockController) Recommend(ctx context.Context, rt domain.ResourceType) ([]domain.Recommendation, error) {
	args := m.Called(ctx, rt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Recommendation), args.Error(1)
}

func (m *mockController) RecommendAll(ctx context.Context) advisor.Report {
	return m.Called(ctx).Get(0).(advisor.Report)
}

func (m *mockController) GetSupportedResources() []domain.ResourceType {
	return m.Called().Get(0).([]domain.ResourceType)
}

type staticSource struct{}

func (staticSource) GetAmortizedCost(
	_ context.Context,
	_ domain.BillingPeriod,
	dimension domain.CostDimension,
) ([]domain.CostGroup, error) {
	switch dimension {
	case domain.DimensionService:
		return []domain.CostGroup{{Key: "Amazon Elastic Compute Cloud - Compute", Amount: 40}}, nil
	case domain.DimensionRegion:
		return []domain.CostGroup{{Key: "eu-west-1", Amount: 40}}, nil
	default:
		return []domain.CostGroup{{Amount: 40}}, nil
	}
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	mockExp := new(mockExplorer)
	mockCtrl := new(mockController)
	cc := domain.CloudContext{Profile: "default", Region: "us-east-1"}

	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Account: mockExp,
			Logger:  logger,
		},
	}
	router := ConfigureRouter(config)
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	mockExp.On("ResolveContext", mock.Anything, "", "").Return(cc, nil)
	mockExp.On("GetAdvisor", mock.Anything, cc).Return(mockCtrl, nil)

	unsupported := "No recommendation"

	tests := []struct {
		name           string
		path           string
		setupMocks     func()
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name: "ListProfiles",
			path: "/api/v1/profiles",
			setupMocks: func() {
				mockExp.On("ListProfiles", mock.Anything).
					Return([]domain.ConfigProfile{{Name: "default", Type: domain.ProfileTypeSSO}}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       []api.Profile{{Name: "default", Type: "sso"}},
			parseResponse:  unmarshalResponse[[]api.Profile](),
		},
		{
			name: "GetRecommendations",
			path: "/api/v1/recommendations/ec2",
			setupMocks: func() {
				mockCtrl.On("Recommend", mock.Anything, domain.ResourceCompute).
					Return([]domain.Recommendation{{
						ResourceID:      "i-1",
						ResourceType:    domain.ResourceCompute,
						CurrentType:     "m5.large",
						CurrentPrice:    0.096,
						RecommendedType: domain.NoRecommendation,
					}}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: []api.Recommendation{{
				ResourceID:              "i-1",
				ResourceType:            "ec2",
				CurrentType:             "m5.large",
				CurrentPrice:            "0.10",
				RecommendedType:         &unsupported,
				RecommendedPrice:        "0.00",
				EstimatedMonthlySavings: "0.00",
				Reason:                  "No major savings opportunity detected",
				ReasonCodes:             []string{},
			}},
			parseResponse: unmarshalResponse[[]api.Recommendation](),
		},
		{
			name: "GetCostSummary",
			path: "/api/v1/cost-summary?month=2&year=2025",
			setupMocks: func() {
				mockExp.On("GetCostAggregator", mock.Anything, "", cc).
					Return(cost.NewAggregator(staticSource{}), nil)
			},
			expectedStatus: http.StatusOK,
			expected: api.CostSummary{
				Month:               2,
				Year:                2025,
				GrandTotal:          "40.00",
				HighestServiceName:  "Elastic Compute Cloud",
				HighestServiceSpend: "40.00",
				HighestRegionName:   "EU (Ireland)",
				HighestRegionSpend:  "40.00",
			},
			parseResponse: unmarshalResponse[api.CostSummary](),
		},
		{
			name:           "GetCostSummary_InvalidMonth",
			path:           "/api/v1/cost-summary?month=0",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expected:       api.ErrorResponse{Error: "invalid month: 0"},
			parseResponse:  unmarshalResponse[api.ErrorResponse](),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()
			resp, err := http.Get(testServer.URL + tc.path)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")
			assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestWebAPI_RequestIDPropagation(t *testing.T) {
	router := ConfigureRouter(Config{Dependencies: Dependencies{
		Account: new(mockExplorer),
		Logger:  zerolog.Nop(),
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get(middleware.RequestIDHeader))
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
