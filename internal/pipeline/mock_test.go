package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/platewatch/platewatch/internal/model"
	"github.com/platewatch/platewatch/internal/store"
	"github.com/platewatch/platewatch/pkg/analyst"
	"github.com/platewatch/platewatch/pkg/places"
)

// --- Places Mock ---

type mockPlacesClient struct {
	mock.Mock
}

func (m *mockPlacesClient) Geocode(ctx context.Context, query string) (*places.GeocodeResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*places.GeocodeResult), args.Error(1)
}

func (m *mockPlacesClient) NearbySearch(ctx context.Context, location places.LatLng, radiusMeters int) ([]places.Place, error) {
	args := m.Called(ctx, location, radiusMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]places.Place), args.Error(1)
}

// --- Analyst Mock ---

type mockAnalystClient struct {
	mock.Mock
}

func (m *mockAnalystClient) Analyze(ctx context.Context, input analyst.Input) (*analyst.Analysis, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analyst.Analysis), args.Error(1)
}

// --- Store Mock ---

type mockStore struct {
	mock.Mock
}

func (m *mockStore) SaveReport(ctx context.Context, report *model.Report) (string, error) {
	args := m.Called(ctx, report)
	return args.String(0), args.Error(1)
}

func (m *mockStore) GetReport(ctx context.Context, id string) (*model.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *mockStore) ListReports(ctx context.Context, filter store.ReportFilter) ([]model.ReportSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReportSummary), args.Error(1)
}

func (m *mockStore) Migrate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
