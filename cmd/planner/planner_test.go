package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-day-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-day-planner/internal/types"
)

type mockPOIService struct {
	mock.Mock
}

func (m *mockPOIService) DiscoverPlaces(ctx context.Context, city string, interests []string) (*types.DiscoveryResult, error) {
	args := m.Called(ctx, city, interests)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.DiscoveryResult), args.Error(1)
}

type mockItineraryService struct {
	mock.Mock
}

func (m *mockItineraryService) GenerateItinerary(ctx context.Context, city string, places []types.Place, startTime, endTime string, pace types.Pace) []types.ItineraryItem {
	args := m.Called(ctx, city, places, startTime, endTime, pace)
	return args.Get(0).([]types.ItineraryItem)
}

var lisbonPlaces = []types.Place{
	{ID: "place-0", Name: "Castelo de São Jorge", Category: "history", Rating: 4.6, ReviewCount: 80000, Address: "R. de Santa Cruz do Castelo, Lisboa"},
	{ID: "place-1", Name: "Time Out Market", Category: "food", Rating: 4.5, ReviewCount: 60000, Coordinates: &types.Coordinates{Lat: 38.7069, Lng: -9.1459}},
	{ID: "place-2", Name: "LX Factory", Category: "shopping"},
}

func runPlanner(t *testing.T, svc *services, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(func(context.Context) (*services, error) { return svc, nil })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDiscoverCmd(t *testing.T) {
	t.Run("Text output", func(t *testing.T) {
		poiSvc := new(mockPOIService)
		poiSvc.On("DiscoverPlaces", mock.Anything, "Lisbon", []string{"history", "food"}).
			Return(&types.DiscoveryResult{Places: lisbonPlaces, Insight: "Lisbon is older than Rome."}, nil).Once()

		out, err := runPlanner(t, &services{POI: poiSvc}, "", "discover", "--city", "Lisbon", "--interests", "history,food")
		require.NoError(t, err)
		assert.Contains(t, out, "Lisbon is older than Rome.")
		assert.Contains(t, out, "Castelo de São Jorge")
		assert.Contains(t, out, "R. de Santa Cruz do Castelo")
		assert.NotContains(t, out, "Lisboa\n")
		poiSvc.AssertExpectations(t)
	})

	t.Run("JSON output", func(t *testing.T) {
		poiSvc := new(mockPOIService)
		want := &types.DiscoveryResult{Places: lisbonPlaces, Insight: "Welcome to Lisbon!"}
		poiSvc.On("DiscoverPlaces", mock.Anything, "Lisbon", []string{"food"}).Return(want, nil).Once()

		out, err := runPlanner(t, &services{POI: poiSvc}, "", "discover", "--city", "Lisbon", "--interests", "food", "-o", "json")
		require.NoError(t, err)
		var got types.DiscoveryResult
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, *want, got)
	})

	t.Run("Service failure", func(t *testing.T) {
		poiSvc := new(mockPOIService)
		poiSvc.On("DiscoverPlaces", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

		_, err := runPlanner(t, &services{POI: poiSvc}, "", "discover", "--city", "Lisbon", "--interests", "food")
		assert.ErrorContains(t, err, "could not fetch places")
	})

	t.Run("Missing flags", func(t *testing.T) {
		poiSvc := new(mockPOIService)
		_, err := runPlanner(t, &services{POI: poiSvc}, "", "discover", "--interests", "food")
		assert.ErrorContains(t, err, "--city")
		_, err = runPlanner(t, &services{POI: poiSvc}, "", "discover", "--city", "Lisbon")
		assert.ErrorContains(t, err, "interests")
		poiSvc.AssertNotCalled(t, "DiscoverPlaces", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Blank interests are rejected", func(t *testing.T) {
		poiSvc := new(mockPOIService)
		_, err := runPlanner(t, &services{POI: poiSvc}, "", "discover", "--city", "Lisbon", "--interests", ",")
		assert.ErrorContains(t, err, "interests")
		_, err = runPlanner(t, &services{POI: poiSvc}, "", "discover", "--city", "Lisbon", "--interests", " , ")
		assert.ErrorContains(t, err, "interests")
		poiSvc.AssertNotCalled(t, "DiscoverPlaces", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Interests are trimmed and deduplicated", func(t *testing.T) {
		poiSvc := new(mockPOIService)
		poiSvc.On("DiscoverPlaces", mock.Anything, "Lisbon", []string{"food", "history"}).
			Return(&types.DiscoveryResult{Places: []types.Place{}, Insight: "Fact."}, nil).Once()
		_, err := runPlanner(t, &services{POI: poiSvc}, "", "discover", "--city", "Lisbon", "--interests", " food,history,food,")
		require.NoError(t, err)
		poiSvc.AssertExpectations(t)
	})

	t.Run("Invalid output format", func(t *testing.T) {
		_, err := runPlanner(t, &services{}, "", "discover", "--city", "Lisbon", "--interests", "food", "-o", "yaml")
		assert.ErrorContains(t, err, "invalid --output")
	})
}

func TestItineraryCmd(t *testing.T) {
	discovery, err := json.Marshal(types.DiscoveryResult{Places: lisbonPlaces, Insight: "x"})
	require.NoError(t, err)

	t.Run("Reads discovery output from stdin and filters selection", func(t *testing.T) {
		itSvc := new(mockItineraryService)
		selected := []types.Place{lisbonPlaces[0], lisbonPlaces[1]}
		items := itinerary.ScheduleFallback(selected, "10:00")
		itSvc.On("GenerateItinerary", mock.Anything, "Lisbon", selected, "10:00", "", types.PaceChill).Return(items).Once()

		out, err := runPlanner(t, &services{Itinerary: itSvc, MapsAPIKey: "maps-key"}, string(discovery),
			"itinerary", "--city", "Lisbon", "--places-file", "-", "--select", "place-1,place-0", "--start", "10:00", "--pace", "chill")
		require.NoError(t, err)
		assert.Contains(t, out, "Your day in Lisbon")
		assert.Contains(t, out, "10:00-11:30")
		assert.Contains(t, out, "Time Out Market")
		assert.Contains(t, out, "travelmode=transit")
		assert.Contains(t, out, "Map: https://www.google.com/maps/embed/v1/directions?key=maps-key")
		itSvc.AssertExpectations(t)
	})

	t.Run("Reads a bare array from a file as JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "places.json")
		raw, err := json.Marshal(lisbonPlaces)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, raw, 0o600))

		itSvc := new(mockItineraryService)
		items := itinerary.ScheduleFallback(lisbonPlaces, "09:00")
		itSvc.On("GenerateItinerary", mock.Anything, "Lisbon", lisbonPlaces, "09:00", "", types.PaceBalanced).Return(items).Once()

		out, err := runPlanner(t, &services{Itinerary: itSvc}, "", "itinerary", "--city", "Lisbon", "--places-file", path, "-o", "json")
		require.NoError(t, err)
		var got itinerary.Response
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, items, got.Items)
		assert.Empty(t, got.MapEmbedURL)
	})

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"No city", []string{"itinerary", "--places-file", "-"}, "--city"},
		{"Bad pace", []string{"itinerary", "--city", "Lisbon", "--places-file", "-", "--pace", "sprint"}, "invalid pace"},
		{"No places file", []string{"itinerary", "--city", "Lisbon"}, "--places-file"},
		{"Nothing selected", []string{"itinerary", "--city", "Lisbon", "--places-file", "-", "--select", "place-9"}, "no places selected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			itSvc := new(mockItineraryService)
			_, err := runPlanner(t, &services{Itinerary: itSvc}, string(discovery), tt.args...)
			assert.ErrorContains(t, err, tt.wantErr)
			itSvc.AssertNotCalled(t, "GenerateItinerary", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestReadPlaces_Malformed(t *testing.T) {
	_, err := readPlaces(strings.NewReader(`{"places":`), "-")
	assert.ErrorContains(t, err, "failed to decode places")
}
