package poi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"google.golang.org/genai"

	generativeAI "github.com/FACorreiaa/go-day-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-day-planner/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// MockAIClient is a mock implementation of generativeAI.ContentGenerator
type MockAIClient struct {
	mock.Mock
}

func (m *MockAIClient) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	args := m.Called(ctx, prompt, config)
	return args.String(0), args.Error(1)
}

func setupServiceTest() (*ServiceImpl, *MockAIClient) {
	mockAI := new(MockAIClient)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return NewServiceImpl(mockAI, logger), mockAI
}

func TestServiceImpl_DiscoverPlaces(t *testing.T) {
	ctx := context.Background()

	t.Run("Lisbon scenario", func(t *testing.T) {
		service, mockAI := setupServiceTest()
		response := `{"insight":"Lisbon trams are 100+ years old.","places":[{"name":"Time Out Market","category":"food","rating":4.5,"reviewCount":200}]}`
		mockAI.On("GenerateContent", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("*genai.GenerateContentConfig")).
			Return(response, nil).Once()

		result, err := service.DiscoverPlaces(ctx, "Lisbon", []string{"food", "history"})
		require.NoError(t, err)

		expected := &types.DiscoveryResult{
			Places: []types.Place{{
				ID:          "place-0",
				Name:        "Time Out Market",
				Category:    "food",
				Description: defaultDescription,
				Rating:      4.5,
				ReviewCount: 200,
				PriceLevel:  "",
				ImageURL:    "https://placehold.co/600x400/EEE/31343C?text=food",
			}},
			Insight: "Lisbon trams are 100+ years old.",
		}
		assert.Equal(t, expected, result)
		mockAI.AssertExpectations(t)
	})

	t.Run("Prompt and tools", func(t *testing.T) {
		service, mockAI := setupServiceTest()
		mockAI.On("GenerateContent", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("*genai.GenerateContentConfig")).
			Return(`{"places":[]}`, nil).Once()

		_, err := service.DiscoverPlaces(ctx, "Porto", []string{"art", "cafe"})
		require.NoError(t, err)

		prompt := mockAI.Calls[0].Arguments.String(1)
		assert.Contains(t, prompt, "8-12 top-rated places in Porto")
		assert.Contains(t, prompt, "art, cafe")
		assert.Contains(t, prompt, "City Insight")

		config := mockAI.Calls[0].Arguments.Get(2).(*genai.GenerateContentConfig)
		require.Len(t, config.Tools, 2)
		assert.NotNil(t, config.Tools[0].GoogleMaps)
		assert.NotNil(t, config.Tools[1].GoogleSearch)
	})

	t.Run("N places without insight", func(t *testing.T) {
		for _, n := range []int{0, 1, 5, 12} {
			t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
				service, mockAI := setupServiceTest()
				items := make([]string, n)
				for i := range items {
					items[i] = fmt.Sprintf(`{"name":"Place %d"}`, i)
				}
				response := fmt.Sprintf(`{"places":[%s]}`, strings.Join(items, ","))
				mockAI.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(response, nil).Once()

				result, err := service.DiscoverPlaces(ctx, "Berlin", []string{"history"})
				require.NoError(t, err)
				require.Len(t, result.Places, n)
				for i, p := range result.Places {
					assert.Equal(t, fmt.Sprintf("place-%d", i), p.ID)
					assert.Equal(t, fmt.Sprintf("Place %d", i), p.Name)
				}
				assert.Equal(t, "Welcome to Berlin!", result.Insight)
			})
		}
	})

	t.Run("Service error propagates", func(t *testing.T) {
		service, mockAI := setupServiceTest()
		cause := errors.New("connection refused")
		mockAI.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return("", cause).Once()

		result, err := service.DiscoverPlaces(ctx, "Rome", []string{"food"})
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, generativeAI.IsServiceError(err))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("Typed service error is not wrapped twice", func(t *testing.T) {
		service, mockAI := setupServiceTest()
		upstream := &generativeAI.ServiceError{Op: "generate content", Err: generativeAI.ErrEmptyResponse}
		mockAI.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return("", upstream).Once()

		_, err := service.DiscoverPlaces(ctx, "Rome", []string{"food"})
		assert.Same(t, upstream, err)
	})

	t.Run("Malformed JSON is a parse error", func(t *testing.T) {
		service, mockAI := setupServiceTest()
		mockAI.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
			Return("Sorry, I could not find places.", nil).Once()

		result, err := service.DiscoverPlaces(ctx, "Rome", []string{"food"})
		require.Error(t, err)
		assert.Nil(t, result)

		var pe *generativeAI.ParseError
		assert.ErrorAs(t, err, &pe)
		mockAI.AssertNumberOfCalls(t, "GenerateContent", 1)
	})
}

func TestParseDiscoveryResponse(t *testing.T) {
	t.Run("Fenced bare array", func(t *testing.T) {
		text := "```json\n[{\"name\":\"A\",\"category\":\"art\"},{\"name\":\"B\"}]\n```"
		result, err := parseDiscoveryResponse("Paris", text)
		require.NoError(t, err)
		require.Len(t, result.Places, 2)
		assert.Equal(t, "art", result.Places[0].Category)
		assert.Equal(t, defaultCategory, result.Places[1].Category)
		assert.Equal(t, "Welcome to Paris!", result.Insight)
	})

	t.Run("Places field is not an array", func(t *testing.T) {
		result, err := parseDiscoveryResponse("Paris", `{"places":{"name":"A"},"insight":"Fact."}`)
		require.NoError(t, err)
		assert.Empty(t, result.Places)
		assert.NotNil(t, result.Places)
		assert.Equal(t, "Fact.", result.Insight)
	})

	t.Run("Insight is not a string", func(t *testing.T) {
		result, err := parseDiscoveryResponse("Oslo", `{"places":[],"insight":42}`)
		require.NoError(t, err)
		assert.Equal(t, "Welcome to Oslo!", result.Insight)
	})

	t.Run("Blank insight", func(t *testing.T) {
		result, err := parseDiscoveryResponse("Oslo", `{"places":[],"insight":"  "}`)
		require.NoError(t, err)
		assert.Equal(t, "Welcome to Oslo!", result.Insight)
	})

	t.Run("Scalar document", func(t *testing.T) {
		result, err := parseDiscoveryResponse("Oslo", `"just a string"`)
		require.NoError(t, err)
		assert.Empty(t, result.Places)
		assert.Equal(t, "Welcome to Oslo!", result.Insight)
	})

	t.Run("Empty text", func(t *testing.T) {
		result, err := parseDiscoveryResponse("Oslo", "")
		require.NoError(t, err)
		assert.Empty(t, result.Places)
		assert.Equal(t, "Welcome to Oslo!", result.Insight)
	})

	t.Run("Non-object elements are skipped", func(t *testing.T) {
		result, err := parseDiscoveryResponse("Oslo", `{"places":["oops",{"name":"A"},null,{"name":"B"}]}`)
		require.NoError(t, err)
		require.Len(t, result.Places, 2)
		assert.Equal(t, "place-0", result.Places[0].ID)
		assert.Equal(t, "place-1", result.Places[1].ID)
		assert.Equal(t, "B", result.Places[1].Name)
	})

	t.Run("Truncated JSON", func(t *testing.T) {
		_, err := parseDiscoveryResponse("Oslo", `{"places":[{"name":"A"`)
		var pe *generativeAI.ParseError
		assert.ErrorAs(t, err, &pe)
	})
}

func TestNormalizePlace(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected types.Place
	}{
		{
			name: "Missing optional fields",
			raw:  `{"name":"Castle"}`,
			expected: types.Place{
				ID: "place-0", Name: "Castle", Category: "General", Description: "A popular local spot.",
				Rating: 0, ReviewCount: 0, PriceLevel: "",
				ImageURL: "https://placehold.co/600x400/EEE/31343C?text=General",
			},
		},
		{
			name: "Fully populated",
			raw: `{"name":"Belém Tower","category":"history","description":"Fortified tower.","rating":4.6,
				"reviewCount":"85,000","priceLevel":"$","address":"Av. Brasília, 1400-038 Lisboa",
				"imageUrl":"https://example.com/belem.jpg","lat":38.6916,"lng":-9.2160}`,
			expected: types.Place{
				ID: "place-0", Name: "Belém Tower", Category: "history", Description: "Fortified tower.",
				Rating: 4.6, ReviewCount: 85000, PriceLevel: "$", Address: "Av. Brasília, 1400-038 Lisboa",
				ImageURL:    "https://example.com/belem.jpg",
				Coordinates: &types.Coordinates{Lat: 38.6916, Lng: -9.2160},
			},
		},
		{
			name: "Relative image URL and spaced category",
			raw:  `{"name":"X","category":"Street Food","imageUrl":"/img/x.png"}`,
			expected: types.Place{
				ID: "place-0", Name: "X", Category: "Street Food", Description: "A popular local spot.",
				ImageURL: "https://placehold.co/600x400/EEE/31343C?text=Street%20Food",
			},
		},
		{
			name: "Only latitude present",
			raw:  `{"name":"Y","lat":12.5}`,
			expected: types.Place{
				ID: "place-0", Name: "Y", Category: "General", Description: "A popular local spot.",
				ImageURL: "https://placehold.co/600x400/EEE/31343C?text=General",
			},
		},
		{
			name: "Zero coordinates are kept",
			raw:  `{"name":"Null Island","lat":0,"lng":0}`,
			expected: types.Place{
				ID: "place-0", Name: "Null Island", Category: "General", Description: "A popular local spot.",
				ImageURL:    "https://placehold.co/600x400/EEE/31343C?text=General",
				Coordinates: &types.Coordinates{Lat: 0, Lng: 0},
			},
		},
		{
			name: "Negative numbers clamp to zero",
			raw:  `{"name":"Z","rating":-1,"reviewCount":-5}`,
			expected: types.Place{
				ID: "place-0", Name: "Z", Category: "General", Description: "A popular local spot.",
				ImageURL: "https://placehold.co/600x400/EEE/31343C?text=General",
			},
		},
		{
			name: "Huge review count is capped",
			raw:  `{"name":"Crowded","reviewCount":1e300}`,
			expected: types.Place{
				ID: "place-0", Name: "Crowded", Category: "General", Description: "A popular local spot.",
				ReviewCount: math.MaxInt32,
				ImageURL:    "https://placehold.co/600x400/EEE/31343C?text=General",
			},
		},
		{
			name: "Non-finite numbers are dropped",
			raw:  `{"name":"Odd","rating":"Infinity","lat":"NaN","lng":"1"}`,
			expected: types.Place{
				ID: "place-0", Name: "Odd", Category: "General", Description: "A popular local spot.",
				ImageURL: "https://placehold.co/600x400/EEE/31343C?text=General",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseDiscoveryResponse("Lisbon", "["+tt.raw+"]")
			require.NoError(t, err)
			require.Len(t, result.Places, 1)
			assert.Equal(t, tt.expected, result.Places[0])
		})
	}
}

func TestParseDiscoveryResponse_Marshalable(t *testing.T) {
	text := `[{"name":"A","reviewCount":1e300},{"name":"B","rating":"Infinity"},{"name":"C","lat":"NaN","lng":"1"}]`
	result, err := parseDiscoveryResponse("Lisbon", text)
	require.NoError(t, err)
	require.Len(t, result.Places, 3)
	for _, p := range result.Places {
		assert.GreaterOrEqual(t, p.ReviewCount, 0)
	}
	_, err = json.Marshal(result)
	assert.NoError(t, err)
}

func TestPlaceShortAddress(t *testing.T) {
	p := types.Place{Address: "Av. Brasília, 1400-038 Lisboa"}
	assert.Equal(t, "Av. Brasília", p.ShortAddress())
	assert.Equal(t, "", types.Place{}.ShortAddress())
}
