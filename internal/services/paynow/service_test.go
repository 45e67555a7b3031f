package paynow

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "splitpay/internal/domain/paynow"
	appErrors "splitpay/internal/errors"
	"splitpay/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(payload, brandColour string) ([]byte, error) {
	args := m.Called(payload, brandColour)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockRecipients struct {
	mock.Mock
}

func (m *MockRecipients) Get(ctx context.Context, userID string) (*models.Recipient, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipient), args.Error(1)
}

type MockImageCache struct {
	mock.Mock
}

func (m *MockImageCache) GetImage(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *MockImageCache) SetImage(ctx context.Context, key string, png []byte) error {
	args := m.Called(ctx, key, png)
	return args.Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordOperationDuration(op string, duration time.Duration) {
	m.Called(op, duration)
}

func (m *MockMetrics) RecordError(op, kind string) {
	m.Called(op, kind)
}

func (m *MockMetrics) RecordCacheHit(key string) {
	m.Called(key)
}

func (m *MockMetrics) RecordCacheMiss(key string) {
	m.Called(key)
}

var defaultConfig = Config{RecipientPhone: "+65 9123 4567", RecipientName: "John Doe"}

func TestService_GeneratePayload(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		req       GenerateRequest
		setupMock func(*MockRecipients)
		wantID    string
		wantName  string
		wantRef   string
		wantPayTo string
		wantErr   error
	}{
		{
			name:      "configured default recipient",
			cfg:       defaultConfig,
			req:       GenerateRequest{Amount: decimal.NewFromInt(10), Reference: "Dinner", PersonName: "Alice"},
			wantID:    "6591234567",
			wantName:  "John Doe",
			wantRef:   "Dinner - Alice",
			wantPayTo: "+65 9123 4567",
		},
		{
			name: "explicit recipient wins",
			cfg:  defaultConfig,
			req: GenerateRequest{
				Amount:    decimal.NewFromInt(10),
				UserID:    "42",
				Recipient: &Recipient{ID: "8123-4567", Name: "Bob"},
			},
			wantID:    "81234567",
			wantName:  "Bob",
			wantRef:   DefaultReference,
			wantPayTo: "8123-4567",
		},
		{
			name: "stored recipient by user id",
			cfg:  defaultConfig,
			req:  GenerateRequest{Amount: decimal.NewFromInt(5), UserID: "42", PersonName: "Carol"},
			setupMock: func(r *MockRecipients) {
				r.On("Get", mock.Anything, "42").Return(&models.Recipient{UserID: "42", Phone: "+6590001111", Name: "Dave"}, nil)
			},
			wantID:    "6590001111",
			wantName:  "Dave",
			wantRef:   "Carol",
			wantPayTo: "+6590001111",
		},
		{
			name: "unknown user falls back to default",
			cfg:  defaultConfig,
			req:  GenerateRequest{Amount: decimal.NewFromInt(5), UserID: "7"},
			setupMock: func(r *MockRecipients) {
				r.On("Get", mock.Anything, "7").Return(nil, appErrors.ErrRecipientNotFound)
			},
			wantID:    "6591234567",
			wantName:  "John Doe",
			wantRef:   DefaultReference,
			wantPayTo: "+65 9123 4567",
		},
		{
			name: "store failure is returned",
			cfg:  defaultConfig,
			req:  GenerateRequest{Amount: decimal.NewFromInt(5), UserID: "7"},
			setupMock: func(r *MockRecipients) {
				r.On("Get", mock.Anything, "7").Return(nil, errors.New("connection refused"))
			},
			wantErr: errors.New("connection refused"),
		},
		{
			name:    "no recipient configured",
			req:     GenerateRequest{Amount: decimal.NewFromInt(5)},
			wantErr: appErrors.ErrRecipientNotConfigured,
		},
		{
			name:    "invalid amount",
			cfg:     defaultConfig,
			req:     GenerateRequest{Amount: decimal.NewFromInt(-5)},
			wantErr: appErrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipients := new(MockRecipients)
			if tt.setupMock != nil {
				tt.setupMock(recipients)
			}

			s := NewService(tt.cfg, new(MockRenderer), recipients, nil, nil, nil)
			res, err := s.GeneratePayload(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				var de *appErrors.DomainError
				if errors.As(tt.wantErr, &de) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Contains(t, err.Error(), tt.wantErr.Error())
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, domain.RecipientMobile, res.Request.RecipientType)
			assert.Equal(t, tt.wantID, res.Request.RecipientID)
			assert.Equal(t, tt.wantName, res.Request.RecipientName)
			assert.Equal(t, tt.wantRef, res.Request.Reference)
			assert.Equal(t, tt.wantPayTo, res.PayTo)
			assert.NoError(t, Verify(res.Payload))
			recipients.AssertExpectations(t)
		})
	}
}

func TestService_GeneratePayloadHonoursEditableConfig(t *testing.T) {
	cfg := defaultConfig
	cfg.AmountEditable = true
	s := NewService(cfg, new(MockRenderer), nil, nil, nil, nil)

	res, err := s.GeneratePayload(context.Background(), GenerateRequest{Amount: decimal.NewFromInt(1)})
	require.NoError(t, err)

	p, err := Decode(res.Payload)
	require.NoError(t, err)
	assert.True(t, p.AmountEditable())
}

func TestService_GenerateQR(t *testing.T) {
	req := GenerateRequest{Amount: decimal.NewFromInt(20), Reference: "Lunch", BrandColour: "navy"}
	image := []byte("png-bytes")

	t.Run("cache miss renders and stores", func(t *testing.T) {
		renderer := new(MockRenderer)
		imageCache := new(MockImageCache)
		metrics := new(MockMetrics)

		metrics.On("RecordOperationDuration", mock.Anything, mock.Anything).Return()
		metrics.On("RecordCacheMiss", mock.Anything).Return()
		imageCache.On("GetImage", mock.Anything, mock.Anything).Return(nil, false, nil)
		renderer.On("Render", mock.Anything, "navy").Return(image, nil)
		imageCache.On("SetImage", mock.Anything, mock.Anything, image).Return(nil)

		s := NewService(defaultConfig, renderer, nil, imageCache, metrics, nil)
		res, err := s.GenerateQR(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, image, res.Image)

		renderer.AssertExpectations(t)
		imageCache.AssertExpectations(t)
		metrics.AssertExpectations(t)
	})

	t.Run("cache hit skips rendering", func(t *testing.T) {
		renderer := new(MockRenderer)
		imageCache := new(MockImageCache)
		metrics := new(MockMetrics)

		metrics.On("RecordOperationDuration", mock.Anything, mock.Anything).Return()
		metrics.On("RecordCacheHit", mock.Anything).Return()
		imageCache.On("GetImage", mock.Anything, mock.Anything).Return(image, true, nil)

		s := NewService(defaultConfig, renderer, nil, imageCache, metrics, nil)
		res, err := s.GenerateQR(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, image, res.Image)

		renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
		metrics.AssertExpectations(t)
	})

	t.Run("render failure", func(t *testing.T) {
		renderer := new(MockRenderer)
		metrics := new(MockMetrics)

		metrics.On("RecordOperationDuration", mock.Anything, mock.Anything).Return()
		metrics.On("RecordCacheMiss", mock.Anything).Return()
		metrics.On("RecordError", "render", "RENDER_FAILED").Return()
		renderer.On("Render", mock.Anything, "navy").Return(nil, appErrors.ErrRender)

		s := NewService(defaultConfig, renderer, nil, nil, metrics, nil)
		_, err := s.GenerateQR(context.Background(), req)
		assert.ErrorIs(t, err, appErrors.ErrRender)
		metrics.AssertExpectations(t)
	})

	t.Run("cache errors do not fail the request", func(t *testing.T) {
		renderer := new(MockRenderer)
		imageCache := new(MockImageCache)

		imageCache.On("GetImage", mock.Anything, mock.Anything).Return(nil, false, errors.New("redis down"))
		renderer.On("Render", mock.Anything, "navy").Return(image, nil)
		imageCache.On("SetImage", mock.Anything, mock.Anything, image).Return(errors.New("redis down"))

		s := NewService(defaultConfig, renderer, nil, imageCache, nil, nil)
		res, err := s.GenerateQR(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, image, res.Image)
	})
}

func TestService_Decode(t *testing.T) {
	s := NewService(defaultConfig, new(MockRenderer), nil, nil, nil, nil)

	p, err := s.Decode(context.Background(), sampleMobilePayload)
	require.NoError(t, err)
	assert.Equal(t, "5412", p.Checksum)

	_, err = s.Decode(context.Background(), sampleMobilePayload[:len(sampleMobilePayload)-1]+"3")
	assert.ErrorIs(t, err, appErrors.ErrChecksumMismatch)
}

func TestNewServiceRequiresRenderer(t *testing.T) {
	assert.Panics(t, func() {
		NewService(defaultConfig, nil, nil, nil, nil, nil)
	})
}

func TestBuildReference(t *testing.T) {
	tests := []struct {
		reference string
		person    string
		want      string
	}{
		{reference: "Dinner", person: "Alice", want: "Dinner - Alice"},
		{reference: "", person: "Alice", want: "Alice"},
		{reference: "Dinner", person: "", want: "Dinner"},
		{reference: "", person: "", want: DefaultReference},
		{reference: "Birthday dinner at Jumbo", person: "Alexandria", want: "Birthday dinner at Jumbo "},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildReference(tt.reference, tt.person))
		})
	}
}

func TestImageKeyDependsOnColour(t *testing.T) {
	assert.NotEqual(t, imageKey(sampleMobilePayload, "purple"), imageKey(sampleMobilePayload, "navy"))
	assert.Equal(t, imageKey(sampleMobilePayload, "purple"), imageKey(sampleMobilePayload, "purple"))
}
