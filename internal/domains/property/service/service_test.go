package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"estate/config"
	"estate/infras/otel/mocks"
	s3Mocks "estate/infras/s3/mocks"
	propertyMocks "estate/internal/domains/property/mocks"
	"estate/internal/domains/property/model"
	"estate/internal/domains/property/model/dto"
	"estate/internal/domains/property/service"
	"estate/shared/cache"
	"estate/shared/constant"
	gDto "estate/shared/dto"
)

// cacheStub always misses; the write paths invalidate on background
// goroutines, so a gomock cache would race with the controller.
type cacheStub struct{}

func (cacheStub) Save(context.Context, string, any, int) error { return nil }
func (cacheStub) Get(context.Context, string, any) error       { return cache.Nil }
func (cacheStub) Delete(context.Context, string) error         { return nil }
func (cacheStub) Clear(context.Context, string) error          { return nil }

func userContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestPropertyService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := propertyMocks.NewMockProperty(ctrl)
	mockFavorite := propertyMocks.NewMockFavorite(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockFavorite, &config.Config{}, cacheStub{}, mockOtel, mockS3)

	tests := []struct {
		name      string
		req       dto.CreatePropertyRequest
		setupMock func()
		check     func(t *testing.T, res dto.PropertyResponse)
		wantErr   bool
	}{
		{
			name: "new listing starts unapproved and available",
			req: dto.CreatePropertyRequest{
				Name:     "Skyline Residency",
				Price:    25000,
				Location: "Andheri West, Mumbai",
				Type:     "Luxury Apartment",
				Bedrooms: 2,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, res dto.PropertyResponse) {
				t.Helper()

				assert.Equal(t, model.ApprovalStatusPending, res.ApprovalStatus)
				assert.False(t, res.IsApproved)
				assert.Equal(t, model.StatusAvailable, res.Status)
				assert.Equal(t, "landlord-1", res.OwnerID)
			},
			wantErr: false,
		},
		{
			name: "unknown property type is rejected",
			req: dto.CreatePropertyRequest{
				Name:     "Skyline Residency",
				Price:    25000,
				Location: "Andheri West, Mumbai",
				Type:     "Castle",
			},
			setupMock: func() {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(userContext("landlord-1", constant.RoleLandlord), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)

			if tt.check != nil {
				tt.check(t, res)
			}
		})
	}
}

func TestPropertyService_ToggleFavorite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := propertyMocks.NewMockProperty(ctrl)
	mockFavorite := propertyMocks.NewMockFavorite(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockFavorite, &config.Config{}, cacheStub{}, mockOtel, mockS3)

	ctx := userContext("renter-1", constant.RoleRenter)

	t.Run("first toggle adds the favorite", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockFavorite.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		mockFavorite.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		favorited, err := svc.ToggleFavorite(ctx, "property-1")

		assert.NoError(t, err)
		assert.True(t, favorited)
	})

	t.Run("second toggle removes it", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockFavorite.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockFavorite.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		favorited, err := svc.ToggleFavorite(ctx, "property-1")

		assert.NoError(t, err)
		assert.False(t, favorited)
	})

	t.Run("unknown property", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := svc.ToggleFavorite(ctx, "missing")

		assert.Error(t, err)
	})
}

func TestPropertyService_Favorites(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := propertyMocks.NewMockProperty(ctrl)
	mockFavorite := propertyMocks.NewMockFavorite(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockFavorite, &config.Config{}, cacheStub{}, mockOtel, mockS3)

	ctx := userContext("renter-1", constant.RoleRenter)

	t.Run("favorited properties are flagged", func(t *testing.T) {
		mockFavorite.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Favorite{
				{PropertyID: "property-1", UserID: "renter-1"},
			}, nil)

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Property{
				{ID: "property-1", Name: "Skyline Residency", Price: 25000},
			}, nil)

		res, err := svc.Favorites(ctx, gDto.QueryParams{Limit: 10})

		assert.NoError(t, err)
		assert.Len(t, res.Properties, 1)
		assert.True(t, res.Properties[0].IsFavorited)
	})

	t.Run("no favorites yields an empty list", func(t *testing.T) {
		mockFavorite.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		res, err := svc.Favorites(ctx, gDto.QueryParams{Limit: 10})

		assert.NoError(t, err)
		assert.Empty(t, res.Properties)
	})
}

func TestPropertyService_SetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := propertyMocks.NewMockProperty(ctrl)
	mockFavorite := propertyMocks.NewMockFavorite(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockFavorite, &config.Config{}, cacheStub{}, mockOtel, mockS3)

	owned := model.Property{ID: "property-1", OwnerID: "landlord-1", Status: model.StatusAvailable}

	t.Run("owner can change the status", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(owned, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.SetStatus(userContext("landlord-1", constant.RoleLandlord), "property-1", model.StatusMaintenance)

		assert.NoError(t, err)
	})

	t.Run("another landlord is forbidden", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(owned, nil)

		err := svc.SetStatus(userContext("landlord-2", constant.RoleLandlord), "property-1", model.StatusMaintenance)

		assert.Error(t, err)
	})

	t.Run("admin can change any listing", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(owned, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.SetStatus(userContext("admin-1", constant.RoleAdmin), "property-1", model.StatusUnlisted)

		assert.NoError(t, err)
	})
}
