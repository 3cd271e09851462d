package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"estate/config"
	"estate/infras/jwt"
	jwtMocks "estate/infras/jwt/mocks"
	"estate/infras/otel/mocks"
	"estate/internal/domains/auth/model/dto"
	"estate/internal/domains/auth/service"
	userMocks "estate/internal/domains/user/mocks"
	userModel "estate/internal/domains/user/model"
	"estate/shared/constant"
)

// bcrypt hash of "password".
const passwordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

func tokenPair() *jwt.TokenPair {
	return &jwt.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresIn:    900,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.App.AdminEmailDomain = "admin.com"

	svc := service.New(mockUserRepo, cfg, mockOtel, mockJWT)

	tests := []struct {
		name      string
		req       dto.RegisterRequest
		setupMock func()
		check     func(t *testing.T, res dto.LoginResponse)
		wantErr   bool
	}{
		{
			name: "defaults to the renter role",
			req: dto.RegisterRequest{
				Name:     "Asha Verma",
				Email:    "asha@example.com",
				Password: "password",
				Phone:    "+91 98765 43210",
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockUserRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockJWT.EXPECT().
					GenerateTokenPair(gomock.Any(), "asha@example.com", constant.RoleRenter).
					Return(tokenPair(), nil)
			},
			check: func(t *testing.T, res dto.LoginResponse) {
				t.Helper()

				assert.Equal(t, "access-token", res.AccessToken)
				assert.Equal(t, constant.RoleRenter, res.User.Role)
				assert.False(t, res.User.IsVerified)
			},
			wantErr: false,
		},
		{
			name: "duplicate email is rejected",
			req: dto.RegisterRequest{
				Name:     "Asha Verma",
				Email:    "asha@example.com",
				Password: "password",
				Phone:    "+91 98765 43210",
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: true,
		},
		{
			name: "reserved domain grants a verified admin account",
			req: dto.RegisterRequest{
				Name:     "Root",
				Email:    "root@admin.com",
				Password: "password",
				Phone:    "+91 98765 43211",
				Role:     constant.RoleLandlord,
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockUserRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockJWT.EXPECT().
					GenerateTokenPair(gomock.Any(), "root@admin.com", constant.RoleAdmin).
					Return(tokenPair(), nil)
			},
			check: func(t *testing.T, res dto.LoginResponse) {
				t.Helper()

				assert.Equal(t, constant.RoleAdmin, res.User.Role)
				assert.True(t, res.User.IsVerified)
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Register(context.Background(), tt.req)

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

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockUserRepo, &config.Config{}, mockOtel, mockJWT)

	activeUser := userModel.User{
		ID:       "user-1",
		Name:     "Asha Verma",
		Email:    "asha@example.com",
		Password: passwordHash,
		Role:     constant.RoleRenter,
		IsActive: true,
	}

	blockReason := "fraudulent listings"

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   string
	}{
		{
			name: "success records the login time",
			req:  dto.LoginRequest{Email: "asha@example.com", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeUser, nil)

				mockJWT.EXPECT().
					GenerateTokenPair("user-1", "asha@example.com", constant.RoleRenter).
					Return(tokenPair(), nil)

				mockUserRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@example.com", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, nil)
			},
			wantErr: "invalid email or password",
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "asha@example.com", Password: "not-the-password"},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeUser, nil)
			},
			wantErr: "invalid email or password",
		},
		{
			name: "deactivated account",
			req:  dto.LoginRequest{Email: "asha@example.com", Password: "password"},
			setupMock: func() {
				inactive := activeUser
				inactive.IsActive = false

				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(inactive, nil)
			},
			wantErr: "account is deactivated",
		},
		{
			name: "blocked account surfaces the reason",
			req:  dto.LoginRequest{Email: "asha@example.com", Password: "password"},
			setupMock: func() {
				blocked := activeUser
				blocked.IsBlocked = true
				blocked.BlockReason = &blockReason

				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(blocked, nil)
			},
			wantErr: "account is blocked: fraudulent listings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, "refresh-token", res.RefreshToken)
			assert.Equal(t, "user-1", res.User.ID)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockUserRepo, &config.Config{}, mockOtel, mockJWT)

	t.Run("success", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("refresh-token").
			Return(tokenPair(), nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

		assert.NoError(t, err)
		assert.Equal(t, "access-token", res.AccessToken)
	})

	t.Run("invalid token", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("garbage").
			Return(nil, assert.AnError)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "garbage"})

		assert.ErrorContains(t, err, "invalid refresh token")
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockUserRepo, &config.Config{}, mockOtel, mockJWT)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")

	current := userModel.User{ID: "user-1", Password: passwordHash, IsActive: true}

	t.Run("success", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(current, nil)

		mockUserRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.ChangePassword(ctx, dto.ChangePasswordRequest{
			CurrentPassword: "password",
			NewPassword:     "an-even-longer-password",
		})

		assert.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(current, nil)

		err := svc.ChangePassword(ctx, dto.ChangePasswordRequest{
			CurrentPassword: "not-the-password",
			NewPassword:     "an-even-longer-password",
		})

		assert.ErrorContains(t, err, "current password is incorrect")
	})
}

func TestAuthService_UploadDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockUserRepo, &config.Config{}, mockOtel, mockJWT)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")

	req := dto.UploadDocumentRequest{
		DocumentType:   "passport",
		DocumentNumber: "P1234567",
		DocumentBase64: "aGVsbG8=",
	}

	t.Run("resubmission resets the review", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "user-1", Role: constant.RoleRenter, IsActive: true}, nil)

		mockUserRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, false, fields[userModel.FieldIsVerified])
				assert.Equal(t, userModel.VerificationStatusPending, fields[userModel.FieldVerificationStatus])

				return nil
			})

		err := svc.UploadDocument(ctx, req)

		assert.NoError(t, err)
	})

	t.Run("admins are exempt", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "user-1", Role: constant.RoleAdmin, IsActive: true}, nil)

		err := svc.UploadDocument(ctx, req)

		assert.ErrorContains(t, err, "admin accounts do not require verification")
	})
}
