package datasource

import (
	"context"
	"net/http"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/transport"
)

const authService = "auth"

type AuthDataSource struct {
	client Doer
}

func NewAuthDataSource(client Doer) *AuthDataSource {
	return &AuthDataSource{client: client}
}

func (d *AuthDataSource) Login(ctx context.Context, req domain.LoginRequest) (*domain.APIResponse[domain.LoginResult], error) {
	return call[domain.LoginResult](authService, "login", func() (*transport.Response, error) {
		return d.client.DoJSON(ctx, http.MethodPost, PathLogin, req)
	}, "username", req.Username)
}

func (d *AuthDataSource) GoogleLogin(ctx context.Context, req domain.GoogleLoginRequest) (*domain.APIResponse[domain.LoginResult], error) {
	return call[domain.LoginResult](authService, "googleLogin", func() (*transport.Response, error) {
		return d.client.DoJSON(ctx, http.MethodPost, PathGoogleLogin, req)
	})
}

func (d *AuthDataSource) VerifyOtp(ctx context.Context, req domain.VerifyOtpRequest) (*domain.APIResponse[domain.LoginResult], error) {
	return call[domain.LoginResult](authService, "verifyOtp", func() (*transport.Response, error) {
		return d.client.DoJSON(ctx, http.MethodPost, PathVerifyOtp, req)
	}, "email", req.Email)
}

func (d *AuthDataSource) ResendOtp(ctx context.Context, req domain.ResendOtpRequest) (*domain.APIResponse[domain.Empty], error) {
	return call[domain.Empty](authService, "resendOtp", func() (*transport.Response, error) {
		return d.client.DoJSON(ctx, http.MethodPost, PathResendOtp, req)
	}, "email", req.Email)
}

func (d *AuthDataSource) GetProfile(ctx context.Context) (*domain.APIResponse[domain.User], error) {
	return call[domain.User](authService, "getProfile", func() (*transport.Response, error) {
		return d.client.DoJSON(ctx, http.MethodGet, PathProfile, nil)
	})
}

func (d *AuthDataSource) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (*domain.APIResponse[domain.User], error) {
	return call[domain.User](authService, "updateProfile", func() (*transport.Response, error) {
		return d.client.DoJSON(ctx, http.MethodPut, PathProfile, req)
	})
}
