package remote

import (
	"context"

	"evrental-staff-core/internal/datasource"
	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/repository"
)

type authRepository struct {
	ds *datasource.AuthDataSource
}

func NewAuthRepository(ds *datasource.AuthDataSource) repository.AuthRepository {
	return &authRepository{ds: ds}
}

func (r *authRepository) Login(ctx context.Context, username, password string) (*domain.APIResponse[domain.LoginResult], error) {
	return r.ds.Login(ctx, domain.LoginRequest{Username: username, Password: password})
}

func (r *authRepository) GoogleLogin(ctx context.Context, idToken string) (*domain.APIResponse[domain.LoginResult], error) {
	return r.ds.GoogleLogin(ctx, domain.GoogleLoginRequest{IDToken: idToken})
}

func (r *authRepository) VerifyOtp(ctx context.Context, email, otp string) (*domain.APIResponse[domain.LoginResult], error) {
	return r.ds.VerifyOtp(ctx, domain.VerifyOtpRequest{Email: email, Otp: otp})
}

func (r *authRepository) ResendOtp(ctx context.Context, email string) (*domain.APIResponse[domain.Empty], error) {
	return r.ds.ResendOtp(ctx, domain.ResendOtpRequest{Email: email})
}

func (r *authRepository) GetProfile(ctx context.Context) (*domain.APIResponse[domain.User], error) {
	return r.ds.GetProfile(ctx)
}

func (r *authRepository) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (*domain.APIResponse[domain.User], error) {
	return r.ds.UpdateProfile(ctx, req)
}
