package usecase

import (
	"context"
	"strings"

	"evrental-staff-core/internal/apperror"
	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/logger"
	"evrental-staff-core/internal/repository"
	"evrental-staff-core/internal/validation"
)

type loginUseCase struct {
	repo repository.AuthRepository
}

func NewLoginUseCase(repo repository.AuthRepository) LoginUseCase {
	return &loginUseCase{repo: repo}
}

// Execute validates the credentials and logs in. The repository receives the
// username and password exactly as given.
func (u *loginUseCase) Execute(ctx context.Context, in LoginInput) (*domain.LoginResult, error) {
	logger.EnterMethod("loginUseCase.Execute", "username", strings.TrimSpace(in.Username))

	if err := validation.Login(in.Username, in.Password).Err(); err != nil {
		logger.ExitMethodWithError("loginUseCase.Execute", err)
		return nil, err
	}

	res, err := domain.Reply(u.repo.Login(ctx, in.Username, in.Password))
	if err != nil {
		err = asUnverified(strings.TrimSpace(in.Username), err)
		logger.ExitMethodWithError("loginUseCase.Execute", err, "kind", apperror.ClassifyAuthError(err))
		return nil, err
	}

	logger.ExitMethod("loginUseCase.Execute", "userID", res.User.ID)
	return res, nil
}

type googleLoginUseCase struct {
	repo repository.AuthRepository
}

func NewGoogleLoginUseCase(repo repository.AuthRepository) GoogleLoginUseCase {
	return &googleLoginUseCase{repo: repo}
}

func (u *googleLoginUseCase) Execute(ctx context.Context, idToken string) (*domain.LoginResult, error) {
	logger.EnterMethod("googleLoginUseCase.Execute")

	if err := validation.GoogleIDToken(idToken).Err(); err != nil {
		logger.ExitMethodWithError("googleLoginUseCase.Execute", err)
		return nil, err
	}

	res, err := domain.Reply(u.repo.GoogleLogin(ctx, idToken))
	if err != nil {
		err = asUnverified("", err)
		logger.ExitMethodWithError("googleLoginUseCase.Execute", err)
		return nil, err
	}

	logger.ExitMethod("googleLoginUseCase.Execute", "userID", res.User.ID)
	return res, nil
}

// asUnverified wraps err when the server says the account still needs email
// verification, so the caller can move to the OTP step.
func asUnverified(username string, err error) error {
	if apperror.ClassifyAuthError(err) == apperror.AuthErrorUnverified {
		return &apperror.UnverifiedAccountError{Username: username, Err: err}
	}
	return err
}

type verifyOtpUseCase struct {
	repo repository.AuthRepository
}

func NewVerifyOtpUseCase(repo repository.AuthRepository) VerifyOtpUseCase {
	return &verifyOtpUseCase{repo: repo}
}

func (u *verifyOtpUseCase) Execute(ctx context.Context, email, otp string) (*domain.LoginResult, error) {
	return domain.Reply(u.repo.VerifyOtp(ctx, email, otp))
}

type resendOtpUseCase struct {
	repo repository.AuthRepository
}

func NewResendOtpUseCase(repo repository.AuthRepository) ResendOtpUseCase {
	return &resendOtpUseCase{repo: repo}
}

func (u *resendOtpUseCase) Execute(ctx context.Context, email string) error {
	_, err := domain.Reply(u.repo.ResendOtp(ctx, email))
	return err
}

type getProfileUseCase struct {
	repo repository.AuthRepository
}

func NewGetProfileUseCase(repo repository.AuthRepository) GetProfileUseCase {
	return &getProfileUseCase{repo: repo}
}

func (u *getProfileUseCase) Execute(ctx context.Context) (*domain.User, error) {
	return domain.Reply(u.repo.GetProfile(ctx))
}

type updateProfileUseCase struct {
	repo repository.AuthRepository
}

func NewUpdateProfileUseCase(repo repository.AuthRepository) UpdateProfileUseCase {
	return &updateProfileUseCase{repo: repo}
}

func (u *updateProfileUseCase) Execute(ctx context.Context, req domain.UpdateProfileRequest) (*domain.User, error) {
	return domain.Reply(u.repo.UpdateProfile(ctx, req))
}
