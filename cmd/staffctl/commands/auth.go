package commands

import (
	"context"
	"errors"
	"fmt"

	"evrental-staff-core/internal/apperror"
	"evrental-staff-core/internal/container"
	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/usecase"

	"github.com/spf13/cobra"
)

// loginCmd signs in with username and password
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with username and password",
	Long: `Sign in as a staff member. On success the session is saved and used by
every other command. An unverified account prints the email to pass to
"verify-otp".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		return withContainer(func(c *container.Container) error {
			res, err := c.Auth().Login.Execute(cmd.Context(), usecase.LoginInput{Username: username, Password: password})
			return finishLogin(c, res, err)
		})
	},
}

var googleLoginCmd = &cobra.Command{
	Use:   "google-login",
	Short: "Sign in with a Google ID token",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, _ := cmd.Flags().GetString("id-token")
		return withContainer(func(c *container.Container) error {
			res, err := c.Auth().GoogleLogin.Execute(cmd.Context(), token)
			return finishLogin(c, res, err)
		})
	},
}

var verifyOtpCmd = &cobra.Command{
	Use:   "verify-otp",
	Short: "Verify an account email with the one-time code and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		otp, _ := cmd.Flags().GetString("otp")
		return withContainer(func(c *container.Container) error {
			res, err := c.Auth().VerifyOtp.Execute(cmd.Context(), email, otp)
			return finishLogin(c, res, err)
		})
	},
}

var resendOtpCmd = &cobra.Command{
	Use:   "resend-otp",
	Short: "Send a new one-time code to the account email",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		return withContainer(func(c *container.Container) error {
			if err := c.Auth().ResendOtp.Execute(cmd.Context(), email); err != nil {
				return err
			}
			fmt.Printf("A new code was sent to %s\n", email)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return clearSession(sessionFile)
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update the signed-in staff profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req domain.UpdateProfileRequest
		req.FullName, _ = cmd.Flags().GetString("full-name")
		req.Phone, _ = cmd.Flags().GetString("phone")
		req.AvatarURL, _ = cmd.Flags().GetString("avatar-url")

		return withContainer(func(c *container.Container) error {
			user, err := profile(cmd.Context(), c, req)
			if err != nil {
				return err
			}
			c.Session.UpdateUser(*user)
			if err := saveSession(sessionFile, c.Session); err != nil {
				return err
			}
			return printJSON(user)
		})
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, googleLoginCmd, verifyOtpCmd, resendOtpCmd, logoutCmd, profileCmd)

	loginCmd.Flags().StringP("username", "u", "", "Staff username")
	loginCmd.Flags().StringP("password", "p", "", "Password")
	loginCmd.MarkFlagRequired("username")
	loginCmd.MarkFlagRequired("password")

	googleLoginCmd.Flags().String("id-token", "", "Google ID token")
	googleLoginCmd.MarkFlagRequired("id-token")

	verifyOtpCmd.Flags().String("email", "", "Account email")
	verifyOtpCmd.Flags().String("otp", "", "One-time code")
	verifyOtpCmd.MarkFlagRequired("email")
	verifyOtpCmd.MarkFlagRequired("otp")

	resendOtpCmd.Flags().String("email", "", "Account email")
	resendOtpCmd.MarkFlagRequired("email")

	profileCmd.Flags().String("full-name", "", "New full name")
	profileCmd.Flags().String("phone", "", "New phone number")
	profileCmd.Flags().String("avatar-url", "", "New avatar URL")
}

func profile(ctx context.Context, c *container.Container, req domain.UpdateProfileRequest) (*domain.User, error) {
	if req == (domain.UpdateProfileRequest{}) {
		return c.Auth().GetProfile.Execute(ctx)
	}
	return c.Auth().UpdateProfile.Execute(ctx, req)
}

func finishLogin(c *container.Container, res *domain.LoginResult, err error) error {
	var ue *apperror.UnverifiedAccountError
	if errors.As(err, &ue) {
		fmt.Println("This account has not been verified yet.")
		fmt.Println(`Check your email and run "staffctl verify-otp --email <email> --otp <code>".`)
		return err
	}
	if err != nil {
		return err
	}
	c.Session.AddAuth(res.AuthTokens, res.User)
	if err := saveSession(sessionFile, c.Session); err != nil {
		return err
	}
	fmt.Printf("Signed in as %s (%s)\n", res.User.FullName, res.User.Username)
	return nil
}
