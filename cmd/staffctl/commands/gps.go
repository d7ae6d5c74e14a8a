package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"evrental-staff-core/internal/container"
	"evrental-staff-core/internal/gps"

	"github.com/spf13/cobra"
)

var gpsCmd = &cobra.Command{
	Use:   "gps",
	Short: "Share and follow vehicle GPS between two bookings",
}

var gpsInviteCmd = &cobra.Command{
	Use:   "invite <bookingId>",
	Short: "Create a sharing session and print its invitation code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(func(c *container.Container) error {
			s, err := c.GpsSharing().Invite(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Session %s, invitation code %s (valid until %s)\n",
				s.SessionID, s.InvitationCode, s.InvitationExpiresAt.Local().Format("15:04"))
			return nil
		})
	},
}

var gpsJoinCmd = &cobra.Command{
	Use:   "join <invitationCode> <bookingId>",
	Short: "Join a sharing session with another booking",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(func(c *container.Container) error {
			s, err := c.GpsSharing().Join(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(s)
		})
	},
}

// gpsTrackCmd prints telemetry frames of both participants until interrupted
// or the session ends.
var gpsTrackCmd = &cobra.Command{
	Use:   "track <sessionId>",
	Short: "Follow the vehicles of a sharing session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return withContainer(func(c *container.Container) error {
			session, err := c.GpsSharing().Get(ctx, args[0])
			if err != nil {
				return err
			}

			out := make(chan gps.Update)
			done := make(chan error, 1)
			go func() { done <- c.Tracker(session.SessionID).Run(ctx, session, out) }()

			for {
				select {
				case u := <-out:
					f := u.Frame
					fmt.Printf("%s  %-5s %-12s %.5f,%.5f  %3.0f km/h  %3.0f%%\n",
						f.Timestamp.Local().Format("15:04:05"), u.Role, f.DeviceID, f.Latitude, f.Longitude, f.SpeedKmh, f.BatteryPercentage)
				case err := <-done:
					if errors.Is(err, gps.ErrSessionExpired) {
						fmt.Println("Sharing session ended")
						return nil
					}
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return err
				}
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(gpsCmd)
	gpsCmd.AddCommand(gpsInviteCmd, gpsJoinCmd, gpsTrackCmd)
}
