package commands

import (
	"fmt"

	"evrental-staff-core/internal/container"
	"evrental-staff-core/internal/domain"

	"github.com/spf13/cobra"
)

// feesCmd manages fees on a booking outside of a return draft
var feesCmd = &cobra.Command{
	Use:   "fees <bookingId>",
	Short: "List the additional fees of a booking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(func(c *container.Container) error {
			fees, err := c.AdditionalFee().List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, f := range fees {
				fmt.Printf("%s  %-12s %12d  %s\n", f.ID, f.FeeType, f.Amount, f.Description)
			}
			return nil
		})
	},
}

var feesAddCmd = &cobra.Command{
	Use:   "add <bookingId> <type:amount[:description]>",
	Short: "Add a fee to a booking",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fee, err := parseFee(args[1])
		if err != nil {
			return err
		}
		return withContainer(func(c *container.Container) error {
			created, err := c.AdditionalFee().Create(cmd.Context(), domain.CreateAdditionalFeeRequest{
				BookingID:   args[0],
				FeeType:     fee.FeeType,
				Amount:      fee.Amount,
				Description: fee.Description,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Fee %s added\n", created.ID)
			return nil
		})
	},
}

var feesDeleteCmd = &cobra.Command{
	Use:   "delete <feeId>",
	Short: "Delete a fee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(func(c *container.Container) error {
			return c.AdditionalFee().Delete(cmd.Context(), args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(feesCmd)
	feesCmd.AddCommand(feesAddCmd, feesDeleteCmd)
}
