package commands

import (
	"fmt"

	"evrental-staff-core/internal/container"
	"evrental-staff-core/internal/usecase"
	"evrental-staff-core/internal/workflow"

	"github.com/spf13/cobra"
)

var chargingCmd = &cobra.Command{
	Use:   "charging",
	Short: "Record charging sessions during a rental",
}

// chargingKwhCmd only computes; it makes no network call.
var chargingKwhCmd = &cobra.Command{
	Use:   "kwh",
	Short: "Compute the energy charged from two battery percentages",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, _ := cmd.Flags().GetFloat64("start")
		end, _ := cmd.Flags().GetFloat64("end")
		capacity, _ := cmd.Flags().GetFloat64("capacity")

		calc := workflow.NewChargingCalculator(capacity)
		calc.SetStart(start)
		fmt.Printf("%.2f kWh\n", calc.SetEnd(end))
		return nil
	},
}

var chargingStartCmd = &cobra.Command{
	Use:   "start <bookingId>",
	Short: "Start a charging session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		battery, _ := cmd.Flags().GetFloat64("battery")
		return withContainer(func(c *container.Container) error {
			rec, err := c.Charging().Start(cmd.Context(), args[0], battery)
			if err != nil {
				return err
			}
			fmt.Printf("Charging session %s started at %.0f%%\n", rec.ID, rec.StartBattery)
			return nil
		})
	},
}

var chargingCompleteCmd = &cobra.Command{
	Use:   "complete <chargingId>",
	Short: "Complete a charging session",
	Long: `Complete a charging session. The energy charged is computed from the
battery percentages and the configured capacity unless --kwh is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, _ := cmd.Flags().GetFloat64("start")
		end, _ := cmd.Flags().GetFloat64("end")

		return withContainer(func(c *container.Container) error {
			calc := c.ChargingCalculator()
			calc.SetStart(start)
			calc.SetEnd(end)
			if cmd.Flags().Changed("kwh") {
				kwh, _ := cmd.Flags().GetFloat64("kwh")
				calc.SetKwh(kwh)
			}

			rec, err := c.Charging().Complete(cmd.Context(), usecase.CompleteChargingInput{
				ChargingID:   args[0],
				StartBattery: start,
				EndBattery:   end,
				KwhCharged:   calc.Kwh(),
			})
			if err != nil {
				return err
			}
			return printJSON(rec)
		})
	},
}

var chargingHistoryCmd = &cobra.Command{
	Use:   "history <bookingId>",
	Short: "List charging sessions of a booking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(func(c *container.Container) error {
			records, err := c.Charging().History(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(records)
		})
	},
}

func init() {
	rootCmd.AddCommand(chargingCmd)
	chargingCmd.AddCommand(chargingKwhCmd, chargingStartCmd, chargingCompleteCmd, chargingHistoryCmd)

	chargingKwhCmd.Flags().Float64("start", 0, "Battery percentage before charging")
	chargingKwhCmd.Flags().Float64("end", 0, "Battery percentage after charging")
	chargingKwhCmd.Flags().Float64("capacity", workflow.DefaultBatteryCapacityKwh, "Battery capacity in kWh")

	chargingStartCmd.Flags().Float64("battery", 0, "Battery percentage at the start")
	chargingStartCmd.MarkFlagRequired("battery")

	chargingCompleteCmd.Flags().Float64("start", 0, "Battery percentage at the start")
	chargingCompleteCmd.Flags().Float64("end", 0, "Battery percentage at the end")
	chargingCompleteCmd.Flags().Float64("kwh", 0, "Energy charged, overrides the computed value")
	chargingCompleteCmd.MarkFlagRequired("start")
	chargingCompleteCmd.MarkFlagRequired("end")
}
