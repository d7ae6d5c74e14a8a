package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"evrental-staff-core/internal/container"
	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/notify"
	"evrental-staff-core/internal/workflow"

	"github.com/spf13/cobra"
)

// returnCmd groups the vehicle return steps
var returnCmd = &cobra.Command{
	Use:   "return",
	Short: "Walk a vehicle return from photos to the final receipt",
	Long: `Each subcommand runs one step of a return draft:

  start     open (or resume) the draft for a booking
  photos    upload the return photos for AI verification
  inspect   record odometer, battery and the signed checklist
  fees      add additional fees and create the receipt
  summary   load the settlement summary
  finalize  close the return once the renter has confirmed
  swap      swap the vehicle against the current receipt
  update    edit the receipt and reload the settlement
  abandon   delete the draft
  show      print one draft, or list all of them`,
}

var returnStartCmd = &cobra.Command{
	Use:   "start <bookingId>",
	Short: "Open or resume the return draft for a booking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		receiptID, _ := cmd.Flags().GetString("receipt")
		return withWorkflow(cmd.Context(), func(w *workflow.ReturnWorkflow) error {
			draft, err := w.Start(cmd.Context(), args[0], receiptID)
			if err != nil {
				return err
			}
			fmt.Printf("Draft %s at step %s\n", draft.ID, draft.Step)
			return nil
		})
	},
}

var returnPhotosCmd = &cobra.Command{
	Use:   "photos <draftId> <image>...",
	Short: "Upload return photos for verification and damage analysis",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkflow(cmd.Context(), func(w *workflow.ReturnWorkflow) error {
			draft, err := w.CapturePhotos(cmd.Context(), args[0], args[1:])
			if err != nil {
				return err
			}
			return printJSON(draft.Analysis)
		})
	},
}

var returnInspectCmd = &cobra.Command{
	Use:   "inspect <draftId>",
	Short: "Record the manual inspection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := inspectionFlags(cmd)
		return withWorkflow(cmd.Context(), func(w *workflow.ReturnWorkflow) error {
			draft, err := w.SubmitInspection(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			fmt.Printf("Draft %s at step %s\n", draft.ID, draft.Step)
			return nil
		})
	},
}

var returnFeesCmd = &cobra.Command{
	Use:     "fees <draftId>",
	Short:   "Add additional fees and create the return receipt",
	Example: `  staffctl return fees 3f2a... --fee cleaning:150000 --fee "damage:300000:Xước cản sau"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fees, err := feeFlags(cmd)
		if err != nil {
			return err
		}
		return withWorkflow(cmd.Context(), func(w *workflow.ReturnWorkflow) error {
			draft, err := w.SubmitAdditionalFees(cmd.Context(), args[0], fees)
			if err != nil {
				return err
			}
			fmt.Printf("Receipt %s created\n", draft.ReceiptID)
			return printSettlement(draft.Receipt.Settlement)
		})
	},
}

var returnSummaryCmd = &cobra.Command{
	Use:   "summary <draftId>",
	Short: "Load the settlement summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkflow(cmd.Context(), func(w *workflow.ReturnWorkflow) error {
			draft, err := w.LoadSummary(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			s := draft.Summary
			fmt.Printf("%s  %s (%s)\n", s.BookingID, s.VehicleName, s.LicensePlate)
			fmt.Printf("Renter: %s <%s>\n", s.RenterName, s.RenterEmail)
			fmt.Printf("Odometer: %.0f -> %.0f km, battery: %.0f%% -> %.0f%%\n", s.StartOdometer, s.EndOdometer, s.StartBattery, s.EndBattery)
			return printSettlement(s.Settlement)
		})
	},
}

var returnFinalizeCmd = &cobra.Command{
	Use:   "finalize <draftId>",
	Short: "Close the return",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		confirmed, _ := cmd.Flags().GetBool("confirmed")
		return withWorkflow(cmd.Context(), func(w *workflow.ReturnWorkflow) error {
			draft, err := w.Finalize(cmd.Context(), args[0], confirmed)
			if err != nil {
				return err
			}
			return printJSON(draft.Finalized)
		})
	},
}

var returnSwapCmd = &cobra.Command{
	Use:   "swap <draftId>",
	Short: "Swap the vehicle and reload the settlement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		edit, err := receiptEdit(cmd)
		if err != nil {
			return err
		}
		return withWorkflow(cmd.Context(), func(w *workflow.ReturnWorkflow) error {
			draft, err := w.SwapVehicle(cmd.Context(), args[0], edit)
			if err != nil {
				return err
			}
			fmt.Printf("Now on booking %s, vehicle %s\n", draft.BookingID, draft.Summary.VehicleName)
			return printSettlement(draft.Summary.Settlement)
		})
	},
}

var returnUpdateCmd = &cobra.Command{
	Use:   "update <draftId>",
	Short: "Edit the receipt and reload the settlement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		edit, err := receiptEdit(cmd)
		if err != nil {
			return err
		}
		return withWorkflow(cmd.Context(), func(w *workflow.ReturnWorkflow) error {
			draft, err := w.UpdateReceipt(cmd.Context(), args[0], edit)
			if err != nil {
				return err
			}
			return printSettlement(draft.Summary.Settlement)
		})
	},
}

var returnAbandonCmd = &cobra.Command{
	Use:   "abandon <draftId>",
	Short: "Delete a return draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkflow(cmd.Context(), func(w *workflow.ReturnWorkflow) error {
			return w.Abandon(cmd.Context(), args[0])
		})
	},
}

var returnShowCmd = &cobra.Command{
	Use:   "show [draftId]",
	Short: "Print a draft, or list every draft",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkflow(cmd.Context(), func(w *workflow.ReturnWorkflow) error {
			if len(args) == 1 {
				draft, err := w.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(draft)
			}
			drafts, err := w.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, d := range drafts {
				fmt.Printf("%s  %-10s %-18s %s\n", d.ID, d.BookingID, d.Step, d.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(returnCmd)
	returnCmd.AddCommand(returnStartCmd, returnPhotosCmd, returnInspectCmd, returnFeesCmd, returnSummaryCmd,
		returnFinalizeCmd, returnSwapCmd, returnUpdateCmd, returnAbandonCmd, returnShowCmd)

	returnStartCmd.Flags().String("receipt", "", "Existing rental receipt id")

	for _, c := range []*cobra.Command{returnInspectCmd, returnSwapCmd, returnUpdateCmd} {
		c.Flags().String("odometer", "", "End odometer in km")
		c.Flags().String("battery", "", "End battery percentage")
		c.Flags().String("checklist", "", "Photo of the signed checklist")
		c.Flags().String("notes", "", "Inspection notes")
	}
	returnInspectCmd.MarkFlagRequired("odometer")
	returnInspectCmd.MarkFlagRequired("battery")

	for _, c := range []*cobra.Command{returnFeesCmd, returnSwapCmd, returnUpdateCmd} {
		c.Flags().StringArray("fee", nil, "Additional fee as type:amount[:description], repeatable")
	}
	returnUpdateCmd.Flags().Bool("clear-fees", false, "Remove every additional fee")

	returnFinalizeCmd.Flags().Bool("confirmed", false, "The renter has confirmed the receipt")
}

func withWorkflow(ctx context.Context, fn func(w *workflow.ReturnWorkflow) error) error {
	return withContainer(func(c *container.Container) error {
		w, err := c.Workflow(ctx)
		if err != nil {
			return err
		}
		return fn(w)
	})
}

func inspectionFlags(cmd *cobra.Command) workflow.InspectionInput {
	var in workflow.InspectionInput
	in.EndOdometerKm, _ = cmd.Flags().GetString("odometer")
	in.EndBatteryPercentage, _ = cmd.Flags().GetString("battery")
	in.ChecklistImagePath, _ = cmd.Flags().GetString("checklist")
	in.Notes, _ = cmd.Flags().GetString("notes")
	return in
}

// receiptEdit builds an edit from the flags that were actually set; unset
// flags keep the draft's values.
func receiptEdit(cmd *cobra.Command) (workflow.ReceiptEdit, error) {
	var edit workflow.ReceiptEdit
	if cmd.Flags().Changed("odometer") || cmd.Flags().Changed("battery") {
		in := inspectionFlags(cmd)
		edit.Inspection = &in
	}
	if cmd.Flags().Changed("fee") {
		fees, err := feeFlags(cmd)
		if err != nil {
			return edit, err
		}
		edit.AdditionalFees = fees
	}
	if clearFees, _ := cmd.Flags().GetBool("clear-fees"); clearFees {
		edit.AdditionalFees = []domain.AdditionalFee{}
	}
	return edit, nil
}

func feeFlags(cmd *cobra.Command) ([]domain.AdditionalFee, error) {
	raw, _ := cmd.Flags().GetStringArray("fee")
	fees := make([]domain.AdditionalFee, 0, len(raw))
	for _, r := range raw {
		fee, err := parseFee(r)
		if err != nil {
			return nil, err
		}
		fees = append(fees, fee)
	}
	return fees, nil
}

// parseFee reads "type:amount[:description]". Amounts may use "." or ","
// as thousands separators.
func parseFee(s string) (domain.AdditionalFee, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 {
		return domain.AdditionalFee{}, fmt.Errorf("fee %q: want type:amount[:description]", s)
	}
	amount, err := strconv.ParseInt(strings.NewReplacer(".", "", ",", "", " ", "").Replace(parts[1]), 10, 64)
	if err != nil {
		return domain.AdditionalFee{}, fmt.Errorf("fee %q: invalid amount", s)
	}
	fee := domain.AdditionalFee{FeeType: domain.FeeType(strings.TrimSpace(parts[0])), Amount: amount}
	if len(parts) == 3 {
		fee.Description = strings.TrimSpace(parts[2])
	}
	return fee, nil
}

func printSettlement(s domain.Settlement) error {
	fmt.Printf("Base rental fee:   %s\n", notify.FormatVND(s.BaseRentalFee))
	fmt.Printf("Charging:          %s\n", notify.FormatVND(s.TotalChargingFee))
	fmt.Printf("Additional fees:   %s\n", notify.FormatVND(s.TotalAdditionalFees))
	fmt.Printf("Total:             %s\n", notify.FormatVND(s.TotalAmount))
	fmt.Printf("Deposit:           %s\n", notify.FormatVND(s.DepositAmount))
	if owed := s.AmountOwed(); owed > 0 {
		fmt.Printf("Renter owes:       %s\n", notify.FormatVND(owed))
	} else {
		fmt.Printf("Refund:            %s\n", notify.FormatVND(s.RefundAmount))
	}
	return nil
}
