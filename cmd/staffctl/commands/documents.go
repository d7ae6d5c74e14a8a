package commands

import (
	"fmt"

	"evrental-staff-core/internal/container"
	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/repository"

	"github.com/spf13/cobra"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Manage identity documents of the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(func(c *container.Container) error {
			docs, err := c.Document().ListMine(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(docs)
		})
	},
}

var documentsUploadCmd = &cobra.Command{
	Use:   "upload <citizen_id|driving_license>",
	Short: "Upload a citizen id or driving license",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in repository.DocumentInput
		in.IDNumber, _ = cmd.Flags().GetString("id-number")
		in.FullName, _ = cmd.Flags().GetString("full-name")
		in.DateOfBirth, _ = cmd.Flags().GetString("dob")
		in.IssueDate, _ = cmd.Flags().GetString("issued")
		in.ExpiryDate, _ = cmd.Flags().GetString("expires")
		in.LicenseClass, _ = cmd.Flags().GetString("class")
		in.FrontImagePath, _ = cmd.Flags().GetString("front")
		in.BackImagePath, _ = cmd.Flags().GetString("back")

		return withContainer(func(c *container.Container) error {
			var doc *domain.Document
			var err error
			switch domain.DocumentType(args[0]) {
			case domain.DocumentTypeCitizenID:
				doc, err = c.Document().UploadCitizenID(cmd.Context(), in)
			case domain.DocumentTypeDrivingLicense:
				doc, err = c.Document().UploadDrivingLicense(cmd.Context(), in)
			default:
				return fmt.Errorf("unknown document type %q", args[0])
			}
			if err != nil {
				return err
			}
			return printJSON(doc)
		})
	},
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete <documentId>",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(func(c *container.Container) error {
			return c.Document().Delete(cmd.Context(), args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(documentsCmd)
	documentsCmd.AddCommand(documentsUploadCmd, documentsDeleteCmd)

	f := documentsUploadCmd.Flags()
	f.String("id-number", "", "Document number")
	f.String("full-name", "", "Full name as printed")
	f.String("dob", "", "Date of birth (yyyy-mm-dd)")
	f.String("issued", "", "Issue date (yyyy-mm-dd)")
	f.String("expires", "", "Expiry date (yyyy-mm-dd)")
	f.String("class", "", "Driving license class")
	f.String("front", "", "Front side image")
	f.String("back", "", "Back side image")
	documentsUploadCmd.MarkFlagRequired("front")
}
