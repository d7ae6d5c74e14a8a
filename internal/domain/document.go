package domain

type DocumentType string

const (
	DocumentTypeCitizenID      DocumentType = "citizen_id"
	DocumentTypeDrivingLicense DocumentType = "driving_license"
)

type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "PENDING"
	DocumentStatusVerified DocumentStatus = "VERIFIED"
	DocumentStatusRejected DocumentStatus = "REJECTED"
)

type Document struct {
	ID            string         `json:"id"`
	Type          DocumentType   `json:"type"`
	IDNumber      string         `json:"idNumber"`
	FullName      string         `json:"fullName"`
	DateOfBirth   string         `json:"dateOfBirth,omitempty"`
	IssueDate     string         `json:"issueDate,omitempty"`
	ExpiryDate    string         `json:"expiryDate,omitempty"`
	LicenseClass  string         `json:"licenseClass,omitempty"`
	FrontImageURL string         `json:"frontImageUrl,omitempty"`
	BackImageURL  string         `json:"backImageUrl,omitempty"`
	Status        DocumentStatus `json:"status"`
}

// DocumentUpload is the multipart upload shape for both document types.
// Dates are yyyy-mm-dd.
type DocumentUpload struct {
	Type         DocumentType
	IDNumber     string
	FullName     string
	DateOfBirth  string
	IssueDate    string
	ExpiryDate   string
	LicenseClass string
	FrontImage   FilePart
	BackImage    *FilePart
}
