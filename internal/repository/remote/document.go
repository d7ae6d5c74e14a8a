package remote

import (
	"context"

	"evrental-staff-core/internal/datasource"
	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/repository"
)

type documentRepository struct {
	ds    *datasource.DocumentDataSource
	clock Clock
}

func NewDocumentRepository(ds *datasource.DocumentDataSource, clock Clock) repository.DocumentRepository {
	return &documentRepository{ds: ds, clock: clock}
}

func (r *documentRepository) ListMine(ctx context.Context) (*domain.APIResponse[[]domain.Document], error) {
	return r.ds.ListMine(ctx)
}

func (r *documentRepository) UploadCitizenID(ctx context.Context, in repository.DocumentInput) (*domain.APIResponse[domain.Document], error) {
	return r.ds.Upload(ctx, r.upload(domain.DocumentTypeCitizenID, "citizen", in))
}

func (r *documentRepository) UploadDrivingLicense(ctx context.Context, in repository.DocumentInput) (*domain.APIResponse[domain.Document], error) {
	return r.ds.Upload(ctx, r.upload(domain.DocumentTypeDrivingLicense, "license", in))
}

func (r *documentRepository) Delete(ctx context.Context, documentID string) (*domain.APIResponse[domain.Empty], error) {
	return r.ds.Delete(ctx, documentID)
}

func (r *documentRepository) upload(typ domain.DocumentType, prefix string, in repository.DocumentInput) domain.DocumentUpload {
	up := domain.DocumentUpload{
		Type:         typ,
		IDNumber:     in.IDNumber,
		FullName:     in.FullName,
		DateOfBirth:  in.DateOfBirth,
		IssueDate:    in.IssueDate,
		ExpiryDate:   in.ExpiryDate,
		LicenseClass: in.LicenseClass,
		BackImage:    namedPart(r.clock, prefix+"_back", "BackImage", in.BackImagePath),
	}
	if front := namedPart(r.clock, prefix+"_front", "FrontImage", in.FrontImagePath); front != nil {
		up.FrontImage = *front
	}
	return up
}
