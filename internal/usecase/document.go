package usecase

import (
	"context"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/repository"
	"evrental-staff-core/internal/validation"
)

type documentUseCase struct {
	repo repository.DocumentRepository
}

func NewDocumentUseCase(repo repository.DocumentRepository) DocumentUseCase {
	return &documentUseCase{repo: repo}
}

func (u *documentUseCase) ListMine(ctx context.Context) ([]domain.Document, error) {
	docs, err := domain.Reply(u.repo.ListMine(ctx))
	if err != nil {
		return nil, err
	}
	return *docs, nil
}

func (u *documentUseCase) UploadCitizenID(ctx context.Context, in repository.DocumentInput) (*domain.Document, error) {
	if err := validation.CitizenID(documentFields(in)).Err(); err != nil {
		return nil, err
	}
	return domain.Reply(u.repo.UploadCitizenID(ctx, in))
}

func (u *documentUseCase) UploadDrivingLicense(ctx context.Context, in repository.DocumentInput) (*domain.Document, error) {
	if err := validation.DrivingLicense(documentFields(in)).Err(); err != nil {
		return nil, err
	}
	return domain.Reply(u.repo.UploadDrivingLicense(ctx, in))
}

func (u *documentUseCase) Delete(ctx context.Context, documentID string) error {
	_, err := domain.Reply(u.repo.Delete(ctx, documentID))
	return err
}

func documentFields(in repository.DocumentInput) validation.DocumentFields {
	return validation.DocumentFields{
		IDNumber:     in.IDNumber,
		DateOfBirth:  in.DateOfBirth,
		IssueDate:    in.IssueDate,
		ExpiryDate:   in.ExpiryDate,
		LicenseClass: in.LicenseClass,
	}
}
