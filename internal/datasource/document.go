package datasource

import (
	"context"
	"fmt"
	"net/http"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/transport"
)

const documentService = "document"

type DocumentDataSource struct {
	client Doer
}

func NewDocumentDataSource(client Doer) *DocumentDataSource {
	return &DocumentDataSource{client: client}
}

func (d *DocumentDataSource) ListMine(ctx context.Context) (*domain.APIResponse[[]domain.Document], error) {
	return call[[]domain.Document](documentService, "listMine", func() (*transport.Response, error) {
		return d.client.DoJSON(ctx, http.MethodGet, PathMyDocuments, nil)
	})
}

func (d *DocumentDataSource) Upload(ctx context.Context, req domain.DocumentUpload) (*domain.APIResponse[domain.Document], error) {
	var path string
	switch req.Type {
	case domain.DocumentTypeCitizenID:
		path = PathCitizenID
	case domain.DocumentTypeDrivingLicense:
		path = PathDrivingLicense
	default:
		return nil, fmt.Errorf("unsupported document type %q", req.Type)
	}

	form := transport.NewForm().
		Field("IdNumber", req.IDNumber).
		Field("FullName", req.FullName).
		Field("DateOfBirth", req.DateOfBirth).
		Field("IssueDate", req.IssueDate).
		Field("ExpiryDate", req.ExpiryDate)
	if req.LicenseClass != "" {
		form.Field("LicenseClass", req.LicenseClass)
	}
	form.File(fieldOr(req.FrontImage.Field, "FrontImage"), req.FrontImage.Path, req.FrontImage.FileName, req.FrontImage.ContentType)
	if req.BackImage != nil {
		form.File(fieldOr(req.BackImage.Field, "BackImage"), req.BackImage.Path, req.BackImage.FileName, req.BackImage.ContentType)
	}

	return call[domain.Document](documentService, "upload", func() (*transport.Response, error) {
		return d.client.DoMultipart(ctx, http.MethodPost, path, form)
	}, "type", req.Type)
}

func (d *DocumentDataSource) Delete(ctx context.Context, documentID string) (*domain.APIResponse[domain.Empty], error) {
	if err := requireID("documentId", documentID); err != nil {
		return nil, err
	}
	return call[domain.Empty](documentService, "delete", func() (*transport.Response, error) {
		return d.client.DoJSON(ctx, http.MethodDelete, DocumentPath(documentID), nil)
	}, "document_id", documentID)
}
