package mockapi

import (
	"net/http"
	"time"

	"evrental-staff-core/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func (s *Server) handleMyDocuments(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.documents[claimsFrom(r.Context()).Subject]
	if docs == nil {
		docs = []domain.Document{}
	}
	writeOK(w, http.StatusOK, "", docs)
}

func (s *Server) handleUploadDocument(docType domain.DocumentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, codeValidation, "Form không hợp lệ")
			return
		}
		doc := domain.Document{
			ID:           uuid.NewString(),
			Type:         docType,
			IDNumber:     r.FormValue("IdNumber"),
			FullName:     r.FormValue("FullName"),
			DateOfBirth:  r.FormValue("DateOfBirth"),
			IssueDate:    r.FormValue("IssueDate"),
			ExpiryDate:   r.FormValue("ExpiryDate"),
			LicenseClass: r.FormValue("LicenseClass"),
			Status:       domain.DocumentStatusPending,
		}
		front := r.MultipartForm.File["FrontImage"]
		if doc.IDNumber == "" || doc.FullName == "" || len(front) == 0 {
			writeError(w, http.StatusBadRequest, codeValidation, "Thiếu số giấy tờ, họ tên hoặc ảnh mặt trước")
			return
		}
		if docType == domain.DocumentTypeDrivingLicense && doc.LicenseClass == "" {
			writeError(w, http.StatusBadRequest, codeValidation, "Thiếu hạng bằng lái")
			return
		}
		if doc.ExpiryDate != "" {
			if exp, err := time.Parse("2006-01-02", doc.ExpiryDate); err == nil && exp.Before(s.now()) {
				writeError(w, http.StatusBadRequest, codeValidation, "Giấy tờ đã hết hạn")
				return
			}
		}

		prefix := string(docType)
		urls, err := s.saveFiles(r.Context(), prefix+"_front", front[:1])
		if err != nil {
			writeError(w, http.StatusInternalServerError, "", err.Error())
			return
		}
		doc.FrontImageURL = urls[0]
		if back := r.MultipartForm.File["BackImage"]; len(back) > 0 {
			urls, err := s.saveFiles(r.Context(), prefix+"_back", back[:1])
			if err != nil {
				writeError(w, http.StatusInternalServerError, "", err.Error())
				return
			}
			doc.BackImageURL = urls[0]
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		// one document per type; a new upload replaces the old one
		userID := claimsFrom(r.Context()).Subject
		kept := s.documents[userID][:0:0]
		for _, d := range s.documents[userID] {
			if d.Type != docType {
				kept = append(kept, d)
			}
		}
		s.documents[userID] = append(kept, doc)
		writeOK(w, http.StatusCreated, "Đã tải lên giấy tờ", doc)
	}
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["documentId"]

	s.mu.Lock()
	defer s.mu.Unlock()

	userID := claimsFrom(r.Context()).Subject
	docs := s.documents[userID]
	for i, d := range docs {
		if d.ID == id {
			s.documents[userID] = append(docs[:i:i], docs[i+1:]...)
			writeOK(w, http.StatusOK, "Đã xóa giấy tờ", nil)
			return
		}
	}
	writeError(w, http.StatusNotFound, codeNotFound, "Không tìm thấy giấy tờ")
}
