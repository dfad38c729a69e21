package service

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rahul-nakum14/formcraft/internal/model"
	"github.com/rahul-nakum14/formcraft/internal/repository"
	"github.com/rahul-nakum14/formcraft/internal/storage"
	"github.com/rahul-nakum14/formcraft/internal/validation"
)

var (
	ErrFieldNotFound = errors.New("field not found")
)

// UploadService stores file-field uploads for published forms. Submissions
// only ever reference the returned descriptor, never the bytes.
type UploadService struct {
	uploadRepo repository.UploadRepository
	formRepo   repository.FormRepository
	storage    storage.Storage
}

func NewUploadService(uploadRepo repository.UploadRepository, formRepo repository.FormRepository, storage storage.Storage) *UploadService {
	return &UploadService{
		uploadRepo: uploadRepo,
		formRepo:   formRepo,
		storage:    storage,
	}
}

// Upload validates a file against the field's constraints, stores the bytes
// and returns the descriptor the client embeds in its submission payload.
func (s *UploadService) Upload(formID, fieldID string, file multipart.File, header *multipart.FileHeader) (*model.FileValue, error) {
	form, err := s.formRepo.ByIDAny(formID)
	if err != nil {
		return nil, err
	}

	if !form.IsPublished() {
		return nil, ErrFormNotPublished
	}

	var field *model.FieldDefinition
	for i := range form.Fields {
		if form.Fields[i].ID == fieldID && form.Fields[i].Type == model.FieldTypeFile {
			field = &form.Fields[i]
			break
		}
	}
	if field == nil {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, fieldID)
	}

	mimeType := header.Header.Get("Content-Type")
	err = validation.CheckFile(header.Filename, mimeType, header.Size, validation.FileConstraints{
		MaxSize:       field.MaxFileSizeBytes(),
		AcceptedTypes: field.Properties.AcceptedFileTypes,
	})
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(header.Filename)
	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	storagePath := filepath.Join("forms", formID, filename)

	err = s.storage.Save(storagePath, file)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	upload := &model.Upload{
		ID:           uuid.New().String(),
		FormID:       formID,
		FieldID:      fieldID,
		Filename:     filename,
		OriginalName: header.Filename,
		MimeType:     mimeType,
		Size:         header.Size,
		StoragePath:  storagePath,
		CreatedAt:    time.Now(),
	}

	err = s.uploadRepo.Create(upload)
	if err != nil {
		// If DB insert fails, try to cleanup the uploaded file
		delErr := s.storage.Delete(storagePath)
		if delErr != nil {
			slog.Error("failed to delete file from storage during cleanup", "error", delErr, "path", storagePath)
		}
		return nil, fmt.Errorf("failed to create upload record: %w", err)
	}

	return &model.FileValue{
		Name:         header.Filename,
		Size:         header.Size,
		MimeType:     mimeType,
		LastModified: upload.CreatedAt.UnixMilli(),
		URL:          s.storage.URL(storagePath),
	}, nil
}

// DeleteFormUploads removes every stored file of a deleted form, best effort.
func (s *UploadService) DeleteFormUploads(formID string) error {
	uploads, err := s.uploadRepo.ByFormID(formID)
	if err != nil {
		return fmt.Errorf("failed to get form uploads: %w", err)
	}

	for _, upload := range uploads {
		err = s.storage.Delete(upload.StoragePath)
		if err != nil {
			// Log but continue - physical file may already be gone
			slog.Warn("failed to delete file from storage", "storage_path", upload.StoragePath, "error", err)
		}
	}

	return nil
}
