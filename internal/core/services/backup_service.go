package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anujbalmiki/pennywise/internal/apperrors"
	"github.com/anujbalmiki/pennywise/internal/core/domain"
	"github.com/anujbalmiki/pennywise/internal/core/ports"
	portssvc "github.com/anujbalmiki/pennywise/internal/core/ports/services"
	"github.com/anujbalmiki/pennywise/internal/dto"
	"github.com/anujbalmiki/pennywise/internal/middleware"
)

// supportedBackupTypes lists the statement formats the bulk importer accepts.
var supportedBackupTypes = map[string]struct{}{
	"csv":  {},
	"xml":  {},
	"txt":  {},
	"json": {},
	"pdf":  {},
}

type backupService struct {
	classifier ports.TransactionClassifier
	txnCreator portssvc.TransactionCreatorSvc
}

// NewBackupService creates the statement-file bulk importer.
func NewBackupService(classifier ports.TransactionClassifier, txnCreator portssvc.TransactionCreatorSvc) portssvc.BackupSvcFacade {
	return &backupService{classifier: classifier, txnCreator: txnCreator}
}

func (s *backupService) ValidateBackupFile(req dto.BackupUploadRequest) (*dto.BackupValidateResponse, error) {
	fileType := strings.ToLower(strings.TrimSpace(req.FileType))
	if _, ok := supportedBackupTypes[fileType]; !ok {
		return &dto.BackupValidateResponse{
			Valid: false,
			Error: fmt.Sprintf("unsupported file type %q", req.FileType),
		}, nil
	}

	content := decodeBackupContent(req.FileContent)
	if strings.TrimSpace(content) == "" {
		return &dto.BackupValidateResponse{
			Valid:    false,
			FileType: fileType,
			Error:    "file content is empty",
		}, nil
	}

	return &dto.BackupValidateResponse{
		Valid:    true,
		FileType: fileType,
		FileSize: len(content),
	}, nil
}

func (s *backupService) ProcessBackupFile(ctx context.Context, userID string, req dto.BackupUploadRequest) (*domain.BackupResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	validation, err := s.ValidateBackupFile(req)
	if err != nil {
		return nil, err
	}
	if !validation.Valid {
		return nil, fmt.Errorf("%s: %w", validation.Error, apperrors.ErrValidation)
	}

	content := decodeBackupContent(req.FileContent)

	classifications, err := s.classifier.ClassifyBatch(ctx, content, validation.FileType)
	if err != nil {
		return nil, fmt.Errorf("failed to extract transactions from %s: %w", req.Filename, err)
	}

	result := &domain.BackupResult{
		Filename: req.Filename,
		FileType: validation.FileType,
		Found:    len(classifications),
		Created:  []domain.Transaction{},
		Errors:   []string{},
	}

	now := time.Now()
	for i, classification := range classifications {
		candidate, err := NormalizeClassification(classification, now)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("entry %d: %v", i+1, err))
			continue
		}
		txn, err := s.txnCreator.CreateFromCandidate(ctx, userID, candidate)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("entry %d: %v", i+1, err))
			continue
		}
		result.Created = append(result.Created, *txn)
	}

	logger.Info("Backup file processed", slog.String("filename", req.Filename), slog.Int("found", result.Found), slog.Int("created", len(result.Created)), slog.Int("errors", len(result.Errors)))
	return result, nil
}

// decodeBackupContent returns the decoded text when the payload is valid
// base64, otherwise the payload as-is. Clients send either form.
func decodeBackupContent(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if decoded, err := base64.StdEncoding.DecodeString(trimmed); err == nil {
		return string(decoded)
	}
	return raw
}
