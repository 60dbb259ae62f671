package dto

import "github.com/anujbalmiki/pennywise/internal/core/domain"

// BackupUploadRequest carries one statement file for bulk import. FileContent
// may be base64-encoded or plain text; the service tries base64 first.
type BackupUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	FileType    string `json:"file_type" binding:"required"`
	FileContent string `json:"file_content" binding:"required"`
}

// BackupUploadResponse reports the outcome of a bulk import. One malformed
// statement entry never discards the rest of the batch; its failure is
// recorded in Errors instead.
type BackupUploadResponse struct {
	Message             string                `json:"message"`
	Filename            string                `json:"filename"`
	FileType            string                `json:"file_type"`
	TransactionsFound   int                   `json:"transactions_found"`
	TransactionsCreated int                   `json:"transactions_created"`
	CreatedTransactions []TransactionResponse `json:"created_transactions"`
	Errors              []string              `json:"errors"`
}

// ToBackupUploadResponse converts a domain.BackupResult to its API shape.
func ToBackupUploadResponse(r *domain.BackupResult) BackupUploadResponse {
	created := make([]TransactionResponse, len(r.Created))
	for i := range r.Created {
		created[i] = ToTransactionResponse(&r.Created[i])
	}
	errs := r.Errors
	if errs == nil {
		errs = []string{}
	}
	return BackupUploadResponse{
		Message:             "Backup file processed successfully",
		Filename:            r.Filename,
		FileType:            r.FileType,
		TransactionsFound:   r.Found,
		TransactionsCreated: len(r.Created),
		CreatedTransactions: created,
		Errors:              errs,
	}
}

// BackupValidateResponse reports whether a backup file can be processed.
type BackupValidateResponse struct {
	Valid    bool   `json:"valid"`
	FileType string `json:"file_type,omitempty"`
	FileSize int    `json:"file_size,omitempty"`
	Error    string `json:"error,omitempty"`
}
