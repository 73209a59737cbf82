package data

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"timebank/lib/clients"
	"timebank/lib/config"
	"timebank/lib/models"

	"github.com/sirupsen/logrus"
)

const (
	googleDocMimeType  = "application/vnd.google-apps.document"
	pdfMimeType        = "application/pdf"
	memoArchivePrefix  = "memos/"
	memoDownloadExpiry = 15 * time.Minute
)

// MemoRepository converts the memo documents stored in Google Drive into PDFs
type MemoRepository interface {
	ConvertMemosToPDF(ctx context.Context) ([]models.MemoPDF, error)
}

// MemoDao implements MemoRepository. Archive is optional.
type MemoDao struct {
	Drive   clients.DriveClientInterface
	Archive clients.S3ClientInterface
	Config  config.DriveConfig
	Logger  *logrus.Logger
}

// NewMemoRepository creates a new MemoRepository instance
func NewMemoRepository(drive clients.DriveClientInterface, archive clients.S3ClientInterface, cfg config.DriveConfig, logger *logrus.Logger) MemoRepository {
	return &MemoDao{
		Drive:   drive,
		Archive: archive,
		Config:  cfg,
		Logger:  logger,
	}
}

// ConvertMemosToPDF exports every document of the base folder that has no PDF yet.
// It stops at the first failing document.
func (dao *MemoDao) ConvertMemosToPDF(ctx context.Context) ([]models.MemoPDF, error) {
	documents, err := dao.Drive.ListFiles(ctx, folderQuery(dao.Config.BaseFolderID, googleDocMimeType))
	if err != nil {
		return nil, fmt.Errorf("failed to list memo documents: %w", err)
	}

	existing, err := dao.Drive.ListFiles(ctx, folderQuery(dao.Config.PDFFolderID, pdfMimeType))
	if err != nil {
		return nil, fmt.Errorf("failed to list memo PDFs: %w", err)
	}
	converted := make(map[string]bool, len(existing))
	for _, file := range existing {
		converted[file.Name] = true
	}

	created := []models.MemoPDF{}
	for _, document := range documents {
		name := document.Name + ".pdf"
		if converted[name] {
			continue
		}

		content, err := dao.Drive.ExportPDF(ctx, document.Id)
		if err != nil {
			return created, fmt.Errorf("failed to export %q as PDF: %w", document.Name, err)
		}

		file, err := dao.Drive.CreateFile(ctx, name, dao.Config.PDFFolderID, pdfMimeType, bytes.NewReader(content))
		if err != nil {
			return created, fmt.Errorf("failed to upload %q: %w", name, err)
		}

		memo := models.MemoPDF{
			DriveFileID:      file.Id,
			Name:             name,
			SourceDocumentID: document.Id,
		}
		if dao.Archive != nil {
			if err := dao.archive(ctx, &memo, content); err != nil {
				return created, err
			}
		}
		created = append(created, memo)

		dao.Logger.WithFields(logrus.Fields{
			"document_id": document.Id,
			"pdf_id":      file.Id,
			"name":        name,
			"operation":   "ConvertMemosToPDF",
		}).Info("Converted memo to PDF")
	}
	return created, nil
}

func (dao *MemoDao) archive(ctx context.Context, memo *models.MemoPDF, content []byte) error {
	key := memoArchivePrefix + memo.Name
	if err := dao.Archive.UploadObject(ctx, key, content, pdfMimeType); err != nil {
		return fmt.Errorf("failed to archive %q: %w", memo.Name, err)
	}
	url, err := dao.Archive.GenerateDownloadURL(ctx, key, memoDownloadExpiry)
	if err != nil {
		return fmt.Errorf("failed to presign %q: %w", memo.Name, err)
	}
	memo.ArchiveKey = key
	memo.DownloadURL = url
	return nil
}

func folderQuery(folderID, mimeType string) string {
	escaped := strings.ReplaceAll(folderID, `'`, `\'`)
	return fmt.Sprintf("'%s' in parents and mimeType = '%s' and trashed = false", escaped, mimeType)
}
