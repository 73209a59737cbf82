package clients

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveClientInterface defines the Google Drive operations used by the memo conversion
type DriveClientInterface interface {
	ListFiles(ctx context.Context, query string) ([]*drive.File, error)
	ExportPDF(ctx context.Context, fileID string) ([]byte, error)
	CreateFile(ctx context.Context, name, parentID, mimeType string, content io.Reader) (*drive.File, error)
}

// DriveClient wraps the Google Drive v3 service
type DriveClient struct {
	svc *drive.Service
}

// NewDriveClient creates a Drive client authenticated with service account credentials
func NewDriveClient(ctx context.Context, credentialsJSON string) (DriveClientInterface, error) {
	svc, err := drive.NewService(ctx,
		option.WithCredentialsJSON([]byte(credentialsJSON)),
		option.WithScopes(drive.DriveScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &DriveClient{svc: svc}, nil
}

// ListFiles returns every file matching query, following pagination
func (client *DriveClient) ListFiles(ctx context.Context, query string) ([]*drive.File, error) {
	var files []*drive.File
	err := client.svc.Files.List().
		Q(query).
		Fields("nextPageToken, files(id, name, mimeType, parents)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Pages(ctx, func(page *drive.FileList) error {
			files = append(files, page.Files...)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ExportPDF exports a Google Docs document as PDF
func (client *DriveClient) ExportPDF(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := client.svc.Files.Export(fileID, "application/pdf").Context(ctx).Download()
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// CreateFile uploads content as a new file inside parentID
func (client *DriveClient) CreateFile(ctx context.Context, name, parentID, mimeType string, content io.Reader) (*drive.File, error) {
	file := &drive.File{
		Name:     name,
		MimeType: mimeType,
		Parents:  []string{parentID},
	}
	return client.svc.Files.Create(file).
		Media(content).
		Fields("id, name, mimeType, parents").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
}
