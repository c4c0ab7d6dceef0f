package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	folderMimeType      = "application/vnd.google-apps.folder"
	spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"
	xlsxMimeType        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	fileIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`),
		regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`),
		regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`),
	}
	driveHost = regexp.MustCompile(`^https://(drive|docs)\.google\.com/`)
)

// GoogleDrive downloads catalog workbooks shared with a service account.
type GoogleDrive struct {
	service *drive.Service
	log     *zap.Logger
}

// NewGoogleDrive authenticates with service account credentials, read from
// credentialsPath when set and from credentialsJSON otherwise.
func NewGoogleDrive(ctx context.Context, credentialsPath, credentialsJSON string, log *zap.Logger) (*GoogleDrive, error) {
	raw := []byte(credentialsJSON)
	if credentialsPath != "" {
		var err error
		if raw, err = os.ReadFile(credentialsPath); err != nil {
			return nil, fmt.Errorf("read drive credentials: %w", err)
		}
	}
	if len(raw) == 0 {
		return nil, errors.New("drive credentials are empty")
	}

	creds, err := google.CredentialsFromJSON(ctx, raw, drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("load drive credentials: %w", err)
	}
	service, err := drive.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	log.Info("Google Drive service initialized")
	return &GoogleDrive{service: service, log: log}, nil
}

// IsGoogleDriveURL reports whether url points at Google Drive or Google Sheets.
func IsGoogleDriveURL(url string) bool {
	return driveHost.MatchString(url)
}

// ExtractFileIDFromURL returns the file id of a Drive or Sheets share link.
func ExtractFileIDFromURL(url string) (string, error) {
	for _, re := range fileIDPatterns {
		if matches := re.FindStringSubmatch(url); len(matches) > 1 {
			return matches[1], nil
		}
	}
	return "", fmt.Errorf("no file id in %q", url)
}

// DownloadURL opens the file behind a share link. Native Google Sheets are
// exported as XLSX. The caller closes the returned body.
func (d *GoogleDrive) DownloadURL(ctx context.Context, url string) (io.ReadCloser, string, error) {
	if !IsGoogleDriveURL(url) {
		return nil, "", fmt.Errorf("not a Google Drive link: %q", url)
	}
	fileID, err := ExtractFileIDFromURL(url)
	if err != nil {
		return nil, "", err
	}
	return d.Download(ctx, fileID)
}

// Download opens the file with the given id.
func (d *GoogleDrive) Download(ctx context.Context, fileID string) (io.ReadCloser, string, error) {
	file, err := d.service.Files.Get(fileID).Fields("id", "name", "mimeType", "size").Context(ctx).Do()
	if err != nil {
		return nil, "", fmt.Errorf("get drive file %s: %w", fileID, err)
	}
	d.log.Debug("Drive file found",
		zap.String("fileId", fileID),
		zap.String("name", file.Name),
		zap.String("mimeType", file.MimeType),
		zap.Int64("size", file.Size))

	switch file.MimeType {
	case folderMimeType:
		return nil, "", fmt.Errorf("drive file %s is a folder", fileID)
	case spreadsheetMimeType:
		resp, err := d.service.Files.Export(fileID, xlsxMimeType).Context(ctx).Download()
		if err != nil {
			return nil, "", fmt.Errorf("export drive spreadsheet %s: %w", fileID, err)
		}
		return resp.Body, file.Name + ".xlsx", nil
	}

	resp, err := d.service.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, "", fmt.Errorf("download drive file %s: %w", fileID, err)
	}
	return resp.Body, file.Name, nil
}
