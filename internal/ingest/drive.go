// backend-go/internal/ingest/drive.go
package ingest

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// RemoteFile describes one file in the watched dealer folder.
type RemoteFile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
	Size         int64  `json:"size,string,omitempty"`
}

// Source lists and retrieves dealer sales exports from a remote share.
type Source interface {
	ListFolder(ctx context.Context, folderID string) ([]RemoteFile, error)
	ResolveFolderPath(ctx context.Context, path string) (string, error)
	Stat(ctx context.Context, fileID string) (RemoteFile, error)
	Download(ctx context.Context, fileID string, w io.Writer) error
}

// DriveClient is the Google Drive implementation of Source, authenticated
// with a read-only service account.
type DriveClient struct {
	srv *drive.Service
}

func NewDriveClient(ctx context.Context, credentialsJSON string) (*DriveClient, error) {
	jwtConfig, err := google.JWTConfigFromJSON([]byte(credentialsJSON), drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse drive credentials: %v", err)
	}

	srv, err := drive.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to build drive client: %v", err)
	}

	return &DriveClient{srv: srv}, nil
}

func (c *DriveClient) ListFolder(ctx context.Context, folderID string) ([]RemoteFile, error) {
	if folderID == "" {
		folderID = "root"
	}

	result, err := c.srv.Files.List().
		Context(ctx).
		Q(fmt.Sprintf("'%s' in parents and trashed=false", folderID)).
		Fields("files(id, name, mimeType, modifiedTime, size)").
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list folder %s: %v", folderID, err)
	}

	files := make([]RemoteFile, 0, len(result.Files))
	for _, f := range result.Files {
		files = append(files, RemoteFile{
			ID:           f.Id,
			Name:         f.Name,
			MimeType:     f.MimeType,
			ModifiedTime: f.ModifiedTime,
			Size:         f.Size,
		})
	}
	return files, nil
}

// ResolveFolderPath walks a slash-separated folder path from the Drive root
// down to its folder id.
func (c *DriveClient) ResolveFolderPath(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "root", nil
	}

	currentID := "root"
	for _, folder := range strings.Split(path, "/") {
		if folder == "" {
			continue
		}

		result, err := c.srv.Files.List().
			Context(ctx).
			Q(fmt.Sprintf("'%s' in parents and name='%s' and mimeType='application/vnd.google-apps.folder' and trashed=false",
				currentID, folder)).
			Fields("files(id, name)").
			Do()
		if err != nil {
			return "", fmt.Errorf("error finding folder %s: %v", folder, err)
		}
		if len(result.Files) == 0 {
			return "", fmt.Errorf("folder not found: %s", folder)
		}
		currentID = result.Files[0].Id
	}

	return currentID, nil
}

func (c *DriveClient) Stat(ctx context.Context, fileID string) (RemoteFile, error) {
	f, err := c.srv.Files.Get(fileID).
		Context(ctx).
		Fields("id, name, mimeType, modifiedTime, size").
		Do()
	if err != nil {
		return RemoteFile{}, fmt.Errorf("unable to stat file %s: %v", fileID, err)
	}
	return RemoteFile{
		ID:           f.Id,
		Name:         f.Name,
		MimeType:     f.MimeType,
		ModifiedTime: f.ModifiedTime,
		Size:         f.Size,
	}, nil
}

func (c *DriveClient) Download(ctx context.Context, fileID string, w io.Writer) error {
	resp, err := c.srv.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return fmt.Errorf("unable to download file: %v", err)
	}
	defer resp.Body.Close()

	_, err = io.Copy(w, resp.Body)
	return err
}
