// Package drive syncs documents with Google Drive folders: it lists the PDFs
// waiting in an input folder, downloads them and uploads rendered PNGs to an
// output folder.
package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// ErrDrive wraps every failure talking to the Drive API.
var ErrDrive = errors.New("drive request failed")

const (
	pdfMimeType = "application/pdf"
	pngMimeType = "image/png"
	pageSize    = 100
)

// File is a remote file.
type File struct {
	ID   string
	Name string
	Size int64
}

// Client talks to the Drive v3 API.
type Client struct {
	svc *drivev3.Service
}

// New creates a Client. Without options the client authenticates with
// Application Default Credentials.
func New(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithScopes(drivev3.DriveScope)}, opts...)
	svc, err := drivev3.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: creating service: %v", ErrDrive, err)
	}
	return &Client{svc: svc}, nil
}

// NewWithCredentialsFile creates a Client from a service account key file.
func NewWithCredentialsFile(ctx context.Context, path string) (*Client, error) {
	return New(ctx, option.WithCredentialsFile(path))
}

// ListPDFs returns the PDFs directly inside folderID that are not in the
// trash, following pagination.
func (c *Client) ListPDFs(ctx context.Context, folderID string) ([]File, error) {
	q := fmt.Sprintf("'%s' in parents and mimeType = '%s' and trashed = false", escapeQuery(folderID), pdfMimeType)

	var files []File
	err := c.svc.Files.List().
		Q(q).
		Fields("nextPageToken", "files(id, name, size)").
		PageSize(pageSize).
		OrderBy("name").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Pages(ctx, func(page *drivev3.FileList) error {
			for _, f := range page.Files {
				files = append(files, File{ID: f.Id, Name: f.Name, Size: f.Size})
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("%w: listing folder %s: %v", ErrDrive, folderID, err)
	}
	return files, nil
}

// Download streams the content of fileID into w.
func (c *Client) Download(ctx context.Context, fileID string, w io.Writer) error {
	resp, err := c.svc.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return fmt.Errorf("%w: downloading %s: %v", ErrDrive, fileID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("%w: downloading %s: %v", ErrDrive, fileID, err)
	}
	return nil
}

// UploadPNG creates name in parentID with the PNG read from r and returns
// the new file's ID.
func (c *Client) UploadPNG(ctx context.Context, name, parentID string, r io.Reader) (string, error) {
	meta := &drivev3.File{
		Name:     name,
		MimeType: pngMimeType,
		Parents:  []string{parentID},
	}
	f, err := c.svc.Files.Create(meta).
		Media(r, googleapi.ContentType(pngMimeType)).
		SupportsAllDrives(true).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("%w: uploading %s: %v", ErrDrive, name, err)
	}
	return f.Id, nil
}

// escapeQuery escapes a value for use inside single quotes in a Drive query.
func escapeQuery(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}
