// Package archive tars a committed index directory and uploads/downloads it
// to S3, keyed by build ID (SPEC_FULL.md's Index Snapshot Archiver). It
// generalizes the teacher's pkg/repo/docstore.Store -- a path-validated,
// directory-rooted persistence layer -- from per-document filesystem storage
// to whole-directory S3 archiving, giving the retrieved but otherwise unused
// aws-sdk-go-v2 dependency a concrete home.
package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrInvalidPath is returned when a snapshot entry would extract outside its
// destination directory.
var ErrInvalidPath = errors.New("invalid path: directory traversal not allowed")

// snapshotPrefix namespaces archived index snapshots within the bucket.
const snapshotPrefix = "index-snapshots/"

// S3Client is the subset of the AWS S3 client the archiver depends on,
// satisfied by *s3.Client and stubbed in tests so archiving logic can be
// tested without a real S3 endpoint.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Archiver backs up and restores built index directories to/from S3.
type Archiver struct {
	client S3Client
	bucket string
}

// New returns an Archiver that stores snapshots in bucket via client.
func New(client S3Client, bucket string) *Archiver {
	return &Archiver{client: client, bucket: bucket}
}

// Key returns the S3 object key for a build's snapshot.
func Key(buildID string) string {
	return snapshotPrefix + buildID + ".tar.gz"
}

// Upload tars the committed index directory at indexPath and uploads it to
// S3 under Key(buildID).
func (a *Archiver) Upload(ctx context.Context, indexPath, buildID string) error {
	var buf bytes.Buffer

	if err := writeTarGz(&buf, indexPath); err != nil {
		return fmt.Errorf("archive index directory %s: %w", indexPath, err)
	}

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(Key(buildID)),
		Body:   bytes.NewReader(buf.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("upload snapshot %s: %w", buildID, err)
	}

	return nil
}

// Download fetches the snapshot for buildID from S3 and extracts it to
// destPath, which must not already exist as a non-empty directory.
func (a *Archiver) Download(ctx context.Context, buildID, destPath string) error {
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(Key(buildID)),
	})
	if err != nil {
		return fmt.Errorf("download snapshot %s: %w", buildID, err)
	}

	defer out.Body.Close()

	if err := extractTarGz(out.Body, destPath); err != nil {
		return fmt.Errorf("extract snapshot %s: %w", buildID, err)
	}

	return nil
}

// writeTarGz walks srcDir and writes its contents as a gzip-compressed tar
// stream to w, with entry names relative to srcDir.
func writeTarGz(w io.Writer, srcDir string) error {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	walkErr := filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", path, err)
		}

		if rel == "." {
			return nil
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return fmt.Errorf("build tar header for %s: %w", path, err)
		}

		hdr.Name = filepath.ToSlash(rel)

		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("write tar header for %s: %w", path, err)
		}

		if info.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		if _, err := io.Copy(tw, f); err != nil {
			return fmt.Errorf("write tar body for %s: %w", path, err)
		}

		return nil
	})
	if walkErr != nil {
		return walkErr
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("close tar writer: %w", err)
	}

	if err := gz.Close(); err != nil {
		return fmt.Errorf("close gzip writer: %w", err)
	}

	return nil
}

// extractTarGz reads a gzip-compressed tar stream from r and writes its
// entries under destDir, rejecting any entry that would escape destDir.
func extractTarGz(r io.Reader, destDir string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("open gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)

	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("read tar entry: %w", err)
		}

		target, err := safeJoin(destDir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o750); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := extractFile(tr, target); err != nil {
				return err
			}
		}
	}
}

func extractFile(tr *tar.Reader, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("create directory for %s: %w", target, err)
	}

	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create file %s: %w", target, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, tr); err != nil {
		return fmt.Errorf("write file %s: %w", target, err)
	}

	return nil
}

// safeJoin joins name onto base, rejecting any result that escapes base via
// directory traversal (mirrors docstore.Store.validatePath's path-escape
// check, generalized from a fixed segment list to an arbitrary tar entry
// name).
func safeJoin(base, name string) (string, error) {
	joined := filepath.Join(base, name)

	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("resolve base path: %w", err)
	}

	absJoined, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("resolve entry path: %w", err)
	}

	if absJoined != absBase && !strings.HasPrefix(absJoined, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, name)
	}

	return absJoined, nil
}
