package repository

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"cloud.google.com/go/storage"
	bCtx "github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/log"
	"github.com/x-xyz/collectibles/domain"
)

type CloudStorageWriterRepoCfg struct {
	Timeout    time.Duration
	Client     *storage.Client
	BucketName string
	// Url is the public base url of the bucket
	Url string
	// Folder is prepended to every object name
	Folder string
}

type cloudStorageWriterRepo struct {
	client     *storage.Client
	bucketName string
	folder     string
	ctxTimeout time.Duration
	baseUrl    *url.URL
}

// NewCloudStorageWriterRepo stores objects named by the sha256 of their
// content, so equal content always gets the same locator.
func NewCloudStorageWriterRepo(cfg *CloudStorageWriterRepoCfg) (domain.ContentWriterRepository, error) {
	baseUrl, err := url.Parse(cfg.Url)
	if err != nil {
		return nil, err
	}
	return &cloudStorageWriterRepo{
		client:     cfg.Client,
		bucketName: cfg.BucketName,
		folder:     cfg.Folder,
		ctxTimeout: cfg.Timeout,
		baseUrl:    baseUrl,
	}, nil
}

func (r *cloudStorageWriterRepo) Store(c bCtx.Ctx, name string, body []byte, contentType string) (string, error) {
	objectName := contentObjectName(r.folder, name, body)
	contentPath, err := url.Parse(objectName)
	if err != nil {
		c.WithFields(log.Fields{
			"path": objectName,
			"err":  err,
		}).Error("failed to parse path")
		return "", err
	}

	ctx, cancel := bCtx.WithTimeout(c, r.ctxTimeout)
	defer cancel()
	w := r.client.Bucket(r.bucketName).Object(objectName).NewWriter(ctx)
	if len(contentType) > 0 {
		w.ObjectAttrs.ContentType = contentType
	}
	if _, err := io.Copy(w, bytes.NewReader(body)); err != nil {
		ctx.WithField("err", err).Error("failed to copy")
		return "", err
	}
	if err := w.Close(); err != nil {
		ctx.WithField("err", err).Error("failed to close writer")
		return "", err
	}
	return r.baseUrl.ResolveReference(contentPath).String(), nil
}

// contentObjectName keeps the extension of name so that the bucket serves a
// sensible content type to browsers.
func contentObjectName(folder, name string, body []byte) string {
	return path.Join(folder, fmt.Sprintf("%x%s", sha256.Sum256(body), path.Ext(name)))
}
