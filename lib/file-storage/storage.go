package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"

	"sap-talent-backend/config"
)

type Provider interface {
	// UploadReport archives a generated result report and returns the
	// object key it was stored under.
	UploadReport(ctx context.Context, candidateID string, pdfFile []byte) (key string, err error)
	GetReport(ctx context.Context, key string) ([]byte, error)
}

var Instance Provider

func NewInstance(s3client *minio.Client) {
	Instance = &impl{
		s3client: s3client,
	}
}

type impl struct {
	s3client *minio.Client
}

func (i impl) UploadReport(ctx context.Context, candidateID string, pdfFile []byte) (string, error) {
	key := reportKey(candidateID)
	reader := bytes.NewReader(pdfFile)
	_, err := i.s3client.PutObject(ctx, config.Conf.S3.BucketName, key, reader, int64(len(pdfFile)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	if err != nil {
		return "", errors.Wrap(err, "failed to archive report")
	}
	return key, nil
}

func (i impl) GetReport(ctx context.Context, key string) ([]byte, error) {
	object, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch report")
	}
	defer object.Close()
	body, err := io.ReadAll(object)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read report body")
	}
	return body, nil
}

func reportKey(candidateID string) string {
	return fmt.Sprintf("reports/%s.pdf", candidateID)
}
