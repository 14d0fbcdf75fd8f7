package services

import (
	stdcontext "context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

type MinIOService struct {
	context.DefaultService

	client     *minio.Client
	bucketName string
	endpoint   string
	accessKey  string
	secretKey  string
	useSSL     bool
}

const MINIO_SVC = "minio_svc"

func (svc MinIOService) Id() string {
	return MINIO_SVC
}

func (svc *MinIOService) Configure(ctx *context.Context) error {
	svc.endpoint = envOr("MINIO_ENDPOINT", "localhost:9000")
	svc.accessKey = envOr("MINIO_ACCESS_KEY", "admin")
	svc.secretKey = envOr("MINIO_SECRET_KEY", "password123")
	svc.useSSL = os.Getenv("MINIO_USE_SSL") == "true"
	svc.bucketName = envOr("MINIO_BUCKET_NAME", "autolane-media")

	return svc.DefaultService.Configure(ctx)
}

func (svc *MinIOService) Start() error {
	client, err := minio.New(svc.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(svc.accessKey, svc.secretKey, ""),
		Secure: svc.useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %v", err)
	}

	svc.client = client

	if err := svc.ensureBucket(); err != nil {
		return fmt.Errorf("failed to ensure bucket exists: %v", err)
	}

	log.Printf("MinIO service started successfully with endpoint: %s", svc.endpoint)
	return nil
}

func (svc *MinIOService) ensureBucket() error {
	ctx := stdcontext.Background()

	exists, err := svc.client.BucketExists(ctx, svc.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %v", err)
	}

	if !exists {
		if err := svc.client.MakeBucket(ctx, svc.bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %v", err)
		}
		log.Printf("Created MinIO bucket: %s", svc.bucketName)
	}

	return nil
}

// PresignedPutURL lets the browser upload directly to object storage.
func (svc *MinIOService) PresignedPutURL(objectName string, expiry time.Duration) (string, error) {
	presignedURL, err := svc.client.PresignedPutObject(stdcontext.Background(), svc.bucketName, objectName, expiry)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned upload URL: %v", err)
	}
	return presignedURL.String(), nil
}

// PresignedGetURL returns a time-limited download URL.
func (svc *MinIOService) PresignedGetURL(objectName string, expiry time.Duration) (string, error) {
	presignedURL, err := svc.client.PresignedGetObject(stdcontext.Background(), svc.bucketName, objectName, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %v", err)
	}
	return presignedURL.String(), nil
}

func (svc *MinIOService) DeleteFile(objectName string) error {
	err := svc.client.RemoveObject(stdcontext.Background(), svc.bucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file from MinIO: %v", err)
	}
	return nil
}
