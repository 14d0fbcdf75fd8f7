package services

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/autolane-tms/autolane_api/dto"
	"github.com/autolane-tms/autolane_api/shared"
)

// MediaService handles vehicle photos. Uploads go straight from the client
// to object storage via presigned URLs; the API only hands out URLs and
// records the object key.
type MediaService struct {
	context.DefaultService

	sqlSvc   *PostgresService
	minioSvc *MinIOService
}

const (
	MEDIA_SVC = "media_svc"

	photoUploadExpiry   = 15 * time.Minute
	photoDownloadExpiry = 24 * time.Hour
)

var allowedPhotoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	return nil
}

// RequestPhotoUpload issues a presigned PUT URL for a vehicle photo and
// records the object key against the vehicle.
func (svc *MediaService) RequestPhotoUpload(vehicleID, filename string) (*dto.PhotoUploadResponse, error) {
	ext := strings.ToLower(path.Ext(filename))
	if !allowedPhotoExtensions[ext] {
		return nil, shared.NewBadRequestError(nil, "Invalid photo format. Supported: JPG, PNG, WEBP")
	}

	vehicle, err := svc.sqlSvc.GetVehicle(vehicleID)
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("vehicles/%s/photo%s", vehicle.ID, ext)

	uploadURL, err := svc.minioSvc.PresignedPutURL(objectKey, photoUploadExpiry)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to prepare upload")
	}

	if err := svc.sqlSvc.SetVehiclePhotoKey(vehicle.ID, objectKey); err != nil {
		return nil, shared.NewInternalError(err, "Failed to record photo")
	}

	return &dto.PhotoUploadResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
		ExpiresIn: int64(photoUploadExpiry.Seconds()),
	}, nil
}

// PhotoURL resolves a stored object key to a time-limited download URL.
// Missing or unresolvable photos degrade to an empty string.
func (svc *MediaService) PhotoURL(photoKey string) string {
	if photoKey == "" {
		return ""
	}

	url, err := svc.minioSvc.PresignedGetURL(photoKey, photoDownloadExpiry)
	if err != nil {
		log.Errorf("Failed to presign photo %s: %v", photoKey, err)
		return ""
	}
	return url
}

func (svc *MediaService) DeletePhoto(vehicleID string) error {
	vehicle, err := svc.sqlSvc.GetVehicle(vehicleID)
	if err != nil {
		return err
	}

	if vehicle.PhotoKey == "" {
		return nil
	}

	if err := svc.minioSvc.DeleteFile(vehicle.PhotoKey); err != nil {
		log.Errorf("Failed to delete photo %s: %v", vehicle.PhotoKey, err)
	}

	return svc.sqlSvc.SetVehiclePhotoKey(vehicleID, "")
}
