package storage

import (
	"fmt"
	"mime/multipart"

	"blog-backend/config"
)

// ImageStorage 是帖子配图的存储后端接口，
// 返回值是可以写进 posts.image_url 的引用
type ImageStorage interface {
	UploadFile(file *multipart.FileHeader, path string) (string, error)
}

// New 根据配置选择存储后端，默认本地磁盘
func New(cfg config.Config) (ImageStorage, error) {
	switch cfg.StorageBackend {
	case "", "local":
		return NewLocalStorage(cfg.LocalStoragePath)
	case "s3":
		return NewS3Client(cfg.S3Region, cfg.S3Bucket)
	case "gcs":
		return NewGCSClient(cfg.GCSProjectID, cfg.GCSBucketName, cfg.GCSCredentialsFile)
	default:
		return nil, fmt.Errorf("未知的存储后端: %s", cfg.StorageBackend)
	}
}
