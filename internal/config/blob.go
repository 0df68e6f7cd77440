package config

import (
	"os"
	"sync"
)

type BlobConfig struct {
	Driver    string
	LocalDir  string
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

var (
	blobConfig *BlobConfig
	blobOnce   sync.Once
)

func LoadBlobConfig() *BlobConfig {
	blobOnce.Do(func() {
		blobConfig = &BlobConfig{
			Driver:    getEnv("BLOB_DRIVER", "local"),
			LocalDir:  getEnv("BLOB_LOCAL_DIR", "./uploads"),
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    getEnv("S3_REGION", "auto"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
		}
	})
	return blobConfig
}
