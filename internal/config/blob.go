package config

import (
	"strings"
	"time"
)

// BlobConfig configures the MinIO attachment store.
type BlobConfig struct {
	Endpoint  string        // host:port of the MinIO/S3 endpoint
	AccessKey string        // access key id
	SecretKey string        // secret access key
	Bucket    string        // bucket holding note attachments
	UseSSL    bool          // connect over TLS
	MaxSize   int64         // per-file upload limit in bytes
	URLExpiry time.Duration // lifetime of presigned download URLs
	FileTypes []string      // allowed MIME types, detected server-side
}

// LoadBlobConfig reads MinIO settings from the environment. Endpoint,
// keys and bucket are required because attachments have no local
// fallback.
func LoadBlobConfig() BlobConfig {
	return BlobConfig{
		Endpoint:  must("MINIO_ENDPOINT"),
		AccessKey: must("MINIO_ACCESS_KEY"),
		SecretKey: must("MINIO_SECRET_KEY"),
		Bucket:    getenv("MINIO_BUCKET", "vault-attachments"),
		UseSSL:    envBool("MINIO_USE_SSL", false),
		MaxSize:   envInt64("MAX_FILE_SIZE", 10485760), // 10 MiB
		URLExpiry: envDur("PRESIGNED_URL_EXPIRY", time.Hour),
		FileTypes: parseFileTypes(getenv("ALLOWED_FILE_TYPES", "")),
	}
}

func parseFileTypes(val string) []string {
	if val == "" {
		return []string{"image/jpeg", "image/png", "image/gif", "application/pdf", "text/plain"}
	}
	parts := strings.Split(val, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
