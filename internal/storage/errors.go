package storage

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
	"github.com/minio/minio-go/v7"
)

// Sentinel errors for backend conditions callers may branch on.
var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrAccessDenied   = errors.New("storage: access denied")
)

// errorCodes maps S3 error codes, as reported by both the AWS SDK and minio-go,
// to the sentinels above. Codes not listed stay opaque.
var errorCodes = map[string]error{
	"NoSuchKey":             ErrObjectNotFound,
	"NotFound":              ErrObjectNotFound,
	"NoSuchBucket":          ErrBucketNotFound,
	"AccessDenied":          ErrAccessDenied,
	"InvalidAccessKeyId":    ErrAccessDenied,
	"SignatureDoesNotMatch": ErrAccessDenied,
}

// errorCode extracts the S3 error code from an AWS SDK or minio-go error.
func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	var minioErr minio.ErrorResponse
	if errors.As(err, &minioErr) {
		return minioErr.Code
	}
	return ""
}

// classify wraps err so that errors.Is matches the sentinel registered for its code,
// while keeping the original error in the chain.
func classify(op, key string, err error) error {
	if sentinel, ok := errorCodes[errorCode(err)]; ok {
		return fmt.Errorf("%s %q: %w: %w", op, key, sentinel, err)
	}
	return fmt.Errorf("%s %q: %w", op, key, err)
}

// IsNotFound reports whether err means the requested object does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}
