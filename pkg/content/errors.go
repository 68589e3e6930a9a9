package content

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Sentinel errors for content store operations.
var (
	// ErrInvalidConfig is returned when a store is constructed with missing settings.
	ErrInvalidConfig = errors.New("content: invalid configuration")

	// ErrInvalidID is returned when an id is not a clean relative slash path.
	ErrInvalidID = errors.New("content: invalid content id")

	// ErrNotFound is returned when a content item does not exist.
	ErrNotFound = errors.New("content: item not found")

	// ErrAccessDenied is returned when the backend refuses access.
	ErrAccessDenied = errors.New("content: access denied")

	// ErrListFailed is returned when the inventory cannot be listed.
	ErrListFailed = errors.New("content: listing failed")

	// ErrReadFailed is returned when an item cannot be fetched for a reason
	// other than it being absent or forbidden.
	ErrReadFailed = errors.New("content: read failed")
)

// wrapS3Error maps S3 errors onto the package sentinels.
// The original error stays in the chain, so errors.Is also sees causes such
// as context.Canceled.
func wrapS3Error(err error, fallback error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %w", ErrAccessDenied, err)
		}
	}

	var notFound *types.NoSuchKey
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	return fmt.Errorf("%w: %w", fallback, err)
}
