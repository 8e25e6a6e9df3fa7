package usecasecontract

import "time"

// IConfigProvider exposes the tunables the usecases read.
type IConfigProvider interface {
	GetAppBaseURL() string
	GetFeedCacheTTL() time.Duration
	GetFeedPageSize() int
	GetCounterTTL() time.Duration
	GetUniqueViewWindow() time.Duration
	GetMediaBucket() string
	GetUploadURLTTL() time.Duration
}
