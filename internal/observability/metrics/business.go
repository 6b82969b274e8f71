package metrics

import (
	"time"
)

func result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// RecordContentMutation records a create or delete on a collection.
func RecordContentMutation(collection, operation string, err error) {
	ContentMutationsTotal.WithLabelValues(collection, operation, result(err)).Inc()
}

// UpdateCollectionSize sets the number of records last observed for a collection.
func UpdateCollectionSize(collection string, n int) {
	CollectionSize.WithLabelValues(collection).Set(float64(n))
}

// RecordObjectStoreOp records the duration of a remote object store call.
// Operation should be "read" or "write".
func RecordObjectStoreOp(operation string, duration time.Duration, err error) {
	ObjectStoreDuration.WithLabelValues(operation, result(err)).Observe(duration.Seconds())
}

// RecordCacheOp records a fallback cache access.
// Result is one of "hit", "miss", "corrupt", "error" for reads and
// "success", "error" for writes.
func RecordCacheOp(operation, res string) {
	FallbackCacheOperationsTotal.WithLabelValues(operation, res).Inc()
}

// RecordStoreLoad records which source satisfied a collection load.
func RecordStoreLoad(collection, source string) {
	StoreLoadsTotal.WithLabelValues(collection, source).Inc()
}

// RecordContactSubmission records the outcome of a contact form relay.
// Result is "sent", "invalid" or "failed".
func RecordContactSubmission(res string) {
	ContactSubmissionsTotal.WithLabelValues(res).Inc()
}

// RecordUpload records the outcome of a media upload and, on success, its size.
func RecordUpload(res string, size int64) {
	UploadsTotal.WithLabelValues(res).Inc()
	if res == "success" {
		UploadSize.Observe(float64(size))
	}
}
