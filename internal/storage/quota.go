package storage

// storageQuota limits the combined length of keys and values held by a store.
// A non-positive limit disables the check.
type storageQuota struct {
	limitBytes int64
}

func (quota storageQuota) permits(currentSize int64, key string, previousValue string, previousExists bool, nextValue string) bool {
	if quota.limitBytes <= 0 {
		return true
	}
	projectedSize := currentSize + int64(len(nextValue))
	if previousExists {
		projectedSize -= int64(len(previousValue))
	} else {
		projectedSize += int64(len(key))
	}
	return projectedSize <= quota.limitBytes
}

func entrySize(key string, value string) int64 {
	return int64(len(key) + len(value))
}
