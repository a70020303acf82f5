package vectorstore

import "github.com/google/uuid"

// uuidFromHex derives a deterministic UUID from an arbitrary chunk id, the
// way wessley-mvp's ingest pipeline derives point ids from content hashes.
func uuidFromHex(chunkID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(chunkID)).String()
}
