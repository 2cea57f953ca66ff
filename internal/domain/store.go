package domain

// BlobStore is a durable string-keyed blob store.
// Read reports ok=false when the key has never been written.
type BlobStore interface {
	Read(key string) (value string, ok bool, err error)
	Write(key, value string) error
	Close() error
}
