package domain

import "context"

type ObjectStore interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	// ListPrefixes returns the immediate child keys under prefix, without recursing.
	ListPrefixes(ctx context.Context, bucket, prefix string) ([]string, error)
}

type Notifier interface {
	Notify(ctx context.Context, message string) error
}
