package repository

import "context"

// ObjectStore is the content-addressed input store holding uploaded recipe
// images. The core only ever reads from it; uploads happen in the web
// layer before a job is submitted. Get fails with ErrImageNotFound when
// the ref does not resolve.
type ObjectStore interface {
	Get(ctx context.Context, storageRef string) ([]byte, error)
}
