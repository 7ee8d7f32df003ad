package sysconfig

import "context"

// Store persists configuration settings.
type Store interface {
	Get(ctx context.Context, key string) (*Setting, error)
	List(ctx context.Context) ([]Setting, error)
	Upsert(ctx context.Context, setting Setting) error
}
