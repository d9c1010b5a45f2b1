// Package resources holds the per-family domain services of the admin console.
// Each service owns its canonical record types and the normalization of the
// backend's payload variants; callers never see a raw envelope.
package resources

import (
	"context"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/client"
	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/normalize"
	"github.com/muhammadnuman-eng/school-managment-crm-sub001/pkg/api"
)

// Doer dispatches a single request. Satisfied by *client.Client; tests
// substitute canned envelopes.
type Doer interface {
	Do(ctx context.Context, req client.Request) (*api.RawEnvelope, error)
}

// Paged is the canonical result of a paginated list operation. Pagination is
// nil when the backend returned an unpaged shape.
type Paged[T any] struct {
	Items      []T
	Pagination *api.Meta
}

// fetchList dispatches req and unwraps whichever collection envelope came back.
func fetchList[T any](ctx context.Context, d Doer, req client.Request, resourceKey string) (Paged[T], error) {
	out := Paged[T]{Items: []T{}}

	envelope, err := d.Do(ctx, req)
	if err != nil {
		return out, err
	}

	collection, err := normalize.DecodeCollection[T](envelope.Data, resourceKey)
	if err != nil {
		return out, err
	}

	out.Items = collection.Items
	out.Pagination = collection.Meta
	return out, nil
}

// fetchOne dispatches req and decodes a single record, tolerating a data
// wrapper around it.
func fetchOne[T any](ctx context.Context, d Doer, req client.Request) (*T, error) {
	envelope, err := d.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return normalize.DecodeOne[T](envelope.Data)
}

// do dispatches req for operations whose payload the caller does not need.
func do(ctx context.Context, d Doer, req client.Request) error {
	_, err := d.Do(ctx, req)
	return err
}
