package service

import (
	"context"
	"errors"
)

// ErrInvalidPrice is returned when a dish price can't be parsed as a
// decimal number.
var ErrInvalidPrice = errors.New("invalid price")

// ErrInvalidDiscount is returned when a dish discount can't be parsed as
// a decimal number.
var ErrInvalidDiscount = errors.New("invalid discount")

// entityCache is the slice of the cache API the services need. Satisfied
// by *cache.Cache.
type entityCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Clear(ctx context.Context, keys ...string) error
	ClearByMask(ctx context.Context, mask string) error
}
