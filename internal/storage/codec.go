package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"eventhub/pkg/logger"
)

var ErrMalformed = errors.New("malformed collection")

var validate = validator.New()

// Validate checks a record's struct tags.
func Validate(v any) error {
	return validate.Struct(v)
}

// Collection is a decoded JSON array of records. Elements that fail to decode
// or validate are kept verbatim so that rewriting the collection never drops them.
type Collection[T any] struct {
	Items   []T
	invalid []json.RawMessage
}

// Decode parses a JSON array. An absent value yields an empty collection.
// A value that is not an array yields an empty collection and ErrMalformed.
func Decode[T any](data []byte) (*Collection[T], error) {
	c := &Collection[T]{}
	if len(data) == 0 || string(data) == "null" {
		return c, nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return c, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var errs []error
	for i, raw := range raws {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			c.invalid = append(c.invalid, raw)
			errs = append(errs, fmt.Errorf("element %d: %w", i, err))
			continue
		}
		if err := Validate(&item); err != nil {
			c.invalid = append(c.invalid, raw)
			errs = append(errs, fmt.Errorf("element %d: %w", i, err))
			continue
		}
		c.Items = append(c.Items, item)
	}
	if len(errs) > 0 {
		return c, fmt.Errorf("%w: %w", ErrMalformed, errors.Join(errs...))
	}
	return c, nil
}

// Skipped reports how many elements were kept aside as invalid.
func (c *Collection[T]) Skipped() int {
	return len(c.invalid)
}

// Encode renders valid items followed by any preserved invalid elements.
func (c *Collection[T]) Encode() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(c.Items)+len(c.invalid))
	for i := range c.Items {
		b, err := json.Marshal(c.Items[i])
		if err != nil {
			return nil, fmt.Errorf("failed to encode element %d: %w", i, err)
		}
		out = append(out, b)
	}
	out = append(out, c.invalid...)
	return json.Marshal(out)
}

// LoadCollection reads and decodes key. Malformed content is logged and
// treated as whatever could be salvaged; only backend failures are returned.
func LoadCollection[T any](ctx context.Context, kv Accessor, key string, log *logger.Logger) (*Collection[T], error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return &Collection[T]{}, nil
	}
	if err != nil {
		return nil, err
	}
	c, derr := Decode[T](raw)
	if derr != nil && log != nil {
		log.LogMalformedRecords(ctx, key, c.Skipped(), derr)
	}
	return c, nil
}

// SaveCollection encodes c and writes it under key.
func SaveCollection[T any](ctx context.Context, kv Accessor, key string, c *Collection[T]) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, data)
}

// LoadObject decodes a single JSON object stored under key. It returns
// ErrNotFound when the key is absent or its content is unusable.
func LoadObject[T any](ctx context.Context, kv Accessor, key string, log *logger.Logger) (*T, error) {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if string(raw) == "null" {
		return nil, ErrNotFound
	}
	var v T
	err = json.Unmarshal(raw, &v)
	if err == nil {
		err = Validate(&v)
	}
	if err != nil {
		if log != nil {
			log.LogMalformedRecords(ctx, key, 1, err)
		}
		return nil, ErrNotFound
	}
	return &v, nil
}

// SaveObject encodes v and writes it under key.
func SaveObject(ctx context.Context, kv Accessor, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, data)
}
