package storage

import (
	"fmt"
)

// Keys generates Redis keys with consistent naming
type Keys struct {
	prefix string
}

// NewKeys creates a new Keys generator
func NewKeys(prefix string) *Keys {
	return &Keys{prefix: prefix}
}

// Usage returns the key for a day's usage counters (date is YYYY-MM-DD)
func (k *Keys) Usage(date string) string {
	return fmt.Sprintf("%susage:%s", k.prefix, date)
}

// UsageField returns the hash field for one counter of a model
func (k *Keys) UsageField(model, counter string) string {
	return fmt.Sprintf("%s:%s", model, counter)
}
