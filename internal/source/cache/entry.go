package cache

import (
	"encoding/json"
	"errors"
	"time"
)

// Entry is one cached collection with its expiration metadata.
type Entry struct {
	// Key is the cache key (SHA256 of the endpoint URL).
	Key string `json:"key"`

	// URL is the endpoint the data was fetched from.
	URL string `json:"url"`

	// Data is the raw response body.
	Data json.RawMessage `json:"data"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewEntry creates an entry for data that expires after ttl.
func NewEntry(key, url string, data json.RawMessage, ttl time.Duration) *Entry {
	now := time.Now()
	return &Entry{
		Key:       key,
		URL:       url,
		Data:      data,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired reports whether the entry is past its expiration time.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// Age returns the duration since the entry was created.
func (e *Entry) Age() time.Duration {
	return time.Since(e.CreatedAt)
}

// MarshalJSON formats times as RFC3339 so cache files stay readable.
func (e *Entry) MarshalJSON() ([]byte, error) {
	type Alias Entry
	return json.Marshal(&struct {
		*Alias

		CreatedAt string `json:"created_at"`
		ExpiresAt string `json:"expires_at"`
	}{
		Alias:     (*Alias)(e),
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
		ExpiresAt: e.ExpiresAt.Format(time.RFC3339),
	})
}

// UnmarshalJSON parses the RFC3339 timestamps written by MarshalJSON.
func (e *Entry) UnmarshalJSON(data []byte) error {
	if e == nil {
		return errors.New("cannot unmarshal into nil Entry")
	}
	type Alias Entry
	aux := &struct {
		*Alias

		CreatedAt string `json:"created_at"`
		ExpiresAt string `json:"expires_at"`
	}{
		Alias: (*Alias)(e),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if e.CreatedAt, err = time.Parse(time.RFC3339, aux.CreatedAt); err != nil {
		return err
	}
	if e.ExpiresAt, err = time.Parse(time.RFC3339, aux.ExpiresAt); err != nil {
		return err
	}
	return nil
}
