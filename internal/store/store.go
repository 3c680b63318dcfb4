package store

import "encoding/json"

// Well-known keys. These are part of the on-disk contract and must stay
// stable across releases: state written by one version has to remain
// readable by the next.
const (
	KeyPreferences    = "preferences"
	KeyStatus         = "status"
	KeyStatusHistory  = "statusHistory"
	KeySavedJobs      = "savedJobs"
	KeyChecklist      = "checklist"
	KeyProofArtifacts = "proofArtifacts"

	// DigestKeyPrefix is followed by a local calendar date (YYYY-MM-DD).
	DigestKeyPrefix = "digest:"
)

// KV is the persistence substrate for all mutable state. Values are UTF-8
// JSON payloads. A missing key is reported via the boolean, not an error.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Close() error
}

// Updater is implemented by stores that can apply several writes
// atomically. Callers fall back to sequential writes when the store does
// not support it.
type Updater interface {
	Update(fn func(kv KV) error) error
}

// LoadJSON reads key from kv and unmarshals it into v. It returns false
// when the key is absent, unreadable, or does not parse as the expected
// shape; v is undefined in that case. Corrupt state is indistinguishable
// from missing state: every reader falls back to its documented default
// instead of surfacing an error.
func LoadJSON(kv KV, key string, v any) bool {
	raw, ok, err := kv.Get(key)
	if err != nil || !ok {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false
	}
	return true
}

// SaveJSON marshals v and writes it under key, replacing any prior value.
func SaveJSON(kv KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return kv.Set(key, raw)
}

// Update runs fn atomically when kv supports it, otherwise directly.
func Update(kv KV, fn func(kv KV) error) error {
	if u, ok := kv.(Updater); ok {
		return u.Update(fn)
	}
	return fn(kv)
}
