package cache

import "context"

// Tiered puts a shared remote tier behind a local store.
//
// The local store is authoritative for paths. A local miss consults the
// remote tier and copies a remote hit into the local store, so the entry
// ends up at Path(key) either way. Remote failures never fail an operation:
// they are reported to OnRemoteError and treated as misses.
type Tiered struct {
	Local  Store
	Remote Blobs

	// OnRemoteError, if set, receives errors from the remote tier.
	OnRemoteError func(op, key string, err error)
}

// NewTiered creates a tiered store. A nil remote makes it a pass-through to
// local.
func NewTiered(local Store, remote Blobs) *Tiered {
	return &Tiered{Local: local, Remote: remote}
}

// Path returns the local path for key.
func (t *Tiered) Path(key string) string {
	return t.Local.Path(key)
}

// Has reports whether key is available, pulling it from the remote tier into
// the local store when only the remote has it.
func (t *Tiered) Has(ctx context.Context, key string) (bool, error) {
	ok, err := t.Local.Has(ctx, key)
	if err != nil || ok {
		return ok, err
	}
	data, ok := t.fetchRemote(ctx, key)
	if !ok {
		return false, nil
	}
	if err := t.Local.Set(ctx, key, data); err != nil {
		return false, err
	}
	return true, nil
}

// Get reads key from the local store, falling back to the remote tier.
func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := t.Local.Get(ctx, key)
	if err != nil || ok {
		return data, ok, err
	}
	data, ok = t.fetchRemote(ctx, key)
	if !ok {
		return nil, false, nil
	}
	if err := t.Local.Set(ctx, key, data); err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set writes key to the local store and then to the remote tier.
func (t *Tiered) Set(ctx context.Context, key string, data []byte) error {
	if err := t.Local.Set(ctx, key, data); err != nil {
		return err
	}
	if t.Remote != nil {
		if err := t.Remote.Set(ctx, key, data); err != nil {
			t.remoteError("set", key, err)
		}
	}
	return nil
}

// Delete removes key from both tiers.
func (t *Tiered) Delete(ctx context.Context, key string) error {
	if err := t.Local.Delete(ctx, key); err != nil {
		return err
	}
	if t.Remote != nil {
		if err := t.Remote.Delete(ctx, key); err != nil {
			t.remoteError("delete", key, err)
		}
	}
	return nil
}

// Close closes both tiers and returns the first error.
func (t *Tiered) Close() error {
	err := t.Local.Close()
	if t.Remote != nil {
		if rerr := t.Remote.Close(); err == nil {
			err = rerr
		}
	}
	return err
}

func (t *Tiered) fetchRemote(ctx context.Context, key string) ([]byte, bool) {
	if t.Remote == nil {
		return nil, false
	}
	data, ok, err := t.Remote.Get(ctx, key)
	if err != nil {
		t.remoteError("get", key, err)
		return nil, false
	}
	return data, ok
}

func (t *Tiered) remoteError(op, key string, err error) {
	if t.OnRemoteError != nil {
		t.OnRemoteError(op, key, err)
	}
}

// Ensure Tiered implements Store.
var _ Store = (*Tiered)(nil)
