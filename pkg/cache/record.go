package cache

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/mermaid-filter/pkg/errors"
)

// record is the stored form of an entry in a shared tier. It carries its
// own key and content hash so a truncated or misplaced value is rejected
// instead of being copied into the local store.
type record struct {
	Key  string `msgpack:"k"`
	Hash string `msgpack:"h"`
	Data []byte `msgpack:"d"`
}

func encodeRecord(key string, data []byte) ([]byte, error) {
	raw, err := msgpack.Marshal(&record{Key: key, Hash: Hash(data), Data: data})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCache, err, "encode %s", key)
	}
	return raw, nil
}

func decodeRecord(key string, raw []byte) ([]byte, error) {
	var r record
	if err := msgpack.Unmarshal(raw, &r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCache, err, "decode %s", key)
	}
	if r.Key != key {
		return nil, errors.New(errors.ErrCodeCache, "entry %s holds %s", key, r.Key)
	}
	if Hash(r.Data) != r.Hash {
		return nil, errors.New(errors.ErrCodeCache, "entry %s is corrupt", key)
	}
	return r.Data, nil
}
