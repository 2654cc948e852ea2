package reducer

import (
	"github.com/EnvSync-Cloud/envsync/internal/payload"
	"github.com/EnvSync-Cloud/envsync/internal/pit"
)

// ChangeEntry mirrors pit.ChangeEntry at the reducer boundary, keeping
// callers decoupled from the internal pit package's types.
type ChangeEntry struct {
	Key       string
	Value     string
	Operation string
}

func toPitChanges(changes []ChangeEntry) []pit.ChangeEntry {
	out := make([]pit.ChangeEntry, len(changes))
	for i, c := range changes {
		out[i] = pit.ChangeEntry{Key: c.Key, Value: c.Value, Operation: c.Operation}
	}
	return out
}

func toPayloadKVs(state []pit.KV) []payload.KV {
	out := make([]payload.KV, len(state))
	for i, kv := range state {
		out[i] = payload.KV{Key: kv.Key, Value: kv.Value}
	}
	return out
}
