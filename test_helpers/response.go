package test_helpers

import (
	"bytes"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/shardmux/go-shardmux"
)

// BuildResponse encodes key/value pairs into a response document. Keys
// must be strings; values are encoded as-is.
func BuildResponse(t *testing.T, pairs ...interface{}) *shardmux.Response {
	t.Helper()

	if len(pairs)%2 != 0 {
		t.Fatalf("BuildResponse needs key/value pairs, got %d arguments", len(pairs))
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.EncodeMapLen(len(pairs) / 2); err != nil {
		t.Fatalf("encode map len: %s", err)
	}
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			t.Fatalf("BuildResponse key %d is %T, not string", i/2, pairs[i])
		}
		if err := enc.EncodeString(key); err != nil {
			t.Fatalf("encode key %q: %s", key, err)
		}
		if err := enc.Encode(pairs[i+1]); err != nil {
			t.Fatalf("encode value for %q: %s", key, err)
		}
	}
	return shardmux.NewResponse(buf.Bytes())
}
