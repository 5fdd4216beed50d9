package shardmux_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	. "github.com/shardmux/go-shardmux"
)

func TestMetadata_IntegerField(t *testing.T) {
	tests := []struct {
		name   string
		value  interface{}
		want   int64
		wantOk bool
	}{
		{"int64", int64(1), 1, true},
		{"uint64", uint64(7), 7, true},
		{"int8", int8(-2), -2, true},
		{"uint16", uint16(300), 300, true},
		{"string", "1", 0, false},
		{"bool", true, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			md := Metadata{"configsvr": tc.value}
			got, ok := md.IntegerField("configsvr")
			assert.Equal(t, tc.wantOk, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	_, ok := Metadata{}.IntegerField("configsvr")
	assert.False(t, ok)
}

func TestMetadata_BoolishField(t *testing.T) {
	tests := []struct {
		name        string
		value       interface{}
		want        bool
		wantPresent bool
	}{
		{"true", true, true, true},
		{"false", false, false, true},
		{"one", int64(1), true, true},
		{"zero", uint64(0), false, true},
		{"float one", float64(1), true, true},
		{"float zero", float64(0), false, true},
		{"string", "ok", false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			md := Metadata{"ok": tc.value}
			got, present := md.BoolishField("ok")
			assert.Equal(t, tc.wantPresent, present)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMetadata_StringField(t *testing.T) {
	md := Metadata{"setName": "rs0", "configsvr": int64(1)}

	got, ok := md.StringField("setName")
	require.True(t, ok)
	assert.Equal(t, "rs0", got)

	_, ok = md.StringField("configsvr")
	assert.False(t, ok)
	_, ok = md.StringField("absent")
	assert.False(t, ok)
}

func TestMetadataBuilder_RoundTrip(t *testing.T) {
	var b MetadataBuilder
	b.Append("impersonatedUsers", []string{"alice@admin", "bob@test"}).
		Append("routerId", "3f1c").
		Append("retries", int64(2))
	require.Equal(t, 3, b.Len())

	var buf bytes.Buffer
	require.NoError(t, b.EncodeMsgpack(msgpack.NewEncoder(&buf)))

	dec := msgpack.NewDecoder(&buf)
	dec.UseLooseInterfaceDecoding(true)
	md, err := DecodeMetadata(dec)
	require.NoError(t, err)

	users, ok := md["impersonatedUsers"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"alice@admin", "bob@test"}, users)

	routerID, ok := md.StringField("routerId")
	require.True(t, ok)
	assert.Equal(t, "3f1c", routerID)

	retries, ok := md.IntegerField("retries")
	require.True(t, ok)
	assert.EqualValues(t, 2, retries)
}

func TestProbeRequest_Body(t *testing.T) {
	req := NewProbeRequest()
	assert.Equal(t, "ismaster", req.Command())

	var buf bytes.Buffer
	require.NoError(t, req.Body(msgpack.NewEncoder(&buf)))

	dec := msgpack.NewDecoder(&buf)
	dec.UseLooseInterfaceDecoding(true)
	doc, err := DecodeMetadata(dec)
	require.NoError(t, err)

	v, ok := doc.IntegerField("ismaster")
	require.True(t, ok)
	assert.EqualValues(t, 1, v)
	assert.Len(t, doc, 1)
}

func TestResponse_DecodeIsCached(t *testing.T) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	require.NoError(t, enc.EncodeMapLen(1))
	require.NoError(t, enc.EncodeString("ok"))
	require.NoError(t, enc.EncodeInt(1))

	resp := NewResponse(buf.Bytes())
	first, err := resp.Decode()
	require.NoError(t, err)
	second, err := resp.Decode()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResponse_DecodeMalformed(t *testing.T) {
	resp := NewResponse([]byte{0xc1})
	_, err := resp.Decode()
	assert.Error(t, err)
}
