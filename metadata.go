package shardmux

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Metadata is a decoded metadata document, as carried alongside commands
// and responses on the wire.
type Metadata map[string]interface{}

// Has reports whether the document contains key at all, regardless of the
// value's type.
func (md Metadata) Has(key string) bool {
	_, ok := md[key]
	return ok
}

// IntegerField extracts an integer-typed field. The second return value is
// false when the field is absent or is not an integer.
func (md Metadata) IntegerField(key string) (int64, bool) {
	v, ok := md[key]
	if !ok {
		return 0, false
	}
	switch num := v.(type) {
	case int64:
		return num, true
	case uint64:
		return int64(num), true
	case int:
		return int64(num), true
	case int8:
		return int64(num), true
	case int16:
		return int64(num), true
	case int32:
		return int64(num), true
	case uint8:
		return int64(num), true
	case uint16:
		return int64(num), true
	case uint32:
		return int64(num), true
	default:
		return 0, false
	}
}

// StringField extracts a string-typed field. The second return value is
// false when the field is absent or is not a string.
func (md Metadata) StringField(key string) (string, bool) {
	v, ok := md[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// BoolishField extracts a field under command-status truth rules: booleans
// count as themselves, numbers count as true when non-zero. The second
// return value is false when the field is absent or of any other type.
func (md Metadata) BoolishField(key string) (bool, bool) {
	v, ok := md[key]
	if !ok {
		return false, false
	}
	switch val := v.(type) {
	case bool:
		return val, true
	case float64:
		return val != 0, true
	case float32:
		return val != 0, true
	default:
		if num, isInt := md.IntegerField(key); isInt {
			return num != 0, true
		}
		return false, false
	}
}

type metadataField struct {
	key   string
	value interface{}
}

// MetadataBuilder accumulates fields of an outgoing metadata envelope in
// append order. The zero value is an empty builder ready for use.
type MetadataBuilder struct {
	fields []metadataField
}

// Append adds a field to the envelope. Keys are not deduplicated; the
// writer callbacks are expected to each own a disjoint set of keys.
func (b *MetadataBuilder) Append(key string, value interface{}) *MetadataBuilder {
	b.fields = append(b.fields, metadataField{key: key, value: value})
	return b
}

// Len returns the number of appended fields.
func (b *MetadataBuilder) Len() int {
	return len(b.fields)
}

// Document returns the accumulated fields as a Metadata document.
func (b *MetadataBuilder) Document() Metadata {
	md := make(Metadata, len(b.fields))
	for _, f := range b.fields {
		md[f.key] = f.value
	}
	return md
}

// EncodeMsgpack fills an encoder with the envelope document.
func (b *MetadataBuilder) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(len(b.fields)); err != nil {
		return err
	}
	for _, f := range b.fields {
		if err := enc.EncodeString(f.key); err != nil {
			return err
		}
		if err := enc.Encode(f.value); err != nil {
			return err
		}
	}
	return nil
}

func newDecoder(r io.Reader) *msgpack.Decoder {
	dec := msgpack.NewDecoder(r)
	dec.SetMapDecoder(func(dec *msgpack.Decoder) (interface{}, error) {
		return dec.DecodeMap()
	})
	dec.UseLooseInterfaceDecoding(true)
	return dec
}

// DecodeMetadata decodes one metadata document from the decoder.
func DecodeMetadata(dec *msgpack.Decoder) (Metadata, error) {
	doc, err := dec.DecodeMap()
	if err != nil {
		return nil, err
	}
	return Metadata(doc), nil
}
