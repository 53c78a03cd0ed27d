package yjqy

import (
	"bytes"
	"encoding/json"
	"yjqy-scraper/internal/components/assert"
)

// TitleKey is the synthetic field holding a section title row.
const TitleKey = "TITLE"

type Field struct {
	Key   string
	Value string
}

// Record is an insertion-ordered mapping of field label to value.
// Overwriting a key keeps its original position.
type Record struct {
	keys   []string
	values map[string]string
}

func NewRecord() *Record {
	return &Record{values: map[string]string{}}
}

func (r *Record) Set(key, value string) {
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	assert.True(len(r.keys) == len(r.values), "record keys out of sync with values")
}

func (r *Record) Get(key string) (string, bool) {
	value, ok := r.values[key]
	return value, ok
}

func (r *Record) Len() int {
	return len(r.keys)
}

func (r *Record) Fields() []Field {
	fields := make([]Field, len(r.keys))
	for i, k := range r.keys {
		fields[i] = Field{Key: k, Value: r.values[k]}
	}
	return fields
}

// MarshalJSON writes the record as a json object in insertion order, html
// characters are left unescaped.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buff bytes.Buffer
	buff.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buff.WriteByte(',')
		}
		err := writeString(&buff, k)
		if err != nil {
			return nil, err
		}
		buff.WriteByte(':')
		err = writeString(&buff, r.values[k])
		if err != nil {
			return nil, err
		}
	}
	buff.WriteByte('}')
	return buff.Bytes(), nil
}

func writeString(buff *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buff)
	enc.SetEscapeHTML(false)
	err := enc.Encode(s)
	if err != nil {
		return err
	}
	// Encode always terminates with a newline
	buff.Truncate(buff.Len() - 1)
	return nil
}

// ResultSet is every record extracted for one (school, query), in document order.
type ResultSet []*Record
