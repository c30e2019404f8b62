package common

import (
	"bytes"
	"encoding/json"
)

type Serializable interface {
	Serialize() ([]byte, error)
}

func EncodeJSONValue(v interface{}) (b []byte, err error) {
	if b, err = json.Marshal(v); err != nil {
		return
	}

	return
}

func DecodeJSONValue(b []byte, v interface{}) (err error) {
	if err = json.Unmarshal(b, v); err != nil {
		return
	}
	return
}

func MustJSONMarshal(o interface{}) []byte {
	b, _ := EncodeJSONValue(o)
	return b
}

func JSONMarshalWithoutEscapeHTML(o interface{}) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(o); err != nil {
		return nil, err
	}

	return bytes.TrimRight(b.Bytes(), "\n"), nil
}
