package caster

import "encoding/json"

// Caster converts between a value and its wire text.
type Caster[T any] interface {
	From(string) (T, error)
	To(T) (string, error)
}

type JSONCaster[T any] struct {
	Indent string
}

func (jc JSONCaster[T]) From(data string) (T, error) {
	var v T
	err := json.Unmarshal([]byte(data), &v)
	return v, err
}

func (jc JSONCaster[T]) To(v T) (string, error) {
	if jc.Indent != "" {
		data, err := json.MarshalIndent(v, "", jc.Indent)
		return string(data), err
	}
	data, err := json.Marshal(v)
	return string(data), err
}
