// Package optional distingue um campo ausente de um campo enviado como
// null ou com valor zero em payloads JSON.
package optional

import "encoding/json"

type Value[T any] struct {
	v       T
	present bool
	null    bool
}

func Of[T any](v T) Value[T] {
	return Value[T]{v: v, present: true}
}

func Null[T any]() Value[T] {
	return Value[T]{present: true, null: true}
}

// Present informa se o campo apareceu no payload, mesmo como null.
func (o Value[T]) Present() bool { return o.present }

func (o Value[T]) IsNull() bool { return o.present && o.null }

// Get devolve o valor quando presente e não nulo.
func (o Value[T]) Get() (T, bool) {
	return o.v, o.present && !o.null
}

// Ptr devolve nil para ausente ou null.
func (o Value[T]) Ptr() *T {
	if !o.present || o.null {
		return nil
	}
	v := o.v
	return &v
}

func (o Value[T]) Map(fn func(T) T) Value[T] {
	if o.present && !o.null {
		o.v = fn(o.v)
	}
	return o
}

func (o *Value[T]) UnmarshalJSON(b []byte) error {
	o.present = true
	if string(b) == "null" {
		var zero T
		o.v = zero
		o.null = true
		return nil
	}
	o.null = false
	return json.Unmarshal(b, &o.v)
}

func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.present || o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}
