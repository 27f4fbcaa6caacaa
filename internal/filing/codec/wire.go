package codec

import (
	"fmt"
	"time"
	"unicode/utf8"

	e "github.com/gartstein/efiling/internal/filing/errors"
	"github.com/gartstein/efiling/internal/filing/models"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var deterministic = proto.MarshalOptions{Deterministic: true}

// encoder appends protobuf wire data. Scalar fields holding their zero value
// are omitted.
type encoder struct {
	b []byte
}

func (w *encoder) str(num protowire.Number, s string) {
	if s == "" {
		return
	}
	w.b = protowire.AppendTag(w.b, num, protowire.BytesType)
	w.b = protowire.AppendString(w.b, s)
}

func (w *encoder) bytes(num protowire.Number, v []byte) {
	if len(v) == 0 {
		return
	}
	w.b = protowire.AppendTag(w.b, num, protowire.BytesType)
	w.b = protowire.AppendBytes(w.b, v)
}

func (w *encoder) boolean(num protowire.Number, v bool) {
	if !v {
		return
	}
	w.b = protowire.AppendTag(w.b, num, protowire.VarintType)
	w.b = protowire.AppendVarint(w.b, 1)
}

func (w *encoder) int64(num protowire.Number, v int64) {
	if v == 0 {
		return
	}
	w.b = protowire.AppendTag(w.b, num, protowire.VarintType)
	w.b = protowire.AppendVarint(w.b, uint64(v))
}

func (w *encoder) enum(num protowire.Number, v int32) {
	w.int64(num, int64(v))
}

// strings writes every element, empty ones included, so positions survive.
func (w *encoder) strings(num protowire.Number, vs []string) {
	for _, s := range vs {
		w.b = protowire.AppendTag(w.b, num, protowire.BytesType)
		w.b = protowire.AppendString(w.b, s)
	}
}

// time writes t as a google.protobuf.Timestamp.
func (w *encoder) time(num protowire.Number, t time.Time) error {
	if t.IsZero() {
		return nil
	}
	b, err := deterministic.Marshal(timestamppb.New(t))
	if err != nil {
		return err
	}
	w.b = protowire.AppendTag(w.b, num, protowire.BytesType)
	w.b = protowire.AppendBytes(w.b, b)
	return nil
}

// raw appends fields carried over from a decode.
func (w *encoder) raw(b []byte) {
	w.b = append(w.b, b...)
}

func (w *encoder) message(num protowire.Number, body []byte) {
	w.b = protowire.AppendTag(w.b, num, protowire.BytesType)
	w.b = protowire.AppendBytes(w.b, body)
}

// embed writes a value sub-message, omitted when it encodes to nothing.
func embed[T any](w *encoder, num protowire.Number, v *T, enc func(*encoder, *T) error) error {
	var body encoder
	if err := enc(&body, v); err != nil {
		return err
	}
	if len(body.b) > 0 {
		w.message(num, body.b)
	}
	return nil
}

// ptr writes a sub-message whenever v is set, even if it is empty.
func ptr[T any](w *encoder, num protowire.Number, v *T, enc func(*encoder, *T) error) error {
	if v == nil {
		return nil
	}
	var body encoder
	if err := enc(&body, v); err != nil {
		return err
	}
	w.message(num, body.b)
	return nil
}

// each writes one sub-message per element.
func each[T any](w *encoder, num protowire.Number, vs []T, enc func(*encoder, *T) error) error {
	for i := range vs {
		var body encoder
		if err := enc(&body, &vs[i]); err != nil {
			return err
		}
		w.message(num, body.b)
	}
	return nil
}

func enums[T ~int32](w *encoder, num protowire.Number, vs []T) {
	for _, v := range vs {
		w.b = protowire.AppendTag(w.b, num, protowire.VarintType)
		w.b = protowire.AppendVarint(w.b, uint64(int64(v)))
	}
}

// field is one decoded tag and value, positioned in the message at path.
type field struct {
	num  protowire.Number
	typ  protowire.Type
	v    uint64
	b    []byte
	path string
}

// walk calls fn for every field of the message in b. Fields fn does not
// claim are returned verbatim, in order, as the message's unknown fields.
func walk(b []byte, path string, fn func(*field) (bool, error)) ([]byte, error) {
	var unknown []byte
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, &e.DecodeError{Path: path, Err: protowire.ParseError(n)}
		}
		m := protowire.ConsumeFieldValue(num, typ, b[n:])
		if m < 0 {
			return nil, &e.DecodeError{Path: path, Err: protowire.ParseError(m)}
		}
		f := field{num: num, typ: typ, path: path}
		switch typ {
		case protowire.VarintType:
			f.v, _ = protowire.ConsumeVarint(b[n:])
		case protowire.BytesType:
			f.b, _ = protowire.ConsumeBytes(b[n:])
		}
		known, err := fn(&f)
		if err != nil {
			return nil, err
		}
		if !known {
			unknown = append(unknown, b[:n+m]...)
		}
		b = b[n+m:]
	}
	return unknown, nil
}

func (f *field) at(name string) string { return models.JoinPath(f.path, name) }

func (f *field) fail(name string, err error) error {
	return &e.DecodeError{Path: f.at(name), Err: err}
}

func (f *field) want(name string, typ protowire.Type) error {
	if f.typ != typ {
		return f.fail(name, fmt.Errorf("field %d has wire type %d, want %d", f.num, f.typ, typ))
	}
	return nil
}

func (f *field) str(name string, dst *string) error {
	if err := f.want(name, protowire.BytesType); err != nil {
		return err
	}
	if !utf8.Valid(f.b) {
		return f.fail(name, fmt.Errorf("invalid UTF-8"))
	}
	*dst = string(f.b)
	return nil
}

func (f *field) appendStr(name string, dst *[]string) error {
	var s string
	if err := f.str(fmt.Sprintf("%s.%d", name, len(*dst)), &s); err != nil {
		return err
	}
	*dst = append(*dst, s)
	return nil
}

func (f *field) bytes(name string, dst *[]byte) error {
	if err := f.want(name, protowire.BytesType); err != nil {
		return err
	}
	*dst = append([]byte(nil), f.b...)
	return nil
}

func (f *field) boolean(name string, dst *bool) error {
	if err := f.want(name, protowire.VarintType); err != nil {
		return err
	}
	*dst = f.v != 0
	return nil
}

func (f *field) int64(name string, dst *int64) error {
	if err := f.want(name, protowire.VarintType); err != nil {
		return err
	}
	*dst = int64(f.v)
	return nil
}

func (f *field) amount(name string, dst *models.Amount) error {
	var v int64
	if err := f.int64(name, &v); err != nil {
		return err
	}
	*dst = models.Amount(v)
	return nil
}

func (f *field) time(name string, dst *time.Time) error {
	if err := f.want(name, protowire.BytesType); err != nil {
		return err
	}
	var ts timestamppb.Timestamp
	if err := proto.Unmarshal(f.b, &ts); err != nil {
		return f.fail(name, err)
	}
	if err := ts.CheckValid(); err != nil {
		return f.fail(name, err)
	}
	*dst = ts.AsTime()
	return nil
}

func enum[T ~int32](f *field, name string, dst *T) error {
	if err := f.want(name, protowire.VarintType); err != nil {
		return err
	}
	*dst = T(int32(f.v))
	return nil
}

// appendEnums accepts both packed and unpacked repeated enums.
func appendEnums[T ~int32](f *field, name string, dst *[]T) error {
	switch f.typ {
	case protowire.VarintType:
		*dst = append(*dst, T(int32(f.v)))
		return nil
	case protowire.BytesType:
		b := f.b
		for len(b) > 0 {
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return f.fail(name, protowire.ParseError(n))
			}
			*dst = append(*dst, T(int32(v)))
			b = b[n:]
		}
		return nil
	}
	return f.want(name, protowire.VarintType)
}

func sub[T any](f *field, name string, dec func([]byte, string) (T, error), dst *T) error {
	if err := f.want(name, protowire.BytesType); err != nil {
		return err
	}
	v, err := dec(f.b, f.at(name))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func subPtr[T any](f *field, name string, dec func([]byte, string) (T, error), dst **T) error {
	var v T
	if err := sub(f, name, dec, &v); err != nil {
		return err
	}
	*dst = &v
	return nil
}

func appendSub[T any](f *field, name string, dec func([]byte, string) (T, error), dst *[]T) error {
	var v T
	if err := sub(f, fmt.Sprintf("%s.%d", name, len(*dst)), dec, &v); err != nil {
		return err
	}
	*dst = append(*dst, v)
	return nil
}
