package stream

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"

	"github.com/wippyai/tide/either"
	"github.com/wippyai/tide/errors"
	"github.com/wippyai/tide/wire"
)

// maxPrealloc caps the capacity reserved from an untrusted length prefix.
const maxPrealloc = 1024

type optionalCodec[T any] struct {
	inner Codec[T]
}

// Optional writes a presence flag byte followed by the value when present.
func Optional[T any](c Codec[T]) Codec[*T] {
	return optionalCodec[T]{inner: c}
}

func (c optionalCodec[T]) Write(buf *wire.Buffer, v *T) error {
	buf.WriteBool(v != nil)
	if v == nil {
		return nil
	}
	return c.inner.Write(buf, *v)
}

func (c optionalCodec[T]) Read(buf *wire.Buffer) (*T, error) {
	present, err := buf.ReadBool()
	if err != nil || !present {
		return nil, err
	}
	v, err := c.inner.Read(buf)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

type listCodec[T any] struct {
	inner Codec[T]
}

// List writes a VarInt count followed by the items.
func List[T any](c Codec[T]) Codec[[]T] {
	return listCodec[T]{inner: c}
}

func (c listCodec[T]) Write(buf *wire.Buffer, v []T) error {
	buf.WriteVarInt(int32(len(v)))
	for i, item := range v {
		if err := c.inner.Write(buf, item); err != nil {
			return errors.WithPath(errors.PhaseEncode, err, fmt.Sprint(i))
		}
	}
	return nil
}

func (c listCodec[T]) Read(buf *wire.Buffer) ([]T, error) {
	size, err := readCount(buf, "list")
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, min(size, maxPrealloc))
	for i := 0; i < size; i++ {
		v, err := c.inner.Read(buf)
		if err != nil {
			return nil, errors.WithPath(errors.PhaseDecode, err, fmt.Sprint(i))
		}
		out = append(out, v)
	}
	return out, nil
}

func readCount(buf *wire.Buffer, what string) (int, error) {
	size, err := buf.ReadVarInt()
	if err != nil {
		return 0, err
	}
	if size < 0 {
		return 0, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Detail("%s length %d is smaller than 0", what, size).
			Build()
	}
	return int(size), nil
}

type mapCodec[K comparable, V any] struct {
	key   Codec[K]
	value Codec[V]
	cmp   func(a, b K) int
}

// Map writes a VarInt count followed by key, value pairs in map iteration
// order. When reading, a repeated key keeps the last value. Use OrderedMap
// when equal maps must produce equal bytes.
func Map[K comparable, V any](k Codec[K], v Codec[V]) Codec[map[K]V] {
	return mapCodec[K, V]{key: k, value: v}
}

// OrderedMap is like Map but writes entries sorted by key.
func OrderedMap[K cmp.Ordered, V any](k Codec[K], v Codec[V]) Codec[map[K]V] {
	return mapCodec[K, V]{key: k, value: v, cmp: cmp.Compare[K]}
}

func (c mapCodec[K, V]) Write(buf *wire.Buffer, m map[K]V) error {
	buf.WriteVarInt(int32(len(m)))
	keys := slices.Collect(maps.Keys(m))
	if c.cmp != nil {
		slices.SortFunc(keys, c.cmp)
	}
	for _, k := range keys {
		v := m[k]
		if err := c.key.Write(buf, k); err != nil {
			return errors.WithPath(errors.PhaseEncode, err, fmt.Sprint(k))
		}
		if err := c.value.Write(buf, v); err != nil {
			return errors.WithPath(errors.PhaseEncode, err, fmt.Sprint(k))
		}
	}
	return nil
}

func (c mapCodec[K, V]) Read(buf *wire.Buffer) (map[K]V, error) {
	size, err := readCount(buf, "map")
	if err != nil {
		return nil, err
	}
	out := make(map[K]V, min(size, maxPrealloc))
	for i := 0; i < size; i++ {
		k, err := c.key.Read(buf)
		if err != nil {
			return nil, errors.WithPath(errors.PhaseDecode, err, strconv.Itoa(i))
		}
		v, err := c.value.Read(buf)
		if err != nil {
			return nil, errors.WithPath(errors.PhaseDecode, err, fmt.Sprint(k))
		}
		out[k] = v
	}
	return out, nil
}

type transformCodec[T, S any] struct {
	inner Codec[T]
	to    func(T) (S, error)
	from  func(S) (T, error)
}

// Transform adapts inner to S. Read applies to, Write applies from.
func Transform[T, S any](inner Codec[T], to func(T) (S, error), from func(S) (T, error)) Codec[S] {
	return transformCodec[T, S]{inner: inner, to: to, from: from}
}

func (c transformCodec[T, S]) Write(buf *wire.Buffer, v S) error {
	x, err := c.from(v)
	if err != nil {
		return asPhase(errors.PhaseEncode, err)
	}
	return c.inner.Write(buf, x)
}

func (c transformCodec[T, S]) Read(buf *wire.Buffer) (S, error) {
	x, err := c.inner.Read(buf)
	if err != nil {
		var zero S
		return zero, err
	}
	v, err := c.to(x)
	if err != nil {
		var zero S
		return zero, asPhase(errors.PhaseDecode, err)
	}
	return v, nil
}

func asPhase(phase errors.Phase, err error) error {
	if errors.IsDecoding(err) || errors.IsEncoding(err) {
		return err
	}
	return errors.Wrap(phase, errors.KindInvalidData, err, "transform")
}

type defaultCodec[T any] struct {
	inner Codec[T]
	def   T
}

// Default writes through inner and reads def when inner fails. Bytes the
// failed read consumed are not given back.
func Default[T any](c Codec[T], def T) Codec[T] {
	return defaultCodec[T]{inner: c, def: def}
}

func (c defaultCodec[T]) Write(buf *wire.Buffer, v T) error {
	return c.inner.Write(buf, v)
}

func (c defaultCodec[T]) Read(buf *wire.Buffer) (T, error) {
	v, err := c.inner.Read(buf)
	if err != nil {
		Logger().Debug("read failed, using default", zap.Error(err))
		return c.def, nil
	}
	return v, nil
}

type enumCodec[E constraints.Integer] struct {
	names []string
}

// Enum writes the ordinal of E as a VarInt.
func Enum[E constraints.Integer](names ...string) Codec[E] {
	return enumCodec[E]{names: names}
}

func (c enumCodec[E]) Write(buf *wire.Buffer, v E) error {
	if int64(v) < 0 || int64(v) >= int64(len(c.names)) {
		return errors.InvalidEnum(errors.PhaseEncode, nil, v, fmt.Sprintf("%T", v))
	}
	buf.WriteVarInt(int32(v))
	return nil
}

func (c enumCodec[E]) Read(buf *wire.Buffer) (E, error) {
	i, err := buf.ReadVarInt()
	if err != nil {
		return 0, err
	}
	if i < 0 || int(i) >= len(c.names) {
		var zero E
		return 0, errors.InvalidEnum(errors.PhaseDecode, nil, i, fmt.Sprintf("%T", zero))
	}
	return E(i), nil
}

// EnumString writes the lower-cased constant name as a string. Names are
// matched case-insensitively when reading.
func EnumString[E constraints.Integer](names ...string) Codec[E] {
	return Transform(String,
		func(s string) (E, error) {
			for i, name := range names {
				if strings.EqualFold(name, s) {
					return E(i), nil
				}
			}
			var zero E
			return 0, errors.InvalidEnum(errors.PhaseDecode, nil, s, fmt.Sprintf("%T", zero))
		},
		func(v E) (string, error) {
			if int64(v) < 0 || int64(v) >= int64(len(names)) {
				return "", errors.InvalidEnum(errors.PhaseEncode, nil, v, fmt.Sprintf("%T", v))
			}
			return strings.ToLower(names[int(v)]), nil
		},
	)
}

type eitherCodec[L, R any] struct {
	left  Codec[L]
	right Codec[R]
}

// Either writes a bool flag, true for Right, followed by the value.
func Either[L, R any](left Codec[L], right Codec[R]) Codec[either.Either[L, R]] {
	return eitherCodec[L, R]{left: left, right: right}
}

func (c eitherCodec[L, R]) Write(buf *wire.Buffer, v either.Either[L, R]) error {
	buf.WriteBool(v.IsRight())
	if r, ok := v.Right(); ok {
		return c.right.Write(buf, r)
	}
	l, _ := v.Left()
	return c.left.Write(buf, l)
}

func (c eitherCodec[L, R]) Read(buf *wire.Buffer) (either.Either[L, R], error) {
	isRight, err := buf.ReadBool()
	if err != nil {
		return either.Either[L, R]{}, err
	}
	if isRight {
		r, err := c.right.Read(buf)
		if err != nil {
			return either.Either[L, R]{}, err
		}
		return either.Right[L](r), nil
	}
	l, err := c.left.Read(buf)
	if err != nil {
		return either.Either[L, R]{}, err
	}
	return either.Left[L, R](l), nil
}

// RecursiveCodec forwards to a codec that refers back to itself.
type RecursiveCodec[T any] struct {
	target Codec[T]
}

// Recursive builds a self-referential codec. The handle passed to factory
// must not be used before factory returns.
func Recursive[T any](factory func(self Codec[T]) Codec[T]) *RecursiveCodec[T] {
	r := &RecursiveCodec[T]{}
	r.target = factory(r)
	return r
}

func (c *RecursiveCodec[T]) Write(buf *wire.Buffer, v T) error {
	if c.target == nil {
		return errors.NotInitialized(errors.PhaseEncode, "recursive stream codec")
	}
	return c.target.Write(buf, v)
}

func (c *RecursiveCodec[T]) Read(buf *wire.Buffer) (T, error) {
	if c.target == nil {
		var zero T
		return zero, errors.NotInitialized(errors.PhaseDecode, "recursive stream codec")
	}
	return c.target.Read(buf)
}

type unionCodec[K comparable, T any] struct {
	key      Codec[K]
	keyOf    func(T) K
	variants map[K]Codec[T]
}

// Union writes the key of a value followed by its variant payload.
func Union[K comparable, T any](key Codec[K], keyOf func(T) K, variants map[K]Codec[T]) Codec[T] {
	return unionCodec[K, T]{key: key, keyOf: keyOf, variants: variants}
}

func (c unionCodec[K, T]) Write(buf *wire.Buffer, v T) error {
	k := c.keyOf(v)
	vc, ok := c.variants[k]
	if !ok {
		return errors.InvalidDiscriminant(errors.PhaseEncode, nil, k)
	}
	if err := c.key.Write(buf, k); err != nil {
		return err
	}
	return vc.Write(buf, v)
}

func (c unionCodec[K, T]) Read(buf *wire.Buffer) (T, error) {
	var zero T
	k, err := c.key.Read(buf)
	if err != nil {
		return zero, err
	}
	vc, ok := c.variants[k]
	if !ok {
		return zero, errors.InvalidDiscriminant(errors.PhaseDecode, nil, k)
	}
	return vc.Read(buf)
}

type variantCodec[T, V any] struct {
	inner Codec[V]
}

// Variant adapts c to the union interface type T.
func Variant[T, V any](c Codec[V]) Codec[T] {
	return variantCodec[T, V]{inner: c}
}

func (c variantCodec[T, V]) Write(buf *wire.Buffer, v T) error {
	x, ok := any(v).(V)
	if !ok {
		var want V
		return errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", v), fmt.Sprintf("%T", want))
	}
	return c.inner.Write(buf, x)
}

func (c variantCodec[T, V]) Read(buf *wire.Buffer) (T, error) {
	x, err := c.inner.Read(buf)
	if err != nil {
		var zero T
		return zero, err
	}
	v, ok := any(x).(T)
	if !ok {
		return v, errors.TypeMismatch(errors.PhaseDecode, nil, fmt.Sprintf("%T", x), "union")
	}
	return v, nil
}
