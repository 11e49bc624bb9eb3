package memo

import (
	"encoding/binary"
	"math"
	"reflect"
	"regexp"

	"github.com/cespare/xxhash/v2"
)

// keyHash buckets an invocation key. Values that are Equal always hash
// the same; values that are not may still collide.
func keyHash(recv, args any) uint64 {
	d := xxhash.New()
	writeValue(d, recv)
	writeValue(d, args)
	return d.Sum64()
}

func writeUint(d *xxhash.Digest, u uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], u)
	_, _ = d.Write(buf[:])
}

func writeValue(d *xxhash.Digest, v any) {
	v = unwrap(v)
	k := kindOf(v)
	_, _ = d.Write([]byte{byte(k)})

	switch k {
	case kindNil:
	case kindPlain:
		rv := reflect.ValueOf(v)
		_, _ = d.WriteString(rv.Type().String())
		writeUint(d, uint64(rv.Pointer()))
	case kindRegexp:
		if re := v.(*regexp.Regexp); re != nil {
			_, _ = d.WriteString(re.String())
		}
	case kindSequence:
		s := seqOf(v)
		writeUint(d, uint64(s.Len()))
		for i := 0; i < s.Len(); i++ {
			writeValue(d, s.At(i))
		}
	default:
		writePrimitive(d, reflect.ValueOf(v))
	}
}

// nanBits is written for every NaN so all NaNs land in one bucket.
const nanBits = 0x7ff8000000000001

func writeFloat(d *xxhash.Digest, f float64) {
	if math.IsNaN(f) {
		writeUint(d, nanBits)
		return
	}
	writeUint(d, math.Float64bits(f))
}

func writePrimitive(d *xxhash.Digest, rv reflect.Value) {
	_, _ = d.WriteString(rv.Type().String())
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			writeUint(d, 1)
		} else {
			writeUint(d, 0)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		writeUint(d, uint64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		writeUint(d, rv.Uint())
	case reflect.Float32, reflect.Float64:
		writeFloat(d, rv.Float())
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		writeFloat(d, real(c))
		writeFloat(d, imag(c))
	case reflect.String:
		_, _ = d.WriteString(rv.String())
	}
	// structs and other composites hash by type alone
}
