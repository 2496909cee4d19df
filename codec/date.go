package codec

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

// DateStrategy selects how [time.Time] values are represented in JSON.
type DateStrategy int

const (
	// DateISO8601 renders dates as RFC 3339 strings in UTC with whole
	// seconds, e.g. "2019-01-18T12:10:28Z". Fractional seconds are accepted
	// when decoding.
	DateISO8601 DateStrategy = iota
	// DateSecondsSince1970 renders dates as a JSON number of seconds since
	// the Unix epoch.
	DateSecondsSince1970
	// DateMillisecondsSince1970 renders dates as a JSON number of
	// milliseconds since the Unix epoch.
	DateMillisecondsSince1970

	numStrategies
)

// String implements fmt.Stringer.
func (s DateStrategy) String() string {
	switch s {
	case DateISO8601:
		return "iso8601"
	case DateSecondsSince1970:
		return "seconds_since_1970"
	case DateMillisecondsSince1970:
		return "milliseconds_since_1970"
	default:
		return "unknown(" + strconv.Itoa(int(s)) + ")"
	}
}

func (s DateStrategy) orDefault() DateStrategy {
	if s < 0 || s >= numStrategies {
		return DateISO8601
	}

	return s
}

var (
	timeType    = reflect.TypeFor[time.Time]()
	timePtrType = reflect.PointerTo(timeType)
)

// dateExtension swaps the encoder and decoder jsoniter would pick for
// time.Time and *time.Time with ones honoring strategy. Without the pointer
// case jsoniter would fall back to (*time.Time).MarshalJSON.
type dateExtension struct {
	jsoniter.DummyExtension
	strategy DateStrategy
}

func (e *dateExtension) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	switch typ.Type1() {
	case timeType:
		return dateCoder{strategy: e.strategy}
	case timePtrType:
		return datePtrCoder{dateCoder{strategy: e.strategy}}
	}

	return nil
}

func (e *dateExtension) CreateDecoder(typ reflect2.Type) jsoniter.ValDecoder {
	switch typ.Type1() {
	case timeType:
		return dateCoder{strategy: e.strategy}
	case timePtrType:
		return datePtrCoder{dateCoder{strategy: e.strategy}}
	}

	return nil
}

type dateCoder struct {
	strategy DateStrategy
}

// IsEmpty mirrors encoding/json, which never omits struct values.
func (dateCoder) IsEmpty(unsafe.Pointer) bool {
	return false
}

func (d dateCoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	t := *(*time.Time)(ptr)

	switch d.strategy {
	case DateSecondsSince1970:
		stream.WriteFloat64(float64(t.Unix()) + float64(t.Nanosecond())/1e9)
	case DateMillisecondsSince1970:
		stream.WriteFloat64(float64(t.Unix())*1e3 + float64(t.Nanosecond())/1e6)
	default:
		stream.WriteString(t.UTC().Format(time.RFC3339))
	}
}

func (d dateCoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	if iter.ReadNil() {
		return
	}

	switch d.strategy {
	case DateSecondsSince1970:
		*(*time.Time)(ptr) = fromEpoch(iter.ReadFloat64())
	case DateMillisecondsSince1970:
		*(*time.Time)(ptr) = fromEpoch(iter.ReadFloat64() / 1e3)
	default:
		raw := iter.ReadString()
		if iter.Error != nil {
			return
		}

		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			iter.ReportError("decode date", fmt.Sprintf("expected ISO 8601 date, got %q", raw))
			return
		}
		*(*time.Time)(ptr) = t
	}
}

// datePtrCoder handles *time.Time. A nil pointer encodes as null and counts
// as empty for omitempty.
type datePtrCoder struct {
	elem dateCoder
}

func (d datePtrCoder) IsEmpty(ptr unsafe.Pointer) bool {
	return *(**time.Time)(ptr) == nil
}

func (d datePtrCoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	t := *(**time.Time)(ptr)
	if t == nil {
		stream.WriteNil()
		return
	}

	d.elem.Encode(unsafe.Pointer(t), stream)
}

func (d datePtrCoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	if iter.ReadNil() {
		*(**time.Time)(ptr) = nil
		return
	}

	t := new(time.Time)
	d.elem.Decode(unsafe.Pointer(t), iter)
	if iter.Error != nil {
		return
	}
	*(**time.Time)(ptr) = t
}

// fromEpoch converts seconds since the Unix epoch into a UTC time.
func fromEpoch(secs float64) time.Time {
	whole, frac := math.Modf(secs)

	return time.Unix(int64(whole), int64(math.Round(frac*1e9))).UTC()
}
