package codec

import (
	"errors"
	"fmt"
	"sync/atomic"

	jsoniter "github.com/json-iterator/go"
)

var (
	// ErrEncode is wrapped by every failure returned from [Codec.Encode].
	ErrEncode = errors.New("codec encode")
	// ErrDecode is wrapped by every failure returned from [Codec.Decode].
	ErrDecode = errors.New("codec decode")
)

// Settings holds the encode and decode configuration of a [Codec].
type Settings struct {
	EncodeDates DateStrategy
	DecodeDates DateStrategy
}

// Codec encodes and decodes JSON according to its [Settings].
// Settings are read once at the start of every Encode or Decode, so an
// in-flight call is never affected by a later Set call. Ordering between
// concurrent Set calls and outstanding calls is left to the caller.
type Codec struct {
	encodeDates atomic.Int32
	decodeDates atomic.Int32
}

// New returns a Codec configured with s.
func New(s Settings) *Codec {
	var c Codec
	c.SetEncodeDates(s.EncodeDates)
	c.SetDecodeDates(s.DecodeDates)

	return &c
}

// Settings returns a snapshot of the current configuration.
func (c *Codec) Settings() Settings {
	return Settings{
		EncodeDates: DateStrategy(c.encodeDates.Load()),
		DecodeDates: DateStrategy(c.decodeDates.Load()),
	}
}

// SetEncodeDates changes how dates are rendered by subsequent Encode calls.
// Unknown strategies fall back to [DateISO8601].
func (c *Codec) SetEncodeDates(s DateStrategy) {
	c.encodeDates.Store(int32(s.orDefault()))
}

// SetDecodeDates changes how dates are parsed by subsequent Decode calls.
// Unknown strategies fall back to [DateISO8601].
func (c *Codec) SetDecodeDates(s DateStrategy) {
	c.decodeDates.Store(int32(s.orDefault()))
}

// Encode renders v as JSON.
func (c *Codec) Encode(v any) ([]byte, error) {
	api := apiFor(DateStrategy(c.encodeDates.Load()))

	b, err := api.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %T: %w", ErrEncode, v, err)
	}

	return b, nil
}

// Decode parses data into v, which must be a non-nil pointer.
func (c *Codec) Decode(data []byte, v any) error {
	api := apiFor(DateStrategy(c.decodeDates.Load()))

	if err := api.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %T: %w", ErrDecode, v, err)
	}

	return nil
}

// apis holds one frozen jsoniter configuration per date strategy.
// Extensions registered on a frozen config stay scoped to it.
var apis = func() [numStrategies]jsoniter.API {
	var out [numStrategies]jsoniter.API
	for i := range out {
		api := jsoniter.Config{
			EscapeHTML:             true,
			SortMapKeys:            true,
			ValidateJsonRawMessage: true,
		}.Froze()
		api.RegisterExtension(&dateExtension{strategy: DateStrategy(i)})
		out[i] = api
	}

	return out
}()

func apiFor(s DateStrategy) jsoniter.API {
	return apis[s.orDefault()]
}
