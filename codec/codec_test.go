package codec_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/adamwoolhether/jsonapi/codec"
	"github.com/google/go-cmp/cmp"
)

type post struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

type optionalDate struct {
	Name string     `json:"name"`
	Date *time.Time `json:"date,omitempty"`
}

var epoch = time.Unix(1547813428, 0).UTC()

func TestCodec_EncodeDates(t *testing.T) {
	tests := []struct {
		name     string
		strategy codec.DateStrategy
		exp      string
	}{
		{"default iso8601", codec.DateISO8601, `{"name":"Test","date":"2019-01-18T12:10:28Z"}`},
		{"seconds", codec.DateSecondsSince1970, `{"name":"Test","date":1547813428}`},
		{"milliseconds", codec.DateMillisecondsSince1970, `{"name":"Test","date":1547813428000}`},
		{"unknown falls back", codec.DateStrategy(42), `{"name":"Test","date":"2019-01-18T12:10:28Z"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := codec.New(codec.Settings{EncodeDates: tt.strategy})

			b, err := c.Encode(post{Name: "Test", Date: epoch})
			if err != nil {
				t.Fatalf("encode: %v", err)
			}

			if diff := cmp.Diff(tt.exp, string(b)); diff != "" {
				t.Errorf("encoded mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCodec_EncodeLocalDateRendersUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	c := codec.New(codec.Settings{})

	b, err := c.Encode(post{Name: "Test", Date: epoch.In(loc)})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if exp := `{"name":"Test","date":"2019-01-18T12:10:28Z"}`; string(b) != exp {
		t.Errorf("got %s, want %s", b, exp)
	}
}

func TestCodec_DecodeDates(t *testing.T) {
	tests := []struct {
		name     string
		strategy codec.DateStrategy
		body     string
		exp      time.Time
	}{
		{"iso8601", codec.DateISO8601, `{"name":"Test","date":"2019-01-18T12:10:28Z"}`, epoch},
		{"iso8601 fractional", codec.DateISO8601, `{"name":"Test","date":"2019-01-18T12:10:28.5Z"}`, epoch.Add(500 * time.Millisecond)},
		{"iso8601 offset", codec.DateISO8601, `{"name":"Test","date":"2019-01-18T14:10:28+02:00"}`, epoch},
		{"seconds", codec.DateSecondsSince1970, `{"name":"Test","date":1547813428}`, epoch},
		{"seconds fractional", codec.DateSecondsSince1970, `{"name":"Test","date":1547813428.25}`, epoch.Add(250 * time.Millisecond)},
		{"milliseconds", codec.DateMillisecondsSince1970, `{"name":"Test","date":1547813428000}`, epoch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := codec.New(codec.Settings{DecodeDates: tt.strategy})

			var got post
			if err := c.Decode([]byte(tt.body), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}

			if got.Name != "Test" {
				t.Errorf("name = %q, want %q", got.Name, "Test")
			}
			if !got.Date.Equal(tt.exp) {
				t.Errorf("date = %v, want %v", got.Date, tt.exp)
			}
		})
	}
}

func TestCodec_DecodeDateMismatch(t *testing.T) {
	tests := []struct {
		name     string
		strategy codec.DateStrategy
		body     string
	}{
		{"number for iso8601", codec.DateISO8601, `{"date":1547813428}`},
		{"garbage string", codec.DateISO8601, `{"date":"yesterday"}`},
		{"string for seconds", codec.DateSecondsSince1970, `{"date":"2019-01-18T12:10:28Z"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := codec.New(codec.Settings{DecodeDates: tt.strategy})

			var got post
			err := c.Decode([]byte(tt.body), &got)
			if !errors.Is(err, codec.ErrDecode) {
				t.Fatalf("expected ErrDecode, got %v", err)
			}
		})
	}
}

func TestCodec_PointerDates(t *testing.T) {
	c := codec.New(codec.Settings{EncodeDates: codec.DateSecondsSince1970, DecodeDates: codec.DateSecondsSince1970})

	b, err := c.Encode(optionalDate{Name: "none"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if exp := `{"name":"none"}`; string(b) != exp {
		t.Errorf("got %s, want %s", b, exp)
	}

	d := epoch
	b, err = c.Encode(optionalDate{Name: "some", Date: &d})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if exp := `{"name":"some","date":1547813428}`; string(b) != exp {
		t.Errorf("got %s, want %s", b, exp)
	}

	var got optionalDate
	if err := c.Decode([]byte(`{"name":"null","date":null}`), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Date != nil {
		t.Errorf("expected nil date, got %v", got.Date)
	}

	got = optionalDate{}
	if err := c.Decode([]byte(`{"name":"some","date":1547813428}`), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Date == nil || !got.Date.Equal(epoch) {
		t.Errorf("date = %v, want %v", got.Date, epoch)
	}
}

func TestCodec_PointerDatesFollowStrategy(t *testing.T) {
	// Fractional seconds in a non-UTC zone must still render as UTC whole seconds.
	local := epoch.Add(250 * time.Millisecond).In(time.FixedZone("UTC+2", 2*60*60))

	type pair struct {
		At  time.Time  `json:"at"`
		Ptr *time.Time `json:"ptr"`
	}

	tests := []struct {
		name     string
		strategy codec.DateStrategy
		exp      string
	}{
		{"iso8601", codec.DateISO8601, `{"at":"2019-01-18T12:10:28Z","ptr":"2019-01-18T12:10:28Z"}`},
		{"seconds", codec.DateSecondsSince1970, `{"at":1547813428.25,"ptr":1547813428.25}`},
		{"milliseconds", codec.DateMillisecondsSince1970, `{"at":1547813428250,"ptr":1547813428250}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := codec.New(codec.Settings{EncodeDates: tt.strategy})

			b, err := c.Encode(pair{At: local, Ptr: &local})
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if string(b) != tt.exp {
				t.Errorf("got %s, want %s", b, tt.exp)
			}
		})
	}

	t.Run("nil without omitempty", func(t *testing.T) {
		b, err := codec.New(codec.Settings{}).Encode(pair{At: epoch})
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if exp := `{"at":"2019-01-18T12:10:28Z","ptr":null}`; string(b) != exp {
			t.Errorf("got %s, want %s", b, exp)
		}
	})
}

func TestCodec_DateStrategyOnlyTouchesDates(t *testing.T) {
	type record struct {
		ID      int               `json:"id"`
		Tags    []string          `json:"tags"`
		Meta    map[string]string `json:"meta"`
		Created time.Time         `json:"created"`
		Skip    string            `json:"-"`
	}

	in := record{ID: 7, Tags: []string{"a", "b"}, Meta: map[string]string{"z": "1", "a": "2"}, Created: epoch, Skip: "x"}

	iso, err := codec.New(codec.Settings{}).Encode(in)
	if err != nil {
		t.Fatalf("encode iso: %v", err)
	}
	secs, err := codec.New(codec.Settings{EncodeDates: codec.DateSecondsSince1970}).Encode(in)
	if err != nil {
		t.Fatalf("encode seconds: %v", err)
	}

	expISO := `{"id":7,"tags":["a","b"],"meta":{"a":"2","z":"1"},"created":"2019-01-18T12:10:28Z"}`
	expSecs := `{"id":7,"tags":["a","b"],"meta":{"a":"2","z":"1"},"created":1547813428}`

	if diff := cmp.Diff(expISO, string(iso)); diff != "" {
		t.Errorf("iso mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(expSecs, string(secs)); diff != "" {
		t.Errorf("seconds mismatch (-want +got):\n%s", diff)
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	for _, s := range []codec.DateStrategy{codec.DateISO8601, codec.DateSecondsSince1970, codec.DateMillisecondsSince1970} {
		t.Run(s.String(), func(t *testing.T) {
			c := codec.New(codec.Settings{EncodeDates: s, DecodeDates: s})
			in := post{Name: "example", Date: epoch}

			b, err := c.Encode(in)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}

			var out post
			if err := c.Decode(b, &out); err != nil {
				t.Fatalf("decode: %v", err)
			}

			if diff := cmp.Diff(in, out); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCodec_EncodeFailure(t *testing.T) {
	c := codec.New(codec.Settings{})

	_, err := c.Encode(map[string]any{"ch": make(chan int)})
	if !errors.Is(err, codec.ErrEncode) {
		t.Fatalf("expected ErrEncode, got %v", err)
	}
}

func TestCodec_IndependentInstances(t *testing.T) {
	a := codec.New(codec.Settings{})
	b := codec.New(codec.Settings{})

	a.SetEncodeDates(codec.DateSecondsSince1970)

	if got := b.Settings().EncodeDates; got != codec.DateISO8601 {
		t.Fatalf("second codec changed: %v", got)
	}
	if got := a.Settings(); got != (codec.Settings{EncodeDates: codec.DateSecondsSince1970}) {
		t.Fatalf("unexpected settings: %+v", got)
	}
}

func TestCodec_ConcurrentUse(t *testing.T) {
	c := codec.New(codec.Settings{})

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Go(func() {
			if i%4 == 0 {
				c.SetEncodeDates(codec.DateStrategy(i % 3))
			}
			if _, err := c.Encode(post{Name: "x", Date: epoch}); err != nil {
				t.Errorf("encode: %v", err)
			}
		})
	}
	wg.Wait()
}
