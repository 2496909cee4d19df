// Package codec encodes and decodes JSON request and response bodies for
// the client. It is a thin layer over [github.com/json-iterator/go] that adds
// a configurable rendering of [time.Time] values.
//
// # Date Strategies
//
// Dates are written as RFC 3339 strings by default. The encoder and the
// decoder are configured independently:
//
//	c := codec.New(codec.Settings{
//		EncodeDates: codec.DateSecondsSince1970,
//		DecodeDates: codec.DateISO8601,
//	})
//	b, err := c.Encode(post)
//
// Only date-typed fields are affected; every other value is encoded exactly
// as [encoding/json] would encode it.
package codec
