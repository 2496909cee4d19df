package web

import (
	"context"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/adamwoolhether/jsonapi/web/errs"
	"github.com/adamwoolhether/jsonapi/web/mux"
)

// ContentTypeJSON is the Content-Type of every JSON response.
const ContentTypeJSON = "application/json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RespondJSON to an HTTP request, setting the status code and body if any.
func RespondJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) error {
	if statusCode == http.StatusNoContent {
		return Respond(ctx, w, statusCode, "", nil)
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}

	return Respond(ctx, w, statusCode, ContentTypeJSON, jsonData)
}

// Respond writes body verbatim. An empty contentType leaves the header
// unset; an empty body writes only the status.
func Respond(ctx context.Context, w http.ResponseWriter, statusCode int, contentType string, body []byte) error {
	mux.SetStatusCode(ctx, statusCode)

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(statusCode)

	if len(body) == 0 {
		return nil
	}

	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write response: %w", err)
	}

	return nil
}

// RespondError writes err as {"code":...,"message":...} with err.Code as
// the status.
func RespondError(ctx context.Context, w http.ResponseWriter, err *errs.Error) error {
	return RespondJSON(ctx, w, err.Code, err)
}

// Redirect issues an HTTP redirect to the given URL. The status code
// must be in the 3xx range or an error is returned.
func Redirect(ctx context.Context, w http.ResponseWriter, r *http.Request, url string, code int) error {
	if code < 300 || code > 399 {
		return fmt.Errorf("invalid redirect code: %d", code)
	}

	mux.SetStatusCode(ctx, code)

	http.Redirect(w, r, url, code)

	return nil
}
