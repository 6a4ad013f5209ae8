// Package bind provides request decoding and validation helpers for handlers
//
// A request struct groups the parts of an HTTP request under json-tagged fields:
//
//	type UpdateTicketRequest struct {
//		Params IDParams   `json:"params"`
//		Body   UpdateBody `json:"body"`
//	}
//
// Request fills params from the route, query from the URL and body from JSON,
// then normalizes and validates. Violation paths come out rooted at the part,
// e.g. body.title or query.limit
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"slices"
	"strings"
	"sync"

	perr "ticketdesk/internal/platform/errors"
	"ticketdesk/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
)

// Normalizer is implemented by request types that clean input and apply defaults
// before validation runs
type Normalizer interface {
	Normalize()
}

// JSONOptions controls body parsing behavior
type JSONOptions struct {
	MaxBytes        int64 // default 1MB
	DisallowUnknown bool  // default false
	AllowEmptyBody  bool  // default true; empty means {}
}

func defaultJSONOptions() JSONOptions {
	return JSONOptions{
		MaxBytes:        1 << 20,
		DisallowUnknown: false,
		AllowEmptyBody:  true,
	}
}

var (
	fOnce    sync.Once
	fDec     *form.Decoder
	jsonMore = func(dec *json.Decoder) bool { // seam
		_, err := dec.Token()
		return err != io.EOF
	}
)

// values returns the shared url.Values decoder keyed by json tag names
func values() *form.Decoder {
	fOnce.Do(func() {
		d := form.NewDecoder()
		d.SetTagName("json")
		fDec = d
	})
	return fDec
}

// Request decodes route params, query string and JSON body into T, then validates it
func Request[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var dst T

	vals := url.Values{}
	if rc := chi.RouteContext(r.Context()); rc != nil {
		for i, k := range rc.URLParams.Keys {
			if k == "*" || i >= len(rc.URLParams.Values) {
				continue
			}
			vals.Set("params."+k, rc.URLParams.Values[i])
		}
	}
	for k, vv := range r.URL.Query() {
		vals["query."+k] = vv
	}
	if err := DecodeValues(&dst, vals); err != nil {
		return dst, err
	}

	if body, ok := fieldByName(&dst, "body"); ok {
		raw, err := readBody(r, pick(opts))
		if err != nil {
			return dst, err
		}
		if err := decodeJSON(raw, body, pick(opts), "body."); err != nil {
			return dst, err
		}
	}

	if err := Validate(&dst); err != nil {
		return dst, err
	}
	return dst, nil
}

// DecodeValues decodes url.Values into dst; type errors become violations at the key
func DecodeValues(dst any, vals url.Values) error {
	if len(vals) == 0 {
		return nil
	}
	err := values().Decode(dst, vals)
	if err == nil {
		return nil
	}
	var derrs form.DecodeErrors
	if !errors.As(err, &derrs) {
		return perr.Wrap(err, perr.ErrorCodeBadRequest, "Invalid request parameters")
	}
	details := make([]perr.Violation, 0, len(derrs))
	for key := range derrs {
		details = append(details, perr.Violation{Path: key, Message: Label(lastSegment(key)) + " must be a number"})
	}
	slices.SortFunc(details, func(a, b perr.Violation) int { return strings.Compare(a.Path, b.Path) })
	return perr.Invalid(details...)
}

// Validate normalizes v when it implements Normalizer, then runs struct validation
// All violated constraints are reported, one entry per field
func Validate(v any) error {
	if n, ok := v.(Normalizer); ok {
		n.Normalize()
	}
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.Wrap(inv, perr.ErrorCodeUnknown, "validation setup")
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "validation")
	}
	details := make([]perr.Violation, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, perr.Violation{
			Path:    stripRoot(fe.Namespace()),
			Message: fe.Translate(Get().Translator),
		})
	}
	return perr.Invalid(details...)
}

func pick(opts []JSONOptions) JSONOptions {
	if len(opts) > 0 {
		return opts[0]
	}
	return defaultJSONOptions()
}

// readBody returns the raw body, "{}" for an empty one when allowed
func readBody(r *http.Request, o JSONOptions) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return emptyOr(o)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Get().Error().Err(err).Msg("failed to close request body")
		}
	}()

	var reader io.Reader = r.Body
	if o.MaxBytes > 0 {
		reader = io.LimitReader(r.Body, o.MaxBytes+1)
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeBadRequest, "Unable to read request body")
	}
	if o.MaxBytes > 0 && int64(len(raw)) > o.MaxBytes {
		return nil, perr.BadRequestf("Request body too large")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return emptyOr(o)
	}
	return raw, nil
}

func emptyOr(o JSONOptions) ([]byte, error) {
	if !o.AllowEmptyBody {
		return nil, perr.JSONErrf("Request body is required")
	}
	return []byte("{}"), nil
}

func decodeJSON(raw []byte, dst any, o JSONOptions, root string) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) && ute.Field != "" {
			return perr.Invalid(perr.Violation{
				Path:    root + ute.Field,
				Message: Label(lastSegment(ute.Field)) + " must be " + kindName(ute.Type),
			})
		}
		if errors.As(err, &ute) {
			return perr.Wrap(err, perr.ErrorCodeJSON, "Request body must be a JSON object")
		}
		return perr.Wrap(err, perr.ErrorCodeJSON, "Invalid JSON body")
	}
	if jsonMore(dec) {
		return perr.JSONErrf("Invalid JSON body")
	}
	return nil
}

// fieldByName returns a pointer to the top-level field of *dst json-tagged name
func fieldByName(dst any, name string) (any, bool) {
	v := reflect.ValueOf(dst)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() && jsonName(t.Field(i)) == name {
			return v.Field(i).Addr().Interface(), true
		}
	}
	return nil, false
}

func jsonName(fld reflect.StructField) string {
	tag := fld.Tag.Get("json")
	if tag == "-" || tag == "" {
		return fld.Name
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}

// stripRoot drops the struct type name validator puts first in a namespace
func stripRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func lastSegment(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	case reflect.Struct, reflect.Map:
		return "an object"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "a valid value"
	}
}
