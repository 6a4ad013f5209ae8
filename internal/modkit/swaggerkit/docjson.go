package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strings"

	"ticketdesk/internal/platform/config"
	perr "ticketdesk/internal/platform/errors"
)

//go:embed openapi.json
var openapiDoc string

// docReader is swapped in tests
var docReader = func() string { return openapiDoc }

type object = map[string]any

// failure responses every operation can produce; 404 only where the path names a resource
var failures = []struct {
	status, description string
	example             perr.Wire
	idOnly              bool
}{
	{"400", "Malformed request", perr.Wire{Code: perr.KindBadRequest, Message: "Invalid JSON body"}, false},
	{"404", "Ticket not found", perr.Wire{Code: perr.KindNotFound, Message: "Ticket not found"}, true},
	{"500", "Internal Server Error", perr.Wire{Code: perr.KindInternal, Message: perr.InternalMessage}, false},
}

func serveDocJSON(w http.ResponseWriter, _ *http.Request) {
	spec, err := buildSpec(config.New().Prefix("CORE_API_"))
	if err != nil {
		http.Error(w, "spec parse error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(spec)
}

// buildSpec decodes the embedded document and fills in what the runtime adds:
// the server list, an optional DOCS_TITLE_SUFFIX and the failure envelope responses
func buildSpec(cfg config.Conf) (object, error) {
	var spec object
	if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
		return nil, err
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{object{"url": "/"}}
	}
	if suffix := cfg.MayString("DOCS_TITLE_SUFFIX", ""); suffix != "" {
		if info, ok := spec["info"].(object); ok {
			info["title"] = strings.TrimSpace(info["title"].(string) + " " + suffix)
		}
	}
	child(child(spec, "components"), "schemas")["ErrorResponse"] = errorResponseSchema()

	paths, _ := spec["paths"].(object)
	for path, item := range paths {
		ops, _ := item.(object)
		for method, op := range ops {
			o, ok := op.(object)
			if !ok || method == "parameters" {
				continue
			}
			responses := child(o, "responses")
			for _, f := range failures {
				if f.idOnly && !strings.Contains(path, "{id}") {
					continue
				}
				if _, set := responses[f.status]; !set {
					responses[f.status] = failureResponse(f.description, f.example)
				}
			}
		}
	}
	return spec, nil
}

// child returns m[key] as an object, creating it when missing
func child(m object, key string) object {
	if c, ok := m[key].(object); ok {
		return c
	}
	c := object{}
	m[key] = c
	return c
}

func failureResponse(description string, example perr.Wire) object {
	return object{
		"description": description,
		"content": object{
			"application/json": object{
				"schema":  object{"$ref": "#/components/schemas/ErrorResponse"},
				"example": object{"success": false, "error": example},
			},
		},
	}
}

// errorResponseSchema mirrors pnet.ErrorBody
func errorResponseSchema() object {
	str := object{"type": "string"}
	return object{
		"type":     "object",
		"required": []any{"success", "error"},
		"properties": object{
			"success": object{"type": "boolean", "example": false},
			"error": object{
				"type":     "object",
				"required": []any{"message", "code"},
				"properties": object{
					"message": str,
					"code": object{
						"type": "string",
						"enum": []any{perr.KindNotFound, perr.KindBadRequest, perr.KindValidation, perr.KindInternal},
					},
					"details": object{
						"type": "array",
						"items": object{
							"type":       "object",
							"properties": object{"path": str, "message": str},
						},
					},
				},
			},
		},
	}
}
