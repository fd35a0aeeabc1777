package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/germanamz/toolhost/pkg/tools/discovery"
	"github.com/germanamz/toolhost/pkg/tools/toolbox"
)

// timestampLayout renders health timestamps as ISO-8601 in UTC.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

// IndexResponse is the GET / body.
type IndexResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "healthy",
		Timestamp:   s.now().UTC().Format(timestampLayout),
		Environment: s.opts.Environment,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, IndexResponse{
		Message: s.opts.Name,
		Version: s.opts.Version,
		Endpoints: map[string]string{
			"health":    "/health",
			"discovery": "/discovery",
			"tools":     "/tools",
		},
	})
}

func (s *Server) handleDiscovery(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, discovery.Build(s.tools, s.opts.Version))
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)

	var inv toolbox.Invocation
	if err := decodeBody(r.Body, &inv); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	result := s.tools.Call(r.Context(), inv)
	if result.IsError {
		switch result.Kind {
		case toolbox.KindBadRequest:
			writeError(w, http.StatusBadRequest, result.Message)
		default:
			writeJSON(w, http.StatusInternalServerError, errorBody{
				Error:   "Internal server error",
				Message: result.Message,
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, result.Payload)
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, errorBody{
		Error:   "Not Found",
		Message: "The requested endpoint was not found",
	})
}

// decodeBody decodes exactly one JSON value from body.
func decodeBody(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}

	return nil
}
