package endpoint

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

// requestSpec describes one request. registerPath and handler are only used
// by doRequestWithHandler; a string body is sent verbatim.
type requestSpec struct {
	method       string
	registerPath string
	requestPath  string
	handler      gin.HandlerFunc
	body         interface{}
	headers      map[string]string
}

func encodeBody(body interface{}) ([]byte, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(v), nil
	default:
		return json.Marshal(v)
	}
}

// performRequest serves spec on r and decodes the JSON envelope, if any.
func performRequest(r *gin.Engine, spec requestSpec) (*httptest.ResponseRecorder, map[string]interface{}, error) {
	payload, err := encodeBody(spec.body)
	if err != nil {
		return nil, nil, err
	}

	req := httptest.NewRequest(spec.method, spec.requestPath, bytes.NewReader(payload))
	if spec.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range spec.headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var response map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			return w, nil, err
		}
	}
	return w, response, nil
}

func doRequestWithHandler(r *gin.Engine, spec requestSpec) (*httptest.ResponseRecorder, map[string]interface{}, error) {
	r.Handle(spec.method, spec.registerPath, spec.handler)
	return performRequest(r, spec)
}
