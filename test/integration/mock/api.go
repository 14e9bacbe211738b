package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// ApiMock stands in for the external price and rate providers. Responses are
// registered per method and path, either for the n-th call or as a default.
type ApiMock struct {
	mu                    sync.Mutex
	headersReceived       map[string][]map[string]string
	responseMap           map[string]map[int]any
	defaultResponseMap    map[string]any
	responseStatus        map[string]map[int]int
	defaultResponseStatus map[string]int
	server                *httptest.Server
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		headersReceived:       map[string][]map[string]string{},
		responseMap:           map[string]map[int]any{},
		defaultResponseMap:    map[string]any{},
		responseStatus:        map[string]map[int]int{},
		defaultResponseStatus: map[string]int{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	_, _ = io.Copy(io.Discard, r.Body)

	a.mu.Lock()
	key := r.Method + r.URL.Path
	index := len(a.headersReceived[key])

	headers := map[string]string{}
	for name, values := range r.Header {
		headers[name] = values[0]
	}
	a.headersReceived[key] = append(a.headersReceived[key], headers)

	status := a.getResponseStatus(key, index)
	body := a.getResponseBody(key, index)
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	responseString, _ := json.Marshal(body)
	_, _ = w.Write(responseString)
}

// SetResponse registers the response of the index-th call. An index of -1 sets
// the default for every call without a specific response.
func (a *ApiMock) SetResponse(index int, method, path string, status int, response map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := method + path
	if index == -1 {
		a.defaultResponseStatus[key] = status
		a.defaultResponseMap[key] = response
		return
	}
	if a.responseMap[key] == nil {
		a.responseMap[key] = map[int]any{}
	}
	if a.responseStatus[key] == nil {
		a.responseStatus[key] = map[int]int{}
	}
	a.responseMap[key][index] = response
	a.responseStatus[key][index] = status
}

// RequestCount returns how many calls were received for the method and path.
func (a *ApiMock) RequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.headersReceived[method+path])
}

// GetRequestHeaders returns the headers of the index-th call.
func (a *ApiMock) GetRequestHeaders(method, path string, index int) map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()
	received := a.headersReceived[method+path]
	if index < 0 || index >= len(received) {
		return nil
	}
	return received[index]
}

// ClearResponses drops registered responses and received calls whose key starts
// with method+path.
func (a *ApiMock) ClearResponses(method, path string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	prefix := method + path
	for key := range a.headersReceived {
		if strings.HasPrefix(key, prefix) {
			delete(a.headersReceived, key)
		}
	}
	for key := range a.responseMap {
		if strings.HasPrefix(key, prefix) {
			delete(a.responseMap, key)
			delete(a.responseStatus, key)
		}
	}
	for key := range a.defaultResponseMap {
		if strings.HasPrefix(key, prefix) {
			delete(a.defaultResponseMap, key)
			delete(a.defaultResponseStatus, key)
		}
	}
}

func (a *ApiMock) getResponseBody(key string, index int) any {
	if response, ok := a.responseMap[key][index]; ok && response != nil {
		return response
	}
	if response, ok := a.defaultResponseMap[key]; ok && response != nil {
		return response
	}
	return map[string]any{}
}

func (a *ApiMock) getResponseStatus(key string, index int) int {
	if status, ok := a.responseStatus[key][index]; ok && status != 0 {
		return status
	}
	if status, ok := a.defaultResponseStatus[key]; ok && status != 0 {
		return status
	}
	// Return 200 as a safe default to prevent panic from WriteHeader(0)
	return http.StatusOK
}
