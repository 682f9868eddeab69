// Package fakes3 serves an in-memory, path-style S3 endpoint for tests.
// It understands GetObject, HeadObject, PutObject and DeleteObject only.
package fakes3

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
)

const noSuchKey = `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`

// Server is an in-memory object store.
type Server struct {
	*httptest.Server

	mu      sync.Mutex
	objects map[string][]byte
}

// New starts a server. Callers must Close it.
func New() *Server {
	s := &Server{objects: make(map[string][]byte)}

	r := mux.NewRouter()
	r.HandleFunc("/{bucket}/{key:.+}", s.get).Methods(http.MethodGet)
	r.HandleFunc("/{bucket}/{key:.+}", s.head).Methods(http.MethodHead)
	r.HandleFunc("/{bucket}/{key:.+}", s.put).Methods(http.MethodPut)
	r.HandleFunc("/{bucket}/{key:.+}", s.delete).Methods(http.MethodDelete)

	s.Server = httptest.NewServer(r)
	return s
}

// Object returns the stored bytes for bucket/key.
func (s *Server) Object(bucket, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[bucket+"/"+key]
	return data, ok
}

func objectKey(r *http.Request) string {
	vars := mux.Vars(r)
	return vars["bucket"] + "/" + vars["key"]
}

func (s *Server) lookup(r *http.Request) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[objectKey(r)]
	return data, ok
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	data, ok := s.lookup(r)
	if !ok {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, noSuchKey)
		return
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

func (s *Server) head(w http.ResponseWriter, r *http.Request) {
	data, ok := s.lookup(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
}

func (s *Server) put(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.objects[objectKey(r)] = data
	s.mu.Unlock()

	w.Header().Set("ETag", `"fake"`)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	delete(s.objects, objectKey(r))
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}
