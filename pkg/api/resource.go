// Package api maps HTTP verbs and paths onto collection services.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"

	"github.com/gorilla/mux"

	"github.com/aretw0/depot/pkg/core"
)

// Resource binds one collection service to the router.
type Resource[T any] struct {
	Service *core.Service[T]
	// NotFound formats the message for unknown identifiers.
	// Defaults to the error text.
	NotFound func(id string) string
	Logger   *slog.Logger
}

// MaxBodyBytes caps the size of a request body.
const MaxBodyBytes = 1 << 20

// Mount registers the CRUD routes of res under {prefix}/{collection}.
//
//	GET    /{collection}       list
//	POST   /{collection}       create with a generated id
//	GET    /{collection}/{id}  get
//	PUT    /{collection}/{id}  create or replace
//	POST   /{collection}/{id}  create or replace
//	DELETE /{collection}/{id}  delete
func Mount[T any](r *Router, res Resource[T]) {
	h := &handler[T]{res: res}
	base := r.prefix + "/" + res.Service.Name()

	r.root.HandleFunc(base, h.list).Methods(http.MethodGet)
	r.root.HandleFunc(base, h.create).Methods(http.MethodPost)
	r.root.HandleFunc(base+"/{id}", h.get).Methods(http.MethodGet)
	r.root.HandleFunc(base+"/{id}", h.put).Methods(http.MethodPut, http.MethodPost)
	r.root.HandleFunc(base+"/{id}", h.delete).Methods(http.MethodDelete)
}

type handler[T any] struct {
	res Resource[T]
}

func (h *handler[T]) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.res.Logger, http.StatusOK, h.res.Service.List())
}

func (h *handler[T]) get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	entity, err := h.res.Service.Get(id)
	if err != nil {
		h.fail(w, r, id, err)
		return
	}
	writeJSON(w, h.res.Logger, http.StatusOK, entity)
}

func (h *handler[T]) create(w http.ResponseWriter, r *http.Request) {
	entity, ok := h.decode(w, r)
	if !ok {
		return
	}
	id, created, err := h.res.Service.Create(entity)
	if err != nil {
		h.fail(w, r, "", err)
		return
	}
	w.Header().Set("Location", path.Join(r.URL.Path, id))
	writeJSON(w, h.res.Logger, http.StatusCreated, created)
}

func (h *handler[T]) put(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	entity, ok := h.decode(w, r)
	if !ok {
		return
	}
	stored, err := h.res.Service.Put(id, entity)
	if err != nil {
		h.fail(w, r, id, err)
		return
	}
	writeJSON(w, h.res.Logger, http.StatusCreated, stored)
}

func (h *handler[T]) delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.res.Service.Delete(id); err != nil {
		h.fail(w, r, id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler[T]) decode(w http.ResponseWriter, r *http.Request) (T, bool) {
	var entity T
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&entity); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, h.res.Logger, http.StatusRequestEntityTooLarge, fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit))
			return entity, false
		}
		writeError(w, h.res.Logger, http.StatusBadRequest, fmt.Sprintf("malformed body: %v", err))
		return entity, false
	}
	return entity, true
}

// fail translates domain errors into client responses.
func (h *handler[T]) fail(w http.ResponseWriter, r *http.Request, id string, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		msg := err.Error()
		if h.res.NotFound != nil {
			msg = h.res.NotFound(id)
		}
		writeError(w, h.res.Logger, http.StatusNotFound, msg)
	case errors.Is(err, core.ErrInvalidEntity), errors.Is(err, core.ErrInvalidID):
		writeError(w, h.res.Logger, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrReadOnly):
		writeError(w, h.res.Logger, http.StatusForbidden, err.Error())
	default:
		if h.res.Logger != nil {
			h.res.Logger.Error("request failed", "collection", h.res.Service.Name(), "path", r.URL.Path, "error", err)
		}
		writeError(w, h.res.Logger, http.StatusInternalServerError, "internal server error")
	}
}
