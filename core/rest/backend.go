package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/brille-tech/backend/core"
	"github.com/brille-tech/backend/core/access"
	"github.com/brille-tech/backend/core/csql"
	"github.com/brille-tech/backend/core/logger"
)

// Backend is the generic rest backend. Every configured resource gets the
// same five lifecycle operations: list, get, create, update, delete. A
// request walks a fixed chain of steps - validation, existence guard,
// single data-access call, response shaping - and each step fails fast into
// the uniform error envelope.
type Backend struct {
	db                   *csql.DB
	router               *mux.Router
	resources            map[string]*resourceBackend
	resourceList         []*resourceBackend
	authorizationEnabled bool
}

type resourceBackend struct {
	rs        Resource
	store     Store
	validator *validator
}

// Builder is a builder helper for the Backend
type Builder struct {
	// Resources is the declarative description of all resources. This is mandatory.
	Resources []Resource
	// DB is a postgres database. Mandatory unless every resource has an injected store.
	DB *csql.DB
	// Router is a mux router. This is mandatory.
	Router *mux.Router
	// Stores injects a data-access capability per resource name. Resources
	// without an entry use the postgres store. This is optional.
	Stores map[string]Store
	// UpdateSchema creates missing relations at construction time.
	UpdateSchema bool
	// AuthorizationEnabled requires an admin session for all mutations.
	AuthorizationEnabled bool
}

// New realizes the actual backend. It creates the sql relations (if
// requested and they do not exist) and adds actual routes to the router.
func New(bb *Builder) *Backend {
	if bb.Router == nil {
		panic("Router is missing")
	}
	if len(bb.Resources) == 0 {
		panic("Resources are missing")
	}

	b := &Backend{
		db:                   bb.DB,
		router:               bb.Router,
		resources:            make(map[string]*resourceBackend),
		authorizationEnabled: bb.AuthorizationEnabled,
	}

	for _, rs := range bb.Resources {
		if err := rs.Validate(); err != nil {
			panic(fmt.Errorf("invalid configuration: %s", err))
		}
		if _, ok := b.resources[rs.Name]; ok {
			panic(fmt.Errorf("invalid configuration: resource %s declared twice", rs.Name))
		}
		v, err := newValidator(rs)
		if err != nil {
			panic(fmt.Errorf("invalid configuration: %s", err))
		}
		store := bb.Stores[rs.Name]
		if store == nil {
			if bb.DB == nil {
				panic("DB is missing")
			}
			sqlStore := newSQLStore(bb.DB, rs)
			if bb.UpdateSchema {
				if err := sqlStore.createTable(); err != nil {
					panic(fmt.Errorf("invalid configuration updating schema: %s", err))
				}
			}
			store = sqlStore
		}
		rb := &resourceBackend{rs: rs, store: store, validator: v}
		b.resources[rs.Name] = rb
		b.resourceList = append(b.resourceList, rb)
	}

	// child references can only be checked once all resources are known
	for _, rb := range b.resourceList {
		for _, c := range rb.rs.Children {
			child, ok := b.resources[c.Resource]
			if !ok {
				panic(fmt.Errorf("invalid configuration: %s references unknown child resource %s", rb.rs.Name, c.Resource))
			}
			if _, ok := child.rs.field(c.ForeignKey); !ok {
				panic(fmt.Errorf("invalid configuration: child resource %s has no column %s", c.Resource, c.ForeignKey))
			}
		}
	}

	b.handleRoutes(b.router)
	return b
}

func (b *Backend) handleRoutes(router *mux.Router) {
	logger.Default().Debugln("backend: handle routes")
	b.handleVersion(router)
	for _, rb := range b.resourceList {
		b.createResourceRoutes(router, rb)
	}
}

// authorize checks the mutation privilege when access control is enabled.
// Reads stay open, the admin console fetches lists before login.
func (b *Backend) authorize(w http.ResponseWriter, r *http.Request) bool {
	if !b.authorizationEnabled {
		return true
	}
	auth := access.AuthorizationFromContext(r.Context())
	if auth == nil {
		writeError(w, &Error{Status: http.StatusUnauthorized, Message: "no session"})
		return false
	}
	if !auth.Admin {
		writeError(w, &Error{Status: http.StatusForbidden, Message: "insufficient privileges"})
		return false
	}
	return true
}

func idParam(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

// ensureExists is the existence guard: exactly one lookup by identifier,
// converting a missing record into a terminal not-found outcome before any
// mutation is attempted. The looked-up record is returned so the delete
// handler can echo the pre-delete state without a second read.
func ensureExists(ctx context.Context, store Store, rs Resource, id int64) (Record, *Error) {
	record, err := store.Get(ctx, id)
	if err == csql.ErrNoRows {
		return nil, notFoundError(rs.Singular)
	}
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorf("existence check for %s %d failed", rs.Singular, id)
		return nil, internalError()
	}
	return record, nil
}

func (b *Backend) createResourceRoutes(router *mux.Router, rb *resourceBackend) {
	rs := rb.rs
	store := rb.store
	v := rb.validator

	nillog := logger.FromContext(nil)
	nillog.Debugln("create resource:", rs.Name)

	listRoute := "/api/" + rs.Name
	itemRoute := "/api/" + rs.Name + "/{id:[0-9]+}"
	nillog.Debugln("  handle routes:", listRoute, "GET,POST")
	nillog.Debugln("  handle routes:", itemRoute, "GET,PUT,DELETE")

	list := func(w http.ResponseWriter, r *http.Request) {
		rlog := logger.FromContext(r.Context())
		order, verr := rs.parseSort(r.URL.Query().Get("sort"))
		if verr != nil {
			writeError(w, verr)
			return
		}
		records, err := store.List(r.Context(), order)
		if err != nil {
			rlog.WithError(err).Errorf("cannot list %s", rs.Name)
			writeError(w, internalError())
			return
		}
		writeContentRange(w, rs.Name, len(records))
		writeJSON(w, http.StatusOK, records)
	}

	read := func(w http.ResponseWriter, r *http.Request) {
		record, err := store.Get(r.Context(), idParam(r))
		if err == csql.ErrNoRows {
			// no error payload, the console only looks at the status
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err != nil {
			logger.FromContext(r.Context()).WithError(err).Errorf("cannot read %s", rs.Singular)
			writeError(w, internalError())
			return
		}
		writeJSON(w, http.StatusOK, record)
	}

	create := func(w http.ResponseWriter, r *http.Request) {
		if !b.authorize(w, r) {
			return
		}
		rlog := logger.FromContext(r.Context())
		document, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, &Error{Status: http.StatusBadRequest, Message: "cannot read request body"})
			return
		}
		if verr := v.validate(document, core.OperationCreate); verr != nil {
			rlog.Debugln(verr.Message)
			writeError(w, verr)
			return
		}
		payload, err := decodePayload(document)
		if err != nil {
			writeError(w, &Error{Status: http.StatusBadRequest, Message: "invalid json data: " + err.Error()})
			return
		}
		columns, values, err := rs.buildInsert(payload)
		if err != nil {
			writeError(w, &Error{Status: http.StatusBadRequest, Message: err.Error()})
			return
		}
		id, err := store.Insert(r.Context(), columns, values)
		if err != nil || id == 0 {
			rlog.WithError(err).Errorf("cannot insert %s", rs.Singular)
			writeError(w, executionError(rs.titleSingular()+" cannot be created"))
			return
		}
		// echo of the submitted fields plus the generated identifier
		response := Record{"id": id}
		for i, column := range columns {
			response[column] = values[i]
		}
		writeJSON(w, http.StatusCreated, response)
	}

	update := func(w http.ResponseWriter, r *http.Request) {
		if !b.authorize(w, r) {
			return
		}
		rlog := logger.FromContext(r.Context())
		id := idParam(r)
		document, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, &Error{Status: http.StatusBadRequest, Message: "cannot read request body"})
			return
		}
		if verr := v.validate(document, core.OperationUpdate); verr != nil {
			rlog.Debugln(verr.Message)
			writeError(w, verr)
			return
		}
		record, verr := ensureExists(r.Context(), store, rs, id)
		if verr != nil {
			writeError(w, verr)
			return
		}
		payload, err := decodePayload(document)
		if err != nil {
			writeError(w, &Error{Status: http.StatusBadRequest, Message: "invalid json data: " + err.Error()})
			return
		}
		columns, values, err := rs.buildUpdate(payload)
		if err == ErrEmptyUpdate {
			// nothing to change, do not submit an empty mutation
			writeJSON(w, http.StatusOK, record)
			return
		}
		if err != nil {
			writeError(w, &Error{Status: http.StatusBadRequest, Message: err.Error()})
			return
		}
		affected, err := store.Update(r.Context(), id, columns, values)
		if err != nil {
			rlog.WithError(err).Errorf("cannot update %s %d", rs.Singular, id)
			writeError(w, executionError(rs.titleSingular()+" cannot be updated"))
			return
		}
		if affected == 0 {
			// the record passed the guard but vanished before the mutation
			rlog.Errorf("%s %d disappeared between guard and update", rs.Singular, id)
			writeError(w, executionError(rs.titleSingular()+" cannot be updated"))
			return
		}
		fresh, err := store.Get(r.Context(), id)
		if err != nil {
			rlog.WithError(err).Errorf("cannot re-read %s %d after update", rs.Singular, id)
			writeError(w, internalError())
			return
		}
		writeJSON(w, http.StatusOK, fresh)
	}

	deleteOne := func(w http.ResponseWriter, r *http.Request) {
		if !b.authorize(w, r) {
			return
		}
		rlog := logger.FromContext(r.Context())
		id := idParam(r)
		record, verr := ensureExists(r.Context(), store, rs, id)
		if verr != nil {
			writeError(w, verr)
			return
		}
		affected, err := store.Delete(r.Context(), id)
		if err != nil || affected == 0 {
			rlog.WithError(err).Errorf("cannot delete %s %d", rs.Singular, id)
			writeError(w, executionError("This "+rs.Singular+" cannot be deleted"))
			return
		}
		// the console needs the deleted row's last known values
		writeJSON(w, http.StatusOK, record)
	}

	router.HandleFunc(listRoute, list).Methods(http.MethodOptions, http.MethodGet)
	router.HandleFunc(listRoute, create).Methods(http.MethodPost)
	router.HandleFunc(itemRoute, read).Methods(http.MethodOptions, http.MethodGet)
	router.HandleFunc(itemRoute, update).Methods(http.MethodPut)
	router.HandleFunc(itemRoute, deleteOne).Methods(http.MethodDelete)

	for _, c := range rs.Children {
		child := b.resources[c.Resource]
		foreignKey := c.ForeignKey
		childRoute := itemRoute + "/" + child.rs.Name
		nillog.Debugln("  handle child routes:", childRoute)

		listChildren := func(w http.ResponseWriter, r *http.Request) {
			rlog := logger.FromContext(r.Context())
			id := idParam(r)
			if _, verr := ensureExists(r.Context(), store, rs, id); verr != nil {
				writeError(w, verr)
				return
			}
			order, verr := child.rs.parseSort(r.URL.Query().Get("sort"))
			if verr != nil {
				writeError(w, verr)
				return
			}
			records, err := child.store.ListBy(r.Context(), foreignKey, id, order)
			if err != nil {
				rlog.WithError(err).Errorf("cannot list %s of %s %d", child.rs.Name, rs.Singular, id)
				writeError(w, internalError())
				return
			}
			writeContentRange(w, child.rs.Name, len(records))
			writeJSON(w, http.StatusOK, records)
		}
		router.HandleFunc(childRoute, listChildren).Methods(http.MethodOptions, http.MethodGet)

		if c.AllowClear {
			clearChildren := func(w http.ResponseWriter, r *http.Request) {
				if !b.authorize(w, r) {
					return
				}
				rlog := logger.FromContext(r.Context())
				id := idParam(r)
				if _, verr := ensureExists(r.Context(), store, rs, id); verr != nil {
					writeError(w, verr)
					return
				}
				if _, err := child.store.DeleteBy(r.Context(), foreignKey, id); err != nil {
					rlog.WithError(err).Errorf("cannot clear %s of %s %d", child.rs.Name, rs.Singular, id)
					writeError(w, internalError())
					return
				}
				w.WriteHeader(http.StatusNoContent)
			}
			router.HandleFunc(childRoute, clearChildren).Methods(http.MethodDelete)
		}
	}
}
