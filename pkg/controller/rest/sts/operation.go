/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package sts exposes the embedded secure token service over HTTP. The core
// service stays transport-free; this package is the thin REST layer hosts
// mount into their server.
package sts

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/dataspace-go/identitytrust-go/pkg/common/log"
	"github.com/dataspace-go/identitytrust-go/pkg/identitytrust"
	"github.com/dataspace-go/identitytrust-go/pkg/identitytrust/sts"
)

const tokenPath = "/token"

var logger = log.New("identitytrust/rest-sts")

// TokenService is the issuance operation exposed by this endpoint.
type TokenService interface {
	CreateToken(claims map[string]string, bearerAccessScope string) (*sts.TokenRepresentation, error)
}

// Operation is the REST operation set of the secure token service.
type Operation struct {
	service     TokenService
	corsOptions *cors.Options
}

// Opt configures the operation.
type Opt func(o *Operation)

// WithCORS enables CORS handling with the given options on the router.
func WithCORS(options cors.Options) Opt {
	return func(o *Operation) {
		o.corsOptions = &options
	}
}

// New creates the REST operation around the token service.
func New(service TokenService, opts ...Opt) *Operation {
	o := &Operation{service: service}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Router returns the HTTP handler serving the operation's endpoints.
func (o *Operation) Router() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc(tokenPath, o.createToken).Methods(http.MethodPost)

	if o.corsOptions != nil {
		return cors.New(*o.corsOptions).Handler(router)
	}

	return router
}

type createTokenRequest struct {
	Claims            map[string]string `json:"claims"`
	BearerAccessScope string            `json:"bearerAccessScope,omitempty"`
}

type createTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (o *Operation) createToken(w http.ResponseWriter, r *http.Request) {
	var request createTokenRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")

		return
	}

	rep, err := o.service.CreateToken(request.Claims, request.BearerAccessScope)
	if err != nil {
		var claimErr *identitytrust.ClaimError
		if errors.As(err, &claimErr) {
			writeError(w, http.StatusBadRequest, err.Error())

			return
		}

		logger.Errorf("token issuance failed: %v", err)
		writeError(w, http.StatusInternalServerError, "token issuance failed")

		return
	}

	writeJSON(w, http.StatusOK, createTokenResponse{
		AccessToken: rep.Token,
		TokenType:   "Bearer",
		ExpiresIn:   rep.ExpiresIn,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Errorf("writing response: %v", err)
	}
}
