package main

import (
	"myflix_api/internal/api"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewServer_WriteTimeoutOutlastsRequestTimeout(t *testing.T) {
	srv := newServer("8080", http.NotFoundHandler())

	assert.Equal(t, "0.0.0.0:8080", srv.Addr)
	assert.Greater(t, srv.WriteTimeout, api.RequestTimeout)
}
