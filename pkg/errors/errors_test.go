package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsel-ticketmaster/tm-scan/pkg/status"
)

func TestDestruct(t *testing.T) {
	err := New(http.StatusNotFound, status.NOT_FOUND, "ticket not found")

	ae := Destruct(err)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatusCode)
	assert.Equal(t, status.NOT_FOUND, ae.Status)
	assert.Equal(t, "ticket not found", ae.Message)
	assert.Equal(t, "ticket not found", err.Error())
}

func TestDestructPlainError(t *testing.T) {
	ae := Destruct(fmt.Errorf("boom"))

	assert.Equal(t, http.StatusInternalServerError, ae.HTTPStatusCode)
	assert.Equal(t, status.INTERNAL_SERVER_ERROR, ae.Status)
	assert.Equal(t, "boom", ae.Message)
}
