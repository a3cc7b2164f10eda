package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusCode(fmt.Errorf("patient 4: %w", NotFound)))
	assert.Equal(t, http.StatusBadRequest, StatusCode(fmt.Errorf("%w: value out of range", BadRequest)))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
}

func TestHttpError_Is(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NotFound)
	assert.True(t, errors.Is(err, NotFound))
	assert.False(t, errors.Is(err, BadRequest))
	assert.Equal(t, "lookup: not found", err.Error())
}
