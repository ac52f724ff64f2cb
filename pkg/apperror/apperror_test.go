package apperror_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pandamarket/api/pkg/apperror"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperror.Validation("bad field"), http.StatusBadRequest},
		{apperror.Unauthorized("no token"), http.StatusUnauthorized},
		{apperror.Forbidden("not yours"), http.StatusForbidden},
		{apperror.NotFound("gone"), http.StatusNotFound},
		{apperror.ErrAlreadyFavorited, http.StatusConflict},
		{apperror.ErrNotFavorited, http.StatusConflict},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, apperror.Status(tc.err), "error %v", tc.err)
	}
}

func TestMessageMasksInternalErrors(t *testing.T) {
	assert.Equal(t, "internal server error", apperror.Message(errors.New("pq: connection refused")))
	assert.Equal(t, "gone", apperror.Message(apperror.NotFound("gone")))
	assert.Equal(t, "already favorited", apperror.Message(apperror.ErrAlreadyFavorited))
}

func TestWrappedSentinelsStillMatch(t *testing.T) {
	err := apperror.NotFound("product not found")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, "product not found", err.Error())
}
