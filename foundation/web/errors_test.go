package web

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
)

func TestIsRequestError(t *testing.T) {
	base := NewRequestError(errors.New("record not found"), http.StatusNotFound)
	wrapped := errors.Wrap(base, "loading user")

	webErr, ok := IsRequestError(wrapped)
	if !ok {
		t.Fatal("expected a request error in the chain")
	}
	if webErr.Status != http.StatusNotFound {
		t.Errorf("status = %d, want %d", webErr.Status, http.StatusNotFound)
	}
	if webErr.Error() != "record not found" {
		t.Errorf("message = %q, want %q", webErr.Error(), "record not found")
	}
}

func TestIsRequestErrorPlain(t *testing.T) {
	if _, ok := IsRequestError(errors.New("boom")); ok {
		t.Error("plain error should not be a request error")
	}
}
