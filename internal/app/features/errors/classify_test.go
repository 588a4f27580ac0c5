package errors_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	uierrors "github.com/dalemusser/diocesehub/internal/app/features/errors"
	"github.com/dalemusser/diocesehub/internal/app/system/backend"
	"github.com/dalemusser/diocesehub/internal/app/system/notify"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want uierrors.Kind
	}{
		{"nil", nil, uierrors.KindNone},
		{"401", &backend.APIError{Status: http.StatusUnauthorized}, uierrors.KindSession},
		{"wrapped 403", fmt.Errorf("update parish: %w", &backend.APIError{Status: http.StatusForbidden}), uierrors.KindForbidden},
		{"404", &backend.APIError{Status: http.StatusNotFound}, uierrors.KindNotFound},
		{"409", &backend.APIError{Status: http.StatusConflict, Message: "duplicate"}, uierrors.KindRejected},
		{"500", &backend.APIError{Status: http.StatusInternalServerError}, uierrors.KindUnavailable},
		{"deadline", fmt.Errorf("GET /states: %w", context.DeadlineExceeded), uierrors.KindUnavailable},
		{"transport", fmt.Errorf("dial tcp: refused"), uierrors.KindUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := uierrors.Classify(tt.err); got != tt.want {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindLevels(t *testing.T) {
	if uierrors.KindForbidden.Level() != notify.Warning {
		t.Error("forbidden should warn")
	}
	if uierrors.KindUnavailable.Level() != notify.Error {
		t.Error("unavailable should be an error")
	}
}

func TestMessageFor_UsesBackendMessageForRejections(t *testing.T) {
	err := &backend.APIError{Status: http.StatusBadRequest, Message: "Name already exists"}
	if got := uierrors.MessageFor(err); got != "Name already exists" {
		t.Errorf("MessageFor = %q", got)
	}
	if got := uierrors.MessageFor(&backend.APIError{Status: http.StatusBadGateway, Message: "upstream"}); got != uierrors.KindUnavailable.Message() {
		t.Errorf("5xx should use the generic message, got %q", got)
	}
}
