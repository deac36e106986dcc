package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clanhub/backend/pkg/errorx"
	"github.com/clanhub/backend/pkg/xcontext"
)

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{
		Code: 0,
		Data: data,
	}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
			Data:  errx.Data,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

func httpStatus(err error) int {
	errx := errorx.Error{}
	if !errors.As(err, &errx) {
		return http.StatusInternalServerError
	}

	switch errx.Code {
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.Unauthenticated:
		return http.StatusUnauthorized
	case errorx.PermissionDenied:
		return http.StatusForbidden
	case errorx.Internal, errorx.Unknown.Code:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func handleResponse(ctx context.Context) {
	w := xcontext.HTTPWriter(ctx)
	w.Header().Set("Content-Type", "application/json")

	if err := xcontext.Error(ctx); err != nil {
		w.WriteHeader(httpStatus(err))
		if err := writeJson(w, newErrorResponse(err)); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot write the error response: %v", err)
		}

		return
	}

	if resp := xcontext.Response(ctx); resp != nil {
		if err := writeJson(w, newResponse(resp)); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
		}
	}
}

func writeJson(w http.ResponseWriter, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	if _, err := w.Write(b); err != nil {
		return err
	}

	return nil
}
