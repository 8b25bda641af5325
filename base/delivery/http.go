package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/collectibles/domain"
	"github.com/x-xyz/collectibles/domain/listing"
	"github.com/x-xyz/collectibles/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

type errorBody struct {
	Error      string             `json:"error"`
	Violations []domain.Violation `json:"violations,omitempty"`
	Saga       *sagaBody          `json:"saga,omitempty"`
}

type sagaBody struct {
	Step            listing.SagaStep `json:"step"`
	Partial         bool             `json:"partial"`
	OrphanedAssetId string           `json:"orphanedAssetId,omitempty"`
}

// StatusOf maps an error kind to the http status reported for it
func StatusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, query.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBidTooLow), errors.Is(err, domain.ErrState):
		return http.StatusConflict
	case errors.Is(err, domain.ErrMarketplaceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrUpload), errors.Is(err, domain.ErrResolve):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = StatusOf(err)
		data = toErrorBody(err)
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}

func toErrorBody(err error) errorBody {
	body := errorBody{Error: err.Error()}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		body.Violations = verr.Violations
	}

	var serr *listing.SagaError
	if errors.As(err, &serr) {
		body.Saga = &sagaBody{Step: serr.Step, Partial: serr.Partial()}
		if serr.Orphaned() {
			body.Saga.OrphanedAssetId = serr.OrphanedAssetId.String()
		}
	}
	return body
}
