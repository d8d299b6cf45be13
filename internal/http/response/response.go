package response

import (
	"encoding/json"
	"net/http"

	"jobport/internal/common"
	"jobport/internal/http/metrics"
)

var errorCollector *metrics.Collector

// SetErrorCollector wires the metrics collector error responses are counted
// against.
func SetErrorCollector(c *metrics.Collector) {
	errorCollector = c
}

func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

type errorBody struct {
	Code    common.Code       `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func Error(w http.ResponseWriter, err error) {
	code := common.CodeOf(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError && errorCollector != nil {
		errorCollector.IncErrors()
	}
	body := errorBody{Code: code, Message: "internal error"}
	var appErr *common.Error
	if e, ok := err.(*common.Error); ok {
		appErr = e
	}
	if appErr != nil && status < http.StatusInternalServerError {
		body.Message = appErr.Message
		body.Fields = appErr.Fields
	}
	JSON(w, status, body)
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation, common.CodeInvalidRating:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict, common.CodeDuplicateApplication, common.CodeCapacityExceeded,
		common.CodePositionsFilled, common.CodeTooManyOpenApplications, common.CodeAlreadyEmployed,
		common.CodeInvalidTransition, common.CodeNotEligible, common.CodeStorageConflict:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
