package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"jobport/internal/common"
)

var validate = validator.New()

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return common.NewValidationError("invalid request body", map[string]string{"body": err.Error()})
	}
	if err := validate.Struct(dest); err != nil {
		fields := map[string]string{}
		var verrs validator.ValidationErrors
		if ok := isValidationErrors(err, &verrs); ok {
			for _, fe := range verrs {
				fields[strings.ToLower(fe.Field())] = "failed " + fe.Tag() + " validation"
			}
		}
		return common.NewValidationError("invalid request", fields)
	}
	return nil
}

func isValidationErrors(err error, dest *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*dest = verrs
	}
	return ok
}

// idFromPath extracts the path segment at index (zero-based) as a UUID.
func idFromPath(r *http.Request, index int) (common.UUID, error) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if index >= len(segments) {
		return "", common.NewValidationError("invalid path", map[string]string{"id": "id is required"})
	}
	parsed, err := common.ParseUUID(segments[index])
	if err != nil {
		return "", common.NewValidationError("invalid path", map[string]string{"id": "invalid uuid"})
	}
	return parsed, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}
