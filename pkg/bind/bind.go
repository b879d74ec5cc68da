// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/lanchonete/config"
	"github.com/shashiranjanraj/lanchonete/pkg/validate"
)

// Decode reads r.Body as JSON into dest. The body is capped at
// MAX_BODY_BYTES and unknown fields are rejected.
func Decode(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxBodyBytes())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// JSON decodes like Decode and then runs validation.
// Returns (errs, nil) when there are validation failures and (nil, err)
// when the body is malformed JSON or too large.
func JSON(w http.ResponseWriter, r *http.Request, dest any) (validate.Errors, error) {
	if err := Decode(w, r, dest); err != nil {
		return nil, err
	}
	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}
