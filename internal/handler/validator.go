package handler

import (
    "github.com/go-playground/validator/v10"
    "github.com/labstack/echo/v4"
)

// RequestValidator plugs go-playground/validator into echo so handlers
// can call c.Validate on bound request bodies.
type RequestValidator struct {
    v *validator.Validate
}

func NewValidator() *RequestValidator {
    return &RequestValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

func (rv *RequestValidator) Validate(i interface{}) error {
    return rv.v.Struct(i)
}

// bind decodes the request body into req and validates it.  On failure
// it returns the message for a 400 response.
func bind(c echo.Context, req interface{}) (string, bool) {
    if err := c.Bind(req); err != nil {
        return "invalid request body", false
    }
    if c.Echo().Validator != nil {
        if err := c.Validate(req); err != nil {
            return err.Error(), false
        }
    }
    return "", true
}
