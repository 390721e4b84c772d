package web

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context carries the request scoped context.Context alongside the gin
// context so repositories can read auth claims and deadlines from Ctx.
type Context struct {
	*gin.Context
	Ctx context.Context

	queryErrors []error
	paramErrors []error
}

// BindFunc binds the request body (json or form) into data and verifies the
// required fields are present.
func (c *Context) BindFunc(data interface{}, requiredFields ...string) error {
	if err := c.Bind(data); err != nil {
		return NewRequestError(errors.Wrap(err, "binding request"), http.StatusBadRequest)
	}

	v := reflect.ValueOf(data).Elem()
	var missing []string
	for _, field := range requiredFields {
		for _, name := range strings.Split(field, ",") {
			f := v.FieldByName(strings.TrimSpace(name))
			if !f.IsValid() {
				continue
			}
			if f.Kind() == reflect.Ptr && f.IsNil() {
				missing = append(missing, name)
				continue
			}
			if f.Kind() == reflect.String && f.String() == "" {
				missing = append(missing, name)
			}
		}
	}
	if len(missing) > 0 {
		return NewRequestError(errors.Errorf("required fields: %s", strings.Join(missing, ", ")), http.StatusBadRequest)
	}

	return nil
}

// GetQueryFunc reads an optional query parameter as the given kind. Missing
// parameters yield a typed nil pointer so callers can keep filters optional.
// Parse failures are collected and reported by ValidQuery.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	value, ok := c.GetQuery(name)

	switch kind {
	case reflect.Int:
		if !ok {
			return (*int)(nil)
		}
		number, err := strconv.Atoi(value)
		if err != nil {
			c.queryErrors = append(c.queryErrors, errors.Errorf("incorrect query %s: %s", name, value))
			return (*int)(nil)
		}
		return &number
	case reflect.Float64:
		if !ok {
			return (*float64)(nil)
		}
		number, err := strconv.ParseFloat(value, 64)
		if err != nil {
			c.queryErrors = append(c.queryErrors, errors.Errorf("incorrect query %s: %s", name, value))
			return (*float64)(nil)
		}
		return &number
	case reflect.Bool:
		if !ok {
			return (*bool)(nil)
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			c.queryErrors = append(c.queryErrors, errors.Errorf("incorrect query %s: %s", name, value))
			return (*bool)(nil)
		}
		return &b
	case reflect.String:
		if !ok {
			return (*string)(nil)
		}
		return &value
	}

	c.queryErrors = append(c.queryErrors, errors.Errorf("unsupported query kind for %s", name))
	return nil
}

// GetParam reads a required path parameter as the given kind. Failures are
// collected and reported by ValidParam.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	value := c.Param(name)

	switch kind {
	case reflect.Int:
		number, err := strconv.Atoi(value)
		if err != nil {
			c.paramErrors = append(c.paramErrors, errors.Errorf("incorrect param %s: %s", name, value))
			return 0
		}
		return number
	case reflect.String:
		return value
	}

	c.paramErrors = append(c.paramErrors, errors.Errorf("unsupported param kind for %s", name))
	return 0
}

// ValidQuery reports query parse errors accumulated by GetQueryFunc.
func (c *Context) ValidQuery() error {
	if len(c.queryErrors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(c.queryErrors))
	for _, err := range c.queryErrors {
		messages = append(messages, err.Error())
	}

	return NewRequestError(errors.New(strings.Join(messages, "; ")), http.StatusBadRequest)
}

// ValidParam reports path parameter parse errors accumulated by GetParam.
func (c *Context) ValidParam() error {
	if len(c.paramErrors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(c.paramErrors))
	for _, err := range c.paramErrors {
		messages = append(messages, err.Error())
	}

	return NewRequestError(errors.New(strings.Join(messages, "; ")), http.StatusBadRequest)
}

// Respond converts a Go value to JSON and sends it to the client.
func (c *Context) Respond(data interface{}, statusCode int) error {
	c.JSON(statusCode, data)
	return nil
}

// RespondError sends an error response to the client. Trusted errors carry
// their own status; everything else is reported as an internal error.
func (c *Context) RespondError(err error) error {
	if webErr, ok := IsRequestError(err); ok {
		c.JSON(webErr.Status, map[string]interface{}{
			"error":  webErr.Error(),
			"fields": webErr.Fields,
			"status": false,
		})
		return nil
	}

	c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error":  fmt.Sprintf("internal error: %v", err),
		"status": false,
	})
	return nil
}
