package dto

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/badhon18478/Marketplace-sub000/internal/domain"
	"github.com/badhon18478/Marketplace-sub000/internal/domain/browse"
)

// MaxActions caps the number of actions accepted in one browse request. It
// matches the max tag on BrowseRequest.Actions.
const MaxActions = 50

// ActionRequest is one textual edit of the listing view.
type ActionRequest struct {
	Op    string `json:"op" validate:"required,browse_op"`
	Value string `json:"value,omitempty"`
}

// BrowseRequest represents the JSON body for replaying edits against a
// listing view. Query is the view's current URL query string, with or
// without a leading "?".
type BrowseRequest struct {
	Query   string          `json:"query" validate:"url_query"`
	Actions []ActionRequest `json:"actions" validate:"max=50,dive"`
}

// requestValidator reports fields by their JSON names and knows the browse
// ops and URL query syntax.
var requestValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("browse_op", func(fl validator.FieldLevel) bool {
		_, err := browse.ParseOp(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("url_query", func(fl validator.FieldLevel) bool {
		_, err := url.ParseQuery(strings.TrimPrefix(fl.Field().String(), "?"))
		return err == nil
	})
	return v
})

// Validate checks that the query string parses and every op is known.
// Action values are validated when applied. Failures come back as a
// *domain.ValidationError keyed like "actions[2].op".
func (r *BrowseRequest) Validate() error {
	err := requestValidator().Struct(r)

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		// Namespace is "BrowseRequest.actions[1].op".
		_, path, _ := strings.Cut(fe.Namespace(), ".")
		fields[path] = fieldMessage(fe)
	}
	return &domain.ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return domain.MsgRequired
	case "max":
		return fmt.Sprintf("at most %s actions, got %d", fe.Param(), reflect.ValueOf(fe.Value()).Len())
	case "browse_op":
		return fmt.Sprintf("unknown operation %q", fe.Value())
	case "url_query":
		return "invalid query string"
	}
	return fe.Error()
}

// Params returns the parsed query string. Call Validate first; an unparsable
// query yields the pairs that could be parsed.
func (r *BrowseRequest) Params() url.Values {
	params, _ := url.ParseQuery(strings.TrimPrefix(r.Query, "?"))
	return params
}

// ToActions converts the request actions to domain actions. Call Validate
// first; unknown ops are passed through unchanged and rejected when applied.
func (r *BrowseRequest) ToActions() []browse.Action {
	actions := make([]browse.Action, len(r.Actions))
	for i, a := range r.Actions {
		op, err := browse.ParseOp(a.Op)
		if err != nil {
			op = browse.Op(a.Op)
		}
		actions[i] = browse.Action{Op: op, Value: a.Value}
	}
	return actions
}
