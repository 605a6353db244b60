package validation

import (
	"errors"
	"myflix_api/internal/common"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// FieldError is one itemized validation failure.
type FieldError struct {
	Value    interface{} `json:"value"`
	Msg      string      `json:"msg"`
	Param    string      `json:"param"`
	Location string      `json:"location"`
}

// Errors is returned when a request body fails validation. It unwraps to
// common.ErrValidation.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e Errors) Unwrap() error { return common.ErrValidation }

// messages maps "<field>.<tag>" to the text reported to the client.
var messages = map[string]string{
	"Username.min":      "Username is required",
	"Username.alphanum": "Username contains non alphanumeric characters - not allowed.",
	"Password.required": "Password is required",
	"Email.email":       "Email does not appear to be valid",
	"Birthday.birthday": "Birthday must be a date (YYYY-MM-DD)",
	"MovieID.mongodb":   "MovieID is not a valid movie identifier",
}

var birthdayLayouts = []string{"2006-01-02", time.RFC3339}

// ParseBirthday accepts a plain date or an RFC 3339 timestamp.
func ParseBirthday(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range birthdayLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("birthday", func(fl validator.FieldLevel) bool {
		_, err := ParseBirthday(fl.Field().String())
		return err == nil
	})
	return &Validator{validate: v}
}

// Struct validates a request body.
func (v *Validator) Struct(s interface{}) error {
	return v.StructIn(s, "body")
}

// StructIn validates s and returns Errors with one item per failing rule,
// or nil. location names where the fields came from (body, params, query).
func (v *Validator) StructIn(s interface{}, location string) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		for _, tag := range v.failingTags(s, fe) {
			out = append(out, FieldError{
				Value:    fe.Value(),
				Msg:      messageFor(fe.Field(), tag),
				Param:    fe.Field(),
				Location: location,
			})
		}
	}
	return out
}

// failingTags returns fe's tag followed by every later rule on the same
// field that also rejects the value. validator stops at the first failure
// per field.
func (v *Validator) failingTags(s interface{}, fe validator.FieldError) []string {
	tags := []string{fe.Tag()}

	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return tags
	}
	sf, ok := t.FieldByName(fe.StructField())
	if !ok {
		return tags
	}
	rules := strings.Split(sf.Tag.Get("validate"), ",")
	seen := false
	for _, rule := range rules {
		if !seen {
			seen = rule == fe.ActualTag() || strings.HasPrefix(rule, fe.ActualTag()+"=")
			continue
		}
		if rule == "omitempty" || strings.ContainsAny(rule, "|") || strings.HasPrefix(rule, "dive") {
			continue
		}
		if v.validate.Var(fe.Value(), rule) != nil {
			tags = append(tags, strings.SplitN(rule, "=", 2)[0])
		}
	}
	return tags
}

func messageFor(field, tag string) string {
	if msg, ok := messages[field+"."+tag]; ok {
		return msg
	}
	return "Invalid value"
}
