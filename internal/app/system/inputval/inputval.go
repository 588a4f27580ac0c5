// Package inputval validates form input with go-playground/validator struct
// tags and turns failures into user-facing messages.
//
// Tag a struct with `validate:"..."` rules and a `label:"..."` used in
// messages; `form:"..."` names the field in FieldError.Field.
//
//	type parishInput struct {
//	    Name      string `form:"name" validate:"required,max=200" label:"Name"`
//	    DioceseID int64  `form:"diocese_id" validate:"gt=0" label:"Diocese"`
//	}
package inputval

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/dalemusser/diocesehub/internal/domain/models"
	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Message string
}

// Result collects the failures of one Validate call.
type Result struct {
	Errors []FieldError
}

func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Fields maps form field name to its first message.
func (r *Result) Fields() map[string]string {
	out := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		if _, seen := out[e.Field]; !seen {
			out[e.Field] = e.Message
		}
	}
	return out
}

var (
	once     sync.Once
	validate *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if name, _, _ := strings.Cut(f.Tag.Get("form"), ","); name != "" && name != "-" {
				return name
			}
			return strings.ToLower(f.Name)
		})
		must(v.RegisterValidation("email", func(fl validator.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		}))
		must(v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
			return IsValidHTTPURL(fl.Field().String())
		}))
		must(v.RegisterValidation("website", func(fl validator.FieldLevel) bool {
			return IsValidWebsite(fl.Field().String())
		}))
		must(v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			return IsValidTime(fl.Field().String())
		}))
		must(v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
			return IsValidWeekday(fl.Field().String())
		}))
		must(v.RegisterValidation("stateabbrev", func(fl validator.FieldLevel) bool {
			return stateAbbrevRE.MatchString(fl.Field().String())
		}))
		validate = v
	})
	return validate
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Validate runs the struct's rules. s must be a struct or pointer to one.
func Validate(s any) *Result {
	res := &Result{}
	err := get().Struct(s)
	if err == nil {
		return res
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Errors = append(res.Errors, FieldError{Message: err.Error()})
		return res
	}
	labels := labelsOf(s)
	for _, fe := range verrs {
		label := labels[fe.StructField()]
		if label == "" {
			label = fe.Field()
		}
		res.Errors = append(res.Errors, FieldError{Field: fe.Field(), Message: message(fe, label)})
	}
	return res
}

func labelsOf(s any) map[string]string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]string{}
	if t.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if l := f.Tag.Get("label"); l != "" {
			out[f.Name] = l
		}
	}
	return out
}

func message(fe validator.FieldError, label string) string {
	switch fe.Tag() {
	case "required", "required_if", "required_unless":
		return label + " is required."
	case "gt":
		if fe.Kind() == reflect.Int64 || fe.Kind() == reflect.Int {
			return "Please choose a " + strings.ToLower(label) + "."
		}
		return fmt.Sprintf("%s must be greater than %s.", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Choose at least %s %s.", fe.Param(), strings.ToLower(label))
		}
		return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
	case "email":
		return "A valid email address is required."
	case "httpurl", "website":
		return label + " must be a valid web address."
	case "hhmm":
		return label + " must be a time like 09:30."
	case "weekday":
		return label + " must be a day of the week."
	case "stateabbrev":
		return label + " must be 2 or 3 capital letters."
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "dive":
		return label + " is invalid."
	}
	return label + " is invalid."
}

/*─────────────────────────────────────────────────────────────────────────────*
| Standalone checks                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// IsValidEmail accepts a bare RFC 5322 address (single-label domains
// allowed), rejecting display-name forms, spaces and misplaced dots.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t") {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndex(s, "@")
	local, domain := s[:at], s[at+1:]
	for _, part := range []string{local, domain} {
		if part == "" || strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") || strings.Contains(part, "..") {
			return false
		}
	}
	return true
}

// IsValidHTTPURL accepts absolute http(s) URLs with a host.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsValidWebsite is IsValidHTTPURL after adding https:// to a bare host,
// so "example.org" is accepted.
func IsValidWebsite(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	if !IsValidHTTPURL(s) {
		return false
	}
	u, _ := url.Parse(s)
	return strings.Contains(u.Hostname(), ".") || u.Hostname() == "localhost"
}

var (
	timeRE        = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	stateAbbrevRE = regexp.MustCompile(`^[A-Z]{2,3}$`)
)

// IsValidTime accepts a 24-hour HH:MM time of day.
func IsValidTime(s string) bool {
	return timeRE.MatchString(strings.TrimSpace(s))
}

// IsValidWeekday accepts an English day name, case-insensitively.
func IsValidWeekday(s string) bool {
	s = strings.TrimSpace(s)
	for _, d := range models.Weekdays {
		if strings.EqualFold(d, s) {
			return true
		}
	}
	return false
}
