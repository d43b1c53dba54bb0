// Package validation turns user input into field-level errors using
// go-playground/validator with the note domain rules registered on top.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/kanbord/internal/common"
	"github.com/dmitrijs2005/kanbord/internal/server/models"
	"github.com/go-playground/validator/v10"
)

// Messages returned to clients, keyed by JSON field name.
const (
	MsgTitle       = "Title must be between 1 and 100 characters"
	MsgContent     = "Content must be between 1 and 2000 characters"
	MsgCategory    = "Invalid category"
	MsgPriority    = "Invalid priority"
	MsgDueDate     = "Invalid due date format"
	MsgTags        = "Tags must be an array"
	MsgTag         = "Tag cannot be more than 20 characters"
	MsgIsCompleted = "isCompleted must be a boolean"

	MsgFirstName     = "First name is required"
	MsgLastName      = "Last name is required"
	MsgEmail         = "Please provide a valid email"
	MsgPassword      = "Password must be at least 6 characters"
	MsgPasswordLogin = "Password is required"
	MsgEmailTaken    = "User already exists with this email"

	MsgPage  = "Page must be a positive integer"
	MsgLimit = "Limit must be between 1 and 100"
)

var noteMessages = map[string]string{
	"title":    MsgTitle,
	"content":  MsgContent,
	"category": MsgCategory,
	"priority": MsgPriority,
	"dueDate":  MsgDueDate,
	"tags":     MsgTag,
}

var registerMessages = map[string]string{
	"firstName": MsgFirstName,
	"lastName":  MsgLastName,
	"email":     MsgEmail,
	"password":  MsgPassword,
}

var loginMessages = map[string]string{
	"email":    MsgEmail,
	"password": MsgPasswordLogin,
}

var listMessages = map[string]string{
	"page":  MsgPage,
	"limit": MsgLimit,
}

// Validator is safe for concurrent use once built.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseCategory(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		_, ok := models.ParsePriority(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseDueDate(fl.Field().String())
		return ok
	})

	return &Validator{v: v}
}

// Note checks a normalized NoteInput. When creating, absent title and
// content count as empty.
func (v *Validator) Note(in models.NoteInput, creating bool) *common.ValidationError {
	if creating {
		empty := ""
		if in.Title == nil {
			in.Title = &empty
		}
		if in.Content == nil {
			in.Content = &empty
		}
	}
	return v.collect(v.v.Struct(in), noteMessages)
}

func (v *Validator) Register(in models.RegisterInput) *common.ValidationError {
	return v.collect(v.v.Struct(in), registerMessages)
}

func (v *Validator) Login(in models.LoginInput) *common.ValidationError {
	return v.collect(v.v.Struct(in), loginMessages)
}

type pageRange struct {
	Page  int `json:"page" validate:"min=1"`
	Limit int `json:"limit" validate:"min=1,max=100"`
}

func (v *Validator) Page(p models.PageRequest) *common.ValidationError {
	out := v.collect(v.v.Struct(pageRange{Page: p.Page, Limit: p.Limit}), listMessages)
	if len(out.Fields) == 0 && !p.InRange() {
		out.Add("page", MsgPage)
	}
	return out
}

// collect flattens validator output into one entry per field. Indexed
// names such as tags[3] are reported under their parent field.
func (v *Validator) collect(err error, messages map[string]string) *common.ValidationError {
	out := &common.ValidationError{}
	if err == nil {
		return out
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Add("body", err.Error())
		return out
	}

	for _, fe := range verrs {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if out.Has(field) {
			continue
		}
		msg, ok := messages[field]
		if !ok {
			msg = fe.Error()
		}
		out.Add(field, msg)
	}
	return out
}
