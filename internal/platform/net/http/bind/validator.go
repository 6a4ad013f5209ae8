package bind

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Init initializes the singleton validator with english translations and json tag names
func Init() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		// messages read as "Title must be at least 5 characters"
		registerSized(v, trans, "min", "{0} must be at least {1}", "{0} must be at least {1} characters")
		registerSized(v, trans, "max", "{0} must be at most {1}", "{0} must be at most {1} characters")
		register(v, trans, "required", "{0} is required", nil)
		register(v, trans, "oneof", "{0} must be one of: {1}", func(fe validator.FieldError) string {
			return strings.Join(strings.Fields(fe.Param()), ", ")
		})
		register(v, trans, "uuid", "Invalid {0}", nil)
		register(v, trans, "uuid4", "Invalid {0}", nil)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc { return Init() }

// RegisterAlias maps alias onto tags and reports every failure with a fixed message
// must run before the first validation, e.g. from a package init
func RegisterAlias(alias, tags, message string) error {
	svc := Get()
	svc.Validator.RegisterAlias(alias, tags)
	return svc.Validator.RegisterTranslation(alias, svc.Translator,
		func(t ut.Translator) error { return t.Add(alias, message, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(alias)
			return msg
		},
	)
}

// Label turns a json field name into the label used in messages
// authorName -> Author name, id -> ID
func Label(name string) string {
	if name == "" {
		return name
	}
	if strings.EqualFold(name, "id") {
		return "ID"
	}
	var b strings.Builder
	for i, r := range name {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// registerSized adds a translation whose wording depends on whether the field is text
func registerSized(v *validator.Validate, trans ut.Translator, tag, numeric, text string) {
	textKey := tag + "-text"
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error {
			if err := t.Add(tag, numeric, true); err != nil {
				return err
			}
			return t.Add(textKey, text, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			key := tag
			if fe.Kind() == reflect.String {
				key = textKey
			}
			msg, _ := t.T(key, Label(fe.Field()), fe.Param())
			return msg
		},
	)
}

// register adds a single-message translation; param maps the tag param for {1}
func register(v *validator.Validate, trans ut.Translator, tag, text string, param func(validator.FieldError) string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			p := fe.Param()
			if param != nil {
				p = param(fe)
			}
			msg, _ := t.T(tag, Label(fe.Field()), p)
			return msg
		},
	)
}
