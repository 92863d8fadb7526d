package validator

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	trans     ut.Translator
	setupOnce sync.Once
)

// Setup registers English translations on gin's binding validator and makes
// error messages use JSON field names. Safe to call more than once.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*govalidator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)
	})
}

// Details turns a binding error into human-readable messages, one per failed
// field, sorted for stable output. Anything that is not a validation error
// (malformed JSON, wrong types) comes back as its own message.
func Details(err error) []string {
	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(ve))
	for _, fe := range ve {
		msg := fe.Error()
		if trans != nil {
			msg = fe.Translate(trans)
		}
		out = append(out, msg)
	}
	sort.Strings(out)
	return out
}
