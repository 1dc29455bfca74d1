package core

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags & texts
	uniEmailTag  = "uniemail"
	uniEmailText = "a valid institutional email address is required"

	phMobileTag   = "phmobile"
	phMobileText  = "a valid 11-digit mobile number starting with 09 is required"
	phMobileRegex = regexp.MustCompile(`^09\d{9}$`)

	otpCodeTag   = "otpcode"
	otpCodeText  = "the code must be exactly 6 digits"
	otpCodeRegex = regexp.MustCompile(`^\d{6}$`)

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"

	// UniEmailDomain is the institutional domain suffix required of student
	// emails at registration time. Overridden from Config.Demo.EmailDomain
	// by the composition root.
	UniEmailDomain = "university.edu.ph"
)

// Instantiate the validator for use.
func init() {
	Validate = validator.New()

	// Register the english error messages for validation errors.
	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = Validate.RegisterValidation(uniEmailTag, uniEmailValidation)
	RegisterCustomTranslation(uniEmailTag, uniEmailText)

	_ = Validate.RegisterValidation(phMobileTag, phMobileValidation)
	RegisterCustomTranslation(phMobileTag, phMobileText)

	_ = Validate.RegisterValidation(otpCodeTag, otpCodeValidation)
	RegisterCustomTranslation(otpCodeTag, otpCodeText)

	RegisterCustomTranslation(requiredTag, requiredText, true)
	RegisterCustomTranslation(requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

// uniEmailValidation requires a well-formed email ending with the institutional domain.
func uniEmailValidation(fl validator.FieldLevel) bool {
	email := fl.Field().String()
	if err := Validate.Var(email, "email"); err != nil {
		return false
	}
	return strings.HasSuffix(email, "@"+UniEmailDomain)
}

// phMobileValidation only allows local-format mobile numbers (11 digits, "09" prefix).
func phMobileValidation(fl validator.FieldLevel) bool {
	return phMobileRegex.MatchString(fl.Field().String())
}

// otpCodeValidation only allows exactly 6 digits.
func otpCodeValidation(fl validator.FieldLevel) bool {
	return otpCodeRegex.MatchString(fl.Field().String())
}
