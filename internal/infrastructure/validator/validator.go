package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Reelrank/internal/usecase/contract"
)

// AppValidator implements the usecase.Validator interface.
type AppValidator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator that implements the usecase.Validator interface.
func NewValidator() usecasecontract.IValidator {
	v := validator.New()
	registerReelValidators(v)
	return &AppValidator{validate: v}
}

// ValidateID checks that id is a UUID, the format every reel, track and user ID uses.
func (av *AppValidator) ValidateID(id string) error {
	if err := av.validate.Var(id, "required,uuid"); err != nil {
		return fmt.Errorf("invalid id %q", id)
	}
	return nil
}

// ValidateStruct runs the struct's validate tags and flattens the failures.
func (av *AppValidator) ValidateStruct(s interface{}) error {
	err := av.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// RegisterCustomValidators registers custom validation functions with the Gin validator.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerReelValidators(v)
	}
}

func registerReelValidators(v *validator.Validate) {
	_ = v.RegisterValidation("visibility", visibilityFL)
	_ = v.RegisterValidation("feedtype", feedTypeFL)
	_ = v.RegisterValidation("mediakind", mediaKindFL)
}

func visibilityFL(fl validator.FieldLevel) bool {
	return entity.Visibility(fl.Field().String()).IsValid()
}

func feedTypeFL(fl validator.FieldLevel) bool {
	return entity.FeedType(fl.Field().String()).IsValid()
}

func mediaKindFL(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "video", "thumbnail", "audio":
		return true
	}
	return false
}
