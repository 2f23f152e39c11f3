package router

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	cnPhonePattern     = regexp.MustCompile(`^1[3458]\d{9}$`)
	registerValidators sync.Once
)

// RegisterValidators 向 gin 的校验器注册自定义规则，并让错误字段名取 json 标签
func RegisterValidators() {
	registerValidators.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("cnphone", validateCNPhone)
	})
}

func validateCNPhone(fl validator.FieldLevel) bool {
	return cnPhonePattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}
