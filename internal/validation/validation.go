package validation

import (
	"reflect"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"filmlink/internal/models"
)

// 最早的电影《朗德海花园场景》上映日
var earliestRelease = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// Register 挂接日期相关的自定义校验规则
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// 让 validator 把 models.Date 当普通 time.Time 处理
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(models.Date); ok {
			return d.Time
		}
		return nil
	}, models.Date{})

	_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return !t.After(time.Now())
	})

	_ = v.RegisterValidation("releasedate", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return !t.Before(earliestRelease)
	})
}
