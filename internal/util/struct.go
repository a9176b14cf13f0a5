package util

import (
	"reflect"

	"github.com/pkg/errors"
)

// IsStructInitialized reports nil exported pointer/interface/map/func fields
// of a struct, used for readiness checks of long-lived component holders.
func IsStructInitialized(s interface{}) error {
	v := reflect.Indirect(reflect.ValueOf(s))
	if v.Kind() != reflect.Struct {
		return errors.New("expected a struct")
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		if !t.Field(i).IsExported() {
			continue
		}

		// fields tagged ready:"-" are optional components
		if t.Field(i).Tag.Get("ready") == "-" {
			continue
		}

		f := v.Field(i)
		switch f.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Func, reflect.Chan:
			if f.IsNil() {
				return errors.Errorf("field %q is not initialized", t.Field(i).Name)
			}
		}
	}

	return nil
}
