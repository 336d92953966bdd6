package simplehttp

import (
	"fmt"
	"reflect"
)

func classify(value interface{}) Outcome {
	if isFalsy(value) {
		return Outcome{Kind: OutcomeAbsent}
	}
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.String {
		return Outcome{Kind: OutcomePresent, Text: v.String()}
	}
	return Outcome{Kind: OutcomeTypeMismatch, Type: v.Type()}
}

func isFalsy(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Complex64, reflect.Complex128:
		return v.Complex() == 0
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Ptr,
		reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}

func (k OutcomeKind) string() string {
	switch k {
	case OutcomeAbsent:
		return "absent"
	case OutcomePresent:
		return "present"
	case OutcomeTypeMismatch:
		return "type_mismatch"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", uint(k))
	}
}

func (e *InvalidResponseTypeError) error() string {
	return fmt.Sprintf("token: %s: %s, got: %s",
		e.Token, ErrInvalidResponseType, e.Type)
}
