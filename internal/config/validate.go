package config

import (
	"errors"
	"slices"
	"strings"

	"github.com/dshills/cefnav/internal/config/loader"
	"github.com/dshills/cefnav/internal/dom"
	"github.com/dshills/cefnav/internal/platform"
)

var (
	measurers = []string{MeasurerCell, MeasurerFont}
	levels    = []string{"debug", "info", "warn", "warning", "error"}
)

// validate checks every known setting in data. The returned error joins
// one *ValidationError per failing setting.
func validate(data map[string]any) error {
	var errs []error
	add := func(err *ValidationError) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	add(checkString(data, "platform", func(s string) *ValidationError {
		if _, err := platform.Resolve(s); err != nil {
			return &ValidationError{Path: "platform", Message: err.Error(), Value: s, Code: CodeEnum}
		}
		return nil
	}))
	for _, path := range []string{"content.atomicSelector", "content.inlineBoundarySelector"} {
		add(checkString(data, path, func(s string) *ValidationError {
			if err := dom.CompileSelector(s); err != nil {
				return &ValidationError{Path: path, Message: err.Error(), Value: s, Code: CodeSelector}
			}
			return nil
		}))
	}
	add(checkString(data, "layout.measurer", enum("layout.measurer", measurers)))
	add(checkString(data, "log.level", enum("log.level", levels)))

	if v, ok := loader.GetByPath(data, "layout.width"); ok {
		n, ok := toInt(v)
		switch {
		case !ok:
			add(&ValidationError{Path: "layout.width", Message: "must be an integer", Value: v, Code: CodeType})
		case n < 1:
			add(&ValidationError{Path: "layout.width", Message: "must be positive", Value: v, Code: CodeRange})
		}
	}
	if v, ok := loader.GetByPath(data, "keymap.files"); ok {
		if _, ok := toStrings(v); !ok {
			add(&ValidationError{Path: "keymap.files", Message: "must be a list of strings", Value: v, Code: CodeType})
		}
	}

	return errors.Join(errs...)
}

func checkString(data map[string]any, path string, check func(string) *ValidationError) *ValidationError {
	v, ok := loader.GetByPath(data, path)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return &ValidationError{Path: path, Message: "must be a string", Value: v, Code: CodeType}
	}
	return check(s)
}

func enum(path string, allowed []string) func(string) *ValidationError {
	return func(s string) *ValidationError {
		if slices.Contains(allowed, strings.ToLower(s)) {
			return nil
		}
		return &ValidationError{
			Path:    path,
			Message: "must be one of " + strings.Join(allowed, ", "),
			Value:   s,
			Code:    CodeEnum,
		}
	}
}
