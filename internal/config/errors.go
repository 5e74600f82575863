package config

import (
	"fmt"
	"sort"
)

// ValidationError describes one invalid setting. Path is the YAML path of
// the setting and File, when known, the file it was read from.
type ValidationError struct {
	Path string
	File string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.File != "" && e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.File, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() []error {
	return []error{e.Err, ErrInvalid}
}

func sortValidationErrors(errs []error) {
	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].(*ValidationError).Path < errs[j].(*ValidationError).Path
	})
}

// attachFile records the file name on every validation error in err.
func attachFile(err error, file string) error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		if _, single := err.(*ValidationError); !single {
			for _, e := range joined.Unwrap() {
				if ve, ok := e.(*ValidationError); ok {
					ve.File = file
				}
			}
			return err
		}
	}
	if ve, ok := err.(*ValidationError); ok {
		ve.File = file
	}
	return err
}
