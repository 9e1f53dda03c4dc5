package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig validates the entire configuration and returns all validation errors
func (c *Config) ValidateConfig() error {
	var validationErrors ValidationErrors

	sections := []struct {
		name  string
		value interface{}
		isNil bool
	}{
		{"general", c.General, c.General == nil},
		{"local", c.Local, c.Local == nil},
		{"hard_coded", c.HardCoded, c.HardCoded == nil},
		{"untrusted", c.Untrusted, c.Untrusted == nil},
		{"external", c.External, c.External == nil},
		{"server", c.Server, c.Server == nil},
	}
	for _, s := range sections {
		if s.isNil {
			validationErrors = append(validationErrors, ValidationError{
				FieldPath: s.name,
				Message:   fmt.Sprintf("configuration must contain '%s' section", s.name),
			})
		}
	}
	if len(validationErrors) > 0 {
		return validationErrors
	}

	for _, s := range sections {
		if err := validate.Struct(s.value); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, s.name, "")...)
		}
	}

	validationErrors = append(validationErrors, c.validateSources()...)
	validationErrors = append(validationErrors, c.validateDestination()...)

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

// validateSources checks that every configured input file can be opened.
func (c *Config) validateSources() ValidationErrors {
	var validationErrors ValidationErrors

	check := func(itemName, fieldPath, path string) {
		if path == "" {
			return
		}
		if err := checkReadable(path); err != nil {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: fieldPath,
				Message:   err.Error(),
			})
		}
	}

	check("local", "local.file", c.GetAbsLocalPath())
	check("hard-coded", "hard_coded.file", c.GetAbsHardCodedPath())
	check("untrusted", "untrusted.file", c.GetAbsUntrustedPath())

	if c.External.File == "" && c.External.URL != "" {
		path := c.GetAbsExternalPath()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  "external",
				FieldPath: "external.url",
				Message:   fmt.Sprintf("list is not downloaded yet (%s), run 'mergehosts download' first", path),
			})
			return validationErrors
		}
	}
	check("external", "external.file", c.GetAbsExternalPath())

	return validationErrors
}

func (c *Config) validateDestination() ValidationErrors {
	dest := c.GetAbsDestination()
	if dest == "" {
		return nil
	}

	dir := filepath.Dir(dest)
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return ValidationErrors{{
			FieldPath: "general.destination",
			Message:   fmt.Sprintf("directory %s does not exist", dir),
		}}
	}

	if fi, err := os.Stat(dest); err == nil && fi.IsDir() {
		return ValidationErrors{{
			FieldPath: "general.destination",
			Message:   fmt.Sprintf("%s is a directory", dest),
		}}
	}

	return nil
}

func checkReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file %s does not exist", path)
		}
		return fmt.Errorf("file %s is not readable: %v", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %v", path, err)
	}
	if fi.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// convertValidatorErrors converts validator errors to our ValidationErrors format
func convertValidatorErrors(err error, fieldPrefix string, itemName string) ValidationErrors {
	var validationErrors ValidationErrors

	var validatorErrs validator.ValidationErrors
	if stderrors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			fieldPath := fieldPrefix
			if e.Field() != "" {
				// e.Field() returns the TOML tag name because we registered TagNameFunc
				fieldName := e.Field()

				if fieldPrefix != "" {
					fieldPath = fieldPrefix + "." + fieldName
				} else {
					fieldPath = fieldName
				}
			}

			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: fieldPath,
				Message:   getValidationMessage(e),
			})
		}
	}

	return validationErrors
}
