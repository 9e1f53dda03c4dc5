package config

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/miekg/dns"

	"github.com/mergehosts/mergehosts/src/internal/hosts"
)

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "min":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", e.Param())
		}
		return fmt.Sprintf("must be >= %s", e.Param())
	case "max":
		return fmt.Sprintf("must be <= %s", e.Param())
	case "url":
		return "must be a valid URL"
	case "ip":
		return "must be a valid IP address"
	case "hostname_port":
		return "must be in format 'host:port'"
	case "hostname_dns":
		return fmt.Sprintf("must be a valid hostname, got %q", e.Value())
	case "template":
		return fmt.Sprintf("must be a comment line using only {{%s}} and {{%s}}", hosts.TmplTimestamp, hosts.TmplCount)
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	ItemName  string // For sources: the source kind (e.g., "untrusted")
	FieldPath string // Dot-notation field path (e.g., "general.sinkhole", "local.addresses.0")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		if err.ItemName != "" {
			sb.WriteString(fmt.Sprintf("  %d. [%s] %s: %s\n", i+1, err.ItemName, err.FieldPath, err.Message))
		} else {
			sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
		}
	}
	return sb.String()
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validators
	if err := validate.RegisterValidation("hostname_dns", validateHostnameDNS); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("template", validateTemplate); err != nil {
		panic(err)
	}

	// Register function to get field name from "toml" tag
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validator: hostname as it may appear in a hosts file
func validateHostnameDNS(fl validator.FieldLevel) bool {
	return isValidHostname(fl.Field().String())
}

func isValidHostname(name string) bool {
	if name == "" || strings.ContainsAny(name, " \t#") {
		return false
	}
	_, ok := dns.IsDomainName(name)
	return ok
}

// Custom validator: header/footer template
func validateTemplate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return validateTemplateString(value) == nil
}

func validateTemplateString(value string) error {
	for _, line := range strings.Split(value, "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), "#") {
			return fmt.Errorf("line %q is not a comment", line)
		}
	}

	t, err := hosts.ParseTemplate(value)
	if err != nil {
		return err
	}

	var unknown []string
	t.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		if tag != hosts.TmplTimestamp && tag != hosts.TmplCount {
			unknown = append(unknown, tag)
		}
		return 0, nil
	})
	if len(unknown) > 0 {
		return fmt.Errorf("unknown template variables: %s", strings.Join(unknown, ", "))
	}
	return nil
}
