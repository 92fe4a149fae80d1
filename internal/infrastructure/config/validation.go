package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return formatValidationErrors(fieldErrs)
		}
		return err
	}

	if err := c.validateOCI(); err != nil {
		return fmt.Errorf("oci configuration invalid: %w", err)
	}

	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("tracing configuration invalid: endpoint is required when tracing is enabled")
	}

	return nil
}

// validateOCI rejects a partial set of discrete credentials
func (c *Config) validateOCI() error {
	o := c.OCI
	if o.UseMock || o.HasDiscreteCredentials() {
		return nil
	}

	var missing []string
	set := 0
	for name, v := range map[string]string{
		"tenancy_id":  o.TenancyID,
		"user_id":     o.UserID,
		"fingerprint": o.Fingerprint,
		"key_file":    o.KeyFile,
	} {
		if v == "" {
			missing = append(missing, name)
		} else {
			set++
		}
	}
	if set == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("discrete credentials are incomplete, missing %s", strings.Join(missing, ", "))
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		field := strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Config."))
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s fails %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s fails %s", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
