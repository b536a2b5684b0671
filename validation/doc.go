// Package validation validates config sections and request input.
//
// Struct tag validation goes through go-playground/validator and reports
// fields by their json or mapstructure names:
//
//	type Config struct {
//	    Port int `mapstructure:"port" validate:"gt=0,lte=65535"`
//	}
//	err := validation.Validate(cfg)
//
// Checks that tags cannot express go through a Checker, which collects
// field errors before failing once:
//
//	err := validation.New().
//	    Range("port", c.Port, 0, 65535).
//	    OneOf("format", format, []string{"json", "srt", "csv"}).
//	    Err()
package validation
