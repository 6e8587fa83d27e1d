package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// HolidayRule is a named recurrence rule contributing holidays to a
// group's calendar, e.g. rrule "FREQ=YEARLY;BYMONTH=1;BYDAY=3MO"
type HolidayRule struct {
	Name  string `yaml:"name" json:"name" validate:"required"`
	RRule string `yaml:"rrule" json:"rrule" validate:"required"`
}

// Group configures one participant of a multi-group optimization
type Group struct {
	Name             string        `yaml:"name" json:"name" validate:"required"`
	Country          string        `yaml:"country,omitempty" json:"country,omitempty"`
	PTOBudget        int           `yaml:"ptoBudget" json:"pto_budget" validate:"min=0"`
	FloatingHolidays int           `yaml:"floatingHolidays,omitempty" json:"floating_holidays,omitempty" validate:"min=0"`
	Holidays         []string      `yaml:"holidays,omitempty" json:"holidays,omitempty"`
	Rules            []HolidayRule `yaml:"rules,omitempty" json:"rules,omitempty" validate:"dive"`
}

// Config represents a multi-group plan configuration file
type Config struct {
	Year   int     `yaml:"year,omitempty" json:"year,omitempty" validate:"omitempty,min=1900,max=2100"`
	Groups []Group `yaml:"groups" json:"groups" validate:"required,min=1,dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadFromPath loads and validates a group configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, the holiday date formats
// and the rrule syntax of every rule
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for gi, group := range cfg.Groups {
		for hi, h := range group.Holidays {
			if _, err := time.Parse("2006-01-02", h); err != nil {
				return fmt.Errorf("invalid holiday date in groups[%d].holidays[%d]: %q (use YYYY-MM-DD)", gi, hi, h)
			}
		}
		for ri, rule := range group.Rules {
			if _, err := rrule.StrToRRule(rule.RRule); err != nil {
				return fmt.Errorf("invalid rrule in groups[%d].rules[%d]: %w", gi, ri, err)
			}
		}
	}

	return nil
}
