package relationship

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/go-arrower/relationship/inflect"
)

// Config is the file based configuration of a Synchronizer.
// It is intended to be mapped by viper, e.g.:
//
//	relations:
//	  - owner: Book
//	    property: authors
//	    target: Author
//	    inverse: books
//	    cardinality: many
//	plurals:
//	  person: people
type Config struct {
	Relations []RelationConfig `mapstructure:"relations" validate:"dive"`
	// Plurals are irregular plurals added to the english Pluralizer.
	Plurals map[string]string `mapstructure:"plurals"`
}

type RelationConfig struct {
	Owner       string      `mapstructure:"owner"       validate:"required"`
	Property    string      `mapstructure:"property"    validate:"required"`
	Target      string      `mapstructure:"target"      validate:"required"`
	Inverse     string      `mapstructure:"inverse"     validate:"required"`
	Cardinality Cardinality `mapstructure:"cardinality" validate:"omitempty,oneof=one many"`
}

// Registry returns a Registry of all configured relations.
func (c Config) Registry() (*Registry, error) {
	relations := make([]Relation, 0, len(c.Relations))

	for _, rel := range c.Relations {
		relations = append(relations, Relation{
			Owner:       rel.Owner,
			Property:    rel.Property,
			Target:      rel.Target,
			Inverse:     rel.Inverse,
			Cardinality: rel.Cardinality,
		})
	}

	return NewRegistry(relations...)
}

// Pluralizer returns the english Pluralizer extended by the configured irregular plurals.
func (c Config) Pluralizer() inflect.Pluralizer { //nolint:ireturn // callers depend on the interface only
	singulars := make([]string, 0, len(c.Plurals))
	for singular := range c.Plurals {
		singulars = append(singulars, singular)
	}

	slices.Sort(singulars)

	opts := make([]inflect.Option, 0, len(singulars))
	for _, singular := range singulars {
		opts = append(opts, inflect.WithIrregular(singular, c.Plurals[singular]))
	}

	return inflect.English(opts...)
}

// Options returns the options to configure a Synchronizer with this Config.
func (c Config) Options() ([]Option, error) {
	reg, err := c.Registry()
	if err != nil {
		return nil, err
	}

	return []Option{WithRelations(reg), WithPluralizer(c.Pluralizer())}, nil
}

// DefaultViper returns a new viper instance with all default values
// from Config set.
func DefaultViper() *Viper {
	vip := viper.New()

	vip.SetDefault("relations", []map[string]any{})
	vip.SetDefault("plurals", map[string]string{})

	return &Viper{Viper: vip}
}

// LoadConfig reads the configuration file at path, the format is detected from the file extension.
func LoadConfig(path string) (Config, error) {
	vip := DefaultViper()
	vip.SetConfigFile(path)

	if err := vip.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errConfigLoadFailed, err)
	}

	conf := Config{}
	if err := vip.Unmarshal(&conf); err != nil {
		return Config{}, err
	}

	if err := validator.New().Struct(conf); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errConfigLoadFailed, err) //nolint:errorlint // prevent err in api
	}

	return conf, nil
}

var errConfigLoadFailed = errors.New("loading configuration failed")

// Viper is a wrapper around viper.Viper for configuration loading.
// The only purpose is to overwrite the Unmarshal method,
// so that unsupported cardinalities are rejected while decoding.
type Viper struct {
	*viper.Viper
}

func (vip *Viper) Unmarshal(rawVal any, opts ...viper.DecoderConfigOption) error {
	opts = append(opts, viper.DecodeHook(allowedCardinalityHookFunc()))

	err := vip.Viper.Unmarshal(rawVal, opts...)
	if err != nil {
		return fmt.Errorf("%w: could not decode configuration into struct: %v", errConfigLoadFailed, err)
	}

	return nil
}

func allowedCardinalityHookFunc() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(Cardinality("")) {
			return data, nil
		}

		value, ok := data.(string)
		if !ok {
			return data, nil
		}

		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" || slices.Contains(Cardinalities(), Cardinality(value)) {
			return value, nil
		}

		c := make([]string, 0, len(Cardinalities()))
		for _, card := range Cardinalities() {
			c = append(c, string(card))
		}

		return data, fmt.Errorf("cardinality is not allowed, use one of: %s", strings.Join(c, ", ")) //nolint:err113,lll // accept dynamic error
	}
}
