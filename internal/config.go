package internal

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/tuannm99/novatuple/internal/catalog"
	"github.com/tuannm99/novatuple/internal/storage"
)

type NovaTupleConfig struct {
	AppName string `mapstructure:"app_name" validate:"required"`

	Storage struct {
		Workdir  string `mapstructure:"workdir" validate:"required"`
		PageSize int    `mapstructure:"page_size" validate:"min=64"`
	} `mapstructure:"storage"`

	Tables []catalog.TableSpec `mapstructure:"tables" validate:"dive"`
}

// LoadConfig reads a YAML config file. Any key can be overridden from the
// environment with the NOVATUPLE_ prefix, e.g. NOVATUPLE_STORAGE_PAGE_SIZE.
func LoadConfig(path string) (*NovaTupleConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("app_name", "novatuple")
	v.SetDefault("storage.workdir", "./data")
	v.SetDefault("storage.page_size", storage.PageSize)

	v.SetEnvPrefix("NOVATUPLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg NovaTupleConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
