package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RenzRoos/test/cmd/emutest/shared"
	"github.com/RenzRoos/test/internal/logger"
	"github.com/RenzRoos/test/internal/output"
)

const (
	envPrefix         = "EMUTEST"
	defaultEnvFile    = ".env"
	defaultConfigName = ".emutest"
)

// loadConfig resolves app.Config from, in decreasing precedence: flags, the
// environment, the .env file, the config file and flag defaults.
func (app *App) loadConfig(cmd *cobra.Command, args []string) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	if err := readConfigFile(v); err != nil {
		return WrapExitError(ExitFailure, "failed to read config file", err)
	}
	if err := app.mergeEnvFile(v); err != nil {
		return WrapExitError(ExitFailure, "failed to read env file", err)
	}

	if err := logger.Configure(v.GetString("log-level"), v.GetString("log-file")); err != nil {
		return WrapExitError(ExitFailure, "failed to configure logger", err)
	}

	cfg, err := configFromViper(v)
	if err != nil {
		return WrapExitError(ExitUsage, "invalid configuration", err)
	}
	if cmd == cmd.Root() && len(args) > 0 {
		cfg.TestFile = args[0]
	}
	app.Config = cfg

	logger.Debug("configuration loaded", "config_file", v.ConfigFileUsed(), "base_dir", cfg.BaseDir, "emulator", cfg.Emulator)
	return nil
}

func readConfigFile(v *viper.Viper) error {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		return v.ReadInConfig()
	}

	v.SetConfigName(defaultConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}

// mergeEnvFile layers EMUTEST_* entries of the env file over the config
// file. The process environment is left untouched and still wins.
func (app *App) mergeEnvFile(v *viper.Viper) error {
	if app.EnvFile == "" {
		return nil
	}

	data, err := os.ReadFile(app.EnvFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", app.EnvFile, err)
	}

	settings := make(map[string]interface{})
	for key, value := range envMap {
		name, ok := strings.CutPrefix(key, envPrefix+"_")
		if !ok || name == "" {
			continue
		}
		settings[strings.ToLower(strings.ReplaceAll(name, "_", "-"))] = value
	}

	return v.MergeConfigMap(settings)
}

func configFromViper(v *viper.Viper) (*shared.Config, error) {
	cfg := shared.NewConfig()

	cfg.Verbose = v.GetBool("verbose")
	cfg.FailFast = v.GetBool("fail-fast")
	cfg.BaseDir = v.GetString("dir")
	cfg.Emulator = v.GetString("emulator")
	cfg.TestDir = v.GetString("test-dir")
	cfg.Extension = v.GetString("ext")
	cfg.Timeout = v.GetDuration("timeout")
	cfg.Jobs = v.GetInt("jobs")
	cfg.Color = v.GetString("color")
	cfg.StripANSI = v.GetBool("strip-ansi")
	cfg.ReportFile = v.GetString("report")
	cfg.LogLevel = v.GetString("log-level")
	cfg.LogFile = v.GetString("log-file")

	codes, err := toIntSlice(v.Get("accept-exit"))
	if err != nil {
		return nil, fmt.Errorf("accept-exit: %w", err)
	}
	cfg.AcceptableExitCodes = codes

	if _, err := output.ParseColorMode(cfg.Color); err != nil {
		return nil, err
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = "."
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// toIntSlice accepts the shapes an int list takes in flags ([]int), config
// files ([]interface{}) and environment variables ("0,4" or "[0,4]").
func toIntSlice(raw interface{}) ([]int, error) {
	switch val := raw.(type) {
	case nil:
		return []int{}, nil
	case []int:
		return append([]int(nil), val...), nil
	case int:
		return []int{val}, nil
	case []string:
		return parseInts(val)
	case []interface{}:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = fmt.Sprint(item)
		}
		return parseInts(parts)
	case string:
		s := strings.TrimSpace(val)
		s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
		if strings.TrimSpace(s) == "" {
			return []int{}, nil
		}
		return parseInts(strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }))
	default:
		return nil, fmt.Errorf("unsupported value %v (%T)", raw, raw)
	}
}

func parseInts(parts []string) ([]int, error) {
	codes := make([]int, 0, len(parts))
	for _, part := range parts {
		code, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid exit code %q", part)
		}
		codes = append(codes, code)
	}
	return codes, nil
}
