package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Resolver finds config and env files for a service.
type Resolver struct {
	// Exists reports whether a candidate path is present; nil means stat on
	// the real filesystem.
	Exists func(path string) bool
}

// ResolvedFiles holds the chosen config and env file paths. Empty fields
// mean nothing was found.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// Resolve keeps explicit paths and searches the standard locations for the
// rest.
func (r Resolver) Resolve(serviceName, configFile, envFile string) ResolvedFiles {
	files := ResolvedFiles{ConfigFile: configFile, EnvFile: envFile}
	if files.ConfigFile == "" {
		files.ConfigFile = r.first(configCandidates(serviceName))
	}
	if files.EnvFile == "" {
		files.EnvFile = r.first(envCandidates(serviceName))
	}
	return files
}

func (r Resolver) exists(path string) bool {
	if r.Exists != nil {
		return r.Exists(path)
	}
	_, err := os.Stat(path)
	return err == nil
}

func (r Resolver) first(paths []string) string {
	for _, p := range paths {
		if r.exists(p) {
			return p
		}
	}
	return ""
}

// shortName strips everything up to the last dash: "speech-api" -> "api".
func shortName(serviceName string) string {
	if idx := strings.LastIndex(serviceName, "-"); idx != -1 {
		return serviceName[idx+1:]
	}
	return serviceName
}

func configCandidates(serviceName string) []string {
	names := []string{serviceName}
	if s := shortName(serviceName); s != serviceName {
		names = append(names, s)
	}

	var paths []string
	for _, prefix := range []string{".", "..", "../.."} {
		for _, name := range names {
			paths = append(paths, fmt.Sprintf("%s/cmd/%s/config.yml", prefix, name))
		}
	}
	return append(paths, "./config/config.yml", "../config/config.yml", "./config.yml")
}

func envCandidates(serviceName string) []string {
	var paths []string
	for _, file := range []string{".env." + serviceName, ".env"} {
		for _, dir := range []string{"./cmd/" + serviceName, "./config", ".", "..", "../.."} {
			paths = append(paths, dir+"/"+file)
		}
	}
	return paths
}

type loaderOptions struct {
	configFile string
	envFile    string
}

// LoaderOption configures LoadConfig.
type LoaderOption func(*loaderOptions)

// WithConfigFile reads path instead of searching for config.yml. A missing
// file is not an error.
func WithConfigFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.configFile = path }
}

// WithEnvFile loads path instead of searching for a .env file.
func WithEnvFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.envFile = path }
}

// LoadConfig resolves config files for serviceName and unmarshals them,
// with environment overrides applied, into cfg. Defaults and validation are
// left to the caller.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	var o loaderOptions
	for _, opt := range opts {
		opt(&o)
	}

	var resolver Resolver
	files := resolver.Resolve(serviceName, o.configFile, o.envFile)

	v := viper.New()
	if files.ConfigFile != "" && resolver.exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %s: %w", files.ConfigFile, err)
		}
	}

	// .env values never override variables already present in the environment.
	if files.EnvFile != "" && resolver.exists(files.EnvFile) {
		if err := godotenv.Load(files.EnvFile); err != nil {
			return fmt.Errorf("load env file %s: %w", files.EnvFile, err)
		}
	}
	bindEnv(v, os.Environ(), topLevelKeys(cfg))

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshal config for service %s: %w", serviceName, err)
	}
	return nil
}

// bindEnv sets each KEY=value pair under its nested key variants so that
// TRANSCRIPTION_WHISPER_URL reaches transcription.whisper.url as well as
// transcription.whisper_url. Only variables naming a top-level key of the
// target config are bound; scalar keys only match exactly.
func bindEnv(v *viper.Viper, environ []string, keys map[string]bool) {
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		lower := strings.ToLower(key)
		head, _, nested := strings.Cut(lower, "_")
		isSection, known := keys[head]
		_, exact := keys[lower]
		switch {
		case exact && !keys[lower]:
			v.Set(lower, value)
			continue
		case !known || !nested || !isSection:
			continue
		}
		for _, variant := range envKeyVariants(key) {
			v.Set(variant, value)
		}
	}
}

// topLevelKeys maps the mapstructure keys of cfg's top-level fields to
// whether they hold a nested section. Squashed embedded structs contribute
// their own fields.
func topLevelKeys(cfg interface{}) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(cfg)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return keys
	}
	collectKeys(t, keys)
	return keys
}

func collectKeys(t reflect.Type, keys map[string]bool) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		ft := f.Type
		for ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if f.Anonymous && strings.Contains(opts, "squash") && ft.Kind() == reflect.Struct {
			collectKeys(ft, keys)
			continue
		}
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		keys[name] = ft.Kind() == reflect.Struct || ft.Kind() == reflect.Map
	}
}

// envKeyVariants lists the dotted keys an environment variable may stand for:
//
//	SERVER_MAX_BODY_SIZE -> server_max_body_size, server.max.body.size,
//	                        server.max_body_size, server.max.body_size
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) == 1 {
		return []string{lower}
	}

	variants := []string{lower, strings.Join(parts, ".")}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}

	seen := make(map[string]bool, len(variants))
	out := variants[:0]
	for _, variant := range variants {
		if !seen[variant] {
			seen[variant] = true
			out = append(out, variant)
		}
	}
	return out
}
