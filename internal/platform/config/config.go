// internal/platform/config/config.go
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// ToolConfig es la configuración por herramienta.
type ToolConfig struct {
	// Enabled habilita o deshabilita la herramienta
	Enabled bool `yaml:"enabled"`

	// TimeoutS timeout por intento en segundos (0 = default del descriptor)
	TimeoutS int `yaml:"timeout"`
}

// Config es la configuración completa del proceso.
// Precedencia: defaults -> fichero yaml -> ENV -> flags.
type Config struct {
	// App
	Target       string `yaml:"target"`
	Check        bool   `yaml:"-"`
	PrintVersion bool   `yaml:"-"`

	// Política de reintentos del supervisor
	Retries     int `yaml:"retries"`
	RetryDelayS int `yaml:"retry_delay"`

	// IO
	DBPath    string `yaml:"db_path"`
	OutputDir string `yaml:"output_dir"`
	NoTable   bool   `yaml:"no_table"`

	// Tools: configuración por herramienta, key = nombre (ej: "subfinder")
	Tools map[string]ToolConfig `yaml:"tools"`
}

// DefaultConfig retorna la configuración por defecto.
func DefaultConfig() Config {
	return Config{
		Target:      "",
		Retries:     1,
		RetryDelayS: 5,

		DBPath:    "scopetree.db",
		OutputDir: "scopetree_out",
		NoTable:   false,

		Tools: map[string]ToolConfig{
			"subfinder":   {Enabled: true, TimeoutS: 0},
			"amass":       {Enabled: true, TimeoutS: 0},
			"assetfinder": {Enabled: true, TimeoutS: 0},
			"findomain":   {Enabled: true, TimeoutS: 0},
		},
	}
}

// Load inicializa la configuración: defaults, luego fichero yaml (ruta en
// SCOPETREE_CONFIG o ./scopetree.yaml si existe), luego ENV, luego flags
// (los flags tienen prioridad).
func Load() (Config, error) {
	cfg := DefaultConfig()

	path := os.Getenv("SCOPETREE_CONFIG")
	if path == "" {
		if _, err := os.Stat("scopetree.yaml"); err == nil {
			path = "scopetree.yaml"
		}
	}
	if path != "" {
		if err := loadFromFile(&cfg, path); err != nil {
			return cfg, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	loadFromEnv(&cfg)

	fs := pflag.NewFlagSet("scopetree", pflag.ExitOnError)
	applyToolFlags := registerFlags(fs, &cfg)
	if err := fs.Parse(os.Args[1:]); err != nil {
		return cfg, err
	}
	applyToolFlags()

	normalize(&cfg)
	return cfg, nil
}

// loadFromFile carga el fichero yaml sobre los defaults.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// loadFromEnv carga configuración desde variables de entorno.
// Formato por herramienta: SCOPETREE_TOOLS_SUBFINDER_ENABLED=false
//                          SCOPETREE_TOOLS_SUBFINDER_TIMEOUT=60
func loadFromEnv(cfg *Config) {
	if v := getenv("SCOPETREE_TARGET", ""); v != "" {
		cfg.Target = v
	}
	if v := getenv("SCOPETREE_RETRIES", ""); v != "" {
		cfg.Retries = parseInt(v, cfg.Retries)
	}
	if v := getenv("SCOPETREE_RETRY_DELAY", ""); v != "" {
		cfg.RetryDelayS = parseInt(v, cfg.RetryDelayS)
	}
	if v := getenv("SCOPETREE_DB_PATH", ""); v != "" {
		cfg.DBPath = v
	}
	if v := getenv("SCOPETREE_OUTPUT_DIR", ""); v != "" {
		cfg.OutputDir = v
	}

	for name := range cfg.Tools {
		prefix := fmt.Sprintf("SCOPETREE_TOOLS_%s_", strings.ToUpper(name))

		toolCfg := cfg.Tools[name]
		if v := getenv(prefix+"ENABLED", ""); v != "" {
			toolCfg.Enabled = parseBool(v)
		}
		if v := getenv(prefix+"TIMEOUT", ""); v != "" {
			toolCfg.TimeoutS = parseInt(v, toolCfg.TimeoutS)
		}
		cfg.Tools[name] = toolCfg
	}
}

// registerFlags registra los flags de CLI sobre los valores ya cargados.
// Los flags por herramienta se vinculan a variables intermedias (los valores
// de un map no son direccionables); la función retornada los vuelca al map
// tras el parseo.
func registerFlags(fs *pflag.FlagSet, cfg *Config) func() {
	fs.StringVarP(&cfg.Target, "target", "t", cfg.Target, "Dominio objetivo (e.g., example.com)")
	fs.BoolVar(&cfg.Check, "check", false, "Listar herramientas y su disponibilidad, sin escanear")
	fs.BoolVar(&cfg.PrintVersion, "version", false, "Imprimir versión y salir")

	fs.IntVar(&cfg.Retries, "retries", cfg.Retries, "Reintentos adicionales por herramienta")
	fs.IntVar(&cfg.RetryDelayS, "retry-delay", cfg.RetryDelayS, "Espera fija entre intentos en segundos")

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Ruta de la base de datos de scope")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Directorio de salida")
	fs.BoolVar(&cfg.NoTable, "no-table", cfg.NoTable, "Desactivar salida en tabla (JSON siempre se genera)")

	// Flags por herramienta: --tool.subfinder / --tool.subfinder.timeout
	names := make([]string, 0, len(cfg.Tools))
	for name := range cfg.Tools {
		names = append(names, name)
	}
	sort.Strings(names)

	bindings := make(map[string]*ToolConfig, len(names))
	for _, name := range names {
		bound := cfg.Tools[name]
		fs.BoolVar(&bound.Enabled, fmt.Sprintf("tool.%s", name), bound.Enabled,
			fmt.Sprintf("Habilitar herramienta %s", name))
		fs.IntVar(&bound.TimeoutS, fmt.Sprintf("tool.%s.timeout", name), bound.TimeoutS,
			fmt.Sprintf("Timeout en segundos para %s (0 = default)", name))
		bindings[name] = &bound
	}

	return func() {
		for name, bound := range bindings {
			cfg.Tools[name] = *bound
		}
	}
}

// normalize sanea valores fuera de rango.
func normalize(cfg *Config) {
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.RetryDelayS < 0 {
		cfg.RetryDelayS = 0
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "scopetree_out"
	}
}

// IsEnabled implementa ports.ConfigStore.
// Una herramienta ausente de la configuración queda habilitada: el default
// lo gobierna su descriptor.
func (c Config) IsEnabled(tool string) bool {
	toolCfg, ok := c.Tools[tool]
	if !ok {
		return true
	}
	return toolCfg.Enabled
}

// TimeoutFor implementa ports.ConfigStore.
// Cero significa "usar el default del descriptor".
func (c Config) TimeoutFor(tool string) time.Duration {
	toolCfg, ok := c.Tools[tool]
	if !ok || toolCfg.TimeoutS <= 0 {
		return 0
	}
	return time.Duration(toolCfg.TimeoutS) * time.Second
}

// RetryDelay retorna la espera entre intentos como duración.
func (c Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayS) * time.Second
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return b
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
