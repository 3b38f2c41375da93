// Package config loads the service configuration: host settings from YAML
// with environment overrides, plus the tunable economy and regulation
// parameters of the simulation.
package config

import (
	"fmt"
	"os"
	"strconv"

	yaml "gopkg.in/yaml.v2"
)

// Config is the root configuration document.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Journal    JournalConfig    `yaml:"journal"`
	Redis      RedisConfig      `yaml:"redis"`
	Economy    EconomyConfig    `yaml:"economy"`
	Regulation RegulationConfig `yaml:"regulation"`
}

type ServerConfig struct {
	Port         int    `yaml:"port"`
	ReadTimeout  int    `yaml:"read_timeout_seconds"`
	WriteTimeout int    `yaml:"write_timeout_seconds"`
	LogLevel     string `yaml:"log_level"`
}

// JournalConfig selects the event-log backend.
type JournalConfig struct {
	Backend  string `yaml:"backend"` // memory, file, postgres
	FilePath string `yaml:"file_path"`
	DSN      string `yaml:"dsn"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LoanProduct is the terms of one loan kind.
type LoanProduct struct {
	AnnualRate  float64 `yaml:"annual_rate"`
	TermWeeks   int     `yaml:"term_weeks"` // 0 = revolving
	CreditFloor int     `yaml:"credit_floor"`
}

// EconomyConfig holds the deterministic economic constants. Every number
// the ticker and the command handlers use lives here so scenarios are
// reproducible and tunable without code changes.
type EconomyConfig struct {
	StartingCash      float64 `yaml:"starting_cash"`
	CreditLimit       float64 `yaml:"credit_limit"`
	StartingRent      float64 `yaml:"starting_rent"`
	SuppliesCostLoad  float64 `yaml:"supplies_cost_per_load"`
	UtilitiesCostLoad float64 `yaml:"utilities_cost_per_load"`
	InsuranceWeekly   float64 `yaml:"insurance_weekly"`
	OtherCostsWeekly  float64 `yaml:"other_costs_weekly"`
	TaxRate           float64 `yaml:"tax_rate"`
	ReferencePrice    float64 `yaml:"reference_price"`
	CostPerLoad       float64 `yaml:"cost_per_load"`

	EquipmentPrices map[string]float64     `yaml:"equipment_prices"`
	LoanProducts    map[string]LoanProduct `yaml:"loan_products"`

	MaintenanceRoutineCost  float64 `yaml:"maintenance_routine_cost"`
	MaintenanceRoutineGain  float64 `yaml:"maintenance_routine_gain"`
	MaintenanceDeepCost     float64 `yaml:"maintenance_deep_cost"`
	MaintenanceDeepGain     float64 `yaml:"maintenance_deep_gain"`
	MaintenanceOverhaulCost float64 `yaml:"maintenance_overhaul_cost"`

	CharityDollarsPerPoint float64 `yaml:"charity_dollars_per_point"`
	CharitySocialCap       float64 `yaml:"charity_social_cap"`
}

// RegulationConfig holds the regulator's thresholds.
type RegulationConfig struct {
	WageFloor           float64 `yaml:"wage_floor"`
	PredatoryFraction   float64 `yaml:"predatory_fraction"` // of cost-per-load
	PredatoryFine       float64 `yaml:"predatory_fine"`
	LaborFine           float64 `yaml:"labor_fine"`
	FineDueWeeks        int     `yaml:"fine_due_weeks"`
	ScandalSeverityCap  float64 `yaml:"scandal_severity_cap"`
	CollusionMsgLimit   int     `yaml:"collusion_message_limit"`
	CollusionWindowWeek int     `yaml:"collusion_window_weeks"`
	CollusionPriceBand  float64 `yaml:"collusion_price_band"`
	MonotonicityWindow  int     `yaml:"monotonicity_window"`
}

// Default returns the baseline configuration the simulation scenarios
// assume.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  15,
			WriteTimeout: 15,
			LogLevel:     "info",
		},
		Journal: JournalConfig{Backend: "memory"},
		Redis:   RedisConfig{Addr: "localhost:6379"},
		Economy: EconomyConfig{
			StartingCash:      10000,
			CreditLimit:       5000,
			StartingRent:      1200,
			SuppliesCostLoad:  0.50,
			UtilitiesCostLoad: 0.25,
			InsuranceWeekly:   150,
			OtherCostsWeekly:  50,
			TaxRate:           0.21,
			ReferencePrice:    3.50,
			CostPerLoad:       0.75,
			EquipmentPrices: map[string]float64{
				"WASHER":  2000,
				"DRYER":   1200,
				"VENDING": 800,
			},
			LoanProducts: map[string]LoanProduct{
				"LOC":       {AnnualRate: 0.08, TermWeeks: 0, CreditFloor: 30},
				"EQUIPMENT": {AnnualRate: 0.06, TermWeeks: 24, CreditFloor: 40},
				"EXPANSION": {AnnualRate: 0.07, TermWeeks: 52, CreditFloor: 55},
				"EMERGENCY": {AnnualRate: 0.12, TermWeeks: 8, CreditFloor: 20},
			},
			MaintenanceRoutineCost:  50,
			MaintenanceRoutineGain:  15,
			MaintenanceDeepCost:     150,
			MaintenanceDeepGain:     35,
			MaintenanceOverhaulCost: 500,
			CharityDollarsPerPoint:  100,
			CharitySocialCap:        50,
		},
		Regulation: RegulationConfig{
			WageFloor:           12.00,
			PredatoryFraction:   0.8,
			PredatoryFine:       500,
			LaborFine:           1000,
			FineDueWeeks:        4,
			ScandalSeverityCap:  1.5,
			CollusionMsgLimit:   3,
			CollusionWindowWeek: 2,
			CollusionPriceBand:  0.02,
			MonotonicityWindow:  200,
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("JOURNAL_BACKEND"); v != "" {
		cfg.Journal.Backend = v
	}
	if v := os.Getenv("JOURNAL_FILE"); v != "" {
		cfg.Journal.FilePath = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Journal.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
		cfg.Redis.Enabled = true
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
}

func (c *Config) validate() error {
	switch c.Journal.Backend {
	case "memory":
	case "file":
		if c.Journal.FilePath == "" {
			return fmt.Errorf("config: journal.file_path required for file backend")
		}
	case "postgres":
		if c.Journal.DSN == "" {
			return fmt.Errorf("config: journal.dsn required for postgres backend")
		}
	default:
		return fmt.Errorf("config: unknown journal backend %q", c.Journal.Backend)
	}
	if c.Economy.TaxRate < 0 || c.Economy.TaxRate > 1 {
		return fmt.Errorf("config: economy.tax_rate must be in [0,1]")
	}
	if c.Regulation.PredatoryFraction <= 0 || c.Regulation.PredatoryFraction > 1 {
		return fmt.Errorf("config: regulation.predatory_fraction must be in (0,1]")
	}
	return nil
}
