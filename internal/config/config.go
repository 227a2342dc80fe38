package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/raimundomartins/rendimentos/internal/insurance"
	"github.com/raimundomartins/rendimentos/internal/salary"
)

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Port             string          `mapstructure:"port"`
	Log              LogConfig       `mapstructure:"log"`
	TaxTableRegistry string          `mapstructure:"tax_table_registry_url"`
	DefaultYear      int             `mapstructure:"default_year"`
	MetricsNamespace string          `mapstructure:"metrics_namespace"`
	Rates            salary.Rates    `mapstructure:"rates"`
	Insurance        insurance.Rates `mapstructure:"insurance"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("tax_table_registry_url", "")
	v.SetDefault("default_year", 2022)
	v.SetDefault("metrics_namespace", "payroll")

	r := salary.DefaultRates()
	v.SetDefault("rates.company_tsu", r.CompanyTSU)
	v.SetDefault("rates.worker_tsu", r.WorkerTSU)
	v.SetDefault("rates.salary_guarantee_fund", r.SalaryGuaranteeFund)
	v.SetDefault("rates.meal_card_tax", r.MealCardTax)
	v.SetDefault("rates.meal_card_cost", r.MealCardCost.Value())
	v.SetDefault("rates.unimputed_travel_expenses", r.UnimputedTravelExpenses)
	v.SetDefault("rates.retirement_fund_surcharge", r.RetirementFundSurcharge)
	v.SetDefault("rates.work_insurance", r.WorkInsurance)
	v.SetDefault("rates.work_accident_fund", r.WorkAccidentFund)
	v.SetDefault("rates.insurance_stamp", r.InsuranceStamp)
	v.SetDefault("rates.insurance_inem", r.InsuranceINEM)

	ins := insurance.DefaultRates()
	v.SetDefault("insurance.inem", ins.INEM)
	v.SetDefault("insurance.fat", ins.FAT)
	v.SetDefault("insurance.stamp", ins.Stamp)
}

// Load reads payroll.yaml from the working directory or /etc/payroll when
// present, then PAYROLL_* environment variables (a .env file is honoured).
// PORT is accepted unprefixed.
func Load() (Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	v.SetConfigName("payroll")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/payroll")
	v.AddConfigPath(".")

	v.SetEnvPrefix("PAYROLL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("port", "PAYROLL_PORT", "PORT"); err != nil {
		return Config{}, err
	}
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port cannot be empty")
	}
	if c.DefaultYear <= 0 {
		return fmt.Errorf("invalid default_year %d", c.DefaultYear)
	}
	for name, rate := range map[string]float64{
		"rates.company_tsu":           c.Rates.CompanyTSU,
		"rates.worker_tsu":            c.Rates.WorkerTSU,
		"rates.salary_guarantee_fund": c.Rates.SalaryGuaranteeFund,
		"rates.work_insurance":        c.Rates.WorkInsurance,
		"insurance.inem":              c.Insurance.INEM,
		"insurance.stamp":             c.Insurance.Stamp,
	} {
		if rate < 0 || rate >= 1 {
			return fmt.Errorf("%s must be in [0,1), got %v", name, rate)
		}
	}
	return nil
}
