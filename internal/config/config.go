package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App                   App                   `mapstructure:",squash"`
	Server                Server                `mapstructure:",squash"`
	Database              Database              `mapstructure:",squash"`
	AdsPlatform           AdsPlatform           `mapstructure:",squash"`
	InsightEngine         InsightEngine         `mapstructure:",squash"`
	InsightGenerationSync InsightGenerationSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type AdsPlatform struct {
	BaseURL     string `mapstructure:"ads_platform_base_url"`
	Version     string `mapstructure:"ads_platform_version"`
	URL         string `mapstructure:"-"`
	AccessToken string `mapstructure:"ads_platform_access_token"`
}

// InsightEngine externaliza os limiares das regras do motor de insights.
// Os defaults preservam os valores de referência das regras; alterar um
// limiar muda quais insights disparam, não o formato do insight.
type InsightEngine struct {
	CPAIncreaseThreshold        float64 `mapstructure:"insight_cpa_increase_threshold"`
	BudgetLostShareThreshold    float64 `mapstructure:"insight_budget_lost_share_threshold"`
	RankLostShareThreshold      float64 `mapstructure:"insight_rank_lost_share_threshold"`
	RankLostShareHighThreshold  float64 `mapstructure:"insight_rank_lost_share_high_threshold"`
	ConversionDropThreshold     float64 `mapstructure:"insight_conversion_drop_threshold"`
	ConversionDropHighThreshold float64 `mapstructure:"insight_conversion_drop_high_threshold"`
	StableCostTolerance         float64 `mapstructure:"insight_stable_cost_tolerance"`
	CampaignCostShareThreshold  float64 `mapstructure:"insight_campaign_cost_share_threshold"`
	CampaignConvDropThreshold   float64 `mapstructure:"insight_campaign_conversion_drop_threshold"`
	CPAEfficiencyThreshold      float64 `mapstructure:"insight_cpa_efficiency_threshold"`
	MinWastedSpend              float64 `mapstructure:"insight_min_wasted_spend"`
	HighWastedSpend             float64 `mapstructure:"insight_high_wasted_spend"`
	ExpirationDays              int     `mapstructure:"insight_expiration_days"`
}

type InsightGenerationSync struct {
	CronSchedule        string `mapstructure:"insight_generation_sync_cron"`
	LookbackDays        int    `mapstructure:"insight_generation_sync_lookback_days"`
	RequestDelaySeconds int    `mapstructure:"insight_generation_sync_request_delay_seconds"`
	MaxConcurrentJobs   int    `mapstructure:"insight_generation_sync_max_concurrent_jobs"`
	Enabled             bool   `mapstructure:"insight_generation_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/marketing_ops")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("ADS_PLATFORM_BASE_URL", "https://ads.api.internal")
	viper.SetDefault("ADS_PLATFORM_VERSION", "v2")
	viper.SetDefault("ADS_PLATFORM_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL

	// Limiar das regras do motor de insights (valores de referência)
	viper.SetDefault("INSIGHT_CPA_INCREASE_THRESHOLD", 25.0)             // CPA subiu >= 25%
	viper.SetDefault("INSIGHT_BUDGET_LOST_SHARE_THRESHOLD", 15.0)        // > 15% perdido por orçamento
	viper.SetDefault("INSIGHT_RANK_LOST_SHARE_THRESHOLD", 30.0)          // > 30% perdido por rank
	viper.SetDefault("INSIGHT_RANK_LOST_SHARE_HIGH_THRESHOLD", 50.0)     // > 50% vira impacto alto
	viper.SetDefault("INSIGHT_CONVERSION_DROP_THRESHOLD", 20.0)          // queda >= 20% de conversões
	viper.SetDefault("INSIGHT_CONVERSION_DROP_HIGH_THRESHOLD", 40.0)     // queda >= 40% vira impacto alto
	viper.SetDefault("INSIGHT_STABLE_COST_TOLERANCE", 10.0)              // custo estável: variação <= 10%
	viper.SetDefault("INSIGHT_CAMPAIGN_COST_SHARE_THRESHOLD", 20.0)      // campanha com > 20% do custo da conta
	viper.SetDefault("INSIGHT_CAMPAIGN_CONVERSION_DROP_THRESHOLD", 30.0) // queda >= 30% na campanha
	viper.SetDefault("INSIGHT_CPA_EFFICIENCY_THRESHOLD", 20.0)           // CPA >= 20% melhor que a média
	viper.SetDefault("INSIGHT_MIN_WASTED_SPEND", 50.0)                   // custo mínimo sem conversão (EUR)
	viper.SetDefault("INSIGHT_HIGH_WASTED_SPEND", 200.0)                 // desperdício total para impacto alto (EUR)
	viper.SetDefault("INSIGHT_EXPIRATION_DAYS", 7)

	// Defaults do agendador de geração de insights
	viper.SetDefault("INSIGHT_GENERATION_SYNC_CRON", "0 5 * * *") // Todos os dias às 5h da manhã
	viper.SetDefault("INSIGHT_GENERATION_SYNC_LOOKBACK_DAYS", 7)
	viper.SetDefault("INSIGHT_GENERATION_SYNC_REQUEST_DELAY_SECONDS", 2)
	viper.SetDefault("INSIGHT_GENERATION_SYNC_MAX_CONCURRENT_JOBS", 3)
	viper.SetDefault("INSIGHT_GENERATION_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.AdsPlatform.URL = fmt.Sprintf("%s/%s", config.AdsPlatform.BaseURL, config.AdsPlatform.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// loadEnvFile carrega o arquivo .env procurando nas localizações usuais
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
