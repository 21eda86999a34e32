package core

import (
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Conf is the application-wide configuration. It is set by NewConfig at startup.
var Conf *Config

type (
	ServerConfig struct {
		Host               string
		Port               int
		DebugHost          string
		JWTExpirationDelta time.Duration
		ShutdownTimeout    time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		Host          string
		Port          int
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	// PassThresholds are the minimum marks a subject entry must reach to pass.
	// These are configuration, not hardcoded business truth.
	PassThresholds struct {
		InternalMin int
		ExternalMin int
		TotalMin    int
	}

	// AttendanceBands are the percentage cutoffs for the eligibility bands.
	AttendanceBands struct {
		Eligible    float64 // >= Eligible: exam-eligible, no fee
		Condonation float64 // >= Condonation: exam-eligible, pays a condonation fee
		Medical     float64 // >= Medical: conditionally eligible pending certificate
	}

	Config struct {
		Debug    bool
		TestMode bool
		Env      string
		Build    string

		AppName         string
		SecretKey       string
		FrontendBaseURL string
		DefaultFromName string
		DefaultFromAddr string
		SendgridApiKey  string
		RollbarToken    string

		Server   ServerConfig
		Database DatabaseConfig

		PassMarks   PassThresholds
		Bands       AttendanceBands
		FeeSchedule map[string]int64 // department code -> annual tuition
		CourseYears int              // standard course length, drives tuition gap-filling
	}
)

func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.DefaultFromName, Address: c.DefaultFromAddr}
}

// NewConfig loads the configuration from defaults, an optional config/.env.<env>
// file and environment variables (in increasing order of precedence).
func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Darasa")
	v.SetDefault("secretKey", "phud0-nam)ejb$+41=kz&uogh7(h!x)#*c9(#yg2h^$cewm5emy")
	v.SetDefault("frontendBaseUrl", "http://localhost:3000")
	v.SetDefault("defaultFromName", "Darasa Reports")
	v.SetDefault("defaultFromEmail", "noreply@localhost")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.debugHost", "0.0.0.0:4000")
	v.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("server.shutdownTimeout", 5*time.Second)

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.name", "darasa")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.disableTls", true)

	v.SetDefault("passMarks.internalMin", 14)
	v.SetDefault("passMarks.externalMin", 21)
	v.SetDefault("passMarks.totalMin", 40)

	v.SetDefault("bands.eligible", 75.0)
	v.SetDefault("bands.condonation", 65.0)
	v.SetDefault("bands.medical", 60.0)

	v.SetDefault("courseYears", 4)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "stating %s", dotEnvPath)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	feeSchedule, err := parseFeeSchedule(v.GetStringMapString("feeSchedule"))
	if err != nil {
		return nil, err
	}

	conf := &Config{
		Debug:    v.GetBool("debug"),
		TestMode: env == "TEST",
		Env:      env,
		Build:    v.GetString("build"),

		AppName:         v.GetString("appName"),
		SecretKey:       v.GetString("secretKey"),
		FrontendBaseURL: v.GetString("frontendBaseUrl"),
		DefaultFromName: v.GetString("defaultFromName"),
		DefaultFromAddr: v.GetString("defaultFromEmail"),
		SendgridApiKey:  v.GetString("sendgridApiKey"),
		RollbarToken:    v.GetString("rollbarToken"),

		Server: ServerConfig{
			Host:               v.GetString("server.host"),
			Port:               v.GetInt("server.port"),
			DebugHost:          v.GetString("server.debugHost"),
			JWTExpirationDelta: v.GetDuration("server.jwtExpirationDelta"),
			ShutdownTimeout:    v.GetDuration("server.shutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("database.engine"),
			Name:          v.GetString("database.name"),
			Host:          v.GetString("database.host"),
			Port:          v.GetInt("database.port"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			DisableTLS:    v.GetBool("database.disableTls"),
		},

		PassMarks: PassThresholds{
			InternalMin: v.GetInt("passMarks.internalMin"),
			ExternalMin: v.GetInt("passMarks.externalMin"),
			TotalMin:    v.GetInt("passMarks.totalMin"),
		},
		Bands: AttendanceBands{
			Eligible:    v.GetFloat64("bands.eligible"),
			Condonation: v.GetFloat64("bands.condonation"),
			Medical:     v.GetFloat64("bands.medical"),
		},
		FeeSchedule: feeSchedule,
		CourseYears: v.GetInt("courseYears"),
	}

	Conf = conf
	return conf, nil
}

// parseFeeSchedule parses "feeSchedule" entries ({dept: annualTuition}) into int64 amounts.
func parseFeeSchedule(raw map[string]string) (map[string]int64, error) {
	schedule := make(map[string]int64, len(raw))
	for dept, amount := range raw {
		amt, err := strconv.ParseInt(amount, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing feeSchedule[%s]", dept)
		}
		schedule[strings.ToUpper(dept)] = amt
	}
	return schedule, nil
}
