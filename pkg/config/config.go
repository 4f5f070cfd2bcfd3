package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/kelseyhightower/envconfig"

	"github.com/angelmondragon/plu-backend/pkg/security"
)

const (
	EnvPrefix = "PLU"

	EnvAppEnv     = "PLU_APP_ENV"
	EnvMode       = "PLU_MODE"
	EnvPort       = "PLU_APP_PORT"
	EnvAppTitle   = "PLU_APP_TITLE"
	EnvSecretKey  = "PLU_SECRET_KEY"
	EnvDBDriver   = "PLU_DB_DRIVER"
	EnvDBDSN      = "PLU_DB_DSN"
	EnvDBHost     = "PLU_DB_HOST"
	EnvDBPort     = "PLU_DB_PORT"
	EnvDBName     = "PLU_DB_NAME"
	EnvDBUser     = "PLU_DB_USER"
	EnvDBPassword = "PLU_DB_PASSWORD"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var hostDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App  AppConfig
	DB   DBConfig
	HTTP HTTPConfig
}

// Load reads the process environment into an immutable Config value.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if _, err := cfg.App.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PLU_APP_ENV" default:"production"`
	Mode         string `envconfig:"PLU_MODE"`
	Port         string `envconfig:"PLU_APP_PORT" default:"8000"`
	LogLevel     string `envconfig:"PLU_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PLU_LOG_WARN_STACK" default:"false"`
	LogFile      string `envconfig:"PLU_LOG_FILE"`
	Title        string `envconfig:"PLU_APP_TITLE" default:"Cek Harga"`
	Subtitle     string `envconfig:"PLU_APP_SUBTITLE"`
	Timezone     string `envconfig:"PLU_TIMEZONE" default:"Local"`
	AutoMigrate  bool   `envconfig:"PLU_AUTO_MIGRATE" default:"false"`
}

// IsDev reports development mode. MODE wins over APP_ENV so `MODE=dev` keeps working.
func (a AppConfig) IsDev() bool {
	if a.Mode != "" {
		return strings.Contains(strings.ToLower(a.Mode), "dev")
	}
	return strings.EqualFold(a.Env, AppEnvDev) || strings.EqualFold(a.Env, "dev")
}

func (a AppConfig) IsProd() bool {
	return !a.IsDev()
}

// Location resolves the timezone used to derive the calendar date for promotions.
func (a AppConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(a.Timezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid %s_TIMEZONE %q: %w", EnvPrefix, name, err)
	}
	return loc, nil
}

type DBConfig struct {
	Driver string `envconfig:"PLU_DB_DRIVER" default:"mysql"`
	DSN    string `envconfig:"PLU_DB_DSN"`

	Host     string `envconfig:"PLU_DB_HOST" default:"localhost"`
	Port     int    `envconfig:"PLU_DB_PORT" default:"3306"`
	Name     string `envconfig:"PLU_DB_NAME" default:"test"`
	User     string `envconfig:"PLU_DB_USER" default:"user"`
	Password string `envconfig:"PLU_DB_PASSWORD"`
	SSLMode  string `envconfig:"PLU_DB_SSLMODE" default:"disable"`

	// SecretKey decrypts Password when set; see cmd/configure.
	SecretKey string `envconfig:"PLU_SECRET_KEY"`

	MaxOpenConns    int           `envconfig:"PLU_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PLU_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PLU_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PLU_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type HTTPConfig struct {
	StaticDir    string        `envconfig:"PLU_STATIC_DIR" default:"dist"`
	StaticPrefix string        `envconfig:"PLU_STATIC_PREFIX" default:"/assets"`
	GraphQLPath  string        `envconfig:"PLU_GRAPHQL_PATH" default:"/graphql"`
	CORSOrigins  []string      `envconfig:"PLU_CORS_ORIGINS" default:"http://localhost:5173,http://127.0.0.1:5173"`
	ReadTimeout  time.Duration `envconfig:"PLU_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"PLU_HTTP_WRITE_TIMEOUT" default:"15s"`
}

// PlainPassword returns the database password, decrypting it when a secret key is configured.
func (db DBConfig) PlainPassword() (string, error) {
	if db.Password == "" || db.SecretKey == "" {
		return db.Password, nil
	}
	plain, err := security.Decrypt(db.SecretKey, db.Password)
	if err != nil {
		return "", fmt.Errorf("decrypting %s: %w", EnvDBPassword, err)
	}
	return plain, nil
}

func (db *DBConfig) ensureDSN() error {
	db.Driver = strings.ToLower(strings.TrimSpace(db.Driver))
	switch db.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported %s %q", EnvDBDriver, db.Driver)
	}

	if db.DSN != "" {
		return nil
	}
	if db.Driver == DriverSQLite {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range hostDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	password, err := db.PlainPassword()
	if err != nil {
		return err
	}

	if db.Driver == DriverMySQL {
		mc := mysql.NewConfig()
		mc.User = db.User
		mc.Passwd = password
		mc.Net = "tcp"
		mc.Addr = fmt.Sprintf("%s:%d", db.Host, db.Port)
		mc.DBName = db.Name
		mc.ParseTime = true
		db.DSN = mc.FormatDSN()
		return nil
	}

	userInfo := url.User(db.User)
	if password != "" {
		userInfo = url.UserPassword(db.User, password)
	}
	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}
	db.DSN = u.String()
	return nil
}
