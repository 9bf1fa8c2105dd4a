package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v2"

	"github.com/willem4130/thecareranchintake/pkg/apihelpers"
	"github.com/willem4130/thecareranchintake/pkg/db"
	"github.com/willem4130/thecareranchintake/pkg/intake"
	"github.com/willem4130/thecareranchintake/pkg/intake/autosave"
	"github.com/willem4130/thecareranchintake/pkg/intake/session"
	"github.com/willem4130/thecareranchintake/pkg/magiclink"
	"github.com/willem4130/thecareranchintake/pkg/messaging"
	"github.com/willem4130/thecareranchintake/pkg/utils"

	intakeDB "github.com/willem4130/thecareranchintake/pkg/db/intake"
	userDB "github.com/willem4130/thecareranchintake/pkg/db/intake-user"
	smtpclient "github.com/willem4130/thecareranchintake/pkg/smtp-client"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_INTAKE_DB_USERNAME      = "INTAKE_DB_USERNAME"
	ENV_INTAKE_DB_PASSWORD      = "INTAKE_DB_PASSWORD"
	ENV_INTAKE_USER_DB_USERNAME = "INTAKE_USER_DB_USERNAME"
	ENV_INTAKE_USER_DB_PASSWORD = "INTAKE_USER_DB_PASSWORD"

	ENV_REDIS_PASSWORD = "REDIS_PASSWORD"

	ENV_INTAKE_USER_JWT_SIGN_KEY = "INTAKE_USER_JWT_SIGN_KEY"
)

type IntakeApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	AllowedInstanceIDs []string `json:"allowed_instance_ids" yaml:"allowed_instance_ids"`

	IntakeUserJWTConfig struct {
		SignKey   string        `json:"sign_key" yaml:"sign_key"`
		ExpiresIn time.Duration `json:"expires_in" yaml:"expires_in"`
	} `json:"intake_user_jwt_config" yaml:"intake_user_jwt_config"`

	// DB configs
	DBConfigs struct {
		IntakeDB     db.DBConfigYaml `json:"intake_db" yaml:"intake_db"`
		IntakeUserDB db.DBConfigYaml `json:"intake_user_db" yaml:"intake_user_db"`
	} `json:"db_configs" yaml:"db_configs"`

	RedisConfig struct {
		Addr     string `json:"addr" yaml:"addr"`
		Password string `json:"password" yaml:"password"`
		DB       int    `json:"db" yaml:"db"`
	} `json:"redis_config" yaml:"redis_config"`

	MagicLinkConfigs struct {
		TokenTTL       string `json:"token_ttl" yaml:"token_ttl"`
		RateLimitMax   int64  `json:"rate_limit_max" yaml:"rate_limit_max"`
		RateLimitEvery string `json:"rate_limit_every" yaml:"rate_limit_every"`
		SignInURLBase  string `json:"sign_in_url_base" yaml:"sign_in_url_base"`
	} `json:"magic_link_configs" yaml:"magic_link_configs"`

	AutoSaveConfigs struct {
		DebounceDelay        string `json:"debounce_delay" yaml:"debounce_delay"`
		SavedDisplayDuration string `json:"saved_display_duration" yaml:"saved_display_duration"`
		ErrorDisplayDuration string `json:"error_display_duration" yaml:"error_display_duration"`
		SaveTimeout          string `json:"save_timeout" yaml:"save_timeout"`
	} `json:"auto_save_configs" yaml:"auto_save_configs"`

	SmtpConfigs struct {
		ServerListFile string `json:"server_list_file" yaml:"server_list_file"`
	} `json:"smtp_configs" yaml:"smtp_configs"`

	FilestorePath string `json:"filestore_path" yaml:"filestore_path"`
}

var (
	intakeDBService     *intakeDB.IntakeDBService
	intakeUserDBService *userDB.IntakeUserDBService

	magicLinkStore *magiclink.Store
	sessionManager *session.Manager
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
	)

	// Override secrets from environment variables
	secretsOverride()

	// Init DBs
	initDBs()
	intake.Init(intakeDBService)

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	initMagicLinkStore()
	initSessionManager()
	initMessageSending()

	checkIntakeFilestorePath()
}

func checkIntakeFilestorePath() {
	// To store files attached to file upload answers
	fsPath := conf.FilestorePath
	if fsPath == "" {
		slog.Error("Filestore path not set - configure filestore_path in the config file.")
		panic("Filestore path not set")
	}

	if _, err := os.Stat(fsPath); os.IsNotExist(err) {
		slog.Error("Filestore path does not exist", slog.String("path", fsPath))
		panic("Filestore path does not exist")
	}
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_INTAKE_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.IntakeDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_INTAKE_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.IntakeDB.Password = dbPassword
	}

	if dbUsername := os.Getenv(ENV_INTAKE_USER_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.IntakeUserDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_INTAKE_USER_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.IntakeUserDB.Password = dbPassword
	}

	if redisPassword := os.Getenv(ENV_REDIS_PASSWORD); redisPassword != "" {
		conf.RedisConfig.Password = redisPassword
	}

	if signKey := os.Getenv(ENV_INTAKE_USER_JWT_SIGN_KEY); signKey != "" {
		conf.IntakeUserJWTConfig.SignKey = signKey
	}
}

func initDBs() {
	var err error
	intakeDBService, err = intakeDB.NewIntakeDBService(db.DBConfigFromYamlObj(conf.DBConfigs.IntakeDB, conf.AllowedInstanceIDs))
	if err != nil {
		slog.Error("Error connecting to Intake DB", slog.String("error", err.Error()))
		return
	}

	intakeUserDBService, err = userDB.NewIntakeUserDBService(db.DBConfigFromYamlObj(conf.DBConfigs.IntakeUserDB, conf.AllowedInstanceIDs))
	if err != nil {
		slog.Error("Error connecting to Intake User DB", slog.String("error", err.Error()))
		return
	}
}

func initMagicLinkStore() {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     conf.RedisConfig.Addr,
		Password: conf.RedisConfig.Password,
		DB:       conf.RedisConfig.DB,
	})

	magicLinkStore = magiclink.NewStore(redisClient, magiclink.StoreConfig{
		TokenTTL:       parseDurationOrPanic("magic_link_configs.token_ttl", conf.MagicLinkConfigs.TokenTTL),
		RateLimitMax:   conf.MagicLinkConfigs.RateLimitMax,
		RateLimitEvery: parseDurationOrPanic("magic_link_configs.rate_limit_every", conf.MagicLinkConfigs.RateLimitEvery),
	})
}

func initSessionManager() {
	sessionManager = session.NewManager(autosave.ControllerConfig{
		DebounceDelay:        parseDurationOrPanic("auto_save_configs.debounce_delay", conf.AutoSaveConfigs.DebounceDelay),
		SavedDisplayDuration: parseDurationOrPanic("auto_save_configs.saved_display_duration", conf.AutoSaveConfigs.SavedDisplayDuration),
		ErrorDisplayDuration: parseDurationOrPanic("auto_save_configs.error_display_duration", conf.AutoSaveConfigs.ErrorDisplayDuration),
		SaveTimeout:          parseDurationOrPanic("auto_save_configs.save_timeout", conf.AutoSaveConfigs.SaveTimeout),
	})
}

func initMessageSending() {
	if conf.SmtpConfigs.ServerListFile == "" {
		slog.Warn("no smtp server list file configured, sign-in emails will not be sent")
		return
	}

	serverList := smtpclient.SmtpServerList{}
	if err := serverList.ReadFromFile(conf.SmtpConfigs.ServerListFile); err != nil {
		slog.Error("Error reading smtp server list", slog.String("error", err.Error()))
		panic(err)
	}

	clients, err := smtpclient.NewSmtpClients(serverList)
	if err != nil {
		slog.Error("Error initializing smtp clients", slog.String("error", err.Error()))
		panic(err)
	}
	messaging.InitMessageSending(clients)
}

// parseDurationOrPanic is used for config values where zero means "use the
// default", so only a present but malformed value is fatal.
func parseDurationOrPanic(key string, value string) time.Duration {
	if value == "" {
		return 0
	}
	d, err := utils.ParseDurationString(value)
	if err != nil {
		slog.Error("error parsing duration from config", slog.String("key", key), slog.String("error", err.Error()))
		panic(err)
	}
	return d
}
