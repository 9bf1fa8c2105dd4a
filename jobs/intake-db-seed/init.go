package main

import (
	"os"

	"gopkg.in/yaml.v2"

	"github.com/willem4130/thecareranchintake/pkg/db"
	"github.com/willem4130/thecareranchintake/pkg/utils"

	intakeDB "github.com/willem4130/thecareranchintake/pkg/db/intake"
	userDB "github.com/willem4130/thecareranchintake/pkg/db/intake-user"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_INTAKE_DB_USERNAME      = "INTAKE_DB_USERNAME"
	ENV_INTAKE_DB_PASSWORD      = "INTAKE_DB_PASSWORD"
	ENV_INTAKE_USER_DB_USERNAME = "INTAKE_USER_DB_USERNAME"
	ENV_INTAKE_USER_DB_PASSWORD = "INTAKE_USER_DB_PASSWORD"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		IntakeDB     db.DBConfigYaml `json:"intake_db" yaml:"intake_db"`
		IntakeUserDB db.DBConfigYaml `json:"intake_user_db" yaml:"intake_user_db"`
	} `json:"db_configs" yaml:"db_configs"`

	InstanceIDs []string `json:"instance_ids" yaml:"instance_ids"`

	AdminUser struct {
		Email string `json:"email" yaml:"email"`
		Name  string `json:"name" yaml:"name"`
	} `json:"admin_user" yaml:"admin_user"`
}

var (
	conf config

	intakeDBService     *intakeDB.IntakeDBService
	intakeUserDBService *userDB.IntakeUserDBService
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

	secretsOverride()

	intakeDBService, err = intakeDB.NewIntakeDBService(db.DBConfigFromYamlObj(conf.DBConfigs.IntakeDB, conf.InstanceIDs))
	if err != nil {
		panic(err)
	}

	intakeUserDBService, err = userDB.NewIntakeUserDBService(db.DBConfigFromYamlObj(conf.DBConfigs.IntakeUserDB, conf.InstanceIDs))
	if err != nil {
		panic(err)
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
}
