package config

const (
	// DefaultProjectPath is the directory results are stored under
	DefaultProjectPath = "."
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "last-run.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = ".microtest"
	// DefaultEnvFile is the dotenv file loaded from the project path
	DefaultEnvFile = ".env"
	// DefaultStorage is the default results storage driver
	DefaultStorage = StorageJSON
	// DefaultLogLevel keeps framework logs out of the test transcript
	DefaultLogLevel = "warn"
	// DefaultLogFormat is the default slog handler
	DefaultLogFormat = "text"

	// DefaultDBHost is the default MySQL host for the mysql storage driver
	DefaultDBHost = "127.0.0.1"
	// DefaultDBPort is the default MySQL port
	DefaultDBPort = "3306"
	// DefaultDBUser is the default MySQL user
	DefaultDBUser = "root"
	// DefaultDBName is the default MySQL database holding run history
	DefaultDBName = "microtest"
)

// Storage drivers
const (
	StorageJSON  = "json"
	StorageMySQL = "mysql"
	StorageNone  = "none"
)

// Environment variables read by LoadEnv
const (
	EnvStorage    = "MICROTEST_STORAGE"
	EnvOutputDir  = "MICROTEST_OUTPUT_DIR"
	EnvLogLevel   = "MICROTEST_LOG_LEVEL"
	EnvLogFormat  = "MICROTEST_LOG_FORMAT"
	EnvNoColor    = "NO_COLOR"
	EnvMySQLDSN   = "MICROTEST_MYSQL_DSN"
	EnvDBHost     = "MICROTEST_DB_HOST"
	EnvDBPort     = "MICROTEST_DB_PORT"
	EnvDBUser     = "MICROTEST_DB_USERNAME"
	EnvDBPassword = "MICROTEST_DB_PASSWORD"
	EnvDBName     = "MICROTEST_DB_DATABASE"
)
