package database

import (
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/miromero13/certeth/pkg/logger"
)

type DatabaseConfigJson struct {
	Driver string `json:"driver"`
	Dsn    string `json:"dsn"`
}

type DatabaseConfig struct {
	Driver string
	Dsn    string
}

func (dcj DatabaseConfigJson) ConvertToDomain() DatabaseConfig {
	return DatabaseConfig{
		Driver: dcj.Driver,
		Dsn:    dcj.Dsn,
	}
}

var (
	connection *gorm.DB
	connectMu  sync.Mutex
)

// ConnectToDatabase opens the configured database and stores it as the shared
// process-wide connection. sqlite serves development and tests, postgres is
// the deployment target.
func ConnectToDatabase(cfg DatabaseConfig) *gorm.DB {
	connectMu.Lock()
	defer connectMu.Unlock()

	dbLogger := logger.Default()
	dbLogger.Infof("Establishing %s database connection", cfg.Driver)

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Dsn)
	default:
		dialector = sqlite.Open(cfg.Dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		dbLogger.Fatal(err, "Cannot establish database connection")
	}

	connection = db
	return db
}

func GetDatabaseConnection() *gorm.DB {
	if connection == nil {
		panic("database connection not initialized: call ConnectToDatabase() first")
	}
	return connection
}
