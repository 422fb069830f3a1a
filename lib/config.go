package lib

import (
	"github.com/alecthomas/units"
)

const (
	ConfigFilePath  = "config.json"
	GenesisFilePath = "genesis.json"
)

// Config is the application configuration, assembled from per-module sections
type Config struct {
	MainConfig         // main options spanning over all modules
	StoreConfig        // persistence options
	StateMachineConfig // state machine options
}

// DefaultConfig() returns a Config with developer set options
func DefaultConfig() Config {
	return Config{
		MainConfig:         DefaultMainConfig(),
		StoreConfig:        DefaultStoreConfig(),
		StateMachineConfig: DefaultStateMachineConfig(),
	}
}

// MAIN CONFIG BELOW

type MainConfig struct {
	LogLevel string `json:"logLevel"` // any level includes the levels above it: debug < info < warn < error
	ChainId  uint64 `json:"chainId"`  // the identifier of this particular chain
}

// DefaultMainConfig() sets log level to 'info'
func DefaultMainConfig() MainConfig {
	return MainConfig{
		LogLevel: "info",
		ChainId:  1,
	}
}

// STORE CONFIG BELOW

type StoreConfig struct {
	DataDirPath string `json:"dataDirPath"` // the directory where the db and operator files live
	DBName      string `json:"dbName"`      // the name of the database directory
	InMemory    bool   `json:"inMemory"`    // run the database purely in memory (testing)
}

// DefaultStoreConfig() returns the developer defaults for persistence
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		DataDirPath: DefaultDataDirPath(),
		DBName:      "subchain",
	}
}

// STATE MACHINE CONFIG BELOW

type StateMachineConfig struct {
	MaxIdentityFieldSize int64 `json:"maxIdentityFieldSize"` // upper bound for a single subnet identity text field
}

// DefaultStateMachineConfig() returns the developer defaults for the fsm
func DefaultStateMachineConfig() StateMachineConfig {
	return StateMachineConfig{
		MaxIdentityFieldSize: int64(units.KB),
	}
}

// DefaultDataDirPath() is the default root directory for node data
func DefaultDataDirPath() string { return "./data" }

// WriteToFile() saves the Config object to its JSON file under the data directory
func (c Config) WriteToFile() ErrorI {
	return SaveJSONToFile(c, c.DataDirPath, ConfigFilePath)
}

// NewConfigFromFile() populates a Config object from a JSON file, layering over the defaults
func NewConfigFromFile(dataDirPath string) (Config, ErrorI) {
	c := DefaultConfig()
	c.DataDirPath = dataDirPath
	if err := NewJSONFromFile(&c, dataDirPath, ConfigFilePath); err != nil {
		return c, err
	}
	return c, nil
}
