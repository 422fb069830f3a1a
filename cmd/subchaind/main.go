package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/subchain-network/subchain/fsm"
	"github.com/subchain-network/subchain/lib"
	"github.com/subchain-network/subchain/lib/crypto"
	"github.com/subchain-network/subchain/store"
)

// SoftwareVersion is the release version of the node binary
const SoftwareVersion = "0.1.0"

var dataDirPath string

var rootCmd = &cobra.Command{
	Use:   "subchaind",
	Short: "subchaind runs and inspects a subnet registry chain node",
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "initialize the chain state and start the node",
	Run: func(cmd *cobra.Command, args []string) {
		config, log := loadConfig()
		db, err := store.New(config, log)
		if err != nil {
			log.Fatal(err.Error())
		}
		defer db.Close()
		sm, err := fsm.New(config, db, log)
		if err != nil {
			log.Fatal(err.Error())
		}
		if db.Version() == 0 {
			if err = db.Commit(); err != nil {
				log.Fatal(err.Error())
			}
		}
		log.Infof("node started at height %d", sm.Height())
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "export the current chain state in the genesis file format",
	Run: func(cmd *cobra.Command, args []string) {
		config, log := loadConfig()
		db, err := store.New(config, log)
		if err != nil {
			log.Fatal(err.Error())
		}
		defer db.Close()
		sm, err := fsm.New(config, db, log)
		if err != nil {
			log.Fatal(err.Error())
		}
		state, err := sm.ExportState()
		if err != nil {
			log.Fatal(err.Error())
		}
		bz, err := lib.MarshalJSONIndent(state)
		if err != nil {
			log.Fatal(err.Error())
		}
		if _, e := os.Stdout.Write(append(bz, '\n')); e != nil {
			log.Fatal(e.Error())
		}
	},
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "generate an ed25519 keypair and print its derived address",
	Run: func(cmd *cobra.Command, args []string) {
		_, log := loadConfig()
		private, public, err := crypto.NewED25519KeyPair()
		if err != nil {
			log.Fatal(err.Error())
		}
		bz, e := lib.MarshalJSONIndent(struct {
			Address    string       `json:"address"`
			PublicKey  lib.HexBytes `json:"publicKey"`
			PrivateKey lib.HexBytes `json:"privateKey"`
		}{public.Address().String(), public.Bytes(), lib.HexBytes(private)})
		if e != nil {
			log.Fatal(e.Error())
		}
		if _, writeErr := os.Stdout.Write(append(bz, '\n')); writeErr != nil {
			log.Fatal(writeErr.Error())
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the software version",
	Run: func(cmd *cobra.Command, args []string) {
		os.Stdout.WriteString(SoftwareVersion + "\n")
	},
}

// loadConfig() reads the config file under the data directory, layering over defaults,
// and builds the node logger from it
func loadConfig() (lib.Config, lib.LoggerI) {
	config, err := lib.NewConfigFromFile(dataDirPath)
	if err != nil {
		// a missing config file runs on defaults
		config = lib.DefaultConfig()
		config.DataDirPath = dataDirPath
	}
	log := lib.NewLogger(lib.LoggerConfig{
		Level: lib.StringToLogLevel(config.LogLevel),
		Out:   os.Stdout,
	}, config.DataDirPath)
	return config, log
}

func main() {
	rootCmd.PersistentFlags().StringVar(&dataDirPath, "data-dir", lib.DefaultDataDirPath(), "path to the node data directory")
	rootCmd.AddCommand(startCmd, exportCmd, keygenCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
