package cmd

import (
	"fmt"
	"os"

	"github.com/rudransh-shrivastava/peer-chat/internal/config"
	"github.com/rudransh-shrivastava/peer-chat/internal/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config
	log *logrus.Logger

	envFile     string
	identity    string
	dataDir     string
	logLevel    string
	messagePort int
	filePort    int
)

var rootCmd = &cobra.Command{
	Use:           `peerchat`,
	Short:         `direct peer to peer chat and file transfer`,
	Long:          `peerchat sends messages and files straight to other peers over TCP and keeps a local history per conversation`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if envFile != "" {
			cfg, err = config.Load(envFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}
		applyFlags(cmd)
		if err := cfg.Validate(); err != nil {
			return err
		}
		log = logger.NewLoggerWithLevel(os.Stderr, cfg.LogLevel)
		return nil
	},
}

func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("identity") {
		cfg.Identity = identity
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("message-port") {
		cfg.MessagePort = messagePort
	}
	if flags.Changed("file-port") {
		cfg.FilePort = filePort
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", "", "env file to load instead of ./.env")
	flags.StringVarP(&identity, "identity", "i", "", "local identity (PEERCHAT_IDENTITY)")
	flags.StringVar(&dataDir, "data-dir", "", "directory for history, downloads and the user directory (PEERCHAT_DATA_DIR)")
	flags.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (PEERCHAT_LOG_LEVEL)")
	flags.IntVar(&messagePort, "message-port", 0, "port for chat messages (PEERCHAT_MESSAGE_PORT)")
	flags.IntVar(&filePort, "file-port", 0, "port for file transfers (PEERCHAT_FILE_PORT)")

	rootCmd.AddCommand(listenCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(sendFileCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(conversationsCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(userCmd)
}
