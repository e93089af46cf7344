package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arkcrm/automation/config"
	"github.com/arkcrm/automation/container"
	"github.com/arkcrm/automation/engine"
	"github.com/arkcrm/automation/metadata"
	"github.com/arkcrm/automation/rest"
	"github.com/arkcrm/automation/service"
)

type cfg struct {
	config.Config
}

type cli struct {
	cfg cfg
}

func setupFlags(cmd *cobra.Command) error {
	cmd.Flags().String("config-file", "", "Path to config file.")
	cmd.Flags().String("redis-addr", "localhost:6379", "comma separated list of redis host:port")
	cmd.Flags().String("namespace", "arkcrm", "namespace used in storage")
	cmd.Flags().Int("http-port", 8080, "http port for rest endpoints")
	cmd.Flags().String("storage-impl", "redis", "implementation of underline storage")
	cmd.Flags().String("telegram-bot-token", "", "bot token for telegram actions")
	cmd.Flags().String("telegram-api-url", "", "override for the telegram api base url")
	cmd.Flags().Int("http-timeout", 30, "timeout in seconds for outbound http calls")
	cmd.Flags().Int64("execution-history", 1000, "max entries kept in the recent execution log")
	return viper.BindPFlags(cmd.Flags())
}

func (c *cli) setupConfig(cmd *cobra.Command, args []string) error {
	var err error

	configFile, err := cmd.Flags().GetString("config-file")
	if err != nil {
		return err
	}
	viper.SetConfigFile(configFile)

	if err = viper.ReadInConfig(); err != nil {
		// it's ok if config file doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	c.cfg.RedisConfig.Addrs = strings.Split(viper.GetString("redis-addr"), ",")
	c.cfg.RedisConfig.Namespace = viper.GetString("namespace")
	c.cfg.HttpPort = viper.GetInt("http-port")
	c.cfg.StorageType = config.StorageType(viper.GetString("storage-impl"))
	c.cfg.TelegramConfig.BotToken = viper.GetString("telegram-bot-token")
	c.cfg.TelegramConfig.ApiUrl = viper.GetString("telegram-api-url")
	c.cfg.HttpTimeoutSeconds = viper.GetInt("http-timeout")
	c.cfg.ExecutionHistorySize = viper.GetInt64("execution-history")
	return nil
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	diContainer := container.NewDiContainer()
	diContainer.Init(c.cfg.Config)

	metadataService := metadata.NewMetadataService(diContainer)
	workflowEngine := engine.NewWorkflowEngine(diContainer, metadataService)
	executionService := service.NewExecutionService(diContainer, workflowEngine)

	server, err := rest.NewServer(c.cfg.HttpPort, metadataService, executionService)
	if err != nil {
		return err
	}
	go func() {
		if err := server.Start(); err != nil {
			log.Println(err)
		}
	}()
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	return server.Stop()
}

func main() {
	cli := &cli{}

	cmd := &cobra.Command{
		Use:     "automation",
		PreRunE: cli.setupConfig,
		RunE:    cli.run,
	}

	if err := setupFlags(cmd); err != nil {
		log.Fatal(err)
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
