package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	pkg "github.com/zhangmm/zblog/pkg/internal"
	"github.com/zhangmm/zblog/pkg/internal/cache"
	"github.com/zhangmm/zblog/pkg/internal/database"
	"github.com/zhangmm/zblog/pkg/internal/http"
	"github.com/zhangmm/zblog/pkg/internal/services"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString(" _____ ____  _\n|__  /| __ )| | ___   __ _\n  / / |  _ \\| |/ _ \\ / _` |\n / /_ | |_) | | (_) | (_| |\n/____||____/|_|\\___/ \\__, |\n                     |___/"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("ZBlog"), pkg.AppVersion)
	fmt.Printf("The personal blogging platform\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	if len(viper.GetString("security.token_secret")) == 0 {
		log.Fatal().Msg("The token signing secret is not configured; refusing to start.")
	}

	// Prepare cache
	if err := cache.NewStore(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing cache.")
	}

	// Connect to database
	if err := database.NewGorm(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(database.C); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	} else if err := services.SeedRoles(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when seeding roles.")
	}

	if viper.GetBool("debug.seed_fake_data") {
		if err := services.GenerateFakeData(5, 25); err != nil {
			log.Error().Err(err).Msg("An error occurred when generating fake data.")
		}
	}

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", services.DoAutoDatabaseCleanup)
	quartz.Start()

	// Server
	go http.NewServer().Listen()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
}
