package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/auth"
	"workforce/backend/internal/commands"
	"workforce/backend/internal/pkg/config"
	"workforce/backend/internal/pkg/repository/postgresql"
	"workforce/backend/internal/pkg/repository/redisdb"
	"workforce/backend/internal/router"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
)

var build = "develop"

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)

	if err := run(); err != nil {
		if !errors.Is(err, commands.ErrHelp) {
			log.Println("main error:", err)
		}
		os.Exit(1)
	}
}

func run() error {
	var cfg struct {
		conf.Version
		Web struct {
			Port           string   `conf:"default:8080"`
			AllowedOrigins []string `conf:"default:*"`
		}
		Args conf.Args
	}
	cfg.Version.SVN = build
	cfg.Version.Desc = "workforce attendance backend"

	if err := conf.Parse(os.Args[1:], "WORKFORCE", &cfg); err != nil {
		switch {
		case errors.Is(err, conf.ErrHelpWanted):
			usage, err := conf.Usage("WORKFORCE", &cfg)
			if err != nil {
				return errors.Wrap(err, "generating config usage")
			}
			fmt.Println(usage)
			return commands.ErrHelp
		case errors.Is(err, conf.ErrVersionWanted):
			version, err := conf.VersionString("WORKFORCE", &cfg)
			if err != nil {
				return errors.Wrap(err, "generating config version")
			}
			fmt.Println(version)
			return commands.ErrHelp
		}
		return errors.Wrap(err, "parsing config")
	}

	yamlConfig, err := config.NewConfig()
	if err != nil {
		return errors.Wrap(err, "loading config.yaml")
	}

	postgresDB := postgresql.NewDB(postgresql.Config{
		User:       yamlConfig.DBUsername,
		Password:   yamlConfig.DBPassword,
		Host:       yamlConfig.DBHost,
		Port:       yamlConfig.DBPort,
		Name:       yamlConfig.DBName,
		DisableTLS: yamlConfig.DisableTLS,
	})
	defer func() {
		if err := postgresDB.Close(); err != nil {
			log.Println("closing postgres:", err)
		}
	}()

	if cfg.Args.Num(0) == "migrate" {
		commands.MigrateUP(postgresDB)
		log.Println("migrations applied")
		return nil
	}

	redisDB := redisdb.NewClient(redisdb.Config{
		Host:     yamlConfig.RedisHost,
		Port:     yamlConfig.RedisPort,
		Password: yamlConfig.RedisPassword,
	})
	defer func() {
		if err := redisDB.Close(); err != nil {
			log.Println("closing redis:", err)
		}
	}()

	authenticator, err := auth.New(yamlConfig.PrivateKeyPath)
	if err != nil {
		return errors.Wrap(err, "constructing authenticator")
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	app := web.NewApp(shutdown)

	r := router.NewRouter(
		app,
		postgresDB,
		redisDB,
		":"+cfg.Web.Port,
		authenticator,
		yamlConfig.PrivateKeyPath,
		cfg.Web.AllowedOrigins,
	)

	log.Println("starting api on port", cfg.Web.Port)
	return r.Init()
}
