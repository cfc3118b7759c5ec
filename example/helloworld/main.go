// Command helloworld greets a Minecraft server running the Minecraft Pi API (for example through the
// RaspberryJuice plugin), lifts every online player by a block and builds a vein of diamond blocks in
// front of them. It takes no arguments: everything is configured in config.toml, which is created with
// the defaults on the first run.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/mcpi/minecraft"
	"github.com/oomph-ac/mcpi/oerror"
	"github.com/oomph-ac/mcpi/script"
	"github.com/oomph-ac/mcpi/settings"
	"github.com/sirupsen/logrus"
)

const configPath = "config.toml"

func main() {
	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	}
	log.Level = logrus.InfoLevel

	conf, err := readConfig(log)
	if err != nil {
		log.Fatalln(err)
	}
	log.Level, _ = logrus.ParseLevel(conf.Log.Level)

	if conf.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: conf.Sentry.DSN}); err != nil {
			log.Errorf("sentry disabled: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, log, conf)
	stop()
	if err != nil {
		sentry.CaptureException(err)
		sentry.Flush(time.Second * 5)
		log.Fatalln(err)
	}
	sentry.Flush(time.Second * 5)
}

// run connects to the server and runs the script. The connection is closed when it returns.
func run(ctx context.Context, log *logrus.Logger, conf settings.Settings) error {
	defer func() {
		if err := recover(); err != nil {
			log.Errorf("run() panic: %v", err)
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("address", conf.Connection.Address)
				scope.SetTag("pattern", conf.Build.Pattern)
			})
			hub.Recover(oerror.New("%v", err))
			hub.Flush(time.Second * 5)
			panic(err)
		}
	}()

	timeout, err := conf.Timeout()
	if err != nil {
		return err
	}
	scriptConf, err := script.FromSettings(conf, log)
	if err != nil {
		return err
	}

	conn, err := minecraft.Dialer{Log: log, Timeout: timeout}.DialContext(ctx, conf.Connection.Address)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Infof("connected to %v", conn.RemoteAddr())

	return script.Run(ctx, conn, os.Stdout, scriptConf)
}

// readConfig reads the configuration from the config.toml file, or creates the
// file if it does not yet exist.
func readConfig(log *logrus.Logger) (settings.Settings, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := settings.SaveDefault(configPath); err != nil {
			return settings.Settings{}, fmt.Errorf("create default config: %v", err)
		}
		log.Infof("created %v with the default settings", configPath)
	}
	return settings.Load(configPath)
}
