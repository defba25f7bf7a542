// Command climbsim runs a scripted climb against a reference collision world and logs what the
// climbing controller does each tick.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/climbsim/config"
	"github.com/oomph-ac/climbsim/oerror"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	watch := flag.Bool("watch", false, "re-run the scene whenever the configuration file changes")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	conf := config.Default()
	if *configPath != "" {
		var err error
		if conf, err = config.Load(*configPath); err != nil {
			log.Error(err)
			os.Exit(1)
		}
	}
	log.SetLevel(conf.LogLevel())

	if conf.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: conf.Sentry.DSN, Environment: conf.Sentry.Environment}); err != nil {
			log.Errorf("sentry init failed: %v", err)
		}
		defer sentry.Flush(time.Second * 5)
		defer sentry.Recover()
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	if !run(conf, log) {
		os.Exit(1)
	}
	if !*watch || *configPath == "" {
		return
	}

	w, err := config.Watch(*configPath)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
	defer w.Close()
	log.Infof("climbsim: watching %s", *configPath)
	for {
		select {
		case conf, ok := <-w.Events:
			if !ok {
				return
			}
			log.SetLevel(conf.LogLevel())
			run(conf, log)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Errorf("climbsim: reload failed: %v", err)
		}
	}
}

// run plays the configured scene once and logs the result. Panics are reported and swallowed so a
// watched run survives a bad configuration.
func run(conf config.Config, log *logrus.Logger) (ok bool) {
	defer func() {
		if v := recover(); v != nil {
			log.Errorf("climbsim: scene panic: %v", v)
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("scene", string(conf.Scene.Kind))
			})
			hub.Recover(oerror.New("%v", v))
			hub.Flush(time.Second * 5)
			ok = false
		}
	}()

	sums, err := runScene(conf, log)
	if err != nil {
		log.Errorf("climbsim: %v", err)
		return false
	}
	for _, sum := range sums {
		log.WithFields(logrus.Fields{
			"character": sum.Character,
			"started":   sum.Started,
			"mode":      sum.Mode,
			"position":  sum.Position,
			"outcomes":  sum.Outcomes,
		}).Info("climbsim: scene finished")
	}
	return true
}
