package main

import (
	"flag"
	"os"
)

func main() {
	var err error

	configfile := flag.String("config", "", "use a specific config file")
	flag.Parse()

	a := &postPilot{
		httpClient: newHttpClient(),
	}

	// Initialize config
	if err = a.loadConfigFile(*configfile); err != nil {
		a.logErrAndQuit("Failed to load config file", "err", err)
		return
	}
	if err = a.initConfig(); err != nil {
		a.logErrAndQuit("Failed to init config", "err", err)
		return
	}

	// Healthcheck tool
	if len(flag.Args()) >= 1 && flag.Args()[0] == "healthcheck" {
		os.Exit(a.healthcheckExitCode())
		return
	}

	// Initialize components
	if err = a.initDatabase(); err != nil {
		a.logErrAndQuit("Failed to init database", "err", err)
		return
	}
	a.initScheduler()
	if err = a.recoverScheduledPosts(); err != nil {
		a.logErrAndQuit("Failed to recover scheduled posts", "err", err)
		return
	}

	// Start the server
	if err = a.startServer(); err != nil {
		a.logErrAndQuit("Failed to start server", "err", err)
		return
	}

	// Wait till everything is shutdown
	a.shutdown.Wait()
}

func (a *postPilot) logErrAndQuit(msg string, args ...any) {
	a.error(msg, args...)
	a.shutdown.ShutdownAndWait()
	os.Exit(1)
}
