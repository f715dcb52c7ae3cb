/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/nanite/engine"
	"github.com/spaghettifunk/nanite/engine/core"
	"github.com/spaghettifunk/nanite/engine/platform"
	"github.com/spaghettifunk/nanite/engine/renderer/opengl"
	"github.com/spaghettifunk/nanite/testbed"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	logLevel := flag.String("log-level", "", "debug, info, warn, error or fatal")
	flag.Parse()

	config := engine.DefaultApplicationConfig()
	config.AssetDir = "assets"
	if *configPath != "" {
		c, err := engine.LoadConfig(*configPath)
		if err != nil {
			core.LogFatal(err.Error())
		}
		config = c
	}
	if *logLevel != "" {
		level, err := core.ParseLogLevel(*logLevel)
		if err != nil {
			core.LogFatal(err.Error())
		}
		config.LogLevel = &level
	}

	tb := testbed.NewTestGame()

	engine, err := engine.New(tb, platform.New(), opengl.New())
	if err != nil {
		core.LogFatal(err.Error())
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		engine.Shutdown()
	}()

	if err := engine.Start(config); err != nil {
		core.LogFatal(err.Error())
	}
}
