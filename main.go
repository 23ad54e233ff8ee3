package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/cenkalti/log"
	"github.com/urfave/cli"
)

const version = "0.1.0"

func main() {
	app := cli.NewApp()
	app.Name = "damga"
	app.Version = version
	app.Usage = "SHA-1 digest toolkit"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: "/etc/damga.toml",
			Usage: "configuration file path",
		},
		cli.BoolFlag{
			Name:  "debug, d",
			Usage: "enable debug log",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "sum",
			Usage:     "Prints SHA-1 digests of files, stdin or URLs",
			ArgsUsage: "[path | - | url]...",
			Action: func(c *cli.Context) {
				cfg := loadConfig(c)
				err := runSum(cfg, c.Args())
				if err != nil {
					log.Fatal(err)
				}
			},
		},
		{
			Name:  "serve",
			Usage: "Runs the digest receiver server",
			Action: func(c *cli.Context) {
				cfg := loadConfig(c)
				s, err := NewServer(cfg)
				if err != nil {
					log.Fatal("Error while initializing server. ", err)
				}
				runUntilInterrupt(s)
			},
		},
		{
			Name:  "vectors",
			Usage: "Runs the known-answer vector suite against the engine",
			Action: func(c *cli.Context) {
				err := runVectors()
				if err != nil {
					log.Fatal(err)
				}
			},
		},
		{
			Name:  "bench",
			Usage: "Measures hashing throughput",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "size, s",
					Value: "256M",
					Usage: "total amount of data to hash",
				},
			},
			Action: func(c *cli.Context) {
				cfg := loadConfig(c)
				err := runBench(cfg, c.String("size"))
				if err != nil {
					log.Fatal(err)
				}
			},
		},
		{
			Name:  "diag",
			Usage: "Prints CPU capabilities and the selected compression backend",
			Action: func(c *cli.Context) {
				err := runDiag()
				if err != nil {
					log.Fatal(err)
				}
			},
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads the configuration file. A missing file is not an
// error, defaults apply.
func loadConfig(c *cli.Context) *Config {
	cfg := NewConfig()
	err := cfg.ReadFile(c.GlobalString("config"))
	if err != nil && !os.IsNotExist(err) {
		log.Fatal("Error while loading configuration. ", err)
	}
	if c.GlobalBool("debug") {
		cfg.Debug = true
	}
	if cfg.Debug {
		log.DefaultLogger.SetLevel(log.DEBUG)
		log.DefaultHandler.SetLevel(log.DEBUG)
	}
	return cfg
}

type process interface {
	Run() error
	Shutdown() error
}

// runUntilInterrupt runs p until it exits cleanly.
// If SIGINT or SIGTERM is received, p is asked to shutdown gracefully.
// if SIGINT or SIGTERM is received again while waiting for shutdown, process exits with exit code 1.
func runUntilInterrupt(p process) {
	shutdown := make(chan struct{})
	go handleSignals(p, shutdown)
	if err := p.Run(); err != nil {
		log.Fatal(err)
	}
	// Run returned with no error. Wait process.Shutdown to return before exit.
	<-shutdown
}

func handleSignals(p process, shutdown chan struct{}) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	first := true
	for sig := range signals {
		log.Notice("Got signal: ", sig)
		if first {
			log.Notice("Shutting down process. Process will exit when active requests are finished.")
			log.Notice("Press Ctrl-C again to kill the process.")
			go shutdownProcess(p, shutdown)
			first = false
		} else {
			log.Error("Exiting with code 1.")
			os.Exit(1)
		}
	}
}

func shutdownProcess(p process, shutdown chan struct{}) {
	if err := p.Shutdown(); err != nil {
		log.Fatal(err)
	}
	close(shutdown)
}
