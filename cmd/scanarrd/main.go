package main

import (
	"flag"
	"fmt"
	"os"
)

// Set via -ldflags at release time.
var version = "dev"

func main() {
	var (
		configPath  = flag.String("config", "config.toml", "path to the TOML config file")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("scanarrd", version)
		return
	}

	if err := runServer(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "scanarrd:", err)
		os.Exit(1)
	}
}
