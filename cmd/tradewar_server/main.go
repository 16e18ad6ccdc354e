// Serve the trade-war game over HTTP.
package main

import (
	"flag"
	"net/http"

	"github.com/golang/glog"

	"github.com/tradewarsim/tradewar"
	"github.com/tradewarsim/tradewar/api"
	"github.com/tradewarsim/tradewar/gamelog"
)

func main() {
	addr := flag.String("addr", ":8080", "Listen address")
	profilesFile := flag.String("profiles", "", "JSON file with computer profiles (built-in catalog if empty)")
	logFile := flag.String("log_file", "", "CSV round log path (disabled if empty)")
	flag.Parse()

	profiles, err := tradewar.LoadProfiles(*profilesFile)
	if err != nil {
		glog.Fatal(err)
	}

	var logger tradewar.RoundLogger
	if *logFile != "" {
		csvLogger := gamelog.NewCSVLogger(*logFile, 10, 3)
		defer csvLogger.Close()
		logger = csvLogger
	}

	server := api.NewServer(profiles, logger)
	glog.Infof("Listening on %s with profiles %v", *addr, profiles.Names())
	if err := http.ListenAndServe(*addr, server.Handler()); err != nil {
		glog.Fatal(err)
	}
}
