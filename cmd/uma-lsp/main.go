// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp/server"
	"uma/internal/lsp"
)

const lsName = "uma" // Name identifier for the language server

var version = "0.1.0" // Server version

var log = commonlog.GetLogger("uma.lsp.server")

func main() {
	verbosity := flag.Int("verbosity", 1, "log verbosity (0 disables logging)")
	logFile := flag.String("log", "", "write logs to this file instead of stderr")
	flag.Parse()

	var path *string
	if *logFile != "" {
		path = logFile
	}
	commonlog.Configure(*verbosity, path)

	handler := lsp.NewUmaHandler(lsName, version)

	// debug=false keeps glsp's own message tracing off
	s := server.NewServer(handler.Protocol(), lsName, false)

	log.Infof("starting %s language server %s", lsName, version)

	// Editors talk to the server over standard input/output
	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
