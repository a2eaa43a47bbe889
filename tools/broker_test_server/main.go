// Command broker_test_server runs the mock NMPI broker standalone so the
// CLI can be exercised end to end without real hardware:
//
//	go run ./tools/broker_test_server -listen 127.0.0.1:8600
//	cypress-nmpi --broker-url http://127.0.0.1:8600 --executable run.sh --platform MOCK
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/twest49/cypress/tools/brokerserv"
)

func main() {
	listen := flag.String("listen", "127.0.0.1:8600", "listen address")
	sequence := flag.String("sequence", "submitted,validated,running,finished", "comma-separated job status sequence")
	flag.Parse()

	s := brokerserv.New(strings.Split(*sequence, ","))
	s.Stdout = "hello from the mock hardware\n"

	stop, err := brokerserv.Start(*listen, s)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("mock broker listening on %s", *listen)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	stop()
}
