// Package main writes a self-signed development certificate for the studio
// API into the "certs" directory.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fusedlens/studio/internal/certgen"
)

func main() {
	dir := flag.String("dir", "certs", "output directory")
	hosts := flag.String("hosts", "localhost,127.0.0.1", "comma-separated DNS names and IPs")
	days := flag.Int("days", 365, "validity in days")
	flag.Parse()

	certPath, keyPath, err := run(*dir, splitHosts(*hosts), time.Duration(*days)*24*time.Hour)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Certificate written to %s\nKey written to %s\n", certPath, keyPath)
	fmt.Printf("Start the server with -tls-cert %s -tls-key %s\n", certPath, keyPath)
}

func run(dir string, hosts []string, validFor time.Duration) (string, string, error) {
	certPEM, keyPEM, err := certgen.GenerateSelfSigned(hosts, validFor)
	if err != nil {
		return "", "", err
	}
	return certgen.WriteFiles(dir, certPEM, keyPEM)
}

func splitHosts(s string) []string {
	var hosts []string
	for _, h := range strings.Split(s, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}
