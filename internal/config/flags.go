package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-node stable device identifier used in version vectors
//	-a remote sync API base URL
//	-token remote API bearer token
//	-request-timeout outbound request timeout (e.g., "15s", "1m")
//	-d local database DSN
//	-c/-config json file path with configs
//	-sync-interval background sync cadence (e.g., "30s", "5m")
//	-max-retries retry budget for transiently failed items
//	-backoff-base delay before the first retry
//	-backoff-cap upper bound on the retry delay
//	-rederive-superseded re-enqueue covered operations instead of dropping them
//	-monitor enable the local monitoring HTTP API
//	-monitor-address monitor listen address in format [host]:[port]
func ParseFlags() *StructuredConfig {
	var nodeID string
	var remoteURL string
	var remoteToken string
	var requestTimeout time.Duration
	var databaseDSN string
	var jsonConfigPath string
	var syncInterval time.Duration
	var maxRetries int
	var backoffBase time.Duration
	var backoffCap time.Duration
	var rederiveSuperseded bool
	var monitorEnabled bool
	var monitorAddress NetAddress

	flag.StringVar(&nodeID, "node", "", "Stable device identifier")
	flag.StringVar(&remoteURL, "a", "", "Remote sync API base URL")
	flag.StringVar(&remoteToken, "token", "", "Remote API bearer token")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s, 1m)")
	flag.StringVar(&databaseDSN, "d", "", "Local database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync cadence (e.g., 30s, 5m)")
	flag.IntVar(&maxRetries, "max-retries", 0, "Retry budget for failed items")
	flag.DurationVar(&backoffBase, "backoff-base", 0, "Delay before the first retry")
	flag.DurationVar(&backoffCap, "backoff-cap", 0, "Upper bound on the retry delay")
	flag.BoolVar(&rederiveSuperseded, "rederive-superseded", false, "Re-enqueue covered operations")
	flag.BoolVar(&monitorEnabled, "monitor", false, "Enable the monitoring HTTP API")
	flag.Var(&monitorAddress, "monitor-address", "Monitor net address host:port")

	flag.Parse()

	return &StructuredConfig{
		Node: Node{
			ID: nodeID,
		},
		Remote: Remote{
			BaseURL:        remoteURL,
			Token:          remoteToken,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Engine: Engine{
			MaxRetries:         maxRetries,
			BackoffBase:        backoffBase,
			BackoffCap:         backoffCap,
			SyncInterval:       syncInterval,
			RederiveSuperseded: rederiveSuperseded,
		},
		Monitor: Monitor{
			Enabled: monitorEnabled,
			Address: monitorAddress.String(),
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
