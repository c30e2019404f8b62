package cmd

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/http2"

	ghandlers "github.com/gorilla/handlers"
	logging "github.com/inconshreveable/log15"
	isatty "github.com/mattn/go-isatty"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/ulule/limiter"

	mutualcommon "github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/metrics"
	"github.com/mutualnet/mutualpool/lib/network"
	"github.com/mutualnet/mutualpool/lib/network/api"
	"github.com/mutualnet/mutualpool/lib/network/httpcache"
	"github.com/mutualnet/mutualpool/lib/pool"
	"github.com/mutualnet/mutualpool/lib/storage"
	"github.com/mutualnet/mutualpool/lib/transfer"

	"github.com/mutualnet/mutualpool/cmd/mutualpool/common"
)

const defaultNetwork string = "https"
const defaultPort int = 12345
const defaultHost string = "0.0.0.0"
const defaultLogLevel logging.Lvl = logging.LvlInfo

var (
	flagLogLevel       string = mutualcommon.GetENVValue("MUTUALPOOL_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput      string = mutualcommon.GetENVValue("MUTUALPOOL_LOG_OUTPUT", "")
	flagVerbose        bool   = mutualcommon.GetENVValue("MUTUALPOOL_VERBOSE", "0") == "1"
	flagEndpointString string = mutualcommon.GetENVValue(
		"MUTUALPOOL_ENDPOINT",
		fmt.Sprintf("%s://%s:%d", defaultNetwork, defaultHost, defaultPort),
	)
	flagStorageConfigString string
	flagTLSCertFile         string = mutualcommon.GetENVValue("MUTUALPOOL_TLS_CERT", "mutualpool.crt")
	flagTLSKeyFile          string = mutualcommon.GetENVValue("MUTUALPOOL_TLS_KEY", "mutualpool.key")
	flagSettlementEndpoint  string = mutualcommon.GetENVValue("MUTUALPOOL_SETTLEMENT", "")
	flagRateLimitAPI        common.ListFlags
	flagHTTPCacheAdapter    string = mutualcommon.GetENVValue("MUTUALPOOL_HTTP_CACHE_ADAPTER", "")
	flagHTTPCacheRedisAddrs string = mutualcommon.GetENVValue("MUTUALPOOL_HTTP_CACHE_REDIS_ADDRS", "")
)

var (
	runCmd *cobra.Command

	poolEndpoint  *mutualcommon.Endpoint
	storageConfig *storage.Config
	config        mutualcommon.Config
	logLevel      logging.Lvl
	log           logging.Logger
)

func init() {
	var err error
	var flagEstablish string

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run mutualpool node",
		Run: func(c *cobra.Command, args []string) {
			// If `--establish` was provided, perform `mutualpool init`
			// before starting the node. This allows one-step startup from
			// scratch, quite useful for testing
			if len(flagEstablish) != 0 {
				var minimumStr string
				csv := strings.Split(flagEstablish, ",")
				if len(csv) > 2 {
					common.PrintFlagsError(runCmd, "--establish",
						errors.New("--establish expects address[,minimum], but more than 2 commas detected"))
				}
				if len(csv) == 2 {
					minimumStr = csv[1]
				}
				flagName, err := EstablishPool(csv[0], minimumStr, flagStorageConfigString)
				if len(flagName) != 0 || err != nil {
					common.PrintFlagsError(c, flagName, err)
				}
			}

			parseFlagsRun()

			runServer()
			return
		},
	}

	// storage
	var currentDirectory string
	if currentDirectory, err = os.Getwd(); err != nil {
		common.PrintFlagsError(runCmd, "--storage", err)
	}
	if currentDirectory, err = filepath.Abs(currentDirectory); err != nil {
		common.PrintFlagsError(runCmd, "--storage", err)
	}
	flagStorageConfigString = mutualcommon.GetENVValue("MUTUALPOOL_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))

	runCmd.Flags().StringVar(&flagEstablish, "establish", flagEstablish, "performs the 'init' command before running the node. Syntax: key[,minimum]")
	runCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	runCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	runCmd.Flags().BoolVar(&flagVerbose, "verbose", flagVerbose, "verbose")
	runCmd.Flags().StringVar(&flagEndpointString, "endpoint", flagEndpointString, "endpoint uri to listen on")
	runCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")
	runCmd.Flags().StringVar(&flagTLSCertFile, "tls-cert", flagTLSCertFile, "tls certificate file")
	runCmd.Flags().StringVar(&flagTLSKeyFile, "tls-key", flagTLSKeyFile, "tls key file")
	runCmd.Flags().StringVar(&flagSettlementEndpoint, "settlement", flagSettlementEndpoint, "settlement endpoint url; in-process backend when empty")
	if v := mutualcommon.GetENVValue("MUTUALPOOL_RATE_LIMIT_API", ""); len(v) > 0 {
		flagRateLimitAPI = strings.Fields(v)
	}
	runCmd.Flags().Var(&flagRateLimitAPI, "rate-limit-api", "rate limit for api: [<ip>=]<limit>-<period>, ex) '100-S' '1.2.3.4=1000-M'")
	runCmd.Flags().StringVar(&flagHTTPCacheAdapter, "http-cache-adapter", flagHTTPCacheAdapter, "http cache adapter: 'mem' or 'redis'")
	runCmd.Flags().StringVar(&flagHTTPCacheRedisAddrs, "http-cache-redis-addrs", flagHTTPCacheRedisAddrs, "http cache redis addrs, ex) 'server1=localhost:6379 server2=localhost:6380'")

	rootCmd.AddCommand(runCmd)
}

func parseFlagsRun() {
	var err error

	if p, err := mutualcommon.ParseEndpoint(flagEndpointString); err != nil {
		common.PrintFlagsError(runCmd, "--endpoint", err)
	} else {
		poolEndpoint = p
		flagEndpointString = poolEndpoint.String()
	}

	if err = mutualcommon.CheckBindString(poolEndpoint.Host); err != nil {
		common.PrintFlagsError(runCmd, "--endpoint", err)
	}

	if strings.ToLower(poolEndpoint.Scheme) == "https" {
		if _, err = os.Stat(flagTLSCertFile); os.IsNotExist(err) {
			common.PrintFlagsError(runCmd, "--tls-cert", err)
		}
		if _, err = os.Stat(flagTLSKeyFile); os.IsNotExist(err) {
			common.PrintFlagsError(runCmd, "--tls-key", err)
		}
	}

	queries := poolEndpoint.Query()
	queries.Add("TLSCertFile", flagTLSCertFile)
	queries.Add("TLSKeyFile", flagTLSKeyFile)
	queries.Add("IdleTimeout", "3s")
	poolEndpoint.RawQuery = queries.Encode()

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		common.PrintFlagsError(runCmd, "--storage", err)
	}

	config = mutualcommon.NewConfig()

	if rule, err := parseFlagRateLimit(flagRateLimitAPI, mutualcommon.RateLimitAPI); err != nil {
		common.PrintFlagsError(runCmd, "--rate-limit-api", err)
	} else {
		config.RateLimitRuleAPI = rule
	}

	if len(flagHTTPCacheAdapter) > 0 {
		config.HTTPCacheAdapter = flagHTTPCacheAdapter
	}
	if len(flagHTTPCacheRedisAddrs) > 0 {
		config.HTTPCacheRedisAddrs = map[string]string{}
		for _, addr := range strings.Fields(flagHTTPCacheRedisAddrs) {
			kv := strings.SplitN(addr, "=", 2)
			if len(kv) != 2 {
				common.PrintFlagsError(runCmd, "--http-cache-redis-addrs",
					fmt.Errorf("expected '<name>=<addr>', got %q", addr))
			}
			config.HTTPCacheRedisAddrs[kv[0]] = kv[1]
		}
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		common.PrintFlagsError(runCmd, "--log-level", err)
	}

	var formatter logging.Format
	if isatty.IsTerminal(os.Stdout.Fd()) {
		formatter = logging.TerminalFormat()
	} else {
		formatter = logging.JsonFormatEx(false, true)
	}
	logHandler := logging.StreamHandler(os.Stdout, formatter)

	if len(flagLogOutput) < 1 {
		flagLogOutput = "<stdout>"
	} else {
		if logHandler, err = logging.FileHandler(flagLogOutput, logging.JsonFormat()); err != nil {
			common.PrintFlagsError(runCmd, "--log-output", err)
		}
	}

	logHandler = logging.CallerFileHandler(logHandler)

	log = logging.New("module", "main")
	mutualcommon.SetLogging(log, logLevel, logHandler)
	pool.SetLogging(logLevel, logHandler)
	network.SetLogging(logLevel, logHandler)

	log.Info("Starting mutualpool")

	// print flags
	parsedFlags := []interface{}{}
	parsedFlags = append(parsedFlags, "\n\tendpoint", flagEndpointString)
	parsedFlags = append(parsedFlags, "\n\tstorage", flagStorageConfigString)
	parsedFlags = append(parsedFlags, "\n\ttls-cert", flagTLSCertFile)
	parsedFlags = append(parsedFlags, "\n\ttls-key", flagTLSKeyFile)
	parsedFlags = append(parsedFlags, "\n\tsettlement", flagSettlementEndpoint)
	parsedFlags = append(parsedFlags, "\n\tlog-level", flagLogLevel)
	parsedFlags = append(parsedFlags, "\n\tlog-output", flagLogOutput)
	parsedFlags = append(parsedFlags, "\n\trate-limit-api", flagRateLimitAPI.String())

	log.Debug("parsed flags:", parsedFlags...)

	if flagVerbose {
		http2.VerboseLogs = true
	}
}

// parseFlagRateLimit turns the repeated `--rate-limit-api` values into one
// RateLimitRule. A bare rate ("10-S") replaces the default; an "<ip>=<rate>"
// entry sets a per-address override. The last bare rate wins.
func parseFlagRateLimit(l common.ListFlags, defaultRate limiter.Rate) (rule mutualcommon.RateLimitRule, err error) {
	appliedDefault := defaultRate
	byIPAddress := map[string]limiter.Rate{}

	for _, s := range l {
		var ip, rateString string
		if strings.Contains(s, "=") {
			parsed := strings.SplitN(s, "=", 2)
			ip = parsed[0]
			rateString = parsed[1]
			if net.ParseIP(ip) == nil {
				err = fmt.Errorf("invalid ip address: %q", ip)
				return
			}
		} else {
			rateString = s
		}

		var rate limiter.Rate
		if rate, err = limiter.NewRateFromFormatted(strings.ToUpper(rateString)); err != nil {
			return
		}

		if len(ip) > 0 {
			byIPAddress[ip] = rate
		} else {
			appliedDefault = rate
		}
	}

	rule = mutualcommon.NewRateLimitRule(appliedDefault)
	rule.ByIPAddress = byIPAddress
	return
}

func runServer() {
	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		log.Crit("failed to initialize storage", "error", err)

		os.Exit(1)
	}
	defer st.Close()

	var transferrer transfer.Transferrer
	if len(flagSettlementEndpoint) > 0 {
		transferrer = transfer.NewHTTPTransferrer(flagSettlementEndpoint, 30*time.Second, nil)
	} else {
		log.Warn("no settlement endpoint given; using in-process transfer backend")
		transferrer = transfer.NewMemoryTransferrer()
	}

	metrics.InitPrometheusMetrics()

	p, err := pool.NewPool(st, transferrer, metrics.Pool)
	if err != nil {
		log.Crit("failed to open the pool", "error", err)

		os.Exit(1)
	}

	serverConfig, err := network.NewServerConfigFromEndpoint(poolEndpoint)
	if err != nil {
		log.Crit("failed to create server config", "error", err)

		os.Exit(1)
	}
	server := network.NewServer(serverConfig)

	if err := addAPIHandlers(server, p, st); err != nil {
		log.Crit("failed to add api handlers", "error", err)

		os.Exit(1)
	}

	server.AddHandler(network.UrlPathPrefixMetric+"*", promhttp.Handler().ServeHTTP)
	server.Ready()

	// Execution group.
	var g run.Group
	{
		g.Add(func() error {
			if err := server.Start(); err != nil {
				log.Crit("failed to start server", "error", err)
				return err
			}
			return nil
		}, func(error) {
			server.Stop()
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return common.Interrupt(cancel)
		}, func(error) {
			close(cancel)
		})
	}

	if err := g.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func addAPIHandlers(server *network.Server, p *pool.Pool, st *storage.LevelDBBackend) error {
	apiHandler := api.NewNetworkHandlerAPI(p, st, network.UrlPathPrefixAPI)

	var cache interface {
		WrapHandlerFunc(http.HandlerFunc) http.HandlerFunc
	}
	if len(config.HTTPCacheAdapter) > 0 {
		adapter, err := httpcache.NewAdapter(config)
		if err != nil {
			return err
		}
		client, err := httpcache.NewClient(
			httpcache.WithAdapter(adapter),
			httpcache.WithExpire(time.Second),
			httpcache.WithLogger(log),
		)
		if err != nil {
			return err
		}
		cache = client
	} else {
		cache = httpcache.NewNopClient()
	}

	addHandler := func(pattern string, handler http.HandlerFunc, methods ...string) {
		server.AddHandler(apiHandler.HandlerURLPattern(pattern), handler).Methods(methods...)
	}

	addHandler(api.GetPoolHandlerPattern, cache.WrapHandlerFunc(apiHandler.GetPoolHandler), "GET")
	addHandler(api.GetContributionsHandlerPattern, cache.WrapHandlerFunc(apiHandler.GetContributionsHandler), "GET")
	addHandler(api.GetContributionHandlerPattern, cache.WrapHandlerFunc(apiHandler.GetContributionHandler), "GET")
	addHandler(api.PostDepositHandlerPattern, apiHandler.PostDepositHandler, "POST")
	addHandler(api.PostWithdrawHandlerPattern, apiHandler.PostWithdrawHandler, "POST")
	addHandler(api.GetClaimsHandlerPattern, cache.WrapHandlerFunc(apiHandler.GetClaimsHandler), "GET")
	addHandler(api.GetClaimHandlerPattern, cache.WrapHandlerFunc(apiHandler.GetClaimHandler), "GET")
	addHandler(api.PostClaimHandlerPattern, apiHandler.PostClaimHandler, "POST")
	addHandler(api.PostVoteHandlerPattern, apiHandler.PostVoteHandler, "POST")
	addHandler(api.PostResolveHandlerPattern, apiHandler.PostResolveHandler, "POST")

	rateLimitMiddlewareAPI := network.RateLimitMiddleware(log, config.RateLimitRuleAPI)
	if err := server.AddMiddleware(network.RouterNameAPI, rateLimitMiddlewareAPI); err != nil {
		return err
	}
	if err := server.AddMiddleware(network.RouterNameAPI, network.MetricsMiddleware()); err != nil {
		return err
	}
	if err := server.AddMiddleware(network.RouterNameMetric, rateLimitMiddlewareAPI); err != nil {
		return err
	}

	// BaseRouter's middlewares impact all sub routers.
	if err := server.AddMiddleware("", network.RecoverMiddleware(flagVerbose)); err != nil {
		return err
	}

	{ //CORS
		allowedOrigins := ghandlers.AllowedOrigins([]string{"*"})
		allowedMethods := ghandlers.AllowedMethods([]string{"GET", "POST"})
		allowedHeaders := ghandlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With", "Cache-Control", "Access-Control"})

		cors := ghandlers.CORS(allowedOrigins, allowedMethods, allowedHeaders)
		if err := server.AddMiddleware(network.RouterNameAPI, cors); err != nil {
			return err
		}
	}

	return nil
}
