package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	paymenthub "github.com/flexprice/paymenthub-go"
	"github.com/flexprice/paymenthub-go/internal/logger"
	"github.com/flexprice/paymenthub-go/internal/types"
	"github.com/flexprice/paymenthub-go/internal/version"
	"github.com/flexprice/paymenthub-go/service"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

const usage = `usage: paymenthub monitor [-config path] [-wait duration] [-simulator EXTERNAL|INTERNAL]
       paymenthub version`

type monitorArgs struct {
	configPath string
	wait       time.Duration
	simulator  string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	if len(argv) == 0 {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	switch argv[0] {
	case "version":
		fmt.Fprintln(stdout, version.String())
		return 0
	case "monitor":
	default:
		fmt.Fprintln(stderr, usage)
		return 2
	}

	args, err := parseMonitorArgs(argv[1:])
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, usage)
		return 2
	}

	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	var (
		monitor service.MonitorService
		log     *logger.Logger
	)

	app := fx.New(
		fx.NopLogger,
		fx.Supply(args),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideClient,
			provideServiceParams,
			service.NewMonitorService,
		),
		fx.Populate(&monitor, &log),
	)
	if err := app.Err(); err != nil {
		fmt.Fprintf(stderr, "paymenthub: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "paymenthub: %v\n", err)
		return 1
	}

	code := runMonitor(ctx, monitor, args, stdout, log)

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Warnw("shutdown failed", "error", err)
	}

	return code
}

func parseMonitorArgs(argv []string) (monitorArgs, error) {
	var args monitorArgs
	fs := flag.NewFlagSet("monitor", flag.ContinueOnError)
	fs.StringVar(&args.configPath, "config", "", "Path to paymenthub.yaml (defaults to the standard search paths)")
	fs.DurationVar(&args.wait, "wait", 0, "Poll until the API reports READY or the duration elapses")
	fs.StringVar(&args.simulator, "simulator", "", "Simulator to request in the TEST environment")
	if err := fs.Parse(argv); err != nil {
		return args, err
	}
	if args.wait < 0 {
		return args, fmt.Errorf("wait must not be negative: %s", args.wait)
	}
	if args.simulator != "" {
		if err := types.Simulator(args.simulator).Validate(); err != nil {
			return args, err
		}
	}
	return args, nil
}

func provideConfig(args monitorArgs) (*paymenthub.Config, error) {
	return paymenthub.LoadConfig(args.configPath)
}

func provideLogger(cfg *paymenthub.Config) (*logger.Logger, error) {
	level := cfg.Logging.Level
	if level == "" {
		level = types.LogLevelInfo
	}
	return logger.NewLogger(level)
}

func provideClient(lc fx.Lifecycle, cfg *paymenthub.Config, log *logger.Logger) (*paymenthub.Client, error) {
	client, err := paymenthub.New(*cfg, paymenthub.WithZapLogger(log.Desugar()))
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			client.Close()
			_ = log.Sync()
			return nil
		},
	})
	return client, nil
}

func provideServiceParams(client *paymenthub.Client, log *logger.Logger) service.ServiceParams {
	return service.ServiceParams{
		Client: client,
		Logger: log.Desugar(),
	}
}

func runMonitor(ctx context.Context, monitor service.MonitorService, args monitorArgs, stdout io.Writer, log *logger.Logger) int {
	opts := paymenthub.NewCallOptions()
	if args.simulator != "" {
		opts.WithSimulator(paymenthub.Simulator(args.simulator))
	}

	var (
		resp *service.MonitorResponse
		err  error
	)
	if args.wait > 0 {
		resp, err = monitor.WaitUntilReady(ctx, args.wait, opts)
	} else {
		resp, err = monitor.Verify(ctx, opts)
	}

	if err != nil {
		log.Errorw("monitor check failed", "error", err, "error_code", paymenthub.ErrorCode(err))
		return 1
	}

	fmt.Fprintln(stdout, resp.Status)
	if !resp.IsReady() {
		return 1
	}
	return 0
}
