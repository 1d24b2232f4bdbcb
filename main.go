package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lisicong/tiktok-streak/browser"
	"github.com/lisicong/tiktok-streak/configs"
	"github.com/lisicong/tiktok-streak/logging"
	"github.com/lisicong/tiktok-streak/scheduler"
)

func main() {
	var (
		configPath string
		headless   bool
		binPath    string
		listenAddr string
		runNow     bool
	)
	flag.StringVar(&configPath, "config", "", "path to JSON config file (defaults used when empty)")
	flag.BoolVar(&headless, "headless", true, "run the browser headless")
	flag.StringVar(&binPath, "bin", "", "browser binary path")
	flag.StringVar(&listenAddr, "port", "", "status API listen address")
	flag.BoolVar(&runNow, "now", false, "run one batch immediately and exit")
	flag.Parse()

	if len(binPath) == 0 {
		binPath = os.Getenv("ROD_BROWSER_BIN")
	}

	cfg, err := configs.Load(configPath)
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	cfg.Headless = headless
	if binPath != "" {
		cfg.BinPath = binPath
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}

	closeLog, err := logging.Setup(cfg.ActivityLogPath)
	if err != nil {
		logrus.Fatalf("failed to set up logging: %v", err)
	}
	defer closeLog()

	hour, minute, err := configs.ParseSendTime(cfg.SendTime)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		logrus.Fatalf("%v", err)
	}

	manager := browser.NewManager(cfg.Headless, cfg.BinPath)
	defer manager.Close()

	service := NewStreakService(cfg, manager)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if runNow {
		service.RunJob(ctx)
		return
	}

	sched := scheduler.New(hour, minute, loc, cfg.HeartbeatInterval)
	printBanner(cfg, sched.NextRun(time.Now().In(loc)))

	appServer := NewAppServer(service, func() time.Time {
		return sched.NextRun(time.Now().In(loc))
	})
	go func() {
		if err := appServer.Start(cfg.ListenAddr); err != nil {
			logrus.Errorf("status API stopped: %v", err)
		}
	}()

	if err := sched.Start(ctx, service.RunJob); err != nil {
		logrus.Infof("scheduler exited: %v", err)
	}
}
