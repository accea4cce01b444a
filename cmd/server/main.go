// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/solport/launchpad/internal/config"
	"github.com/solport/launchpad/internal/launchpad"
	"github.com/solport/launchpad/internal/logger"
	"github.com/solport/launchpad/internal/server"
	"github.com/solport/launchpad/internal/solbc"
	"github.com/solport/launchpad/internal/wallet"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(&logger.Config{
		LogFile:     cfg.LogFile,
		MaxSize:     100,
		MaxBackups:  3,
		MaxAge:      28,
		Compress:    true,
		Development: cfg.DebugLogging,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	pool, err := solbc.NewPool(cfg.RPCList, log.Logger)
	if err != nil {
		return err
	}

	swapAuthority, err := wallet.NewWallet(cfg.SwapAuthorityKey)
	if err != nil {
		return fmt.Errorf("invalid swap authority key: %w", err)
	}

	programID := launchpad.DefaultProgramID
	if cfg.ProgramID != "" {
		programID, err = solana.PublicKeyFromBase58(cfg.ProgramID)
		if err != nil {
			return fmt.Errorf("invalid program_id: %w", err)
		}
	}
	configAccount := launchpad.DefaultConfigAccount
	if cfg.ConfigAccount != "" {
		configAccount, err = solana.PublicKeyFromBase58(cfg.ConfigAccount)
		if err != nil {
			return fmt.Errorf("invalid config_account: %w", err)
		}
	}
	feeRecipient := swapAuthority.PublicKey
	if cfg.ProtocolFeeRecipient != "" {
		feeRecipient, err = solana.PublicKeyFromBase58(cfg.ProtocolFeeRecipient)
		if err != nil {
			return fmt.Errorf("invalid protocol_fee_recipient: %w", err)
		}
	}

	composer, err := launchpad.NewComposer(launchpad.NewAddresses(programID, configAccount))
	if err != nil {
		return err
	}

	service := launchpad.NewService(pool, composer, swapAuthority, launchpad.ServiceConfig{
		GraduationThresholdRaw: cfg.GraduationThresholdRaw(),
		CurvePercentMin:        cfg.CurvePercentMin,
		CurvePercentMax:        cfg.CurvePercentMax,
		MinRaiseSOL:            cfg.MinRaiseSOL,
		JustSendItRaiseSOL:     cfg.JustSendItRaiseSOL,
		JustSendItCurvePercent: cfg.JustSendItCurvePercent,
		ProtocolFeeRecipient:   feeRecipient,
	}, log.Logger)

	srv := server.New(cfg.ListenAddr, service, log.Logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	log.Info("launchpad builder started",
		zap.String("listen_addr", cfg.ListenAddr),
		zap.String("program_id", programID.String()),
		zap.String("swap_authority", swapAuthority.String()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
