package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"dhapi/lib/dhlottery"
	"dhapi/lib/notify"
	"dhapi/lib/restyutil"
	"dhapi/lib/telemetry"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

type session struct {
	client    *dhlottery.Client
	printer   *notify.TablePrinter
	telemetry telemetry.Telemetry
}

func (s session) Close(ctx context.Context) {
	err := s.telemetry.Shutdown(ctx)
	if err != nil {
		slog.Warn("failed to flush traces", "err", err)
	}
}

// openSession logs in with the configured account. The telemetry set up
// along the way is shut down again when anything after it fails.
func openSession(cmd *cobra.Command) (s session, err error) {
	ctx := cmd.Context()

	cfg, err := loadConfig(*configPath, *envPath)
	if err != nil {
		return session{}, fmt.Errorf("failed to load config: %w", err)
	}

	tel, err := telemetry.Setup(ctx, "dhapi", cfg.Telemetry)
	if err != nil {
		return session{}, fmt.Errorf("failed to setup telemetry: %w", err)
	}
	s.telemetry = tel
	defer func() {
		if err != nil {
			s.Close(ctx)
		}
	}()

	opts := dhlottery.ClientOptions{
		Username:    cfg.Username,
		Password:    cfg.Password,
		BaseUrl:     cfg.BaseUrl,
		PurchaseUrl: cfg.PurchaseUrl,
		RateLimit:   rate.Limit(cfg.RateLimit),
		Telemetry:   telemetry.SlogAPI{},
	}
	if *dumpHttp != "" {
		output, err := restyutil.NewFilesystemOutput(*dumpHttp)
		if err != nil {
			return s, fmt.Errorf("failed to create http dump directory: %w", err)
		}
		opts.HttpOutput = output
	}

	slog.Debug("logging in", "username", cfg.Username)
	s.client, err = dhlottery.NewClient(ctx, opts)
	if err != nil {
		return s, fmt.Errorf("failed to login: %w", err)
	}

	s.printer = notify.NewTablePrinter(cmd.OutOrStdout())
	observers := []dhlottery.PurchaseObserver{s.printer}
	if cfg.Telegram != nil {
		observer, err := notify.NewTelegramObserver(notify.TelegramOptions{
			Token:  cfg.Telegram.Token,
			ChatId: cfg.Telegram.ChatId,
		})
		if err != nil {
			return s, fmt.Errorf("failed to setup telegram notifications: %w", err)
		}
		observers = append(observers, observer)
	}
	if cfg.Email != nil {
		observer, err := notify.NewEmailObserver(cfg.Email.smtp(), cfg.Email.To)
		if err != nil {
			return s, fmt.Errorf("failed to setup email notifications: %w", err)
		}
		observers = append(observers, observer)
	}
	for _, o := range observers {
		err = s.client.AddObserver(o)
		if err != nil {
			return s, err
		}
	}

	return s, nil
}

// confirm asks a yes/no question, anything other than y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
