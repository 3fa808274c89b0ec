package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/sdktable/internal/log"
	"github.com/zjrosen/sdktable/internal/pubsub"
	"github.com/zjrosen/sdktable/internal/table"
)

var watchLogs bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the table whenever its file changes",
	Long: `Watch the table file and reload it on every change. Each change to the
table is printed as it happens ("added jdk-17 (JavaSDK)", "renamed a -> b",
"loaded"), followed by a reload summary. Stops on Ctrl+C.

With --logs, log lines at info level and above are echoed to stderr as well.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := &lockedWriter{w: cmd.OutOrStdout()}
		errOut := &lockedWriter{w: cmd.ErrOrStderr()}

		a, err := openApp(ctx, errOut)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		var wg sync.WaitGroup
		defer wg.Wait()
		// stop the printers before wg.Wait
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		if watchLogs {
			followLogs(ctx, &wg, errOut)
		}
		printChanges(&wg, a.Changes(ctx), out)

		_, _ = fmt.Fprintf(out, "watching %s (%d sdks)\n", a.StorePath(), len(a.Sdks()))

		return a.Watch(ctx, func(report table.LoadReport, err error) {
			if err != nil {
				_, _ = fmt.Fprintf(errOut, "reload failed: %v\n", err)
				return
			}
			reportSkipped(errOut, report)
			_, _ = fmt.Fprintf(out, "reloaded: %d sdks\n", report.Loaded)
		})
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchLogs, "logs", false, "echo log lines to stderr")
	rootCmd.AddCommand(watchCmd)
}

// lockedWriter serializes writes from the reload callback and the printer
// goroutines.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func printChanges(wg *sync.WaitGroup, changes <-chan pubsub.Event[table.Change], w io.Writer) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ev := range changes {
			_, _ = fmt.Fprintln(w, ev.Payload)
		}
	}()
}

// followLogs copies log lines to w until ctx is done, installing a
// discarding info-level logger when none is configured.
func followLogs(ctx context.Context, wg *sync.WaitGroup, w io.Writer) {
	if !log.Enabled() {
		log.InitWriter(io.Discard, log.LevelInfo)
	}
	l := log.NewListener(ctx)
	if l == nil {
		return
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			ev, ok := l.Next()
			if !ok {
				return
			}
			_, _ = io.WriteString(w, ev.Payload)
		}
	}()
}
