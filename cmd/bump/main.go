// Command bump sends a single "bump" to the relay and exits. Wire it to
// whatever should nudge the visualizer, such as a passing test suite.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pthm-cable/synapse/config"
	"github.com/pthm-cable/synapse/remote"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	url := flag.String("url", "", "Relay websocket URL (empty = use config remote.url)")
	count := flag.Int("n", 1, "Number of bumps to send")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	target := config.Cfg().Remote.URL
	if *url != "" {
		target = *url
	}

	if err := send(target, *count); err != nil {
		slog.Error("bump failed", "url", target, "error", err)
		os.Exit(1)
	}
	slog.Info("bump sent", "url", target, "count", *count)
}

// send connects, writes n bump messages and closes cleanly.
func send(url string, n int) error {
	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 5 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	for i := 0; i < n; i++ {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(remote.MessageBump)); err != nil {
			return err
		}
	}
	return conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
}
