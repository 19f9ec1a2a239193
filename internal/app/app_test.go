package app

import (
	"testing"
	"time"

	"ble-locator.klederson.com/internal/config"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStartSessionBeforeProgramRun(t *testing.T) {
	// StartSession runs on the main goroutine before p.Run starts receiving
	// messages, so nothing on its path may send to the program.
	cfg, err := config.Load("")
	require.NoError(t, err)

	m := New(cfg, true, zap.NewNop())
	p := tea.NewProgram(m, tea.WithoutRenderer())

	done := make(chan error, 1)
	go func() { done <- m.StartSession(p) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("StartSession blocked before the program run loop started")
	}

	m.shared.sess.Stop()
	p.Kill()
}
