package manager

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"khetao.com/optkit/shutdown"
)

const Name = "PosixSignalManager"

// ExitCode is the process exit status after a signal-triggered shutdown.
const ExitCode = 130

type PosixSignalManager struct {
	signals []os.Signal
	exit    func(int)
}

// NewPosixSignalManager watches sig, or SIGINT and SIGTERM when none are
// given.
func NewPosixSignalManager(sig ...os.Signal) *PosixSignalManager {
	if len(sig) == 0 {
		sig = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}
	return &PosixSignalManager{
		signals: sig,
		exit:    os.Exit,
	}
}

func (m *PosixSignalManager) Name() string {
	return Name
}

// Start runs s and exits the process on the first watched signal.
func (m *PosixSignalManager) Start(ctx context.Context, s *shutdown.Shutdown) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c, m.signals...)

	go func() {
		defer signal.Stop(c)
		select {
		case <-ctx.Done():
		case <-c:
			s.Run(m.Name())
			m.exit(ExitCode)
		}
	}()
	return nil
}
