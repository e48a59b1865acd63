package player

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// CommandPlayer проигрывает звук внешней командой (по умолчанию ffplay)
type CommandPlayer struct {
	mu      sync.Mutex
	command string
	logger  *zap.Logger
	cmd     *exec.Cmd
	done    chan struct{}
}

func NewCommandPlayer(command string, logger *zap.Logger) *CommandPlayer {
	if command == "" {
		command = "ffplay"
	}
	return &CommandPlayer{
		command: command,
		logger:  logger,
	}
}

// Args аргументы команды для зацикленного воспроизведения, gain 0..1
func Args(assetRef string, gain float64) []string {
	volume := int(gain*100 + 0.5)
	return []string{"-nodisp", "-loglevel", "quiet", "-loop", "0", "-volume", strconv.Itoa(volume), assetRef}
}

// Play запускает процесс воспроизведения; предыдущий процесс останавливается
func (p *CommandPlayer) Play(ctx context.Context, assetRef string, gain float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	path, err := exec.LookPath(p.command)
	if err != nil {
		return fmt.Errorf("find player %q: %w", p.command, err)
	}

	cmd := exec.Command(path, Args(assetRef, gain)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start player: %w", err)
	}

	done := make(chan struct{})
	go func() {
		err := cmd.Wait()
		var exitErr *exec.ExitError
		if err != nil && !errors.As(err, &exitErr) {
			p.logger.Debug("Player process finished with error", zap.Error(err))
		}
		close(done)
	}()

	p.cmd = cmd
	p.done = done
	return nil
}

// Stop завершает процесс воспроизведения, повторный вызов безопасен
func (p *CommandPlayer) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopLocked()
}

func (p *CommandPlayer) stopLocked() error {
	if p.cmd == nil {
		return nil
	}

	cmd, done := p.cmd, p.done
	p.cmd, p.done = nil, nil

	select {
	case <-done:
		return nil
	default:
	}

	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill player: %w", err)
	}
	<-done
	return nil
}
