package output

import (
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// PipeConfig selects the player subprocess. Args may contain "{rate}",
// replaced by the sample rate.
type PipeConfig struct {
	Command    string
	Args       []string
	SampleRate int
}

type knownPlayer struct {
	command string
	args    []string
}

// Players tried in order when no command is configured.
var knownPlayers = []knownPlayer{
	{"aplay", []string{"-q", "-t", "raw", "-f", "S16_LE", "-c", "2", "-r", "{rate}"}},
	{"paplay", []string{"--raw", "--format=s16le", "--channels=2", "--rate={rate}"}},
	{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "-f", "s16le", "-ac", "2", "-ar", "{rate}", "-i", "-"}},
}

// PipeDevice writes 16-bit PCM to a player's stdin.
type PipeDevice struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	buf   []byte
}

// NewPipeDevice starts the configured player, or the first known player on
// PATH. It returns ErrNoOutput when none can be found.
func NewPipeDevice(cfg PipeConfig) (*PipeDevice, error) {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 48000
	}
	name, args, err := resolvePlayer(cfg)
	if err != nil {
		return nil, err
	}

	rate := strconv.Itoa(cfg.SampleRate)
	expanded := make([]string, len(args))
	for i, a := range args {
		expanded[i] = strings.ReplaceAll(a, "{rate}", rate)
	}

	cmd := exec.Command(name, expanded...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("player stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", name, err)
	}
	return &PipeDevice{cmd: cmd, stdin: stdin}, nil
}

func resolvePlayer(cfg PipeConfig) (string, []string, error) {
	if cfg.Command != "" {
		path, err := exec.LookPath(cfg.Command)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %s not found", ErrNoOutput, cfg.Command)
		}
		return path, cfg.Args, nil
	}
	for _, p := range knownPlayers {
		if path, err := exec.LookPath(p.command); err == nil {
			return path, p.args, nil
		}
	}
	return "", nil, ErrNoOutput
}

// Command returns the resolved player path.
func (d *PipeDevice) Command() string { return d.cmd.Path }

func (d *PipeDevice) Write(frames []float32) error {
	d.buf = appendPCM16(d.buf[:0], frames)
	if _, err := d.stdin.Write(d.buf); err != nil {
		return fmt.Errorf("write to player: %w", err)
	}
	return nil
}

// Close ends the stream and waits for the player to exit.
func (d *PipeDevice) Close() error {
	if err := d.stdin.Close(); err != nil {
		return err
	}
	return d.cmd.Wait()
}
