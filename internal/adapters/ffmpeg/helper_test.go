package ffmpeg

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"testing"
	"time"

	"github.com/plexlevi/webcorder/internal/config"
)

// Helper process modes
const (
	modeRecord   = "record"   // writes until "q" arrives on stdin
	modeStubborn = "stubborn" // ignores interrupts and stdin
	modeCrash    = "crash"    // writes a little, then fails
	modeEmpty    = "empty"    // exits cleanly without writing
)

// TestHelperProcess is not a real test. It stands in for ffmpeg when
// started by helperLauncher.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	defer os.Exit(0)

	args := os.Args
	output := args[len(args)-1]
	signal.Ignore(os.Interrupt)

	switch os.Getenv("HELPER_MODE") {
	case modeEmpty:
		os.Exit(0)
	case modeCrash:
		os.WriteFile(output, []byte("partial"), 0644)
		fmt.Fprintln(os.Stderr, "Will reconnect at 1234 in 0 second(s)")
		fmt.Fprintln(os.Stderr, "Connection refused")
		os.Exit(1)
	case modeStubborn:
		writeUntil(output, make(chan struct{}))
	default:
		quit := make(chan struct{})
		go func() {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				if strings.TrimSpace(scanner.Text()) == "q" {
					close(quit)
					return
				}
			}
		}()
		writeUntil(output, quit)
	}
}

func writeUntil(output string, quit <-chan struct{}) {
	f, err := os.Create(output)
	if err != nil {
		os.Exit(3)
	}
	defer f.Close()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			f.Write([]byte("frame"))
		}
	}
}

func testTunables() config.Tunables {
	tun := config.DefaultTunables()
	tun.KillTimeout = 2 * time.Second
	tun.ProbeInterval = 20 * time.Millisecond
	tun.StallTimeout = 500 * time.Millisecond
	// Room for a loaded machine to flush and exit on "q"
	tun.StopGrace = 2 * time.Second
	return tun
}

// escalationTunables shortens the grace so kill escalation is quick
func escalationTunables() config.Tunables {
	tun := testTunables()
	tun.StopGrace = 300 * time.Millisecond
	return tun
}

// helperLauncher returns a Launcher that runs TestHelperProcess in mode
func helperLauncher(mode string, tun config.Tunables) *Launcher {
	l := NewLauncher("ffmpeg", config.NewRuntime(tun))
	l.newCommand = func(name string, args ...string) *exec.Cmd {
		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.Command(os.Args[0], cs...)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "HELPER_MODE="+mode)
		return cmd
	}
	return l
}
