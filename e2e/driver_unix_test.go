//go:build e2e && unix

package main

import (
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"
	"unsafe"

	"github.com/creack/pty"
)

const ringSize = 1 << 20 // 1 MiB of scrollback

// Panel keys
const (
	KeyCtrlC        = "\x03"
	KeyQuit         = "q"
	KeyTab          = "\t"
	KeyNextOption   = "l"
	KeyClear        = "c"
	KeyAccept       = "y"
	KeyDecline      = "n"
	KeyListSection  = "2"
	KeyOverload     = "4"
	KeyCourseAssign = "6"
	KeyExportCSV    = "9"
)

// ANSI escape sequence regex for normalization - covers CSI, OSC, charset, keypad modes
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` + // CSI sequences
		`(?:\x1b\][^\x07]*\x07)|` + // OSC sequences
		`(?:\x1b[\(\)][A-Za-z])|` + // charset sequences
		`(?:\x1b=|\x1b>)|` + // keypad mode sequences
		`\r`, // carriage returns
)

// TUITestFramework drives the panel binary in a PTY against its own
// development backend
type TUITestFramework struct {
	t         *testing.T
	pty       *os.File
	tty       *os.File
	cmd       *exec.Cmd
	server    *exec.Cmd
	baseURL   string
	workspace string

	// Ring buffer for continuous output capture
	mu   sync.Mutex
	buf  []byte
	head int
	full bool
	cond *sync.Cond
}

// NewTUITest creates a new TUI test framework instance
func NewTUITest(t *testing.T) *TUITestFramework {
	tf := &TUITestFramework{
		t:   t,
		buf: make([]byte, ringSize),
	}
	tf.cond = sync.NewCond(&tf.mu)
	return tf
}

// StartBackend starts a freshly seeded development backend
func (tf *TUITestFramework) StartBackend() error {
	addr, err := freeAddr()
	if err != nil {
		return err
	}
	tf.server = exec.Command(serverBinPath, "--addr", addr)
	if err := tf.server.Start(); err != nil {
		return fmt.Errorf("failed to start dev backend: %w", err)
	}
	if err := waitListening(addr, 5*time.Second); err != nil {
		return fmt.Errorf("dev backend not reachable: %w", err)
	}
	tf.baseURL = "http://" + addr
	return nil
}

// Workspace returns the directory exports and logs are written to
func (tf *TUITestFramework) Workspace() string {
	if tf.workspace == "" {
		tf.workspace = tf.t.TempDir()
	}
	return tf.workspace
}

// StartApp launches the panel with given arguments in a PTY
func (tf *TUITestFramework) StartApp(args ...string) error {
	if tf.baseURL == "" {
		if err := tf.StartBackend(); err != nil {
			return err
		}
	}
	ws := tf.Workspace()

	cmdArgs := append([]string{"--base-url", tf.baseURL, "--config", tf.writeConfig()}, args...)
	tf.cmd = exec.Command(binPath, cmdArgs...)

	// Set per-process environment variables
	tf.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"HOME="+ws, // isolate $HOME
		"GRADEBOOK_EXPORT_DIR="+ws,
		"GRADEBOOK_LOG_FILE="+filepath.Join(ws, "gradebook.log"),
	)

	// Start the command with a PTY
	ptyFile, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("failed to open pty: %w", err)
	}

	tf.pty = ptyFile
	tf.tty = tty
	tf.cmd.Stdout = tty
	tf.cmd.Stdin = tty
	tf.cmd.Stderr = tty

	// Set terminal size
	winsize := struct {
		Row uint16
		Col uint16
		X   uint16
		Y   uint16
	}{50, 140, 0, 0}
	syscall.Syscall(syscall.SYS_IOCTL, ptyFile.Fd(), uintptr(syscall.TIOCSWINSZ), uintptr(unsafe.Pointer(&winsize)))

	if err := tf.cmd.Start(); err != nil {
		ptyFile.Close()
		tty.Close()
		return fmt.Errorf("failed to start command: %w", err)
	}

	tf.startReader()
	return nil
}

func (tf *TUITestFramework) writeConfig() string {
	p := filepath.Join(tf.Workspace(), "config.toml")
	if err := os.WriteFile(p, []byte("version = 1\nlang = \"en\"\n"), 0644); err != nil {
		tf.t.Fatalf("write config: %v", err)
	}
	return p
}

// startReader starts the continuous reader goroutine
func (tf *TUITestFramework) startReader() {
	go func() {
		buf := make([]byte, 8192)
		for {
			n, err := tf.pty.Read(buf)
			if n > 0 {
				tf.mu.Lock()
				for i := 0; i < n; i++ {
					tf.buf[tf.head] = buf[i]
					tf.head = (tf.head + 1) % ringSize
					if tf.head == 0 {
						tf.full = true
					}
				}
				tf.cond.Broadcast()
				tf.mu.Unlock()
			}
			if err != nil {
				tf.mu.Lock()
				tf.cond.Broadcast()
				tf.mu.Unlock()
				return
			}
		}
	}()
}

// SendKeys sends keystrokes to the application
func (tf *TUITestFramework) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

// Press sends one key and waits briefly so the UI can settle
func (tf *TUITestFramework) Press(key string) {
	tf.t.Helper()
	if err := tf.SendKeys(key); err != nil {
		tf.t.Fatalf("send %q: %v", key, err)
	}
	time.Sleep(50 * time.Millisecond)
}

// Ready waits for the panel title and both option lists
func (tf *TUITestFramework) Ready() bool {
	tf.t.Helper()
	return tf.SeePlain("Remote Gradebook") && tf.SeePlain("Section A")
}

// SeePlain waits for specific plain text to appear (normalized output)
func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.OutputContainsPlain(text, 3*time.Second)
}

// OutputContainsPlain checks if the normalized output contains specific text within a timeout
func (tf *TUITestFramework) OutputContainsPlain(text string, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), text)
	}, timeout)
}

// WaitFor waits for a predicate to be true in the output
func (tf *TUITestFramework) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	tf.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if pred(tf.Snapshot()) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond) // simple, reliable polling; tests only
	}
}

// Snapshot returns the current contents of the ring buffer (thread-safe)
func (tf *TUITestFramework) Snapshot() string {
	tf.t.Helper()
	tf.mu.Lock()
	defer tf.mu.Unlock()
	return tf.snapshot()
}

// snapshot assumes tf.mu is held
func (tf *TUITestFramework) snapshot() string {
	if !tf.full {
		return string(tf.buf[:tf.head])
	}
	out := make([]byte, ringSize)
	copy(out, tf.buf[tf.head:])
	copy(out[ringSize-tf.head:], tf.buf[:tf.head])
	return string(out)
}

// SnapshotPlain returns the current contents of the ring buffer with ANSI sequences removed
func (tf *TUITestFramework) SnapshotPlain() string {
	tf.t.Helper()
	return ansiRe.ReplaceAllString(tf.Snapshot(), "")
}

// ResetOutput forgets everything captured so far
func (tf *TUITestFramework) ResetOutput() {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	tf.head = 0
	tf.full = false
}

// Cleanup closes the PTY and terminates the application and its backend
func (tf *TUITestFramework) Cleanup() {
	// Close PTY first to deliver SIGHUP to child process
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.tty != nil {
		_ = tf.tty.Close()
		tf.tty = nil
	}
	for _, c := range []*exec.Cmd{tf.cmd, tf.server} {
		if c != nil && c.Process != nil {
			_ = c.Process.Kill()
			_, _ = c.Process.Wait()
		}
	}
	tf.cmd, tf.server = nil, nil
}

func freeAddr() (string, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	defer l.Close()
	return l.Addr().String(), nil
}

func waitListening(addr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		conn, err := net.Dial("tcp", addr)
		if err == nil {
			return conn.Close()
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(50 * time.Millisecond)
	}
}
