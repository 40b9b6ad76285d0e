package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Sentinel errors. Both are recoverable: the collector skips the
// installation and continues.
var (
	ErrNoRuntime   = errors.New("no python interpreter found")
	ErrProbeFailed = errors.New("version probe failed")
)

// Conventional interpreter locations relative to an installation directory,
// tried in order before falling back to a scan of bin/.
var interpreterCandidates = []string{
	filepath.Join("bin", "python3"),
	filepath.Join("bin", "python"),
	"python3",
	"python",
}

// versionExpr makes the interpreter print exactly its own three-component
// version. -I runs isolated so user site config cannot alter the output.
const versionExpr = "import platform; print(platform.python_version())"

var versionRe = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

const defaultTimeout = 10 * time.Second

// Prober reports the exact version of a CPython installation.
type Prober struct {
	// Timeout bounds each probe; expiry is reported as ErrProbeFailed.
	// Zero means the default of 10s.
	Timeout time.Duration
}

// Version locates the interpreter inside installDir and asks it for its
// version. Read-only apart from spawning one short-lived child process.
func (p *Prober) Version(ctx context.Context, installDir string) (string, error) {
	bin, err := FindInterpreter(installDir)
	if err != nil {
		return "", err
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-I", "-c", versionExpr)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s: %v: %s", ErrProbeFailed, bin, err, strings.TrimSpace(stderr.String()))
	}

	return ParseVersion(stdout.String())
}

// ParseVersion validates that s is exactly a MAJOR.MINOR.PATCH version and
// returns it trimmed. Anything else is ErrProbeFailed.
func ParseVersion(s string) (string, error) {
	v := strings.TrimSpace(s)
	if !versionRe.MatchString(v) {
		return "", fmt.Errorf("%w: unparseable version output %q", ErrProbeFailed, v)
	}
	if _, err := semver.StrictNewVersion(v); err != nil {
		return "", fmt.Errorf("%w: invalid version %q: %v", ErrProbeFailed, v, err)
	}
	return v, nil
}

// FindInterpreter returns the path to an executable interpreter inside
// installDir, trying the conventional locations first and then scanning
// bin/ one level deep for versioned binaries like python3.12.
func FindInterpreter(installDir string) (string, error) {
	for _, rel := range interpreterCandidates {
		path := filepath.Join(installDir, rel)
		if isExecutable(path) {
			return path, nil
		}
	}

	matches, err := filepath.Glob(filepath.Join(installDir, "bin", "python*"))
	if err == nil {
		sort.Strings(matches)
		for _, path := range matches {
			if isExecutable(path) {
				return path, nil
			}
		}
	}

	return "", fmt.Errorf("%w in %s", ErrNoRuntime, installDir)
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0111 != 0
}
