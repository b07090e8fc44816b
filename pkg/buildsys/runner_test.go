package buildsys

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records commands and answers them from a table keyed by the
// command line.
type fakeRunner struct {
	calls   []Command
	results map[string]Result
	err     error
}

func (f *fakeRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	f.calls = append(f.calls, cmd)
	if f.err != nil {
		return Result{}, f.err
	}
	key := strings.Join(append([]string{cmd.Name}, cmd.Args...), " ")
	for prefix, result := range f.results {
		if strings.HasPrefix(key, prefix) {
			return result, nil
		}
	}
	return Result{}, nil
}

func TestExecRunner_CapturesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}
	r := NewExecRunner()

	result, err := r.Run(context.Background(), Command{Name: "/bin/sh", Args: []string{"-c", "echo out; echo err >&2"}})
	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, "out\n", result.Stdout)
	assert.Equal(t, "err\n", result.Stderr)
}

func TestExecRunner_NonzeroExitIsNotAnError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}
	r := NewExecRunner()

	result, err := r.Run(context.Background(), Command{Name: "/bin/sh", Args: []string{"-c", "exit 3"}})
	require.NoError(t, err)
	assert.False(t, result.Success())
	assert.Equal(t, 3, result.ExitCode)
}

func TestExecRunner_StreamAndEnv(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}
	var buf bytes.Buffer
	r := NewExecRunner()
	r.Output = &buf

	result, err := r.Run(context.Background(), Command{
		Name:   "/bin/sh",
		Args:   []string{"-c", "echo $QUARK_TEST_VALUE"},
		Env:    []string{"QUARK_TEST_VALUE=streamed"},
		Stream: true,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Stdout)
	assert.Equal(t, "streamed\n", buf.String())
}

func TestExecRunner_MissingCommand(t *testing.T) {
	_, err := NewExecRunner().Run(context.Background(), Command{Name: "quark-definitely-not-a-command"})
	assert.Error(t, err)
}

func TestCommand_String(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"plain", Command{Name: "cargo", Args: []string{"build", "--release"}}, "cargo build --release"},
		{"spaces", Command{Name: "go", Args: []string{"build", "-o", "target/my app"}}, "go build -o 'target/my app'"},
		{"quote", Command{Name: "echo", Args: []string{"it's"}}, `echo "it's"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cmd.String())
		})
	}
}

func TestExecRunner_LogsCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	r := NewExecRunner()
	r.logger = zerolog.New(&buf)

	_, err := r.Run(context.Background(), Command{Name: "/bin/sh", Args: []string{"-c", "true"}, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"command":"/bin/sh"`)
	assert.Contains(t, buf.String(), `"args":["-c","true"]`)
	assert.Contains(t, buf.String(), "Executing command")
}
