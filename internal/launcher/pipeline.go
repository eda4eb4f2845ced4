package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/paydeck/paylaunch/internal/config"
	"github.com/paydeck/paylaunch/internal/envfile"
	launcherrors "github.com/paydeck/paylaunch/internal/errors"
	"github.com/paydeck/paylaunch/internal/output"
	"github.com/paydeck/paylaunch/internal/preflight"
	"github.com/paydeck/paylaunch/internal/prompt"
	"github.com/paydeck/paylaunch/internal/python"
)

// CredentialsGuide is the remediation text shown when the service
// account file is missing. init prints the same guide.
const CredentialsGuide = `To connect to Google Sheets, the application needs a service account key:
  1. Open the Google Cloud console and create a service account
  2. Enable the Google Sheets API for its project
  3. Create a JSON key and download it
  4. Save the key as src/credentials.json
  5. Share your spreadsheet with the service account's email address`

// diagnosticChecklist is printed when the application exits nonzero.
// The launcher cannot tell these failure modes apart, so it lists all
// of them.
const diagnosticChecklist = `The application exited with an error. Check that:
  1. Python %s or newer is installed and on PATH
  2. src/credentials.json contains a valid service account key
  3. The values in .env (SPREADSHEET_ID, SECRET_KEY) are filled in
  4. This machine can reach the Google Sheets API`

// Pipeline runs the preflight sequence and the application handoff for
// one base directory. All paths are resolved against BaseDir; the
// working directory is never changed, only the child's Dir is set.
type Pipeline struct {
	baseDir string
	cfg     *config.Config
	profile Profile

	out    *output.Writer
	logger *slog.Logger
	runID  string

	stdin       io.Reader
	childStdin  io.Reader
	childStdout io.Writer
	childStderr io.Writer

	assumeYes   bool
	skipInstall bool
	interactive bool

	finder      *python.Finder
	execCommand func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithOutput sets the operator-facing writer.
func WithOutput(w *output.Writer) PipelineOption {
	return func(p *Pipeline) { p.out = w }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) PipelineOption {
	return func(p *Pipeline) { p.logger = l }
}

// WithStdin sets the reader used for operator prompts.
func WithStdin(r io.Reader) PipelineOption {
	return func(p *Pipeline) { p.stdin = r }
}

// WithChildIO sets the stdio handed to spawned processes (venv, pip,
// editor, and the application itself).
func WithChildIO(stdin io.Reader, stdout, stderr io.Writer) PipelineOption {
	return func(p *Pipeline) {
		p.childStdin = stdin
		p.childStdout = stdout
		p.childStderr = stderr
	}
}

// WithAssumeYes answers every prompt affirmatively without asking.
func WithAssumeYes(yes bool) PipelineOption {
	return func(p *Pipeline) { p.assumeYes = yes }
}

// WithSkipInstall skips the dependency-install step entirely.
func WithSkipInstall(skip bool) PipelineOption {
	return func(p *Pipeline) { p.skipInstall = skip }
}

// WithInteractive marks stdin as a terminal. Non-interactive runs never
// prompt and never pause.
func WithInteractive(interactive bool) PipelineOption {
	return func(p *Pipeline) { p.interactive = interactive }
}

// WithFinder overrides interpreter discovery, used by tests.
func WithFinder(f *python.Finder) PipelineOption {
	return func(p *Pipeline) { p.finder = f }
}

// WithExec overrides process spawning, used by tests.
func WithExec(execCommand func(ctx context.Context, name string, args ...string) *exec.Cmd) PipelineOption {
	return func(p *Pipeline) { p.execCommand = execCommand }
}

// NewPipeline creates a Pipeline for the given base directory, loaded
// configuration, and resolved profile.
func NewPipeline(baseDir string, cfg *config.Config, profile Profile, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		baseDir:     baseDir,
		cfg:         cfg,
		profile:     profile,
		out:         output.New(os.Stdout),
		logger:      slog.Default(),
		runID:       uuid.NewString(),
		stdin:       os.Stdin,
		childStdin:  os.Stdin,
		childStdout: os.Stdout,
		childStderr: os.Stderr,
		finder:      python.NewFinder(),
		execCommand: exec.CommandContext,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("run_id", p.runID, "profile", profile.Name)
	return p
}

// RunID returns the identifier attached to this run's log records.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Run executes the full pipeline: interpreter discovery, required
// files, credentials consent, env scaffolding, isolation, dependency
// install, instance lock, and the application handoff. The first fatal
// step aborts; nothing is retried.
func (p *Pipeline) Run(ctx context.Context) error {
	interp, err := p.findInterpreter(ctx)
	if err != nil {
		return err
	}

	if err := p.checkProjectFiles(); err != nil {
		return err
	}

	// The lock must be held before any mutation, so a concurrent launch
	// cannot race on the env file, the venv, or pip.
	lock := NewInstanceLock(p.baseDir)
	locked, err := lock.Acquire()
	if err != nil {
		return launcherrors.Wrap(launcherrors.ErrCodeInternal, err)
	}
	if !locked {
		return launcherrors.New(launcherrors.ErrCodeAlreadyRunning,
			"another paylaunch instance is already running here", nil).
			WithDetail("lock", filepath.Join(DataDir(p.baseDir), LockFileName)).
			WithSuggestion("Wait for the other instance to exit, or remove a stale lock file.")
	}
	defer func() { _ = lock.Release() }()

	if err := p.checkCredentials(); err != nil {
		return err
	}

	if err := p.ensureEnvFile(ctx); err != nil {
		return err
	}

	pythonPath, err := p.selectInterpreter(ctx, interp)
	if err != nil {
		return err
	}

	if err := p.installDependencies(ctx, pythonPath); err != nil {
		return err
	}

	if err := preflight.MarkPassed(DataDir(p.baseDir)); err != nil {
		p.logger.Warn("failed to record preflight marker", "error", err)
	}

	return p.handoff(ctx, pythonPath)
}

// findInterpreter locates a Python interpreter on PATH.
func (p *Pipeline) findInterpreter(ctx context.Context) (*python.Interpreter, error) {
	interp, err := p.finder.Find(ctx)
	if err != nil {
		// The guide is the full diagnostic; the caller renders the error
		// itself, so no message is printed here.
		p.out.Code(python.InstallInstructions())
		return nil, launcherrors.New(launcherrors.ErrCodePythonNotFound,
			fmt.Sprintf("python %s or newer not found on PATH", python.MinVersion), err)
	}

	p.logger.Info("interpreter found", "path", interp.Path, "version", interp.Version)
	p.out.Successf("%s (%s)", interp.Version, interp.Path)
	return interp, nil
}

// checkProjectFiles verifies the required layout in a fixed order. Each
// missing artifact is independently fatal with the exact path.
func (p *Pipeline) checkProjectFiles() error {
	srcDir := filepath.Join(p.baseDir, p.cfg.Paths.SrcDir)
	if info, err := os.Stat(srcDir); err != nil || !info.IsDir() {
		return launcherrors.MissingPath(launcherrors.ErrCodeSrcMissing, p.cfg.Paths.SrcDir).
			WithSuggestion("The launcher must sit next to the application's src directory.")
	}

	entry := filepath.Join(p.baseDir, p.cfg.Paths.Entry)
	if !fileExists(entry) {
		return launcherrors.MissingPath(launcherrors.ErrCodeEntryMissing, p.cfg.Paths.Entry)
	}

	manifest := filepath.Join(p.baseDir, p.cfg.Paths.Manifest)
	if !fileExists(manifest) {
		if p.profile.RequireManifest {
			return launcherrors.MissingPath(launcherrors.ErrCodeManifestMissing, p.cfg.Paths.Manifest)
		}
		p.out.Warningf("%s not found, will install the fallback package list", p.cfg.Paths.Manifest)
		p.logger.Warn("manifest missing, using fallback packages", "manifest", p.cfg.Paths.Manifest)
	}

	p.out.Success("project files present")
	return nil
}

// checkCredentials applies the soft credentials policy: print the
// remediation guide, then either ask the operator, or decide from the
// profile when no real prompt is possible.
func (p *Pipeline) checkCredentials() error {
	path := filepath.Join(p.baseDir, p.cfg.Paths.Credentials)
	if fileExists(path) {
		p.out.Success("credentials file present")
		return nil
	}

	p.out.Warningf("%s not found", p.cfg.Paths.Credentials)
	p.out.Code(CredentialsGuide)
	p.logger.Warn("credentials file missing", "path", p.cfg.Paths.Credentials)

	declinedErr := launcherrors.New(launcherrors.ErrCodeCredentialsDeclined,
		"launch stopped: missing credentials were not accepted", nil).
		WithDetail("path", p.cfg.Paths.Credentials).
		WithSuggestion("Place the service account key at " + p.cfg.Paths.Credentials + " and re-run.")

	// --yes is an affirmative answer to the consent question, in every
	// profile.
	if p.assumeYes {
		p.out.Warning("continuing without credentials; the app will not reach Google Sheets")
		return nil
	}

	// No terminal to ask on: the profile decides.
	if !p.interactive {
		if p.profile.StrictCredentials {
			return declinedErr
		}
		p.out.Warning("continuing without credentials; the app will not reach Google Sheets")
		return nil
	}

	answer, err := prompt.AskYesNo(p.out.Raw(), p.stdin, "Continue without credentials?")
	if err != nil {
		p.logger.Warn("prompt read failed", "error", err)
	}
	if answer.Declined() {
		return declinedErr
	}

	p.out.Warning("continuing without credentials; the app will not reach Google Sheets")
	return nil
}

// ensureEnvFile scaffolds the .env file when absent. An existing file
// is never touched. Interactive runs offer to open the fresh file in
// an editor.
func (p *Pipeline) ensureEnvFile(ctx context.Context) error {
	path := filepath.Join(p.baseDir, p.cfg.Paths.EnvFile)

	created, err := envfile.Scaffold(path)
	if err != nil {
		return launcherrors.Wrap(launcherrors.ErrCodeInternal, err)
	}
	if !created {
		p.out.Successf("%s present", p.cfg.Paths.EnvFile)
		return nil
	}

	p.logger.Info("env file scaffolded", "path", path)
	p.out.Warningf("created %s with default values, edit it before real use", p.cfg.Paths.EnvFile)

	if !p.interactive || p.assumeYes {
		return nil
	}

	answer, _ := prompt.AskYesNo(p.out.Raw(), p.stdin, "Open it in an editor now?")
	if answer.Declined() {
		return nil
	}

	fields := strings.Fields(p.cfg.EditorCommand())
	if len(fields) == 0 {
		return nil
	}
	args := append(fields[1:], path)
	cmd := p.execCommand(ctx, fields[0], args...)
	cmd.Stdin = p.childStdin
	cmd.Stdout = p.childStdout
	cmd.Stderr = p.childStderr
	if err := cmd.Run(); err != nil {
		// Editing is a convenience; a failed editor never aborts launch.
		p.out.Warningf("editor exited with an error: %v", err)
	}
	return nil
}

// selectInterpreter applies the profile's isolation policy and returns
// the interpreter path used for install and handoff.
func (p *Pipeline) selectInterpreter(ctx context.Context, interp *python.Interpreter) (string, error) {
	venv := python.NewVenvWith(filepath.Join(p.baseDir, p.cfg.Paths.VenvDir), p.execCommand)

	switch p.profile.Isolation {
	case IsolationAlways:
		if !venv.Exists() {
			p.out.Statusf("...", "creating virtual environment at %s", p.cfg.Paths.VenvDir)
			if err := venv.Create(ctx, interp.Path, p.childStdout); err != nil {
				return "", launcherrors.Wrap(launcherrors.ErrCodeVenvCreate, err).
					WithSuggestion("Delete the " + p.cfg.Paths.VenvDir + " directory and re-run.")
			}
			p.logger.Info("virtual environment created", "dir", venv.Dir)
		}
		p.out.Successf("using virtual environment %s", p.cfg.Paths.VenvDir)
		return venv.Python(), nil

	case IsolationIfPresent:
		if venv.Exists() {
			p.out.Successf("using existing virtual environment %s", p.cfg.Paths.VenvDir)
			return venv.Python(), nil
		}
		p.out.Status("", "no virtual environment, using ambient interpreter")
		return interp.Path, nil

	default:
		return interp.Path, nil
	}
}

// installDependencies runs pip exactly once. A manifest is preferred;
// the fixed fallback list covers manifest-less lenient launches.
func (p *Pipeline) installDependencies(ctx context.Context, pythonPath string) error {
	if p.skipInstall {
		p.out.Status("", "dependency install skipped")
		return nil
	}

	installer := python.NewInstallerWith(pythonPath, p.execCommand)
	manifest := filepath.Join(p.baseDir, p.cfg.Paths.Manifest)

	var err error
	if fileExists(manifest) {
		p.out.Statusf("...", "installing dependencies from %s", p.cfg.Paths.Manifest)
		err = installer.InstallRequirements(ctx, manifest, p.childStdout)
	} else {
		p.out.Statusf("...", "installing fallback packages: %s", strings.Join(python.FallbackPackages, ", "))
		err = installer.InstallPackages(ctx, python.FallbackPackages, p.childStdout)
	}

	if err != nil {
		p.logger.Error("pip install failed", "error", err)
		if p.profile.FailOnInstall {
			return launcherrors.Wrap(launcherrors.ErrCodePipInstall, err).
				WithSuggestion("Inspect pip's output above; re-run once the cause is fixed.")
		}
		p.out.Warning("dependency install failed, launching anyway")
		return nil
	}

	p.out.Success("dependencies installed")
	return nil
}

// handoff spawns the application with inherited stdio and blocks until
// it exits. The child runs with Dir set to the base directory so its
// own relative paths resolve the same way the launcher's do.
func (p *Pipeline) handoff(ctx context.Context, pythonPath string) error {
	p.out.Newline()
	p.out.Statusf(">>>", "starting the payslip viewer, open %s once it is up", p.cfg.App.URL)
	p.out.Newline()
	p.logger.Info("handing off", "python", pythonPath, "entry", p.cfg.Paths.Entry)

	cmd := p.execCommand(ctx, pythonPath, p.cfg.Paths.Entry)
	cmd.Dir = p.baseDir
	cmd.Stdin = p.childStdin
	cmd.Stdout = p.childStdout
	cmd.Stderr = p.childStderr

	err := cmd.Run()
	if err == nil {
		p.logger.Info("application exited cleanly")
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		p.logger.Error("application exited with failure", "exit_code", code)
		p.out.Newline()
		p.out.Code(fmt.Sprintf(diagnosticChecklist, python.MinVersion))
		return launcherrors.New(launcherrors.ErrCodeAppExit,
			fmt.Sprintf("application exited with status %d", code), err).
			WithDetail("exit_code", strconv.Itoa(code))
	}

	return launcherrors.Wrap(launcherrors.ErrCodeAppSpawn, err)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
