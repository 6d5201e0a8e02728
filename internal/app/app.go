package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/five82/emphub/internal/api"
	"github.com/five82/emphub/internal/config"
	"github.com/five82/emphub/internal/dashboard"
	"github.com/five82/emphub/internal/model"
	"github.com/five82/emphub/internal/prefs"
	"github.com/five82/emphub/internal/session"
	"github.com/five82/emphub/internal/ui"
)

// ErrNotLoggedIn is returned when a command needs a session and none is
// stored.
var ErrNotLoggedIn = errors.New("not logged in, run `emphub login`")

// Options configure the emphub application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/emphub/prefs.toml
}

// Env is the wired set of services every command shares.
type Env struct {
	Config   config.Config
	Session  *session.Store
	Client   *api.Client
	Registry *prometheus.Registry

	logFile io.Closer
}

// Setup loads configuration, redirects logging to the configured file and
// builds the session store and API client.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logFile, err := setupLogging(cfg.LogFile)
	if err != nil {
		return nil, err
	}

	store, err := session.Open(cfg.SessionDir)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("open session: %w", err)
	}

	reg := prometheus.NewRegistry()
	client, err := api.NewClient(cfg.APIURL, api.WithTimeout(cfg.Timeout), api.WithRegisterer(reg))
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("init api client: %w", err)
	}

	return &Env{
		Config:   cfg,
		Session:  store,
		Client:   client,
		Registry: reg,
		logFile:  logFile,
	}, nil
}

// Close logs the gateway metrics and closes the log file.
func (e *Env) Close() error {
	logMetricsSummary(e.Registry)
	if e.logFile == nil {
		return nil
	}
	return e.logFile.Close()
}

// User returns the stored session user or ErrNotLoggedIn.
func (e *Env) User() (model.User, error) {
	user, err := e.Session.Load()
	if errors.Is(err, session.ErrUnauthenticated) {
		return model.User{}, ErrNotLoggedIn
	}
	return user, err
}

// Dashboard builds the dashboard for the stored user without loading it.
func (e *Env) Dashboard() (*dashboard.Dashboard, error) {
	user, err := e.User()
	if err != nil {
		return nil, err
	}
	return dashboard.New(user, e.Client), nil
}

// Login validates creds, authenticates against the API and stores the
// returned user.
func (e *Env) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	if err := creds.Validate(); err != nil {
		return model.User{}, err
	}
	user, err := e.Client.Login(ctx, creds)
	if err != nil {
		return model.User{}, err
	}
	if err := e.Session.Save(user); err != nil {
		return model.User{}, err
	}
	log.Printf("logged in as user %d", user.ID)
	return user, nil
}

// Logout clears the stored session.
func (e *Env) Logout() error {
	return e.Session.Clear()
}

// Run boots the dashboard TUI for the stored user and blocks until it
// exits.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	dash, err := env.Dashboard()
	if err != nil {
		return err
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)
	if tab, ok := dashboard.ParseTab(userPrefs.LastTab); ok {
		dash.Tabs.Select(tab)
	}

	// Populate the collections before the UI starts.
	dash.LoadAll(ctx)

	result, err := ui.Run(ui.Options{
		Context:   ctx,
		Dashboard: dash,
		ThemeName: userPrefs.Theme,
		PrefsPath: prefsPath,
		Logout:    env.Logout,
	})
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	if err := prefs.Save(prefsPath, prefs.Prefs{Theme: result.Theme, LastTab: result.Tab.String()}); err != nil {
		log.Printf("save prefs: %v", err)
	}
	if result.LoggedOut {
		log.Printf("session cleared by user")
		return ErrNotLoggedIn
	}
	return nil
}

// setupLogging sends the standard logger to path so output never lands on
// the terminal UI.
func setupLogging(path string) (io.Closer, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "emphub")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// logMetricsSummary writes one line per gateway operation that was called.
func logMetricsSummary(reg *prometheus.Registry) {
	if reg == nil {
		return
	}
	families, err := reg.Gather()
	if err != nil {
		log.Printf("gather metrics: %v", err)
		return
	}
	var lines []string
	for _, mf := range families {
		if mf.GetName() != "emphub_gateway_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s %.0f", strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		log.Printf("gateway requests: %s", line)
	}
}
