package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/wtree-dev/wt/internal/log"
	"github.com/wtree-dev/wt/internal/storage"
)

const (
	// DirName is the per-hub directory holding wt's files.
	DirName = ".wtree"
	// FileName is the name of the hook configuration file.
	FileName = "hooks.toml"
)

// ErrInvalidHookConfig matches errors for hook files that fail to parse.
var ErrInvalidHookConfig = errors.New("invalid hook config")

// InvalidError reports a hook configuration file that could not be decoded.
type InvalidError struct {
	Path string
	Err  error
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid hook config %s: %v", e.Path, e.Err)
}

func (e *InvalidError) Unwrap() error {
	return e.Err
}

func (e *InvalidError) Is(target error) bool {
	return target == ErrInvalidHookConfig
}

// EventHooks holds the ordered command lists of one lifecycle event.
type EventHooks struct {
	Pre  []string `toml:"pre"`
	Post []string `toml:"post"`
}

// HookConfig is the effective hook configuration of a hub.
type HookConfig struct {
	Create EventHooks `toml:"create"`
	Switch EventHooks `toml:"switch"`
	Remove EventHooks `toml:"remove"`
}

// For returns the hooks of the named event. Unknown events have no hooks.
func (c HookConfig) For(event string) EventHooks {
	switch event {
	case "create":
		return c.Create
	case "switch":
		return c.Switch
	case "remove":
		return c.Remove
	}
	return EventHooks{}
}

// Empty reports whether no event has any command.
func (c HookConfig) Empty() bool {
	for _, eh := range []EventHooks{c.Create, c.Switch, c.Remove} {
		if len(eh.Pre) > 0 || len(eh.Post) > 0 {
			return false
		}
	}
	return true
}

// Source tells where a resolved configuration came from.
type Source int

const (
	SourceBuiltin Source = iota
	SourceGlobal
	SourceLocal
)

func (s Source) String() string {
	switch s {
	case SourceLocal:
		return "local"
	case SourceGlobal:
		return "global"
	default:
		return "builtin"
	}
}

// Resolved is the outcome of configuration resolution.
type Resolved struct {
	Config HookConfig
	Source Source
	// Path is the file the configuration was read from; empty for builtin.
	Path string
	// Undecoded lists keys present in the file that wt does not know.
	Undecoded []string
}

// LocalPath returns the hub-local hook file location.
func LocalPath(hubRoot string) string {
	return filepath.Join(hubRoot, DirName, FileName)
}

// GlobalPath returns the per-user default hook file location,
// $XDG_CONFIG_HOME/wt/hooks.toml or ~/.config/wt/hooks.toml.
func GlobalPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" && filepath.IsAbs(xdg) {
		return filepath.Join(xdg, "wt", FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate global hook config: %w", err)
	}
	return filepath.Join(home, ".config", "wt", FileName), nil
}

// Resolve picks the first existing file of localPath and globalPath and
// decodes it. With neither present the empty builtin configuration is
// returned. Empty paths are skipped.
func Resolve(localPath, globalPath string) (Resolved, error) {
	candidates := []struct {
		path   string
		source Source
	}{
		{localPath, SourceLocal},
		{globalPath, SourceGlobal},
	}
	for _, c := range candidates {
		if c.path == "" {
			continue
		}
		if _, err := os.Stat(c.path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Resolved{}, fmt.Errorf("stat hook config: %w", err)
		}
		cfg, undecoded, err := decodeFile(c.path)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{Config: cfg, Source: c.source, Path: c.path, Undecoded: undecoded}, nil
	}
	return Resolved{Source: SourceBuiltin}, nil
}

// Load resolves the configuration for a hub against the global default at
// globalPath, which may be empty. Unknown keys are reported on the debug log.
func Load(ctx context.Context, hubRoot, globalPath string) (Resolved, error) {
	l := log.FromContext(ctx)

	res, err := Resolve(LocalPath(hubRoot), globalPath)
	if err != nil {
		return Resolved{}, err
	}
	l.Debug("hook config loaded", "source", res.Source, "path", res.Path)
	for _, key := range res.Undecoded {
		l.Debug("unknown hook config key", "key", key, "path", res.Path)
	}
	return res, nil
}

// Decode parses hook configuration from TOML text. Absent sections and keys
// decode to empty lists.
func Decode(data string) (HookConfig, []string, error) {
	var cfg HookConfig
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return HookConfig{}, nil, err
	}
	var undecoded []string
	for _, key := range md.Undecoded() {
		undecoded = append(undecoded, key.String())
	}
	return cfg, undecoded, nil
}

func decodeFile(path string) (HookConfig, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return HookConfig{}, nil, fmt.Errorf("read hook config: %w", err)
	}
	cfg, undecoded, err := Decode(string(data))
	if err != nil {
		return HookConfig{}, nil, &InvalidError{Path: path, Err: err}
	}
	return cfg, undecoded, nil
}

// Encode writes cfg as TOML. Every event is written, with empty lists where
// nothing is configured.
func Encode(w io.Writer, cfg HookConfig) error {
	for _, eh := range []*EventHooks{&cfg.Create, &cfg.Switch, &cfg.Remove} {
		if eh.Pre == nil {
			eh.Pre = []string{}
		}
		if eh.Post == nil {
			eh.Post = []string{}
		}
	}
	return toml.NewEncoder(w).Encode(cfg)
}

const template = `# wt hook configuration
#
# Each event has two ordered lists of shell commands.
#
#   pre   runs in the hub root before the operation.
#         The first failing command aborts the operation.
#   post  runs in the worktree after the operation.
#         Failures are reported as warnings.
#
# Hooks see these environment variables:
#   WT_COMMAND        create, switch or remove
#   WT_WORKTREE_NAME  name of the target worktree
#   WT_WORKTREE_PATH  absolute path of the target worktree
#   WT_HUB_ROOT       absolute path of the hub
#   WT_BRANCH         branch given to create (empty for other events)

[create]
# pre = ["[[ \"$WT_WORKTREE_NAME\" =~ ^(feature|bugfix)- ]]"]
# post = ["npm install"]
pre = []
post = []

[switch]
# post = ["git fetch --quiet"]
pre = []
post = []

[remove]
# pre = ["git -C \"$WT_WORKTREE_PATH\" diff --quiet"]
pre = []
post = []
`

// Template returns the builtin commented configuration. It decodes to an
// empty HookConfig.
func Template() string {
	return template
}

// Materialize writes the hub-local hook file when it does not exist yet,
// copying the global default if there is one and the template otherwise.
// An existing local file is left untouched. It returns the local path.
func Materialize(hubRoot, globalPath string) (string, error) {
	path := LocalPath(hubRoot)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	content := []byte(template)
	if globalPath != "" {
		data, err := os.ReadFile(globalPath)
		switch {
		case err == nil:
			content = data
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("read global hook config: %w", err)
		}
	}

	if err := storage.CreateFile(path, content, 0o644); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return path, nil
		}
		return "", fmt.Errorf("write hook config: %w", err)
	}
	return path, nil
}

// WriteTemplate writes the builtin template to path, creating parent
// directories. An existing file is only replaced when force is set.
func WriteTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("hook config %s: %w (use --force to overwrite)", path, fs.ErrExist)
		}
	}
	return storage.WriteFile(path, []byte(template), 0o644)
}
