package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	homeShortcutConstant            = "~"
	homeShortcutSlashPrefixConstant = "~/"
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander turns `~` and `~/relative` into paths under the user's home directory.
// The home directory is looked up once per expander.
type HomeExpander struct {
	provider       HomeDirectoryProvider
	lookupOnce     sync.Once
	homeDirectory  string
	lookupSucceeded bool
}

// NewHomeExpander constructs a HomeExpander backed by os.UserHomeDir.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{provider: provider}
}

// Expand returns candidatePath with a leading home shortcut resolved.
// Paths without the shortcut, `~user` forms, and lookups that fail are returned unchanged.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || !strings.HasPrefix(candidatePath, homeShortcutConstant) {
		return candidatePath
	}

	var relativePath string
	switch {
	case candidatePath == homeShortcutConstant:
	case strings.HasPrefix(candidatePath, homeShortcutSlashPrefixConstant):
		relativePath = candidatePath[len(homeShortcutSlashPrefixConstant):]
	case strings.HasPrefix(candidatePath, homeShortcutConstant+string(os.PathSeparator)):
		relativePath = candidatePath[len(homeShortcutConstant)+1:]
	default:
		return candidatePath
	}

	homeDirectory, resolved := expander.resolveHomeDirectory()
	if !resolved {
		return candidatePath
	}
	if len(relativePath) == 0 {
		return homeDirectory
	}
	return filepath.Join(homeDirectory, relativePath)
}

func (expander *HomeExpander) resolveHomeDirectory() (string, bool) {
	expander.lookupOnce.Do(func() {
		homeDirectory, lookupError := expander.provider()
		if lookupError != nil || len(homeDirectory) == 0 {
			return
		}
		expander.homeDirectory = homeDirectory
		expander.lookupSucceeded = true
	})
	return expander.homeDirectory, expander.lookupSucceeded
}
