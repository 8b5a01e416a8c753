package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const sessionFile = "session.json"

// Session is what the dashboard remembers between runs.
type Session struct {
	Role  string `json:"role,omitempty"`
	Theme string `json:"theme,omitempty"`
}

func sessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "user config dir")
	}
	dir = filepath.Join(dir, "campusboard")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "mkdir session dir")
	}
	return filepath.Join(dir, sessionFile), nil
}

// SaveSession writes s atomically through a temp file and rename.
func SaveSession(s Session) error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode session")
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrapf(err, "write %s", tmp)
	}
	return errors.Wrapf(os.Rename(tmp, path), "replace %s", path)
}

// LoadSession returns the zero Session when nothing has been saved yet.
func LoadSession() (Session, error) {
	path, err := sessionPath()
	if err != nil {
		return Session{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, nil
		}
		return Session{}, errors.Wrapf(err, "read %s", path)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, errors.Wrapf(err, "decode session %s", path)
	}
	return s, nil
}
