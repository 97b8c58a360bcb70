package orchestrator

import (
	"bytes"
	"os"
	"text/template"

	"github.com/pkg/errors"

	"github.com/PirateLibrary/PirateLibrary/internal/config"
)

// ErrEmptyExecStart is returned when the unit has nothing to run.
var ErrEmptyExecStart = errors.New("unit ExecStart can not be empty")

// UnitOptions describes the autostart unit.
type UnitOptions struct {
	Name             string
	Path             string
	Description      string
	ExecStart        string
	WorkingDirectory string
	User             string
}

var unitTemplate = template.Must(template.New("unit").Parse(`[Unit]
Description={{ .Description }}
After=network.target

[Service]
ExecStart={{ .ExecStart }}
{{- if .WorkingDirectory }}
WorkingDirectory={{ .WorkingDirectory }}
{{- end }}
StandardOutput=inherit
StandardError=inherit
Restart=always
{{- if .User }}
User={{ .User }}
{{- end }}

[Install]
WantedBy=multi-user.target
`))

// UnitFromConfig fills UnitOptions from the [Service] section. Without an
// explicit ExecStart the running binary is started with configDir.
func UnitFromConfig(s config.Service, title, configDir string) (UnitOptions, error) {
	u := UnitOptions{
		Name:             s.Name,
		Path:             s.UnitPath,
		Description:      title + " Service",
		ExecStart:        s.ExecStart,
		WorkingDirectory: s.WorkingDirectory,
		User:             s.User,
	}

	if u.ExecStart == "" {
		exe, err := os.Executable()
		if err != nil {
			return UnitOptions{}, errors.Wrap(err, "locate executable")
		}

		u.ExecStart = exe + " start"
		if configDir != "" {
			u.ExecStart += " --config " + configDir
		}
	}

	return u, nil
}

// RenderUnit returns the unit file text.
func RenderUnit(u UnitOptions) (string, error) {
	if u.ExecStart == "" {
		return "", ErrEmptyExecStart
	}

	var b bytes.Buffer
	if err := unitTemplate.Execute(&b, u); err != nil {
		return "", errors.Wrap(err, "render unit")
	}

	return b.String(), nil
}
